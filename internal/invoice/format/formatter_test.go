package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInvoiceNumberDefault(t *testing.T) {
	issued := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	out, err := FormatInvoiceNumber(DefaultInvoiceNumberTemplate, issued, 4821)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-4821", out)
}

func TestFormatInvoiceNumberPadsAndDates(t *testing.T) {
	issued := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	out, err := FormatInvoiceNumber("{YY}{MM}{DD}-{SEQ6}", issued, 42)
	require.NoError(t, err)
	assert.Equal(t, "250309-000042", out)
}

func TestFormatInvoiceNumberRejectsBadInput(t *testing.T) {
	_, err := FormatInvoiceNumber("", time.Now(), 1)
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("INV-{SEQ}", time.Now(), 0)
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("INV-{NOPE}", time.Now(), 1)
	assert.Error(t, err)
}
