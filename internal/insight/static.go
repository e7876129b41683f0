package insight

import (
	"context"
	"strings"
)

// StaticMessage is returned when no model backend is configured.
const StaticMessage = "التحليل الذكي غير مفعّل. راجع الإيرادات والمبالغ المستحقة أعلاه ونسبة التحصيل لمتابعة الفواتير غير المدفوعة."

type Static struct {
	message string
}

func NewStatic() *Static {
	return &Static{message: StaticMessage}
}

func (s *Static) Name() string { return "static" }

func (s *Static) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	return s.message, nil
}
