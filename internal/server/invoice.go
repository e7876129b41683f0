package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/bizdesk/internal/invoice/domain"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
)

type lineItemRequest struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// invoiceDraftRequest carries ids as strings so an unselected client
// reaches the service as a missing client rather than a decode failure.
type invoiceDraftRequest struct {
	InvoiceNumber string            `json:"invoice_number"`
	ClientID      string            `json:"client_id"`
	ProjectID     string            `json:"project_id"`
	IssueDate     string            `json:"issue_date"`
	DueDate       string            `json:"due_date"`
	Currency      string            `json:"currency"`
	Notes         string            `json:"notes"`
	LineItems     []lineItemRequest `json:"line_items"`
}

func (r invoiceDraftRequest) toDraft() (invoicedomain.InvoiceDraft, error) {
	draft := invoicedomain.InvoiceDraft{
		InvoiceNumber: strings.TrimSpace(r.InvoiceNumber),
		IssueDate:     strings.TrimSpace(r.IssueDate),
		DueDate:       strings.TrimSpace(r.DueDate),
		Currency:      invoicedomain.Currency(strings.TrimSpace(r.Currency)),
		Notes:         strings.TrimSpace(r.Notes),
		LineItems:     make([]invoicedomain.LineItem, 0, len(r.LineItems)),
	}

	clientID, err := parseOptionalSnowflakeID(r.ClientID)
	if err != nil {
		return draft, invoicedomain.ErrInvalidClientID
	}
	if clientID != nil {
		draft.ClientID = *clientID
	}

	projectID, err := parseOptionalSnowflakeID(r.ProjectID)
	if err != nil {
		return draft, invoicedomain.ErrInvalidProjectID
	}
	draft.ProjectID = projectID

	for _, in := range r.LineItems {
		item := invoicedomain.NewLineItem()
		if id := strings.TrimSpace(in.ID); id != "" {
			item.ID = id
		}
		description := in.Description
		draft.LineItems = append(draft.LineItems, invoicedomain.UpdateLineItem(item, invoicedomain.LineItemPatch{
			Description: &description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
		}))
	}

	return draft, nil
}

func (s *Server) NewInvoiceDraft(c *gin.Context) {
	draft, err := s.invoiceSvc.NewDraft(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"draft":  draft,
		"totals": draft.Totals(),
	}})
}

func (s *Server) PreviewInvoice(c *gin.Context) {
	draft, ok := bindInvoiceDraft(c)
	if !ok {
		return
	}

	totals, err := s.invoiceSvc.Preview(c.Request.Context(), draft)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": totals})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	draft, ok := bindInvoiceDraft(c)
	if !ok {
		return
	}

	resp, err := s.invoiceSvc.Save(c.Request.Context(), draft)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status   string `form:"status"`
		ClientID string `form:"client_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Status:    strings.TrimSpace(query.Status),
		ClientID:  strings.TrimSpace(query.ClientID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetDetails(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SendInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.MarkSent(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PayInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.MarkPaid(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RenderInvoicePDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	doc, err := s.invoiceSvc.RenderPDF(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "invoice-"+id+".pdf"))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func bindInvoiceDraft(c *gin.Context) (invoicedomain.InvoiceDraft, bool) {
	var req invoiceDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return invoicedomain.InvoiceDraft{}, false
	}

	draft, err := req.toDraft()
	if err != nil {
		AbortWithError(c, err)
		return invoicedomain.InvoiceDraft{}, false
	}
	return draft, true
}

func isInvoiceValidationError(err error) bool {
	switch err {
	case invoicedomain.ErrClientRequired,
		invoicedomain.ErrInvalidID,
		invoicedomain.ErrInvalidClientID,
		invoicedomain.ErrInvalidProjectID,
		invoicedomain.ErrInvalidCurrency,
		invoicedomain.ErrInvalidIssueDate,
		invoicedomain.ErrInvalidDueDate,
		invoicedomain.ErrLineItemsRequired,
		invoicedomain.ErrClientNotFound,
		invoicedomain.ErrProjectNotFound,
		invoicedomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}

func parseOptionalSnowflakeID(value string) (*snowflake.ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil || parsed == 0 {
		return nil, ErrInvalidRequest
	}
	return &parsed, nil
}
