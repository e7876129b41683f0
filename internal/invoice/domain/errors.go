package domain

import "errors"

var (
	ErrInvalidCompany    = errors.New("invalid_company")
	ErrClientRequired    = errors.New("client_required")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidClientID   = errors.New("invalid_client_id")
	ErrInvalidProjectID  = errors.New("invalid_project_id")
	ErrInvalidCurrency   = errors.New("invalid_currency")
	ErrInvalidIssueDate  = errors.New("invalid_issue_date")
	ErrInvalidDueDate    = errors.New("invalid_due_date")
	ErrLineItemsRequired = errors.New("line_items_required")
	ErrClientNotFound    = errors.New("client_not_found")
	ErrProjectNotFound   = errors.New("project_not_found")
	ErrNotFound          = errors.New("not_found")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrSaveFailed        = errors.New("save_failed")
)
