package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/bizdesk/internal/auth/domain"
	clientdomain "github.com/smallbiznis/bizdesk/internal/client/domain"
	companydomain "github.com/smallbiznis/bizdesk/internal/company/domain"
	"github.com/smallbiznis/bizdesk/internal/i18n"
	invoicedomain "github.com/smallbiznis/bizdesk/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/bizdesk/internal/payment/domain"
	projectdomain "github.com/smallbiznis/bizdesk/internal/project/domain"
	reportdomain "github.com/smallbiznis/bizdesk/internal/report/domain"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not_found")
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrTooManyRequests = errors.New("too_many_requests")
)

func ErrorHandlingMiddleware(fallback language.Tag) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		loc := i18n.New(c.GetHeader("Accept-Language"), fallback)
		status, payload := mapError(lastErr.Err, loc)
		c.Header("Content-Type", "application/json")
		c.Header("Content-Language", loc.Tag().String())
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

// mapError turns a service error into a status and a localized payload.
// Store failures never leak their detail to the caller.
func mapError(err error, loc i18n.Localizer) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: loc.T(i18n.Internal),
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: loc.T(i18n.InvalidRequest),
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		message := loc.T(validationMessageKey(err))
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: message,
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: message,
				},
			},
		}
	}

	switch {
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: loc.T(i18n.InvalidCredentials),
		}
	case isUnauthorizedError(err):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: loc.T(i18n.Unauthorized),
		}
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: loc.T(i18n.TooManyRequests),
		}
	case errors.Is(err, invoicedomain.ErrInvalidTransition):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: loc.T(i18n.InvalidTransition),
		}
	case errors.Is(err, authdomain.ErrUserExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: loc.T(i18n.InvalidRequest),
		}
	case errors.Is(err, invoicedomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: loc.T(i18n.InvoiceNotFound),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: loc.T(i18n.NotFound),
		}
	case errors.Is(err, invoicedomain.ErrSaveFailed):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: loc.T(i18n.SaveFailed),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: loc.T(i18n.Internal),
		}
	}
}

// classifyErrorForLog returns the error type and code written to request logs.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err, i18n.New("en", language.English))
	if status >= http.StatusInternalServerError {
		return payload.Type, "internal"
	}
	if len(payload.Errors) > 0 {
		return payload.Type, payload.Errors[0].Code
	}
	return payload.Type, err.Error()
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isInvoiceValidationError(err),
		isClientValidationError(err),
		isProjectValidationError(err),
		isPaymentValidationError(err),
		isAuthValidationError(err),
		errors.Is(err, companydomain.ErrInvalidName):
		return true
	default:
		return false
	}
}

func isUnauthorizedError(err error) bool {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, invoicedomain.ErrInvalidCompany),
		errors.Is(err, clientdomain.ErrInvalidCompany),
		errors.Is(err, projectdomain.ErrInvalidCompany),
		errors.Is(err, paymentdomain.ErrInvalidCompany),
		errors.Is(err, reportdomain.ErrInvalidCompany):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, clientdomain.ErrNotFound),
		errors.Is(err, projectdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, companydomain.ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isAuthValidationError(err error) bool {
	switch err {
	case authdomain.ErrWeakPassword,
		authdomain.ErrInvalidEmail:
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch err {
	case authdomain.ErrWeakPassword:
		return "invalid_password"
	case authdomain.ErrInvalidEmail:
		return "invalid_email"
	default:
		return err.Error()
	}
}

func validationMessageKey(err error) i18n.Key {
	switch err {
	case invoicedomain.ErrClientRequired:
		return i18n.ClientRequired
	case invoicedomain.ErrLineItemsRequired:
		return i18n.LineItemsRequired
	default:
		return i18n.InvalidRequest
	}
}

func validationErrorField(code string) string {
	switch code {
	case "invalid_request":
		return "request"
	case invoicedomain.ErrClientRequired.Error(), invoicedomain.ErrClientNotFound.Error():
		return "client_id"
	case invoicedomain.ErrProjectNotFound.Error():
		return "project_id"
	case invoicedomain.ErrLineItemsRequired.Error():
		return "line_items"
	case paymentdomain.ErrInvoiceNotFound.Error():
		return "invoice_id"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}
