// Package i18n holds the user-facing messages in Arabic and English.
package i18n

import (
	"golang.org/x/text/language"
)

type Key string

const (
	ClientRequired     Key = "client_required"
	LineItemsRequired  Key = "line_items_required"
	SaveFailed         Key = "save_failed"
	InvalidCredentials Key = "invalid_credentials"
	Unauthorized       Key = "unauthorized"
	InvoiceNotFound    Key = "invoice_not_found"
	NotFound           Key = "not_found"
	InvalidTransition  Key = "invalid_transition"
	InvalidRequest     Key = "invalid_request"
	TooManyRequests    Key = "too_many_requests"
	Internal           Key = "internal"
)

var supported = []language.Tag{
	language.Arabic,
	language.English,
}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[Key]string{
	language.Arabic: {
		ClientRequired:     "يرجى اختيار العميل",
		LineItemsRequired:  "يرجى إضافة بند واحد على الأقل",
		SaveFailed:         "حدث خطأ أثناء حفظ الفاتورة",
		InvalidCredentials: "خطأ في البريد الإلكتروني أو كلمة المرور",
		Unauthorized:       "يرجى تسجيل الدخول",
		InvoiceNotFound:    "الفاتورة غير موجودة",
		NotFound:           "العنصر غير موجود",
		InvalidTransition:  "لا يمكن تغيير حالة الفاتورة",
		InvalidRequest:     "البيانات المدخلة غير صحيحة",
		TooManyRequests:    "محاولات كثيرة، يرجى المحاولة لاحقاً",
		Internal:           "حدث خطأ غير متوقع",
	},
	language.English: {
		ClientRequired:     "Please select a client",
		LineItemsRequired:  "Please add at least one line item",
		SaveFailed:         "Something went wrong while saving the invoice",
		InvalidCredentials: "Incorrect email or password",
		Unauthorized:       "Please sign in",
		InvoiceNotFound:    "Invoice not found",
		NotFound:           "Not found",
		InvalidTransition:  "The invoice cannot move to that status",
		InvalidRequest:     "The submitted data is invalid",
		TooManyRequests:    "Too many attempts, please try again later",
		Internal:           "Something went wrong",
	},
}

// Localizer resolves messages for one request's language.
type Localizer struct {
	tag language.Tag
}

// Default is the language used when the request expresses no usable preference.
var Default = language.Arabic

// New picks the best supported language for an Accept-Language header value.
func New(acceptLanguage string, fallback language.Tag) Localizer {
	if fallback == language.Und {
		fallback = Default
	}
	if acceptLanguage == "" {
		return Localizer{tag: base(fallback)}
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Localizer{tag: base(fallback)}
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Localizer{tag: base(fallback)}
	}
	return Localizer{tag: supported[index]}
}

// ParseDefault maps a configured locale such as "en" to a supported tag.
func ParseDefault(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return Default
	}
	return base(tag)
}

func (l Localizer) Tag() language.Tag {
	return l.tag
}

func (l Localizer) T(key Key) string {
	if msg, ok := catalog[l.tag][key]; ok {
		return msg
	}
	if msg, ok := catalog[Default][key]; ok {
		return msg
	}
	return string(key)
}

func base(tag language.Tag) language.Tag {
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Default
	}
	return supported[index]
}
