package domain

// Status is the invoice lifecycle state.
type Status string

const (
	StatusDraft Status = "draft"
	StatusSent  Status = "sent"
	StatusPaid  Status = "paid"
	// StatusOverdue is only ever set by an external process and is never derived here.
	StatusOverdue Status = "overdue"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	default:
		return false
	}
}

// CanMarkSent reports whether s may move to sent.
func CanMarkSent(s Status) bool {
	return s == StatusDraft
}

// CanMarkPaid reports whether s may move to paid.
func CanMarkPaid(s Status) bool {
	return s != StatusPaid
}

// CanTransition reports whether from may move to to. Paid is terminal.
func CanTransition(from, to Status) bool {
	switch to {
	case StatusSent:
		return CanMarkSent(from)
	case StatusPaid:
		return CanMarkPaid(from)
	default:
		return false
	}
}

type Action string

const (
	ActionMarkPaid Action = "mark_paid"
	ActionMarkSent Action = "mark_sent"
)

// AvailableActions lists the transitions a presenter may offer for s.
func AvailableActions(s Status) []Action {
	actions := make([]Action, 0, 2)
	if CanMarkPaid(s) {
		actions = append(actions, ActionMarkPaid)
	}
	if CanMarkSent(s) {
		actions = append(actions, ActionMarkSent)
	}
	return actions
}

type Tone string

const (
	ToneSuccess Tone = "success"
	ToneNeutral Tone = "neutral"
	ToneInfo    Tone = "info"
	ToneDanger  Tone = "danger"
)

// StatusPresentation is how a status is shown to people.
type StatusPresentation struct {
	Status  Status `json:"status"`
	Label   string `json:"label"`
	LabelAR string `json:"label_ar"`
	Tone    Tone   `json:"tone"`
}

func PresentStatus(s Status) StatusPresentation {
	switch s {
	case StatusPaid:
		return StatusPresentation{Status: s, Label: "Paid", LabelAR: "مدفوعة", Tone: ToneSuccess}
	case StatusDraft:
		return StatusPresentation{Status: s, Label: "Draft", LabelAR: "مسودة", Tone: ToneNeutral}
	case StatusSent:
		return StatusPresentation{Status: s, Label: "Sent", LabelAR: "مرسلة", Tone: ToneInfo}
	case StatusOverdue:
		return StatusPresentation{Status: s, Label: "Overdue", LabelAR: "متأخرة", Tone: ToneDanger}
	default:
		return StatusPresentation{Status: s, Label: string(s), LabelAR: string(s), Tone: ToneNeutral}
	}
}
