package models

// Outcome is how a prompt cycle ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeAccepted
	OutcomeDeclined
	OutcomeDelayed
	OutcomeDeclinedAtGate
	OutcomeNativeReview
	// OutcomeDismissed means the dialog was closed without an answer.
	OutcomeDismissed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeDeclined:
		return "declined"
	case OutcomeDelayed:
		return "delayed"
	case OutcomeDeclinedAtGate:
		return "declined_at_gate"
	case OutcomeNativeReview:
		return "native_review"
	case OutcomeDismissed:
		return "dismissed"
	default:
		return "none"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Suppresses reports whether the outcome sets a permanent "don't ask again" marker.
func (o Outcome) Suppresses() bool {
	return o == OutcomeAccepted || o == OutcomeDeclined || o == OutcomeDeclinedAtGate
}

type UsageKind int

const (
	UsageUse UsageKind = iota
	UsagePositiveInteraction
)

func (k UsageKind) String() string {
	if k == UsagePositiveInteraction {
		return "positive"
	}
	return "use"
}
