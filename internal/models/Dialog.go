package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDismissed is returned by a presenter when the dialog was closed without
// an answer, for example on end of input. It is not a decline.
var ErrDismissed = errors.New("dialog dismissed without an answer")

// Action is what the user picked in a dialog.
type Action int

const (
	ActionAccept Action = iota + 1
	ActionDelay
	ActionDecline
)

func (a Action) String() string {
	switch a {
	case ActionAccept:
		return "accept"
	case ActionDelay:
		return "delay"
	case ActionDecline:
		return "decline"
	default:
		return "unknown"
	}
}

func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept", "yes":
		return ActionAccept, nil
	case "delay", "later":
		return ActionDelay, nil
	case "decline", "no":
		return ActionDecline, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(b []byte) error {
	parsed, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

type ChoiceStyle int

const (
	StyleDefault ChoiceStyle = iota
	StyleCancel
)

type Choice struct {
	Label  string
	Action Action
	Style  ChoiceStyle
}

// Dialog is a modal with an ordered list of choices. Exactly one choice is picked.
type Dialog struct {
	Title   string
	Message string
	Choices []Choice
}

// CancelChoice returns the choice marked StyleCancel, or the last one.
// It reports false for a dialog without choices.
func (d Dialog) CancelChoice() (Choice, bool) {
	if len(d.Choices) == 0 {
		return Choice{}, false
	}
	for _, c := range d.Choices {
		if c.Style == StyleCancel {
			return c, true
		}
	}
	return d.Choices[len(d.Choices)-1], true
}

func (d Dialog) Has(a Action) bool {
	for _, c := range d.Choices {
		if c.Action == a {
			return true
		}
	}
	return false
}
