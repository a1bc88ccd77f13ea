package presenters

import (
	"context"
	"fmt"
	"ratingd/internal/models"
	"ratingd/internal/services"
	"sync"
)

// ScriptedPresenter answers dialogs from a preset queue. Once the queue is
// empty every dialog is dismissed without an answer.
type ScriptedPresenter struct {
	mu      sync.Mutex
	answers []models.Action
}

func NewScriptedPresenter(answers ...models.Action) *ScriptedPresenter {
	return &ScriptedPresenter{answers: answers}
}

// ParseAnswers converts answer names such as "accept" or "later" into actions.
func ParseAnswers(raw []string) ([]models.Action, error) {
	out := make([]models.Action, 0, len(raw))
	for _, s := range raw {
		a, err := models.ParseAction(s)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (p *ScriptedPresenter) Present(_ context.Context, d models.Dialog) (models.Action, error) {
	if len(d.Choices) == 0 {
		return 0, fmt.Errorf("dialog %q has no choices", d.Title)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.answers) == 0 {
		return 0, models.ErrDismissed
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

// Remaining is the number of unused answers.
func (p *ScriptedPresenter) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.answers)
}

// NewDismissingPresenter closes every dialog without an answer. The daemon
// uses it when a request carries no answers.
func NewDismissingPresenter() services.Presenter {
	return NewScriptedPresenter()
}
