package presenters

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"ratingd/internal/models"
	"strconv"
	"strings"
)

// TerminalPresenter renders dialogs as numbered menus and reads the answer line by line.
type TerminalPresenter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminalPresenter(in io.Reader, out io.Writer) *TerminalPresenter {
	return &TerminalPresenter{in: bufio.NewReader(in), out: out}
}

// Present blocks until a valid choice is read. End of input dismisses the dialog.
func (p *TerminalPresenter) Present(ctx context.Context, d models.Dialog) (models.Action, error) {
	if len(d.Choices) == 0 {
		return 0, fmt.Errorf("dialog %q has no choices", d.Title)
	}

	if d.Title != "" {
		fmt.Fprintf(p.out, "\n%s\n", d.Title)
	}
	if d.Message != "" {
		fmt.Fprintf(p.out, "%s\n", d.Message)
	}
	for i, c := range d.Choices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, c.Label)
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprint(p.out, "> ")

		line, err := p.in.ReadString('\n')
		if err != nil && !(err == io.EOF && line != "") {
			if err == io.EOF {
				fmt.Fprintln(p.out)
				return 0, models.ErrDismissed
			}
			return 0, err
		}

		if c, ok := pick(d, strings.TrimSpace(line)); ok {
			return c.Action, nil
		}
		fmt.Fprintf(p.out, "Please enter a number between 1 and %d.\n", len(d.Choices))
	}
}

// pick accepts a 1-based index, a label or an action name.
func pick(d models.Dialog, answer string) (models.Choice, bool) {
	if answer == "" {
		return models.Choice{}, false
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(d.Choices) {
			return models.Choice{}, false
		}
		return d.Choices[n-1], true
	}
	for _, c := range d.Choices {
		if strings.EqualFold(c.Label, answer) {
			return c, true
		}
	}
	if a, err := models.ParseAction(answer); err == nil && d.Has(a) {
		for _, c := range d.Choices {
			if c.Action == a {
				return c, true
			}
		}
	}
	return models.Choice{}, false
}
