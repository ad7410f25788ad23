package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/duck/token"
)

// Tokens prints the tokens the matchers find in text.
type Tokens struct {
	Text   string `arg:"" help:"Text to scan"                           name:"text"`
	Quoted bool   `       help:"Also match quoted string literals"      default:"true" negatable:""`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) error {
	matchers := []token.Matcher{token.GenericVariable{}}
	if t.Quoted {
		matchers = append(matchers, token.Quoted{})
	}

	w := stdout(ctx)

	for m := range token.All(t.Text, matchers...) {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", m.Offset, kind(m.Matcher), m.Token); err != nil {
			return ErrOutput.Wrap(err)
		}
	}

	return nil
}

func kind(m token.Matcher) string {
	switch m.(type) {
	case token.GenericVariable:
		return "generic"
	case token.Quoted:
		return "quoted"
	default:
		return fmt.Sprintf("%T", m)
	}
}
