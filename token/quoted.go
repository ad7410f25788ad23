package token

// Quoted matches a string literal delimited by '"', '\'' or '`'. A
// backslash escapes the following character except inside backquotes.
type Quoted struct{}

// NewProcessor implements [Matcher].
func (Quoted) NewProcessor() Processor {
	return &quotedProcessor{}
}

type quotedProcessor struct {
	quote  rune
	escape bool
	closed bool
}

func (p *quotedProcessor) Reset() {
	*p = quotedProcessor{}
}

func (p *quotedProcessor) ProcessChar(c rune, _ string, _ int) State {
	switch {
	case p.closed:
		return Success

	case p.quote == 0:
		if c != '"' && c != '\'' && c != '`' {
			return Fail
		}

		p.quote = c

	case p.escape:
		p.escape = false

	case c == '\\' && p.quote != '`':
		p.escape = true

	case c == p.quote:
		p.closed = true
	}

	return Valid
}

func (p *quotedProcessor) Complete() bool {
	return p.closed
}
