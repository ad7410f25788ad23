package token

// GenericVariable matches a variable name with an optional type argument
// list, such as "count<int>" or "Map<string,int?>".
type GenericVariable struct{}

// NewProcessor implements [Matcher].
func (GenericVariable) NewProcessor() Processor {
	return &genericProcessor{}
}

// Translate implements [Translator]. Generic variable tokens are used as
// written.
func (GenericVariable) Translate(token string, _ Processor) string {
	return token
}

type genericProcessor struct {
	sawFirst bool
	sawOpen  bool
	sawClose bool
}

func (p *genericProcessor) Reset() {
	*p = genericProcessor{}
}

func (p *genericProcessor) ProcessChar(c rune, _ string, _ int) State {
	switch {
	case p.sawClose:
		return Success

	case !p.sawFirst:
		p.sawFirst = true

		return verdict(isFirst(c), Fail)

	case !p.sawOpen:
		if c == '<' {
			p.sawOpen = true

			return Valid
		}

		return verdict(isNext(c), Success)

	case c == '>':
		p.sawClose = true

		return Valid

	default:
		return verdict(isNext(c) || c == ',' || c == '?', Fail)
	}
}

// Complete implements [Finisher]: a plain name or a closed argument list
// may end the input.
func (p *genericProcessor) Complete() bool {
	return p.sawFirst && (!p.sawOpen || p.sawClose)
}

func verdict(ok bool, otherwise State) State {
	if ok {
		return Valid
	}

	return otherwise
}

func isFirst(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' ||
		c == '_' || c == '@' || c == '$'
}

func isNext(c rune) bool {
	return isFirst(c) || '0' <= c && c <= '9'
}
