package token

import (
	"iter"
	"unicode/utf8"
)

// Match is a token recognized by [Scan].
type Match struct {
	Matcher Matcher
	Offset  int    // byte offset of the token in the input
	Text    string // token as written
	Token   string // token after translation
}

// End returns the byte offset just past the token.
func (m Match) End() int { return m.Offset + len(m.Text) }

// Scan runs every matcher from offset and returns the longest token
// recognized. Ties go to the earliest matcher. A processor still accepting
// characters when the input ends succeeds only if it is a complete
// [Finisher] (or not a Finisher at all).
func Scan(input string, offset int, matchers ...Matcher) (Match, bool) {
	var (
		best  Match
		found bool
	)

	for _, m := range matchers {
		p := m.NewProcessor()

		n, ok := run(p, input, offset)
		if !ok || n == 0 || (found && n <= len(best.Text)) {
			continue
		}

		text := input[offset : offset+n]
		tok := text

		if t, ok := m.(Translator); ok {
			tok = t.Translate(text, p)
		}

		best = Match{Matcher: m, Offset: offset, Text: text, Token: tok}
		found = true
	}

	return best, found
}

// All returns the successive tokens of input recognized by matchers.
// Characters no matcher accepts are skipped.
func All(input string, matchers ...Matcher) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		for offset := 0; offset < len(input); {
			m, ok := Scan(input, offset, matchers...)
			if !ok {
				_, size := utf8.DecodeRuneInString(input[offset:])
				offset += size

				continue
			}

			if !yield(m) {
				return
			}

			offset = m.End()
		}
	}
}

// run feeds input from offset to p and returns the byte length of the
// token it recognized.
func run(p Processor, input string, offset int) (int, bool) {
	for i, c := range input[offset:] {
		switch p.ProcessChar(c, input, offset+i) {
		case Valid:
		case Success:
			return i, true
		default:
			return 0, false
		}
	}

	if f, ok := p.(Finisher); ok && !f.Complete() {
		return 0, false
	}

	return len(input) - offset, true
}
