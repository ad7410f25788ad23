package token

// State is the verdict a [Processor] returns for one character.
type State uint8

const (
	// Valid means the character was accepted and the token may continue.
	Valid State = iota
	// Success means the token was complete before the character.
	Success
	// Fail means the candidate is not this kind of token.
	Fail
)

func (s State) String() string {
	switch s {
	case Valid:
		return "valid"
	case Success:
		return "success"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

// Matcher creates processors for one kind of token.
type Matcher interface {
	NewProcessor() Processor
}

// Processor recognizes a single token. ProcessChar receives each character
// together with the full input and the character's byte offset in it.
type Processor interface {
	ProcessChar(c rune, input string, offset int) State
	// Reset returns the processor to its initial state so that it can be
	// retried from the same offset.
	Reset()
}

// Finisher is implemented by processors that can tell whether the token
// consumed so far is acceptable when the input ends.
type Finisher interface {
	Complete() bool
}

// Translator is implemented by matchers that rewrite the text of a token
// they recognized.
type Translator interface {
	Translate(token string, p Processor) string
}
