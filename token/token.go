// Package token defines the token alphabet the lexer emits and the parser
// consumes (spec.md §3).
package token

import "fmt"

// Kind tags the variant of a Token.
type Kind int

const (
	// Payload-carrying kinds.
	Nonterminal Kind = iota
	Terminal
	Special
	Integer

	// Punctuation singletons.
	Concatenation        // ,
	Definition           // =
	DefinitionSeparator  // | / !
	StartGroup           // (
	EndGroup             // )
	StartOption          // [ or (/
	EndOption            // ] or /)
	StartRepeat          // { or (:
	EndRepeat            // } or :)
	Exception            // -
	Repetition           // *
	Terminator           // ; or .

	// EOF is not a spec.md token kind, but every lexer needs a sentinel to
	// report end of input to the parser without a separate bool return.
	EOF
)

func (k Kind) String() string {
	switch k {
	case Nonterminal:
		return "identifier"
	case Terminal:
		return "terminal"
	case Special:
		return "special sequence"
	case Integer:
		return "integer"
	case Concatenation:
		return "','"
	case Definition:
		return "'='"
	case DefinitionSeparator:
		return "'|'"
	case StartGroup:
		return "'('"
	case EndGroup:
		return "')'"
	case StartOption:
		return "'[' or '(/'"
	case EndOption:
		return "']' or '/)'"
	case StartRepeat:
		return "'{' or '(:'"
	case EndRepeat:
		return "'}' or ':)'"
	case Exception:
		return "'-'"
	case Repetition:
		return "'*'"
	case Terminator:
		return "';' or '.'"
	case EOF:
		return "end of input"
	default:
		return "unknown"
	}
}

// Token is a tagged variant. Only the fields relevant to Kind are
// meaningful:
//
//   - Nonterminal, Terminal, Special: Text holds the identifier name, the
//     terminal's literal body, or the special sequence's body.
//   - Integer: Value holds the decimal value of the digit run.
//   - everything else: no payload.
type Token struct {
	Kind  Kind
	Text  string
	Value uint64
}

func (t Token) String() string {
	switch t.Kind {
	case Nonterminal:
		return t.Text
	case Terminal:
		return fmt.Sprintf("%q", t.Text)
	case Special:
		return fmt.Sprintf("?%s?", t.Text)
	case Integer:
		return fmt.Sprintf("%d", t.Value)
	default:
		return t.Kind.String()
	}
}
