package lp

import "fmt"

// TokenKind enumerates the lexical classes of the LP grammar.
type TokenKind int

const (
	TokenEOF TokenKind = iota

	// Section keywords. Each keyword covers its case-insensitive aliases
	// (Minimize/minimise/min, Subject To/such that/s.t./st, ...).
	TokenSense
	TokenSubjectTo
	TokenBounds
	TokenGenerals
	TokenIntegers
	TokenBinaries
	TokenSemiContinuous
	TokenSOSSection
	TokenFree
	TokenEnd

	// Literals.
	TokenNumber     // numeric literal, inf/infinity included
	TokenIdentifier // variable, objective, or constraint name
	TokenSOSType    // S1 or S2

	// Operators and punctuation.
	TokenLE // <= or =<
	TokenGE // >= or =>
	TokenEQ // =
	TokenLT // < (normalized to <= by the parser)
	TokenGT // > (normalized to >= by the parser)
	TokenPlus
	TokenMinus
	TokenColon
	TokenDoubleColon
)

// String returns a human-readable name for the token kind, used in
// parse error messages.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenSense:
		return "sense keyword"
	case TokenSubjectTo:
		return "'Subject To'"
	case TokenBounds:
		return "'Bounds'"
	case TokenGenerals:
		return "'Generals'"
	case TokenIntegers:
		return "'Integers'"
	case TokenBinaries:
		return "'Binaries'"
	case TokenSemiContinuous:
		return "'Semi-Continuous'"
	case TokenSOSSection:
		return "'SOS'"
	case TokenFree:
		return "'Free'"
	case TokenEnd:
		return "'End'"
	case TokenNumber:
		return "number"
	case TokenIdentifier:
		return "identifier"
	case TokenSOSType:
		return "SOS type"
	case TokenLE:
		return "'<='"
	case TokenGE:
		return "'>='"
	case TokenEQ:
		return "'='"
	case TokenLT:
		return "'<'"
	case TokenGT:
		return "'>'"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenColon:
		return "':'"
	case TokenDoubleColon:
		return "'::'"
	default:
		return "unknown token"
	}
}

// Position locates a token or error in the source text. Line and Column
// are 1-based; Offset is the byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token is a lexical unit. Text is the raw source slice. Value is set
// for TokenNumber, Sense for TokenSense, and SOS for TokenSOSType.
type Token struct {
	Kind  TokenKind
	Text  string
	Value float64
	Sense Sense
	SOS   SOSType
	Pos   Position
}

// Comment is a source comment kept out of the grammar token stream but
// retained for header inspection, e.g. "\Problem name: diet".
type Comment struct {
	Text string // comment body without delimiters, trimmed
	Pos  Position
}
