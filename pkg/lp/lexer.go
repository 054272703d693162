package lp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
)

// LexError reports a malformed lexical unit, such as an unterminated
// block comment or an unparseable numeric literal.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Message)
}

// Code satisfies the error taxonomy; lexical failures surface as parse errors.
func (e *LexError) Code() apperrors.Code { return apperrors.ErrCodeParse }

// Lexer tokenizes LP source text on demand. Comments are collected on
// the side rather than emitted as tokens.
type Lexer struct {
	src      string
	pos      int
	line     int
	column   int
	comments []Comment
}

// NewLexer returns a lexer over src positioned at the first byte.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, column: 1}
}

// Comments returns the comments encountered so far, in source order.
func (l *Lexer) Comments() []Comment {
	return l.comments
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isWordStart reports whether ch can open an identifier. LP names admit
// a generous punctuation set but must not start with a digit.
func isWordStart(ch byte) bool {
	if isLetter(ch) || ch == '_' {
		return true
	}
	switch ch {
	case '!', '#', '$', '%', '&', '(', ')', ',', '.', ';', '?', '@', '{', '}', '~', '\'':
		return true
	}
	return false
}

func isWordPart(ch byte) bool {
	return isWordStart(ch) || isDigit(ch)
}

// skipSpaceAndComments consumes whitespace and comments, appending
// comments to the side channel. Returns an error for an unterminated
// block comment.
func (l *Lexer) skipSpaceAndComments() error {
	for l.pos < len(l.src) {
		ch := l.peekByte()
		switch {
		case isSpace(ch):
			l.advance()
		case ch == '\\':
			if err := l.scanComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) scanComment() error {
	start := l.position()
	l.advance() // backslash
	if l.peekByte() == '*' {
		l.advance()
		bodyStart := l.pos
		for l.pos < len(l.src) {
			if l.peekByte() == '*' && l.peekByteAt(1) == '\\' {
				body := l.src[bodyStart:l.pos]
				l.advance()
				l.advance()
				l.comments = append(l.comments, Comment{Text: strings.TrimSpace(body), Pos: start})
				return nil
			}
			l.advance()
		}
		return &LexError{Pos: start, Message: "unterminated block comment"}
	}
	bodyStart := l.pos
	for l.pos < len(l.src) && l.peekByte() != '\n' {
		l.advance()
	}
	body := l.src[bodyStart:l.pos]
	l.comments = append(l.comments, Comment{Text: strings.TrimSpace(body), Pos: start})
	return nil
}

// Next returns the next grammar token, or TokenEOF at end of input.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return Token{}, err
	}
	pos := l.position()
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Pos: pos}, nil
	}

	ch := l.peekByte()
	switch {
	case ch == '<':
		l.advance()
		if l.peekByte() == '=' {
			l.advance()
			return Token{Kind: TokenLE, Text: "<=", Pos: pos}, nil
		}
		return Token{Kind: TokenLT, Text: "<", Pos: pos}, nil
	case ch == '>':
		l.advance()
		if l.peekByte() == '=' {
			l.advance()
			return Token{Kind: TokenGE, Text: ">=", Pos: pos}, nil
		}
		return Token{Kind: TokenGT, Text: ">", Pos: pos}, nil
	case ch == '=':
		l.advance()
		switch l.peekByte() {
		case '<':
			l.advance()
			return Token{Kind: TokenLE, Text: "=<", Pos: pos}, nil
		case '>':
			l.advance()
			return Token{Kind: TokenGE, Text: "=>", Pos: pos}, nil
		}
		return Token{Kind: TokenEQ, Text: "=", Pos: pos}, nil
	case ch == '+':
		l.advance()
		return Token{Kind: TokenPlus, Text: "+", Pos: pos}, nil
	case ch == '-':
		l.advance()
		return Token{Kind: TokenMinus, Text: "-", Pos: pos}, nil
	case ch == ':':
		l.advance()
		if l.peekByte() == ':' {
			l.advance()
			return Token{Kind: TokenDoubleColon, Text: "::", Pos: pos}, nil
		}
		return Token{Kind: TokenColon, Text: ":", Pos: pos}, nil
	case isDigit(ch) || (ch == '.' && isDigit(l.peekByteAt(1))):
		return l.scanNumber(pos)
	case isWordStart(ch):
		return l.scanWord(pos)
	default:
		l.advance()
		return Token{}, &LexError{Pos: pos, Message: fmt.Sprintf("unexpected character %q", string(ch))}
	}
}

func (l *Lexer) scanNumber(pos Position) (Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.peekByte()) {
		l.advance()
	}
	if l.peekByte() == '.' {
		l.advance()
		for l.pos < len(l.src) && isDigit(l.peekByte()) {
			l.advance()
		}
	}
	if ch := l.peekByte(); ch == 'e' || ch == 'E' {
		// Exponent only when followed by a (possibly signed) digit,
		// otherwise "2e" would swallow an adjacent identifier.
		next := l.peekByteAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekByteAt(2))) {
			l.advance()
			if ch := l.peekByte(); ch == '+' || ch == '-' {
				l.advance()
			}
			for l.pos < len(l.src) && isDigit(l.peekByte()) {
				l.advance()
			}
		}
	}
	text := l.src[start:l.pos]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, &LexError{Pos: pos, Message: fmt.Sprintf("malformed number %q", text)}
	}
	return Token{Kind: TokenNumber, Text: text, Value: value, Pos: pos}, nil
}

// scanWord reads an identifier-shaped run and classifies it against the
// keyword table. Keywords are reserved in every position.
func (l *Lexer) scanWord(pos Position) (Token, error) {
	word := l.readWord()
	lower := strings.ToLower(word)

	switch lower {
	case "minimize", "minimise", "minimum", "min":
		return Token{Kind: TokenSense, Text: word, Sense: SenseMinimize, Pos: pos}, nil
	case "maximize", "maximise", "maximum", "max":
		return Token{Kind: TokenSense, Text: word, Sense: SenseMaximize, Pos: pos}, nil
	case "subject", "such":
		want := "to"
		if lower == "such" {
			want = "that"
		}
		if l.nextWordIs(want) {
			return Token{Kind: TokenSubjectTo, Text: word, Pos: pos}, nil
		}
		return Token{Kind: TokenIdentifier, Text: word, Pos: pos}, nil
	case "st", "s.t.", "st.":
		return Token{Kind: TokenSubjectTo, Text: word, Pos: pos}, nil
	case "bound", "bounds":
		return Token{Kind: TokenBounds, Text: word, Pos: pos}, nil
	case "gen", "general", "generals":
		return Token{Kind: TokenGenerals, Text: word, Pos: pos}, nil
	case "integer", "integers":
		return Token{Kind: TokenIntegers, Text: word, Pos: pos}, nil
	case "bin", "binary", "binaries":
		return Token{Kind: TokenBinaries, Text: word, Pos: pos}, nil
	case "semi", "semis":
		// "semi-continuous" lexes as semi, '-', continuous.
		if l.peekByte() == '-' {
			save := *l
			l.advance()
			hyphenated := l.readWord()
			if strings.ToLower(hyphenated) != "continuous" {
				*l = save
			}
		}
		return Token{Kind: TokenSemiContinuous, Text: word, Pos: pos}, nil
	case "sos":
		return Token{Kind: TokenSOSSection, Text: word, Pos: pos}, nil
	case "end":
		return Token{Kind: TokenEnd, Text: word, Pos: pos}, nil
	case "free":
		return Token{Kind: TokenFree, Text: word, Pos: pos}, nil
	case "inf", "infinity":
		return Token{Kind: TokenNumber, Text: word, Value: math.Inf(1), Pos: pos}, nil
	case "s1":
		return Token{Kind: TokenSOSType, Text: word, SOS: SOS1, Pos: pos}, nil
	case "s2":
		return Token{Kind: TokenSOSType, Text: word, SOS: SOS2, Pos: pos}, nil
	default:
		return Token{Kind: TokenIdentifier, Text: word, Pos: pos}, nil
	}
}

func (l *Lexer) readWord() string {
	start := l.pos
	for l.pos < len(l.src) && isWordPart(l.peekByte()) {
		l.advance()
	}
	return l.src[start:l.pos]
}

// nextWordIs consumes the following word when it matches (case
// insensitively); otherwise the lexer state is left untouched.
func (l *Lexer) nextWordIs(want string) bool {
	save := *l
	if err := l.skipSpaceAndComments(); err != nil {
		*l = save
		return false
	}
	if l.pos >= len(l.src) || !isWordStart(l.peekByte()) {
		*l = save
		return false
	}
	if strings.ToLower(l.readWord()) == want {
		return true
	}
	*l = save
	return false
}
