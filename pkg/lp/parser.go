package lp

import (
	"fmt"
	"strings"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
)

// ParseError reports malformed LP syntax. Parse errors are fatal; the
// parser never recovers or resynchronizes.
type ParseError struct {
	Pos      Position
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// Code satisfies the error taxonomy.
func (e *ParseError) Code() apperrors.Code { return apperrors.ErrCodeParse }

// Parse builds a Problem from LP source text. The section order is
// fixed: sense, objectives, Subject To, constraints, then optional
// sections (Bounds, type declarations, SOS) in any order, then End.
func Parse(src string) (*Problem, error) {
	lex := NewLexer(src)
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	p := &parser{toks: toks, comments: lex.Comments(), prob: NewProblem()}
	if err := p.parseProblem(); err != nil {
		return nil, err
	}
	return p.prob, nil
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(src []byte) (*Problem, error) {
	return Parse(string(src))
}

type parser struct {
	toks     []Token
	pos      int
	comments []Comment
	prob     *Problem
}

func (p *parser) cur() Token { return p.toks[p.pos] }

func (p *parser) peek(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenIdentifier, TokenNumber:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	default:
		return tok.Kind.String()
	}
}

func (p *parser) errExpected(expected string) error {
	tok := p.cur()
	return &ParseError{Pos: tok.Pos, Expected: expected, Found: describe(tok)}
}

func (p *parser) parseProblem() error {
	sense := p.cur()
	if sense.Kind != TokenSense {
		return p.errExpected("sense keyword")
	}
	p.prob.SetSense(sense.Sense)
	p.prob.SetName(headerName(p.comments, sense.Pos.Offset))
	p.next()

	if err := p.parseObjectives(); err != nil {
		return err
	}
	if p.cur().Kind != TokenSubjectTo {
		return p.errExpected("'Subject To'")
	}
	p.next()
	if p.cur().Kind == TokenColon {
		p.next()
	}
	if err := p.parseConstraints(); err != nil {
		return err
	}

	for {
		switch p.cur().Kind {
		case TokenBounds:
			if err := p.parseBounds(); err != nil {
				return err
			}
		case TokenGenerals:
			p.parseVarList(KindGeneral)
		case TokenIntegers:
			p.parseVarList(KindInteger)
		case TokenBinaries:
			p.parseVarList(KindBinary)
		case TokenSemiContinuous:
			p.parseVarList(KindSemiContinuous)
		case TokenFree:
			p.parseVarList(KindFree)
		case TokenSOSSection:
			if err := p.parseSOSSection(); err != nil {
				return err
			}
		case TokenEnd:
			p.next()
			if p.cur().Kind != TokenEOF {
				return p.errExpected("end of input")
			}
			return nil
		case TokenEOF:
			return p.errExpected("'End'")
		default:
			return p.errExpected("section keyword or 'End'")
		}
	}
}

// headerName extracts the problem name from a leading comment of the
// form "Problem name: NAME" appearing before the sense keyword.
func headerName(comments []Comment, senseOffset int) string {
	for _, c := range comments {
		if c.Pos.Offset >= senseOffset {
			break
		}
		rest, ok := cutPrefixFold(c.Text, "problem name:")
		if ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

func (p *parser) parseObjectives() error {
	for p.cur().Kind != TokenSubjectTo {
		if p.cur().Kind == TokenEOF {
			return p.errExpected("'Subject To'")
		}
		name := ""
		if p.cur().Kind == TokenIdentifier && p.peek(1).Kind == TokenColon {
			name = p.cur().Text
			p.next()
			p.next()
		}
		expr, err := p.parseExpression()
		if err != nil {
			return err
		}
		if name == "" && expr.Len() == 0 {
			// No label and no terms consumed: not an objective.
			return p.errExpected("'Subject To'")
		}
		if name == "" {
			name = p.nextObjectiveName()
		}
		p.prob.AddObjective(Objective{Name: name, Expr: expr})
	}
	return nil
}

// nextObjectiveName generates a name for an unlabeled objective,
// skipping names already taken by explicitly labeled ones.
func (p *parser) nextObjectiveName() string {
	if p.prob.ObjectiveCount() == 0 {
		return "obj"
	}
	for n := p.prob.ObjectiveCount() + 1; ; n++ {
		name := fmt.Sprintf("obj_%d", n)
		if _, ok := p.prob.Objective(name); !ok {
			return name
		}
	}
}

// nextConstraintName generates a name for an unlabeled constraint,
// skipping names already taken by explicitly labeled ones.
func (p *parser) nextConstraintName() string {
	for n := p.prob.ConstraintCount() + 1; ; n++ {
		name := fmt.Sprintf("c_%d", n)
		if _, ok := p.prob.Constraint(name); !ok {
			return name
		}
	}
}

// parseExpression reads a linear expression: a first (optionally
// signed) term followed by sign-prefixed terms. The mandatory sign on
// subsequent terms is what terminates the expression deterministically.
func (p *parser) parseExpression() (*Expression, error) {
	expr := NewExpression()
	first := true
	for {
		sign := 1.0
		hasSign := false
		for p.cur().Kind == TokenPlus || p.cur().Kind == TokenMinus {
			if p.cur().Kind == TokenMinus {
				sign = -sign
			}
			hasSign = true
			p.next()
		}
		if !hasSign {
			if !first {
				return expr, nil
			}
			switch p.cur().Kind {
			case TokenNumber:
			case TokenIdentifier:
				if p.peek(1).Kind == TokenColon {
					return expr, nil // label of the next entry
				}
			default:
				return expr, nil // empty expression
			}
		}
		coeff := sign
		if p.cur().Kind == TokenNumber {
			coeff = sign * p.next().Value
		}
		if p.cur().Kind != TokenIdentifier {
			return nil, p.errExpected("variable name")
		}
		name := p.next().Text
		// Repeated mentions of a variable accumulate.
		if prev, ok := expr.Coefficient(name); ok {
			coeff += prev
		}
		expr.Set(name, coeff)
		first = false
	}
}

func (p *parser) atSectionBoundary() bool {
	switch p.cur().Kind {
	case TokenBounds, TokenGenerals, TokenIntegers, TokenBinaries,
		TokenSemiContinuous, TokenFree, TokenSOSSection, TokenEnd, TokenEOF:
		return true
	}
	return false
}

func (p *parser) parseConstraints() error {
	for !p.atSectionBoundary() {
		name := ""
		if p.cur().Kind == TokenIdentifier && p.peek(1).Kind == TokenColon {
			name = p.cur().Text
			p.next()
			p.next()
		}
		expr, err := p.parseExpression()
		if err != nil {
			return err
		}
		op, err := p.parseRelOp()
		if err != nil {
			return err
		}
		rhs, err := p.parseSignedNumber()
		if err != nil {
			return err
		}
		if name == "" {
			name = p.nextConstraintName()
		}
		p.prob.AddConstraint(Constraint{
			Name: name,
			Kind: ConstraintStandard,
			Expr: expr,
			Op:   op,
			RHS:  rhs,
		})
	}
	if p.cur().Kind == TokenEOF {
		return p.errExpected("'End'")
	}
	return nil
}

// parseRelOp reads a relational operator, normalizing the strict forms
// < and > to <= and >=.
func (p *parser) parseRelOp() (RelOp, error) {
	switch p.cur().Kind {
	case TokenLE, TokenLT:
		p.next()
		return OpLE, nil
	case TokenGE, TokenGT:
		p.next()
		return OpGE, nil
	case TokenEQ:
		p.next()
		return OpEQ, nil
	default:
		return OpLE, p.errExpected("relational operator")
	}
}

func (p *parser) parseSignedNumber() (float64, error) {
	sign := 1.0
	for p.cur().Kind == TokenPlus || p.cur().Kind == TokenMinus {
		if p.cur().Kind == TokenMinus {
			sign = -sign
		}
		p.next()
	}
	if p.cur().Kind != TokenNumber {
		return 0, p.errExpected("number")
	}
	return sign * p.next().Value, nil
}

// parseBounds reads bound declarations until the next section. Forms:
// "x free", "x <= n", "x >= n", "x = n", "n <= x", "n <= x <= m" and
// the mirrored ">=" chain.
func (p *parser) parseBounds() error {
	p.next() // Bounds
	for !p.atSectionBoundary() {
		switch p.cur().Kind {
		case TokenNumber, TokenPlus, TokenMinus:
			if err := p.parseBoundChain(); err != nil {
				return err
			}
		case TokenIdentifier:
			if err := p.parseVarBound(); err != nil {
				return err
			}
		default:
			return p.errExpected("bound declaration")
		}
	}
	return nil
}

// parseBoundChain handles bounds that lead with a number:
// "n <= x [<= m]" and "n >= x [>= m]".
func (p *parser) parseBoundChain() error {
	first, err := p.parseSignedNumber()
	if err != nil {
		return err
	}
	op, err := p.parseRelOp()
	if err != nil {
		return err
	}
	if op == OpEQ {
		return p.errExpected("'<=' or '>='")
	}
	if p.cur().Kind != TokenIdentifier {
		return p.errExpected("variable name")
	}
	name := p.next().Text
	i := p.prob.ensureVariable(name)
	v := &p.prob.variables[i]
	v.BoundsSet = true
	if op == OpLE {
		v.Lower = first
	} else {
		v.Upper = first
	}
	switch p.cur().Kind {
	case TokenLE, TokenLT, TokenGE, TokenGT:
		second, err := p.parseRelOp()
		if err != nil {
			return err
		}
		val, err := p.parseSignedNumber()
		if err != nil {
			return err
		}
		if second == OpLE {
			v.Upper = val
		} else {
			v.Lower = val
		}
	}
	return nil
}

// parseVarBound handles bounds that lead with a variable name:
// "x free", "x <= n", "x >= n", "x = n".
func (p *parser) parseVarBound() error {
	name := p.next().Text
	i := p.prob.ensureVariable(name)
	if p.cur().Kind == TokenFree {
		p.next()
		v := &p.prob.variables[i]
		v.Kind = KindFree
		v.Lower, v.Upper = DefaultBounds(KindFree)
		v.BoundsSet = false
		return nil
	}
	op, err := p.parseRelOp()
	if err != nil {
		return err
	}
	val, err := p.parseSignedNumber()
	if err != nil {
		return err
	}
	v := &p.prob.variables[i]
	v.BoundsSet = true
	switch op {
	case OpLE:
		v.Upper = val
	case OpGE:
		v.Lower = val
	case OpEQ:
		v.Lower = val
		v.Upper = val
	}
	return nil
}

// parseVarList reads a run of identifiers after a type-section keyword
// and assigns them the kind.
func (p *parser) parseVarList(kind VarKind) {
	p.next() // section keyword
	for p.cur().Kind == TokenIdentifier {
		p.prob.applyKind(p.next().Text, kind)
	}
}

// applyKind sets a variable's kind. Kind-default bounds apply unless
// the variable carries explicit bounds.
func (p *Problem) applyKind(name string, kind VarKind) {
	i := p.ensureVariable(name)
	v := &p.variables[i]
	v.Kind = kind
	if !v.BoundsSet {
		v.Lower, v.Upper = DefaultBounds(kind)
	}
}

// parseSOSSection reads SOS entries: "name: S1:: v1:w1 v2:w2 ...".
// A weight pair is distinguished from the label of the next entry by
// what follows its colon.
func (p *parser) parseSOSSection() error {
	p.next() // SOS keyword
	for !p.atSectionBoundary() {
		name := ""
		if p.cur().Kind == TokenIdentifier && p.peek(1).Kind == TokenColon {
			name = p.cur().Text
			p.next()
			p.next()
		}
		if p.cur().Kind != TokenSOSType {
			return p.errExpected("SOS type (S1 or S2)")
		}
		typ := p.next().SOS
		if p.cur().Kind != TokenDoubleColon {
			return p.errExpected("'::'")
		}
		p.next()

		var weights []Term
		for p.cur().Kind == TokenIdentifier && p.peek(1).Kind == TokenColon &&
			p.peek(2).Kind != TokenSOSType {
			variable := p.next().Text
			p.next() // colon
			w, err := p.parseSignedNumber()
			if err != nil {
				return err
			}
			weights = append(weights, Term{Variable: variable, Coefficient: w})
		}
		if name == "" {
			name = p.nextConstraintName()
		}
		p.prob.AddConstraint(Constraint{
			Name:    name,
			Kind:    ConstraintSOS,
			SOSType: typ,
			Weights: weights,
		})
	}
	return nil
}
