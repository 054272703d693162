package lp

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
)

// Sense is the optimization direction of a problem.
type Sense int

const (
	// SenseMinimize is the default optimization sense.
	SenseMinimize Sense = iota
	SenseMaximize
)

// String returns the canonical LP keyword for the sense.
func (s Sense) String() string {
	if s == SenseMaximize {
		return "Maximize"
	}
	return "Minimize"
}

// ParseSense converts a sense string to a Sense. It accepts the same
// case-insensitive aliases as the lexer (min, minimise, maximum, ...).
func ParseSense(s string) (Sense, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimize", "minimise", "minimum", "min":
		return SenseMinimize, nil
	case "maximize", "maximise", "maximum", "max":
		return SenseMaximize, nil
	default:
		return SenseMinimize, apperrors.New(apperrors.ErrCodeValidation, "invalid sense: %q", s)
	}
}

// RelOp is the relational operator of a standard constraint.
// The strict forms < and > are normalized to <= and >= at parse time,
// matching common solver treatment.
type RelOp int

const (
	OpLE RelOp = iota // <=
	OpGE              // >=
	OpEQ              // =
)

// String returns the LP text form of the operator.
func (op RelOp) String() string {
	switch op {
	case OpGE:
		return ">="
	case OpEQ:
		return "="
	default:
		return "<="
	}
}

// ParseRelOp converts an operator string to a RelOp, normalizing the
// strict forms.
func ParseRelOp(s string) (RelOp, error) {
	switch strings.TrimSpace(s) {
	case "<=", "=<", "<":
		return OpLE, nil
	case ">=", "=>", ">":
		return OpGE, nil
	case "=", "==":
		return OpEQ, nil
	default:
		return OpLE, apperrors.New(apperrors.ErrCodeValidation, "invalid operator: %q", s)
	}
}

// VarKind classifies a variable. The zero value is the continuous default
// with bounds [0, +inf).
type VarKind int

const (
	KindContinuous VarKind = iota
	KindBinary
	KindInteger
	KindGeneral
	KindFree
	KindSemiContinuous
)

// String returns the display name of the kind.
func (k VarKind) String() string {
	switch k {
	case KindBinary:
		return "Binary"
	case KindInteger:
		return "Integer"
	case KindGeneral:
		return "General"
	case KindFree:
		return "Free"
	case KindSemiContinuous:
		return "Semi-Continuous"
	default:
		return "Continuous"
	}
}

// ParseVarKind converts a kind string to a VarKind. Accepted spellings are
// case-insensitive and include the section-keyword aliases.
func ParseVarKind(s string) (VarKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continuous":
		return KindContinuous, nil
	case "binary", "bin":
		return KindBinary, nil
	case "integer", "int":
		return KindInteger, nil
	case "general", "gen":
		return KindGeneral, nil
	case "free":
		return KindFree, nil
	case "semicontinuous", "semi-continuous", "semi_continuous", "semi":
		return KindSemiContinuous, nil
	default:
		return KindContinuous, apperrors.New(apperrors.ErrCodeValidation, "unknown variable type: %q", s)
	}
}

// DefaultBounds returns the implied bounds for a variable kind:
// binary [0,1], free (-inf,+inf), everything else [0,+inf).
func DefaultBounds(kind VarKind) (lower, upper float64) {
	switch kind {
	case KindBinary:
		return 0, 1
	case KindFree:
		return math.Inf(-1), math.Inf(1)
	default:
		return 0, math.Inf(1)
	}
}

// Variable is a named entity in the problem's variable table. Lower and
// Upper are always materialized (kind defaults when not declared).
// BoundsSet records that the bounds came from an explicit Bounds
// declaration or mutation, so later kind changes preserve them.
type Variable struct {
	Name      string
	Kind      VarKind
	Lower     float64
	Upper     float64
	BoundsSet bool
}

// NewVariable returns a continuous variable with default bounds.
func NewVariable(name string) Variable {
	lo, hi := DefaultBounds(KindContinuous)
	return Variable{Name: name, Kind: KindContinuous, Lower: lo, Upper: hi}
}

// IsDefault reports whether the variable is indistinguishable from a
// freshly referenced continuous variable. Default variables are omitted
// from the writer's bound and type sections.
func (v Variable) IsDefault() bool {
	lo, hi := DefaultBounds(KindContinuous)
	return v.Kind == KindContinuous && !v.BoundsSet && v.Lower == lo && v.Upper == hi
}

// Term is a (variable, coefficient) pair inside a linear expression.
// The variable is referenced by name and resolved through the problem's
// variable table, never held directly.
type Term struct {
	Variable    string  `json:"name"`
	Coefficient float64 `json:"value"`
}

// Expression is an ordered sequence of terms with at most one term per
// variable name. Updates overwrite in place, preserving position; new
// variables append.
type Expression struct {
	terms []Term
	index map[string]int
}

// NewExpression returns an empty expression.
func NewExpression() *Expression {
	return &Expression{index: make(map[string]int)}
}

// Len returns the number of terms.
func (e *Expression) Len() int { return len(e.terms) }

// Coefficient returns the coefficient for the variable, if present.
func (e *Expression) Coefficient(variable string) (float64, bool) {
	if i, ok := e.index[variable]; ok {
		return e.terms[i].Coefficient, true
	}
	return 0, false
}

// Set overwrites the coefficient of variable in place, or appends a new
// term if the variable is not yet part of the expression.
func (e *Expression) Set(variable string, coefficient float64) {
	if e.index == nil {
		e.index = make(map[string]int)
	}
	if i, ok := e.index[variable]; ok {
		e.terms[i].Coefficient = coefficient
		return
	}
	e.index[variable] = len(e.terms)
	e.terms = append(e.terms, Term{Variable: variable, Coefficient: coefficient})
}

// Remove deletes the variable's term, preserving the order of the rest.
// It reports whether a term was removed.
func (e *Expression) Remove(variable string) bool {
	i, ok := e.index[variable]
	if !ok {
		return false
	}
	e.terms = append(e.terms[:i], e.terms[i+1:]...)
	delete(e.index, variable)
	for j := i; j < len(e.terms); j++ {
		e.index[e.terms[j].Variable] = j
	}
	return true
}

// Rename rewrites a term's variable reference in place, keeping its
// position and coefficient. It reports whether the old name was present.
func (e *Expression) Rename(old, new string) bool {
	i, ok := e.index[old]
	if !ok {
		return false
	}
	e.terms[i].Variable = new
	delete(e.index, old)
	e.index[new] = i
	return true
}

// Terms returns a copy of the ordered term list.
func (e *Expression) Terms() []Term {
	out := make([]Term, len(e.terms))
	copy(out, e.terms)
	return out
}

// Clone returns a deep copy of the expression.
func (e *Expression) Clone() *Expression {
	c := &Expression{
		terms: make([]Term, len(e.terms)),
		index: make(map[string]int, len(e.index)),
	}
	copy(c.terms, e.terms)
	for k, v := range e.index {
		c.index[k] = v
	}
	return c
}

// Objective is a named linear expression.
type Objective struct {
	Name string
	Expr *Expression
}

// Clone returns a deep copy of the objective.
func (o Objective) Clone() Objective {
	c := Objective{Name: o.Name}
	if o.Expr != nil {
		c.Expr = o.Expr.Clone()
	} else {
		c.Expr = NewExpression()
	}
	return c
}

// SOSType distinguishes the two special-ordered-set families.
type SOSType int

const (
	SOS1 SOSType = iota
	SOS2
)

// String returns the LP text form of the SOS type.
func (t SOSType) String() string {
	if t == SOS2 {
		return "S2"
	}
	return "S1"
}

// ConstraintKind tags the constraint variant. Callers switch on the tag.
type ConstraintKind int

const (
	// ConstraintStandard is a linear constraint: expression, operator, RHS.
	ConstraintStandard ConstraintKind = iota
	// ConstraintSOS is a special-ordered-set constraint carried through
	// parse and write without interpretation beyond its weights.
	ConstraintSOS
)

// String returns the display name of the constraint kind.
func (k ConstraintKind) String() string {
	if k == ConstraintSOS {
		return "SOS"
	}
	return "Standard"
}

// Constraint is a tagged variant: Expr/Op/RHS are meaningful for
// ConstraintStandard, SOSType/Weights for ConstraintSOS.
type Constraint struct {
	Name string
	Kind ConstraintKind

	// Standard fields.
	Expr *Expression
	Op   RelOp
	RHS  float64

	// SOS fields.
	SOSType SOSType
	Weights []Term
}

// NewStandardConstraint builds a standard constraint with an empty expression.
func NewStandardConstraint(name string, op RelOp, rhs float64) Constraint {
	return Constraint{Name: name, Kind: ConstraintStandard, Expr: NewExpression(), Op: op, RHS: rhs}
}

// Clone returns a deep copy of the constraint.
func (c Constraint) Clone() Constraint {
	out := c
	if c.Expr != nil {
		out.Expr = c.Expr.Clone()
	}
	if c.Weights != nil {
		out.Weights = make([]Term, len(c.Weights))
		copy(out.Weights, c.Weights)
	}
	return out
}

// NotFoundError reports a mutation or query referencing an entity name
// that does not exist in the problem.
type NotFoundError struct {
	Kind string // "variable", "constraint", or "objective"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Code satisfies the error taxonomy.
func (e *NotFoundError) Code() apperrors.Code { return apperrors.ErrCodeNotFound }
