package lp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WriteOptions controls LP text output. The zero value is not useful;
// start from DefaultWriteOptions.
type WriteOptions struct {
	// IncludeProblemName emits a "\Problem name:" header comment when
	// the problem has a name.
	IncludeProblemName bool
	// MaxLineLength is the soft wrap width for expression lines.
	MaxLineLength int
	// DecimalPrecision is the maximum number of fractional digits for
	// non-integral numbers. Trailing zeros are trimmed. Zero rounds to
	// whole numbers; negative values fall back to the default.
	DecimalPrecision int
	// SectionSpacing separates sections with blank lines.
	SectionSpacing bool
}

// DefaultWriteOptions returns the standard output settings: problem
// name included, 80-column wrap, 6 decimal digits, spaced sections.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		IncludeProblemName: true,
		MaxLineLength:      80,
		DecimalPrecision:   6,
		SectionSpacing:     true,
	}
}

const continuationIndent = "        "

// Write renders the problem as LP text. Output is deterministic:
// entities appear in declaration order, so parse-write-parse is a
// fixed point.
func Write(p *Problem, opts WriteOptions) string {
	if opts.MaxLineLength <= 0 {
		opts.MaxLineLength = 80
	}
	if opts.DecimalPrecision < 0 {
		opts.DecimalPrecision = 6
	}

	var b strings.Builder
	blank := func() {
		if opts.SectionSpacing {
			b.WriteByte('\n')
		}
	}

	if opts.IncludeProblemName && p.Name() != "" {
		fmt.Fprintf(&b, "\\Problem name: %s\n", p.Name())
		blank()
	}

	b.WriteString(p.Sense().String())
	b.WriteByte('\n')
	for i := range p.objectives {
		o := &p.objectives[i]
		writeWrapped(&b, opts, fmt.Sprintf(" %s:", o.Name), expressionPieces(o.Expr, opts.DecimalPrecision))
	}

	blank()
	b.WriteString("Subject To\n")
	for i := range p.constraints {
		c := &p.constraints[i]
		if c.Kind != ConstraintStandard {
			continue
		}
		pieces := expressionPieces(c.Expr, opts.DecimalPrecision)
		pieces = append(pieces, fmt.Sprintf(" %s %s", c.Op, formatNumber(c.RHS, opts.DecimalPrecision)))
		writeWrapped(&b, opts, fmt.Sprintf(" %s:", c.Name), pieces)
	}

	if lines := boundLines(p, opts.DecimalPrecision); len(lines) > 0 {
		blank()
		b.WriteString("Bounds\n")
		for _, line := range lines {
			b.WriteString(" " + line + "\n")
		}
	}

	typeSections := []struct {
		keyword string
		kind    VarKind
	}{
		{"Generals", KindGeneral},
		{"Integers", KindInteger},
		{"Binaries", KindBinary},
		{"Semi-Continuous", KindSemiContinuous},
	}
	for _, sec := range typeSections {
		var names []string
		for i := range p.variables {
			if p.variables[i].Kind == sec.kind {
				names = append(names, p.variables[i].Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		blank()
		b.WriteString(sec.keyword + "\n")
		for _, n := range names {
			b.WriteString(" " + n + "\n")
		}
	}

	var sos []*Constraint
	for i := range p.constraints {
		if p.constraints[i].Kind == ConstraintSOS {
			sos = append(sos, &p.constraints[i])
		}
	}
	if len(sos) > 0 {
		blank()
		b.WriteString("SOS\n")
		for _, c := range sos {
			pieces := make([]string, 0, len(c.Weights))
			for _, w := range c.Weights {
				pieces = append(pieces, fmt.Sprintf(" %s:%s", w.Variable, formatNumber(w.Coefficient, opts.DecimalPrecision)))
			}
			writeWrapped(&b, opts, fmt.Sprintf(" %s: %s::", c.Name, c.SOSType), pieces)
		}
	}

	blank()
	b.WriteString("End\n")
	return b.String()
}

// writeWrapped emits prefix followed by pieces, soft-wrapping before a
// piece that would exceed the line limit. Continuation lines are
// indented eight spaces.
func writeWrapped(b *strings.Builder, opts WriteOptions, prefix string, pieces []string) {
	line := prefix
	for _, piece := range pieces {
		if len(line)+len(piece) > opts.MaxLineLength && line != prefix {
			b.WriteString(line + "\n")
			line = continuationIndent + strings.TrimPrefix(piece, " ")
			continue
		}
		line += piece
	}
	b.WriteString(line + "\n")
}

// expressionPieces renders each term as an appendable fragment. The
// first term is unsigned unless negative; later terms carry an explicit
// " + " or " - ". Coefficients of magnitude one omit the numeral.
func expressionPieces(e *Expression, precision int) []string {
	pieces := make([]string, 0, e.Len())
	for i, t := range e.terms {
		pieces = append(pieces, formatTerm(t, i == 0, precision))
	}
	return pieces
}

func formatTerm(t Term, first bool, precision int) string {
	coeff := t.Coefficient
	if first {
		switch coeff {
		case 1:
			return " " + t.Variable
		case -1:
			return " -" + t.Variable
		default:
			return fmt.Sprintf(" %s %s", formatNumber(coeff, precision), t.Variable)
		}
	}
	op := " + "
	if coeff < 0 {
		op = " - "
		coeff = -coeff
	}
	if coeff == 1 {
		return op + t.Variable
	}
	return op + formatNumber(coeff, precision) + " " + t.Variable
}

// boundLines renders the Bounds section body: free variables and
// variables with explicit bounds, in table order. Kind-default bounds
// are implied and never written.
func boundLines(p *Problem, precision int) []string {
	var lines []string
	for i := range p.variables {
		v := &p.variables[i]
		lo, hi := v.Lower, v.Upper
		switch {
		case v.Kind == KindFree && !v.BoundsSet,
			v.BoundsSet && math.IsInf(lo, -1) && math.IsInf(hi, 1):
			lines = append(lines, v.Name+" free")
		case !v.BoundsSet:
			continue
		case lo == hi:
			lines = append(lines, fmt.Sprintf("%s = %s", v.Name, formatNumber(lo, precision)))
		case lo == 0 && !math.IsInf(hi, 1):
			lines = append(lines, fmt.Sprintf("%s <= %s", v.Name, formatNumber(hi, precision)))
		case math.IsInf(hi, 1):
			lines = append(lines, fmt.Sprintf("%s >= %s", v.Name, formatNumber(lo, precision)))
		default:
			lines = append(lines, fmt.Sprintf("%s <= %s <= %s",
				formatNumber(lo, precision), v.Name, formatNumber(hi, precision)))
		}
	}
	return lines
}

// formatNumber renders a float the way solvers expect: whole values
// print without a decimal point, fractional values are trimmed of
// trailing zeros at the given precision, infinities print as inf/-inf.
func formatNumber(v float64, precision int) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
