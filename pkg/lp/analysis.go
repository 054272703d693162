package lp

import "math"

// Analysis summarizes the shape of a problem: entity counts, the
// standard/SOS split, variables per kind, constraint-matrix density,
// and coefficient/RHS value ranges.
type Analysis struct {
	Variables           int            `json:"variables"`
	Constraints         int            `json:"constraints"`
	StandardConstraints int            `json:"standard_constraints"`
	SOSConstraints      int            `json:"sos_constraints"`
	Objectives          int            `json:"objectives"`
	VariablesByKind     map[string]int `json:"variables_by_kind"`

	// NonzeroCoefficients counts terms across standard constraints.
	NonzeroCoefficients int `json:"nonzero_coefficients"`
	// Density is nonzeros over (variables x standard constraints).
	Density float64 `json:"density"`

	MinCoefficient float64 `json:"min_coefficient"`
	MaxCoefficient float64 `json:"max_coefficient"`
	MinRHS         float64 `json:"min_rhs"`
	MaxRHS         float64 `json:"max_rhs"`
}

// Analyze computes summary statistics for the problem. Ranges are zero
// when the problem has no terms or no standard constraints.
func Analyze(p *Problem) Analysis {
	a := Analysis{
		Variables:       p.VariableCount(),
		Constraints:     p.ConstraintCount(),
		Objectives:      p.ObjectiveCount(),
		VariablesByKind: make(map[string]int),
	}
	for i := range p.variables {
		a.VariablesByKind[p.variables[i].Kind.String()]++
	}

	minC, maxC := math.Inf(1), math.Inf(-1)
	minR, maxR := math.Inf(1), math.Inf(-1)
	sawCoeff, sawRHS := false, false

	observe := func(v float64) {
		sawCoeff = true
		if v < minC {
			minC = v
		}
		if v > maxC {
			maxC = v
		}
	}

	for i := range p.objectives {
		for _, t := range p.objectives[i].Expr.terms {
			observe(t.Coefficient)
		}
	}
	for i := range p.constraints {
		c := &p.constraints[i]
		if c.Kind == ConstraintSOS {
			a.SOSConstraints++
			continue
		}
		a.StandardConstraints++
		for _, t := range c.Expr.terms {
			observe(t.Coefficient)
			a.NonzeroCoefficients++
		}
		sawRHS = true
		if c.RHS < minR {
			minR = c.RHS
		}
		if c.RHS > maxR {
			maxR = c.RHS
		}
	}

	if sawCoeff {
		a.MinCoefficient, a.MaxCoefficient = minC, maxC
	}
	if sawRHS {
		a.MinRHS, a.MaxRHS = minR, maxR
	}
	if a.Variables > 0 && a.StandardConstraints > 0 {
		a.Density = float64(a.NonzeroCoefficients) / float64(a.Variables*a.StandardConstraints)
	}
	return a
}
