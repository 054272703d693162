package lp

import (
	"math"
	"sort"
)

// coeffEpsilon is the tolerance for float comparisons in diffs.
const coeffEpsilon = 1e-10

func floatEqual(a, b float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) || math.IsInf(a, -1) || math.IsInf(b, -1) {
		return a == b
	}
	return math.Abs(a-b) < coeffEpsilon
}

// ChangeKind classifies an entity- or term-level difference.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeModified ChangeKind = "modified"
)

// CoefficientChange is a term-level difference inside an objective or
// constraint expression. From/To are nil for the absent side.
type CoefficientChange struct {
	Variable string     `json:"variable"`
	Kind     ChangeKind `json:"kind"`
	From     *float64   `json:"from,omitempty"`
	To       *float64   `json:"to,omitempty"`
}

// FieldChange is a scalar difference on an entity, such as a
// constraint's operator or right-hand side.
type FieldChange struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// EntityDiff describes one added, removed, or modified named entity.
type EntityDiff struct {
	Name         string              `json:"name"`
	Kind         ChangeKind          `json:"kind"`
	Coefficients []CoefficientChange `json:"coefficients,omitempty"`
	Fields       []FieldChange       `json:"fields,omitempty"`
}

// DiffReport is the structured comparison of two problems. Entity lists
// are sorted by name, so reports are deterministic regardless of
// declaration order.
type DiffReport struct {
	SenseChanged bool   `json:"sense_changed"`
	SenseFrom    string `json:"sense_from,omitempty"`
	SenseTo      string `json:"sense_to,omitempty"`

	NameChanged bool   `json:"name_changed"`
	NameFrom    string `json:"name_from,omitempty"`
	NameTo      string `json:"name_to,omitempty"`

	VariableCountDelta   int `json:"variable_count_delta"`
	ConstraintCountDelta int `json:"constraint_count_delta"`
	ObjectiveCountDelta  int `json:"objective_count_delta"`

	AddedVariables    []string     `json:"added_variables,omitempty"`
	RemovedVariables  []string     `json:"removed_variables,omitempty"`
	ModifiedVariables []EntityDiff `json:"modified_variables,omitempty"`

	Objectives  []EntityDiff `json:"objectives,omitempty"`
	Constraints []EntityDiff `json:"constraints,omitempty"`
}

// Identical reports whether the two compared problems are equivalent.
func (r *DiffReport) Identical() bool {
	return !r.SenseChanged && !r.NameChanged &&
		r.VariableCountDelta == 0 && r.ConstraintCountDelta == 0 && r.ObjectiveCountDelta == 0 &&
		len(r.AddedVariables) == 0 && len(r.RemovedVariables) == 0 && len(r.ModifiedVariables) == 0 &&
		len(r.Objectives) == 0 && len(r.Constraints) == 0
}

// Compare diffs problem b against problem a. Count deltas are b minus a;
// "added" means present only in b.
func Compare(a, b *Problem) *DiffReport {
	r := &DiffReport{
		VariableCountDelta:   b.VariableCount() - a.VariableCount(),
		ConstraintCountDelta: b.ConstraintCount() - a.ConstraintCount(),
		ObjectiveCountDelta:  b.ObjectiveCount() - a.ObjectiveCount(),
	}
	if a.Sense() != b.Sense() {
		r.SenseChanged = true
		r.SenseFrom = a.Sense().String()
		r.SenseTo = b.Sense().String()
	}
	if a.Name() != b.Name() {
		r.NameChanged = true
		r.NameFrom = a.Name()
		r.NameTo = b.Name()
	}

	diffVariables(r, a, b)
	r.Objectives = diffObjectives(a, b)
	r.Constraints = diffConstraints(a, b)
	return r
}

func diffVariables(r *DiffReport, a, b *Problem) {
	for _, name := range unionNames(variableNames(a), variableNames(b)) {
		va, inA := a.Variable(name)
		vb, inB := b.Variable(name)
		switch {
		case !inA:
			r.AddedVariables = append(r.AddedVariables, name)
		case !inB:
			r.RemovedVariables = append(r.RemovedVariables, name)
		default:
			var fields []FieldChange
			if va.Kind != vb.Kind {
				fields = append(fields, FieldChange{Field: "type", From: va.Kind.String(), To: vb.Kind.String()})
			}
			if !floatEqual(va.Lower, vb.Lower) {
				fields = append(fields, FieldChange{Field: "lower_bound", From: formatNumber(va.Lower, 6), To: formatNumber(vb.Lower, 6)})
			}
			if !floatEqual(va.Upper, vb.Upper) {
				fields = append(fields, FieldChange{Field: "upper_bound", From: formatNumber(va.Upper, 6), To: formatNumber(vb.Upper, 6)})
			}
			if len(fields) > 0 {
				r.ModifiedVariables = append(r.ModifiedVariables, EntityDiff{
					Name: name, Kind: ChangeModified, Fields: fields,
				})
			}
		}
	}
}

func diffObjectives(a, b *Problem) []EntityDiff {
	var out []EntityDiff
	for _, name := range unionNames(objectiveNames(a), objectiveNames(b)) {
		oa, inA := a.Objective(name)
		ob, inB := b.Objective(name)
		switch {
		case !inA:
			out = append(out, EntityDiff{Name: name, Kind: ChangeAdded})
		case !inB:
			out = append(out, EntityDiff{Name: name, Kind: ChangeRemoved})
		default:
			coeffs := diffExpressions(oa.Expr, ob.Expr)
			if len(coeffs) > 0 {
				out = append(out, EntityDiff{Name: name, Kind: ChangeModified, Coefficients: coeffs})
			}
		}
	}
	return out
}

func diffConstraints(a, b *Problem) []EntityDiff {
	var out []EntityDiff
	for _, name := range unionNames(constraintNames(a), constraintNames(b)) {
		ca, inA := a.Constraint(name)
		cb, inB := b.Constraint(name)
		switch {
		case !inA:
			out = append(out, EntityDiff{Name: name, Kind: ChangeAdded})
		case !inB:
			out = append(out, EntityDiff{Name: name, Kind: ChangeRemoved})
		default:
			if d, changed := diffConstraint(ca, cb); changed {
				out = append(out, d)
			}
		}
	}
	return out
}

func diffConstraint(a, b Constraint) (EntityDiff, bool) {
	d := EntityDiff{Name: a.Name, Kind: ChangeModified}
	if a.Kind != b.Kind {
		d.Fields = append(d.Fields, FieldChange{Field: "constraint_kind", From: a.Kind.String(), To: b.Kind.String()})
		return d, true
	}
	if a.Kind == ConstraintStandard {
		if a.Op != b.Op {
			d.Fields = append(d.Fields, FieldChange{Field: "operator", From: a.Op.String(), To: b.Op.String()})
		}
		if !floatEqual(a.RHS, b.RHS) {
			d.Fields = append(d.Fields, FieldChange{Field: "rhs", From: formatNumber(a.RHS, 6), To: formatNumber(b.RHS, 6)})
		}
		d.Coefficients = diffExpressions(a.Expr, b.Expr)
	} else {
		if a.SOSType != b.SOSType {
			d.Fields = append(d.Fields, FieldChange{Field: "sos_type", From: a.SOSType.String(), To: b.SOSType.String()})
		}
		d.Coefficients = diffTerms(a.Weights, b.Weights)
	}
	return d, len(d.Fields) > 0 || len(d.Coefficients) > 0
}

func diffExpressions(a, b *Expression) []CoefficientChange {
	return diffTerms(a.Terms(), b.Terms())
}

func diffTerms(a, b []Term) []CoefficientChange {
	am := make(map[string]float64, len(a))
	for _, t := range a {
		am[t.Variable] = t.Coefficient
	}
	bm := make(map[string]float64, len(b))
	for _, t := range b {
		bm[t.Variable] = t.Coefficient
	}
	names := make([]string, 0, len(am)+len(bm))
	seen := make(map[string]bool, len(am)+len(bm))
	for n := range am {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for n := range bm {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)

	var out []CoefficientChange
	for _, n := range names {
		va, inA := am[n]
		vb, inB := bm[n]
		switch {
		case !inA:
			v := vb
			out = append(out, CoefficientChange{Variable: n, Kind: ChangeAdded, To: &v})
		case !inB:
			v := va
			out = append(out, CoefficientChange{Variable: n, Kind: ChangeRemoved, From: &v})
		case !floatEqual(va, vb):
			f, t := va, vb
			out = append(out, CoefficientChange{Variable: n, Kind: ChangeModified, From: &f, To: &t})
		}
	}
	return out
}

func variableNames(p *Problem) []string {
	out := make([]string, 0, len(p.variables))
	for i := range p.variables {
		out = append(out, p.variables[i].Name)
	}
	return out
}

func objectiveNames(p *Problem) []string {
	out := make([]string, 0, len(p.objectives))
	for i := range p.objectives {
		out = append(out, p.objectives[i].Name)
	}
	return out
}

func constraintNames(p *Problem) []string {
	out := make([]string, 0, len(p.constraints))
	for i := range p.constraints {
		out = append(out, p.constraints[i].Name)
	}
	return out
}

func unionNames(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, n := range a {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, n := range b {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
