package io

import (
	"encoding/json"
	"io"
	"math"
	"os"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
	"github.com/dandxy89/lp-parser-rs/pkg/lp"
)

type problemDoc struct {
	Name        string          `json:"problem_name,omitempty"`
	Sense       string          `json:"problem_sense"`
	Objectives  []objectiveDoc  `json:"objectives"`
	Constraints []constraintDoc `json:"constraints"`
	Variables   []variableDoc   `json:"variables"`
}

type objectiveDoc struct {
	Name         string    `json:"name"`
	Coefficients []lp.Term `json:"coefficients"`
}

type constraintDoc struct {
	Name string `json:"name"`
	Type string `json:"type"` // "standard" or "sos"

	Coefficients []lp.Term `json:"coefficients,omitempty"`
	Operator     string    `json:"operator,omitempty"`
	RHS          *float64  `json:"rhs,omitempty"`

	SOSType string    `json:"sos_type,omitempty"`
	Weights []lp.Term `json:"weights,omitempty"`
}

// variableDoc represents bounds with nil for the unbounded side, since
// JSON has no encoding for infinities.
type variableDoc struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Lower          *float64 `json:"lower_bound,omitempty"`
	Upper          *float64 `json:"upper_bound,omitempty"`
	ExplicitBounds bool     `json:"explicit_bounds,omitempty"`
}

func boundPtr(v float64) *float64 {
	if math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// WriteJSON encodes a problem as JSON and writes it to w. The output
// round-trips through [ReadJSON].
func WriteJSON(p *lp.Problem, w io.Writer) error {
	doc := problemDoc{
		Name:        p.Name(),
		Sense:       p.Sense().String(),
		Objectives:  make([]objectiveDoc, 0, p.ObjectiveCount()),
		Constraints: make([]constraintDoc, 0, p.ConstraintCount()),
		Variables:   make([]variableDoc, 0, p.VariableCount()),
	}

	for _, o := range p.Objectives() {
		doc.Objectives = append(doc.Objectives, objectiveDoc{
			Name:         o.Name,
			Coefficients: o.Expr.Terms(),
		})
	}
	for _, c := range p.Constraints() {
		cd := constraintDoc{Name: c.Name}
		if c.Kind == lp.ConstraintSOS {
			cd.Type = "sos"
			cd.SOSType = c.SOSType.String()
			cd.Weights = c.Weights
		} else {
			cd.Type = "standard"
			cd.Coefficients = c.Expr.Terms()
			cd.Operator = c.Op.String()
			rhs := c.RHS
			cd.RHS = &rhs
		}
		doc.Constraints = append(doc.Constraints, cd)
	}
	for _, v := range p.Variables() {
		doc.Variables = append(doc.Variables, variableDoc{
			Name:           v.Name,
			Type:           v.Kind.String(),
			Lower:          boundPtr(v.Lower),
			Upper:          boundPtr(v.Upper),
			ExplicitBounds: v.BoundsSet,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, err, "encode json")
	}
	return nil
}

// ExportJSON writes a problem to a JSON file at path.
func ExportJSON(p *lp.Problem, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(p, f)
}

// ReadJSON decodes a JSON problem from r. Sense, operator, and variable
// type strings are validated; unknown values are rejected.
func ReadJSON(r io.Reader) (*lp.Problem, error) {
	var doc problemDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "decode json")
	}

	p := lp.NewProblem()
	p.SetName(doc.Name)
	sense, err := lp.ParseSense(doc.Sense)
	if err != nil {
		return nil, err
	}
	p.SetSense(sense)

	for _, vd := range doc.Variables {
		kind, err := lp.ParseVarKind(vd.Type)
		if err != nil {
			return nil, err
		}
		lo, hi := lp.DefaultBounds(kind)
		if vd.Lower != nil {
			lo = *vd.Lower
		} else if kind != lp.KindFree {
			lo = math.Inf(-1)
		}
		if vd.Upper != nil {
			hi = *vd.Upper
		} else {
			hi = math.Inf(1)
		}
		p.AddVariable(lp.Variable{
			Name:      vd.Name,
			Kind:      kind,
			Lower:     lo,
			Upper:     hi,
			BoundsSet: vd.ExplicitBounds,
		})
	}

	for _, od := range doc.Objectives {
		expr := lp.NewExpression()
		for _, t := range od.Coefficients {
			expr.Set(t.Variable, t.Coefficient)
		}
		p.AddObjective(lp.Objective{Name: od.Name, Expr: expr})
	}

	for _, cd := range doc.Constraints {
		switch cd.Type {
		case "sos":
			typ := lp.SOS1
			if cd.SOSType == "S2" {
				typ = lp.SOS2
			} else if cd.SOSType != "S1" && cd.SOSType != "" {
				return nil, apperrors.New(apperrors.ErrCodeValidation, "constraint %q: invalid sos_type %q", cd.Name, cd.SOSType)
			}
			p.AddConstraint(lp.Constraint{
				Name:    cd.Name,
				Kind:    lp.ConstraintSOS,
				SOSType: typ,
				Weights: cd.Weights,
			})
		case "standard", "":
			op, err := lp.ParseRelOp(cd.Operator)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeValidation, err, "constraint %q", cd.Name)
			}
			rhs := 0.0
			if cd.RHS != nil {
				rhs = *cd.RHS
			}
			c := lp.NewStandardConstraint(cd.Name, op, rhs)
			for _, t := range cd.Coefficients {
				c.Expr.Set(t.Variable, t.Coefficient)
			}
			p.AddConstraint(c)
		default:
			return nil, apperrors.New(apperrors.ErrCodeValidation, "constraint %q: unknown type %q", cd.Name, cd.Type)
		}
	}

	return p, nil
}

// ImportJSON reads a JSON file at path and returns the decoded problem.
func ImportJSON(path string) (*lp.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
