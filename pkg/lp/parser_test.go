package lp

import (
	"math"
	"strings"
	"testing"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
)

const dietLP = `\Problem name: diet

Minimize
 cost: 2 x1 + 3.5 x2 - x3
Subject To
 protein: x1 + 2 x2 >= 10
 fat: x1 - x3 <= 5
Bounds
 x1 <= 40
 -10 <= x3 <= 10
Integers
 x2
End
`

func mustParse(t *testing.T, src string) *Problem {
	t.Helper()
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return p
}

func TestParseDiet(t *testing.T) {
	p := mustParse(t, dietLP)

	if p.Name() != "diet" {
		t.Errorf("Name = %q, want diet", p.Name())
	}
	if p.Sense() != SenseMinimize {
		t.Errorf("Sense = %v, want minimize", p.Sense())
	}
	if p.ObjectiveCount() != 1 || p.ConstraintCount() != 2 || p.VariableCount() != 3 {
		t.Fatalf("counts = %d/%d/%d, want 1/2/3",
			p.ObjectiveCount(), p.ConstraintCount(), p.VariableCount())
	}

	obj, ok := p.Objective("cost")
	if !ok {
		t.Fatal("objective cost missing")
	}
	wantTerms := []Term{
		{Variable: "x1", Coefficient: 2},
		{Variable: "x2", Coefficient: 3.5},
		{Variable: "x3", Coefficient: -1},
	}
	gotTerms := obj.Expr.Terms()
	if len(gotTerms) != len(wantTerms) {
		t.Fatalf("objective terms = %v", gotTerms)
	}
	for i, w := range wantTerms {
		if gotTerms[i] != w {
			t.Errorf("term %d = %v, want %v", i, gotTerms[i], w)
		}
	}

	c, ok := p.Constraint("protein")
	if !ok {
		t.Fatal("constraint protein missing")
	}
	if c.Op != OpGE || c.RHS != 10 {
		t.Errorf("protein: op %v rhs %v", c.Op, c.RHS)
	}

	x1, _ := p.Variable("x1")
	if !x1.BoundsSet || x1.Lower != 0 || x1.Upper != 40 {
		t.Errorf("x1 = %+v, want explicit [0, 40]", x1)
	}
	x2, _ := p.Variable("x2")
	if x2.Kind != KindInteger || x2.BoundsSet {
		t.Errorf("x2 = %+v, want integer with default bounds", x2)
	}
	if x2.Lower != 0 || !math.IsInf(x2.Upper, 1) {
		t.Errorf("x2 bounds = [%v, %v], want [0, +inf)", x2.Lower, x2.Upper)
	}
	x3, _ := p.Variable("x3")
	if !x3.BoundsSet || x3.Lower != -10 || x3.Upper != 10 {
		t.Errorf("x3 = %+v, want explicit [-10, 10]", x3)
	}
}

func TestParseGeneratedNames(t *testing.T) {
	p := mustParse(t, `Minimize
 x1 + 2 x2
Subject To
 x1 + x2 <= 10
 x1 - x2 >= 0
End
`)
	if _, ok := p.Objective("obj"); !ok {
		t.Error("unnamed objective should be named obj")
	}
	if _, ok := p.Constraint("c_1"); !ok {
		t.Error("first unnamed constraint should be named c_1")
	}
	if _, ok := p.Constraint("c_2"); !ok {
		t.Error("second unnamed constraint should be named c_2")
	}
}

func TestParseGeneratedNamesSkipTaken(t *testing.T) {
	p := mustParse(t, `Minimize
 obj: x + y
Subject To
 c_2: x + y <= 10
 x - y >= 2
End
`)
	if p.ConstraintCount() != 2 {
		t.Fatalf("ConstraintCount = %d, want 2", p.ConstraintCount())
	}
	c2, ok := p.Constraint("c_2")
	if !ok || c2.Op != OpLE || c2.RHS != 10 {
		t.Errorf("c_2 = %+v, want the explicit <= 10 row", c2)
	}
	gen, ok := p.Constraint("c_3")
	if !ok || gen.Op != OpGE || gen.RHS != 2 {
		t.Errorf("unnamed constraint = %+v, want >= 2 named c_3", gen)
	}
}

func TestParseGeneratedObjectiveNameSkipTaken(t *testing.T) {
	p := mustParse(t, `min
 obj_2: 3 x
 y + z
st c1: x <= 1
end`)
	if p.ObjectiveCount() != 2 {
		t.Fatalf("ObjectiveCount = %d, want 2", p.ObjectiveCount())
	}
	explicit, ok := p.Objective("obj_2")
	if !ok {
		t.Fatal("explicit obj_2 missing")
	}
	if coeff, _ := explicit.Expr.Coefficient("x"); coeff != 3 {
		t.Errorf("obj_2 x coefficient = %v, want 3", coeff)
	}
	if _, ok := p.Objective("obj_3"); !ok {
		t.Error("unnamed objective should skip to obj_3")
	}
}

func TestParseGeneratedSOSNameSkipTaken(t *testing.T) {
	p := mustParse(t, `min obj: x1 + x2
Subject To
 c_2: x1 <= 1
SOS
 S1:: x1:1 x2:2
End
`)
	if p.ConstraintCount() != 2 {
		t.Fatalf("ConstraintCount = %d, want 2", p.ConstraintCount())
	}
	sos, ok := p.Constraint("c_3")
	if !ok || sos.Kind != ConstraintSOS {
		t.Errorf("unnamed SOS constraint = %+v, want c_3", sos)
	}
}

func TestParseMultipleObjectives(t *testing.T) {
	p := mustParse(t, `Maximize
 profit: 3 x + 2 y
 volume: x + y
Subject To
 cap: x + y <= 100
End
`)
	if p.ObjectiveCount() != 2 {
		t.Fatalf("ObjectiveCount = %d, want 2", p.ObjectiveCount())
	}
	objs := p.Objectives()
	if objs[0].Name != "profit" || objs[1].Name != "volume" {
		t.Errorf("objective order = %s, %s", objs[0].Name, objs[1].Name)
	}
}

func TestParseKeywordAliases(t *testing.T) {
	p := mustParse(t, "MAXIMISE obj: x SUCH THAT c1: x =< 4 END")
	if p.Sense() != SenseMaximize {
		t.Errorf("Sense = %v", p.Sense())
	}
	c, _ := p.Constraint("c1")
	if c.Op != OpLE || c.RHS != 4 {
		t.Errorf("c1 = op %v rhs %v", c.Op, c.RHS)
	}
}

func TestParseStrictOperatorsNormalized(t *testing.T) {
	p := mustParse(t, `min obj: x st
 a: x < 5
 b: x > 1
End`)
	a, _ := p.Constraint("a")
	if a.Op != OpLE {
		t.Errorf("a.Op = %v, want <=", a.Op)
	}
	b, _ := p.Constraint("b")
	if b.Op != OpGE {
		t.Errorf("b.Op = %v, want >=", b.Op)
	}
}

func TestParseBoundForms(t *testing.T) {
	p := mustParse(t, `min obj: a + b + c + d + e + f
Subject To
 c1: a + b >= 1
Bounds
 a <= 5
 b >= 2
 c = 7
 1 <= d <= 9
 e free
 -inf <= f <= 3
End
`)
	tests := []struct {
		name   string
		lower  float64
		upper  float64
		kind   VarKind
		explct bool
	}{
		{"a", 0, 5, KindContinuous, true},
		{"b", 2, math.Inf(1), KindContinuous, true},
		{"c", 7, 7, KindContinuous, true},
		{"d", 1, 9, KindContinuous, true},
		{"e", math.Inf(-1), math.Inf(1), KindFree, false},
		{"f", math.Inf(-1), 3, KindContinuous, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := p.Variable(tt.name)
			if !ok {
				t.Fatal("variable missing")
			}
			if v.Lower != tt.lower || v.Upper != tt.upper {
				t.Errorf("bounds = [%v, %v], want [%v, %v]", v.Lower, v.Upper, tt.lower, tt.upper)
			}
			if v.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", v.Kind, tt.kind)
			}
			if v.BoundsSet != tt.explct {
				t.Errorf("BoundsSet = %v, want %v", v.BoundsSet, tt.explct)
			}
		})
	}
}

func TestParseTypeSections(t *testing.T) {
	p := mustParse(t, `min obj: w + x + y + z
Subject To
 c1: w + x + y + z <= 4
Binaries
 w
Integers
 x
Generals
 y
Semi-Continuous
 z
End
`)
	w, _ := p.Variable("w")
	if w.Kind != KindBinary || w.Lower != 0 || w.Upper != 1 {
		t.Errorf("w = %+v, want binary [0, 1]", w)
	}
	x, _ := p.Variable("x")
	if x.Kind != KindInteger {
		t.Errorf("x.Kind = %v", x.Kind)
	}
	y, _ := p.Variable("y")
	if y.Kind != KindGeneral {
		t.Errorf("y.Kind = %v", y.Kind)
	}
	z, _ := p.Variable("z")
	if z.Kind != KindSemiContinuous {
		t.Errorf("z.Kind = %v", z.Kind)
	}
}

func TestParseExplicitBoundsSurviveTypeSection(t *testing.T) {
	p := mustParse(t, `min obj: x
Subject To
 c1: x <= 10
Bounds
 2 <= x <= 8
Integers
 x
End
`)
	x, _ := p.Variable("x")
	if x.Kind != KindInteger {
		t.Fatalf("x.Kind = %v", x.Kind)
	}
	if x.Lower != 2 || x.Upper != 8 {
		t.Errorf("bounds = [%v, %v], want explicit [2, 8] preserved", x.Lower, x.Upper)
	}
}

func TestParseSOSSection(t *testing.T) {
	p := mustParse(t, `min obj: x1 + x2 + x3
Subject To
 c1: x1 + x2 <= 1
SOS
 s_a: S1:: x1:1 x2:2
 s_b: S2:: x1:0.5 x2:1.5 x3:2.5
End
`)
	if p.ConstraintCount() != 3 {
		t.Fatalf("ConstraintCount = %d, want 3", p.ConstraintCount())
	}
	sa, ok := p.Constraint("s_a")
	if !ok || sa.Kind != ConstraintSOS {
		t.Fatalf("s_a = %+v", sa)
	}
	if sa.SOSType != SOS1 || len(sa.Weights) != 2 {
		t.Errorf("s_a: type %v weights %v", sa.SOSType, sa.Weights)
	}
	sb, _ := p.Constraint("s_b")
	if sb.SOSType != SOS2 || len(sb.Weights) != 3 {
		t.Errorf("s_b: type %v weights %v", sb.SOSType, sb.Weights)
	}
	if sb.Weights[2] != (Term{Variable: "x3", Coefficient: 2.5}) {
		t.Errorf("s_b weight 2 = %v", sb.Weights[2])
	}
}

func TestParseRepeatedVariableAccumulates(t *testing.T) {
	p := mustParse(t, `min obj: x + 2 x
Subject To
 c1: x <= 1
End`)
	obj, _ := p.Objective("obj")
	coeff, ok := obj.Expr.Coefficient("x")
	if !ok || coeff != 3 {
		t.Errorf("coefficient = %v, want 3", coeff)
	}
}

func TestParseEmptyObjective(t *testing.T) {
	p := mustParse(t, `min obj:
Subject To
 c1: x <= 1
End`)
	obj, ok := p.Objective("obj")
	if !ok {
		t.Fatal("objective missing")
	}
	if obj.Expr.Len() != 0 {
		t.Errorf("terms = %v, want none", obj.Expr.Terms())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"empty input", "", "sense keyword"},
		{"no sense", "x + y", "sense keyword"},
		{"missing subject to", "min x1 end", "'Subject To'"},
		{"missing end", "min obj: x st c1: x <= 1", "'End'"},
		{"missing rhs", "min obj: x st c1: x <= end", "number"},
		{"missing operator", "min obj: x st c1: x 5 end", "relational operator"},
		{"trailing tokens", "min obj: x st c1: x <= 1 end extra", "end of input"},
		{"dangling sign", "min obj: x + st c1: x <= 1 end", "variable name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatal("expected parse error")
			}
			parseErr, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("error type = %T: %v", err, err)
			}
			if parseErr.Expected != tt.expected {
				t.Errorf("Expected = %q, want %q", parseErr.Expected, tt.expected)
			}
			if !apperrors.Is(err, apperrors.ErrCodeParse) {
				t.Error("parse error should carry PARSE_ERROR code")
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("min obj: x st c1: x <= 1")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "expected 'End'") || !strings.Contains(msg, "line 1") {
		t.Errorf("message = %q", msg)
	}
}

func TestParseHeaderCommentWithoutName(t *testing.T) {
	p := mustParse(t, `\ just a remark
min obj: x
st c1: x <= 1
end`)
	if p.Name() != "" {
		t.Errorf("Name = %q, want empty", p.Name())
	}
}
