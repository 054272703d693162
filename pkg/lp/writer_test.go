package lp

import (
	"math"
	"strings"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value     float64
		precision int
		want      string
	}{
		{2, 6, "2"},
		{-3, 6, "-3"},
		{0, 6, "0"},
		{1000000, 6, "1000000"},
		{3.5, 6, "3.5"},
		{2.10, 6, "2.1"},
		{-0.25, 6, "-0.25"},
		{1.0 / 3.0, 6, "0.333333"},
		{1.0 / 3.0, 2, "0.33"},
		{3.7, 0, "4"},
		{1.0 / 3.0, 0, "0"},
		{math.Inf(1), 6, "inf"},
		{math.Inf(-1), 6, "-inf"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.value, tt.precision); got != tt.want {
			t.Errorf("formatNumber(%v, %d) = %q, want %q", tt.value, tt.precision, got, tt.want)
		}
	}
}

func TestFormatTerm(t *testing.T) {
	tests := []struct {
		term  Term
		first bool
		want  string
	}{
		{Term{"x", 1}, true, " x"},
		{Term{"x", -1}, true, " -x"},
		{Term{"x", 2.5}, true, " 2.5 x"},
		{Term{"x", -2}, true, " -2 x"},
		{Term{"x", 1}, false, " + x"},
		{Term{"x", -1}, false, " - x"},
		{Term{"x", 3}, false, " + 3 x"},
		{Term{"x", -0.5}, false, " - 0.5 x"},
	}
	for _, tt := range tests {
		if got := formatTerm(tt.term, tt.first, 6); got != tt.want {
			t.Errorf("formatTerm(%v, first=%v) = %q, want %q", tt.term, tt.first, got, tt.want)
		}
	}
}

func tinyProblem() *Problem {
	p := NewProblem()
	p.SetName("tiny")
	p.SetSense(SenseMaximize)
	obj := NewExpression()
	obj.Set("x", 1)
	obj.Set("y", 2)
	p.AddObjective(Objective{Name: "obj", Expr: obj})
	c := NewStandardConstraint("c1", OpLE, 10)
	c.Expr.Set("x", 1)
	c.Expr.Set("y", 1)
	p.AddConstraint(c)
	p.applyKind("x", KindBinary)
	return p
}

func TestWriteFull(t *testing.T) {
	got := Write(tinyProblem(), DefaultWriteOptions())
	want := `\Problem name: tiny

Maximize
 obj: x + 2 y

Subject To
 c1: x + y <= 10

Binaries
 x

End
`
	if got != want {
		t.Errorf("Write() =\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteCompact(t *testing.T) {
	opts := DefaultWriteOptions()
	opts.IncludeProblemName = false
	opts.SectionSpacing = false
	got := Write(tinyProblem(), opts)
	want := `Maximize
 obj: x + 2 y
Subject To
 c1: x + y <= 10
Binaries
 x
End
`
	if got != want {
		t.Errorf("Write() =\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteLineWrapping(t *testing.T) {
	p := NewProblem()
	expr := NewExpression()
	for _, v := range []string{"x1", "x2", "x3", "x4"} {
		expr.Set(v, 1)
	}
	p.AddObjective(Objective{Name: "long", Expr: expr})

	opts := DefaultWriteOptions()
	opts.IncludeProblemName = false
	opts.SectionSpacing = false
	opts.MaxLineLength = 20
	got := Write(p, opts)
	want := `Minimize
 long: x1 + x2 + x3
        + x4
Subject To
End
`
	if got != want {
		t.Errorf("Write() =\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteZeroPrecision(t *testing.T) {
	p := NewProblem()
	obj := NewExpression()
	obj.Set("x", 3.7)
	p.AddObjective(Objective{Name: "obj", Expr: obj})

	opts := DefaultWriteOptions()
	opts.DecimalPrecision = 0
	got := Write(p, opts)
	if !strings.Contains(got, " obj: 4 x\n") {
		t.Errorf("precision 0 should round to whole numbers:\n%s", got)
	}
}

func TestWriteBoundsSection(t *testing.T) {
	p := NewProblem()
	obj := NewExpression()
	for _, v := range []string{"a", "b", "c", "d", "e"} {
		obj.Set(v, 1)
	}
	p.AddObjective(Objective{Name: "obj", Expr: obj})
	if err := p.SetVariableBounds("a", 0, 5); err != nil {
		t.Fatal(err)
	}
	if err := p.SetVariableBounds("b", 2, math.Inf(1)); err != nil {
		t.Fatal(err)
	}
	if err := p.SetVariableBounds("c", 7, 7); err != nil {
		t.Fatal(err)
	}
	if err := p.SetVariableBounds("d", 1, 9); err != nil {
		t.Fatal(err)
	}
	if err := p.UpdateVariableType("e", KindFree); err != nil {
		t.Fatal(err)
	}

	got := Write(p, DefaultWriteOptions())
	for _, line := range []string{
		" a <= 5",
		" b >= 2",
		" c = 7",
		" 1 <= d <= 9",
		" e free",
	} {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("output missing %q:\n%s", line, got)
		}
	}
}

func TestWriteSOSSection(t *testing.T) {
	p := NewProblem()
	obj := NewExpression()
	obj.Set("x1", 1)
	p.AddObjective(Objective{Name: "obj", Expr: obj})
	p.AddConstraint(Constraint{
		Name:    "s_a",
		Kind:    ConstraintSOS,
		SOSType: SOS2,
		Weights: []Term{{"x1", 1}, {"x2", 2.5}},
	})

	got := Write(p, DefaultWriteOptions())
	if !strings.Contains(got, "SOS\n s_a: S2:: x1:1 x2:2.5\n") {
		t.Errorf("output missing SOS section:\n%s", got)
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	sources := []string{
		dietLP,
		`min obj: x1 + x2 + x3
Subject To
 c1: x1 + x2 <= 1
SOS
 s_a: S1:: x1:1 x2:2
End
`,
		`Maximize
 profit: 3 x - 2.5 y
Subject To
 cap: x + y <= 100
 floor: x - y >= -20
Bounds
 y free
Binaries
 x
End
`,
	}
	for _, src := range sources {
		p1, err := Parse(src)
		if err != nil {
			t.Fatalf("parse original: %v", err)
		}
		text := Write(p1, DefaultWriteOptions())
		p2, err := Parse(text)
		if err != nil {
			t.Fatalf("parse written output: %v\n%s", err, text)
		}
		if report := Compare(p1, p2); !report.Identical() {
			t.Errorf("round trip changed the problem:\n%s\nreport: %+v", text, report)
		}
		// Writing is a fixed point after one normalization pass.
		if again := Write(p2, DefaultWriteOptions()); again != text {
			t.Errorf("second write differs:\n%s\nvs:\n%s", text, again)
		}
	}
}
