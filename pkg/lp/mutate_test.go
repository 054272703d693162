package lp

import (
	"testing"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
)

func workshopProblem(t *testing.T) *Problem {
	t.Helper()
	return mustParse(t, `Minimize
 cost: 2 x1 + 3 x2
Subject To
 c1: x1 + x2 <= 10
 c2: x1 - 2 x2 >= -4
SOS
 s_a: S1:: x1:1 x2:2
End
`)
}

func TestUpdateObjectiveCoefficient(t *testing.T) {
	p := workshopProblem(t)

	if err := p.UpdateObjectiveCoefficient("cost", "x1", 5); err != nil {
		t.Fatal(err)
	}
	obj, _ := p.Objective("cost")
	if got, _ := obj.Expr.Coefficient("x1"); got != 5 {
		t.Errorf("x1 coefficient = %v, want 5", got)
	}
	// Position preserved on overwrite.
	if terms := obj.Expr.Terms(); terms[0].Variable != "x1" {
		t.Errorf("first term = %v, want x1", terms[0])
	}

	// New variable appends and joins the table.
	if err := p.UpdateObjectiveCoefficient("cost", "x9", 1.5); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Variable("x9"); !ok {
		t.Error("x9 should be registered in the variable table")
	}

	err := p.UpdateObjectiveCoefficient("nope", "x1", 1)
	if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("missing objective: err = %v, want NOT_FOUND", err)
	}
}

func TestRenameObjective(t *testing.T) {
	p := workshopProblem(t)
	if err := p.RenameObjective("cost", "expense"); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Objective("cost"); ok {
		t.Error("old name still resolves")
	}
	if _, ok := p.Objective("expense"); !ok {
		t.Error("new name does not resolve")
	}

	err := p.RenameObjective("missing", "x")
	if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestRenameCollision(t *testing.T) {
	p := mustParse(t, `min a: x
 b: x
st c1: x <= 1
 c2: x >= 0
end`)
	if err := p.RenameObjective("a", "b"); !apperrors.Is(err, apperrors.ErrCodeValidation) {
		t.Errorf("objective collision: err = %v, want VALIDATION_ERROR", err)
	}
	if err := p.RenameConstraint("c1", "c2"); !apperrors.Is(err, apperrors.ErrCodeValidation) {
		t.Errorf("constraint collision: err = %v, want VALIDATION_ERROR", err)
	}
}

func TestRemoveObjective(t *testing.T) {
	p := workshopProblem(t)
	if err := p.RemoveObjective("cost"); err != nil {
		t.Fatal(err)
	}
	if p.ObjectiveCount() != 0 {
		t.Errorf("ObjectiveCount = %d, want 0", p.ObjectiveCount())
	}
	if err := p.RemoveObjective("cost"); !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestUpdateConstraint(t *testing.T) {
	p := workshopProblem(t)

	if err := p.UpdateConstraintCoefficient("c1", "x2", 4); err != nil {
		t.Fatal(err)
	}
	if err := p.UpdateConstraintRHS("c1", 20); err != nil {
		t.Fatal(err)
	}
	if err := p.UpdateConstraintOperator("c1", OpEQ); err != nil {
		t.Fatal(err)
	}
	c, _ := p.Constraint("c1")
	if got, _ := c.Expr.Coefficient("x2"); got != 4 {
		t.Errorf("x2 coefficient = %v, want 4", got)
	}
	if c.RHS != 20 || c.Op != OpEQ {
		t.Errorf("c1 = op %v rhs %v", c.Op, c.RHS)
	}

	// SOS constraints reject standard-constraint setters.
	for _, err := range []error{
		p.UpdateConstraintCoefficient("s_a", "x1", 1),
		p.UpdateConstraintRHS("s_a", 1),
		p.UpdateConstraintOperator("s_a", OpLE),
	} {
		if !apperrors.Is(err, apperrors.ErrCodeValidation) {
			t.Errorf("err = %v, want VALIDATION_ERROR", err)
		}
	}
}

func TestRemoveConstraintKeepsOrder(t *testing.T) {
	p := workshopProblem(t)
	if err := p.RemoveConstraint("c1"); err != nil {
		t.Fatal(err)
	}
	cons := p.Constraints()
	if len(cons) != 2 || cons[0].Name != "c2" || cons[1].Name != "s_a" {
		t.Errorf("constraints after removal = %v", cons)
	}
	if _, ok := p.Constraint("c2"); !ok {
		t.Error("index broken after removal")
	}
}

func TestRenameVariableCascades(t *testing.T) {
	p := workshopProblem(t)
	if err := p.RenameVariable("x1", "width"); err != nil {
		t.Fatal(err)
	}

	if _, ok := p.Variable("x1"); ok {
		t.Error("old variable name still resolves")
	}
	obj, _ := p.Objective("cost")
	if _, ok := obj.Expr.Coefficient("width"); !ok {
		t.Error("objective term not renamed")
	}
	if terms := obj.Expr.Terms(); terms[0].Variable != "width" || terms[0].Coefficient != 2 {
		t.Errorf("first objective term = %v", terms[0])
	}
	c1, _ := p.Constraint("c1")
	if _, ok := c1.Expr.Coefficient("width"); !ok {
		t.Error("constraint term not renamed")
	}
	sa, _ := p.Constraint("s_a")
	if sa.Weights[0].Variable != "width" {
		t.Errorf("SOS weight not renamed: %v", sa.Weights)
	}

	if err := p.RenameVariable("width", "x2"); !apperrors.Is(err, apperrors.ErrCodeValidation) {
		t.Errorf("collision err = %v, want VALIDATION_ERROR", err)
	}
}

func TestRemoveVariableCascades(t *testing.T) {
	p := workshopProblem(t)
	if err := p.RemoveVariable("x2"); err != nil {
		t.Fatal(err)
	}

	if p.VariableCount() != 1 {
		t.Errorf("VariableCount = %d, want 1", p.VariableCount())
	}
	obj, _ := p.Objective("cost")
	if obj.Expr.Len() != 1 {
		t.Errorf("objective terms = %v", obj.Expr.Terms())
	}
	c2, _ := p.Constraint("c2")
	if _, ok := c2.Expr.Coefficient("x2"); ok {
		t.Error("constraint still references removed variable")
	}
	sa, _ := p.Constraint("s_a")
	if len(sa.Weights) != 1 || sa.Weights[0].Variable != "x1" {
		t.Errorf("SOS weights = %v", sa.Weights)
	}

	if err := p.RemoveVariable("x2"); !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestUpdateVariableType(t *testing.T) {
	p := workshopProblem(t)

	if err := p.UpdateVariableType("x1", KindBinary); err != nil {
		t.Fatal(err)
	}
	x1, _ := p.Variable("x1")
	if x1.Kind != KindBinary || x1.Lower != 0 || x1.Upper != 1 {
		t.Errorf("x1 = %+v, want binary [0, 1]", x1)
	}

	// Explicit bounds survive a kind change.
	if err := p.SetVariableBounds("x2", 3, 7); err != nil {
		t.Fatal(err)
	}
	if err := p.UpdateVariableType("x2", KindInteger); err != nil {
		t.Fatal(err)
	}
	x2, _ := p.Variable("x2")
	if x2.Kind != KindInteger || x2.Lower != 3 || x2.Upper != 7 {
		t.Errorf("x2 = %+v, want integer [3, 7]", x2)
	}

	if err := p.UpdateVariableType("ghost", KindBinary); !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
