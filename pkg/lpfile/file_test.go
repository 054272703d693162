package lpfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
	"github.com/dandxy89/lp-parser-rs/pkg/lp"
)

const tinyLP = `Minimize
 obj: 2 x + y
Subject To
 c1: x + y <= 10
End
`

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("/nonexistent/model.lp")
	if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestOpenAndParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.lp")
	if err := os.WriteFile(path, []byte(tinyLP), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if f.Parsed() {
		t.Error("handle should start unparsed")
	}
	if err := f.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	vars, cons, objs, err := f.Counts()
	if err != nil {
		t.Fatal(err)
	}
	if vars != 2 || cons != 1 || objs != 1 {
		t.Errorf("counts = %d/%d/%d", vars, cons, objs)
	}
}

func TestStateGuards(t *testing.T) {
	f := FromString(tinyLP)

	checks := []struct {
		name string
		err  error
	}{
		{"SetSense", f.SetSense("max")},
		{"RenameVariable", f.RenameVariable("x", "y")},
		{"UpdateConstraintRHS", f.UpdateConstraintRHS("c1", 5)},
		{"RemoveObjective", f.RemoveObjective("obj")},
	}
	for _, c := range checks {
		if !apperrors.Is(c.err, apperrors.ErrCodeState) {
			t.Errorf("%s before Parse: err = %v, want STATE_ERROR", c.name, c.err)
		}
	}
	if _, err := f.Text(lp.DefaultWriteOptions()); !apperrors.Is(err, apperrors.ErrCodeState) {
		t.Errorf("Text before Parse: err = %v, want STATE_ERROR", err)
	}
}

func TestParseFailureKeepsUnparsed(t *testing.T) {
	f := FromString("min obj: x st c1: x <= 1") // no End
	err := f.Parse()
	if !apperrors.Is(err, apperrors.ErrCodeParse) {
		t.Fatalf("err = %v, want PARSE_ERROR", err)
	}
	if f.Parsed() {
		t.Error("failed parse should leave handle unparsed")
	}
}

func TestMutateAndSave(t *testing.T) {
	f := FromString(tinyLP)
	if err := f.Parse(); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSense("max"); err != nil {
		t.Fatal(err)
	}
	if err := f.RenameVariable("x", "width"); err != nil {
		t.Fatal(err)
	}
	if err := f.UpdateConstraintRHS("c1", 25); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "out.lp")
	if err := f.Save(out, lp.DefaultWriteOptions()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "Maximize") {
		t.Errorf("saved text missing sense change:\n%s", text)
	}
	if !strings.Contains(text, "2 width") || !strings.Contains(text, "<= 25") {
		t.Errorf("saved text missing mutations:\n%s", text)
	}
}

func TestToCSVParsesImplicitly(t *testing.T) {
	f := FromString(tinyLP)
	dir := t.TempDir()
	if err := f.ToCSV(dir); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
	if !f.Parsed() {
		t.Error("ToCSV should leave the handle parsed")
	}
	for _, name := range []string{"variables.csv", "constraints.csv", "objectives.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestCompareRequiresBothParsed(t *testing.T) {
	a := FromString(tinyLP)
	b := FromString(tinyLP)
	if err := a.Parse(); err != nil {
		t.Fatal(err)
	}

	if _, err := a.Compare(b); !apperrors.Is(err, apperrors.ErrCodeState) {
		t.Errorf("err = %v, want STATE_ERROR", err)
	}
	if err := b.Parse(); err != nil {
		t.Fatal(err)
	}
	report, err := a.Compare(b)
	if err != nil {
		t.Fatal(err)
	}
	if !report.Identical() {
		t.Errorf("identical sources differ: %+v", report)
	}
}
