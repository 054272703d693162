// Package lpfile provides a file-oriented handle over an LP source with
// an explicit unparsed-to-parsed lifecycle. Construction never parses;
// every accessor and mutation that needs the model either requires a
// prior Parse call or, for ToCSV, parses implicitly.
package lpfile

import (
	"os"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
	lpio "github.com/dandxy89/lp-parser-rs/pkg/io"
	"github.com/dandxy89/lp-parser-rs/pkg/lp"
)

// File wraps LP source text and, after Parse, the problem built from it.
type File struct {
	path string
	src  []byte
	prob *lp.Problem
}

// Open creates a handle for the LP file at path. The file is read
// eagerly but not parsed; a missing file is a NOT_FOUND error.
func Open(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, err, "lp file %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, err, "read %s", path)
	}
	return &File{path: path, src: src}, nil
}

// FromBytes creates a handle over in-memory LP source.
func FromBytes(src []byte) *File {
	return &File{src: src}
}

// FromString creates a handle over in-memory LP source.
func FromString(src string) *File {
	return &File{src: []byte(src)}
}

// Path returns the source path ("" for in-memory handles).
func (f *File) Path() string { return f.path }

// Source returns the raw LP text the handle was built from.
func (f *File) Source() []byte { return f.src }

// Parsed reports whether Parse has completed successfully.
func (f *File) Parsed() bool { return f.prob != nil }

// Parse builds the problem from the source. Parse failures are fatal
// for the handle's lifecycle: the state stays unparsed.
func (f *File) Parse() error {
	prob, err := lp.ParseBytes(f.src)
	if err != nil {
		return err
	}
	f.prob = prob
	return nil
}

func (f *File) requireParsed() error {
	if f.prob == nil {
		return apperrors.New(apperrors.ErrCodeState, "problem not parsed: call Parse first")
	}
	return nil
}

// Problem returns the parsed problem, or a STATE_ERROR before Parse.
func (f *File) Problem() (*lp.Problem, error) {
	if err := f.requireParsed(); err != nil {
		return nil, err
	}
	return f.prob, nil
}

// Name returns the problem name.
func (f *File) Name() (string, error) {
	if err := f.requireParsed(); err != nil {
		return "", err
	}
	return f.prob.Name(), nil
}

// SetName sets the problem name.
func (f *File) SetName(name string) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	f.prob.SetName(name)
	return nil
}

// Sense returns the optimization direction as a string.
func (f *File) Sense() (string, error) {
	if err := f.requireParsed(); err != nil {
		return "", err
	}
	return f.prob.Sense().String(), nil
}

// SetSense sets the optimization direction from a sense string.
func (f *File) SetSense(sense string) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	s, err := lp.ParseSense(sense)
	if err != nil {
		return err
	}
	f.prob.SetSense(s)
	return nil
}

// Counts returns variable, constraint, and objective counts.
func (f *File) Counts() (variables, constraints, objectives int, err error) {
	if err := f.requireParsed(); err != nil {
		return 0, 0, 0, err
	}
	return f.prob.VariableCount(), f.prob.ConstraintCount(), f.prob.ObjectiveCount(), nil
}

// Mutation forwarders. Each requires a completed parse and otherwise
// delegates to the problem's mutation engine.

func (f *File) UpdateObjectiveCoefficient(objective, variable string, value float64) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	return f.prob.UpdateObjectiveCoefficient(objective, variable, value)
}

func (f *File) RenameObjective(old, new string) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	return f.prob.RenameObjective(old, new)
}

func (f *File) RemoveObjective(name string) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	return f.prob.RemoveObjective(name)
}

func (f *File) UpdateConstraintCoefficient(constraint, variable string, value float64) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	return f.prob.UpdateConstraintCoefficient(constraint, variable, value)
}

func (f *File) UpdateConstraintRHS(constraint string, value float64) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	return f.prob.UpdateConstraintRHS(constraint, value)
}

// UpdateConstraintOperator changes a standard constraint's relational
// operator from an operator string.
func (f *File) UpdateConstraintOperator(constraint, op string) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	o, err := lp.ParseRelOp(op)
	if err != nil {
		return err
	}
	return f.prob.UpdateConstraintOperator(constraint, o)
}

func (f *File) RenameConstraint(old, new string) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	return f.prob.RenameConstraint(old, new)
}

func (f *File) RemoveConstraint(name string) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	return f.prob.RemoveConstraint(name)
}

func (f *File) RenameVariable(old, new string) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	return f.prob.RenameVariable(old, new)
}

func (f *File) RemoveVariable(name string) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	return f.prob.RemoveVariable(name)
}

// UpdateVariableType changes a variable's kind from a type string.
func (f *File) UpdateVariableType(name, kind string) error {
	if err := f.requireParsed(); err != nil {
		return err
	}
	k, err := lp.ParseVarKind(kind)
	if err != nil {
		return err
	}
	return f.prob.UpdateVariableType(name, k)
}

// Text renders the parsed problem as LP text.
func (f *File) Text(opts lp.WriteOptions) (string, error) {
	if err := f.requireParsed(); err != nil {
		return "", err
	}
	return lp.Write(f.prob, opts), nil
}

// Save writes the parsed problem as LP text to path.
func (f *File) Save(path string, opts lp.WriteOptions) error {
	text, err := f.Text(opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// ToCSV exports the problem as CSV files into dir, parsing first when
// the handle is still unparsed.
func (f *File) ToCSV(dir string) error {
	if f.prob == nil {
		if err := f.Parse(); err != nil {
			return err
		}
	}
	return lpio.ExportCSV(f.prob, dir)
}

// Compare diffs this problem against other. Both handles must be parsed.
func (f *File) Compare(other *File) (*lp.DiffReport, error) {
	if err := f.requireParsed(); err != nil {
		return nil, err
	}
	if err := other.requireParsed(); err != nil {
		return nil, err
	}
	return lp.Compare(f.prob, other.prob), nil
}
