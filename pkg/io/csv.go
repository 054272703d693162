package io

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
	"github.com/dandxy89/lp-parser-rs/pkg/lp"
)

// CSV file names produced by ExportCSV.
const (
	VariablesCSV   = "variables.csv"
	ConstraintsCSV = "constraints.csv"
	ObjectivesCSV  = "objectives.csv"
)

// ExportCSV flattens a problem into three relational CSV files in dir:
// variables.csv, constraints.csv (one row per term, SOS rows carry the
// weight in the coefficient column), and objectives.csv (one row per
// term). dir must be an existing directory.
func ExportCSV(p *lp.Problem, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, err, "output directory %s", dir)
	}
	if !info.IsDir() {
		return apperrors.New(apperrors.ErrCodeIO, "output path %s is not a directory", dir)
	}

	if err := writeVariablesCSV(p, filepath.Join(dir, VariablesCSV)); err != nil {
		return err
	}
	if err := writeConstraintsCSV(p, filepath.Join(dir, ConstraintsCSV)); err != nil {
		return err
	}
	return writeObjectivesCSV(p, filepath.Join(dir, ObjectivesCSV))
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, err, "create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, err, "write %s", path)
	}
	if err := w.WriteAll(rows); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, err, "write %s", path)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

func csvValue(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeVariablesCSV(p *lp.Problem, path string) error {
	header := []string{"variable_name", "type", "lower_bound", "upper_bound"}
	vars := p.Variables()
	rows := make([][]string, 0, len(vars))
	for _, v := range vars {
		rows = append(rows, []string{
			v.Name,
			v.Kind.String(),
			csvValue(v.Lower),
			csvValue(v.Upper),
		})
	}
	return writeCSV(path, header, rows)
}

func writeConstraintsCSV(p *lp.Problem, path string) error {
	header := []string{
		"constraint_name", "constraint_type", "variable_name",
		"coefficient", "operator", "rhs", "sos_type",
	}
	var rows [][]string
	for _, c := range p.Constraints() {
		if c.Kind == lp.ConstraintSOS {
			for _, w := range c.Weights {
				rows = append(rows, []string{
					c.Name, "sos", w.Variable, csvValue(w.Coefficient),
					"", "", c.SOSType.String(),
				})
			}
			continue
		}
		op := c.Op.String()
		rhs := csvValue(c.RHS)
		for _, t := range c.Expr.Terms() {
			rows = append(rows, []string{
				c.Name, "standard", t.Variable, csvValue(t.Coefficient),
				op, rhs, "",
			})
		}
	}
	return writeCSV(path, header, rows)
}

func writeObjectivesCSV(p *lp.Problem, path string) error {
	header := []string{"objective_name", "variable_name", "coefficient"}
	var rows [][]string
	for _, o := range p.Objectives() {
		for _, t := range o.Expr.Terms() {
			rows = append(rows, []string{o.Name, t.Variable, csvValue(t.Coefficient)})
		}
	}
	return writeCSV(path, header, rows)
}
