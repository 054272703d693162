package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dandxy89/lp-parser-rs/pkg/lp"
)

type diffOpts struct {
	format string
}

// newDiffCmd creates the diff command. Exit codes follow the diff
// convention: 0 when the models are identical, 1 when differences were
// found, 2 on any error.
func newDiffCmd() *cobra.Command {
	var opts diffOpts

	cmd := &cobra.Command{
		Use:   "diff <a.lp> <b.lp>",
		Short: "Compare two LP files structurally",
		Long: `Compare two LP files entity by entity: sense, problem name, variables,
objectives, and constraints. Coefficients are compared with a small
tolerance, so formatting-only differences never count.

Exit codes: 0 identical, 1 differences found, 2 error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runDiff(cmd, args[0], args[1], opts.format)
			if err != nil {
				return &exitError{code: 2, err: err}
			}
			if !report.Identical() {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text or json")

	return cmd
}

func runDiff(cmd *cobra.Command, pathA, pathB, format string) (*lp.DiffReport, error) {
	a, err := loadParsed(cmd.Context(), pathA)
	if err != nil {
		return nil, err
	}
	b, err := loadParsed(cmd.Context(), pathB)
	if err != nil {
		return nil, err
	}
	report, err := a.Compare(b)
	if err != nil {
		return nil, err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return nil, err
		}
	case "text", "":
		fmt.Print(renderDiff(report, pathA, pathB))
	default:
		return nil, fmt.Errorf("unknown format: %s (want text or json)", format)
	}
	return report, nil
}

// renderDiff produces the human-readable diff view.
func renderDiff(r *lp.DiffReport, pathA, pathB string) string {
	var b strings.Builder

	if r.Identical() {
		b.WriteString(styleSuccess.Render(iconSuccess) + " models are identical\n")
		return b.String()
	}

	b.WriteString(styleTitle.Render(fmt.Sprintf("%s %s %s", pathA, iconArrow, pathB)) + "\n")

	if r.SenseChanged {
		b.WriteString(changedLine("sense", r.SenseFrom, r.SenseTo))
	}
	if r.NameChanged {
		b.WriteString(changedLine("name", displayName(r.NameFrom), displayName(r.NameTo)))
	}

	for _, v := range r.AddedVariables {
		b.WriteString(styleAdded.Render(fmt.Sprintf("+ variable %s", v)) + "\n")
	}
	for _, v := range r.RemovedVariables {
		b.WriteString(styleRemoved.Render(fmt.Sprintf("- variable %s", v)) + "\n")
	}
	for _, d := range r.ModifiedVariables {
		b.WriteString(entityDiffLines("variable", d))
	}
	for _, d := range r.Objectives {
		b.WriteString(entityDiffLines("objective", d))
	}
	for _, d := range r.Constraints {
		b.WriteString(entityDiffLines("constraint", d))
	}

	return b.String()
}

func displayName(s string) string {
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func changedLine(field, from, to string) string {
	return styleChanged.Render(fmt.Sprintf("~ %s: %s %s %s", field, from, iconArrow, to)) + "\n"
}

func entityDiffLines(kind string, d lp.EntityDiff) string {
	var b strings.Builder
	switch d.Kind {
	case lp.ChangeAdded:
		b.WriteString(styleAdded.Render(fmt.Sprintf("+ %s %s", kind, d.Name)) + "\n")
	case lp.ChangeRemoved:
		b.WriteString(styleRemoved.Render(fmt.Sprintf("- %s %s", kind, d.Name)) + "\n")
	default:
		b.WriteString(styleChanged.Render(fmt.Sprintf("~ %s %s", kind, d.Name)) + "\n")
		for _, f := range d.Fields {
			b.WriteString("    " + styleChanged.Render(fmt.Sprintf("%s: %s %s %s", f.Field, f.From, iconArrow, f.To)) + "\n")
		}
		for _, c := range d.Coefficients {
			b.WriteString("    " + coefficientLine(c) + "\n")
		}
	}
	return b.String()
}

func coefficientLine(c lp.CoefficientChange) string {
	switch c.Kind {
	case lp.ChangeAdded:
		return styleAdded.Render(fmt.Sprintf("+ %s = %s", c.Variable, num(*c.To)))
	case lp.ChangeRemoved:
		return styleRemoved.Render(fmt.Sprintf("- %s (was %s)", c.Variable, num(*c.From)))
	default:
		return styleChanged.Render(fmt.Sprintf("~ %s: %s %s %s", c.Variable, num(*c.From), iconArrow, num(*c.To)))
	}
}
