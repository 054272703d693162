package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dandxy89/lp-parser-rs/pkg/lp"
)

type infoOpts struct {
	format      string
	variables   bool
	constraints bool
	objectives  bool
}

// newInfoCmd creates the info command: summary statistics for a model,
// with optional per-entity listings.
func newInfoCmd() *cobra.Command {
	var opts infoOpts

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize the structure of an LP file",
		Long: `Summarize the structure of an LP file: entity counts, variable kinds,
constraint-matrix density, and value ranges.

Examples:
  lpparser info model.lp
  lpparser info model.lp --variables     # list the variable table
  lpparser info model.lp --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadParsed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			prob, err := f.Problem()
			if err != nil {
				return err
			}
			analysis := lp.Analyze(prob)

			if opts.format == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(analysis)
			}

			printSummary(prob, analysis)
			if opts.variables {
				printVariables(prob)
			}
			if opts.constraints {
				printConstraints(prob)
			}
			if opts.objectives {
				printObjectives(prob)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&opts.variables, "variables", false, "list the variable table")
	cmd.Flags().BoolVar(&opts.constraints, "constraints", false, "list constraints")
	cmd.Flags().BoolVar(&opts.objectives, "objectives", false, "list objectives")

	return cmd
}

func printSummary(prob *lp.Problem, a lp.Analysis) {
	name := prob.Name()
	if name == "" {
		name = styleDim.Render("(unnamed)")
	}
	fmt.Println(styleTitle.Render("Problem"))
	printKeyValue("name", name)
	printKeyValue("sense", prob.Sense().String())
	printKeyValue("variables", strconv.Itoa(a.Variables))
	printKeyValue("constraints", fmt.Sprintf("%d (%d standard, %d SOS)",
		a.Constraints, a.StandardConstraints, a.SOSConstraints))
	printKeyValue("objectives", strconv.Itoa(a.Objectives))
	printKeyValue("nonzeros", strconv.Itoa(a.NonzeroCoefficients))
	printKeyValue("density", fmt.Sprintf("%.4f", a.Density))
	if a.NonzeroCoefficients > 0 {
		printKeyValue("coefficients", fmt.Sprintf("[%s, %s]", num(a.MinCoefficient), num(a.MaxCoefficient)))
	}
	if a.StandardConstraints > 0 {
		printKeyValue("rhs", fmt.Sprintf("[%s, %s]", num(a.MinRHS), num(a.MaxRHS)))
	}

	kinds := make([]string, 0, len(a.VariablesByKind))
	for k := range a.VariablesByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		printKeyValue("  "+k, strconv.Itoa(a.VariablesByKind[k]))
	}
}

func printVariables(prob *lp.Problem) {
	fmt.Println()
	fmt.Println(styleTitle.Render("Variables"))
	for _, v := range prob.Variables() {
		fmt.Printf("  %s  %s %s\n",
			styleValue.Render(v.Name),
			styleDim.Render(v.Kind.String()),
			styleDim.Render(fmt.Sprintf("[%s, %s]", num(v.Lower), num(v.Upper))))
	}
}

func printConstraints(prob *lp.Problem) {
	fmt.Println()
	fmt.Println(styleTitle.Render("Constraints"))
	for _, c := range prob.Constraints() {
		fmt.Printf("  %s  %s\n", styleValue.Render(c.Name), styleDim.Render(describeConstraint(c)))
	}
}

func printObjectives(prob *lp.Problem) {
	fmt.Println()
	fmt.Println(styleTitle.Render("Objectives"))
	for _, o := range prob.Objectives() {
		fmt.Printf("  %s  %s\n", styleValue.Render(o.Name),
			styleDim.Render(fmt.Sprintf("%d terms", o.Expr.Len())))
	}
}

func describeConstraint(c lp.Constraint) string {
	if c.Kind == lp.ConstraintSOS {
		return fmt.Sprintf("%s, %d weights", c.SOSType, len(c.Weights))
	}
	return fmt.Sprintf("%d terms %s %s", c.Expr.Len(), c.Op, num(c.RHS))
}

// num formats a float compactly for display.
func num(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
