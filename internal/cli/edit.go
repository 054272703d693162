package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
	"github.com/dandxy89/lp-parser-rs/pkg/lpfile"
)

type editOpts struct {
	output string
	write  writeFlags

	setSense string
	setName  string

	renameObjective  []string
	renameConstraint []string
	renameVariable   []string

	setObjectiveCoeff  []string
	setConstraintCoeff []string
	setRHS             []string
	setOperator        []string
	setVarType         []string

	removeObjective  []string
	removeConstraint []string
	removeVariable   []string
}

// newEditCmd creates the edit command: apply mutations to a model and
// write the result back as LP text.
func newEditCmd() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Apply edits to an LP file",
		Long: `Apply edits to an LP file and print the result (or write it with -o).

Edits are applied in a fixed order: sense and name first, then renames,
then coefficient/RHS/type updates, then removals. Repeatable flags apply
in the order given.

Examples:
  lpparser edit model.lp --set-sense max
  lpparser edit model.lp --rename-variable x1=width -o out.lp
  lpparser edit model.lp --set-objective-coeff cost:x1=2.5 --set-rhs c1=20
  lpparser edit model.lp --remove-variable x3 --set-var-type x2=integer`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadParsed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := applyEdits(f, &opts); err != nil {
				return err
			}

			wopts, err := opts.write.resolveWriteOptions(cmd)
			if err != nil {
				return err
			}
			if opts.output != "" {
				if err := f.Save(opts.output, wopts); err != nil {
					return err
				}
				printSuccess("Saved edited model")
				printFile(opts.output)
				return nil
			}
			text, err := f.Text(wopts)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.setSense, "set-sense", "", "set the optimization sense (min or max)")
	cmd.Flags().StringVar(&opts.setName, "set-name", "", "set the problem name")
	cmd.Flags().StringArrayVar(&opts.renameObjective, "rename-objective", nil, "rename an objective: old=new")
	cmd.Flags().StringArrayVar(&opts.renameConstraint, "rename-constraint", nil, "rename a constraint: old=new")
	cmd.Flags().StringArrayVar(&opts.renameVariable, "rename-variable", nil, "rename a variable everywhere: old=new")
	cmd.Flags().StringArrayVar(&opts.setObjectiveCoeff, "set-objective-coeff", nil, "set an objective coefficient: objective:variable=value")
	cmd.Flags().StringArrayVar(&opts.setConstraintCoeff, "set-constraint-coeff", nil, "set a constraint coefficient: constraint:variable=value")
	cmd.Flags().StringArrayVar(&opts.setRHS, "set-rhs", nil, "set a constraint right-hand side: constraint=value")
	cmd.Flags().StringArrayVar(&opts.setOperator, "set-operator", nil, "set a constraint operator: constraint=op (<=, >=, =)")
	cmd.Flags().StringArrayVar(&opts.setVarType, "set-var-type", nil, "set a variable type: variable=kind")
	cmd.Flags().StringArrayVar(&opts.removeObjective, "remove-objective", nil, "remove an objective by name")
	cmd.Flags().StringArrayVar(&opts.removeConstraint, "remove-constraint", nil, "remove a constraint by name")
	cmd.Flags().StringArrayVar(&opts.removeVariable, "remove-variable", nil, "remove a variable and all its references")
	addWriteFlags(cmd, &opts.write)

	return cmd
}

func applyEdits(f *lpfile.File, opts *editOpts) error {
	if opts.setSense != "" {
		if err := f.SetSense(opts.setSense); err != nil {
			return err
		}
	}
	if opts.setName != "" {
		if err := f.SetName(opts.setName); err != nil {
			return err
		}
	}

	for _, spec := range opts.renameObjective {
		old, new, err := splitPair(spec)
		if err != nil {
			return err
		}
		if err := f.RenameObjective(old, new); err != nil {
			return err
		}
	}
	for _, spec := range opts.renameConstraint {
		old, new, err := splitPair(spec)
		if err != nil {
			return err
		}
		if err := f.RenameConstraint(old, new); err != nil {
			return err
		}
	}
	for _, spec := range opts.renameVariable {
		old, new, err := splitPair(spec)
		if err != nil {
			return err
		}
		if err := f.RenameVariable(old, new); err != nil {
			return err
		}
	}

	for _, spec := range opts.setObjectiveCoeff {
		entity, variable, value, err := splitCoeffSpec(spec)
		if err != nil {
			return err
		}
		if err := f.UpdateObjectiveCoefficient(entity, variable, value); err != nil {
			return err
		}
	}
	for _, spec := range opts.setConstraintCoeff {
		entity, variable, value, err := splitCoeffSpec(spec)
		if err != nil {
			return err
		}
		if err := f.UpdateConstraintCoefficient(entity, variable, value); err != nil {
			return err
		}
	}
	for _, spec := range opts.setRHS {
		name, raw, err := splitPair(spec)
		if err != nil {
			return err
		}
		value, err := parseValue(raw)
		if err != nil {
			return err
		}
		if err := f.UpdateConstraintRHS(name, value); err != nil {
			return err
		}
	}
	for _, spec := range opts.setOperator {
		name, op, err := splitPair(spec)
		if err != nil {
			return err
		}
		if err := f.UpdateConstraintOperator(name, op); err != nil {
			return err
		}
	}
	for _, spec := range opts.setVarType {
		name, kind, err := splitPair(spec)
		if err != nil {
			return err
		}
		if err := f.UpdateVariableType(name, kind); err != nil {
			return err
		}
	}

	for _, name := range opts.removeObjective {
		if err := f.RemoveObjective(name); err != nil {
			return err
		}
	}
	for _, name := range opts.removeConstraint {
		if err := f.RemoveConstraint(name); err != nil {
			return err
		}
	}
	for _, name := range opts.removeVariable {
		if err := f.RemoveVariable(name); err != nil {
			return err
		}
	}
	return nil
}

// splitPair parses "left=right" specs.
func splitPair(spec string) (string, string, error) {
	left, right, ok := strings.Cut(spec, "=")
	if !ok || left == "" || right == "" {
		return "", "", apperrors.New(apperrors.ErrCodeValidation, "invalid spec %q: want left=right", spec)
	}
	return left, right, nil
}

// splitCoeffSpec parses "entity:variable=value" specs.
func splitCoeffSpec(spec string) (string, string, float64, error) {
	entity, rest, ok := strings.Cut(spec, ":")
	if !ok || entity == "" {
		return "", "", 0, apperrors.New(apperrors.ErrCodeValidation, "invalid spec %q: want entity:variable=value", spec)
	}
	variable, raw, err := splitPair(rest)
	if err != nil {
		return "", "", 0, apperrors.New(apperrors.ErrCodeValidation, "invalid spec %q: want entity:variable=value", spec)
	}
	value, err := parseValue(raw)
	if err != nil {
		return "", "", 0, err
	}
	return entity, variable, value, nil
}

func parseValue(raw string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrCodeValidation, "invalid numeric value %q", raw)
	}
	return value, nil
}
