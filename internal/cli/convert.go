package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
	lpio "github.com/dandxy89/lp-parser-rs/pkg/io"
)

type convertOpts struct {
	to     string
	output string
	write  writeFlags
}

// newConvertCmd creates the convert command: LP to normalized LP, JSON,
// or relational CSV.
func newConvertCmd() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert an LP file to LP, JSON, or CSV",
		Long: `Convert an LP file to another representation.

Targets:
  lp    normalized LP text (default)
  json  full model as a JSON document
  csv   three relational files (variables, constraints, objectives);
        requires -o pointing at an existing directory

Examples:
  lpparser convert model.lp --to json -o model.json
  lpparser convert model.lp --to csv -o ./out/
  lpparser convert model.lp --to lp --precision 3 --compact`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadParsed(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			switch opts.to {
			case "csv":
				if opts.output == "" {
					return apperrors.New(apperrors.ErrCodeValidation, "csv conversion requires -o <directory>")
				}
				if err := f.ToCSV(opts.output); err != nil {
					return err
				}
				printSuccess("Exported CSV files")
				printFile(opts.output)
				return nil
			case "json":
				prob, err := f.Problem()
				if err != nil {
					return err
				}
				out, err := openOutput(opts.output)
				if err != nil {
					return err
				}
				defer out.Close()
				if err := lpio.WriteJSON(prob, out); err != nil {
					return err
				}
			case "lp", "":
				wopts, err := opts.write.resolveWriteOptions(cmd)
				if err != nil {
					return err
				}
				text, err := f.Text(wopts)
				if err != nil {
					return err
				}
				out, err := openOutput(opts.output)
				if err != nil {
					return err
				}
				defer out.Close()
				if _, err := io.WriteString(out, text); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown target: %s (want lp, json, or csv)", opts.to)
			}

			if opts.output != "" {
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.to, "to", "lp", "target format: lp, json, or csv")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or directory (stdout if empty)")
	addWriteFlags(cmd, &opts.write)

	return cmd
}
