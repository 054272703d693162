package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
	"github.com/dandxy89/lp-parser-rs/pkg/render"
)

type graphOpts struct {
	format     string
	output     string
	detailed   bool
	objectives bool
}

// newGraphCmd creates the graph command: render the variable-constraint
// incidence structure as DOT or SVG.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Render the incidence structure of an LP file",
		Long: `Render the variable-constraint incidence structure as a Graphviz
diagram. Variables are ellipses, constraints boxes (dashed for SOS),
objectives diamonds.

Examples:
  lpparser graph model.lp                       # DOT to stdout
  lpparser graph model.lp --format svg -o m.svg
  lpparser graph model.lp --detailed --objectives`,
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

			dot := render.ToDOT(prob, render.Options{
				Detailed:          opts.detailed,
				IncludeObjectives: opts.objectives,
			})

			var payload []byte
			switch opts.format {
			case "dot", "":
				payload = []byte(dot)
			case "svg":
				logger := loggerFromContext(cmd.Context())
				prog := newProgress(logger)
				payload, err = render.RenderSVG(dot)
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeInternal, err, "render SVG")
				}
				prog.done("Rendered SVG")
			default:
				return apperrors.New(apperrors.ErrCodeValidation, "unknown format: %s (want dot or svg)", opts.format)
			}

			out, err := openOutput(opts.output)
			if err != nil {
				return err
			}
			defer out.Close()
			if _, err := out.Write(payload); err != nil {
				return err
			}
			if opts.output != "" {
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with coefficients and constraints with bounds")
	cmd.Flags().BoolVar(&opts.objectives, "objectives", false, "include objective nodes")

	return cmd
}
