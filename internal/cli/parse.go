package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	lpio "github.com/dandxy89/lp-parser-rs/pkg/io"
	"github.com/dandxy89/lp-parser-rs/pkg/lpfile"
)

// loadParsed opens and parses an LP file, logging progress.
func loadParsed(ctx context.Context, path string) (*lpfile.File, error) {
	logger := loggerFromContext(ctx)
	logger.Debugf("Reading %s", path)

	f, err := lpfile.Open(path)
	if err != nil {
		return nil, err
	}
	prog := newProgress(logger)
	if err := f.Parse(); err != nil {
		return nil, err
	}
	vars, cons, objs, _ := f.Counts()
	prog.done(fmt.Sprintf("Parsed %d variables, %d constraints, %d objectives", vars, cons, objs))
	return f, nil
}

// nopCloser wraps an io.Writer with a no-op Close method so os.Stdout
// can stand in for an output file.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type parseOpts struct {
	format string
	output string
	write  writeFlags
}

// newParseCmd creates the parse command: parse an LP file and reprint
// it in normalized form, or emit the model as JSON.
func newParseCmd() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an LP file and print the normalized model",
		Long: `Parse an LP file and print the model back in normalized LP form.

Examples:
  lpparser parse model.lp                 # normalized LP text to stdout
  lpparser parse model.lp --format json   # model as JSON
  lpparser parse model.lp -o clean.lp     # write to a file`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadParsed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := openOutput(opts.output)
			if err != nil {
				return err
			}
			defer out.Close()

			switch opts.format {
			case "json":
				prob, err := f.Problem()
				if err != nil {
					return err
				}
				if err := lpio.WriteJSON(prob, out); err != nil {
					return err
				}
			case "text", "lp", "":
				wopts, err := opts.write.resolveWriteOptions(cmd)
				if err != nil {
					return err
				}
				text, err := f.Text(wopts)
				if err != nil {
					return err
				}
				if _, err := io.WriteString(out, text); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format: %s (want text or json)", opts.format)
			}

			if opts.output != "" {
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	addWriteFlags(cmd, &opts.write)

	return cmd
}
