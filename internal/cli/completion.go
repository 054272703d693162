package cli

import (
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
)

// newCompletionCmd creates the completion command. The script is written
// to stdout so it can be sourced directly or redirected into the shell's
// completion directory.
func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate a shell completion script",
		Long: `Generate a completion script for bash, zsh, fish, or powershell.

Source it for the current session:

  source <(lpparser completion bash)
  lpparser completion fish | source

Or install it permanently, e.g. for bash on Linux:

  lpparser completion bash > /etc/bash_completion.d/lpparser

and for zsh:

  lpparser completion zsh > "${fpath[1]}/_lpparser"`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return apperrors.New(apperrors.ErrCodeValidation, "unsupported shell %q", args[0])
		},
	}
}
