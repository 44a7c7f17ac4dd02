package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(stopwatch completion bash)

Zsh:
  $ stopwatch completion zsh > "${fpath[1]}/_stopwatch"

Fish:
  $ stopwatch completion fish | source

PowerShell:
  PS> stopwatch completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")

		var buf bytes.Buffer
		var err error
		switch args[0] {
		case "bash":
			err = rootCmd.GenBashCompletionV2(&buf, true)
		case "zsh":
			err = rootCmd.GenZshCompletion(&buf)
		case "fish":
			err = rootCmd.GenFishCompletion(&buf, true)
		case "powershell":
			err = rootCmd.GenPowerShellCompletionWithDesc(&buf)
		}
		if err != nil {
			return fmt.Errorf("generate %s completions: %w", args[0], err)
		}

		if outPath == "" {
			if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
				return fmt.Errorf("stream completions: %w", err)
			}
			return nil
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write completions: %w", err)
		}
		Success(cmd.OutOrStdout(), "Wrote completions to %s", outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
	completionCmd.Flags().String("out", "", "Write completions to the given file path")

	configGetCmd.ValidArgsFunction = validConfigKeysFunc
	configSetCmd.ValidArgsFunction = validConfigKeysFunc
}

// validConfigKeysFunc completes the key argument of config get/set
func validConfigKeysFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{keyDisplayInterval}, cobra.ShellCompDirectiveNoFileComp
}
