package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/onepercent/pkg/dataview"
	"github.com/matzehuels/onepercent/pkg/pipeline"
)

// dataFileExts are the extensions offered when completing a data view path.
var dataFileExts = []string{"csv", "json", "yaml", "yml"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for onepercent.

Completions cover subcommands and flags, data files (.csv, .json, .yaml)
for render, watch and preview, and the values of --format and
--input-format. Several formats are completed after a comma, for example
"-f svg,p<TAB>".

Load them for the current shell:

  bash:        source <(onepercent completion bash)
  zsh:         source <(onepercent completion zsh)
  fish:        onepercent completion fish | source
  powershell:  onepercent completion powershell | Out-String | Invoke-Expression

To keep them, write the script where your shell looks for completions,
e.g. ~/.config/fish/completions/onepercent.fish or a directory on zsh's $fpath.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// registerRenderCompletions wires completions for a command taking a data
// file argument and the shared render flags.
func registerRenderCompletions(cmd *cobra.Command) {
	cmd.ValidArgsFunction = completeDataFile
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("input-format", completeInputFormats)
}

// completeDataFile offers data view files for the first positional argument.
func completeDataFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return dataFileExts, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the last element of a comma-separated format
// list, skipping formats already given.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	given := parseFormats(prefix)

	var out []string
	for _, f := range pipeline.FormatNames() {
		if slices.Contains(given, f) || !strings.HasPrefix(f, last) {
			continue
		}
		out = append(out, prefix+f)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func completeInputFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats := []string{dataview.FormatCSV, dataview.FormatJSON, dataview.FormatYAML}
	var out []string
	for _, f := range formats {
		if strings.HasPrefix(f, toComplete) {
			out = append(out, f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
