package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "List characters matching a name without the interactive loop",
	Long: `Search characters by (part of) their name and print the numbered
result list, exactly as the interactive prompt would show it.

Only the first page of API results is shown.

Examples:
  mortydex search rick
  mortydex search "mr. poopy" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := args[0]
	out := cmd.OutOrStdout()

	characters, err := apiClient.SearchCharacters(cmd.Context(), term)
	if err != nil {
		return fmt.Errorf("search characters: %w", err)
	}

	if searchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(characters)
	}

	if len(characters) == 0 {
		fmt.Fprintf(out, "No results found for: %s\n", term)
		return nil
	}

	for i, c := range characters {
		fmt.Fprintf(out, "%d) %s\n", i, c.Name)
	}

	return nil
}
