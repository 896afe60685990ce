package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/rules"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "rules", Short: "List available rules"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in misuse rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, r := range rules.Catalog() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", r.ID, r.Severity, r.CWE, r.Title)
			}
			return nil
		},
	})
	return cmd
}
