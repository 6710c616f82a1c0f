// catalog-lint validates a raid catalog document and prints a per-raid
// summary. It exits non-zero when the catalog would be rejected at load
// time, so it fits in a pre-deploy check.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/okian/rexbot/internal/domain/catalog"
	"github.com/okian/rexbot/internal/domain/model"
)

var lintFlags struct {
	file string
}

var rootCmd = &cobra.Command{
	Use:   "catalog-lint",
	Short: "Validate a raid catalog document",
	Long: "Validates a raid catalog document against the same rules the bot\n" +
		"applies at load time and prints a per-raid summary.",
	RunE: runLint,
}

func init() {
	rootCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "config/raids_helper.json", "catalog document to validate")
}

func runLint(cmd *cobra.Command, _ []string) error {
	raids, err := catalog.Load(lintFlags.file)
	if err != nil {
		return fmt.Errorf("catalog invalid: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d raids OK\n\n", lintFlags.file, len(raids))

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Raid", "Teams", "Variants", "Members", "Damage %"})

	for _, raid := range raids {
		variants, members := 0, 0
		damage := 0.0
		for _, team := range raid.Teams {
			variants += len(team.Variants)
			for _, variant := range team.Variants {
				members += len(variant.Members)
				damage += variant.PercentDamage
			}
		}
		t.AppendRow(table.Row{raid.Name, len(raid.Teams), variants, members, damage})
	}

	t.Render()

	for _, raid := range raids {
		warnPartialVariants(out, raid)
	}
	return nil
}

// warnPartialVariants flags variants declaring fewer members than the
// team slot count. They are valid but score against the full slot
// count, which is easy to get wrong when editing the catalog.
func warnPartialVariants(out io.Writer, raid model.Raid) {
	for _, team := range raid.Teams {
		for _, variant := range team.Variants {
			if len(variant.Members) < model.TeamSlots {
				fmt.Fprintf(out, "note: %s / %s / %s declares %d of %d members\n",
					raid.Name, team.Name, variant.Name, len(variant.Members), model.TeamSlots)
			}
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
