package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func flatCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "flat <file>",
		Short: "Flatten a tree file to parent-pointer records",
		Long: `Flatten a tree definition file to one record per node, each
carrying its parent ID. This is the wire shape the snapshot and
devtools APIs use.

Examples:
  loom flat project.yaml
  loom flat project.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tf, err := loadTreeFile(args[0])
			if err != nil {
				return err
			}
			tree, err := buildTree(tf)
			if err != nil {
				return err
			}
			items := tree.ToFlat()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			out := cmd.OutOrStdout()
			for _, item := range items {
				parent := item.ParentID
				if parent == "" {
					parent = "-"
				}
				fmt.Fprintf(out, "%-20s %-20s %s\n", item.ID, parent, item.Value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of columns")

	return cmd
}
