package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loom-ui/loom/pkg/nested"
)

func renderCmd() *cobra.Command {
	var (
		all      bool
		noMarker bool
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a tree file as an ASCII tree",
		Long: `Render a tree definition file as an ASCII tree.

Each node shows a selection marker ([x] selected, [~] mixed, [ ]
neither) and branches show an open marker (▾ open, ▸ closed).
Children of closed branches are hidden unless --all is given.

Examples:
  loom render project.yaml
  loom render project.yaml --all`,
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
			renderTree(cmd.OutOrStdout(), tree, all, !noMarker)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Render children of closed branches too")
	cmd.Flags().BoolVar(&noMarker, "no-markers", false, "Omit selection and open markers")

	return cmd
}

func renderTree(w io.Writer, tree *nested.Nested[string], all, markers bool) {
	roots := tree.Roots()
	for i, id := range roots {
		renderNode(w, tree, id, "", i == len(roots)-1, all, markers)
	}
}

func renderNode(w io.Writer, tree *nested.Nested[string], id, prefix string, last, all, markers bool) {
	branch := "├── "
	childPrefix := prefix + "│   "
	if last {
		branch = "└── "
		childPrefix = prefix + "    "
	}

	value, _ := tree.Value(id)
	fmt.Fprintf(w, "%s%s%s%s\n", prefix, branch, marker(tree, id, markers), value)

	if !tree.IsLeaf(id) && !tree.Opened(id) && !all {
		return
	}
	children := tree.Children(id)
	for i, child := range children {
		renderNode(w, tree, child, childPrefix, i == len(children)-1, all, markers)
	}
}

func marker(tree *nested.Nested[string], id string, markers bool) string {
	if !markers {
		return ""
	}
	var b strings.Builder
	switch {
	case tree.Selected(id):
		b.WriteString("[x] ")
	case tree.Mixed(id):
		b.WriteString("[~] ")
	default:
		b.WriteString("[ ] ")
	}
	if !tree.IsLeaf(id) {
		if tree.Opened(id) {
			b.WriteString("▾ ")
		} else {
			b.WriteString("▸ ")
		}
	}
	return b.String()
}
