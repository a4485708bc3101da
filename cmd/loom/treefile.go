package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/loom-ui/loom/pkg/nested"
)

// nodeDef is one node in a tree definition file.
type nodeDef struct {
	ID       string    `yaml:"id"`
	Value    string    `yaml:"value"`
	Disabled bool      `yaml:"disabled"`
	Children []nodeDef `yaml:"children"`
}

// treeFile is the YAML shape of a tree definition file:
//
//	selection: cascade
//	open: multiple
//	selected: [docs]
//	opened: [root]
//	nodes:
//	  - id: root
//	    value: Root
//	    children:
//	      - id: docs
//	        value: Documents
type treeFile struct {
	Selection string    `yaml:"selection"`
	Open      string    `yaml:"open"`
	OpenAll   bool      `yaml:"openAll"`
	Selected  []string  `yaml:"selected"`
	Opened    []string  `yaml:"opened"`
	Active    []string  `yaml:"active"`
	Nodes     []nodeDef `yaml:"nodes"`
}

// loadTreeFile parses a tree definition file.
func loadTreeFile(path string) (*treeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var tf treeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(tf.Nodes) == 0 {
		return nil, fmt.Errorf("%s: no nodes defined", path)
	}
	return &tf, nil
}

// buildTree onboards the file's nodes into a fresh tree and applies the
// initial selection, open, and active sets.
func buildTree(tf *treeFile) (*nested.Nested[string], error) {
	var opts []nested.Option

	switch tf.Selection {
	case "", "cascade":
		opts = append(opts, nested.WithSelection(nested.SelectCascade))
	case "independent":
		opts = append(opts, nested.WithSelection(nested.SelectIndependent))
	case "leaf":
		opts = append(opts, nested.WithSelection(nested.SelectLeaf))
	default:
		return nil, fmt.Errorf("unknown selection mode %q (want cascade, independent, or leaf)", tf.Selection)
	}

	switch tf.Open {
	case "", "multiple":
		opts = append(opts, nested.WithOpenMode(nested.OpenMultiple))
	case "single":
		opts = append(opts, nested.WithOpenMode(nested.OpenSingle))
	default:
		return nil, fmt.Errorf("unknown open mode %q (want multiple or single)", tf.Open)
	}

	if tf.OpenAll {
		opts = append(opts, nested.WithOpenAll())
	}

	n := nested.New[string](opts...)
	n.Onboard(toRegistrations(tf.Nodes))

	n.Select(tf.Selected...)
	n.Open(tf.Opened...)
	n.Activate(tf.Active...)
	return n, nil
}

func toRegistrations(defs []nodeDef) []nested.Registration[string] {
	regs := make([]nested.Registration[string], 0, len(defs))
	for _, d := range defs {
		value := d.Value
		if value == "" {
			value = d.ID
		}
		regs = append(regs, nested.Registration[string]{
			ID:       d.ID,
			Value:    value,
			Disabled: d.Disabled,
			Children: toRegistrations(d.Children),
		})
	}
	return regs
}
