// Package inspect captures point-in-time snapshots of a composition tree
// for debugging, either encoded directly or served over HTTP.
package inspect

import (
	"encoding/json"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-loom/loom/pkg/compose"
)

// Snapshot is a serializable description of a composition tree at one
// moment.
type Snapshot struct {
	TakenAt time.Time         `json:"takenAt" yaml:"takenAt"`
	Nodes   int               `json:"nodes" yaml:"nodes"`
	Root    *compose.TreeNode `json:"root" yaml:"root"`
}

// Capture snapshots c's tree. The tree is walked under the composer's
// write guard, so the snapshot never observes a half-finished pass.
func Capture(c *compose.Composer) Snapshot {
	root := c.Tree()
	return Snapshot{
		TakenAt: time.Now(),
		Nodes:   countNodes(root),
		Root:    root,
	}
}

func countNodes(n *compose.TreeNode) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, child := range n.Children {
		total += countNodes(child)
	}
	return total
}

// EncodeJSON writes the snapshot to w as indented JSON.
func (s Snapshot) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// EncodeYAML writes the snapshot to w as YAML.
func (s Snapshot) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(s)
}
