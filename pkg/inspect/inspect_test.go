package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-loom/loom/pkg/compose"
)

// header is a small fixture tree: a wrapper over two leaves.
type header struct{}

func (header) Compose(cx *compose.Scope) compose.Composable {
	return compose.Group{body{}, body{}}
}

type body struct{}

func (body) Compose(cx *compose.Scope) compose.Composable {
	compose.UseRef(cx, func() int { return 0 })
	return nil
}

func buildComposer(t *testing.T) *compose.Composer {
	t.Helper()
	c := compose.New(header{})
	t.Cleanup(c.Close)
	if err := c.Compose(); err != nil {
		t.Fatalf("unexpected compose error: %v", err)
	}
	return c
}

func TestCaptureCountsNodes(t *testing.T) {
	c := buildComposer(t)

	snap := Capture(c)
	if snap.Root == nil {
		t.Fatal("expected a root node")
	}
	// header, the group, and two body leaves.
	if snap.Nodes != 4 {
		t.Errorf("expected 4 nodes, got %d", snap.Nodes)
	}
	if snap.TakenAt.IsZero() {
		t.Error("expected a capture timestamp")
	}
	if snap.Root.Type != "header" {
		t.Errorf("expected root type header, got %q", snap.Root.Type)
	}
}

func TestEncodeJSON(t *testing.T) {
	c := buildComposer(t)

	var buf bytes.Buffer
	if err := Capture(c).EncodeJSON(&buf); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"root"`, `"type": "header"`, `"type": "body"`, `"hooks"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected JSON output to contain %s, got:\n%s", want, out)
		}
	}
}

func TestEncodeYAML(t *testing.T) {
	c := buildComposer(t)

	var buf bytes.Buffer
	if err := Capture(c).EncodeYAML(&buf); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"root:", "type: header", "type: body", "nodes: 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected YAML output to contain %q, got:\n%s", want, out)
		}
	}
}
