package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-loom/loom/cmd/loom/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "tree",
		Short: "Print a running app's composition tree",
		Long: `Fetch the composition tree from a running Loom app's debug server
and print it.

The debug server port is read from loom.yaml (debug.port) when run
inside a project, and defaults to 7466 otherwise.

Examples:
  loom tree
  loom tree --port 9000
  loom tree --yaml`,
		Usage: "loom tree [--port N] [--yaml]",
		Run:   runTree,
	})
}

func runTree(args []string) error {
	port := 0
	asYAML := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--yaml":
			asYAML = true
		case arg == "--port":
			if i+1 >= len(args) {
				return fmt.Errorf("--port requires a number")
			}
			p, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid port %q", args[i+1])
			}
			port = p
			i++
		case strings.HasPrefix(arg, "--port="):
			p, err := strconv.Atoi(strings.TrimPrefix(arg, "--port="))
			if err != nil {
				return fmt.Errorf("invalid port %q", arg)
			}
			port = p
		default:
			return fmt.Errorf("unknown flag %q", arg)
		}
	}

	if port == 0 {
		port = resolvePort()
	}

	url := fmt.Sprintf("http://localhost:%d/compose/tree", port)
	if asYAML {
		url += "?format=yaml"
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("could not reach debug server on port %d: %w", port, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("debug server returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if _, err := io.Copy(os.Stdout, resp.Body); err != nil {
		return fmt.Errorf("failed to read tree: %w", err)
	}
	return nil
}

// resolvePort reads the configured debug port when run inside a project,
// falling back to the default otherwise.
func resolvePort() int {
	root, err := config.FindProjectRoot()
	if err != nil {
		return config.DefaultDebugPort
	}
	resolved, err := config.Resolve(root)
	if err != nil {
		return config.DefaultDebugPort
	}
	return resolved.DebugPort
}
