// Package testing provides a deterministic test harness for composition
// trees.
//
// # Quick Start
//
// Create a tester, pump a pass, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := loomtest.NewTesterWithT(t, Counter{})
//	    tester.Pump()
//
//	    // Apply state changes, then pump again
//	    tester.Pump()
//
//	    // Or run passes until nothing is pending
//	    if err := tester.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare composition tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	LOOM_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Time
//
// Control time for deterministic tests:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import loomtest "github.com/go-loom/loom/pkg/testing"
package testing
