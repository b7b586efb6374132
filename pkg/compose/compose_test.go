package compose

import (
	"testing"
)

// leaf is a terminal composable that counts its own compose runs.
type leaf struct {
	runs *int
}

func (l leaf) Compose(cx *Scope) Composable {
	*l.runs++
	return nil
}

// wrap composes a single child, counting its own runs.
type wrap struct {
	inner Composable
	runs  *int
}

func (w wrap) Compose(cx *Scope) Composable {
	if w.runs != nil {
		*w.runs++
	}
	return w.inner
}

// counter increments its own state once per pass until it reaches limit.
type counter struct {
	limit int
	runs  *int
	value *int
}

func (c counter) Compose(cx *Scope) Composable {
	*c.runs++
	x := UseMut(cx, func() int { return 0 })
	*c.value = x.Value()
	if x.Value() < c.limit {
		x.Update(func(v *int) { *v++ })
	}
	return nil
}

// settle drives passes until nothing is pending.
func settle(t *testing.T, c *Composer) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if err := c.Compose(); err != nil {
			t.Fatalf("unexpected compose error: %v", err)
		}
		if !c.Pending() {
			return
		}
	}
	t.Fatal("composition did not settle within 100 passes")
}

func TestComposeOnce(t *testing.T) {
	runs := 0
	c := New(leaf{runs: &runs})
	defer c.Close()

	if err := c.Compose(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runs != 1 {
		t.Errorf("expected 1 run, got %d", runs)
	}
}

func TestRepeatedPassesSkipUnchangedNodes(t *testing.T) {
	runs := 0
	c := New(leaf{runs: &runs})
	defer c.Close()

	for i := 0; i < 5; i++ {
		if err := c.Compose(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if runs != 1 {
		t.Errorf("expected 1 run after 5 idle passes, got %d", runs)
	}
}

func TestCounterReachesLimit(t *testing.T) {
	runs, value := 0, -1
	c := New(counter{limit: 5, runs: &runs, value: &value})
	defer c.Close()

	settle(t, c)

	if value != 5 {
		t.Errorf("expected value 5, got %d", value)
	}
	// One pass per increment plus the initial pass.
	if runs != 6 {
		t.Errorf("expected 6 runs, got %d", runs)
	}
}

func TestNestedCounterThroughWrappers(t *testing.T) {
	outerRuns, innerRuns := 0, 0
	counterRuns, value := 0, -1
	c := New(wrap{
		runs: &outerRuns,
		inner: wrap{
			runs:  &innerRuns,
			inner: counter{limit: 3, runs: &counterRuns, value: &value},
		},
	})
	defer c.Close()

	settle(t, c)

	if value != 3 {
		t.Errorf("expected value 3, got %d", value)
	}
	// The counter's own updates reach only the counter: its ancestors
	// composed once, on the first pass.
	if outerRuns != 1 {
		t.Errorf("expected outer wrapper to run once, got %d", outerRuns)
	}
	if innerRuns != 1 {
		t.Errorf("expected inner wrapper to run once, got %d", innerRuns)
	}
	if counterRuns != 4 {
		t.Errorf("expected counter to run 4 times, got %d", counterRuns)
	}
}

func TestParentRecomposeReachesChild(t *testing.T) {
	childRuns := 0
	noise := Mut[int]{}
	parent := ComposeFunc(func(cx *Scope) Composable {
		noise = UseMut(cx, func() int { return 0 })
		return leaf{runs: &childRuns}
	})
	c := New(parent)
	defer c.Close()

	settle(t, c)
	if childRuns != 1 {
		t.Fatalf("expected 1 child run, got %d", childRuns)
	}

	noise.Update(func(v *int) { *v++ })
	settle(t, c)
	if childRuns != 2 {
		t.Errorf("expected child to recompose with its parent, got %d runs", childRuns)
	}
}

func TestReborrowPreservesChildState(t *testing.T) {
	values := []int{}
	noise := Mut[int]{}
	parent := ComposeFunc(func(cx *Scope) Composable {
		noise = UseMut(cx, func() int { return 0 })
		return ComposeFunc(func(cx *Scope) Composable {
			x := UseRef(cx, func() int { return len(values) * 100 })
			values = append(values, *x)
			return nil
		})
	})
	c := New(parent)
	defer c.Close()

	settle(t, c)
	noise.Update(func(v *int) { *v++ })
	settle(t, c)

	// The child closure differs every pass but shares a structural id, so
	// its scope and UseRef storage survive the exchange.
	if len(values) != 2 {
		t.Fatalf("expected 2 child runs, got %d", len(values))
	}
	if values[0] != 0 || values[1] != 0 {
		t.Errorf("expected stored ref to survive reborrow, got %v", values)
	}
}

func TestEmptyLeafStaysQuiet(t *testing.T) {
	runs := 0
	c := New(ComposeFunc(func(cx *Scope) Composable {
		runs++
		return nil
	}))
	defer c.Close()

	for i := 0; i < 3; i++ {
		if err := c.Compose(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if runs != 1 {
		t.Errorf("expected a nil-returning leaf to compose once, got %d", runs)
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		c    Composable
		want string
	}{
		{leaf{}, "leaf"},
		{&leaf{}, "leaf"},
		{ComposeFunc(nil), "ComposeFunc"},
		{forEach[int]{}, "forEach"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := typeName(tt.c); got != tt.want {
			t.Errorf("typeName(%T) = %q, want %q", tt.c, got, tt.want)
		}
	}
}
