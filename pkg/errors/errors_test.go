package errors

import (
	"errors"
	"testing"
	"time"
)

func TestLoomErrorString(t *testing.T) {
	err := &LoomError{
		Op:   "test.operation",
		Kind: KindConfig,
		Err:  errors.New("invalid value"),
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
}

func TestLoomErrorWithComposable(t *testing.T) {
	err := &LoomError{
		Op:         "compose.throw",
		Kind:       KindCompose,
		Composable: "Counter",
		Err:        errors.New("boom"),
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
	// Should contain the composable name
	want := "composable=Counter"
	if !contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInit, "init"},
		{KindConfig, "config"},
		{KindCompose, "compose"},
		{KindContext, "context"},
		{KindTask, "task"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorStringWithOp(t *testing.T) {
	err := &PanicError{
		Op:        "compose.task",
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic in compose.task: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var capturedErr *LoomError
	handler := &testHandler{
		onError: func(err *LoomError) {
			capturedErr = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&LoomError{
		Op:   "test.op",
		Kind: KindInit,
		Err:  errors.New("init failed"),
	})

	if capturedErr == nil {
		t.Error("expected error to be captured")
	}
	if capturedErr.Op != "test.op" {
		t.Errorf("Op = %q, want %q", capturedErr.Op, "test.op")
	}
	if capturedErr.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportPanic(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	ReportPanic(&PanicError{
		Value:     "test panic value",
		Timestamp: time.Now(),
	})

	if capturedPanic == nil {
		t.Error("expected panic to be captured")
	}
	if capturedPanic.Value != "test panic value" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "test panic value")
	}
}

func TestRecover(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if capturedPanic == nil {
		t.Error("expected panic to be recovered and captured")
	}
	if capturedPanic.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "intentional test panic")
	}
	if capturedPanic.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", capturedPanic.Op, "test.recover")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	// Stack should contain some runtime info (either test function or testing infrastructure)
	if !contains(stack, "testing") && !contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	if DefaultHandler == nil {
		t.Error("SetHandler(nil) should set default LogHandler, not nil")
	}
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestComposeErrorString(t *testing.T) {
	// Test with panic value
	err := &ComposeError{
		Composable: "Counter",
		Recovered:  "nil pointer dereference",
		Timestamp:  time.Now(),
	}
	got := err.Error()
	want := "panic in Counter.Compose(): nil pointer dereference"
	if got != want {
		t.Errorf("ComposeError.Error() = %q, want %q", got, want)
	}

	// Test with error
	err2 := &ComposeError{
		Composable: "Counter",
		Err:        errors.New("bad state"),
		Timestamp:  time.Now(),
	}
	got2 := err2.Error()
	if !contains(got2, "error in Counter.Compose()") {
		t.Errorf("ComposeError.Error() = %q, should contain 'error in'", got2)
	}

	// Test unknown error
	err3 := &ComposeError{
		Composable: "Counter",
	}
	got3 := err3.Error()
	want3 := "unknown error in Counter.Compose()"
	if got3 != want3 {
		t.Errorf("ComposeError.Error() = %q, want %q", got3, want3)
	}
}

func TestReportComposeError(t *testing.T) {
	var capturedErr *ComposeError
	handler := &testHandler{
		onComposeError: func(err *ComposeError) {
			capturedErr = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	ReportComposeError(&ComposeError{
		Composable: "Header",
		Recovered:  "test panic",
	})

	if capturedErr == nil {
		t.Error("expected compose error to be captured")
	}
	if capturedErr.Composable != "Header" {
		t.Errorf("Composable = %q, want %q", capturedErr.Composable, "Header")
	}
	if capturedErr.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestLoomErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &LoomError{Op: "test.op", Kind: KindTask, Err: inner}
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}

type testHandler struct {
	onError        func(*LoomError)
	onPanic        func(*PanicError)
	onComposeError func(*ComposeError)
}

func (h *testHandler) HandleError(err *LoomError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func (h *testHandler) HandleComposeError(err *ComposeError) {
	if h.onComposeError != nil {
		h.onComposeError(err)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > 0 && containsAt(s, substr, 0))
}

func containsAt(s, substr string, start int) bool {
	for i := start; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
