package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("frame %d", 7)
	if got != "frame 7" {
		t.Errorf("captured %q, want %q", got, "frame 7")
	}
}

func TestSetLogger_NilIsNoOp(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	SetLogger(nil)
	// Must not panic.
	Logf("dropped %s", "line")

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("visible again")
	if !called {
		t.Error("replacement logger after nil was not called")
	}
}
