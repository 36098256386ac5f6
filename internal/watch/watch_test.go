package watch

import (
	"sync"
	"testing"
	"time"
)

// collect returns a Handler appending paths under a mutex, plus a reader.
func collect() (Handler, func() []string) {
	var mu sync.Mutex
	var got []string
	handle := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, path)
	}
	read := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), got...)
	}
	return handle, read
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	handle, read := collect()
	d := newDebouncer(20*time.Millisecond, handle)
	defer d.stop()

	// A burst of events for the same file must fire the handler once.
	d.touch("a.smi")
	d.touch("a.smi")
	d.touch("a.smi")

	time.Sleep(100 * time.Millisecond)
	if got := read(); len(got) != 1 || got[0] != "a.smi" {
		t.Fatalf("handled = %v, want [a.smi]", got)
	}
}

func TestDebouncer_SeparateFiles(t *testing.T) {
	handle, read := collect()
	d := newDebouncer(20*time.Millisecond, handle)
	defer d.stop()

	d.touch("a.smi")
	d.touch("b.smi")

	time.Sleep(100 * time.Millisecond)
	if got := read(); len(got) != 2 {
		t.Fatalf("handled = %v, want both files", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	handle, read := collect()
	d := newDebouncer(50*time.Millisecond, handle)

	d.touch("a.smi")
	d.stop()

	time.Sleep(100 * time.Millisecond)
	if got := read(); len(got) != 0 {
		t.Fatalf("handled = %v, want none after stop", got)
	}
}
