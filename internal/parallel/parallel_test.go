package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForSequential(t *testing.T) {
	var sum int64
	For(100, func(i int) { sum += int64(i) }, Config{})
	if sum != 4950 {
		t.Errorf("sum = %d, want 4950", sum)
	}
}

func TestForParallel(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinPerItem: 1}

	var sum int64
	var calls int64
	For(1000, func(i int) {
		atomic.AddInt64(&sum, int64(i))
		atomic.AddInt64(&calls, 1)
	}, cfg)

	if calls != 1000 {
		t.Errorf("calls = %d, want 1000", calls)
	}
	if sum != 499500 {
		t.Errorf("sum = %d, want 499500", sum)
	}
}

func TestForSmallNStaysSequential(t *testing.T) {
	cfg := DefaultConfig()

	// One item never fans out, so unsynchronized access is safe.
	ran := false
	For(1, func(i int) { ran = true }, cfg)
	if !ran {
		t.Error("item not executed")
	}
}
