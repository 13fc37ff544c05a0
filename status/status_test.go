package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	a := m.Get(KeySubsteps)
	b := m.Get(KeySubsteps)
	if a != b {
		t.Fatal("Expected the same pointer for repeated Get")
	}
	a.Add(3)
	if got := b.Load(); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if _, ok := m.Lookup("missing"); ok {
		t.Error("Lookup registered an unknown key")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", m.Count())
	}
}

func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if got := f.Get(); got != 400 {
		t.Errorf("Expected 400, got %v", got)
	}
}

func TestRegistryLinesSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeySubsteps).Store(12)
	r.Ints.Get(KeyFrames).Store(4)
	r.Floats.Get(KeyElapsed).Set(0.2)
	r.Bools.Get(KeyPaused).Store(true)

	want := []string{
		"physics.paused=true",
		"physics.frames=4",
		"physics.substeps=12",
		"physics.elapsed=0.200",
	}
	got := r.Lines()
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if r.TotalCount() != 4 {
		t.Errorf("Expected 4 metrics, got %d", r.TotalCount())
	}
}
