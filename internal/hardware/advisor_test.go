package hardware

import (
	"runtime"
	"testing"
)

func TestAdvise(t *testing.T) {
	a := Advise()
	if a.MaxThreads < 1 {
		t.Fatalf("MaxThreads = %d, want >= 1", a.MaxThreads)
	}
	if a.MaxThreads > runtime.NumCPU() {
		t.Fatalf("MaxThreads = %d exceeds NumCPU %d", a.MaxThreads, runtime.NumCPU())
	}
	if a.MaxMemoryFraction <= 0 || a.MaxMemoryFraction > 1 {
		t.Fatalf("MaxMemoryFraction = %v, want in (0, 1]", a.MaxMemoryFraction)
	}
	if a.Suggestion == "" {
		t.Fatal("Suggestion is empty")
	}
}
