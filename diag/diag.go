// Package diag reports process-level memory and goroutine diagnostics,
// the Go-runtime equivalent of a malloc/free tracker: there's no manual
// allocation to audit, so "leaks" here means goroutines and heap objects
// the garbage collector hasn't reclaimed.
package diag

import (
	"math"
	"runtime"

	"github.com/luxfi/parity/utils/safemath"
)

// MemReport summarizes the current heap, mirroring a memory tracker's
// allocation report.
type MemReport struct {
	HeapAllocBytes uint64
	HeapObjects    uint64
	NumGC          uint32
	Goroutines     int
}

// CheckMem captures a MemReport from the current runtime state.
func CheckMem() MemReport {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemReport{
		HeapAllocBytes: m.HeapAlloc,
		HeapObjects:    m.HeapObjects,
		NumGC:          m.NumGC,
		Goroutines:     runtime.NumGoroutine(),
	}
}

// LeakReport flags goroutine growth beyond a baseline count — the
// closest Go analogue to the source's leaked-allocation count, since
// a stuck goroutine is this runtime's equivalent of an unfreed block.
type LeakReport struct {
	Baseline   int
	Current    int
	Suspicious int
}

// DetectLeaks compares the current goroutine count against baseline and
// reports the excess as Suspicious.
func DetectLeaks(baseline int) LeakReport {
	current := runtime.NumGoroutine()
	suspicious := safemath.ClampInt(current-baseline, 0, math.MaxInt)
	return LeakReport{Baseline: baseline, Current: current, Suspicious: suspicious}
}
