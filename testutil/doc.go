// Package testutil provides helpers for tests and benchmarks only.
//
// It generates deterministic array fixtures across element kinds and
// shapes, so codec round-trip tests do not hand-roll byte slices:
//
//	buf := testutil.FillSequential(t, dtype.MustNew(dtype.Float64, 2, 3))
//	buf := testutil.FillRandom(t, info, seed)
package testutil
