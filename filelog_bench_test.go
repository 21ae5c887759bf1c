// filelog_bench_test.go: Benchmarks for the producer path and rendering
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"testing"
)

func newBenchSink(b *testing.B, cfg Config) *Sink {
	b.Helper()
	cfg.Name = "bench"
	cfg.Folder = b.TempDir()
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = 1 << 30 // Large enough to avoid rotation during bench
	}
	s, err := New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = s.Close() })
	return s
}

// BenchmarkLogger_Info measures the producer side under parallel load
func BenchmarkLogger_Info(b *testing.B) {
	s := newBenchSink(b, Config{})
	l := s.Logger("bench")

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Info("Benchmark test message for the dispatch queue")
		}
	})
}

// BenchmarkLogger_Disabled measures the level short-circuit
func BenchmarkLogger_Disabled(b *testing.B) {
	s := newBenchSink(b, Config{MinLevel: LevelError})
	l := s.Logger("bench")
	format := func(state any, err error) string { return "never" }

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.LogState(LevelDebug, 0, i, nil, format)
	}
}

// BenchmarkLogger_Rotating writes through frequent rotations
func BenchmarkLogger_Rotating(b *testing.B) {
	s := newBenchSink(b, Config{MaxBytes: 64 * 1024, MaxCount: 4})
	l := s.Logger("bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info("Benchmark test message for rotation")
	}
}

// BenchmarkRenderSingleLine measures continuation padding
func BenchmarkRenderSingleLine(b *testing.B) {
	header := formatHeader(fixedStamp, LevelInformation, "bench")
	body := "first line\nsecond line\nthird line"

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = renderSingleLine(header, body, true)
	}
}
