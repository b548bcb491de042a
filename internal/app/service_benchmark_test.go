package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/stepfilter"
)

func benchmarkService() *Service {
	return NewService(&fakeCatalog{}, Options{
		Filters: &spyFilterCache{},
		NewID:   func() string { return "bench" },
	})
}

func BenchmarkServiceExecute(b *testing.B) {
	svc := benchmarkService()
	input := json.RawMessage(`64`)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := svc.Execute(context.Background(), "counter", input, ExecuteOptions{}); err != nil {
			b.Fatalf("execute failed: %v", err)
		}
	}
}

func BenchmarkServiceExecuteFiltered(b *testing.B) {
	svc := benchmarkService()
	input := json.RawMessage(`64`)
	opts := ExecuteOptions{Filter: `operation == "tick" && metadata.i > 32`}

	if _, err := svc.Execute(context.Background(), "counter", input, opts); err != nil {
		b.Fatalf("warmup execute failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := svc.Execute(context.Background(), "counter", input, opts); err != nil {
			b.Fatalf("execute failed: %v", err)
		}
	}
}

func BenchmarkFilterMatch(b *testing.B) {
	svc := benchmarkService()
	ex, err := svc.Execute(context.Background(), "counter", json.RawMessage(`8`), ExecuteOptions{})
	if err != nil {
		b.Fatalf("execute failed: %v", err)
	}
	f, err := stepfilter.Compile(`metadata.i >= 4`)
	if err != nil {
		b.Fatalf("compile failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, st := range ex.Steps {
			f.Match(st)
		}
	}
}
