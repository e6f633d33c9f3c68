package main

import (
	"testing"

	"go.uber.org/zap"

	"president-insights/internal/service"
	"president-insights/internal/twitter"
	"president-insights/internal/watson"
)

func TestNormalizeHandle(t *testing.T) {
	cases := map[string]string{
		"@BernieSanders":   "BernieSanders",
		" @BernieSanders ": "BernieSanders",
		"BernieSanders":    "BernieSanders",
	}
	for in, want := range cases {
		if got := normalizeHandle(in); got != want {
			t.Fatalf("normalizeHandle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNameFlagHandleResolvesWithAt(t *testing.T) {
	handles := map[string]string{normalizeHandle("@foo"): "Foo"}
	svc := service.NewAnalysisService(&twitter.MockFetcher{}, &watson.MockAnalyzer{}, nil, nil, handles, service.AnalysisOptions{}, zap.NewNop())

	p, err := svc.Resolve("@foo")
	if err != nil {
		t.Fatalf("expected handle to resolve, got %v", err)
	}
	if p.Handle != "foo" || p.Name != "Foo" {
		t.Fatalf("unexpected politician: %+v", p)
	}
}
