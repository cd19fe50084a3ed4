package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrapForwardsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := Wrap(zap.New(core)).With(String("component", "store"))

	log.Warn("template load failed", String("key", "instagram:post"), Int("status", 404))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["component"] != "store" || ctx["key"] != "instagram:post" {
		t.Fatalf("unexpected fields: %+v", ctx)
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %s", entries[0].Level)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARNING": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNopIsSilent(t *testing.T) {
	log := NewNop()
	log.Info("ignored")
	if log.With(String("k", "v")) == nil {
		t.Fatalf("expected nop child logger")
	}
	if err := log.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
}
