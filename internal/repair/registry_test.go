package repair

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danmuck/reportctl/internal/report"
	"github.com/danmuck/reportctl/internal/testutil/testlog"
)

func TestDefaultRegistryResolvesBuiltins(t *testing.T) {
	testlog.Start(t)
	r := DefaultRegistry()
	want := []string{NameExhaustive, NameHeuristic}
	if !reflect.DeepEqual(r.Names(), want) {
		t.Fatalf("names mismatch: got=%v want=%v", r.Names(), want)
	}
	s, err := r.Resolve(" exhaustive ")
	if err != nil {
		t.Fatalf("resolve exhaustive: %v", err)
	}
	if !s(report.Report{0, 10, 9}) {
		t.Fatalf("expected exhaustive strategy to be resolved")
	}
}

func TestRegistryRejectsBadRegistrations(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	if err := r.Register("exhaustive", nil); !errors.Is(err, ErrStrategyNil) {
		t.Fatalf("expected ErrStrategyNil, got %v", err)
	}
	for _, name := range []string{"", "Exhaustive", "-lead", "trail_", "a--b", "has space"} {
		if err := r.Register(name, Exhaustive); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName for %q, got %v", name, err)
		}
	}
	if err := r.Register("brute-force", Exhaustive); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register("brute-force", Heuristic); !errors.Is(err, ErrStrategyExists) {
		t.Fatalf("expected ErrStrategyExists, got %v", err)
	}
}

func TestRegistryResolveUnknown(t *testing.T) {
	testlog.Start(t)
	if _, err := DefaultRegistry().Resolve("greedy"); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}
