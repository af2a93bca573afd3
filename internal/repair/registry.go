package repair

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	NameExhaustive = "exhaustive"
	NameHeuristic  = "heuristic"
)

var (
	ErrStrategyExists  = errors.New("repair: strategy already registered")
	ErrStrategyNil     = errors.New("repair: strategy is nil")
	ErrInvalidName     = errors.New("repair: invalid strategy name")
	ErrUnknownStrategy = errors.New("repair: unknown strategy")
)

// Registry stores strategies by stable name.
type Registry struct {
	items map[string]Strategy
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Strategy)}
}

// DefaultRegistry returns a registry holding the built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(NameExhaustive, Exhaustive)
	_ = r.Register(NameHeuristic, Heuristic)
	return r
}

// Register adds a strategy under name.
func (r *Registry) Register(name string, s Strategy) error {
	if s == nil {
		return ErrStrategyNil
	}
	if !isValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, ok := r.items[name]; ok {
		return fmt.Errorf("%w: %q", ErrStrategyExists, name)
	}
	r.items[name] = s
	return nil
}

// Resolve returns the strategy registered under name.
func (r *Registry) Resolve(name string) (Strategy, error) {
	s, ok := r.items[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownStrategy, name, strings.Join(r.Names(), ", "))
	}
	return s, nil
}

// Names returns registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isValidName(name string) bool {
	if name == "" {
		return false
	}
	lastSep := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		isSep := c == '-' || c == '_'
		if !(isLower || isDigit || isSep) {
			return false
		}
		if (i == 0 || i == len(name)-1) && isSep {
			return false
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}
