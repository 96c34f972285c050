// Package steering provides the per-step displacement rules a boat follows.
//
// A Policy only decides where the boat tries to go; drift from the current is
// added separately by the trajectory integrator. Policies are pure: anything
// they need beyond the per-step Input is captured when they are constructed.
package steering

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"boatsim/internal/core"
)

// ErrUnknownPolicy indicates a name with no registered factory.
var ErrUnknownPolicy = errors.New("steering: unknown policy")

// Input is the state a policy sees at each step.
type Input struct {
	Position core.Vec
	Goal     core.Vec
	// Current is the sampled current at Position, before drift scaling.
	Current  core.Vec
	StepSize float64
}

// Policy maps the boat's state to its own displacement for one step.
type Policy interface {
	Name() string
	Displace(in Input) core.Vec
}

// Params carries the values a policy may capture at construction.
type Params struct {
	Start core.Vec
	Goal  core.Vec
}

// Factory constructs a Policy for one run.
type Factory func(p Params) Policy

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds a policy factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return f, nil
}

// Names lists the registered policies in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New looks up name and builds the policy for p.
func New(name string, p Params) (Policy, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(p), nil
}
