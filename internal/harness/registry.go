package harness

import "fmt"

// Descriptor is an immutable-after-registration test descriptor: a
// namespace ("suite"), a printable identifier ("name"), and the callable
// entry point.
type Descriptor struct {
	Suite string
	Name  string
	Entry Entry
}

// ID returns the printable "suite.name" test id.
func (d Descriptor) ID() string {
	return d.Suite + "." + d.Name
}

// Registry is an append-only ordered store of Descriptors. Insertion
// order is preserved and becomes execution order. No uniqueness
// constraint is imposed; duplicates are permitted and run twice.
type Registry struct {
	resolver  SymbolResolver
	registrar *Registrar
	tests     []Descriptor
}

// NewRegistry builds a Registry backed by the given Symbol Resolver and
// Registrar (the process-wide callable table).
func NewRegistry(resolver SymbolResolver, registrar *Registrar) *Registry {
	return &Registry{resolver: resolver, registrar: registrar}
}

// Length returns the number of registered tests.
func (r *Registry) Length() int { return len(r.tests) }

// At returns the k'th registered descriptor, 0-indexed in registration
// order.
func (r *Registry) At(k int) Descriptor {
	if k < 0 || k >= len(r.tests) {
		panic(fmt.Sprintf("testfw: registry index %d out of range [0,%d)", k, len(r.tests)))
	}
	return r.tests[k]
}

// All returns every registered descriptor, in registration order. The
// returned slice must not be mutated by the caller.
func (r *Registry) All() []Descriptor {
	return r.tests
}

// RegisterFunc appends a descriptor directly, for in-process registration
// that bypasses symbol discovery entirely. Used by tests and by embedders
// that want to register a closure without a backing "<suite>_<name>"
// symbol at all.
func (r *Registry) RegisterFunc(suite, name string, fn Entry) *Descriptor {
	d := Descriptor{Suite: suite, Name: name, Entry: fn}
	r.tests = append(r.tests, d)
	return &r.tests[len(r.tests)-1]
}

// RegisterByName resolves "<suite>_<name>" via the Symbol Resolver,
// confirms a callable exists in the Registrar, and appends it. Failing to
// resolve is fatal to the registration: no partial suite is ever
// constructed.
func (r *Registry) RegisterByName(suite, name string) (*Descriptor, error) {
	if err := r.resolver.Defined(suite, name); err != nil {
		return nil, fmt.Errorf("register %s.%s: %w", suite, name, err)
	}

	fn, ok := r.registrar.Lookup(suite, name)
	if !ok {
		return nil, fmt.Errorf("register %s.%s: %w", suite, name, ErrNotRegistered)
	}

	return r.RegisterFunc(suite, name, fn), nil
}

// RegisterSuite enumerates every defined "<suite>_*" symbol via the
// Symbol Resolver, registers each one, and returns the number appended.
// An empty suite after enumeration is a user-visible error. If any member
// fails to register, none of the suite's members are kept.
func (r *Registry) RegisterSuite(suite string) (int, error) {
	names, err := r.resolver.Enumerate(suite)
	if err != nil {
		return 0, fmt.Errorf("register suite %q: %w", suite, err)
	}
	if len(names) == 0 {
		return 0, fmt.Errorf("register suite %q: %w", suite, ErrEmptySuite)
	}

	start := len(r.tests)
	count := 0
	for _, name := range names {
		if _, err := r.RegisterByName(suite, name); err != nil {
			r.tests = r.tests[:start]
			return 0, err
		}
		count++
	}
	return count, nil
}
