package harness

import (
	"fmt"
	"os"
)

// loadDefinedFunctionSymbols is implemented per-platform (symtab_linux.go,
// symtab_darwin.go, symtab_other.go) since the object-file format of the
// host executable varies. It returns every raw, defined function symbol
// name found in path's object file (e.g. "main.test_success" or, on
// Darwin, "_main.test_success").
type symbolLoader func(path string) ([]string, error)

// executableResolver is the SymbolResolver backing the real CLI: it opens
// the currently running executable once, parses its object file for
// defined function symbols, and answers Defined/Enumerate queries
// against that snapshot rather than shelling out to nm(1) on every call.
type executableResolver struct {
	symbols []string // raw defined function symbol names, as found in the object file
}

// NewExecutableResolver opens the running binary's own object file and
// builds a SymbolResolver over its defined function symbols.
func NewExecutableResolver() (SymbolResolver, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("testfw: locate host executable: %w", err)
	}

	symbols, err := loadDefinedFunctionSymbols(path)
	if err != nil {
		return nil, fmt.Errorf("testfw: parse host executable %s: %w", path, err)
	}

	return &executableResolver{symbols: symbols}, nil
}

func (r *executableResolver) Defined(suite, name string) error {
	prefix := suite + "_"
	want := prefix + name
	for _, raw := range r.symbols {
		if member, ok := suiteMemberName(raw, prefix); ok && member == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSymbolNotFound, want)
}

func (r *executableResolver) Enumerate(suite string) ([]string, error) {
	prefix := suite + "_"
	var names []string
	for _, raw := range r.symbols {
		if member, ok := suiteMemberName(raw, prefix); ok && member != "" {
			names = append(names, member)
		}
	}
	return sortedUnique(names), nil
}
