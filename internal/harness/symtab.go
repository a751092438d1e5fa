package harness

import (
	"sort"
	"strings"
)

// SymbolResolver resolves a fully-qualified test name to a defined symbol
// in the host executable's own object file, and enumerates every defined
// symbol matching a suite prefix.
//
// This abstracts away the object-file format: on Linux the implementation
// parses the ELF symbol table directly (symtab_linux.go); on
// Darwin it parses Mach-O (symtab_darwin.go); on other platforms it falls
// back to a stub that reports ErrUnsupportedPlatform (symtab_other.go).
// Darwin-built binaries prefix exported symbols with an extra leading
// underscore; suiteMemberName strips that transparently so suite/name
// matching behaves identically across platforms.
type SymbolResolver interface {
	// Defined reports whether "<suite>_<name>" is a defined (not merely
	// referenced) symbol in the host image. It returns ErrSymbolNotFound
	// if absent.
	Defined(suite, name string) error

	// Enumerate returns every name n such that "<suite>_n" is a defined
	// symbol in the host image, stripped of the suite prefix. Order is
	// unspecified by the contract; this package returns the names sorted
	// alphabetically with duplicates removed.
	Enumerate(suite string) ([]string, error)
}

// suiteMemberName extracts "name" from a raw linker symbol such as
// "main.test_success" or "github.com/kestrelfw/testfw/internal/sampletests.test_success",
// given the "test_" prefix, handling the Darwin convention of an extra
// leading underscore transparently.
func suiteMemberName(rawSymbol, prefix string) (string, bool) {
	local := rawSymbol
	if idx := strings.LastIndexByte(local, '.'); idx >= 0 {
		local = local[idx+1:]
	}
	local = strings.TrimPrefix(local, "_")

	if !strings.HasPrefix(local, prefix) {
		return "", false
	}
	return strings.TrimPrefix(local, prefix), true
}

func sortedUnique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
