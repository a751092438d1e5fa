//go:build darwin

package harness

import (
	"debug/macho"
)

// loadDefinedFunctionSymbols parses the Mach-O symbol table of the
// executable at path. Darwin symbol names carry an extra leading
// underscore; suiteMemberName strips it transparently, so the names
// returned here are left exactly as Mach-O stores them.
func loadDefinedFunctionSymbols(path string) ([]string, error) {
	f, err := macho.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if f.Symtab == nil {
		return nil, nil
	}

	var names []string
	for _, sym := range f.Symtab.Syms {
		// N_SECT (defined in some section) as opposed to N_UNDF
		// (undefined/referenced); see mach-o/nlist.h's n_type bitfield.
		const nTypeMask = 0x0e
		const nSect = 0x0e
		if sym.Type&nTypeMask != nSect {
			continue
		}
		names = append(names, sym.Name)
	}
	return names, nil
}
