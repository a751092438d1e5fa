//go:build linux

package harness

import (
	"debug/elf"
)

// loadDefinedFunctionSymbols parses the ELF symbol table of the executable
// at path and returns the name of every defined (non-external, non-zero
// section index) function symbol, without shelling out to nm(1).
func loadDefinedFunctionSymbols(path string) ([]string, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	syms, err := f.Symbols()
	if err != nil {
		// A binary with a fully stripped symbol table (-ldflags="-s -w")
		// has no .symtab section at all; treat that as "no symbols
		// defined" rather than a hard error.
		if err == elf.ErrNoSymbols {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, sym := range syms {
		if elf.ST_TYPE(sym.Info) != elf.STT_FUNC {
			continue
		}
		if sym.Section == elf.SHN_UNDEF {
			// Undefined (referenced, not defined) symbol; a test isn't
			// actually registered in this binary unless it's defined here.
			continue
		}
		names = append(names, sym.Name)
	}
	return names, nil
}
