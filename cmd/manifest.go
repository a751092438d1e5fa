package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// manifest is optional sugar over -r/-R: a project can commit its
// test-suite layout instead of relying purely on CLI flags.
type manifest struct {
	Mode    string   `toml:"mode"`
	Timeout int      `toml:"timeout_s"`
	Suites  []string `toml:"suites"`
	Tests   []string `toml:"tests"`
}

func loadManifest(path string) (manifest, error) {
	var m manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return manifest{}, fmt.Errorf("decode suite manifest %s: %w", path, err)
	}
	return m, nil
}
