package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nightlyone/lockfile"
)

// openLogSink opens path for appending and guards the append with a
// lockfile, so concurrent writers sharing the -o log sink never
// interleave partial writes. The returned closer releases both the
// file and the lock.
func openLogSink(path string) (*os.File, func(), error) {
	lockName := filepath.Join(os.TempDir(), filepath.Base(path)+".lock")
	lock, err := lockfile.New(lockName)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot init lock for %s: %w", path, err)
	}
	if err := lock.TryLock(); err != nil {
		return nil, nil, fmt.Errorf("cannot lock %s: %w", lockName, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		lock.Unlock()
		return nil, nil, fmt.Errorf("cannot open log sink %s: %w", path, err)
	}

	return f, func() {
		f.Close()
		lock.Unlock()
	}, nil
}
