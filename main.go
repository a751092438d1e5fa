package main

import (
	"github.com/kestrelfw/testfw/cmd"
	"github.com/kestrelfw/testfw/internal/harness"
)

func main() {
	// Must run before any flag parsing: if this process was re-exec'd as a
	// forks/forkp worker, it never reaches the CLI at all (worker.go).
	harness.RunWorkerIfRequested(harness.Default)

	cmd.Execute()
}
