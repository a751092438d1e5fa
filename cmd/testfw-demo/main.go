// Command testfw-demo is a runnable host executable exercising the sample
// suite: it links internal/sampletests for its side effect of registering
// test.* and othertest.* entries, then runs the ordinary testfw CLI
// against them.
package main

import (
	"github.com/kestrelfw/testfw/cmd"
	"github.com/kestrelfw/testfw/internal/harness"
	_ "github.com/kestrelfw/testfw/internal/sampletests"
)

func main() {
	harness.RunWorkerIfRequested(harness.Default)

	cmd.Execute()
}
