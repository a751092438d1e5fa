package sampletests

import "github.com/kestrelfw/testfw/internal/harness"

func init() {
	harness.Default.Register("othertest", "success", othertestSuccess)
	harness.Default.Register("othertest", "failure", othertestFailure)
}

func othertestSuccess(_ int, _ []string) int { return 0 }

func othertestFailure(_ int, _ []string) int { return 1 }
