// Package export writes harness.Outcome records to two result formats:
// newline-delimited JSON (one encoder, one record per line) and a
// JUnit-shaped XML report per test, with control characters scrubbed
// from CDATA sections.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/kestrelfw/testfw/internal/harness"
)

// controlChars matches everything XMLLog's original regex rejects from
// CDATA sections: anything outside tab/CR/LF and printable ASCII.
var controlChars = regexp.MustCompile("[^\t\n\r\x20-\x7e]")

type record struct {
	RunID     string `json:"run_id"`
	ID        string `json:"id"`
	Verdict   string `json:"verdict"`
	Detail    string `json:"detail"`
	Code      int    `json:"code,omitempty"`
	Signal    string `json:"signal,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

func toRecord(runID string, o harness.Outcome) record {
	r := record{
		RunID:     runID,
		ID:        o.Descriptor.ID(),
		Verdict:   string(o.Classification.Verdict),
		Detail:    o.Classification.Detail,
		Code:      o.Classification.Code,
		ElapsedMS: o.Termination.ElapsedMS,
	}
	if o.Termination.Signaled {
		r.Signal = o.Termination.Signal.String()
	}
	return r
}

// WriteJSON appends one JSON record per outcome to w, matching
// saveResultsJSON's "one encoder, repeated Encode calls" shape.
func WriteJSON(w io.Writer, runID string, outcomes []harness.Outcome) error {
	enc := json.NewEncoder(w)
	for _, o := range outcomes {
		if err := enc.Encode(toRecord(runID, o)); err != nil {
			return fmt.Errorf("encode result for %s: %w", o.Descriptor.ID(), err)
		}
	}
	return nil
}

// WriteJUnit writes one "<suite>.<name>.xml" file per outcome into dir, in the
// same fixed single-testcase-per-file layout XMLLog produces.
func WriteJUnit(dir string, outcomes []harness.Outcome) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create junit dir %s: %w", dir, err)
	}

	for _, o := range outcomes {
		if err := writeJUnitCase(dir, o); err != nil {
			return err
		}
	}
	return nil
}

func writeJUnitCase(dir string, o harness.Outcome) error {
	path := filepath.Join(dir, o.Descriptor.ID()+".xml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create junit file %s: %w", path, err)
	}
	defer f.Close()

	failed := 0
	if !o.Classification.IsSuccess() {
		failed = 1
	}

	fmt.Fprintf(f, "<testsuite tests=\"1\" failures=\"%d\" assertions=\"1\">\n", failed)
	fmt.Fprintf(f, "<testcase classname=\"%s\" name=\"%s.run\" time=\"%.3f\">",
		o.Descriptor.Suite, o.Descriptor.Name, float64(o.Termination.ElapsedMS)/1000)
	f.WriteString("<system-out>\n<![CDATA[\n")
	f.Write(controlChars.ReplaceAllLiteral([]byte(o.Classification.Detail), []byte{' '}))
	f.WriteString("]]></system-out>\n")
	if failed > 0 {
		fmt.Fprintf(f, "<failure message=%q>\n", o.Classification.Detail)
		f.WriteString("<![CDATA[\n")
		f.Write(controlChars.ReplaceAllLiteral([]byte(o.Classification.Detail), []byte{' '}))
		f.WriteString("]]>\n</failure>\n")
	}
	f.WriteString("</testcase></testsuite>")

	return nil
}
