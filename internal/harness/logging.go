package harness

import (
	"io"
	"sort"

	log "github.com/sirupsen/logrus"
)

// StandardLogFormatter is a TextFormatter with a biased field order so
// time/level/file/func/suite/test always sort first, the rest
// alphabetically.
func StandardLogFormatter() *log.TextFormatter {
	return &log.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
		SortingFunc:     logKeySort,
	}
}

func logKeySort(keys []string) {
	sort.Sort(biasedStringSlice(keys))
}

type biasedStringSlice []string

func (s biasedStringSlice) Len() int { return len(s) }

func (s biasedStringSlice) Less(i, j int) bool {
	iPref, iFixed := fixedLogKeys[s[i]]
	jPref, jFixed := fixedLogKeys[s[j]]
	switch {
	case iFixed && jFixed:
		return iPref < jPref
	case iFixed:
		return true
	case jFixed:
		return false
	default:
		return sort.StringSlice(s).Less(i, j)
	}
}

func (s biasedStringSlice) Swap(i, j int) { sort.StringSlice(s).Swap(i, j) }

// fixedLogKeys biases the descriptor's two component fields ahead of any
// other field a caller attaches, so a log line reads "... suite=forks
// test=sleep run_id=... <rest alphabetically>" rather than splitting the
// qualified id across an arbitrary position in the sort order.
var fixedLogKeys = map[string]int{
	log.FieldKeyTime:  1,
	log.FieldKeyLevel: 2,
	log.FieldKeyFile:  3,
	log.FieldKeyFunc:  4,
	logFieldKeySuite:  5,
	logFieldKeyTest:   6,
	logFieldKeyRunID:  7,
}

const (
	logFieldKeySuite = "suite"
	logFieldKeyTest  = "test"
	logFieldKeyRunID = "run_id"
)

// TestLogger builds a *log.Logger scoped to one test execution, carrying
// separate suite/test fields (rather than one combined id, since suite and
// name are independently meaningful - a RegisterSuite failure report
// groups by suite alone) and duplicating every entry to the standard
// logger via standardLoggerHook. This is the Runner's lifecycle log
// ("spawning worker", "timeout fired", "escalating to SIGKILL"), distinct
// from the Diagnostic Formatter's fixed-format verdict line (diag.go),
// which never goes through logrus.
func TestLogger(d Descriptor, out io.Writer) *log.Logger {
	logger := log.New()
	logger.Out = out
	logger.Level = log.DebugLevel
	logger.Formatter = &log.TextFormatter{
		DisableQuote:    true,
		TimestampFormat: "15:04:05.000",
	}
	logger.AddHook(&standardLoggerHook{suite: d.Suite, test: d.Name})
	return logger
}

type standardLoggerHook struct {
	suite string
	test  string
}

func (h *standardLoggerHook) Fire(entry *log.Entry) error {
	logEntry := *entry
	logEntry.Logger = log.StandardLogger()
	logEntry.Data[logFieldKeySuite] = h.suite
	logEntry.Data[logFieldKeyTest] = h.test
	logEntry.Log(logEntry.Level, logEntry.Message)
	delete(entry.Data, logFieldKeySuite)
	delete(entry.Data, logFieldKeyTest)
	return nil
}

func (h *standardLoggerHook) Levels() []log.Level {
	return log.AllLevels
}
