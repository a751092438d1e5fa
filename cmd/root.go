package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kestrelfw/testfw/internal/config"
	"github.com/kestrelfw/testfw/internal/export"
	"github.com/kestrelfw/testfw/internal/harness"
)

// Execute runs the testfw CLI: configure the standard logger once, then
// hand off to cobra, fataling on any configuration error at this
// outermost layer only.
func Execute() {
	log.SetFormatter(harness.StandardLogFormatter())

	if err := rootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCommand() *cobra.Command {
	var (
		registerNames []string
		registerSuite []string
		actionList    bool
		modeFlag      string
		timeoutFlag   int
		noTimeout     bool
		logPath       string
		nullRedirect  bool
		silent        bool
		fullSilent    bool
		suiteFile     string
		junitDir      string
		resultsJSON   string
		verbose       bool
		showUsage     bool
		showVersion   bool
	)

	rootCmd := &cobra.Command{
		Use:           "testfw",
		Short:         "Run native test entry points under a supervised execution mode",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showUsage {
				cmd.Usage()
				os.Exit(1)
			}
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), config.Version)
				return nil
			}
			if verbose {
				log.SetLevel(log.DebugLevel)
			}

			tail := passthroughArgv(cmd, args)

			mode, err := harness.ParseMode(modeFlag)
			if err != nil {
				return err
			}

			if noTimeout {
				timeoutFlag = 0
			}

			program, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve host executable: %w", err)
			}

			resolver, err := harness.NewExecutableResolver()
			if err != nil {
				return fmt.Errorf("open symbol table: %w", err)
			}

			registry := harness.NewRegistry(resolver, harness.Default)

			if suiteFile != "" {
				m, err := loadManifest(suiteFile)
				if err != nil {
					return err
				}
				if m.Mode != "" && modeFlag == "forks" {
					mode, err = harness.ParseMode(m.Mode)
					if err != nil {
						return err
					}
				}
				if m.Timeout > 0 && timeoutFlag == 2 {
					timeoutFlag = m.Timeout
				}
				registerSuite = append(registerSuite, m.Suites...)
				registerNames = append(registerNames, m.Tests...)
			}

			for _, suite := range registerSuite {
				n, err := registry.RegisterSuite(suite)
				if err != nil {
					return err
				}
				log.Debugf("REGISTER: suite %s: %d tests", suite, n)
			}

			for _, qualified := range registerNames {
				suite, name, ok := splitQualifiedName(qualified)
				if !ok {
					return fmt.Errorf("malformed test name %q, want suite.name", qualified)
				}
				if _, err := registry.RegisterByName(suite, name); err != nil {
					return err
				}
			}

			if actionList {
				return listAction(cmd.OutOrStdout(), registry)
			}

			return execAction(cmd.Context(), execActionArgs{
				program:      program,
				mode:         mode,
				timeout:      timeoutFlag,
				logPath:      logPath,
				nullRedirect: nullRedirect,
				silent:       silent,
				fullSilent:   fullSilent,
				argv:         tail,
				junitDir:     junitDir,
				resultsJSON:  resultsJSON,
				registry:     registry,
			})
		},
	}
	rootCmd.SetContext(context.Background())

	flags := rootCmd.Flags()
	flags.StringArrayVarP(&registerNames, "register", "r", nil, "register a single test by fully-qualified suite.name")
	flags.StringArrayVarP(&registerSuite, "register-suite", "R", nil, "register every <suite>_* symbol as a test")
	flags.BoolVarP(&execFlagPlaceholder, "execute", "x", false, "execute all registered tests (default action)")
	flags.BoolVarP(&actionList, "list", "l", false, "list suite.name for all registered tests")
	flags.StringVarP(&modeFlag, "mode", "m", "forks", "execution mode: forks|forkp|nofork")
	flags.IntVarP(&timeoutFlag, "timeout", "t", 2, "per-test timeout in seconds")
	flags.BoolVarP(&noTimeout, "no-timeout", "T", false, "disable the per-test timeout")
	flags.StringVarP(&logPath, "log", "o", "", "redirect test stdout/stderr to this file")
	flags.BoolVarP(&nullRedirect, "null", "O", false, "redirect test stdout/stderr to the null device")
	flags.BoolVarP(&silent, "silent", "s", false, "suppress framework verdict lines on stdout")
	flags.BoolVarP(&fullSilent, "full-silent", "S", false, "suppress both framework and test output")
	flags.StringVar(&suiteFile, "suite-file", "", "optional TOML suite manifest")
	flags.StringVar(&junitDir, "junit", "", "write a JUnit-shaped XML report per test to this directory")
	flags.StringVar(&resultsJSON, "results-json", "", "write a newline-delimited JSON results file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&showUsage, "usage", "?", false, "print usage and exit with failure")
	flags.BoolVar(&showVersion, "version", false, "print the version and exit")
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		cmd.Usage()
		os.Exit(1)
	})

	return rootCmd
}

// execFlagPlaceholder backs -x/--execute, an explicit (if redundant,
// since it is the default) action selector. Its value is never read;
// -l is the only action flag that changes behavior.
var execFlagPlaceholder bool

// passthroughArgv returns the CLI's "--" tail, forwarded verbatim to
// every test.
func passthroughArgv(cmd *cobra.Command, args []string) []string {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return nil
	}
	return args[dash:]
}

func splitQualifiedName(s string) (suite, name string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

type execActionArgs struct {
	program      string
	mode         harness.Mode
	timeout      int
	logPath      string
	nullRedirect bool
	silent       bool
	fullSilent   bool
	argv         []string
	junitDir     string
	resultsJSON  string
	registry     *harness.Registry
}

func execAction(ctx context.Context, a execActionArgs) error {
	cfg := harness.EngineConfig{
		Program:        a.program,
		Mode:           a.mode,
		TimeoutSeconds: a.timeout,
		LogSink:        a.logPath,
		Silent:         a.silent || a.fullSilent,
		FullSilent:     a.fullSilent,
		NullRedirect:   a.nullRedirect,
		Argv:           a.argv,
		RunID:          runID(),
	}

	sink, cleanup, err := resolveSinkAndStdio(&cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	engine := harness.NewEngine(cfg, a.registry, sink)
	outcomes := engine.Run(ctx)

	if !a.fullSilent {
		fmt.Fprintln(sink, harness.Summary(outcomes))
	}

	if a.resultsJSON != "" {
		if err := writeResultsJSON(a.resultsJSON, cfg.RunID, outcomes); err != nil {
			return err
		}
	}
	if a.junitDir != "" {
		if err := export.WriteJUnit(a.junitDir, outcomes); err != nil {
			return err
		}
	}

	return nil
}

// resolveSinkAndStdio picks where verdict lines go (stdout ordinarily, or
// the locked log sink file when silent and a log path is set) and wires
// -o/-O/-S into the Engine's per-worker stdio: -O and -S both devnull a
// worker's stdout/stderr, -S additionally silences framework verdict
// lines via cfg.Silent. When both the verdict sink and the test stdio
// target the same -o path, a single file/lock is shared rather than
// opening (and self-deadlocking on) the lockfile twice.
func resolveSinkAndStdio(cfg *harness.EngineConfig) (*os.File, func(), error) {
	var logFile *os.File
	var logCloser func()

	if cfg.LogSink != "" {
		f, closer, err := openLogSink(cfg.LogSink)
		if err != nil {
			if cfg.Silent {
				fmt.Fprintf(os.Stderr, "testfw: %v; falling back to stdout\n", err)
			} else {
				return nil, nil, err
			}
		} else {
			logFile, logCloser = f, closer
		}
	}

	var devnull *os.File
	if cfg.NullRedirect || cfg.FullSilent {
		f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			if logCloser != nil {
				logCloser()
			}
			return nil, nil, fmt.Errorf("open null device: %w", err)
		}
		devnull = f
	}

	switch {
	case cfg.NullRedirect || cfg.FullSilent:
		cfg.TestStdout, cfg.TestStderr = devnull, devnull
	case logFile != nil:
		cfg.TestStdout, cfg.TestStderr = logFile, logFile
	}

	sink := os.Stdout
	if cfg.Silent && logFile != nil {
		sink = logFile
		// Verdict lines now go to the log sink rather than stdout, so the
		// Engine must not suppress them.
		cfg.Silent = false
	}

	return sink, func() {
		if devnull != nil {
			devnull.Close()
		}
		if logCloser != nil {
			logCloser()
		}
	}, nil
}

// runID tags an Engine run with a UUID, distinguishing result-export
// records from different invocations against the same output path.
func runID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}

func writeResultsJSON(path, runIDStr string, outcomes []harness.Outcome) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create results dir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file %s: %w", path, err)
	}
	defer f.Close()
	return export.WriteJSON(f, runIDStr, outcomes)
}

func listAction(w io.Writer, registry *harness.Registry) error {
	for i := 0; i < registry.Length(); i++ {
		fmt.Fprintln(w, registry.At(i).ID())
	}
	return nil
}
