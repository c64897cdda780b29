package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/vanderheijden86/nodeview/internal/datasource"
	"github.com/vanderheijden86/nodeview/pkg/config"
	"github.com/vanderheijden86/nodeview/pkg/debug"
	"github.com/vanderheijden86/nodeview/pkg/export"
	"github.com/vanderheijden86/nodeview/pkg/model"
	"github.com/vanderheijden86/nodeview/pkg/robot"
	"github.com/vanderheijden86/nodeview/pkg/ui"
	"github.com/vanderheijden86/nodeview/pkg/version"

	tea "github.com/charmbracelet/bubbletea"
)

const reportTitle = "Alert Report"

// isTerminal is replaced in tests.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// options holds the parsed command line.
type options struct {
	configPath   string
	source       string
	sourceType   string
	seed         int64
	alertOnly    bool
	keepMode     bool
	robotSummary bool
	exportMD     string
	exportSQLite string
	cpuProfile   string
	help         bool
	version      bool
}

func (o options) headless() bool {
	return o.robotSummary || o.exportMD != "" || o.exportSQLite != ""
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("nv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "Config file (default: ~/.config/nv/config.yaml)")
	fs.StringVar(&o.source, "source", "", "Snapshot file, directory or SQLite database (default: sample data)")
	fs.StringVar(&o.sourceType, "source-type", "", "Force the source type: sample, json, yaml, sqlite, dir")
	fs.Int64Var(&o.seed, "seed", 0, "Seed for sample data (0 = time-based)")
	fs.BoolVar(&o.alertOnly, "alert-only", false, "Start in alert-only mode")
	fs.BoolVar(&o.keepMode, "keep-alert-mode", false, "Keep alert-only mode across reloads")
	fs.BoolVar(&o.robotSummary, "robot-summary", false, "Print a JSON status summary and exit")
	fs.StringVar(&o.exportMD, "export-md", "", "Write a Markdown alert report to file ('-' for stdout) and exit")
	fs.StringVar(&o.exportSQLite, "export-sqlite", "", "Write the snapshot to a SQLite database and exit")
	fs.StringVar(&o.cpuProfile, "cpu-profile", "", "Write CPU profile to file")
	fs.BoolVar(&o.help, "help", false, "Show help")
	fs.BoolVar(&o.version, "version", false, "Show version")
	err := fs.Parse(args)
	return o, fs, err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.help {
		fmt.Fprintln(stdout, "Usage: nv [options]")
		fmt.Fprintln(stdout, "\nA TUI viewer for group/node/content status snapshots.")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}
	if opts.version {
		fmt.Fprintf(stdout, "nv %s\n", version.Version)
		return 0
	}
	if opts.robotSummary && opts.exportMD == "-" {
		fmt.Fprintln(stderr, "Error: --robot-summary and --export-md - both write to stdout; give --export-md a file")
		return 2
	}

	// CPU profiling support
	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			fmt.Fprintf(stderr, "Could not create CPU profile: %v\n", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(stderr, "Could not start CPU profile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	producer, src, err := datasource.NewProducer(cfg.Source, cfg.Sample)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	h, err := producer.Snapshot()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading snapshot: %v\n", err)
		return 1
	}
	debug.Log("loaded %d groups from %s", len(h), src)

	if opts.headless() {
		if err := runHeadless(opts, h, src, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if !isTerminal() {
		fmt.Fprintln(stderr, "Error: nv needs a terminal; use --robot-summary or --export-md for scripted use")
		return 1
	}

	if debug.Enabled() {
		if closeLog := redirectDebugLog(); closeLog != nil {
			defer closeLog()
		}
	}

	m := ui.NewModel(h, producer, src.String(), cfg.UI)
	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(stderr, "Error running node viewer: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file and layers environment and flags on
// top. A missing or broken default config is not fatal; an explicit
// --config file is.
func loadConfig(opts options) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		c, err := config.LoadFrom(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = c
	} else {
		c, err := config.Load()
		if err != nil {
			// Non-fatal: continue without config
			debug.Log("config: %v", err)
			c = config.DefaultConfig()
		}
		cfg = c
	}
	cfg.ApplyEnv()

	if opts.source != "" {
		cfg.Source.Path = opts.source
		cfg.Source.Type = ""
	}
	if opts.sourceType != "" {
		cfg.Source.Type = opts.sourceType
	}
	if opts.seed != 0 {
		cfg.Sample.Seed = opts.seed
	}
	if opts.alertOnly {
		cfg.UI.StartAlertOnly = true
	}
	if opts.keepMode {
		cfg.UI.KeepAlertModeOnReload = true
	}
	return cfg, nil
}

func runHeadless(opts options, h model.Hierarchy, src datasource.DataSource, stdout io.Writer) error {
	if opts.exportSQLite != "" {
		if err := export.WriteSQLite(h, opts.exportSQLite); err != nil {
			return err
		}
		if !opts.robotSummary && opts.exportMD != "-" {
			fmt.Fprintf(stdout, "Wrote %s\n", opts.exportSQLite)
		}
	}

	if opts.exportMD != "" {
		report := export.GenerateAlertReport(h, reportTitle)
		if opts.exportMD == "-" {
			if _, err := io.WriteString(stdout, report); err != nil {
				return err
			}
		} else {
			if dir := filepath.Dir(opts.exportMD); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create %s: %w", dir, err)
				}
			}
			if err := os.WriteFile(opts.exportMD, []byte(report), 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			if !opts.robotSummary {
				fmt.Fprintf(stdout, "Wrote %s\n", opts.exportMD)
			}
		}
	}

	if opts.robotSummary {
		return robot.Write(stdout, robot.NewSummary(h, src.String(), time.Now()))
	}
	return nil
}

// redirectDebugLog sends debug output to the state directory so it does
// not corrupt the alternate screen.
func redirectDebugLog() func() {
	dir := config.StateDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	debug.SetOutput(f)
	return func() {
		debug.SetOutput(os.Stderr)
		_ = f.Close()
	}
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set NV_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("NV_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
