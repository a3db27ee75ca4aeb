package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/vanderheijden86/bwtree/internal/datasource"
	"github.com/vanderheijden86/bwtree/pkg/analysis"
	"github.com/vanderheijden86/bwtree/pkg/config"
	"github.com/vanderheijden86/bwtree/pkg/debug"
	"github.com/vanderheijden86/bwtree/pkg/export"
	"github.com/vanderheijden86/bwtree/pkg/loader"
	"github.com/vanderheijden86/bwtree/pkg/metrics"
	"github.com/vanderheijden86/bwtree/pkg/tree"
	"github.com/vanderheijden86/bwtree/pkg/ui"
	"github.com/vanderheijden86/bwtree/pkg/version"
	"github.com/vanderheijden86/bwtree/pkg/watcher"
)

type (
	entryState = tree.State[string, loader.Entry]
	entryModel = ui.Model[string, loader.Entry]
	forestMsg  = ui.ForestMsg[string, loader.Entry]
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bwtree", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Config file (default: "+config.ConfigPath()+")")
	statePath := fs.String("state", "", "Tree state file (overrides config)")
	noState := fs.Bool("no-state", false, "Do not load or save tree state")
	printFlag := fs.Bool("print", false, "Print the tree instead of starting the TUI")
	openAll := fs.Bool("open-all", false, "Open every node before printing")
	height := fs.Int("height", 0, "Viewport rows (0 = terminal height, or everything with -print)")
	connectors := fs.Bool("connectors", false, "Draw tree connectors instead of indentation")
	noWatch := fs.Bool("no-watch", false, "Do not reload when source files change")
	exportPath := fs.String("export", "", "Export to file (.md, .db, .svg, .png) and exit")
	exportWizard := fs.Bool("export-wizard", false, "Choose export format and path interactively")
	statsFlag := fs.Bool("stats", false, "Print forest statistics as JSON and exit")
	metricsFlag := fs.Bool("metrics", false, "Print timing metrics as JSON on exit")
	debugFlag := fs.Bool("debug", false, "Enable debug logging")
	cpuProfile := fs.String("cpu-profile", "", "Write CPU profile to file")
	versionFlag := fs.Bool("version", false, "Show version")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: bwtree [options] <file>...")
		fmt.Fprintln(stderr, "\nBrowse YAML, JSON, JSONL or SQLite trees in the terminal.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "bwtree %s\n", version.Version)
		return 0
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	if *debugFlag {
		debug.SetEnabled(true)
	}
	if *metricsFlag {
		metrics.SetEnabled(true)
		defer writeMetrics(stderr)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
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

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if *connectors {
		cfg.Tree.Connectors = true
	}
	if *height > 0 {
		cfg.Tree.Height = *height
	}

	sources, err := datasource.DetectAll(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	parseOpts := loader.ParseOptions{
		WarningHandler: func(msg string) { log.Printf("warning: %s", msg) },
	}

	ctx := context.Background()
	forest, err := datasource.Load(ctx, sources, parseOpts)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading tree: %v\n", err)
		return 1
	}

	persist := cfg.State.Persist && !*noState
	stateFile := cfg.StatePath()
	if *statePath != "" {
		stateFile = *statePath
	}
	state := tree.NewState[string, loader.Entry]()
	if persist {
		state = loadState(stateFile)
	}

	if *statsFlag {
		data, err := json.MarshalIndent(analysis.Analyze(forest, 0), "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
		return 0
	}

	if *exportPath != "" || *exportWizard {
		opts := export.Options{Path: *exportPath, Title: title(sources), OpenAll: *openAll}
		if *exportWizard {
			if opts, err = export.RunWizard(opts); err != nil {
				fmt.Fprintf(stderr, "Export cancelled: %v\n", err)
				return 1
			}
		}
		if err := export.Export(ctx, forest, state, opts); err != nil {
			fmt.Fprintf(stderr, "Error exporting: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Exported to %s\n", opts.Path)
		return 0
	}

	if *printFlag || !isTerminal(stdout) {
		if *openAll {
			state.OpenAll(forest)
		}
		if err := printTree(stdout, forest, state, cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	opts := ui.Options[string, loader.Entry]{
		Title:      title(sources),
		Theme:      ui.DefaultTheme(lipgloss.DefaultRenderer()).WithHighlightColor(cfg.Tree.HighlightColor),
		Tree:       ui.OptionsFromConfig(cfg.Tree),
		ScrollStep: cfg.Keys.ScrollStep,
		Height:     cfg.Tree.Height,
		Label:      entryLabel,
		Description: func(row tree.Row[string, loader.Entry]) string {
			return row.Node.Payload().Description
		},
	}
	m := ui.NewModel(forest, state, opts)

	if debug.Enabled() {
		// The alternate screen owns stderr while the program runs.
		if f, err := openDebugLog(); err != nil {
			log.Printf("warning: debug log disabled: %v", err)
			debug.SetEnabled(false)
		} else {
			defer f.Close()
			debug.SetOutput(f)
		}
	}

	final, err := runTUIProgram(ctx, m, forest, sources, parseOpts, !*noWatch)
	if err != nil {
		fmt.Fprintf(stderr, "Error running bwtree: %v\n", err)
		return 1
	}
	if persist {
		saveState(stateFile, final.State())
	}
	return 0
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	cfg, err := config.Load()
	if err != nil {
		// Non-fatal: continue without config
		log.Printf("warning: %v, using defaults", err)
		return config.DefaultConfig(), nil
	}
	return cfg, nil
}

func entryLabel(row tree.Row[string, loader.Entry]) string {
	id, _ := row.Path.Last()
	return row.Node.Payload().Title(id)
}

func title(sources []datasource.DataSource) string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = filepath.Base(s.Path)
	}
	return strings.Join(names, ", ")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runTUIProgram(ctx context.Context, m entryModel, forest *loader.Forest, sources []datasource.DataSource, parseOpts loader.ParseOptions, watch bool) (entryModel, error) {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	if watch {
		w, err := newReloadWatcher(ctx, p, forest, sources, parseOpts)
		if err != nil {
			log.Printf("warning: live reload disabled: %v", err)
		} else {
			defer w.Stop()
		}
	}

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

	// Optional auto-quit for automated tests: set BWTREE_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("BWTREE_TUI_AUTOCLOSE_MS"); v != "" {
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
			}()
		}
	}

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
		return m, err
	}
	if fm, ok := final.(entryModel); ok {
		return fm, nil
	}
	return m, nil
}

// newReloadWatcher reloads every source when any of them changes and hands
// the new forest to the running program. current is the forest on screen.
func newReloadWatcher(ctx context.Context, p *tea.Program, current *loader.Forest, sources []datasource.DataSource, parseOpts loader.ParseOptions) (*watcher.Watcher, error) {
	var mu sync.Mutex
	w, err := watcher.NewWatcher(datasource.Paths(sources),
		watcher.WithOnChange(func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			debug.Log("reload: %v changed", paths)
			f, err := datasource.Load(ctx, sources, parseOpts)
			if err != nil {
				p.Send(ui.ErrMsg{Err: err})
				return
			}
			diff := datasource.DiffForests(current, f)
			debug.Log("reload: %s", diff.Summary())
			current = f
			p.Send(forestMsg{Forest: f, Source: fmt.Sprintf("%s (%s)", title(sources), diff.Short())})
		}),
		watcher.WithOnError(func(err error) {
			p.Send(ui.ErrMsg{Err: err})
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	if w.IsPolling() {
		debug.Log("reload: polling every %v (%s filesystem)", w.PollInterval(), w.FilesystemType())
	}
	return w, nil
}

func openDebugLog() (*os.File, error) {
	dir := config.StateDir()
	if dir == "" {
		return nil, errors.New("no state directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

func writeMetrics(w io.Writer) {
	data, err := json.MarshalIndent(metrics.AllTimingStats(), "", "  ")
	if err != nil {
		log.Printf("warning: failed to marshal metrics: %v", err)
		return
	}
	fmt.Fprintln(w, string(data))
}
