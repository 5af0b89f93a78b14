package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/trellis/internal/datasource"
	"github.com/vanderheijden86/trellis/pkg/config"
	"github.com/vanderheijden86/trellis/pkg/export"
	"github.com/vanderheijden86/trellis/pkg/model"
	"github.com/vanderheijden86/trellis/pkg/treeview"
	"github.com/vanderheijden86/trellis/pkg/ui"
	"github.com/vanderheijden86/trellis/pkg/version"
)

// dataPaths collects repeatable --data flags.
type dataPaths []string

func (d *dataPaths) String() string { return strings.Join(*d, ",") }

func (d *dataPaths) Set(v string) error {
	*d = append(*d, v)
	return nil
}

func main() {
	var data dataPaths
	flag.Var(&data, "data", "Outline file to load (.jsonl or .db; repeatable)")
	configPath := flag.String("config", "", "Config file path (default: XDG config dir)")
	snapshotPath := flag.String("snapshot", "", "Render the outline to an image (.png or .svg) and exit")
	addFlag := flag.Bool("add", false, "Interactively append a new entry to the outline file")
	watchFlag := flag.Bool("watch", true, "Reload the outline when the file changes")
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	// CPU profiling support
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: trellis [options] [outline-file ...]")
		fmt.Println("\nA TUI outline viewer for hierarchical JSONL and SQLite data.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("trellis %s\n", version.Version)
		os.Exit(0)
	}

	appCfg, cfgErr := loadConfig(*configPath)
	if cfgErr != nil {
		// Non-fatal: continue with defaults
		appCfg = config.DefaultConfig()
	}
	if !*watchFlag {
		appCfg.Watch.Enabled = false
	}

	paths := resolveDataPaths(append([]string(data), flag.Args()...), appCfg)
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "No outline file found.")
		fmt.Fprintln(os.Stderr, "Pass one explicitly (trellis --data outline.jsonl) or configure discovery scan paths.")
		os.Exit(1)
	}

	if *addFlag {
		if err := runAddWizard(paths); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	entries, err := loadEntries(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading outline: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("Outline is empty. Add entries with 'trellis --add'.")
		os.Exit(0)
	}

	if *snapshotPath != "" {
		if err := writeSnapshot(entries, *snapshotPath); err != nil {
			fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Snapshot written to %s\n", *snapshotPath)
		os.Exit(0)
	}

	// Live reload follows a single concrete file; merged multi-source
	// outlines load once.
	watchPath := ""
	if len(paths) == 1 {
		watchPath = paths[0]
	}

	m := ui.NewModel(entries, watchPath).WithConfig(appCfg)
	defer m.Stop()

	if err := runTUIProgram(m); err != nil {
		fmt.Printf("Error running trellis: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// resolveDataPaths turns explicit flags and args, configured sources, and
// filesystem discovery into concrete file paths, in that order of
// preference. Explicit paths pass through untouched; discovery picks the
// freshest source that validates.
func resolveDataPaths(explicit []string, cfg config.Config) []string {
	if len(explicit) > 0 {
		return explicit
	}

	var candidates []datasource.Source
	for _, s := range cfg.Sources {
		src, err := datasource.FromPath(s.ResolvedPath())
		if err != nil {
			continue
		}
		candidates = append(candidates, src)
	}

	roots := cfg.Discovery.ScanPaths
	if len(roots) == 0 {
		roots = []string{"."}
	}
	candidates = append(candidates, datasource.Discover(roots, cfg.Discovery.MaxDepth)...)

	if len(candidates) == 0 {
		return nil
	}
	_ = datasource.ValidateAll(context.Background(), candidates)
	best := datasource.SelectBest(candidates)
	if best == nil {
		return nil
	}
	return []string{best.Path}
}

func loadEntries(paths []string) ([]model.Entry, error) {
	if len(paths) == 1 {
		return datasource.Load(paths[0])
	}

	sources := make([]datasource.Source, 0, len(paths))
	for _, p := range paths {
		src, err := datasource.FromPath(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	entries, results, err := datasource.LoadAll(context.Background(), sources)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", r.Source.Path, r.Err)
		}
	}
	return entries, nil
}

// runAddWizard appends one entry to the outline file via the interactive
// form. The target must be a single JSONL file; it is created on first
// append if missing.
func runAddWizard(paths []string) error {
	if len(paths) != 1 {
		return fmt.Errorf("--add needs exactly one outline file")
	}
	target := paths[0]
	if t, ok := datasource.DetectType(target); !ok || t != datasource.TypeJSONL {
		return fmt.Errorf("--add requires a JSONL outline file, got %s", target)
	}

	var existing []model.Entry
	if _, err := os.Stat(target); err == nil {
		existing, err = datasource.Load(target)
		if err != nil {
			return fmt.Errorf("read %s: %w", target, err)
		}
	}
	_, err := ui.NewAddWizard(target, existing).Run()
	return err
}

// writeSnapshot renders the full outline, headless, to a PNG or SVG file.
func writeSnapshot(entries []model.Entry, path string) error {
	theme := ui.DefaultTheme(lipgloss.NewRenderer(os.Stdout))
	v, _ := ui.NewOutlineView(entries, theme)
	v.SetMode(treeview.ModeUnroll)
	hint := v.SizeHint()
	v.SetViewport(hint.W, hint.H)
	return export.SaveSnapshot(v, export.SnapshotOptions{Path: path})
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
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

	// Optional auto-quit for automated tests: set TRELLIS_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("TRELLIS_TUI_AUTOCLOSE_MS"); v != "" {
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
