package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/evanwhit/moodscope/internal/datasource"
	"github.com/evanwhit/moodscope/pkg/config"
	"github.com/evanwhit/moodscope/pkg/loader"
	"github.com/evanwhit/moodscope/pkg/model"
	"github.com/evanwhit/moodscope/pkg/processing"
	"github.com/evanwhit/moodscope/pkg/watcher"
)

func main() {
	dirFlag := flag.String("dir", "", "Journal directory (default: MOODSCOPE_DIR or current directory)")
	configFlag := flag.String("config", "", "Path to config file (default: XDG config location)")
	watchFlag := flag.Bool("watch", false, "Keep running and reprocess when the journal changes")
	jsonFlag := flag.Bool("json", false, "Print the processed bundle as JSON")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Println("Usage: moodscope [options]")
		fmt.Println("\nProcesses a mood journal into derived statistics.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	settings, err := loadSettings(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	dir := *dirFlag
	if dir == "" {
		dir, err = loader.GetDataDir("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving data directory: %v\n", err)
			os.Exit(1)
		}
	}

	source, err := datasource.Detect(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating journal: %v\n", err)
		fmt.Fprintln(os.Stderr, "Set MOODSCOPE_DIR or pass --dir to point at a journal directory.")
		os.Exit(1)
	}

	proc := processing.NewProcessor()

	if !*watchFlag {
		if err := process(proc, source, settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		result, ok := proc.Result()
		if !ok {
			fmt.Fprintln(os.Stderr, "Error: processing produced no result")
			os.Exit(1)
		}
		report(result, *jsonFlag)
		return
	}

	w, err := watcher.NewWatcher(source.Path,
		watcher.WithOnError(func(err error) {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		os.Exit(1)
	}
	if err := w.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting watcher: %v\n", err)
		os.Exit(1)
	}
	defer w.Stop()

	results, err := subscribeAndRun(proc, source, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case result := <-results:
			report(result, *jsonFlag)
		case <-w.Changed():
			// A fresh run supersedes whatever is in flight.
			if err := process(proc, source, settings); err != nil {
				fmt.Fprintf(os.Stderr, "Reload error: %v\n", err)
			}
		case <-sig:
			return
		}
	}
}

// subscribeAndRun subscribes before starting the first run so its result
// arrives on the same channel as reload results.
func subscribeAndRun(proc *processing.Processor, source datasource.DataSource, settings config.Settings) (<-chan *model.Processed, error) {
	results := proc.Subscribe()
	if err := process(proc, source, settings); err != nil {
		return nil, err
	}
	return results, nil
}

func loadSettings(path string) (config.Settings, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// process reloads the journal and starts a processing run. In watch mode the
// result arrives through the processor's subscription channel; in one-shot
// mode the caller waits on the run.
func process(proc *processing.Processor, source datasource.DataSource, settings config.Settings) error {
	observations, health, err := datasource.LoadSource(source)
	if err != nil {
		return err
	}

	snap := processing.NewSnapshot(observations, health, settings)
	run, err := proc.Start(snap)
	if err != nil {
		return err
	}
	<-run.Done()
	return nil
}

func report(result *model.Processed, asJSON bool) {
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			return
		}
		os.Stdout.Write(data)
		fmt.Println()
		return
	}

	series := result.Series
	fmt.Printf("Processed epoch %d: %d days", result.Epoch, series.Len())
	if !series.Empty() {
		fmt.Printf(" (%s to %s)", series.Start().Format("2006-01-02"), series.End().Format("2006-01-02"))
	}
	fmt.Println()

	for _, dim := range model.Dimensions() {
		trend := result.Trends[dim]
		if trend.Direction == "" || trend.RecentMean == nil || trend.PriorMean == nil {
			fmt.Printf("  %-12s trend: insufficient data\n", dim)
			continue
		}
		fmt.Printf("  %-12s trend: %s (delta %+.2f)\n", dim, trend.Direction, *trend.RecentMean-*trend.PriorMean)
	}

	fmt.Printf("  categories: %d  events: %d\n",
		len(result.Influence), len(result.EventImpacts))
}
