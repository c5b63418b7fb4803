package main

import (
	"fmt"
	"log/slog"
	"strings"

	"avifbatch/internal/batch"
	"avifbatch/internal/codec"
	"avifbatch/internal/config"
	"avifbatch/internal/convert"
	"avifbatch/internal/logger"
	"avifbatch/internal/resolve"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var (
	cfg         = config.Default()
	noRecursive bool
	exitCode    int
)

var rootCmd = &cobra.Command{
	Use:   "avifbatch [flags] <path>...",
	Short: "Convert PNG and JPEG images to AVIF",
	Long: `avifbatch converts PNG and JPEG images to the AVIF format, preserving
transparency, and processes batches concurrently across a worker pool.

Examples:
  avifbatch photo.png                  # Convert a single file
  avifbatch photos/                    # Convert a whole directory
  avifbatch a.jpg b.jpg -o out/ -q 90  # Batch convert with options
  avifbatch images/ -p 8 --overwrite   # Parallel conversion`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&cfg.OutputDir, "output", "o", "", "Output directory for converted files (default: alongside each source)")
	f.IntVarP(&cfg.Quality, "quality", "q", config.DefaultQuality, "AVIF quality (0-100, higher is better)")
	f.IntVarP(&cfg.Workers, "parallel", "p", config.DefaultWorkers, "Number of parallel workers")
	f.IntVar(&cfg.Speed, "speed", config.DefaultSpeed, "Encoding speed (0-10, lower is slower but better quality)")
	f.BoolVar(&cfg.Overwrite, "overwrite", false, "Overwrite existing output files")
	f.BoolVar(&noRecursive, "no-recursive", false, "Don't search directories recursively")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose (debug) output")
	f.BoolVar(&cfg.Quiet, "quiet", false, "Suppress progress output (only show summary)")
	f.StringVar(&cfg.LogFile, "log-file", "", "Write logs to file")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"avifbatch {{.Version}} (built %s, commit %s)\n", BuildDate, GitCommit))
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg.Inputs = args
	cfg.Recursive = !noRecursive
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := logger.DefaultOptions()
	if cfg.Verbose {
		opts.Level = slog.LevelDebug
	}
	opts.LogFile = cfg.LogFile
	console, err := logger.NewConsole(opts)
	if err != nil {
		return err
	}
	defer console.Close()

	if !cfg.Quiet {
		console.Info("avifbatch %s", Version)
		console.Info("Quality: %d | Workers: %d", cfg.Quality, cfg.Workers)
	}

	resolver := &resolve.Resolver{Recursive: cfg.Recursive}
	files, preFailures := resolver.Resolve(cfg.Inputs)

	if len(files) == 0 && len(preFailures) == 0 {
		console.Error("No supported image files found.")
		console.Info("Supported formats: %s", strings.Join(resolve.Extensions(), ", "))
		exitCode = 1
		return nil
	}

	if !cfg.Quiet {
		console.Info("Found %d image(s) to convert", len(files))
	}

	tasks := make([]convert.Task, len(files))
	for i, f := range files {
		tasks[i] = convert.Task{
			Source:    f,
			Dest:      convert.OutputPath(f, cfg.OutputDir),
			Quality:   cfg.Quality,
			Overwrite: cfg.Overwrite,
		}
	}

	converter := convert.NewConverter(codec.NewAVIF(cfg.Speed))
	reporter := logger.NewReporter(console, len(tasks)+len(preFailures), cfg.Quiet)
	runner := &batch.Runner{
		Workers:   cfg.Workers,
		OnOutcome: reporter.Outcome,
	}

	timer := console.StartTimer("Batch conversion")
	summary := runner.Run(tasks, preFailures, converter.Convert)
	elapsed := timer.End()

	reporter.Summary(summary, elapsed)
	exitCode = summary.ExitCode()
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return exitCode
}
