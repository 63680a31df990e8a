package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/delegen/delegen/internal/cli"
	"github.com/delegen/delegen/internal/utils"
)

func main() {
	// Define command-line flags
	var (
		moduleFlag  = flag.String("module", "", "Custom module name for imports (defaults to go.mod module)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flag.Bool("clean", false, "Delete all autogen_*_delegate.go files from the specified directories")
		watchFlag   = flag.Bool("watch", false, "Keep running and regenerate when source files change")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "delegen Delegation Code Generator\n")
		fmt.Fprintf(os.Stderr, "Recursively scans directories for struct types with delegen:: markers and generates forwarding base types.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for marked Go types\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nDirectory Patterns:\n")
		fmt.Fprintf(os.Stderr, "  ./...              Scan current directory and all subdirectories recursively\n")
		fmt.Fprintf(os.Stderr, "  ./internal/...     Scan internal directory and all its subdirectories\n")
		fmt.Fprintf(os.Stderr, "  ./pkg/proxies      Scan only the specific directory (no recursion)\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                  # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --module github.com/myorg/myapp ./...  # Specify custom module name\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose ./internal/...               # Enable detailed output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --watch ./...                          # Regenerate on change\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                          # Delete all generated files\n", os.Args[0])
	}

	flag.Parse()

	// Show help if requested
	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	// Validate arguments
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	// Create diagnostic system based on flags
	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	// Show startup banner
	diagnostics.Header("Delegation Code Generator")

	// Handle clean operation
	if *cleanFlag {
		diagnostics.Info("Starting cleanup operation...")

		cleaner := cli.NewCleaner()
		removed, err := cleaner.CleanGeneratedFiles(args)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			os.Exit(1)
		}

		for _, file := range removed {
			diagnostics.List("removed %s", file)
		}
		diagnostics.Success("All generated delegate files have been removed")
		return
	}

	// Show configuration
	if *verboseFlag {
		diagnostics.PhaseHeader("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
		diagnostics.List("Verbose mode: enabled")
	}

	// Create and configure generator
	generator := cli.NewGeneratorWithDiagnostics(*verboseFlag, diagnostics)
	if *moduleFlag != "" {
		generator.SetCustomModule(*moduleFlag)
		diagnostics.Debug("Using custom module: %s", *moduleFlag)
	}

	config := cli.Config{
		Directories: args,
		ModuleName:  *moduleFlag,
		Verbose:     *verboseFlag,
		Watch:       *watchFlag,
	}

	if *watchFlag {
		stop := make(chan struct{})
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-signals
			close(stop)
		}()

		watcher := cli.NewWatcher(generator, diagnostics)
		if err := watcher.Watch(config, stop); err != nil {
			diagnostics.Error("Watch failed: %v", err)
			os.Exit(1)
		}
		return
	}

	// Run the generation process
	diagnostics.PhaseHeader("Code Generation")
	if err := generator.Run(config); err != nil {
		diagnostics.Error("Generation failed: %v", err)
		os.Exit(1)
	}

	// Show final summary
	summary := generator.GetSummary()
	stats := map[string]interface{}{
		"Packages processed":   summary.PackagesProcessed,
		"Declarations found":   summary.DeclarationsFound,
		"Types generated":      summary.TypesGenerated,
		"Contracts delegated":  summary.ContractsDelegated,
		"Operations forwarded": summary.OperationsForwarded,
	}

	diagnostics.Summary("Generation Complete!", stats)

	// Show generated files in verbose mode
	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.PhaseHeader("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	diagnostics.GenerationComplete()
}
