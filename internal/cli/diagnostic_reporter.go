package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/delegen/delegen/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
	}
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprint(os.Stderr, "! ")
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(os.Stderr, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(os.Stderr, "=============================\n\n")

	var genErr *errors.Error
	if errors.As(err, &genErr) {
		r.reportRichError(genErr)
	} else {
		r.reportBasicError(err)
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// reportRichError reports an Error with full context and suggestions
func (r *DiagnosticReporter) reportRichError(genErr *errors.Error) {
	r.printErrorHeader(genErr)

	// Main error message
	fmt.Fprintf(os.Stderr, "Message: %s\n\n", genErr.Message)

	// In verbose mode, show the underlying cause if available
	if r.verbose && genErr.Cause != nil {
		fmt.Fprintf(os.Stderr, "Underlying cause: %s\n\n", genErr.Cause.Error())
	}

	if !genErr.Loc.IsEmpty() {
		fmt.Fprintf(os.Stderr, "Location: %s\n\n", genErr.Loc)
	}

	if len(genErr.Context()) > 0 {
		r.printContext(genErr.Context())
	}

	if len(genErr.Suggestions()) > 0 {
		r.printSuggestions(genErr.Suggestions())
	}

	r.printAdditionalHelp(genErr.Code)

	if r.verbose {
		r.printVerboseDebuggingInfo(genErr)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(os.Stderr, "Message: %s\n\n", err.Error())

	// Try to provide some general guidance based on error message
	errorMsg := strings.ToLower(err.Error())

	if strings.Contains(errorMsg, "marker") {
		fmt.Fprintf(os.Stderr, "This appears to be a marker-related issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check your //delegen::delegate marker syntax\n")
		fmt.Fprintf(os.Stderr, "  - Ensure the marker sits in the type's doc comment\n\n")
	} else if strings.Contains(errorMsg, "module") {
		fmt.Fprintf(os.Stderr, "This appears to be a module-related issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check your go.mod file\n")
		fmt.Fprintf(os.Stderr, "  - Try specifying --module flag explicitly\n\n")
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(genErr *errors.Error) {
	var errorTypeStr string

	switch genErr.Code {
	case errors.SyntaxErrorCode:
		errorTypeStr = "Marker Syntax Error"
	case errors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	case errors.ResolutionErrorCode:
		errorTypeStr = "Contract Resolution Error"
	case errors.CollisionErrorCode:
		errorTypeStr = "Operation Collision Error"
	case errors.InternalStateErrorCode:
		errorTypeStr = "Internal State Error"
	case errors.EmissionErrorCode:
		errorTypeStr = "Code Emission Error"
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(os.Stderr, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(os.Stderr, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "Context:\n")

	// Print important context items first
	importantKeys := []string{"marker", "requested", "implemented", "unmatched", "operation"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(os.Stderr, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	// Print remaining context items
	for key, value := range context {
		if !printed[key] {
			fmt.Fprintf(os.Stderr, "   %s: %v\n", r.formatContextKey(key), value)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	// Convert snake_case to Title Case
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(os.Stderr, "Suggestions:\n")

	for i, suggestion := range suggestions {
		// Format multi-line suggestions nicely
		lines := strings.Split(suggestion, "\n")
		if len(lines) == 1 {
			fmt.Fprintf(os.Stderr, "   %d. %s\n", i+1, suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "   %d. %s\n", i+1, lines[0])
			for _, line := range lines[1:] {
				if strings.TrimSpace(line) != "" {
					fmt.Fprintf(os.Stderr, "      %s\n", line)
				}
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// printAdditionalHelp prints additional help based on error code
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.SyntaxErrorCode:
		fmt.Fprintf(os.Stderr, "Marker Syntax Help:\n")
		fmt.Fprintf(os.Stderr, "  - Markers must start with //delegen::\n")
		fmt.Fprintf(os.Stderr, "  - Single contract: //delegen::delegate -Contract=io.Reader\n")
		fmt.Fprintf(os.Stderr, "  - Several contracts: //delegen::delegate -Contracts=io.Reader,io.Closer\n\n")

	case errors.ConfigurationErrorCode:
		fmt.Fprintf(os.Stderr, "Delegation Request Requirements:\n")
		fmt.Fprintf(os.Stderr, "  - Exactly one of -Contract and -Contracts per marker\n")
		fmt.Fprintf(os.Stderr, "  - At least one non-sentinel contract reference\n\n")

	case errors.ResolutionErrorCode:
		fmt.Fprintf(os.Stderr, "Contract Resolution Requirements:\n")
		fmt.Fprintf(os.Stderr, "  - Requested contracts must be embedded fields of the marked struct\n")
		fmt.Fprintf(os.Stderr, "  - Interfaces embedded one level inside those also count\n\n")

	case errors.CollisionErrorCode:
		fmt.Fprintf(os.Stderr, "Resolving Operation Collisions:\n")
		fmt.Fprintf(os.Stderr, "  - A method name may come from only one requested contract\n")
		fmt.Fprintf(os.Stderr, "  - Drop one of the colliding contracts from the request\n\n")
	}

	// Always show general help
	fmt.Fprintf(os.Stderr, "For more help:\n")
	fmt.Fprintf(os.Stderr, "  - Check the delegen documentation\n")
	fmt.Fprintf(os.Stderr, "  - Run with --verbose for more detailed output\n")
}

// printVerboseDebuggingInfo prints additional debugging information in verbose mode
func (r *DiagnosticReporter) printVerboseDebuggingInfo(genErr *errors.Error) {
	fmt.Fprintf(os.Stderr, "Verbose Debug Information:\n")
	fmt.Fprintf(os.Stderr, "  Error Code: %s\n", genErr.Code)

	if len(genErr.ContextData) > 0 {
		fmt.Fprintf(os.Stderr, "  Full Context Data:\n")
		for key, value := range genErr.ContextData {
			fmt.Fprintf(os.Stderr, "    %s: %+v\n", key, value)
		}
	}

	if genErr.Cause != nil {
		fmt.Fprintf(os.Stderr, "  Error Chain:\n")
		err := genErr.Cause
		level := 1
		for err != nil {
			fmt.Fprintf(os.Stderr, "    %d. %s\n", level, err.Error())
			if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
				err = unwrapper.Unwrap()
				level++
			} else {
				break
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// ReportSuccess reports successful generation with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	fmt.Printf("\nCode Generation Completed Successfully!\n")
	fmt.Printf("=======================================\n\n")

	if summary.PackagesProcessed > 0 {
		fmt.Printf("Processed %d packages\n", summary.PackagesProcessed)
	}

	if summary.DeclarationsFound > 0 {
		fmt.Printf("Found %d marked declarations\n", summary.DeclarationsFound)
	}

	if summary.ContractsDelegated > 0 {
		fmt.Printf("Delegated %d contracts\n", summary.ContractsDelegated)
	}

	if summary.OperationsForwarded > 0 {
		fmt.Printf("Forwarded %d operations\n", summary.OperationsForwarded)
	}

	if len(summary.GeneratedFiles) > 0 {
		fmt.Printf("\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Printf("  - %s\n", file)
		}
	}

	fmt.Printf("\nYour forwarding base types are ready to embed!\n")
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	PackagesProcessed   int
	DeclarationsFound   int
	TypesGenerated      int
	ContractsDelegated  int
	OperationsForwarded int
	GeneratedFiles      []string
}
