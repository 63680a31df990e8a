package cli

import (
	"fmt"
	"time"

	"github.com/delegen/delegen/internal/emit"
	"github.com/delegen/delegen/internal/models"
	"github.com/delegen/delegen/internal/resolver"
	"github.com/delegen/delegen/internal/synth"
	"github.com/delegen/delegen/internal/toolchain"
	"github.com/delegen/delegen/internal/utils"
)

// Generator coordinates the CLI generation process: scan, load, discover,
// resolve, synthesize, emit. One Run is one generation round; the first
// failing declaration aborts the round with nothing further written.
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	emitter        *emit.Emitter
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	customModule   string
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(verbose bool) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		emitter:        emit.New(emit.OSFiler{}),
		reporter:       NewDiagnosticReporter(verbose),
		summary:        GenerationSummary{GeneratedFiles: make([]string, 0)},
	}
}

// NewGeneratorWithDiagnostics creates a new CLI generator with the diagnostic system
func NewGeneratorWithDiagnostics(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	g := NewGenerator(verbose)
	g.diagnostics = diagnostics
	return g
}

// Generate executes the generation process for the given directories
func (g *Generator) Generate(directories []string) error {
	config := Config{
		Directories: directories,
		Verbose:     g.reporter != nil && g.reporter.verbose,
		ModuleName:  g.customModule,
	}

	return g.Run(config)
}

// SetCustomModule sets a custom module name for import resolution
func (g *Generator) SetCustomModule(moduleName string) {
	g.customModule = moduleName
}

// GetSummary returns the generation summary
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes one full generation round
func (g *Generator) Run(config Config) error {
	start := time.Now()
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	moduleName, err := g.moduleResolver.ResolveModuleName(config.ModuleName)
	if err != nil {
		g.reporter.ReportError(err)
		return err
	}
	g.debugf("resolved module name: %s", moduleName)

	directories, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		g.reporter.ReportError(err)
		return err
	}
	if len(directories) == 0 {
		g.infof("no Go packages found under %v", config.Directories)
		return nil
	}
	g.debugf("scanning %d directories", len(directories))

	tc := toolchain.New()
	if err := tc.Load(directories); err != nil {
		g.reporter.ReportError(err)
		return err
	}
	g.summary.PackagesProcessed = len(directories)

	// Type errors are expected on a first run, when declaring types reference
	// forwarding bases that have not been generated yet.
	for _, typeErr := range tc.TypeErrors() {
		g.reporter.ReportWarning(fmt.Sprintf("type check: %s", typeErr.Msg))
	}

	declarations, err := tc.DiscoverMarked()
	if err != nil {
		g.reporter.ReportError(err)
		return err
	}
	g.summary.DeclarationsFound = len(declarations)
	if len(declarations) == 0 {
		g.infof("no marked declarations found")
		return nil
	}

	for _, decl := range declarations {
		if err := g.processDeclaration(decl); err != nil {
			g.reporter.ReportError(err)
			return err
		}
	}

	g.debugf("round finished in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

// processDeclaration takes one marked declaration through resolution,
// synthesis, and emission.
func (g *Generator) processDeclaration(decl *models.DeclaringType) error {
	g.debugf("processing %s.%s", decl.PackageName, decl.Name)

	req, err := resolver.ExtractRequest(decl)
	if err != nil {
		return err
	}

	res, err := resolver.Resolve(decl, req)
	if err != nil {
		return err
	}

	operations := make([][]models.Operation, len(res.Contracts))
	for i, pair := range res.Contracts {
		ops, err := resolver.CollectOperations(pair.First())
		if err != nil {
			return err
		}
		operations[i] = ops
	}

	gen, err := synth.Build(res, operations)
	if err != nil {
		return err
	}

	path, err := g.emitter.Emit(gen)
	if err != nil {
		return err
	}

	g.summary.TypesGenerated++
	g.summary.ContractsDelegated += len(gen.Contracts)
	g.summary.OperationsForwarded += len(gen.Operations)
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)

	if g.diagnostics != nil {
		g.diagnostics.PhaseProgress(fmt.Sprintf("Writing %s", path))
	}
	return nil
}

func (g *Generator) debugf(format string, args ...interface{}) {
	if g.diagnostics != nil {
		g.diagnostics.Debug(format, args...)
	}
}

func (g *Generator) infof(format string, args ...interface{}) {
	if g.diagnostics != nil {
		g.diagnostics.Info(format, args...)
	}
}
