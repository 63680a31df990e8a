package cli

import (
	"fmt"
	"os"

	"github.com/delegen/delegen/internal/utils"
)

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	parser *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		parser: utils.NewGoModParser(),
	}
}

// ResolveModuleName resolves the module name for imports
// If customModule is provided, it uses that; otherwise reads from go.mod
func (r *ModuleResolver) ResolveModuleName(customModule string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	goModPath, err := r.parser.FindGoModFile(currentDir)
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w (consider using --module flag)", err)
	}

	return r.parser.ParseModuleName(goModPath)
}
