package toolchain

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"

	"github.com/delegen/delegen/internal/errors"
)

// loadMode is everything discovery and resolution need: syntax for marker
// comments, type information for contract resolution.
const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedSyntax

// Toolchain loads source packages and holds their type information for the
// duration of one generation round.
type Toolchain struct {
	fset   *token.FileSet
	pkgs   []*packages.Package
	loaded bool
}

// New creates an empty toolchain handle
func New() *Toolchain {
	return &Toolchain{fset: token.NewFileSet()}
}

// Load type-checks the packages named by the given patterns. Patterns are
// passed through to the underlying loader, so directory paths and "./..."
// wildcards both work.
func (t *Toolchain) Load(patterns []string) error {
	cfg := &packages.Config{
		Mode: loadMode,
		Fset: t.fset,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return errors.Wrap(errors.FileSystemErrorCode, "failed to load packages", err).
			WithContext("patterns", patterns)
	}

	t.pkgs = pkgs
	t.loaded = true
	return nil
}

// Packages returns the loaded package set
func (t *Toolchain) Packages() ([]*packages.Package, error) {
	if !t.loaded {
		return nil, errors.NewInternalState("toolchain queried before any load")
	}
	return t.pkgs, nil
}

// FileSet returns the position information for all loaded files
func (t *Toolchain) FileSet() *token.FileSet {
	return t.fset
}

// TypeErrors returns every load and type-check problem across the loaded
// packages. These are surfaced as warnings rather than failures: on a first
// run the forwarding base types do not exist yet, so declarations that embed
// them cannot type-check until after generation.
func (t *Toolchain) TypeErrors() []packages.Error {
	var all []packages.Error
	for _, pkg := range t.pkgs {
		all = append(all, pkg.Errors...)
	}
	return all
}

// LoadSource type-checks a single in-memory file as its own package. The
// resulting package joins the loaded set, so discovery and resolution treat
// it exactly like a package loaded from disk.
func (t *Toolchain) LoadSource(filename string, src string) error {
	file, err := parser.ParseFile(t.fset, filename, src, parser.ParseComments)
	if err != nil {
		return errors.Wrap(errors.SyntaxErrorCode, "failed to parse source", err).
			WithContext("file", filename)
	}

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	cfg := types.Config{Importer: importer.Default()}

	tpkg, err := cfg.Check(file.Name.Name, t.fset, []*ast.File{file}, info)
	if err != nil {
		return errors.Wrap(errors.SyntaxErrorCode, "failed to type-check source", err).
			WithContext("file", filename)
	}

	t.pkgs = append(t.pkgs, &packages.Package{
		Name:      tpkg.Name(),
		PkgPath:   tpkg.Path(),
		Fset:      t.fset,
		Syntax:    []*ast.File{file},
		Types:     tpkg,
		TypesInfo: info,
	})
	t.loaded = true
	return nil
}
