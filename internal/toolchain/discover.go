package toolchain

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"

	"github.com/delegen/delegen/internal/errors"
	"github.com/delegen/delegen/internal/marker"
	"github.com/delegen/delegen/internal/models"
)

// DiscoverMarked walks every loaded package and returns one DeclaringType per
// struct declaration carrying a delegation marker. Declarations appear in
// file order within each package.
func (t *Toolchain) DiscoverMarked() ([]*models.DeclaringType, error) {
	pkgs, err := t.Packages()
	if err != nil {
		return nil, err
	}

	parser := marker.NewParser()
	var found []*models.DeclaringType

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				genDecl, ok := decl.(*ast.GenDecl)
				if !ok || genDecl.Tok != token.TYPE {
					continue
				}
				for _, spec := range genDecl.Specs {
					typeSpec, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					declared, err := t.examine(pkg.Types, pkg.TypesInfo, parser, genDecl, typeSpec)
					if err != nil {
						return nil, err
					}
					if declared != nil {
						found = append(found, declared)
					}
				}
			}
		}
	}

	return found, nil
}

// examine inspects one type spec and returns its DeclaringType when the doc
// comment carries a marker, nil when it does not.
func (t *Toolchain) examine(tpkg *types.Package, info *types.Info, parser *marker.Parser, genDecl *ast.GenDecl, typeSpec *ast.TypeSpec) (*models.DeclaringType, error) {
	comments := markerComments(genDecl.Doc)
	comments = append(comments, markerComments(typeSpec.Doc)...)
	if len(comments) == 0 {
		return nil, nil
	}

	first := comments[0]
	location := t.locationOf(first.Pos())

	if len(comments) > 1 {
		return nil, errors.NewSyntax("multiple delegation markers on type %s", typeSpec.Name.Name).
			WithLocation(location).
			WithSuggestion("a declaration may carry at most one //delegen:: marker")
	}

	parsed, err := parser.Parse(first.Text, location)
	if err != nil {
		return nil, err
	}

	obj := info.Defs[typeSpec.Name]
	if obj == nil {
		return nil, errors.NewInternalState("no type object for marked declaration %s", typeSpec.Name.Name).
			WithLocation(location)
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, errors.NewConfiguration("delegation marker on non-type declaration %s", typeSpec.Name.Name).
			WithLocation(location)
	}
	structType, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, errors.NewConfiguration("delegation marker on non-struct type %s", typeSpec.Name.Name).
			WithLocation(location).
			WithSuggestion("markers apply to struct types with embedded interface fields")
	}

	declPos := t.fset.Position(typeSpec.Pos())

	return &models.DeclaringType{
		Name:        typeSpec.Name.Name,
		PackageName: tpkg.Name(),
		PackagePath: tpkg.Path(),
		Dir:         filepath.Dir(declPos.Filename),
		Named:       named,
		Struct:      structType,
		Marker:      parsed,
		Location:    location,
	}, nil
}

// markerComments filters a doc comment group down to its marker lines
func markerComments(doc *ast.CommentGroup) []*ast.Comment {
	if doc == nil {
		return nil
	}
	var matched []*ast.Comment
	for _, comment := range doc.List {
		if marker.IsMarker(comment.Text) {
			matched = append(matched, comment)
		}
	}
	return matched
}

func (t *Toolchain) locationOf(pos token.Pos) errors.SourceLocation {
	position := t.fset.Position(pos)
	return errors.SourceLocation{
		File:   position.Filename,
		Line:   position.Line,
		Column: position.Column,
	}
}
