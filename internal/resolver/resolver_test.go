package resolver

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delegen/delegen/internal/errors"
	"github.com/delegen/delegen/internal/marker"
	"github.com/delegen/delegen/internal/models"
)

// typecheck compiles a single-file fixture package in memory
func typecheck(t *testing.T, src string) *types.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "fixture.go", src, 0)
	require.NoError(t, err)

	cfg := types.Config{Importer: importer.Default()}
	pkg, err := cfg.Check("fixture", fset, []*ast.File{file}, nil)
	require.NoError(t, err)
	return pkg
}

// declaring builds a DeclaringType for a named struct of the fixture package
func declaring(t *testing.T, pkg *types.Package, name string, m *marker.ParsedMarker) *models.DeclaringType {
	t.Helper()

	obj := pkg.Scope().Lookup(name)
	require.NotNil(t, obj, "fixture type %s not found", name)
	named := obj.Type().(*types.Named)
	structType := named.Underlying().(*types.Struct)

	return &models.DeclaringType{
		Name:        name,
		PackageName: pkg.Name(),
		PackagePath: pkg.Path(),
		Named:       named,
		Struct:      structType,
		Marker:      m,
		Location:    errors.SourceLocation{File: "fixture.go", Line: 1},
	}
}

const proxyFixture = `
package fixture

type Reader interface {
	Read(p []byte) (n int, err error)
}

type Closer interface {
	Close() error
}

type Writer interface {
	Write(p []byte) (n int, err error)
}

type ReadCloser interface {
	Reader
	Closer
}

type Proxy struct {
	Reader
	Closer
	name string
}

type DeepProxy struct {
	ReadCloser
}
`

func singleMarker(ref string) *marker.ParsedMarker {
	return &marker.ParsedMarker{Directive: marker.DirectiveDelegate, Single: ref, SingleSet: true}
}

func multiMarker(refs ...string) *marker.ParsedMarker {
	return &marker.ParsedMarker{Directive: marker.DirectiveDelegate, Multi: refs, MultiSet: true}
}

func TestExtractRequest(t *testing.T) {
	pkg := typecheck(t, proxyFixture)

	tests := []struct {
		name     string
		marker   *marker.ParsedMarker
		expected []string
	}{
		{"single", singleMarker("Reader"), []string{"Reader"}},
		{"multi", multiMarker("Reader", "Closer"), []string{"Reader", "Closer"}},
		{"sentinel dropped", multiMarker("_", "Closer"), []string{"Closer"}},
		{"duplicates collapse onto first occurrence", multiMarker("Reader", "Closer", "Reader"), []string{"Reader", "Closer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := declaring(t, pkg, "Proxy", tt.marker)
			req, err := ExtractRequest(decl)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, req.Entries)
		})
	}
}

func TestExtractRequestErrors(t *testing.T) {
	pkg := typecheck(t, proxyFixture)

	tests := []struct {
		name   string
		marker *marker.ParsedMarker
	}{
		{"neither slot set", &marker.ParsedMarker{Directive: marker.DirectiveDelegate}},
		{"both slots set", &marker.ParsedMarker{Directive: marker.DirectiveDelegate, Single: "Reader", SingleSet: true, Multi: []string{"Closer"}, MultiSet: true}},
		{"only sentinels", multiMarker("_")},
		{"sentinel as single", singleMarker("_")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := declaring(t, pkg, "Proxy", tt.marker)
			req, err := ExtractRequest(decl)
			require.Error(t, err)
			assert.Nil(t, req)
			assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode), "got %v", err)
		})
	}
}

func TestImplementedContracts(t *testing.T) {
	pkg := typecheck(t, proxyFixture)

	t.Run("direct embedded interfaces", func(t *testing.T) {
		decl := declaring(t, pkg, "Proxy", singleMarker("Reader"))
		contracts := ImplementedContracts(decl)

		names := make([]string, len(contracts))
		for i, c := range contracts {
			names[i] = c.Name()
		}
		assert.Equal(t, []string{"Reader", "Closer"}, names)
	})

	t.Run("one level of embedded supercontracts", func(t *testing.T) {
		decl := declaring(t, pkg, "DeepProxy", singleMarker("ReadCloser"))
		contracts := ImplementedContracts(decl)

		names := make([]string, len(contracts))
		for i, c := range contracts {
			names[i] = c.Name()
		}
		assert.Equal(t, []string{"ReadCloser", "Reader", "Closer"}, names)
	})
}

func TestResolve(t *testing.T) {
	pkg := typecheck(t, proxyFixture)

	t.Run("single contract", func(t *testing.T) {
		decl := declaring(t, pkg, "Proxy", singleMarker("Reader"))
		req, err := ExtractRequest(decl)
		require.NoError(t, err)

		res, err := Resolve(decl, req)
		require.NoError(t, err)
		require.Len(t, res.Contracts, 1)
		assert.Equal(t, "Reader", res.Contracts[0].First().Name())
		assert.Equal(t, "delegate0", res.Contracts[0].Second())
	})

	t.Run("fields follow request order", func(t *testing.T) {
		decl := declaring(t, pkg, "Proxy", multiMarker("Closer", "Reader"))
		req, err := ExtractRequest(decl)
		require.NoError(t, err)

		res, err := Resolve(decl, req)
		require.NoError(t, err)
		require.Len(t, res.Contracts, 2)
		assert.Equal(t, "Closer", res.Contracts[0].First().Name())
		assert.Equal(t, "delegate0", res.Contracts[0].Second())
		assert.Equal(t, "Reader", res.Contracts[1].First().Name())
		assert.Equal(t, "delegate1", res.Contracts[1].Second())
	})

	t.Run("qualified reference matches by package name", func(t *testing.T) {
		decl := declaring(t, pkg, "Proxy", singleMarker("fixture.Reader"))
		req, err := ExtractRequest(decl)
		require.NoError(t, err)

		res, err := Resolve(decl, req)
		require.NoError(t, err)
		require.Len(t, res.Contracts, 1)
		assert.Equal(t, "Reader", res.Contracts[0].First().Name())
	})

	t.Run("supercontract reachable through embedding", func(t *testing.T) {
		decl := declaring(t, pkg, "DeepProxy", singleMarker("Closer"))
		req, err := ExtractRequest(decl)
		require.NoError(t, err)

		res, err := Resolve(decl, req)
		require.NoError(t, err)
		require.Len(t, res.Contracts, 1)
		assert.Equal(t, "Closer", res.Contracts[0].First().Name())
	})
}

func TestResolveErrors(t *testing.T) {
	pkg := typecheck(t, proxyFixture)

	tests := []struct {
		name   string
		target string
		marker *marker.ParsedMarker
	}{
		{"not implemented", "Proxy", singleMarker("Writer")},
		{"wrong package qualifier", "Proxy", singleMarker("io.Reader")},
		{"partially implemented", "Proxy", multiMarker("Reader", "Writer")},
		{"unknown name", "Proxy", singleMarker("Flusher")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := declaring(t, pkg, tt.target, tt.marker)
			req, err := ExtractRequest(decl)
			require.NoError(t, err)

			res, err := Resolve(decl, req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.HasCode(err, errors.ResolutionErrorCode), "got %v", err)
		})
	}
}

func TestResolveMissingContractBehindAmbiguousMatch(t *testing.T) {
	// The bare "Reader" reference matches both the local Reader and the
	// embedded io.Reader, which would balance the count for the missing
	// Writer if only the totals were compared.
	pkg := typecheck(t, `
package fixture

import "io"

type Reader interface {
	Scan() bool
}

type Wrapped interface {
	io.Reader
}

type Proxy struct {
	Reader
	Wrapped
}
`)

	decl := declaring(t, pkg, "Proxy", multiMarker("Reader", "Writer"))
	req, err := ExtractRequest(decl)
	require.NoError(t, err)

	res, err := Resolve(decl, req)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.HasCode(err, errors.ResolutionErrorCode), "got %v", err)

	var genErr *errors.Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, []string{"Writer"}, genErr.Context()["unmatched"])
}

func TestResolveGenericContract(t *testing.T) {
	pkg := typecheck(t, `
package fixture

type Box[T any] interface {
	Get() T
	Put(v T)
}

type StringBox struct {
	Box[string]
}

type GenericBox[T any] struct {
	Box[T]
}
`)

	t.Run("instantiated contract", func(t *testing.T) {
		decl := declaring(t, pkg, "StringBox", singleMarker("Box"))
		req, err := ExtractRequest(decl)
		require.NoError(t, err)

		res, err := Resolve(decl, req)
		require.NoError(t, err)
		require.Len(t, res.Contracts, 1)

		contract := res.Contracts[0].First()
		assert.Equal(t, "Box", contract.Name())
		assert.Equal(t, "fixture.Box[string]", contract.String())
	})

	t.Run("contract over declaring type parameter", func(t *testing.T) {
		decl := declaring(t, pkg, "GenericBox", singleMarker("Box"))
		req, err := ExtractRequest(decl)
		require.NoError(t, err)

		res, err := Resolve(decl, req)
		require.NoError(t, err)
		require.Len(t, res.Contracts, 1)
		assert.Equal(t, "fixture.Box[T]", res.Contracts[0].First().String())
	})
}
