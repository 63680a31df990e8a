package resolver

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delegen/delegen/internal/models"
)

// contractOf looks up a named interface of the fixture package
func contractOf(t *testing.T, pkg *types.Package, name string) models.ContractRef {
	t.Helper()

	obj := pkg.Scope().Lookup(name)
	require.NotNil(t, obj, "fixture interface %s not found", name)
	named := obj.Type().(*types.Named)
	return models.ContractRef{Type: named, Named: named.Origin()}
}

func opNames(ops []models.Operation) []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

func TestCollectOperations(t *testing.T) {
	pkg := typecheck(t, `
package fixture

type Reader interface {
	Read(p []byte) (n int, err error)
}

type Closer interface {
	Close() error
}

type ReadCloser interface {
	Reader
	Closer
}

type Seeker interface {
	Seek(offset int64, whence int) (int64, error)
	ReadCloser
}

type Overlapping interface {
	Reader
	ReadCloser
}

type Logger interface {
	Logf(format string, args ...int)
	Flush()
}
`)

	t.Run("flat interface", func(t *testing.T) {
		ops, err := CollectOperations(contractOf(t, pkg, "Reader"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Read"}, opNames(ops))
	})

	t.Run("embedded closure sorted by name", func(t *testing.T) {
		ops, err := CollectOperations(contractOf(t, pkg, "Seeker"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Close", "Read", "Seek"}, opNames(ops))
	})

	t.Run("overlapping embeds deduplicate", func(t *testing.T) {
		ops, err := CollectOperations(contractOf(t, pkg, "Overlapping"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Close", "Read"}, opNames(ops))
	})

	t.Run("signature details survive collection", func(t *testing.T) {
		ops, err := CollectOperations(contractOf(t, pkg, "Logger"))
		require.NoError(t, err)
		require.Len(t, ops, 2)

		assert.Equal(t, "Flush", ops[0].Name)
		assert.True(t, ops[0].IsVoid())
		assert.Empty(t, ops[0].Params)

		logf := ops[1]
		assert.Equal(t, "Logf", logf.Name)
		assert.True(t, logf.Variadic)
		require.Len(t, logf.Params, 2)
		assert.Equal(t, "format", logf.Params[0].Name)
		assert.Equal(t, "args", logf.Params[1].Name)
		assert.True(t, logf.IsVoid())
	})
}

func TestCollectOperationsGenericSubstitution(t *testing.T) {
	pkg := typecheck(t, `
package fixture

type Box[T any] interface {
	Get() T
	Put(v T)
}

type StringBox struct {
	Box[string]
}
`)

	decl := declaring(t, pkg, "StringBox", singleMarker("Box"))
	res, err := Resolve(decl, &models.DelegationRequest{Entries: []string{"Box"}})
	require.NoError(t, err)

	ops, err := CollectOperations(res.Contracts[0].First())
	require.NoError(t, err)
	require.Len(t, ops, 2)

	// Type arguments are substituted into the collected signatures
	get := ops[0]
	assert.Equal(t, "Get", get.Name)
	require.Len(t, get.Results, 1)
	assert.Equal(t, "string", get.Results[0].String())

	put := ops[1]
	assert.Equal(t, "Put", put.Name)
	require.Len(t, put.Params, 1)
	assert.Equal(t, "string", put.Params[0].Type.String())
}
