package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delegen/delegen/internal/emit"
	"github.com/delegen/delegen/internal/errors"
	"github.com/delegen/delegen/internal/toolchain"
)

const proxySource = `package fixture

type Reader interface {
	Read(p []byte) (n int, err error)
}

type Closer interface {
	Close() error
}

//delegen::delegate -Contracts=Reader,Closer
type Proxy struct {
	Reader
	Closer
}
`

// discoverFixture loads a fixture in memory and returns its marked declarations
func discoverFixture(t *testing.T, src string) *toolchain.Toolchain {
	t.Helper()
	tc := toolchain.New()
	require.NoError(t, tc.LoadSource("fixture.go", src))
	return tc
}

func TestGenerator_ProcessDeclaration(t *testing.T) {
	tc := discoverFixture(t, proxySource)
	declarations, err := tc.DiscoverMarked()
	require.NoError(t, err)
	require.Len(t, declarations, 1)

	// Redirect emission into a scratch directory
	outDir := t.TempDir()
	decl := declarations[0]
	decl.Dir = outDir

	generator := NewGenerator(false)
	require.NoError(t, generator.processDeclaration(decl))

	path := filepath.Join(outDir, "autogen_proxy_delegate.go")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "type DelegatedProxy struct {")
	assert.Contains(t, string(content), "func NewDelegatedProxy(delegate0 Reader, delegate1 Closer) *DelegatedProxy {")

	summary := generator.GetSummary()
	assert.Equal(t, 1, summary.TypesGenerated)
	assert.Equal(t, 2, summary.ContractsDelegated)
	assert.Equal(t, 2, summary.OperationsForwarded)
	assert.Equal(t, []string{path}, summary.GeneratedFiles)
}

func TestGenerator_ProcessDeclarationFailures(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.ErrorCode
	}{
		{
			name: "unresolvable contract",
			src: `package fixture

type Reader interface {
	Read(p []byte) (n int, err error)
}

//delegen::delegate -Contract=Writer
type Proxy struct {
	Reader
}
`,
			code: errors.ResolutionErrorCode,
		},
		{
			name: "request of only sentinels",
			src: `package fixture

type Reader interface {
	Read(p []byte) (n int, err error)
}

//delegen::delegate -Contracts=_
type Proxy struct {
	Reader
}
`,
			code: errors.ConfigurationErrorCode,
		},
		{
			name: "colliding contracts",
			src: `package fixture

type Closer interface {
	Close() error
}

type Scanner interface {
	Scan() bool
	Close() error
}

//delegen::delegate -Contracts=Closer,Scanner
type Proxy struct {
	Closer
	Scanner
}
`,
			code: errors.CollisionErrorCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := discoverFixture(t, tt.src)
			declarations, err := tc.DiscoverMarked()
			require.NoError(t, err)
			require.Len(t, declarations, 1)

			decl := declarations[0]
			decl.Dir = t.TempDir()

			generator := NewGenerator(false)
			err = generator.processDeclaration(decl)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)

			// Nothing is written for a failing declaration
			entries, readErr := os.ReadDir(decl.Dir)
			require.NoError(t, readErr)
			assert.Empty(t, entries)
		})
	}
}

func TestGenerator_RunEndToEnd(t *testing.T) {
	moduleDir := t.TempDir()
	writeFile(t, filepath.Join(moduleDir, "go.mod"), "module example.com/fixture\n\ngo 1.21\n")
	writeFile(t, filepath.Join(moduleDir, "proxy.go"), proxySource)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(moduleDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	generator := NewGenerator(false)
	err = generator.Run(Config{Directories: []string{"./..."}})
	require.NoError(t, err)

	generatedPath := filepath.Join(moduleDir, "autogen_proxy_delegate.go")
	content, err := os.ReadFile(generatedPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), emit.Header)
	assert.Contains(t, string(content), "return d.delegate0.Read(p)")

	summary := generator.GetSummary()
	assert.Equal(t, 1, summary.DeclarationsFound)
	assert.Equal(t, 1, summary.TypesGenerated)

	// A second round over the already-generated tree is idempotent
	again := NewGenerator(false)
	require.NoError(t, again.Run(Config{Directories: []string{"./..."}}))
	content2, err := os.ReadFile(generatedPath)
	require.NoError(t, err)
	assert.Equal(t, string(content), string(content2))
}
