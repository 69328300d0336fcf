package symbols

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for declaration extraction:
// - Go files: structs, interfaces, and other type specs with package prefix
// - Go extraction records accurate 1-indexed lines
// - Python files: classes via tree-sitter, module name from the file stem
// - Unknown extensions yield nil declarations, no error
// - Unparseable Go source returns an error from the standard parser

const fixtureRoot = "../../testdata/project"

func findDecl(decls []Declaration, name string) *Declaration {
	for i := range decls {
		if decls[i].Name == name {
			return &decls[i]
		}
	}
	return nil
}

func TestExtractor_GoDeclarations(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	decls, err := e.ExtractFile(filepath.Join(fixtureRoot, "api", "models", "models.go"))

	require.NoError(t, err)
	require.Len(t, decls, 3)

	user := findDecl(decls, "User")
	require.NotNil(t, user)
	assert.Equal(t, "models", user.Package)
	assert.Equal(t, "struct", user.Kind)
	assert.Equal(t, "models.User", user.QualifiedName())
	assert.Equal(t, 6, user.Line)

	vis := findDecl(decls, "Visibility")
	require.NotNil(t, vis)
	assert.Equal(t, "type", vis.Kind)
}

func TestExtractor_GoInterface(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	decls, err := e.ExtractFile(filepath.Join(fixtureRoot, "api", "responses", "responses.go"))

	require.NoError(t, err)

	sink := findDecl(decls, "Sink")
	require.NotNil(t, sink)
	assert.Equal(t, "interface", sink.Kind)
	assert.Equal(t, "responses", sink.Package)

	wrapper := findDecl(decls, "APIResponse")
	require.NotNil(t, wrapper)
	assert.Equal(t, "struct", wrapper.Kind)
}

func TestExtractor_PythonClass(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	decls, err := e.ExtractFile(filepath.Join(fixtureRoot, "scripts", "tasks.py"))

	require.NoError(t, err)

	runner := findDecl(decls, "TaskRunner")
	require.NotNil(t, runner)
	assert.Equal(t, "class", runner.Kind)
	assert.Equal(t, "tasks", runner.Package)
	assert.Equal(t, "python", runner.Language)
	assert.Equal(t, 10, runner.Line)
}

func TestExtractor_UnknownExtension(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	decls, err := e.Extract("README.md", []byte("# readme"))

	require.NoError(t, err)
	assert.Nil(t, decls)
	assert.False(t, e.Supported("README.md"))
	assert.True(t, e.Supported("main.go"))
}

func TestExtractor_InvalidGoSource(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	_, err := e.Extract("broken.go", []byte("package \n type {"))

	assert.Error(t, err)
}
