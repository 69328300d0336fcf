package symbols

import (
	"os"
	"path/filepath"
)

// Extractor pulls type declarations out of source files, dispatching on file
// extension: Go through the standard parser, everything else through the
// registered tree-sitter grammar.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFile returns every type declaration in the file. Unknown extensions
// yield nil declarations with no error; a file in a known language that fails
// to parse yields whatever was recovered.
func (e *Extractor) ExtractFile(path string) ([]Declaration, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.Extract(path, source)
}

// Extract parses in-memory source for path.
func (e *Extractor) Extract(path string, source []byte) ([]Declaration, error) {
	ext := filepath.Ext(path)

	if ext == ".go" {
		return parseGoFile(path, source)
	}

	if spec, ok := treeSitterLangs[ext]; ok {
		return parseTreeSitterFile(path, source, spec)
	}

	return nil, nil
}

// Supported reports whether declarations can be extracted for the path.
func (e *Extractor) Supported(path string) bool {
	ext := filepath.Ext(path)
	if ext == ".go" {
		return true
	}
	_, ok := treeSitterLangs[ext]
	return ok
}
