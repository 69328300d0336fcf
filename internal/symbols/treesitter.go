package symbols

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// langSpec describes how to extract type declarations from one tree-sitter
// grammar: which node kinds declare a type, and what to call each.
type langSpec struct {
	name      string
	language  *sitter.Language
	declKinds map[string]string // node kind -> declaration kind label
}

var treeSitterLangs = map[string]*langSpec{}

func registerLang(spec *langSpec, exts ...string) {
	for _, ext := range exts {
		treeSitterLangs[ext] = spec
	}
}

func init() {
	registerLang(&langSpec{
		name:     "python",
		language: sitter.NewLanguage(python.Language()),
		declKinds: map[string]string{
			"class_definition": "class",
		},
	}, ".py")

	registerLang(&langSpec{
		name:     "ruby",
		language: sitter.NewLanguage(ruby.Language()),
		declKinds: map[string]string{
			"class":  "class",
			"module": "module",
		},
	}, ".rb")

	registerLang(&langSpec{
		name:     "java",
		language: sitter.NewLanguage(java.Language()),
		declKinds: map[string]string{
			"class_declaration":     "class",
			"interface_declaration": "interface",
			"enum_declaration":      "enum",
			"record_declaration":    "record",
		},
	}, ".java")

	registerLang(&langSpec{
		name:     "rust",
		language: sitter.NewLanguage(rust.Language()),
		declKinds: map[string]string{
			"struct_item": "struct",
			"enum_item":   "enum",
			"trait_item":  "trait",
			"type_item":   "alias",
		},
	}, ".rs")

	registerLang(&langSpec{
		name:     "c",
		language: sitter.NewLanguage(c.Language()),
		declKinds: map[string]string{
			"struct_specifier": "struct",
			"enum_specifier":   "enum",
			"union_specifier":  "union",
		},
	}, ".c", ".h")

	registerLang(&langSpec{
		name:     "php",
		language: sitter.NewLanguage(php.LanguagePHP()),
		declKinds: map[string]string{
			"class_declaration":     "class",
			"interface_declaration": "interface",
			"enum_declaration":      "enum",
			"trait_declaration":     "trait",
		},
	}, ".php")

	registerLang(&langSpec{
		name:     "typescript",
		language: sitter.NewLanguage(typescript.LanguageTypescript()),
		declKinds: map[string]string{
			"class_declaration":          "class",
			"abstract_class_declaration": "class",
			"interface_declaration":      "interface",
			"enum_declaration":           "enum",
			"type_alias_declaration":     "alias",
		},
	}, ".ts", ".tsx", ".js", ".jsx")
}

// parseTreeSitterFile extracts type declarations using the grammar registered
// for the file's extension. The file stem serves as the package/module prefix,
// matching how annotations in those ecosystems qualify type names
// (e.g. "schemas.Task" for a Task class in schemas.py).
func parseTreeSitterFile(path string, source []byte, spec *langSpec) ([]Declaration, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(spec.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, nil // Unparseable files yield no declarations
	}
	defer tree.Close()

	module := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var decls []Declaration
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		kind, ok := spec.declKinds[n.Kind()]
		if !ok {
			return true
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return true
		}
		decls = append(decls, Declaration{
			Name:     extractNodeText(nameNode, source),
			Package:  module,
			Kind:     kind,
			FilePath: path,
			Line:     int(n.StartPosition().Row) + 1,
			Language: spec.name,
		})
		return true
	})

	return decls, nil
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}
