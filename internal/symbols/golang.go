package symbols

import (
	"go/ast"
	"go/parser"
	"go/token"
)

// parseGoFile extracts type declarations from a Go source file using the
// standard parser. The declaring package name becomes the qualified-name
// prefix, which is exactly how swag annotations reference Go types.
func parseGoFile(path string, source []byte) ([]Declaration, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, source, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	pkg := ""
	if file.Name != nil {
		pkg = file.Name.Name
	}

	var decls []Declaration
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name == nil {
				continue
			}
			decls = append(decls, Declaration{
				Name:     ts.Name.Name,
				Package:  pkg,
				Kind:     goTypeKind(ts),
				FilePath: path,
				Line:     fset.Position(ts.Pos()).Line,
				Language: "go",
			})
		}
	}

	return decls, nil
}

func goTypeKind(ts *ast.TypeSpec) string {
	switch ts.Type.(type) {
	case *ast.StructType:
		return "struct"
	case *ast.InterfaceType:
		return "interface"
	default:
		if ts.Assign.IsValid() {
			return "alias"
		}
		return "type"
	}
}
