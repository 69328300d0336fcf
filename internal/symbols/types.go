// Package symbols locates type declarations across a project and resolves
// qualified names (package.Type) from annotation model references to their
// declaration sites. Resolution runs through a prioritized chain of resolvers
// with a guaranteed plain-text fallback, so a lookup can miss but never lacks
// a resolver to try.
package symbols

import "context"

// Declaration is one type declaration found in a source file.
type Declaration struct {
	Name     string `json:"name"`     // bare type name, e.g. "User"
	Package  string `json:"package"`  // declaring package or module, e.g. "models"
	Kind     string `json:"kind"`     // struct, interface, class, enum, trait, alias
	FilePath string `json:"file_path"`
	Line     int    `json:"line"` // 1-indexed declaration line
	Language string `json:"language"`
}

// QualifiedName returns "package.Name", or just Name when the package is
// unknown.
func (d Declaration) QualifiedName() string {
	if d.Package == "" {
		return d.Name
	}
	return d.Package + "." + d.Name
}

// Location is a declaration site.
type Location struct {
	FilePath string `json:"file_path"`
	Line     int    `json:"line"`
}

// Resolver resolves a qualified name to a declaration location. A nil
// Location with a nil error means "not found here"; callers move on to the
// next resolver. Resolver failures stay inside the chain and never propagate
// to annotation analysis.
type Resolver interface {
	// Name identifies the resolver in configuration ("index", "search", "scan").
	Name() string

	// Resolve looks up a qualified name such as "models.User".
	Resolve(ctx context.Context, qualifiedName string) (*Location, error)
}

// splitQualified breaks "models.User" into ("models", "User"). A bare name
// yields an empty package.
func splitQualified(qualifiedName string) (pkg, name string) {
	for i := len(qualifiedName) - 1; i >= 0; i-- {
		if qualifiedName[i] == '.' {
			return qualifiedName[:i], qualifiedName[i+1:]
		}
	}
	return "", qualifiedName
}
