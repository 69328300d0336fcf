package scanner

import "github.com/unfaiyted/godoc-swagger/internal/annotation"

// BlockAnnotations pairs a block's line range with the fields extracted from it.
type BlockAnnotations struct {
	Block  annotation.Block   `json:"block"`
	Fields []annotation.Field `json:"fields"`
}

// FileAnnotations is the complete analysis of one source file.
type FileAnnotations struct {
	Path     string             `json:"path"`
	Language string             `json:"language"`
	Lines    int                `json:"lines"`
	Blocks   []BlockAnnotations `json:"blocks"`
}

// Fields flattens every block's fields, preserving line order.
func (fa *FileAnnotations) AllFields() []annotation.Field {
	var fields []annotation.Field
	for _, b := range fa.Blocks {
		fields = append(fields, b.Fields...)
	}
	return fields
}

// ResolveAt finds the model reference at the given 1-indexed row and 0-indexed
// column, searching only blocks covering that row.
func (fa *FileAnnotations) ResolveAt(row, col, maxDistance int) *annotation.ModelRef {
	for _, b := range fa.Blocks {
		if !b.Block.Contains(row) {
			continue
		}
		if ref := annotation.ResolveAt(b.Fields, row, col, maxDistance); ref != nil {
			return ref
		}
	}
	return nil
}
