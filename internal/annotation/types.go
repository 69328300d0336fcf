// Package annotation finds godoc-style API annotation blocks in source text and
// extracts structured fields from them. All operations are pure functions over an
// immutable line snapshot: same input lines always produce the same blocks and
// fields, and no operation ever fails.
package annotation

// DefaultCommentToken is the line-comment token assumed when none is configured.
const DefaultCommentToken = "//"

// DefaultMarker is the token that identifies a comment line as the start of an
// annotation block (e.g. "// GetUser godoc").
const DefaultMarker = "godoc"

// FieldKind classifies a recognized annotation line.
type FieldKind string

const (
	KindSuccess  FieldKind = "success"
	KindFailure  FieldKind = "failure"
	KindParam    FieldKind = "param"
	KindRouter   FieldKind = "router"
	KindSecurity FieldKind = "security"
	KindTag      FieldKind = "tag"
)

// Origin distinguishes request-side model references (from @Param) from
// response-side ones (from @Success / @Failure).
type Origin string

const (
	OriginRequest  Origin = "request"
	OriginResponse Origin = "response"
)

// Block is a contiguous run of comment lines documenting one API operation.
// StartLine and EndLine are inclusive and 1-indexed. Blocks never overlap and
// are produced in ascending line order.
type Block struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// Contains reports whether the 1-indexed row falls inside the block.
func (b Block) Contains(row int) bool {
	return row >= b.StartLine && row <= b.EndLine
}

// ModelRef is a package.Type token found inside an annotation value region.
// ColumnStart is the 0-indexed byte offset of the first textual occurrence of
// QualifiedName on the line; ColumnEnd is exclusive, so
// line[ColumnStart:ColumnEnd] == QualifiedName.
type ModelRef struct {
	Line          int    `json:"line"`
	ColumnStart   int    `json:"column_start"`
	ColumnEnd     int    `json:"column_end"`
	QualifiedName string `json:"qualified_name"`
	NestingLevel  int    `json:"nesting_level"`
	Origin        Origin `json:"origin"`
}

// Field is one parsed annotation line within a block. Which members are
// populated depends on Kind: Status and ObjectKind for success/failure,
// ParamName and ParamLocation for param, RouterPath and RouterMethod for
// router, SecurityScheme for security.
type Field struct {
	Line           int        `json:"line"`
	Kind           FieldKind  `json:"kind"`
	Status         int        `json:"status,omitempty"`
	ObjectKind     string     `json:"object_kind,omitempty"`
	ParamName      string     `json:"param_name,omitempty"`
	ParamLocation  string     `json:"param_location,omitempty"`
	RouterPath     string     `json:"router_path,omitempty"`
	RouterMethod   string     `json:"router_method,omitempty"`
	SecurityScheme string     `json:"security_scheme,omitempty"`
	Models         []ModelRef `json:"models,omitempty"`
}
