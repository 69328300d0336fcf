package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Extractor:
// - @Success with {object} and model: status, object kind, one response-side ref
// - @Failure behaves like @Success with kind=failure
// - Nested generics: outer ref at level 0, inner at level 1
// - Deeply nested generics count every unmatched open bracket
// - @Param captures name and location, request-side refs from the type token
// - @Param with a plain type yields zero model references
// - @Router captures path and method
// - @Security captures the scheme name
// - @Summary/@Description/@Tags/@Accept/@Produce map to kind=tag
// - Trailing quoted descriptions are excluded from the value region
// - Repeated qualified name on one line resolves to its first occurrence
// - Malformed @Success (no status or no {object}) yields no field
// - Unrecognized keywords are ignored, not an error

func extractSingle(t *testing.T, line string) []Field {
	t.Helper()
	lines := []string{"// Op godoc", line, "func Op() {}"}
	blocks := Segment(lines)
	require.Len(t, blocks, 1)
	return Extract(blocks[0], lines)
}

func TestExtractor_SuccessWithModel(t *testing.T) {
	t.Parallel()

	line := "// @Success 200 {object} models.User"
	fields := extractSingle(t, line)

	require.Len(t, fields, 1)
	f := fields[0]
	assert.Equal(t, KindSuccess, f.Kind)
	assert.Equal(t, 200, f.Status)
	assert.Equal(t, "object", f.ObjectKind)
	assert.Equal(t, 2, f.Line)

	require.Len(t, f.Models, 1)
	ref := f.Models[0]
	assert.Equal(t, "models.User", ref.QualifiedName)
	assert.Equal(t, 0, ref.NestingLevel)
	assert.Equal(t, OriginResponse, ref.Origin)
	assert.Equal(t, ref.QualifiedName, line[ref.ColumnStart:ref.ColumnEnd])
}

func TestExtractor_FailureWithModel(t *testing.T) {
	t.Parallel()

	fields := extractSingle(t, "// @Failure 404 {object} responses.ErrorBody")

	require.Len(t, fields, 1)
	assert.Equal(t, KindFailure, fields[0].Kind)
	assert.Equal(t, 404, fields[0].Status)
	require.Len(t, fields[0].Models, 1)
	assert.Equal(t, OriginResponse, fields[0].Models[0].Origin)
}

func TestExtractor_NestedGeneric(t *testing.T) {
	t.Parallel()

	line := "// @Success 200 {object} responses.APIResponse[models.Item]"
	fields := extractSingle(t, line)

	require.Len(t, fields, 1)
	require.Len(t, fields[0].Models, 2)

	outer := fields[0].Models[0]
	assert.Equal(t, "responses.APIResponse", outer.QualifiedName)
	assert.Equal(t, 0, outer.NestingLevel)

	inner := fields[0].Models[1]
	assert.Equal(t, "models.Item", inner.QualifiedName)
	assert.Equal(t, 1, inner.NestingLevel)
	assert.Equal(t, inner.QualifiedName, line[inner.ColumnStart:inner.ColumnEnd])
}

func TestExtractor_DoublyNestedGeneric(t *testing.T) {
	t.Parallel()

	fields := extractSingle(t, "// @Success 200 {object} resp.Page[resp.Wrapper[models.Leaf]]")

	require.Len(t, fields, 1)
	require.Len(t, fields[0].Models, 3)
	assert.Equal(t, 0, fields[0].Models[0].NestingLevel)
	assert.Equal(t, 1, fields[0].Models[1].NestingLevel)
	assert.Equal(t, 2, fields[0].Models[2].NestingLevel)
}

func TestExtractor_ParamPlainType(t *testing.T) {
	t.Parallel()

	fields := extractSingle(t, `// @Param id path int true "User ID"`)

	require.Len(t, fields, 1)
	f := fields[0]
	assert.Equal(t, KindParam, f.Kind)
	assert.Equal(t, "id", f.ParamName)
	assert.Equal(t, "path", f.ParamLocation)
	assert.Empty(t, f.Models)
}

func TestExtractor_ParamWithModel(t *testing.T) {
	t.Parallel()

	fields := extractSingle(t, `// @Param payload body models.CreateUserRequest true "user payload"`)

	require.Len(t, fields, 1)
	f := fields[0]
	assert.Equal(t, "payload", f.ParamName)
	assert.Equal(t, "body", f.ParamLocation)
	require.Len(t, f.Models, 1)
	assert.Equal(t, "models.CreateUserRequest", f.Models[0].QualifiedName)
	assert.Equal(t, OriginRequest, f.Models[0].Origin)
}

func TestExtractor_Router(t *testing.T) {
	t.Parallel()

	fields := extractSingle(t, "// @Router /users/{id} [get]")

	require.Len(t, fields, 1)
	f := fields[0]
	assert.Equal(t, KindRouter, f.Kind)
	assert.Equal(t, "/users/{id}", f.RouterPath)
	assert.Equal(t, "GET", f.RouterMethod)
	assert.Empty(t, f.Models)
}

func TestExtractor_Security(t *testing.T) {
	t.Parallel()

	fields := extractSingle(t, "// @Security ApiKeyAuth")

	require.Len(t, fields, 1)
	assert.Equal(t, KindSecurity, fields[0].Kind)
	assert.Equal(t, "ApiKeyAuth", fields[0].SecurityScheme)
}

func TestExtractor_TagKeywords(t *testing.T) {
	t.Parallel()

	for _, line := range []string{
		"// @Summary does a thing",
		"// @Description longer text",
		"// @Tags users",
		"// @Accept json",
		"// @Produce json",
	} {
		fields := extractSingle(t, line)
		require.Len(t, fields, 1, "line: %s", line)
		assert.Equal(t, KindTag, fields[0].Kind, "line: %s", line)
		assert.Empty(t, fields[0].Models, "line: %s", line)
	}
}

func TestExtractor_QuotedDescriptionExcluded(t *testing.T) {
	t.Parallel()

	// The description mentions a package.Type-shaped token; it must not be
	// scanned because the value region stops at the opening quote.
	fields := extractSingle(t, `// @Success 200 {object} models.User "see models.Account too"`)

	require.Len(t, fields, 1)
	require.Len(t, fields[0].Models, 1)
	assert.Equal(t, "models.User", fields[0].Models[0].QualifiedName)
}

func TestExtractor_RepeatedNameUsesFirstOccurrence(t *testing.T) {
	t.Parallel()

	line := "// @Success 200 {object} resp.Pair[models.User,models.User]"
	fields := extractSingle(t, line)

	require.Len(t, fields, 1)
	var userRefs []ModelRef
	for _, ref := range fields[0].Models {
		if ref.QualifiedName == "models.User" {
			userRefs = append(userRefs, ref)
		}
	}
	require.Len(t, userRefs, 1)
	assert.Equal(t, userRefs[0].QualifiedName, line[userRefs[0].ColumnStart:userRefs[0].ColumnEnd])
}

func TestExtractor_MalformedSuccessYieldsNoField(t *testing.T) {
	t.Parallel()

	assert.Empty(t, extractSingle(t, "// @Success"))
	assert.Empty(t, extractSingle(t, "// @Success 200"))
	assert.Empty(t, extractSingle(t, "// @Success abc {object} models.User"))
}

func TestExtractor_MalformedParamYieldsNoField(t *testing.T) {
	t.Parallel()

	assert.Empty(t, extractSingle(t, "// @Param"))
	assert.Empty(t, extractSingle(t, "// @Param id"))
}

func TestExtractor_UnrecognizedKeywordIgnored(t *testing.T) {
	t.Parallel()

	lines := []string{
		"// Op godoc",
		"// @Frobnicate all the things",
		"// @Summary still extracted",
		"func Op() {}",
	}
	blocks := Segment(lines)
	require.Len(t, blocks, 1)

	fields := Extract(blocks[0], lines)
	require.Len(t, fields, 1)
	assert.Equal(t, KindTag, fields[0].Kind)
	assert.Equal(t, 3, fields[0].Line)
}

func TestExtractor_MixedBlock(t *testing.T) {
	t.Parallel()

	lines := []string{
		"// CreateUser godoc",
		"// @Summary create a user",
		"// @Param payload body models.CreateUserRequest true \"payload\"",
		"// @Success 201 {object} responses.APIResponse[models.User]",
		"// @Failure 400 {object} responses.ErrorBody",
		"// @Security ApiKeyAuth",
		"// @Router /users [post]",
		"func CreateUser() {}",
	}
	blocks := Segment(lines)
	require.Len(t, blocks, 1)

	fields := Extract(blocks[0], lines)
	require.Len(t, fields, 6)

	kinds := make([]FieldKind, 0, len(fields))
	for _, f := range fields {
		kinds = append(kinds, f.Kind)
	}
	assert.Equal(t, []FieldKind{KindTag, KindParam, KindSuccess, KindFailure, KindSecurity, KindRouter}, kinds)
}
