package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Segmenter:
// - Minimal valid block: marker line + one @-line
// - Marker block with no @-line is discarded
// - Segmentation is idempotent (same input, same output)
// - Returned blocks never overlap
// - Block terminates at first non-comment line
// - Free-form comment lines after an @-line are absorbed
// - A fresh marker line after a completed block starts a new block
// - Non-default comment tokens (#) are honored
// - Empty input and comment-free input yield empty results

func TestSegmenter_MinimalValidBlock(t *testing.T) {
	t.Parallel()

	lines := []string{
		"// Foo godoc",
		"// @Summary does a thing",
		"func Foo() {}",
	}

	blocks := Segment(lines)

	require.Len(t, blocks, 1)
	assert.Equal(t, Block{StartLine: 1, EndLine: 2}, blocks[0])
}

func TestSegmenter_DiscardsBlockWithoutAnnotation(t *testing.T) {
	t.Parallel()

	lines := []string{
		"// Foo godoc",
		"// just a comment",
		"func Foo() {}",
	}

	assert.Empty(t, Segment(lines))
}

func TestSegmenter_Idempotent(t *testing.T) {
	t.Parallel()

	lines := []string{
		"package api",
		"",
		"// GetUser godoc",
		"// @Summary fetch a user",
		"// @Router /users/{id} [get]",
		"func GetUser() {}",
	}

	first := Segment(lines)
	second := Segment(lines)

	assert.Equal(t, first, second)
}

func TestSegmenter_BlocksNeverOverlap(t *testing.T) {
	t.Parallel()

	lines := []string{
		"// A godoc",
		"// @Summary a",
		"func A() {}",
		"// B godoc",
		"// @Summary b",
		"// trailing note",
		"func B() {}",
	}

	blocks := Segment(lines)
	require.Len(t, blocks, 2)

	assert.Equal(t, Block{StartLine: 1, EndLine: 2}, blocks[0])
	assert.Equal(t, Block{StartLine: 4, EndLine: 6}, blocks[1])
	assert.Less(t, blocks[0].EndLine, blocks[1].StartLine)
}

func TestSegmenter_AbsorbsFreeFormContinuation(t *testing.T) {
	t.Parallel()

	lines := []string{
		"// List godoc",
		"// @Summary list things",
		"// returns every known thing,",
		"// including archived ones",
		"func List() {}",
	}

	blocks := Segment(lines)

	require.Len(t, blocks, 1)
	assert.Equal(t, Block{StartLine: 1, EndLine: 4}, blocks[0])
}

func TestSegmenter_BlockEndsAtEOF(t *testing.T) {
	t.Parallel()

	lines := []string{
		"// Tail godoc",
		"// @Summary last block in file",
	}

	blocks := Segment(lines)

	require.Len(t, blocks, 1)
	assert.Equal(t, Block{StartLine: 1, EndLine: 2}, blocks[0])
}

func TestSegmenter_MarkerAfterDiscardedBlock(t *testing.T) {
	t.Parallel()

	lines := []string{
		"// Dead godoc",
		"// no annotations here",
		"var x = 1",
		"// Live godoc",
		"// @Summary real block",
		"func Live() {}",
	}

	blocks := Segment(lines)

	require.Len(t, blocks, 1)
	assert.Equal(t, Block{StartLine: 4, EndLine: 5}, blocks[0])
}

func TestSegmenter_HashCommentToken(t *testing.T) {
	t.Parallel()

	seg := NewSegmenter("#", DefaultMarker)
	lines := []string{
		"# get_user godoc",
		"# @Summary fetch a user",
		"def get_user():",
	}

	blocks := seg.Segment(lines)

	require.Len(t, blocks, 1)
	assert.Equal(t, Block{StartLine: 1, EndLine: 2}, blocks[0])
}

func TestSegmenter_EmptyAndCommentFreeInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Segment(nil))
	assert.Empty(t, Segment([]string{}))
	assert.Empty(t, Segment([]string{"package api", "func F() {}"}))
}

func TestSegmenter_IndentedCommentLines(t *testing.T) {
	t.Parallel()

	lines := []string{
		"\t// Inner godoc",
		"\t// @Summary indented block",
		"\tfunc inner() {}",
	}

	blocks := Segment(lines)

	require.Len(t, blocks, 1)
	assert.Equal(t, Block{StartLine: 1, EndLine: 2}, blocks[0])
}
