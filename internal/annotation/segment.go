package annotation

import (
	"regexp"
	"strings"
)

// Segmenter scans a document's lines for annotation blocks. It is configured
// with the host language's line-comment token and the block-start marker; zero
// configuration is ambient (no globals), so two Segmenters with different
// tokens can run over the same document independently.
type Segmenter struct {
	commentToken string
	marker       string
	annotationRe *regexp.Regexp
}

// NewSegmenter creates a Segmenter for the given line-comment token and marker.
// Empty arguments fall back to DefaultCommentToken and DefaultMarker.
func NewSegmenter(commentToken, marker string) *Segmenter {
	if commentToken == "" {
		commentToken = DefaultCommentToken
	}
	if marker == "" {
		marker = DefaultMarker
	}
	return &Segmenter{
		commentToken: commentToken,
		marker:       marker,
		annotationRe: regexp.MustCompile(`^\s*` + regexp.QuoteMeta(commentToken) + `\s*@\w+`),
	}
}

// Segment returns every qualifying annotation block in the document, in
// ascending line order. A block starts at a comment line containing the marker
// token, absorbs all immediately following comment lines, and is kept only if
// at least one absorbed line is an @-annotation line. Segmentation is a single
// forward pass and never fails; a document with no blocks yields an empty slice.
func (s *Segmenter) Segment(lines []string) []Block {
	blocks := []Block{}

	i := 0
	for i < len(lines) {
		if !s.isMarkerLine(lines[i]) {
			i++
			continue
		}

		start := i
		end := i
		hasAnnotation := false

		j := i + 1
		for j < len(lines) && s.isCommentLine(lines[j]) {
			if s.isAnnotationLine(lines[j]) {
				hasAnnotation = true
			}
			end = j
			j++
		}

		// A marker followed only by plain comment lines never became a real
		// annotation block, so it is discarded.
		if hasAnnotation {
			blocks = append(blocks, Block{StartLine: start + 1, EndLine: end + 1})
		}

		i = j
	}

	return blocks
}

// isCommentLine reports whether the line is a comment line: the comment token
// after optional leading whitespace.
func (s *Segmenter) isCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), s.commentToken)
}

// isMarkerLine reports whether the line is a comment line whose content after
// the comment token contains the marker token.
func (s *Segmenter) isMarkerLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, s.commentToken) {
		return false
	}
	return strings.Contains(trimmed[len(s.commentToken):], s.marker)
}

// isAnnotationLine reports whether the line is "comment token, then @, then
// one or more word characters" (e.g. "// @Summary").
func (s *Segmenter) isAnnotationLine(line string) bool {
	return s.annotationRe.MatchString(line)
}

// Segment runs a default Segmenter ("//" comments, "godoc" marker) over lines.
func Segment(lines []string) []Block {
	return NewSegmenter(DefaultCommentToken, DefaultMarker).Segment(lines)
}
