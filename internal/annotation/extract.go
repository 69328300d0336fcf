package annotation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// keyword and the rest of the line, e.g. "@Success 200 {object} models.User"
	keywordRe = regexp.MustCompile(`^@(\w+)\s*(.*)$`)

	// "200 {object} models.User" -> status, object kind, value region
	statusObjectRe = regexp.MustCompile(`^(\d+)\s+\{([^}]+)\}\s*(.*)$`)

	// "/users/{id} [get]" -> path, method
	routerRe = regexp.MustCompile(`^(\S+)\s+\[(\w+)\]`)

	// candidate qualified names: word-chars "." word-chars
	modelRe = regexp.MustCompile(`\w+\.\w+`)
)

// tagKeywords are annotation keywords recognized as plain tags: no sub-field
// or model-reference extraction beyond the kind itself.
var tagKeywords = map[string]bool{
	"Summary":     true,
	"Description": true,
	"Tags":        true,
	"Accept":      true,
	"Produce":     true,
}

// Extractor parses annotation lines inside a block into Fields.
type Extractor struct {
	commentToken string
}

// NewExtractor creates an Extractor for the given line-comment token.
func NewExtractor(commentToken string) *Extractor {
	if commentToken == "" {
		commentToken = DefaultCommentToken
	}
	return &Extractor{commentToken: commentToken}
}

// Extract parses every recognized annotation line in the block into a Field.
// Lines matching no recognized keyword are skipped, and a keyword line missing
// an expected capture (e.g. @Success without a status or {object} clause)
// yields no field. Malformed input degrades to fewer fields, never an error.
func (e *Extractor) Extract(block Block, lines []string) []Field {
	fields := []Field{}

	for row := block.StartLine; row <= block.EndLine && row <= len(lines); row++ {
		line := lines[row-1]

		content, ok := e.commentContent(line)
		if !ok {
			continue
		}
		m := keywordRe.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		keyword, rest := m[1], m[2]

		if field, ok := e.parseKeyword(keyword, rest, line, row); ok {
			fields = append(fields, field)
		}
	}

	return fields
}

// parseKeyword builds a Field for one annotation line. The bool result is
// false when the line lacks the captures its keyword requires.
func (e *Extractor) parseKeyword(keyword, rest, line string, row int) (Field, bool) {
	switch keyword {
	case "Success", "Failure":
		m := statusObjectRe.FindStringSubmatch(rest)
		if m == nil {
			return Field{}, false
		}
		status, err := strconv.Atoi(m[1])
		if err != nil {
			return Field{}, false
		}
		kind := KindSuccess
		if keyword == "Failure" {
			kind = KindFailure
		}
		return Field{
			Line:       row,
			Kind:       kind,
			Status:     status,
			ObjectKind: m[2],
			Models:     scanModels(valueRegion(m[3]), line, row, OriginResponse),
		}, true

	case "Param":
		value := valueRegion(rest)
		tokens := strings.Fields(value)
		if len(tokens) < 2 {
			return Field{}, false
		}
		// Model references live in the type portion, after name and location.
		remainder := value
		if idx := strings.Index(value, tokens[1]); idx >= 0 {
			remainder = value[idx+len(tokens[1]):]
		}
		return Field{
			Line:          row,
			Kind:          KindParam,
			ParamName:     tokens[0],
			ParamLocation: tokens[1],
			Models:        scanModels(remainder, line, row, OriginRequest),
		}, true

	case "Router":
		field := Field{Line: row, Kind: KindRouter}
		if m := routerRe.FindStringSubmatch(rest); m != nil {
			field.RouterPath = m[1]
			field.RouterMethod = strings.ToUpper(m[2])
		}
		return field, true

	case "Security":
		field := Field{Line: row, Kind: KindSecurity}
		if tokens := strings.Fields(rest); len(tokens) > 0 {
			field.SecurityScheme = tokens[0]
		}
		return field, true

	default:
		if tagKeywords[keyword] {
			return Field{Line: row, Kind: KindTag}, true
		}
		return Field{}, false
	}
}

// commentContent strips the comment token and surrounding whitespace, returning
// the annotation text. ok is false for non-comment lines.
func (e *Extractor) commentContent(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, e.commentToken) {
		return "", false
	}
	return strings.TrimSpace(trimmed[len(e.commentToken):]), true
}

// valueRegion cuts off a trailing quoted description: the value region runs up
// to, but not including, the first double quote.
func valueRegion(s string) string {
	if idx := strings.Index(s, `"`); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// scanModels finds every package.Type candidate in region and locates each one
// on the full original line. The column span always uses the first textual
// occurrence of the candidate on the line; a qualified name repeated later on
// the same line resolves to its first occurrence.
func scanModels(region, line string, row int, origin Origin) []ModelRef {
	var refs []ModelRef
	seen := map[string]bool{}

	for _, name := range modelRe.FindAllString(region, -1) {
		if seen[name] {
			continue
		}
		seen[name] = true

		col := strings.Index(line, name)
		if col < 0 {
			continue
		}
		refs = append(refs, ModelRef{
			Line:          row,
			ColumnStart:   col,
			ColumnEnd:     col + len(name),
			QualifiedName: name,
			NestingLevel:  nestingLevel(line[:col]),
			Origin:        origin,
		})
	}

	return refs
}

// nestingLevel counts unmatched generic-open brackets in the line prefix:
// open brackets minus close brackets, floored at zero. "Wrapper[Inner[" has
// level 2; "Wrapper[Inner][" has level 1.
func nestingLevel(prefix string) int {
	level := strings.Count(prefix, "[") - strings.Count(prefix, "]")
	if level < 0 {
		level = 0
	}
	return level
}

// Extract runs a default Extractor ("//" comments) over the block.
func Extract(block Block, lines []string) []Field {
	return NewExtractor(DefaultCommentToken).Extract(block, lines)
}
