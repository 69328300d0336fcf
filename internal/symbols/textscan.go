package symbols

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
)

// textScanner is the guaranteed last-resort resolver: a plain text sweep over
// project files looking for a declaration keyword followed by the bare type
// name. It needs no index, no database, and no parser, so it is always
// available even before any scan has run.
type textScanner struct {
	files func() ([]string, error)
}

// newTextScanner creates the scan resolver. files supplies the candidate file
// list on every call, so the scan always sees the current project state.
func newTextScanner(files func() ([]string, error)) *textScanner {
	return &textScanner{files: files}
}

func (t *textScanner) Name() string { return "scan" }

// Resolve sweeps every candidate file line by line and returns the first line
// matching "declaration keyword + identifier" for the bare type name.
func (t *textScanner) Resolve(ctx context.Context, qualifiedName string) (*Location, error) {
	_, name := splitQualified(qualifiedName)
	if name == "" {
		return nil, nil
	}

	pattern, err := regexp.Compile(fmt.Sprintf(`\b(?:type|class|struct|interface|enum|trait|module)\s+%s\b`, regexp.QuoteMeta(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to compile declaration pattern: %w", err)
	}

	files, err := t.files()
	if err != nil {
		return nil, fmt.Errorf("failed to list files for text scan: %w", err)
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		loc, err := scanFileForPattern(file, pattern)
		if err != nil {
			// Unreadable files are skipped; the sweep is best-effort.
			continue
		}
		if loc != nil {
			return loc, nil
		}
	}

	return nil, nil
}

// scanFileForPattern returns the first line in file matching pattern.
func scanFileForPattern(path string, pattern *regexp.Regexp) (*Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if pattern.MatchString(scanner.Text()) {
			return &Location{FilePath: path, Line: line}, nil
		}
	}
	return nil, scanner.Err()
}
