package scanner

import (
	"fmt"
	"os"
	"strings"

	"github.com/maypok86/otter"

	"github.com/unfaiyted/godoc-swagger/internal/annotation"
	"github.com/unfaiyted/godoc-swagger/internal/config"
)

// cacheEntry is a scan result plus the file stamp it was computed from.
// A stale stamp invalidates the entry on the next lookup.
type cacheEntry struct {
	stamp  string
	result *FileAnnotations
}

// Scanner analyzes source files for godoc annotation blocks. Results are
// cached per path and invalidated by file size/mtime changes, so repeated
// scans of an unchanged file are cheap. The underlying analysis is pure, which
// is what makes the cache safe: same lines always produce the same blocks.
type Scanner struct {
	marker    string
	proximity int
	overrides map[string]string
	cache     otter.Cache[string, cacheEntry]
}

// New creates a Scanner from configuration.
func New(cfg *config.Config) (*Scanner, error) {
	entries := cfg.Storage.CacheEntries
	if entries <= 0 {
		entries = 1024
	}

	cache, err := otter.MustBuilder[string, cacheEntry](entries).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scan cache: %w", err)
	}

	return &Scanner{
		marker:    cfg.Annotations.Marker,
		proximity: cfg.Annotations.ProximityThreshold,
		overrides: cfg.Annotations.CommentTokens,
		cache:     cache,
	}, nil
}

// Proximity returns the configured column threshold for position resolution.
func (s *Scanner) Proximity() int {
	return s.proximity
}

// ScanFile reads and analyzes one file, consulting the cache first.
// Files in unknown languages yield a nil result and no error.
func (s *Scanner) ScanFile(path string) (*FileAnnotations, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	stamp := fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano())

	if entry, ok := s.cache.Get(path); ok && entry.stamp == stamp {
		return entry.result, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	result := s.ScanLines(path, strings.Split(string(data), "\n"))
	s.cache.Set(path, cacheEntry{stamp: stamp, result: result})
	return result, nil
}

// ScanLines analyzes an in-memory line snapshot for path. It bypasses the
// cache, which makes it suitable for unsaved editor buffers. A nil result
// means the file's language is unknown.
func (s *Scanner) ScanLines(path string, lines []string) *FileAnnotations {
	lang, token, ok := LanguageFor(path, s.overrides)
	if !ok {
		return nil
	}

	seg := annotation.NewSegmenter(token, s.marker)
	ext := annotation.NewExtractor(token)

	fa := &FileAnnotations{
		Path:     path,
		Language: lang,
		Lines:    len(lines),
		Blocks:   []BlockAnnotations{},
	}
	for _, block := range seg.Segment(lines) {
		fa.Blocks = append(fa.Blocks, BlockAnnotations{
			Block:  block,
			Fields: ext.Extract(block, lines),
		})
	}
	return fa
}

// Invalidate drops the cached result for path.
func (s *Scanner) Invalidate(path string) {
	s.cache.Delete(path)
}

// Close releases the cache.
func (s *Scanner) Close() {
	s.cache.Close()
}

// ProgressFunc reports scan progress: files done so far out of total.
type ProgressFunc func(done, total int)

// ScanProject discovers every matching source file under root and scans each
// one. Files that disappear mid-scan or fail to read are skipped; a best-effort
// sweep matches the tolerant extraction semantics. progress may be nil.
func (s *Scanner) ScanProject(root string, codePatterns, ignorePatterns []string, progress ProgressFunc) ([]*FileAnnotations, error) {
	discovery, err := NewDiscovery(root, codePatterns, ignorePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to compile path patterns: %w", err)
	}

	files, err := discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	results := make([]*FileAnnotations, 0, len(files))
	for i, file := range files {
		fa, err := s.ScanFile(file)
		if err == nil && fa != nil {
			results = append(results, fa)
		}
		if progress != nil {
			progress(i+1, len(files))
		}
	}

	return results, nil
}
