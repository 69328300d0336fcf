package symbols

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// SearchIndex is an in-memory full-text index over declarations. It backs the
// "search" resolver, which tolerates partial and loosely qualified names where
// the SQLite index demands exact matches.
type SearchIndex struct {
	index bleve.Index
	mu    sync.RWMutex // Protects index during updates
}

// NewSearchIndex creates the index and loads the given declarations.
func NewSearchIndex(decls []Declaration) (*SearchIndex, error) {
	index, err := bleve.NewMemOnly(buildDeclMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	si := &SearchIndex{index: index}
	if err := si.Update(decls, nil); err != nil {
		index.Close()
		return nil, err
	}
	return si, nil
}

// buildDeclMapping creates the index mapping for declaration documents.
func buildDeclMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	// Name and qualified name are the search targets - standard analyzer
	nameMapping := bleve.NewTextFieldMapping()
	nameMapping.Analyzer = "standard"
	nameMapping.Store = true
	nameMapping.Index = true

	// Package field (filterable) - keyword analyzer for exact matching
	pkgMapping := bleve.NewTextFieldMapping()
	pkgMapping.Analyzer = "keyword"
	pkgMapping.Store = true
	pkgMapping.Index = true

	// File path and line are stored for result reconstruction only
	pathMapping := bleve.NewTextFieldMapping()
	pathMapping.Analyzer = "keyword"
	pathMapping.Store = true
	pathMapping.Index = false

	lineMapping := bleve.NewNumericFieldMapping()
	lineMapping.Store = true
	lineMapping.Index = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", nameMapping)
	docMapping.AddFieldMappingsAt("qualified", nameMapping)
	docMapping.AddFieldMappingsAt("package", pkgMapping)
	docMapping.AddFieldMappingsAt("file_path", pathMapping)
	docMapping.AddFieldMappingsAt("line", lineMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func declToDocument(d Declaration) map[string]interface{} {
	return map[string]interface{}{
		"name":      d.Name,
		"qualified": d.QualifiedName(),
		"package":   d.Package,
		"file_path": d.FilePath,
		"line":      d.Line,
	}
}

func declID(d Declaration) string {
	return fmt.Sprintf("%s:%d:%s", d.FilePath, d.Line, d.Name)
}

// Update indexes added or changed declarations and removes deleted IDs.
// Batched, matching bleve's preferred write path.
func (si *SearchIndex) Update(upserts []Declaration, deletedIDs []string) error {
	batch := si.index.NewBatch()

	for _, id := range deletedIDs {
		batch.Delete(id)
	}
	for _, d := range upserts {
		if err := batch.Index(declID(d), declToDocument(d)); err != nil {
			return fmt.Errorf("failed to index declaration %s: %w", d.QualifiedName(), err)
		}
	}

	si.mu.Lock()
	defer si.mu.Unlock()

	if err := si.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to apply index batch: %w", err)
	}
	return nil
}

// ReplaceFile reindexes one file's declarations, removing whatever was
// previously indexed for that path.
func (si *SearchIndex) ReplaceFile(path string, old, current []Declaration) error {
	deleted := make([]string, 0, len(old))
	for _, d := range old {
		if d.FilePath == path {
			deleted = append(deleted, declID(d))
		}
	}
	return si.Update(current, deleted)
}

// Lookup finds the best-scoring declaration for a qualified name. The bare
// type name must match; a matching package prefix boosts the hit. Not found
// is (nil, nil).
func (si *SearchIndex) Lookup(ctx context.Context, qualifiedName string) (*Location, error) {
	pkg, name := splitQualified(qualifiedName)

	nameQuery := bleve.NewMatchQuery(name)
	nameQuery.SetField("name")

	finalQuery := bleve.NewBooleanQuery()
	finalQuery.AddMust(nameQuery)
	if pkg != "" {
		pkgQuery := bleve.NewMatchQuery(pkg)
		pkgQuery.SetField("package")
		finalQuery.AddShould(pkgQuery)
	}

	searchRequest := bleve.NewSearchRequestOptions(finalQuery, 1, 0, false)
	searchRequest.Fields = []string{"file_path", "line"}

	si.mu.RLock()
	result, err := si.index.SearchInContext(ctx, searchRequest)
	si.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("declaration search failed: %w", err)
	}

	if len(result.Hits) == 0 {
		return nil, nil
	}

	hit := result.Hits[0]
	filePath, _ := hit.Fields["file_path"].(string)
	line, _ := hit.Fields["line"].(float64)
	if filePath == "" {
		return nil, nil
	}
	return &Location{FilePath: filePath, Line: int(line)}, nil
}

// Close releases the index.
func (si *SearchIndex) Close() error {
	si.mu.Lock()
	defer si.mu.Unlock()

	if si.index != nil {
		return si.index.Close()
	}
	return nil
}
