package symbols

import (
	"context"
	"log"
)

// indexResolver resolves through the SQLite declaration store.
type indexResolver struct {
	store *Store
}

func (r *indexResolver) Name() string { return "index" }

func (r *indexResolver) Resolve(ctx context.Context, qualifiedName string) (*Location, error) {
	return r.store.Lookup(ctx, qualifiedName)
}

// searchResolver resolves through the bleve full-text index.
type searchResolver struct {
	index *SearchIndex
}

func (r *searchResolver) Name() string { return "search" }

func (r *searchResolver) Resolve(ctx context.Context, qualifiedName string) (*Location, error) {
	return r.index.Lookup(ctx, qualifiedName)
}

// Chain runs resolvers in a fixed priority order decided once at construction.
// A resolver that errors is logged and skipped rather than failing the lookup;
// the plain-text scan resolver is always appended as the final fallback, so
// the chain is never empty.
type Chain struct {
	resolvers []Resolver
}

// NewChain builds a Chain from the configured order. Unknown names have been
// rejected by config validation; a nil store or search index silently drops
// the corresponding resolver. files feeds the scan fallback.
func NewChain(order []string, store *Store, index *SearchIndex, files func() ([]string, error)) *Chain {
	var resolvers []Resolver
	hasScan := false

	for _, name := range order {
		switch name {
		case "index":
			if store != nil {
				resolvers = append(resolvers, &indexResolver{store: store})
			}
		case "search":
			if index != nil {
				resolvers = append(resolvers, &searchResolver{index: index})
			}
		case "scan":
			resolvers = append(resolvers, newTextScanner(files))
			hasScan = true
		}
	}

	if !hasScan {
		resolvers = append(resolvers, newTextScanner(files))
	}

	return &Chain{resolvers: resolvers}
}

// NewChainFromResolvers builds a Chain over explicit resolvers, in order.
// Intended for tests and embedders supplying their own resolver set; no scan
// fallback is appended.
func NewChainFromResolvers(resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers}
}

// Resolve tries each resolver in priority order and returns the first hit.
// (nil, nil) means no resolver located the name; resolver failures never
// escape the chain.
func (c *Chain) Resolve(ctx context.Context, qualifiedName string) (*Location, error) {
	for _, r := range c.resolvers {
		loc, err := r.Resolve(ctx, qualifiedName)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("symbol resolver %s failed for %s: %v", r.Name(), qualifiedName, err)
			continue
		}
		if loc != nil {
			return loc, nil
		}
	}
	return nil, nil
}

// Order reports the active resolver names, in priority order.
func (c *Chain) Order() []string {
	names := make([]string, 0, len(c.resolvers))
	for _, r := range c.resolvers {
		names = append(names, r.Name())
	}
	return names
}
