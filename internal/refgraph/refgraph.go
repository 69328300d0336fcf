// Package refgraph builds a directed graph from documented API endpoints to
// the model types their annotation blocks reference. It answers the two
// navigation questions the annotation data alone makes awkward: which models
// does this endpoint touch, and which endpoints touch this model.
package refgraph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/unfaiyted/godoc-swagger/internal/annotation"
	"github.com/unfaiyted/godoc-swagger/internal/scanner"
)

// Endpoint is one documented route with the models its block references.
type Endpoint struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	File   string   `json:"file"`
	Line   int      `json:"line"`
	Models []string `json:"models"`
}

// ID returns the endpoint's vertex identity, e.g. "GET /users/{id}".
func (e Endpoint) ID() string {
	return e.Method + " " + e.Path
}

// Graph is the endpoint-to-model reference graph.
type Graph struct {
	g         graph.Graph[string, string]
	endpoints map[string]Endpoint
}

// Build constructs the graph from scanned files. Blocks without an @Router
// line document no reachable endpoint and are skipped.
func Build(files []*scanner.FileAnnotations) (*Graph, error) {
	g := graph.New(graph.StringHash, graph.Directed())
	endpoints := map[string]Endpoint{}

	for _, fa := range files {
		for _, block := range fa.Blocks {
			ep, models := endpointOf(fa, block)
			if ep == nil {
				continue
			}
			ep.Models = models
			endpoints[ep.ID()] = *ep

			if err := addVertex(g, ep.ID()); err != nil {
				return nil, err
			}
			for _, model := range models {
				if err := addVertex(g, model); err != nil {
					return nil, err
				}
				if err := g.AddEdge(ep.ID(), model); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
					return nil, fmt.Errorf("failed to add reference edge: %w", err)
				}
			}
		}
	}

	return &Graph{g: g, endpoints: endpoints}, nil
}

// endpointOf finds the block's router field and collects its model names.
func endpointOf(fa *scanner.FileAnnotations, block scanner.BlockAnnotations) (*Endpoint, []string) {
	var ep *Endpoint
	seen := map[string]bool{}
	var models []string

	for _, f := range block.Fields {
		if f.Kind == annotation.KindRouter && f.RouterPath != "" && ep == nil {
			ep = &Endpoint{
				Method: f.RouterMethod,
				Path:   f.RouterPath,
				File:   fa.Path,
				Line:   f.Line,
			}
		}
		for _, ref := range f.Models {
			if !seen[ref.QualifiedName] {
				seen[ref.QualifiedName] = true
				models = append(models, ref.QualifiedName)
			}
		}
	}

	return ep, models
}

func addVertex(g graph.Graph[string, string], id string) error {
	if err := g.AddVertex(id); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return fmt.Errorf("failed to add vertex %s: %w", id, err)
	}
	return nil
}

// Endpoints returns every documented endpoint, ordered by path then method.
func (rg *Graph) Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(rg.endpoints))
	for _, ep := range rg.endpoints {
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// ModelsFor returns the model names referenced by an endpoint ID, sorted.
func (rg *Graph) ModelsFor(endpointID string) ([]string, error) {
	adj, err := rg.g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("failed to read adjacency map: %w", err)
	}

	edges, ok := adj[endpointID]
	if !ok {
		return nil, nil
	}

	models := make([]string, 0, len(edges))
	for model := range edges {
		models = append(models, model)
	}
	sort.Strings(models)
	return models, nil
}

// EndpointsUsing returns the endpoints referencing a model name, sorted by ID.
func (rg *Graph) EndpointsUsing(model string) ([]Endpoint, error) {
	pred, err := rg.g.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("failed to read predecessor map: %w", err)
	}

	edges, ok := pred[model]
	if !ok {
		return nil, nil
	}

	ids := make([]string, 0, len(edges))
	for id := range edges {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	endpoints := make([]Endpoint, 0, len(ids))
	for _, id := range ids {
		if ep, ok := rg.endpoints[id]; ok {
			endpoints = append(endpoints, ep)
		}
	}
	return endpoints, nil
}

// Size reports vertex and edge counts.
func (rg *Graph) Size() (vertices, edges int, err error) {
	vertices, err = rg.g.Order()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count vertices: %w", err)
	}
	edges, err = rg.g.Size()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count edges: %w", err)
	}
	return vertices, edges, nil
}
