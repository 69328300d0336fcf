// Package mcp exposes annotation scanning and model navigation over the Model
// Context Protocol, so editors and assistants can query documented endpoints
// and jump from annotation references to declaration sites.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/unfaiyted/godoc-swagger/internal/config"
	"github.com/unfaiyted/godoc-swagger/internal/scanner"
	"github.com/unfaiyted/godoc-swagger/internal/symbols"
	"github.com/unfaiyted/godoc-swagger/internal/watcher"
)

// Server wires the scanner, the declaration store, and the file watcher behind
// an MCP stdio server.
type Server struct {
	cfg       *config.Config
	rootDir   string
	scanner   *scanner.Scanner
	extractor *symbols.Extractor
	store     *symbols.Store
	index     *symbols.SearchIndex
	chain     *symbols.Chain
	watcher   watcher.Watcher
	mcp       *server.MCPServer

	mu    sync.RWMutex
	files []*scanner.FileAnnotations
}

// NewServer builds a server for the project rooted at rootDir: it runs the
// initial scan, indexes declarations, and registers the MCP tools. The watcher
// keeps both current while the server runs.
func NewServer(ctx context.Context, cfg *config.Config, rootDir string) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	sc, err := scanner.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	store, err := symbols.OpenStore(declarationsDBPath(cfg, rootDir))
	if err != nil {
		sc.Close()
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		rootDir:   rootDir,
		scanner:   sc,
		extractor: symbols.NewExtractor(),
		store:     store,
	}

	if err := s.initialScan(ctx); err != nil {
		s.Close()
		return nil, err
	}

	decls, err := store.All(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	index, err := symbols.NewSearchIndex(decls)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}
	s.index = index
	s.chain = symbols.NewChain(cfg.Resolver.Order, store, index, s.discoverFiles)

	w, err := watcher.New(
		[]string{rootDir},
		cfg.GetSourceExtensions(),
		ignoreDirNames(cfg.Paths.Ignore),
		time.Duration(cfg.Watch.DebounceMs)*time.Millisecond,
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	s.watcher = w

	mcpServer := server.NewMCPServer(
		"godoc-swagger-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	AddBlocksTool(mcpServer, s)
	AddResolveTool(mcpServer, s)
	AddEndpointsTool(mcpServer, s)
	s.mcp = mcpServer

	return s, nil
}

// declarationsDBPath picks the SQLite location: the configured cache dir when
// set, otherwise .godoc-swagger under the project root.
func declarationsDBPath(cfg *config.Config, rootDir string) string {
	dir := cfg.Storage.CacheLocation
	if dir == "" {
		dir = filepath.Join(rootDir, ".godoc-swagger")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Warning: failed to create cache directory %s: %v", dir, err)
	}
	return filepath.Join(dir, "declarations.db")
}

// ignoreDirNames derives plain directory names from ignore glob patterns, so
// "node_modules/**" keeps the watcher out of node_modules.
func ignoreDirNames(patterns []string) []string {
	names := []string{".godoc-swagger", ".git"}
	for _, p := range patterns {
		name := strings.TrimSuffix(p, "/**")
		if name != p && !strings.ContainsAny(name, "*?[]/") {
			names = append(names, name)
		}
	}
	return names
}

// initialScan scans the whole project and records every file's declarations.
func (s *Server) initialScan(ctx context.Context) error {
	files, err := s.scanner.ScanProject(s.rootDir, s.cfg.Paths.Code, s.cfg.Paths.Ignore, nil)
	if err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}

	s.mu.Lock()
	s.files = files
	s.mu.Unlock()

	paths, err := s.discoverFiles()
	if err != nil {
		return err
	}
	for _, path := range paths {
		decls, err := s.extractor.ExtractFile(path)
		if err != nil {
			log.Printf("Warning: failed to extract declarations from %s: %v", path, err)
			continue
		}
		if err := s.store.ReplaceFile(ctx, path, decls); err != nil {
			return err
		}
	}

	if _, err := s.store.RecordScan(ctx, s.rootDir, len(paths)); err != nil {
		log.Printf("Warning: failed to record scan run: %v", err)
	}
	return nil
}

// discoverFiles lists the project's source files per the configured patterns.
func (s *Server) discoverFiles() ([]string, error) {
	d, err := scanner.NewDiscovery(s.rootDir, s.cfg.Paths.Code, s.cfg.Paths.Ignore)
	if err != nil {
		return nil, err
	}
	return d.Discover()
}

// handleChanges refreshes the scan snapshot and the declaration indexes after
// a debounced batch of file edits.
func (s *Server) handleChanges(changed []string) {
	ctx := context.Background()

	for _, path := range changed {
		s.scanner.Invalidate(path)

		old, err := s.store.FileDeclarations(ctx, path)
		if err != nil {
			log.Printf("Warning: failed to read stored declarations for %s: %v", path, err)
			continue
		}

		var current []symbols.Declaration
		if _, statErr := os.Stat(path); statErr == nil {
			current, err = s.extractor.ExtractFile(path)
			if err != nil {
				log.Printf("Warning: failed to extract declarations from %s: %v", path, err)
				continue
			}
			err = s.store.ReplaceFile(ctx, path, current)
		} else {
			err = s.store.DeleteFile(ctx, path)
		}
		if err != nil {
			log.Printf("Warning: failed to update declaration store for %s: %v", path, err)
			continue
		}

		if err := s.index.ReplaceFile(path, old, current); err != nil {
			log.Printf("Warning: failed to update search index for %s: %v", path, err)
		}
	}

	files, err := s.scanner.ScanProject(s.rootDir, s.cfg.Paths.Code, s.cfg.Paths.Ignore, nil)
	if err != nil {
		log.Printf("Warning: rescan after change failed: %v", err)
		return
	}

	s.mu.Lock()
	s.files = files
	s.mu.Unlock()
}

// snapshot returns the current scan results.
func (s *Server) snapshot() []*scanner.FileAnnotations {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files
}

// Serve starts the file watcher and the MCP stdio server, blocking until a
// shutdown signal or a server error.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.watcher.Start(ctx, s.handleChanges); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer s.watcher.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *Server) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.scanner != nil {
		s.scanner.Close()
	}
	if s.index != nil {
		s.index.Close()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
