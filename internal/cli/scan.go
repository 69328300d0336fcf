package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/unfaiyted/godoc-swagger/internal/config"
	"github.com/unfaiyted/godoc-swagger/internal/scanner"
	"github.com/unfaiyted/godoc-swagger/internal/symbols"
)

var quietFlag bool

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the project for annotation blocks and index declarations",
	Long: `Scan walks the project for source files, extracts godoc-style API
annotation blocks, and records every type declaration in the declaration
store so later lookups (resolve, mcp) are fast.

Examples:
  # Scan the current directory
  godoc-swagger scan

  # Scan without progress output
  godoc-swagger scan --quiet

  # Scan another project
  godoc-swagger scan --root /path/to/project`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling scan...")
		cancel()
	}()

	rootDir, err := projectRoot()
	if err != nil {
		return err
	}
	cfg, err := loadProjectConfig(rootDir)
	if err != nil {
		return err
	}

	sc, err := scanner.New(cfg)
	if err != nil {
		return err
	}
	defer sc.Close()

	start := time.Now()
	reporter := newScanProgressReporter(quietFlag)
	files, err := sc.ScanProject(rootDir, cfg.Paths.Code, cfg.Paths.Ignore, reporter.Func())
	reporter.Finish()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	indexed, err := indexDeclarations(ctx, cfg, rootDir)
	if err != nil {
		return err
	}

	if !quietFlag {
		printScanSummary(files, indexed, time.Since(start))
	}
	return nil
}

// indexDeclarations extracts type declarations from every discovered file and
// replaces the stored set. Returns the number of files indexed.
func indexDeclarations(ctx context.Context, cfg *config.Config, rootDir string) (int, error) {
	dbPath, err := declarationsDBPath(cfg, rootDir)
	if err != nil {
		return 0, err
	}
	store, err := symbols.OpenStore(dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	discovery, err := scanner.NewDiscovery(rootDir, cfg.Paths.Code, cfg.Paths.Ignore)
	if err != nil {
		return 0, err
	}
	paths, err := discovery.Discover()
	if err != nil {
		return 0, err
	}

	extractor := symbols.NewExtractor()
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		decls, err := extractor.ExtractFile(path)
		if err != nil {
			log.Printf("Warning: failed to extract declarations from %s: %v", path, err)
			continue
		}
		if err := store.ReplaceFile(ctx, path, decls); err != nil {
			return 0, err
		}
	}

	if _, err := store.RecordScan(ctx, rootDir, len(paths)); err != nil {
		log.Printf("Warning: failed to record scan run: %v", err)
	}
	return len(paths), nil
}

// scanTotals aggregates block, field, and model-reference counts.
type scanTotals struct {
	Files  int
	Blocks int
	Fields int
	Models int
}

func summarize(files []*scanner.FileAnnotations) scanTotals {
	var t scanTotals
	t.Files = len(files)
	for _, fa := range files {
		t.Blocks += len(fa.Blocks)
		for _, b := range fa.Blocks {
			t.Fields += len(b.Fields)
			for _, f := range b.Fields {
				t.Models += len(f.Models)
			}
		}
	}
	return t
}

func printScanSummary(files []*scanner.FileAnnotations, indexed int, took time.Duration) {
	t := summarize(files)
	fmt.Println()
	fmt.Printf("✓ Scan complete in %.1fs\n", took.Seconds())
	fmt.Printf("  Files scanned:     %d\n", t.Files)
	fmt.Printf("  Annotation blocks: %d\n", t.Blocks)
	fmt.Printf("  Fields:            %d\n", t.Fields)
	fmt.Printf("  Model references:  %d\n", t.Models)
	fmt.Printf("  Files indexed:     %d\n", indexed)
}
