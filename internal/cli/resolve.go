package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unfaiyted/godoc-swagger/internal/annotation"
	"github.com/unfaiyted/godoc-swagger/internal/config"
	"github.com/unfaiyted/godoc-swagger/internal/scanner"
	"github.com/unfaiyted/godoc-swagger/internal/symbols"
)

var (
	resolveJSONFlag     bool
	resolveDistanceFlag int
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <file> <line> <column>",
	Short: "Resolve the model reference at a position to its declaration",
	Long: `Resolve takes a cursor position inside an annotation block (1-indexed
line, 0-indexed column) and reports the model reference there plus the file
and line where that type is declared.

Examples:
  godoc-swagger resolve api/users.go 10 28
  godoc-swagger resolve api/users.go 10 28 --json`,
	Args: cobra.ExactArgs(3),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveJSONFlag, "json", false, "Print the result as JSON")
	resolveCmd.Flags().IntVar(&resolveDistanceFlag, "max-distance", 0, "Maximum column distance for near-miss resolution (default: configured threshold)")
}

// resolveResult is the resolve command's JSON output.
type resolveResult struct {
	Found    bool                 `json:"found"`
	Model    *annotation.ModelRef `json:"model,omitempty"`
	Location *symbols.Location    `json:"location,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	line, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("line must be an integer: %w", err)
	}
	column, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("column must be an integer: %w", err)
	}

	rootDir, err := projectRoot()
	if err != nil {
		return err
	}
	cfg, err := loadProjectConfig(rootDir)
	if err != nil {
		return err
	}

	file := args[0]
	if !filepath.IsAbs(file) {
		file = filepath.Join(rootDir, file)
	}

	sc, err := scanner.New(cfg)
	if err != nil {
		return err
	}
	defer sc.Close()

	fa, err := sc.ScanFile(file)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", args[0], err)
	}

	maxDistance := resolveDistanceFlag
	if maxDistance <= 0 {
		maxDistance = sc.Proximity()
	}

	result := resolveResult{}
	if fa != nil {
		result.Model = fa.ResolveAt(line, column, maxDistance)
	}

	if result.Model != nil {
		result.Found = true
		chain, cleanup, err := buildResolverChain(ctx, cfg, rootDir)
		if err != nil {
			return err
		}
		defer cleanup()

		result.Location, err = chain.Resolve(ctx, result.Model.QualifiedName)
		if err != nil {
			return fmt.Errorf("declaration lookup failed: %w", err)
		}
	}

	if resolveJSONFlag {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	if !result.Found {
		fmt.Println("No model reference at that position.")
		return nil
	}
	fmt.Printf("%s (nesting %d, %s)\n", result.Model.QualifiedName, result.Model.NestingLevel, result.Model.Origin)
	if result.Location != nil {
		fmt.Printf("  declared at %s:%d\n", result.Location.FilePath, result.Location.Line)
	} else {
		fmt.Println("  declaration not found")
	}
	return nil
}

// buildResolverChain opens the declaration store, builds the in-memory search
// index from it, and assembles the configured resolver chain. The returned
// cleanup closes both backends.
func buildResolverChain(ctx context.Context, cfg *config.Config, rootDir string) (*symbols.Chain, func(), error) {
	dbPath, err := declarationsDBPath(cfg, rootDir)
	if err != nil {
		return nil, nil, err
	}
	store, err := symbols.OpenStore(dbPath)
	if err != nil {
		return nil, nil, err
	}

	decls, err := store.All(ctx)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	index, err := symbols.NewSearchIndex(decls)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to build search index: %w", err)
	}

	files := func() ([]string, error) {
		d, err := scanner.NewDiscovery(rootDir, cfg.Paths.Code, cfg.Paths.Ignore)
		if err != nil {
			return nil, err
		}
		return d.Discover()
	}

	cleanup := func() {
		index.Close()
		store.Close()
	}
	return symbols.NewChain(cfg.Resolver.Order, store, index, files), cleanup, nil
}
