package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unfaiyted/godoc-swagger/internal/refgraph"
	"github.com/unfaiyted/godoc-swagger/internal/scanner"
)

var (
	endpointsModelFlag string
	endpointsJSONFlag  bool
)

// endpointsCmd represents the endpoints command
var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List documented API endpoints and the models they reference",
	Long: `Endpoints scans the project and lists every route documented with an
@Router annotation line, together with the model types its block references.

Examples:
  # All documented endpoints
  godoc-swagger endpoints

  # Only endpoints referencing a model
  godoc-swagger endpoints --model models.User`,
	RunE: runEndpoints,
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
	endpointsCmd.Flags().StringVar(&endpointsModelFlag, "model", "", "Only endpoints referencing this qualified model name")
	endpointsCmd.Flags().BoolVar(&endpointsJSONFlag, "json", false, "Print the result as JSON")
}

func runEndpoints(cmd *cobra.Command, args []string) error {
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

	files, err := sc.ScanProject(rootDir, cfg.Paths.Code, cfg.Paths.Ignore, nil)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	rg, err := refgraph.Build(files)
	if err != nil {
		return fmt.Errorf("failed to build reference graph: %w", err)
	}

	var endpoints []refgraph.Endpoint
	if endpointsModelFlag != "" {
		endpoints, err = rg.EndpointsUsing(endpointsModelFlag)
		if err != nil {
			return err
		}
	} else {
		endpoints = rg.Endpoints()
	}

	if endpointsJSONFlag {
		if endpoints == nil {
			endpoints = []refgraph.Endpoint{}
		}
		return json.NewEncoder(os.Stdout).Encode(endpoints)
	}

	if len(endpoints) == 0 {
		fmt.Println("No documented endpoints found.")
		return nil
	}
	for _, ep := range endpoints {
		fmt.Printf("%-6s %s  (%s:%d)\n", ep.Method, ep.Path, ep.File, ep.Line)
		for _, model := range ep.Models {
			fmt.Printf("       - %s\n", model)
		}
	}
	return nil
}
