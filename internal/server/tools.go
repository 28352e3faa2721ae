package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"genmap/internal/query"
	"genmap/internal/workspace"
)

// Arguments structs

type LoadFileArgs struct {
	Path string `json:"path" jsonschema:"required,description:Path to the GEDCOM file to load"`
}

type DatasetStatusArgs struct{}

type FindPersonArgs struct {
	Query string `json:"query" jsonschema:"required,description:Name or name fragment to search for (case-insensitive)"`
}

type PersonDetailsArgs struct {
	PersonID string `json:"person_id" jsonschema:"required,description:Identifier of the individual, e.g. I42 or @I42@"`
}

type FamilyTreeArgs struct {
	PersonID    string `json:"person_id" jsonschema:"required,description:Identifier of the root individual"`
	Generations int    `json:"generations" jsonschema:"description:Generations to expand in each direction, the root's level included; defaults to 3"`
}

type SearchLocationArgs struct {
	Location string `json:"location" jsonschema:"required,description:Place name or fragment to search for (case-insensitive)"`
}

type StatisticsArgs struct{}

type ListFilesArgs struct {
	Root string `json:"root" jsonschema:"description:Directory to scan; defaults to the enclosing git repository root"`
}

const defaultGenerations = 3

const noDatasetMsg = "No dataset loaded. Call load_file with a GEDCOM path first."

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "load_file",
		Description: "Parses a GEDCOM file and makes it the active dataset",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LoadFileArgs) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		if err := s.Load(args.Path); err != nil {
			return errorResult(fmt.Sprintf("Load failed: %v", err)), nil, nil
		}

		engine, _ := s.snapshot()
		summary := engine.Tree().Summary
		msg := fmt.Sprintf("Loaded %d individuals and %d families from %s in %.2fs",
			summary.TotalIndividuals, summary.TotalFamilies, args.Path, time.Since(start).Seconds())
		if summary.SkippedLines > 0 {
			msg += fmt.Sprintf(" (%d malformed lines skipped)", summary.SkippedLines)
		}
		return textResult(msg), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "dataset_status",
		Description: "Reports the active dataset and its parse summary",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DatasetStatusArgs) (*mcp.CallToolResult, any, error) {
		engine, path := s.snapshot()

		result := map[string]any{
			"loaded": engine != nil,
		}
		if engine != nil {
			result["path"] = path
			result["summary"] = engine.Tree().Summary
		}

		jsonBytes, _ := json.MarshalIndent(result, "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_person",
		Description: "Searches individuals by name substring",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FindPersonArgs) (*mcp.CallToolResult, any, error) {
		engine, _ := s.snapshot()
		if engine == nil {
			return errorResult(noDatasetMsg), nil, nil
		}

		matches := engine.FindPerson(args.Query)
		if len(matches) == 0 {
			return textResult("No matching individuals found."), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(matches, "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_person_details",
		Description: "Returns one individual with resolved family context",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PersonDetailsArgs) (*mcp.CallToolResult, any, error) {
		engine, _ := s.snapshot()
		if engine == nil {
			return errorResult(noDatasetMsg), nil, nil
		}

		details, err := engine.PersonDetails(args.PersonID)
		if err != nil {
			if errors.Is(err, query.ErrNotFound) {
				return errorResult(fmt.Sprintf("Person not found: %s", args.PersonID)), nil, nil
			}
			return errorResult(fmt.Sprintf("Query failed: %v", err)), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(details, "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_family_tree",
		Description: "Expands ancestors and descendants of an individual",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FamilyTreeArgs) (*mcp.CallToolResult, any, error) {
		engine, _ := s.snapshot()
		if engine == nil {
			return errorResult(noDatasetMsg), nil, nil
		}

		generations := args.Generations
		if generations == 0 {
			generations = defaultGenerations
		}
		node, err := engine.FamilyTree(args.PersonID, generations)
		if err != nil {
			if errors.Is(err, query.ErrNotFound) {
				return errorResult(fmt.Sprintf("Person not found: %s", args.PersonID)), nil, nil
			}
			return errorResult(fmt.Sprintf("Query failed: %v", err)), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(node, "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_by_location",
		Description: "Finds individuals by birth, death or marriage place",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SearchLocationArgs) (*mcp.CallToolResult, any, error) {
		engine, _ := s.snapshot()
		if engine == nil {
			return errorResult(noDatasetMsg), nil, nil
		}

		matches := engine.SearchByLocation(args.Location)
		if len(matches) == 0 {
			return textResult("No individuals found for that location."), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(matches, "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_statistics",
		Description: "Returns aggregate statistics for the dataset",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args StatisticsArgs) (*mcp.CallToolResult, any, error) {
		engine, _ := s.snapshot()
		if engine == nil {
			return errorResult(noDatasetMsg), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(engine.Statistics(), "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_gedcom_files",
		Description: "Lists GEDCOM files in the workspace with record counts",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListFilesArgs) (*mcp.CallToolResult, any, error) {
		root := args.Root
		if root == "" {
			root = workspace.DefaultRoot()
		}

		files, err := workspace.Scan(root)
		if err != nil {
			return errorResult(fmt.Sprintf("Scan failed: %v", err)), nil, nil
		}
		if len(files) == 0 {
			return textResult(fmt.Sprintf("No GEDCOM files found under %s", root)), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(files, "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})
}
