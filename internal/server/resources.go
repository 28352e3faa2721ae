package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const usageGuidelines = `# genmap usage

genmap answers questions about GEDCOM family-tree files.

Start by loading a dataset: call load_file with the path to a .ged file, or
run list_gedcom_files to discover candidates in the workspace. Every other
tool works against the loaded dataset and will say so if none is loaded.

Individuals are identified by their GEDCOM xref (I1, I42), families by F
numbers; both forms with and without @ wrappers are accepted. Use
find_person to go from a name to identifiers, then get_person_details or
get_family_tree for full context. get_family_tree expands at most the
requested number of generations in each direction, counting the root's
level as the first.

Dates come back exactly as written in the file (GEDCOM dates are free
text). Statistics cover the whole dataset; lifespan averages use only
individuals whose birth and death years both parse.
`

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "genmap://usage-guidelines",
		Name:        "Usage Guidelines",
		Description: "Usage guidelines for the genmap MCP server",
		MIMEType:    "text/markdown",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      "genmap://usage-guidelines",
					MIMEType: "text/markdown",
					Text:     usageGuidelines,
				},
			},
		}, nil
	})

	// Build a map of tool name -> schema JSON for dynamic dispatch.
	schemaMap := buildSchemaMap()

	// Register a single resource template that matches genmap://schemas/{tool_name}.
	s.mcpServer.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "genmap://schemas/{tool_name}",
		Name:        "Tool Schema",
		Description: "JSON schema for the named tool's arguments",
		MIMEType:    "application/schema+json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := req.Params.URI
		toolName := strings.TrimPrefix(uri, "genmap://schemas/")
		schemaJSON, ok := schemaMap[toolName]
		if !ok {
			return nil, fmt.Errorf("unknown tool schema: %q", toolName)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/schema+json",
					Text:     schemaJSON,
				},
			},
		}, nil
	})
}

// buildSchemaMap constructs a map from tool name to its JSON schema string.
// Schemas are derived from the args structs using jsonschema inference.
func buildSchemaMap() map[string]string {
	m := make(map[string]string)
	addSchema[LoadFileArgs](m, "load_file")
	addSchema[DatasetStatusArgs](m, "dataset_status")
	addSchema[FindPersonArgs](m, "find_person")
	addSchema[PersonDetailsArgs](m, "get_person_details")
	addSchema[FamilyTreeArgs](m, "get_family_tree")
	addSchema[SearchLocationArgs](m, "search_by_location")
	addSchema[StatisticsArgs](m, "get_statistics")
	addSchema[ListFilesArgs](m, "list_gedcom_files")
	return m
}

func addSchema[T any](m map[string]string, name string) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return
	}
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return
	}
	m[name] = string(schemaJSON)
}
