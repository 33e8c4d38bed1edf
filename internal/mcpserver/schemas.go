package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func searchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "bva_search",
		Description: "Search Board of Veterans' Appeals decisions. Supports AND/OR/NOT operators and quoted phrases.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query, e.g. 'PTSD AND combat NOT TBI'",
				},
				"year": map[string]interface{}{
					"type":        "integer",
					"description": "Restrict results to a single decision year",
				},
				"year_start": map[string]interface{}{
					"type":        "integer",
					"description": "First year of an inclusive range (requires year_end)",
				},
				"year_end": map[string]interface{}{
					"type":        "integer",
					"description": "Last year of an inclusive range (requires year_start)",
				},
				"max_pages": map[string]interface{}{
					"type":        "integer",
					"description": "Result pages to walk per year",
					"default":     1,
					"minimum":     1,
				},
				"outcome": map[string]interface{}{
					"type":        "string",
					"description": "Filter by decision outcome",
					"enum":        []string{"Granted", "Denied", "Remanded", "Mixed", "Unknown"},
				},
			},
			Required: []string{"query"},
		},
	}
}

func caseTool() mcp.Tool {
	return mcp.Tool{
		Name:        "bva_case",
		Description: "Fetch one decision document and return its structured record (outcome, judge, issues, citations).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Decision document URL from a bva_search result",
				},
				"full_text": map[string]interface{}{
					"type":        "boolean",
					"description": "Include the complete document text instead of a preview",
					"default":     false,
				},
			},
			Required: []string{"url"},
		},
	}
}

func caseTextTool() mcp.Tool {
	return mcp.Tool{
		Name:        "bva_case_text",
		Description: "Fetch the raw text of one decision document.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Decision document URL",
				},
			},
			Required: []string{"url"},
		},
	}
}

func analyzeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "bva_analyze",
		Description: "Analyze a decision document: keyword counts, VA term census, readability grade.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Decision document URL",
				},
				"keywords": map[string]interface{}{
					"type":        "array",
					"description": "Keywords to count in the document",
					"items":       map[string]interface{}{"type": "string"},
				},
				"include_context": map[string]interface{}{
					"type":        "boolean",
					"description": "Capture surrounding text for each keyword occurrence",
					"default":     false,
				},
			},
			Required: []string{"url"},
		},
	}
}
