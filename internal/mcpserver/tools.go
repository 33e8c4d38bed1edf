package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/va2ai/bvaapi2/internal/model"
)

// handleSearch runs a search and returns the response as JSON text.
func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return toolError("invalid_query", "invalid arguments"), nil
	}

	query, _ := args["query"].(string)
	req := model.SearchRequest{
		Query:     query,
		Year:      intArg(args, "year", 0),
		YearStart: intArg(args, "year_start", 0),
		YearEnd:   intArg(args, "year_end", 0),
		MaxPages:  intArg(args, "max_pages", 1),
	}
	if outcome, _ := args["outcome"].(string); outcome != "" {
		req.Filters.Outcome = outcome
	}

	resp, err := s.pipeline.Search(ctx, req)
	if err != nil {
		return s.errorResult("bva_search", err), nil
	}
	return jsonResult(resp)
}

func (s *Server) handleCase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return toolError("invalid_query", "invalid arguments"), nil
	}

	url, _ := args["url"].(string)
	fullText, _ := args["full_text"].(bool)

	rec, err := s.pipeline.Case(ctx, url, fullText, false)
	if err != nil {
		return s.errorResult("bva_case", err), nil
	}
	return jsonResult(rec)
}

func (s *Server) handleCaseText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return toolError("invalid_query", "invalid arguments"), nil
	}

	url, _ := args["url"].(string)
	rec, err := s.pipeline.CaseText(ctx, url)
	if err != nil {
		return s.errorResult("bva_case_text", err), nil
	}
	return mcp.NewToolResultText(rec.FullText), nil
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return toolError("invalid_query", "invalid arguments"), nil
	}

	url, _ := args["url"].(string)
	includeContext, _ := args["include_context"].(bool)

	var keywords []string
	if raw, ok := args["keywords"].([]interface{}); ok {
		for _, v := range raw {
			if kw, ok := v.(string); ok && kw != "" {
				keywords = append(keywords, kw)
			}
		}
	}

	result, err := s.pipeline.Analyze(ctx, url, keywords, includeContext)
	if err != nil {
		return s.errorResult("bva_analyze", err), nil
	}
	return jsonResult(result)
}

// errorResult turns a pipeline error into a tool error result carrying the
// stable code. Tool failures are results, not protocol errors: the client
// model should see and react to them.
func (s *Server) errorResult(tool string, err error) *mcp.CallToolResult {
	code := model.ErrorCode(err)
	s.logger.Debug("tool call failed",
		zap.String("tool", tool),
		zap.String("code", code),
		zap.Error(err))
	return toolError(code, err.Error())
}

func toolError(code, detail string) *mcp.CallToolResult {
	result := mcp.NewToolResultText(fmt.Sprintf(`{"error": %q, "detail": %q}`, code, detail))
	result.IsError = true
	return result
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func intArg(args map[string]interface{}, key string, def int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	if v, ok := args[key].(int); ok {
		return v
	}
	return def
}
