// Package mcptools exposes the LinkedIn flows as MCP tools. Every flow
// error is converted into an error-flagged tool result here; nothing
// propagates to the protocol layer as a transport failure.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/talentloop/linkscout/pkg/linkedin"
)

// LoginInput defines input for the login tool.
type LoginInput struct {
	Email    string `json:"email,omitempty" jsonschema:"LinkedIn account email. Falls back to the LINKEDIN_EMAIL environment variable when omitted."`
	Password string `json:"password,omitempty" jsonschema:"LinkedIn account password. Falls back the LINKEDIN_PASSWORD environment variable when omitted."`
}

// StatusInput defines input for the check_login_status tool.
type StatusInput struct{}

// ScrapePostsInput defines input for the scrape_posts tool.
type ScrapePostsInput struct {
	ProfileIDs []string `json:"profile_ids" jsonschema:"required,List of LinkedIn profile IDs to scrape."`
	MaxPosts   int      `json:"max_posts,omitempty" jsonschema:"Maximum number of posts to scrape per profile (default 5)."`
}

// ConnectInput defines input for the send_connection_requests tool.
type ConnectInput struct {
	SearchQuery    string `json:"search_query" jsonschema:"required,People-search query to find profiles."`
	MaxConnections int    `json:"max_connections" jsonschema:"required,Maximum number of connection requests to send."`
	CustomNote     string `json:"custom_note,omitempty" jsonschema:"Optional note template. May reference {name}, {title}, and {location}."`
}

// RegisterAll registers every linkscout tool on the MCP server.
func RegisterAll(server *mcp.Server, flows *linkedin.Flows) {
	registerLoginTool(server, flows)
	registerStatusTool(server, flows)
	registerScrapePostsTool(server, flows)
	registerConnectTool(server, flows)
}

func registerLoginTool(server *mcp.Server, flows *linkedin.Flows) {
	mcp.AddTool(server, &mcp.Tool{
		Name:  "login",
		Title: "LinkedIn Login",
		Description: "Log in to LinkedIn with the given credentials. " +
			"Omitted fields fall back to the LINKEDIN_EMAIL and LINKEDIN_PASSWORD environment variables. " +
			"The browser session stays open across calls.",
	}, loginHandler(flows))
}

func loginHandler(flows *linkedin.Flows) func(ctx context.Context, req *mcp.CallToolRequest, input LoginInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input LoginInput) (*mcp.CallToolResult, any, error) {
		result := flows.Login(ctx, input.Email, input.Password)
		return jsonResult(result, !result.Success), nil, nil
	}
}

func registerStatusTool(server *mcp.Server, flows *linkedin.Flows) {
	mcp.AddTool(server, &mcp.Tool{
		Name:  "check_login_status",
		Title: "Check Login Status",
		Description: "Check whether the browser session currently holds an authenticated LinkedIn login. " +
			"Creates the session if none exists yet.",
	}, statusHandler(flows))
}

func statusHandler(flows *linkedin.Flows) func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, any, error) {
		status, err := flows.CheckStatus(ctx)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(status, false), nil, nil
	}
}

func registerScrapePostsTool(server *mcp.Server, flows *linkedin.Flows) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scrape_posts",
		Title:       "Scrape LinkedIn Posts",
		Description: "Scrape recent activity posts from the given LinkedIn profiles. Logs in automatically when the session is not authenticated.",
	}, scrapePostsHandler(flows))
}

func scrapePostsHandler(flows *linkedin.Flows) func(ctx context.Context, req *mcp.CallToolRequest, input ScrapePostsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ScrapePostsInput) (*mcp.CallToolResult, any, error) {
		posts, err := flows.ScrapePosts(ctx, input.ProfileIDs, input.MaxPosts)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(map[string]any{
			"success": true,
			"posts":   posts,
		}, false), nil, nil
	}
}

func registerConnectTool(server *mcp.Server, flows *linkedin.Flows) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_connection_requests",
		Title:       "Send Connection Requests",
		Description: "Search LinkedIn people matching a query and send connection requests, optionally with a templated note.",
	}, connectHandler(flows))
}

func connectHandler(flows *linkedin.Flows) func(ctx context.Context, req *mcp.CallToolRequest, input ConnectInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ConnectInput) (*mcp.CallToolResult, any, error) {
		results, err := flows.SendConnectionRequests(ctx, input.SearchQuery, input.MaxConnections, input.CustomNote)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(map[string]any{
			"success": true,
			"results": results,
		}, false), nil, nil
	}
}

// jsonResult renders v as pretty JSON tool content.
func jsonResult(v any, isError bool) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("failed to encode result: %w", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
		IsError: isError,
	}
}

// errorResult converts a flow error into error-flagged tool content.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}
