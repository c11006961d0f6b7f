package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/maze-runner/maze/engine"
	"github.com/wricardo/maze-runner/maze/service"
)

const instructions = `Maze Runner - MCP Interface

This is a thin client that proxies all requests to the REST API server.

MAZE FORMAT:
Rows of space-separated tokens. S = start, E = end, O = open, X = wall.
After solving, P marks the cells on the path found from S to E.

AVAILABLE TOOLS:
- create_session: Create a session from a stored maze or from inline rows
- list_sessions: List all active sessions
- get_session: Get session details including the current rows
- delete_session: Delete a session
- solve_maze: Run the depth-first solver on a session
- reset_maze: Clear the path and explored marks
- render_maze: Get the maze text
- list_mazes: List stored mazes
- save_maze: Store a maze under a name
- maze_instructions: Explain the maze format and solver rules`

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Maze Runner",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)

	c.registerTools()
}

func sessionIDSchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Session ID",
			},
		},
		Required: []string{"session_id"},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new maze session from a stored maze (maze_id) or from inline rows",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"maze_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the stored maze (optional, defaults to the server default)",
				},
				"rows": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Maze rows such as \"S O X\" (optional, replaces maze_id)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active maze sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: sessionIDSchema(),
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a session",
		InputSchema: sessionIDSchema(),
	}, c.handleDeleteSession)

	// Maze operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_maze",
		Description: "Solve the session's maze with depth-first search and mark the path",
		InputSchema: sessionIDSchema(),
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_maze",
		Description: "Clear path marks and explored flags on the session's maze",
		InputSchema: sessionIDSchema(),
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "render_maze",
		Description: "Render the session's maze as text",
		InputSchema: sessionIDSchema(),
	}, c.handleRender)

	// Catalog
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_mazes",
		Description: "List stored mazes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMazes)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "save_maze",
		Description: "Store a maze under a name so sessions can be created from it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Maze name (letters, digits, - and _)",
				},
				"rows": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Maze rows",
				},
			},
			Required: []string{"name", "rows"},
		},
	}, c.handleSaveMaze)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "maze_instructions",
		Description: "Explain the maze format and how the solver explores",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleMazeInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall makes an HTTP request to the REST API and decodes the JSON response
func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// apiText makes an HTTP request and returns the raw response body
func (c *Client) apiText(ctx context.Context, method, path string) (string, error) {
	resp, err := c.do(ctx, method, path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, fmt.Errorf("API error: %d", resp.StatusCode)
	}

	return resp, nil
}

func stringArg(request mcp.CallToolRequest, name string) string {
	args, _ := request.Params.Arguments.(map[string]interface{})
	v, _ := args[name].(string)
	return v
}

func rowsArg(request mcp.CallToolRequest, name string) []string {
	args, _ := request.Params.Arguments.(map[string]interface{})
	raw, _ := args[name].([]interface{})
	rows := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			rows = append(rows, s)
		}
	}
	return rows
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]interface{}{}
	if mazeID := stringArg(request, "maze_id"); mazeID != "" {
		body["maze_id"] = mazeID
	}
	if rows := rowsArg(request, "rows"); len(rows) > 0 {
		body["rows"] = rows
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSession(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&b, "- %s (Maze: %s, Status: %s, Created: %s)\n",
			s.ID, s.MazeName, s.Status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request, "session_id")

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSession(&session)), nil
}

func (c *Client) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request, "session_id")

	var response map[string]string
	if err := c.apiCall(ctx, "DELETE", sessionPath(sessionID, ""), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response["message"]), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request, "session_id")

	var result service.SolveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/solve"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request, "session_id")

	var response struct {
		Message string               `json:"message"`
		Session *service.SessionInfo `json:"session"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := response.Message + "\n"
	if response.Session != nil {
		result += "\n" + formatSession(response.Session)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request, "session_id")

	text, err := c.apiText(ctx, "GET", sessionPath(sessionID, "/render"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleListMazes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var mazes []service.MazeInfo
	if err := c.apiCall(ctx, "GET", "/api/mazes", nil, &mazes); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available Mazes (%d):\n\n", len(mazes))
	for _, m := range mazes {
		fmt.Fprintf(&b, "- %s (%dx%d, %d cells)\n", m.MazeID, m.Height, m.Width, m.Cells)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleSaveMaze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := stringArg(request, "name")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	rows := rowsArg(request, "rows")

	var info service.MazeInfo
	body := map[string]interface{}{"rows": rows}
	if err := c.apiCall(ctx, "PUT", "/api/mazes/"+url.PathEscape(name), body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Saved maze %s (%dx%d, %d cells)\n", info.MazeID, info.Height, info.Width, info.Cells)), nil
}

func (c *Client) handleMazeInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(`Maze Runner - Instructions

MAZE FORMAT:
Each line is a row, tokens are separated by single spaces:
  S  start cell (exactly one)
  E  end cell (exactly one)
  O  open cell
  X  wall or missing cell
  P  cell on the solved path (output only)

SOLVER:
Depth-first search from S. Neighbors are tried in the order
East, West, South, North. Cells on the first route found to E are
marked P. Explored dead ends go back to O.

WORKFLOW:
1. list_mazes or prepare your own rows
2. create_session with maze_id or rows
3. solve_maze
4. render_maze to see the marked path
5. reset_maze to start over`), nil
}

// Formatting helpers

func formatSession(s *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", s.ID)
	fmt.Fprintf(&b, "Maze: %s\n", s.MazeName)
	fmt.Fprintf(&b, "Status: %s\n", s.Status)
	fmt.Fprintf(&b, "Cells: %d\n", s.Cells)
	if len(s.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(s.Rows, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func formatSolveResult(r *service.SolveResult) string {
	var b strings.Builder
	if r.Found {
		fmt.Fprintf(&b, "✓ Path found: %d cells, %d explored\n", r.PathLength, r.Explored)
		b.WriteString("Route: ")
		b.WriteString(formatPath(r.Path))
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "✗ No path: %d cells explored\n", r.Explored)
	}
	if r.Message != "" {
		fmt.Fprintf(&b, "%s\n", r.Message)
	}
	if len(r.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(r.Rows, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func formatPath(path []engine.Coordinate) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = c.String()
	}
	return strings.Join(parts, " → ")
}
