package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pagewise/internal/flow"
	"pagewise/internal/middleware"
)

const (
	serverName    = "pagewise"
	serverVersion = "1.0.0"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, op flow.Operation, uid string, p flow.Payload) (any, error)
}

// Handler exposes the flows as MCP tools. The caller identity always comes
// from the authenticated request, never from tool arguments.
type Handler struct {
	dispatcher Dispatcher
}

func NewHandler(d Dispatcher) *Handler {
	return &Handler{dispatcher: d}
}

func (h *Handler) Server() *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(true))

	s.AddTool(mcp.NewTool("summarize_page",
		mcp.WithDescription("Summarize one of your pages in 2-4 sentences."),
		mcp.WithString("page_id", mcp.Required(), mcp.Description("ID of the page to summarize")),
	), h.summarize)

	s.AddTool(mcp.NewTool("ask",
		mcp.WithDescription("Answer a question using all of your pages and notes."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The question to answer")),
	), h.ask)

	s.AddTool(mcp.NewTool("compose",
		mcp.WithDescription("Write new content from your pages and notes. Without page_id a title is generated for a new page."),
		mcp.WithString("question", mcp.Required(), mcp.Description("What the content should cover")),
		mcp.WithString("page_id", mcp.Description("Existing page the content will be added to")),
	), h.compose)

	s.AddTool(mcp.NewTool("edit_page",
		mcp.WithDescription("Rewrite one of your pages. Returns the full replacement content."),
		mcp.WithString("page_id", mcp.Required(), mcp.Description("ID of the page to edit")),
		mcp.WithString("question", mcp.Required(), mcp.Description("The change to make")),
	), h.edit)

	return s
}

// HTTPHandler serves the MCP server over streamable HTTP at endpoint.
func (h *Handler) HTTPHandler(endpoint string) http.Handler {
	return server.NewStreamableHTTPServer(
		h.Server(),
		server.WithEndpointPath(endpoint),
		server.WithHTTPContextFunc(requestIdentity),
	)
}

// requestIdentity carries the authenticated user and correlation id of the
// HTTP request into the tool call context.
func requestIdentity(ctx context.Context, r *http.Request) context.Context {
	ctx = middleware.WithUserID(ctx, middleware.UserID(r.Context()))
	return middleware.WithCorrelationID(ctx, middleware.GetCorrelationID(r.Context()))
}

func (h *Handler) summarize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.call(ctx, flow.OpSummarize, flow.Payload{PageID: req.GetString("page_id", "")})
}

func (h *Handler) ask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.call(ctx, flow.OpAsk, flow.Payload{Question: req.GetString("question", "")})
}

func (h *Handler) compose(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.call(ctx, flow.OpCompose, flow.Payload{
		Question: req.GetString("question", ""),
		PageID:   req.GetString("page_id", ""),
	})
}

func (h *Handler) edit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.call(ctx, flow.OpEdit, flow.Payload{
		Question: req.GetString("question", ""),
		PageID:   req.GetString("page_id", ""),
	})
}

func (h *Handler) call(ctx context.Context, op flow.Operation, p flow.Payload) (*mcp.CallToolResult, error) {
	uid := middleware.UserID(ctx)
	if uid == "" {
		return mcp.NewToolResultError("unauthenticated"), nil
	}

	out, err := h.dispatcher.Dispatch(ctx, op, uid, p)
	if err != nil {
		body, _ := json.Marshal(flow.Public(err))
		return mcp.NewToolResultError(string(body)), nil
	}

	body, err := json.Marshal(out)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode tool result", "operation", op, "error", err)
		return nil, err
	}
	return mcp.NewToolResultText(string(body)), nil
}
