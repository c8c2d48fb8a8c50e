// Package mcp exposes the intake core as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/internal/service/intake"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type Chatter interface {
	Chat(ctx context.Context, message string, history []core.Message) (intake.Result, error)
}

type Server struct {
	chat      Chatter
	extractor intake.Extractor
	sender    core.FlyerSender
	catalog   *core.Catalog
	mcp       *server.MCPServer
}

func NewServer(chat Chatter, extractor intake.Extractor, sender core.FlyerSender, catalog *core.Catalog) *Server {
	s := &Server{
		chat:      chat,
		extractor: extractor,
		sender:    sender,
		catalog:   catalog,
		mcp: server.NewMCPServer(
			core.AppName,
			core.AppVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	turns := mcpproto.Items(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"role":    map[string]any{"type": "string", "enum": []string{core.RoleUser, core.RoleAssistant}},
			"content": map[string]any{"type": "string"},
		},
		"required": []string{"role", "content"},
	})

	s.mcp.AddTool(mcpproto.NewTool("chat",
		mcpproto.WithDescription("Run one intake exchange and return the assistant reply."),
		mcpproto.WithString("message", mcpproto.Required(), mcpproto.Description("The visitor's message")),
		mcpproto.WithArray("history", turns, mcpproto.Description("Earlier turns, oldest first")),
	), s.handleChat)

	s.mcp.AddTool(mcpproto.NewTool("extract_customer_data",
		mcpproto.WithDescription("Extract name, location, email and phone from a transcript."),
		mcpproto.WithArray("history", mcpproto.Required(), turns, mcpproto.Description("Transcript turns, oldest first")),
	), s.handleExtract)

	s.mcp.AddTool(mcpproto.NewTool("send_flyer",
		mcpproto.WithDescription("Email a product flyer."),
		mcpproto.WithString("email", mcpproto.Required(), mcpproto.Description("Recipient address")),
		mcpproto.WithString("product", mcpproto.Required(), mcpproto.Description(s.productHint())),
	), s.handleSendFlyer)
}

func (s *Server) productHint() string {
	var names []string
	for _, p := range s.catalog.Products() {
		names = append(names, string(p.ID))
	}
	return "One of: " + strings.Join(names, ", ")
}

// Listen serves MCP over the given streams until ctx is done or in is closed.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	log.FromCtx(ctx).Debug().Msg("mcp server listening on stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

type chatArgs struct {
	Message string         `json:"message"`
	History []core.Message `json:"history"`
}

func (s *Server) handleChat(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	var args chatArgs
	if err := req.BindArguments(&args); err != nil {
		return mcpproto.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.History == nil {
		args.History = []core.Message{}
	}

	res, err := s.chat.Chat(ctx, args.Message, args.History)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("mcp chat failed")
		return mcpproto.NewToolResultError("chat exchange failed"), nil
	}
	return mcpproto.NewToolResultText(res.Response), nil
}

func (s *Server) handleExtract(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	var args chatArgs
	if err := req.BindArguments(&args); err != nil {
		return mcpproto.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	data, err := json.Marshal(s.extractor.Extract(args.History))
	if err != nil {
		return nil, err
	}
	return mcpproto.NewToolResultText(string(data)), nil
}

func (s *Server) handleSendFlyer(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	email, err := req.RequireString("email")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("product")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	product, ok := s.catalog.Resolve(name)
	if !ok {
		return mcpproto.NewToolResultError(fmt.Sprintf("unknown product %q. %s", name, s.productHint())), nil
	}

	if !s.sender.SendFlyer(ctx, email, product.ID) {
		return mcpproto.NewToolResultError("flyer delivery failed"), nil
	}
	return mcpproto.NewToolResultText(fmt.Sprintf("Sent the %s flyer to %s.", product.ID, email)), nil
}
