// Package server exposes the window menu and the whitelist as MCP tools.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/undecorate/internal/decorate"
	"github.com/mj1618/undecorate/internal/platform"
	"github.com/mj1618/undecorate/internal/version"
	"github.com/sirupsen/logrus"
)

// Resolver maps a window to its application identifier.
type Resolver interface {
	Resolve(w platform.Window) (string, bool)
}

// Whitelist is the persisted application whitelist.
type Whitelist interface {
	List() []string
	Contains(id string) bool
	Add(id string) error
	Remove(id string) error
}

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server with the window system and whitelist it
// operates on.
type Server struct {
	windows  platform.WindowSystem
	resolver Resolver
	list     Whitelist
	menus    decorate.MenuAugmenter
	log      logrus.FieldLogger
	mcp      *mcpserver.MCPServer
}

// New creates an MCP server with all tools registered. Menu actions go
// through menus, which must be running.
func New(windows platform.WindowSystem, resolver Resolver, list Whitelist, menus decorate.MenuAugmenter, log logrus.FieldLogger) *Server {
	s := &Server{
		windows:  windows,
		resolver: resolver,
		list:     list,
		menus:    menus,
		log:      log,
	}
	s.mcp = mcpserver.NewMCPServer("undecorate", version.Version)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		s.log.WithField("port", cfg.Port).Info("serving MCP over streamable HTTP")
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List open windows with their application, decoration state and whitelist membership"),
			mcp.WithString("app", mcp.Description("Only windows whose application id contains this text")),
			mcp.WithBoolean("whitelisted", mcp.Description("Only windows of whitelisted applications")),
		),
		s.handleListWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("window_menu",
			mcp.WithDescription("Show the decoration actions the window menu offers for a window"),
			mcp.WithString("window_id", mcp.Required(), mcp.Description("Window id, e.g. '0x3a00007'")),
		),
		s.handleWindowMenu,
	)

	s.mcp.AddTool(
		mcp.NewTool("window_action",
			mcp.WithDescription("Run a decoration action from a window's menu: 'Undecorate', 'Always Undecorate App', 'Decorate' or 'Remove from Whitelist'"),
			mcp.WithString("window_id", mcp.Required(), mcp.Description("Window id, e.g. '0x3a00007'")),
			mcp.WithString("action", mcp.Required(), mcp.Description("Menu item label")),
		),
		s.handleWindowAction,
	)

	s.mcp.AddTool(
		mcp.NewTool("whitelist_get",
			mcp.WithDescription("List the applications whose windows are always undecorated"),
		),
		s.handleWhitelistGet,
	)

	s.mcp.AddTool(
		mcp.NewTool("whitelist_add",
			mcp.WithDescription("Always undecorate windows of an application"),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application id, e.g. 'org.gnome.Terminal'")),
		),
		s.handleWhitelistAdd,
	)

	s.mcp.AddTool(
		mcp.NewTool("whitelist_remove",
			mcp.WithDescription("Stop undecorating windows of an application"),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application id, e.g. 'org.gnome.Terminal'")),
		),
		s.handleWhitelistRemove,
	)
}
