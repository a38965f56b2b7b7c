package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/undecorate/internal/decorate"
	"github.com/mj1618/undecorate/internal/model"
	"github.com/mj1618/undecorate/internal/output"
	"github.com/mj1618/undecorate/internal/platform"
)

// textResult serializes v to YAML for an MCP response.
func textResult(v interface{}) *mcp.CallToolResult {
	text, err := output.Text(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(text)
}

func (s *Server) snapshot(w platform.Window) model.Window {
	app, ok := s.resolver.Resolve(w)
	return model.NewWindow(w, app, ok && s.list.Contains(app))
}

func (s *Server) handleListWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := strings.ToLower(stringParam(params, "app", ""))
	onlyListed := boolParam(params, "whitelisted", false)

	windows, err := s.windows.Windows()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result := output.WindowList{TS: time.Now().Unix(), Windows: []model.Window{}}
	for _, w := range model.Snapshot(windows, s.resolver.Resolve, s.list.Contains) {
		if app != "" && !strings.Contains(strings.ToLower(w.App), app) {
			continue
		}
		if onlyListed && !w.Whitelisted {
			continue
		}
		result.Windows = append(result.Windows, w)
	}
	return textResult(result), nil
}

// windowMenu finds the window named by the window_id argument and builds its
// decoration menu.
func (s *Server) windowMenu(request mcp.CallToolRequest) (platform.Window, *decorate.RecordingMenu, error) {
	id, err := windowIDParam(request.GetArguments(), "window_id")
	if err != nil {
		return nil, nil, err
	}
	w, err := platform.FindWindow(s.windows, id)
	if err != nil {
		return nil, nil, err
	}
	menu := &decorate.RecordingMenu{}
	s.menus.AugmentMenu(menu, w)
	if len(menu.Items) == 0 {
		return nil, nil, decorate.ErrStopped
	}
	return w, menu, nil
}

func (s *Server) handleWindowMenu(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	w, menu, err := s.windowMenu(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(output.MenuResult{Window: s.snapshot(w), Items: menu.Actions()}), nil
}

func (s *Server) handleWindowAction(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := stringParam(request.GetArguments(), "action", "")
	result := model.ActionResult{Action: action}

	w, menu, err := s.windowMenu(request)
	if err == nil {
		err = menu.Invoke(action)
	}
	if err != nil {
		if errors.Is(err, decorate.ErrNoSuchAction) && menu != nil {
			err = fmt.Errorf("%w (available: %s)", err, strings.Join(menu.Labels(), ", "))
		}
		result.Error = err.Error()
		if w != nil {
			snap := s.snapshot(w)
			result.Window = &snap
		}
		s.log.WithError(err).WithField("action", action).Warn("window action failed")
		text, _ := output.Text(result)
		return mcp.NewToolResultError(text), nil
	}

	result.OK = true
	snap := s.snapshot(w)
	result.Window = &snap
	return textResult(result), nil
}

func (s *Server) handleWhitelistGet(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(output.WhitelistResult{Whitelist: s.list.List()}), nil
}

func (s *Server) handleWhitelistAdd(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.editWhitelist(request, s.list.Add, true)
}

func (s *Server) handleWhitelistRemove(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.editWhitelist(request, s.list.Remove, false)
}

func (s *Server) editWhitelist(request mcp.CallToolRequest, op func(string) error, adding bool) (*mcp.CallToolResult, error) {
	app := model.NormalizeAppID(stringParam(request.GetArguments(), "app", ""))
	if app == "" {
		return mcp.NewToolResultError("app is required"), nil
	}
	changed := s.list.Contains(app) != adding
	if err := op(app); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(output.WhitelistResult{Whitelist: s.list.List(), Changed: changed}), nil
}
