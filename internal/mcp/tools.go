package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winstate/internal/appdata"
	"github.com/1broseidon/winstate/internal/windowstate"
)

func (s *Server) handleGetWindowState(_ context.Context, _ *mcpsdk.CallToolRequest, args GetWindowStateInput) (*mcpsdk.CallToolResult, GetWindowStateOutput, error) {
	file := strings.TrimSpace(args.File)
	if file == "" {
		file = s.config.File
	}
	dir := s.config.Path
	if dir == "" {
		d, err := appdata.Dir()
		if err != nil {
			return nil, GetWindowStateOutput{}, err
		}
		dir = d
	}
	store, err := windowstate.NewFileStore(dir, file)
	if err != nil {
		return nil, GetWindowStateOutput{}, err
	}

	out := GetWindowStateOutput{Path: store.Path()}

	rec, err := store.Load()
	switch {
	case err == nil:
		out.Saved = true
		info := recordInfo(rec)
		out.Record = &info
	case errors.Is(err, windowstate.ErrNoState):
		rec = nil
	default:
		s.logger.Warn("unreadable window state", "path", store.Path(), "error", err)
		rec = nil
	}

	topo, err := windowstate.CurrentTopology(s.screen)
	if err != nil {
		return nil, GetWindowStateOutput{}, err
	}
	g, outcome := windowstate.Reconcile(rec, topo, s.defaults())
	out.Outcome = outcome.String()
	out.Restored = geometryInfo(g)
	return nil, out, nil
}

func (s *Server) handleListDisplays(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	displays, err := s.screen.Displays()
	if err != nil {
		return nil, ListDisplaysOutput{}, fmt.Errorf("failed to list displays: %w", err)
	}
	primary, err := s.screen.PrimaryDisplay()
	if err != nil {
		return nil, ListDisplaysOutput{}, fmt.Errorf("failed to get primary display: %w", err)
	}

	out := ListDisplaysOutput{Displays: make([]DisplayInfo, 0, len(displays))}
	for _, d := range displays {
		out.Displays = append(out.Displays, DisplayInfo{
			ID:      d.ID,
			Name:    d.Name,
			Bounds:  d.Bounds,
			Primary: d.ID == primary.ID && d.Bounds == primary.Bounds,
		})
	}
	return nil, out, nil
}

func (s *Server) handleCheckGeometry(_ context.Context, _ *mcpsdk.CallToolRequest, args CheckGeometryInput) (*mcpsdk.CallToolResult, CheckGeometryOutput, error) {
	if args.Width <= 0 || args.Height <= 0 {
		return nil, CheckGeometryOutput{}, fmt.Errorf("width and height must be > 0")
	}

	x, y := args.X, args.Y
	w, h := args.Width, args.Height
	rec := &windowstate.Record{
		X:             &x,
		Y:             &y,
		Width:         &w,
		Height:        &h,
		IsMaximized:   args.IsMaximized,
		IsFullScreen:  args.IsFullScreen,
		DisplayBounds: args.DisplayBounds,
	}

	topo, err := windowstate.CurrentTopology(s.screen)
	if err != nil {
		return nil, CheckGeometryOutput{}, err
	}

	g, outcome := windowstate.Reconcile(rec, topo, s.defaults())
	bounds, _ := windowstate.Geometry{X: &x, Y: &y, Width: w, Height: h}.Bounds()
	return nil, CheckGeometryOutput{
		Visible:  windowstate.Visible(bounds, topo.Displays),
		Stale:    windowstate.IsStale(rec, topo),
		Outcome:  outcome.String(),
		Restored: geometryInfo(g),
	}, nil
}

func (s *Server) defaults() windowstate.Defaults {
	return windowstate.Defaults{Width: s.config.DefaultWidth, Height: s.config.DefaultHeight}
}

func geometryInfo(g windowstate.Geometry) GeometryInfo {
	c := g.Clone()
	return GeometryInfo{
		X:             c.X,
		Y:             c.Y,
		Width:         &c.Width,
		Height:        &c.Height,
		IsMaximized:   c.IsMaximized,
		IsFullScreen:  c.IsFullScreen,
		DisplayBounds: c.DisplayBounds,
	}
}

func recordInfo(rec *windowstate.Record) GeometryInfo {
	return GeometryInfo{
		X:             rec.X,
		Y:             rec.Y,
		Width:         rec.Width,
		Height:        rec.Height,
		IsMaximized:   rec.IsMaximized,
		IsFullScreen:  rec.IsFullScreen,
		DisplayBounds: rec.DisplayBounds,
	}
}
