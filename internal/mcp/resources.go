// ABOUTME: MCP resource implementations for ironlog.
// ABOUTME: Provides ironlog://history/recent, ironlog://active, and ironlog://fatigue resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriRecent  = "ironlog://history/recent"
	uriActive  = "ironlog://active"
	uriFatigue = "ironlog://fatigue"

	recentLimit = 10
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriRecent,
		Name:        "Recent Workouts",
		Description: "Last 10 finished sessions with the weekly rep chart",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriActive,
		Name:        "Active Session",
		Description: "The session in progress with running totals",
		MIMEType:    "application/json",
	}, s.handleActiveResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriFatigue,
		Name:        "Fatigue Report",
		Description: "Acute:chronic workload ratio, weekly muscle loads and recovery",
		MIMEType:    "application/json",
	}, s.handleFatigueResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.refresh()
	history := s.store.History()
	if len(history) > recentLimit {
		history = history[:recentLimit]
	}
	return jsonResource(uriRecent, map[string]any{
		"workouts": history,
		"week":     s.store.WeeklyReps(s.now()),
	})
}

func (s *Server) handleActiveResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.refresh()
	result := map[string]any{"active": false}
	if active := s.store.Active(); active != nil {
		stats, _ := s.store.ActiveStats()
		result = map[string]any{
			"active":  true,
			"session": active,
			"stats":   stats,
		}
	}
	return jsonResource(uriActive, result)
}

func (s *Server) handleFatigueResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.refresh()
	return jsonResource(uriFatigue, s.store.FatigueReport(s.now()))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
