// ABOUTME: MCP resource implementations for the daily program.
// ABOUTME: Provides recomp://today, recomp://journey and recomp://habits resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/recomp/internal/dto"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI   = "recomp://today"
	journeyURI = "recomp://journey"
	habitsURI  = "recomp://habits"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Program",
		Description: "Journey day, workout, nutrition, dopamine score and mindset lessons for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         journeyURI,
		Name:        "Journey Progress",
		Description: "Current day, phase and days remaining in the 90-day program",
		MIMEType:    "application/json",
	}, s.handleJourneyResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         habitsURI,
		Name:        "Habit Catalog",
		Description: "The user's active good and bad habits",
		MIMEType:    "application/json",
	}, s.handleHabitsResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	b, err := s.svc.Today(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load today: %w", err)
	}
	return jsonResource(todayURI, dto.TodayBundle(b))
}

func (s *Server) handleJourneyResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	j, err := s.svc.Journey(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journey: %w", err)
	}
	return jsonResource(journeyURI, dto.Journey(j))
}

func (s *Server) handleHabitsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	habits, err := s.svc.ListHabits(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	return jsonResource(habitsURI, map[string]interface{}{
		"habits": dto.HabitDetails(habits),
		"count":  len(habits),
	})
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
