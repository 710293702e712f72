package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

const (
	packagesURI       = "bzfitness://packages"
	scheduleURI       = "bzfitness://schedule"
	memberURIPrefix   = "bzfitness://members/"
	memberURITemplate = memberURIPrefix + "{id}"
)

// registerResources adds the static gym reference data and the per-member
// template.
func (s *MCPServer) registerResources(srv *server.MCPServer) {
	srv.AddResource(
		mcp.NewResource(
			packagesURI,
			"Membership Packages",
			mcp.WithResourceDescription("Membership plans with sessions per week and monthly price in ZAR."),
			mcp.WithMIMEType("application/json"),
		),
		s.handlePackagesResource,
	)

	srv.AddResource(
		mcp.NewResource(
			scheduleURI,
			"Class Schedule",
			mcp.WithResourceDescription("The active weekly class timetable with session start times."),
			mcp.WithMIMEType("application/json"),
		),
		s.handleScheduleResource,
	)

	srv.AddResourceTemplate(
		mcp.NewResourceTemplate(
			memberURITemplate,
			"Gym Member",
			mcp.WithTemplateDescription("A member's profile with recent attendance and payments."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleMemberResource,
	)
}

func (s *MCPServer) handlePackagesResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(packagesURI, model.Packages)
}

type scheduleSlot struct {
	model.ScheduleEntry
	StartsAt string `json:"startsAt"`
}

func (s *MCPServer) handleScheduleResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	entries, err := s.store.ListSchedule(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}
	out := make([]scheduleSlot, len(entries))
	for i, e := range entries {
		out[i] = scheduleSlot{ScheduleEntry: e, StartsAt: model.SessionStart[e.TimeSlot]}
	}
	return jsonResource(scheduleURI, out)
}

// handleMemberResource serves bzfitness://members/{id}.
func (s *MCPServer) handleMemberResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id := strings.TrimPrefix(uri, memberURIPrefix)
	if id == "" || id == uri {
		return nil, fmt.Errorf("invalid member URI %q: expected %s", uri, memberURITemplate)
	}
	detail, err := s.store.GetMemberDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", id, err)
	}
	return jsonResource(uri, detail)
}
