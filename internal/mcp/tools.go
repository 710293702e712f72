package mcp

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

const (
	defaultLimit = 25
	maxLimit     = 500
)

// registerTools registers every gym tool on srv. All of them are read-only.
func (s *MCPServer) registerTools(srv *server.MCPServer) {

	// ----- Members -----

	srv.AddTool(
		mcp.NewTool("gym_list_members",
			mcp.WithDescription(
				"List gym members, newest first, with attendance and payment counts. "+
					"Optionally filter by status or a case-insensitive name search.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("status",
				mcp.Description("Only members with this status"),
				mcp.Enum(model.MemberActive, model.MemberInactive),
			),
			mcp.WithString("search",
				mcp.Description("Substring of the member's name"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of members to return (default 25, max 500)"),
			),
		),
		s.handleListMembers,
	)

	srv.AddTool(
		mcp.NewTool("gym_get_member",
			mcp.WithDescription(
				"Get one member with their 10 most recent check-ins and every payment.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Member id, as returned by gym_list_members"),
			),
		),
		s.handleGetMember,
	)

	srv.AddTool(
		mcp.NewTool("gym_member_progress",
			mcp.WithDescription(
				"Get a member's training goal, weight history and personal records.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Member id"),
			),
		),
		s.handleMemberProgress,
	)

	// ----- Attendance and payments -----

	srv.AddTool(
		mcp.NewTool("gym_list_attendance",
			mcp.WithDescription(
				"List check-ins newest first. date is a YYYY-MM-DD calendar day in the "+
					"gym's time zone; \"today\" is accepted.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("date",
				mcp.Description("Calendar day (YYYY-MM-DD or \"today\")"),
			),
			mcp.WithString("memberId",
				mcp.Description("Only this member's check-ins"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of check-ins to return (default 25, max 500)"),
			),
		),
		s.handleListAttendance,
	)

	srv.AddTool(
		mcp.NewTool("gym_list_payments",
			mcp.WithDescription(
				"List payments, latest due date first. status \"overdue\" selects every late "+
					"payment: marked overdue, or still pending after its due date.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("status",
				mcp.Description("Only payments with this status"),
				mcp.Enum(model.PaymentStatuses()...),
			),
			mcp.WithString("memberId",
				mcp.Description("Only this member's payments"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of payments to return (default 25, max 500)"),
			),
		),
		s.handleListPayments,
	)

	// ----- Schedule and statistics -----

	srv.AddTool(
		mcp.NewTool("gym_schedule",
			mcp.WithDescription(
				"The weekly class timetable, Monday to Sunday, morning (06:30) before evening (17:00).",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithBoolean("includeInactive",
				mcp.Description("Include classes that are currently switched off"),
			),
		),
		s.handleSchedule,
	)

	srv.AddTool(
		mcp.NewTool("gym_dashboard_stats",
			mcp.WithDescription(
				"Totals for members, today's attendance, payments, revenue and new enquiries.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleDashboardStats,
	)

	srv.AddTool(
		mcp.NewTool("gym_weekly_stats",
			mcp.WithDescription(
				"Attendance per time slot and paid revenue for each of the last seven days, oldest first.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleWeeklyStats,
	)
}

func (s *MCPServer) handleListMembers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := optionalString(request, "status")
	if status != "" && status != model.MemberActive && status != model.MemberInactive {
		return toolError("Invalid status %q. Use %q or %q.", status, model.MemberActive, model.MemberInactive)
	}
	search := strings.ToLower(strings.TrimSpace(optionalString(request, "search")))
	limit := clamp(optionalInt(request, "limit", defaultLimit), 1, maxLimit)

	members, err := s.store.ListMembers(ctx)
	if err != nil {
		s.logger.Error("mcp list members", "error", err)
		return toolError("Failed to list members: %v", err)
	}

	out := make([]model.MemberSummary, 0, min(len(members), limit))
	for _, m := range members {
		if status != "" && m.Status != status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return successJSON(out)
}

func (s *MCPServer) handleGetMember(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(request, "id")
	if err != nil {
		return toolError("%v", err)
	}
	detail, err := s.store.GetMemberDetail(ctx, id)
	if err != nil {
		return s.lookupError("member", id, err)
	}
	for i := range detail.Payments {
		detail.Payments[i].IsOverdue = detail.Payments[i].Overdue(s.now())
	}
	return successJSON(detail)
}

func (s *MCPServer) handleMemberProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(request, "id")
	if err != nil {
		return toolError("%v", err)
	}
	p, err := s.store.GetProgress(ctx, id)
	if err != nil {
		return s.lookupError("member", id, err)
	}
	return successJSON(p)
}

func (s *MCPServer) handleListAttendance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := store.AttendanceFilter{MemberID: optionalString(request, "memberId")}
	switch d := strings.TrimSpace(optionalString(request, "date")); d {
	case "":
	case "today":
		f.Day = s.today().Format(store.DayLayout)
	default:
		if _, err := parseDay(d, s.loc); err != nil {
			return toolError("Invalid date %q: use YYYY-MM-DD or \"today\"", d)
		}
		f.Day = d
	}
	limit := clamp(optionalInt(request, "limit", defaultLimit), 1, maxLimit)

	records, err := s.store.ListAttendance(ctx, f)
	if err != nil {
		s.logger.Error("mcp list attendance", "error", err)
		return toolError("Failed to list attendance: %v", err)
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return successJSON(records)
}

func (s *MCPServer) handleListPayments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := store.PaymentFilter{
		MemberID: optionalString(request, "memberId"),
		Status:   optionalString(request, "status"),
		Now:      s.now(),
	}
	if f.Status != "" && !slices.Contains(model.PaymentStatuses(), f.Status) {
		return toolError("Invalid status %q. Available: %v", f.Status, model.PaymentStatuses())
	}
	limit := clamp(optionalInt(request, "limit", defaultLimit), 1, maxLimit)

	payments, err := s.store.ListPayments(ctx, f)
	if err != nil {
		s.logger.Error("mcp list payments", "error", err)
		return toolError("Failed to list payments: %v", err)
	}
	if len(payments) > limit {
		payments = payments[:limit]
	}
	return successJSON(payments)
}

func (s *MCPServer) handleSchedule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.store.ListSchedule(ctx, !optionalBool(request, "includeInactive"))
	if err != nil {
		s.logger.Error("mcp list schedule", "error", err)
		return toolError("Failed to load the schedule: %v", err)
	}
	return successJSON(entries)
}

func (s *MCPServer) handleDashboardStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.store.DashboardStats(ctx, s.today())
	if err != nil {
		s.logger.Error("mcp dashboard stats", "error", err)
		return toolError("Failed to compute dashboard stats: %v", err)
	}
	return successJSON(st)
}

func (s *MCPServer) handleWeeklyStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days, err := s.store.WeeklyStats(ctx, s.today())
	if err != nil {
		s.logger.Error("mcp weekly stats", "error", err)
		return toolError("Failed to compute weekly stats: %v", err)
	}
	return successJSON(days)
}

// lookupError turns a failed single-record lookup into a tool error the
// client can act on.
func (s *MCPServer) lookupError(kind, id string, err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, store.ErrNotFound) {
		return toolError("No %s with id %q. Use gym_list_members to find ids.", kind, id)
	}
	s.logger.Error("mcp lookup", "kind", kind, "id", id, "error", err)
	return toolError("Failed to load %s %q: %v", kind, id, err)
}
