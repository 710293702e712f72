package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

var sast = time.FixedZone("SAST", 2*60*60)

// testNow is Wednesday 5 March 2025, 08:00 in Johannesburg.
var testNow = time.Date(2025, 3, 5, 8, 0, 0, 0, sast)

type testEnv struct {
	store  *store.Store
	server *MCPServer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := store.Open(store.Options{Location: sast})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	s := NewMCPServer(st, sast, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return testNow }
	return &testEnv{store: st, server: s}
}

func (e *testEnv) seedMember(t *testing.T, name, status string) *model.Member {
	t.Helper()
	m := &model.Member{Name: name, Phone: "0820000000", PackageType: "package-1", Status: status, JoinDate: testNow}
	if err := e.store.CreateMember(context.Background(), m); err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	return m
}

type toolFunc func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, fn toolFunc, args map[string]interface{}) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("tool call: %v", err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("tool returned %d content items, want 1", len(res.Content))
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", res.Content[0])
	}
	return text.Text, res.IsError
}

func decode(t *testing.T, text string, v interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("decode: %v; text = %s", err, text)
	}
}

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

func TestToolsAreListed(t *testing.T) {
	env := newTestEnv(t)
	msg := env.server.Server().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, name := range []string{
		"gym_list_members", "gym_get_member", "gym_member_progress", "gym_list_attendance",
		"gym_list_payments", "gym_schedule", "gym_dashboard_stats", "gym_weekly_stats",
	} {
		if !strings.Contains(string(b), `"`+name+`"`) {
			t.Errorf("tools/list is missing %s", name)
		}
	}
}

// ---------------------------------------------------------------------------
// Tools
// ---------------------------------------------------------------------------

func TestListMembers(t *testing.T) {
	env := newTestEnv(t)
	env.seedMember(t, "Lerato Mokoena", model.MemberActive)
	env.seedMember(t, "Sipho Dlamini", model.MemberActive)
	env.seedMember(t, "Thabo Nkosi", model.MemberInactive)

	tests := []struct {
		name string
		args map[string]interface{}
		want int
	}{
		{"all", nil, 3},
		{"active", map[string]interface{}{"status": "active"}, 2},
		{"search", map[string]interface{}{"search": "SIPHO"}, 1},
		{"limit", map[string]interface{}{"limit": 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, env.server.handleListMembers, tt.args)
			if isErr {
				t.Fatalf("unexpected tool error: %s", text)
			}
			var got []model.MemberSummary
			decode(t, text, &got)
			if len(got) != tt.want {
				t.Errorf("got %d members, want %d", len(got), tt.want)
			}
		})
	}

	text, isErr := call(t, env.server.handleListMembers, map[string]interface{}{"status": "frozen"})
	if !isErr || !strings.Contains(text, "Invalid status") {
		t.Errorf("expected an invalid status error, got %q", text)
	}
}

func TestGetMember(t *testing.T) {
	env := newTestEnv(t)
	m := env.seedMember(t, "Lerato Mokoena", model.MemberActive)
	p := &model.Payment{MemberID: m.ID, Amount: 50, Package: "package-1", Status: model.PaymentPending,
		DueDate: time.Date(2025, 2, 1, 0, 0, 0, 0, sast)}
	if err := env.store.CreatePayment(context.Background(), p); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	text, isErr := call(t, env.server.handleGetMember, map[string]interface{}{"id": m.ID})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	var detail model.MemberDetail
	decode(t, text, &detail)
	if detail.Name != "Lerato Mokoena" || len(detail.Payments) != 1 || !detail.Payments[0].IsOverdue {
		t.Errorf("detail = %+v", detail)
	}

	text, isErr = call(t, env.server.handleGetMember, map[string]interface{}{"id": "ghost"})
	if !isErr || !strings.Contains(text, "No member") {
		t.Errorf("expected a not found error, got %q", text)
	}
	if _, isErr = call(t, env.server.handleGetMember, nil); !isErr {
		t.Error("missing id should be a tool error")
	}
}

func TestListAttendanceToday(t *testing.T) {
	env := newTestEnv(t)
	m := env.seedMember(t, "Lerato Mokoena", model.MemberActive)
	for _, a := range []*model.Attendance{
		{MemberID: m.ID, Date: testNow, TimeSlot: model.TimeSlotMorning, DayOfWeek: "Wednesday", Day: "2025-03-05"},
		{MemberID: m.ID, Date: testNow.AddDate(0, 0, -1), TimeSlot: model.TimeSlotMorning, DayOfWeek: "Tuesday", Day: "2025-03-04"},
	} {
		if err := env.store.CreateAttendance(context.Background(), a); err != nil {
			t.Fatalf("CreateAttendance: %v", err)
		}
	}

	text, _ := call(t, env.server.handleListAttendance, map[string]interface{}{"date": "today"})
	var got []model.Attendance
	decode(t, text, &got)
	if len(got) != 1 || got[0].Day != "2025-03-05" {
		t.Errorf("today = %+v", got)
	}

	text, _ = call(t, env.server.handleListAttendance, nil)
	decode(t, text, &got)
	if len(got) != 2 {
		t.Errorf("all = %d records, want 2", len(got))
	}

	if _, isErr := call(t, env.server.handleListAttendance, map[string]interface{}{"date": "last week"}); !isErr {
		t.Error("free-text date should be a tool error")
	}
}

func TestListPaymentsOverdue(t *testing.T) {
	env := newTestEnv(t)
	m := env.seedMember(t, "Lerato Mokoena", model.MemberActive)
	for _, due := range []time.Time{
		time.Date(2025, 2, 1, 0, 0, 0, 0, sast),
		time.Date(2025, 3, 20, 0, 0, 0, 0, sast),
	} {
		p := &model.Payment{MemberID: m.ID, Amount: 50, Package: "package-1", Status: model.PaymentPending, DueDate: due}
		if err := env.store.CreatePayment(context.Background(), p); err != nil {
			t.Fatalf("CreatePayment: %v", err)
		}
	}

	text, _ := call(t, env.server.handleListPayments, map[string]interface{}{"status": "overdue"})
	var got []model.Payment
	decode(t, text, &got)
	if len(got) != 1 || !got[0].IsOverdue {
		t.Errorf("overdue = %+v", got)
	}
	if _, isErr := call(t, env.server.handleListPayments, map[string]interface{}{"status": "lost"}); !isErr {
		t.Error("unknown status should be a tool error")
	}
}

func TestScheduleAndStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, e := range []*model.ScheduleEntry{
		{DayOfWeek: "Friday", TimeSlot: model.TimeSlotEvening, Activity: "Boxing", IsActive: true},
		{DayOfWeek: "Monday", TimeSlot: model.TimeSlotMorning, Activity: "Bootcamp", IsActive: true},
		{DayOfWeek: "Sunday", TimeSlot: model.TimeSlotMorning, Activity: "Hike", IsActive: false},
	} {
		if err := env.store.CreateScheduleEntry(ctx, e); err != nil {
			t.Fatalf("CreateScheduleEntry: %v", err)
		}
	}

	text, _ := call(t, env.server.handleSchedule, nil)
	var entries []model.ScheduleEntry
	decode(t, text, &entries)
	if len(entries) != 2 || entries[0].Activity != "Bootcamp" {
		t.Errorf("active schedule = %+v", entries)
	}
	text, _ = call(t, env.server.handleSchedule, map[string]interface{}{"includeInactive": true})
	decode(t, text, &entries)
	if len(entries) != 3 {
		t.Errorf("full schedule has %d entries, want 3", len(entries))
	}

	env.seedMember(t, "Lerato Mokoena", model.MemberActive)
	text, _ = call(t, env.server.handleDashboardStats, nil)
	var dash model.DashboardStats
	decode(t, text, &dash)
	if dash.TotalMembers != 1 || dash.ActiveMembers != 1 {
		t.Errorf("dashboard = %+v", dash)
	}

	text, _ = call(t, env.server.handleWeeklyStats, nil)
	var week []model.DayStats
	decode(t, text, &week)
	if len(week) != 7 || week[6].Date != "2025-03-05" {
		t.Errorf("week = %+v", week)
	}
}

// ---------------------------------------------------------------------------
// Resources
// ---------------------------------------------------------------------------

func TestResources(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMember(t, "Lerato Mokoena", model.MemberActive)

	contents, err := env.server.handlePackagesResource(ctx, mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("packages: %v", err)
	}
	if text := contents[0].(mcp.TextResourceContents).Text; !strings.Contains(text, "package-3") {
		t.Errorf("packages resource = %s", text)
	}

	if err := env.store.CreateScheduleEntry(ctx, &model.ScheduleEntry{
		DayOfWeek: "Monday", TimeSlot: model.TimeSlotEvening, Activity: "Boxing", IsActive: true,
	}); err != nil {
		t.Fatalf("CreateScheduleEntry: %v", err)
	}
	contents, err = env.server.handleScheduleResource(ctx, mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if text := contents[0].(mcp.TextResourceContents).Text; !strings.Contains(text, `"startsAt": "17:00"`) {
		t.Errorf("schedule resource = %s", text)
	}

	req := mcp.ReadResourceRequest{}
	req.Params.URI = memberURIPrefix + m.ID
	contents, err = env.server.handleMemberResource(ctx, req)
	if err != nil {
		t.Fatalf("member: %v", err)
	}
	if res := contents[0].(mcp.TextResourceContents); res.URI != req.Params.URI || !strings.Contains(res.Text, "Lerato") {
		t.Errorf("member resource = %+v", res)
	}

	req.Params.URI = "bzfitness://other/x"
	if _, err := env.server.handleMemberResource(ctx, req); err == nil {
		t.Error("expected an error for a foreign URI")
	}
}
