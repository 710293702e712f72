// Package openapi describes the HTTP API as an OpenAPI document and
// validates request bodies against the same schemas.
package openapi

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

// Access levels for an operation.
const (
	accessPublic     = "public"
	accessAdmin      = "admin"
	accessSuperadmin = "superadmin"
)

// operation is one documented route.
type operation struct {
	method   string
	path     string
	tag      string
	summary  string
	access   string
	request  string // request schema name
	status   int
	response string // response schema name; SuccessResponse when empty
	list     bool   // response is an array of response
	query    []string
}

var operations = []operation{
	{http.MethodPost, "/api/admin/login", "auth", "Sign in and receive the session cookie", accessPublic, LoginRequest, 200, "", false, nil},
	{http.MethodPost, "/api/admin/logout", "auth", "Clear the session cookie", accessPublic, "", 200, "", false, nil},
	{http.MethodGet, "/api/admin/me", "auth", "Current admin", accessAdmin, "", 200, "WhoAmI", false, nil},

	{http.MethodGet, "/api/admin/users", "users", "List admin users", accessSuperadmin, "", 200, "AdminUser", true, nil},
	{http.MethodPost, "/api/admin/users", "users", "Create an admin user", accessSuperadmin, CreateUserRequest, 201, "AdminUser", false, nil},
	{http.MethodDelete, "/api/admin/users/{id}", "users", "Delete an admin user", accessSuperadmin, "", 200, "", false, nil},

	{http.MethodGet, "/api/admin/members", "members", "List members with activity counts", accessAdmin, "", 200, "MemberSummary", true, nil},
	{http.MethodPost, "/api/admin/members", "members", "Register a member", accessAdmin, MemberRequest, 201, "Member", false, nil},
	{http.MethodGet, "/api/admin/members/{id}", "members", "Member with recent attendance and payments", accessAdmin, "", 200, "MemberDetail", false, nil},
	{http.MethodPut, "/api/admin/members/{id}", "members", "Replace a member's details", accessAdmin, MemberRequest, 200, "Member", false, nil},
	{http.MethodDelete, "/api/admin/members/{id}", "members", "Delete a member and their history", accessAdmin, "", 200, "", false, nil},

	{http.MethodGet, "/api/admin/members/{id}/progress", "progress", "Goal, weight history and personal records", accessAdmin, "", 200, "MemberProgress", false, nil},
	{http.MethodPut, "/api/admin/members/{id}/goal", "progress", "Set the member's goal", accessAdmin, GoalRequest, 200, "MemberGoal", false, nil},
	{http.MethodPost, "/api/admin/members/{id}/weight", "progress", "Record a weight measurement", accessAdmin, WeightRequest, 201, "WeightEntry", false, nil},
	{http.MethodDelete, "/api/admin/members/{id}/weight/{entryId}", "progress", "Delete a weight measurement", accessAdmin, "", 200, "", false, nil},
	{http.MethodPost, "/api/admin/members/{id}/records", "progress", "Record a personal best", accessAdmin, RecordRequest, 201, "PersonalRecord", false, nil},
	{http.MethodDelete, "/api/admin/members/{id}/records/{recordId}", "progress", "Delete a personal record", accessAdmin, "", 200, "", false, nil},

	{http.MethodGet, "/api/admin/attendance", "attendance", "List check-ins", accessAdmin, "", 200, "Attendance", true, []string{"memberId", "date"}},
	{http.MethodPost, "/api/admin/attendance", "attendance", "Check a member in", accessAdmin, AttendanceRequest, 201, "Attendance", false, nil},
	{http.MethodDelete, "/api/admin/attendance/{id}", "attendance", "Delete a check-in", accessAdmin, "", 200, "", false, nil},

	{http.MethodGet, "/api/admin/payments", "payments", "List payments", accessAdmin, "", 200, "Payment", true, []string{"memberId", "status"}},
	{http.MethodPost, "/api/admin/payments", "payments", "Record a payment", accessAdmin, PaymentRequest, 201, "Payment", false, nil},
	{http.MethodPut, "/api/admin/payments/{id}", "payments", "Change a payment's status", accessAdmin, PaymentUpdateRequest, 200, "Payment", false, nil},
	{http.MethodDelete, "/api/admin/payments/{id}", "payments", "Delete a payment", accessAdmin, "", 200, "", false, nil},

	{http.MethodGet, "/api/admin/schedule", "schedule", "Full weekly timetable", accessAdmin, "", 200, "ScheduleEntry", true, nil},
	{http.MethodPost, "/api/admin/schedule", "schedule", "Add a class", accessAdmin, ScheduleRequest, 201, "ScheduleEntry", false, nil},
	{http.MethodPut, "/api/admin/schedule/{id}", "schedule", "Update a class", accessAdmin, ScheduleUpdateRequest, 200, "ScheduleEntry", false, nil},
	{http.MethodDelete, "/api/admin/schedule/{id}", "schedule", "Remove a class", accessAdmin, "", 200, "", false, nil},

	{http.MethodGet, "/api/admin/contact", "contact", "List contact submissions", accessAdmin, "", 200, "ContactSubmission", true, nil},
	{http.MethodPatch, "/api/admin/contact/{id}", "contact", "Set a submission's follow-up status", accessAdmin, ContactStatusRequest, 200, "ContactSubmission", false, nil},
	{http.MethodDelete, "/api/admin/contact/{id}", "contact", "Delete a submission", accessAdmin, "", 200, "", false, nil},
	{http.MethodPost, "/api/admin/contact/{id}/convert", "contact", "Register the enquirer as a member", accessAdmin, ConvertContactRequest, 201, "Member", false, nil},

	{http.MethodGet, "/api/admin/stats/weekly", "stats", "Attendance and revenue for the last seven days", accessAdmin, "", 200, "DayStats", true, nil},
	{http.MethodGet, "/api/admin/stats/dashboard", "stats", "Dashboard totals", accessAdmin, "", 200, "DashboardStats", false, nil},

	{http.MethodGet, "/api/schedule", "public", "Active classes", accessPublic, "", 200, "ScheduleEntry", true, nil},
	{http.MethodPost, "/api/contact", "public", "Send an enquiry", accessPublic, ContactRequest, 200, "ContactReceipt", false, nil},
	{http.MethodGet, "/api/packages", "public", "Membership packages", accessPublic, "", 200, "Package", true, nil},
}

// responseTypes are reflected into component schemas.
var responseTypes = map[string]interface{}{
	"AdminUser":         model.AdminUser{},
	"WhoAmI":            model.WhoAmI{},
	"Member":            model.Member{},
	"MemberSummary":     model.MemberSummary{},
	"MemberDetail":      model.MemberDetail{},
	"MemberProgress":    model.MemberProgress{},
	"MemberGoal":        model.MemberGoal{},
	"WeightEntry":       model.WeightEntry{},
	"PersonalRecord":    model.PersonalRecord{},
	"Attendance":        model.Attendance{},
	"Payment":           model.Payment{},
	"ScheduleEntry":     model.ScheduleEntry{},
	"ContactSubmission": model.ContactSubmission{},
	"ContactReceipt":    model.ContactReceipt{},
	"DayStats":          model.DayStats{},
	"DashboardStats":    model.DashboardStats{},
	"Package":           model.Package{},
	"SuccessResponse":   model.SuccessResponse{},
	"ErrorResponse":     model.ErrorResponse{},
}

var pathParam = regexp.MustCompile(`\{(\w+)\}`)

// Generate builds the OpenAPI document for the whole API.
func Generate(version, baseURL string) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "BZ Fitness API",
			Description: "Gym administration: members, attendance, payments, schedule, enquiries and progress tracking.",
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}
	if baseURL != "" {
		doc.Servers = openapi3.Servers{{URL: baseURL}}
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}
	components.SecuritySchemes = openapi3.SecuritySchemes{
		"sessionCookie": &openapi3.SecuritySchemeRef{
			Value: &openapi3.SecurityScheme{
				Type:        "apiKey",
				In:          "cookie",
				Name:        "admin_session",
				Description: "Signed session token set by POST /api/admin/login.",
			},
		},
	}
	doc.Components = &components

	for name, v := range responseTypes {
		ref, err := openapi3gen.NewSchemaRefForValue(v, nil)
		if err != nil {
			return nil, fmt.Errorf("schema for %s: %w", name, err)
		}
		doc.Components.Schemas[name] = ref
	}
	for name, s := range RequestSchemas() {
		doc.Components.Schemas[name] = openapi3.NewSchemaRef("", s)
	}

	for _, op := range operations {
		item := doc.Paths.Value(op.path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(op.path, item)
		}
		item.SetOperation(op.method, buildOperation(op))
	}
	return doc, nil
}

func schemaRef(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
}

func buildOperation(op operation) *openapi3.Operation {
	o := &openapi3.Operation{
		Tags:        []string{op.tag},
		Summary:     op.summary,
		OperationID: operationID(op),
	}

	for _, m := range pathParam.FindAllStringSubmatch(op.path, -1) {
		o.Parameters = append(o.Parameters, &openapi3.ParameterRef{
			Value: openapi3.NewPathParameter(m[1]).WithSchema(openapi3.NewStringSchema()),
		})
	}
	for _, q := range op.query {
		o.Parameters = append(o.Parameters, &openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter(q).WithSchema(openapi3.NewStringSchema()),
		})
	}

	if op.request != "" {
		o.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchemaRef(schemaRef(op.request)),
		}
	}

	if op.access != accessPublic {
		o.Security = &openapi3.SecurityRequirements{{"sessionCookie": {}}}
	}

	resp := op.response
	if resp == "" {
		resp = "SuccessResponse"
	}
	body := schemaRef(resp)
	if op.list {
		arr := openapi3.NewArraySchema()
		arr.Items = body
		body = openapi3.NewSchemaRef("", arr)
	}
	o.Responses = newResponses(op, body)
	return o
}

// newResponses adds the success response and the error responses the
// operation can produce.
func newResponses(op operation, body *openapi3.SchemaRef) *openapi3.Responses {
	responses := openapi3.NewResponses()

	ok := http.StatusText(op.status)
	responses.Set(fmt.Sprint(op.status), &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(ok).WithJSONSchemaRef(body),
	})

	codes := []int{http.StatusInternalServerError}
	if op.request != "" {
		codes = append(codes, http.StatusBadRequest)
	}
	if op.access != accessPublic {
		codes = append(codes, http.StatusUnauthorized)
	}
	if op.access == accessSuperadmin {
		codes = append(codes, http.StatusForbidden)
	}
	if strings.Contains(op.path, "{") {
		codes = append(codes, http.StatusNotFound)
	}
	switch op.path {
	case "/api/admin/users":
		if op.method == http.MethodPost {
			codes = append(codes, http.StatusConflict)
		}
	case "/api/admin/login":
		codes = append(codes, http.StatusUnauthorized, http.StatusTooManyRequests)
	case "/api/contact":
		codes = append(codes, http.StatusTooManyRequests)
	}
	sort.Ints(codes)

	for _, code := range codes {
		responses.Set(fmt.Sprint(code), &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription(http.StatusText(code)).
				WithJSONSchemaRef(schemaRef("ErrorResponse")),
		})
	}
	return responses
}

// operationID turns "POST /api/admin/members/{id}/weight" into
// "post_members_id_weight".
func operationID(op operation) string {
	p := strings.TrimPrefix(op.path, "/api/")
	p = strings.TrimPrefix(p, "admin/")
	p = strings.NewReplacer("/", "_", "{", "", "}", "").Replace(p)
	return strings.ToLower(op.method) + "_" + p
}
