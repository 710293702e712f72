package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/retshidi-radebe/bzfitness/internal/config"
	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/notify"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
	"github.com/retshidi-radebe/bzfitness/internal/server/middleware"
	"github.com/retshidi-radebe/bzfitness/internal/service"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

const (
	testSecret   = "test-secret-for-handler-tests"
	testPassword = "supersecretpassword"
)

var sast = time.FixedZone("SAST", 2*60*60)

// testNow is Wednesday 5 March 2025, 08:00 in Johannesburg.
var testNow = time.Date(2025, 3, 5, 8, 0, 0, 0, sast)

// fakeSender records notification emails.
type fakeSender struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg notify.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return "msg-1", f.err
}

func (f *fakeSender) messages() []notify.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Message(nil), f.sent...)
}

// testEnv holds shared state for handler integration tests.
type testEnv struct {
	store   *store.Store
	auth    *service.AuthService
	gym     *GymHandler
	sender  *fakeSender
	router  chi.Router
	session string // session cookie sent with every request when set
}

// newTestEnv creates a fresh test environment with an in-memory store, the
// configured superadmin "owner", and a Chi router with every route mounted.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.Open(store.Options{Location: sast}) // in-memory SQLite
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := openapi.NewValidator()
	auth := service.NewAuthService(st, config.AuthSettings{
		SessionSecret:     testSecret,
		AdminUsername:     "owner",
		AdminPasswordHash: service.HashPassword(testPassword),
	})
	sender := &fakeSender{}
	gym := NewGymHandler(st, GymOptions{
		Location:  sast,
		Logger:    logger,
		Validator: validator,
		Notifier:  sender,
		NotifyTo:  []string{"owner@example.com"},
	})
	gym.now = func() time.Time { return testNow }
	authH := NewAuthHandler(auth, middleware.Cookies{}, validator, logger)

	r := chi.NewRouter()
	r.Get("/api/schedule", gym.PublicSchedule)
	r.Post("/api/contact", gym.SubmitContact)
	r.Get("/api/packages", gym.ListPackages)
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(auth))
			r.Get("/me", authH.Me)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperadmin)
				r.Get("/users", authH.ListUsers)
				r.Post("/users", authH.CreateUser)
				r.Delete("/users/{id}", authH.DeleteUser)
			})

			r.Get("/members", gym.ListMembers)
			r.Post("/members", gym.CreateMember)
			r.Get("/members/{id}", gym.GetMember)
			r.Put("/members/{id}", gym.UpdateMember)
			r.Delete("/members/{id}", gym.DeleteMember)
			r.Get("/members/{id}/progress", gym.GetProgress)
			r.Put("/members/{id}/goal", gym.SetGoal)
			r.Post("/members/{id}/weight", gym.AddWeight)
			r.Delete("/members/{id}/weight/{entryId}", gym.DeleteWeight)
			r.Post("/members/{id}/records", gym.AddRecord)
			r.Delete("/members/{id}/records/{recordId}", gym.DeleteRecord)

			r.Get("/attendance", gym.ListAttendance)
			r.Post("/attendance", gym.CreateAttendance)
			r.Delete("/attendance/{id}", gym.DeleteAttendance)

			r.Get("/payments", gym.ListPayments)
			r.Post("/payments", gym.CreatePayment)
			r.Put("/payments/{id}", gym.UpdatePayment)
			r.Delete("/payments/{id}", gym.DeletePayment)

			r.Get("/schedule", gym.ListSchedule)
			r.Post("/schedule", gym.CreateScheduleEntry)
			r.Put("/schedule/{id}", gym.UpdateScheduleEntry)
			r.Delete("/schedule/{id}", gym.DeleteScheduleEntry)

			r.Get("/contact", gym.ListContacts)
			r.Patch("/contact/{id}", gym.UpdateContactStatus)
			r.Delete("/contact/{id}", gym.DeleteContact)
			r.Post("/contact/{id}/convert", gym.ConvertContact)

			r.Get("/stats/weekly", gym.WeeklyStats)
			r.Get("/stats/dashboard", gym.DashboardStats)
		})
	})

	return &testEnv{
		store:  st,
		auth:   auth,
		gym:    gym,
		sender: sender,
		router: r,
	}
}

// loginAs signs in and keeps the session for later requests.
func (e *testEnv) loginAs(t *testing.T, username, password string) {
	t.Helper()
	token, _, err := e.auth.Login(context.Background(), username, password)
	if err != nil {
		t.Fatalf("Login(%s): %v", username, err)
	}
	e.session = token
}

// loginOwner signs in as the configured superadmin.
func (e *testEnv) loginOwner(t *testing.T) {
	t.Helper()
	e.loginAs(t, "owner", testPassword)
}

// seedMember registers a member directly in the store.
func (e *testEnv) seedMember(t *testing.T, name string) *model.Member {
	t.Helper()
	m := &model.Member{
		Name:        name,
		Phone:       "0821234567",
		PackageType: "package-2",
		Status:      model.MemberActive,
		JoinDate:    testNow,
	}
	if err := e.store.CreateMember(context.Background(), m); err != nil {
		t.Fatalf("seedMember: %v", err)
	}
	return m
}

// do executes an HTTP request against the test router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: e.session})
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func toJSON(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("toJSON: %v", err)
	}
	return buf
}

func raw(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rr.Code, want, rr.Body.String())
	}
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assertStatus(t, rr, status)
	var resp model.ErrorResponse
	decodeJSON(t, rr, &resp)
	if resp.Error != message {
		t.Errorf("error = %q, want %q", resp.Error, message)
	}
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decodeJSON: %v; body = %s", err, rr.Body.String())
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func TestValidationMessage(t *testing.T) {
	const missing = "Name, phone, and package type are required"
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not a validation error", errors.New("boom"), missing},
		{"missing field", &openapi.ValidationError{Field: "name", Rule: "required"}, missing},
		{"empty string", &openapi.ValidationError{Field: "name", Rule: "minLength", Value: ""}, missing},
		{"empty enum", &openapi.ValidationError{Field: "packageType", Rule: "enum", Value: ""}, missing},
		{"null field", &openapi.ValidationError{Field: "phone", Rule: "type", Value: nil}, missing},
		{"broken json", &openapi.ValidationError{Rule: "json"}, missing},
		{"unknown enum value", &openapi.ValidationError{Field: "packageType", Rule: "enum", Value: "gold"}, "Invalid packageType"},
		{"wrong type", &openapi.ValidationError{Field: "amount", Rule: "type", Value: "much"}, "Invalid amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validationMessage(tt.err, missing); got != tt.want {
				t.Errorf("validationMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-05T06:30:00Z", time.Date(2025, 3, 5, 6, 30, 0, 0, time.UTC)},
		{"2025-03-05T06:30:00.250+02:00", time.Date(2025, 3, 5, 4, 30, 0, 250e6, time.UTC)},
		{"2025-03-05T17:00", time.Date(2025, 3, 5, 17, 0, 0, 0, sast)},
		{"2025-03-05", time.Date(2025, 3, 5, 0, 0, 0, 0, sast)},
	}
	for _, tt := range tests {
		got, err := parseTime(tt.in, sast)
		if err != nil {
			t.Errorf("parseTime(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := parseTime("next tuesday", sast); err == nil {
		t.Error("expected an error for free text")
	}
	if got, err := optionalTime(nil, sast); got != nil || err != nil {
		t.Errorf("optionalTime(nil) = %v, %v", got, err)
	}
	empty := ""
	if got, err := optionalTime(&empty, sast); got != nil || err != nil {
		t.Errorf("optionalTime(\"\") = %v, %v", got, err)
	}
}

func TestClassifyStoreError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{store.ErrNotFound, http.StatusNotFound},
		{store.ErrConflict, http.StatusConflict},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := classifyStoreError(tt.err); got != tt.want {
			t.Errorf("classifyStoreError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestOpenAPIHandler(t *testing.T) {
	h, err := NewOpenAPIHandler("1.0.0")
	if err != nil {
		t.Fatalf("NewOpenAPIHandler: %v", err)
	}
	rr := httptest.NewRecorder()
	h.ServeSpec(rr, httptest.NewRequest("GET", "/openapi.json", nil))
	assertStatus(t, rr, http.StatusOK)

	var doc struct {
		OpenAPI string                 `json:"openapi"`
		Paths   map[string]interface{} `json:"paths"`
	}
	decodeJSON(t, rr, &doc)
	if doc.OpenAPI != "3.0.3" {
		t.Errorf("openapi = %q", doc.OpenAPI)
	}
	if _, ok := doc.Paths["/api/admin/members/{id}"]; !ok {
		t.Error("document is missing the member path")
	}
}
