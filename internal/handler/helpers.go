package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
	"github.com/retshidi-radebe/bzfitness/internal/server/middleware"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

// maxBodyBytes caps request bodies. The largest legitimate body is a
// member registration.
const maxBodyBytes = 1 << 20

const msgInternal = "Internal server error"

// writeJSON serializes v as JSON and writes it to the response with the given
// HTTP status code. The Content-Type header is set to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the {"error": message} envelope.
func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, model.ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: message})
}

// serverError logs err and answers with the generic 500 message.
func serverError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, op string, err error) {
	logger.Error(op+" failed", "error", err, "request_id", middleware.GetRequestID(r.Context()))
	writeError(w, http.StatusInternalServerError, msgInternal)
}

// callerName returns the signed-in admin's username, or "".
func callerName(r *http.Request) string {
	if sess := middleware.GetSession(r.Context()); sess != nil {
		return sess.Username
	}
	return ""
}

// readJSON reads the request body, checks it against the named request
// schema and decodes it into v. The body is closed after reading.
func readJSON(r *http.Request, validator *openapi.Validator, schema string, v interface{}) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	return decodeBody(validator, schema, body, v)
}

// readOptionalJSON is readJSON for endpoints whose body may be left out. A
// body with no content, however it was framed, leaves v untouched.
func readOptionalJSON(r *http.Request, validator *openapi.Validator, schema string, v interface{}) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return decodeBody(validator, schema, body, v)
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, &openapi.ValidationError{Rule: "json", Err: err}
	}
	return body, nil
}

func decodeBody(validator *openapi.Validator, schema string, body []byte, v interface{}) error {
	if err := validator.Validate(schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &openapi.ValidationError{Rule: "json", Err: err}
	}
	return nil
}

// validationMessage picks the client message for a body that failed
// readJSON. Missing, empty or null fields and unreadable JSON get the
// endpoint's own message; a present but unacceptable value is named.
func validationMessage(err error, missing string) string {
	var ve *openapi.ValidationError
	if !errors.As(err, &ve) {
		return missing
	}
	switch ve.Rule {
	case "required", "minLength", "json":
		return missing
	}
	if s, ok := ve.Value.(string); ve.Field == "" || ve.Value == nil || (ok && s == "") {
		return missing
	}
	return "Invalid " + ve.Field
}

// classifyStoreError maps store errors to HTTP status codes.
func classifyStoreError(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Accepted timestamp layouts, tried in order. Layouts without a zone are
// read in the gym's time zone.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	store.DayLayout,
}

// parseTime reads an RFC 3339 timestamp, a local date-time as sent by
// datetime-local inputs, or a bare YYYY-MM-DD date.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// optionalTime parses s when set. Nil and empty strings yield nil.
func optionalTime(s *string, loc *time.Location) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseTime(*s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nonEmpty turns empty strings into nil so they are stored as NULL.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
