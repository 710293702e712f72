package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidationError describes the first way a request body failed its
// schema.
type ValidationError struct {
	Field string      // dotted path to the offending property, "" for the body
	Rule  string      // schema keyword that failed: required, enum, type, ...
	Value interface{} // offending value; nil when missing or null
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid request body (%s): %v", e.Rule, e.Err)
	}
	return fmt.Sprintf("invalid %s (%s): %v", e.Field, e.Rule, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validator checks request bodies against RequestSchemas.
type Validator struct {
	schemas map[string]*openapi3.Schema
}

// NewValidator returns a validator over the request body schemas.
func NewValidator() *Validator {
	return &Validator{schemas: RequestSchemas()}
}

// Validate checks the JSON document body against the named schema. A
// failure is returned as *ValidationError.
func (v *Validator) Validate(name string, body []byte) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown request schema %q", name)
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return &ValidationError{Rule: "json", Err: err}
	}
	if err := schema.VisitJSON(doc); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) *ValidationError {
	var se *openapi3.SchemaError
	if !errors.As(err, &se) {
		return &ValidationError{Rule: "schema", Err: err}
	}
	return &ValidationError{
		Field: strings.Join(se.JSONPointer(), "."),
		Rule:  se.SchemaField,
		Value: se.Value,
		Err:   errors.New(se.Reason),
	}
}
