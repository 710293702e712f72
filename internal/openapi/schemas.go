package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

// Request body schema names, as registered under components.schemas.
const (
	LoginRequest          = "LoginRequest"
	CreateUserRequest     = "CreateUserRequest"
	MemberRequest         = "MemberRequest"
	AttendanceRequest     = "AttendanceRequest"
	PaymentRequest        = "PaymentRequest"
	PaymentUpdateRequest  = "PaymentUpdateRequest"
	ScheduleRequest       = "ScheduleRequest"
	ScheduleUpdateRequest = "ScheduleUpdateRequest"
	ContactRequest        = "ContactRequest"
	ContactStatusRequest  = "ContactStatusRequest"
	ConvertContactRequest = "ConvertContactRequest"
	GoalRequest           = "GoalRequest"
	WeightRequest         = "WeightRequest"
	RecordRequest         = "RecordRequest"
)

const dateDescription = "RFC 3339 timestamp or YYYY-MM-DD date"

func required() *openapi3.Schema {
	return openapi3.NewStringSchema().WithMinLength(1)
}

func optional() *openapi3.Schema {
	return openapi3.NewStringSchema().WithNullable()
}

func date() *openapi3.Schema {
	s := optional()
	s.Description = dateDescription
	return s
}

func enum(values []string) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
	return s
}

func object(props map[string]*openapi3.Schema, req ...string) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for name, p := range props {
		s.WithProperty(name, p)
	}
	if len(req) > 0 {
		s.Required = req
	}
	return s
}

func memberStatuses() []string {
	return []string{model.MemberActive, model.MemberInactive}
}

// RequestSchemas returns a fresh copy of every request body schema, keyed
// by name.
func RequestSchemas() map[string]*openapi3.Schema {
	return map[string]*openapi3.Schema{
		LoginRequest: object(map[string]*openapi3.Schema{
			"username": required(),
			"password": required(),
		}, "username", "password"),

		CreateUserRequest: object(map[string]*openapi3.Schema{
			"username": required(),
			"password": required(),
			"role":     enum(model.Roles()),
			"name":     optional(),
		}, "username", "password", "role"),

		MemberRequest: object(map[string]*openapi3.Schema{
			"name":                     required(),
			"phone":                    required(),
			"packageType":              enum(model.PackageTypes()),
			"email":                    optional(),
			"dateOfBirth":              date(),
			"gender":                   optional(),
			"address":                  optional(),
			"emergencyContactName":     optional(),
			"emergencyContactPhone":    optional(),
			"emergencyContactRelation": optional(),
			"medicalConditions":        optional(),
			"injuries":                 optional(),
			"status":                   enum(memberStatuses()),
			"joinDate":                 date(),
			"nextPaymentDate":          date(),
			"agreedToTerms":            openapi3.NewBoolSchema(),
		}, "name", "phone", "packageType"),

		AttendanceRequest: object(map[string]*openapi3.Schema{
			"memberId":  required(),
			"timeSlot":  enum(model.TimeSlots()),
			"dayOfWeek": enum(model.Weekdays),
			"date":      date(),
		}, "memberId", "timeSlot", "dayOfWeek"),

		PaymentRequest: object(map[string]*openapi3.Schema{
			"memberId": required(),
			"amount":   openapi3.NewFloat64Schema().WithMin(0),
			"package":  required(),
			"dueDate":  required().WithPattern(`^\d{4}-\d{2}-\d{2}`),
			"status":   enum(model.PaymentStatuses()),
			"notes":    optional(),
		}, "memberId", "amount", "package", "dueDate"),

		PaymentUpdateRequest: object(map[string]*openapi3.Schema{
			"status": enum(model.PaymentStatuses()),
			"notes":  optional(),
		}, "status"),

		ScheduleRequest: object(map[string]*openapi3.Schema{
			"dayOfWeek": enum(model.Weekdays),
			"timeSlot":  enum(model.TimeSlots()),
			"activity":  required(),
			"isActive":  openapi3.NewBoolSchema(),
		}, "dayOfWeek", "timeSlot", "activity"),

		ScheduleUpdateRequest: object(map[string]*openapi3.Schema{
			"dayOfWeek": enum(model.Weekdays),
			"timeSlot":  enum(model.TimeSlots()),
			"activity":  required(),
			"isActive":  openapi3.NewBoolSchema(),
		}),

		ContactRequest: object(map[string]*openapi3.Schema{
			"name":    required(),
			"phone":   required(),
			"message": required(),
			"package": required(),
			"email":   optional(),
		}, "name", "phone", "message", "package"),

		ContactStatusRequest: object(map[string]*openapi3.Schema{
			"status": enum(model.ContactStatuses()),
		}, "status"),

		ConvertContactRequest: object(map[string]*openapi3.Schema{
			"packageType":     enum(model.PackageTypes()),
			"joinDate":        date(),
			"nextPaymentDate": date(),
			"agreedToTerms":   openapi3.NewBoolSchema(),
		}),

		GoalRequest: object(map[string]*openapi3.Schema{
			"goalDescription": optional(),
			"targetWeight":    openapi3.NewFloat64Schema().WithMin(0).WithNullable(),
			"targetDate":      date(),
			"fitnessLevel":    enum(model.FitnessLevels).WithNullable(),
			"notes":           optional(),
		}),

		WeightRequest: object(map[string]*openapi3.Schema{
			"weight":  openapi3.NewFloat64Schema().WithMin(0),
			"bodyFat": openapi3.NewFloat64Schema().WithMin(0).WithMax(100).WithNullable(),
			"date":    date(),
			"notes":   optional(),
		}, "weight"),

		RecordRequest: object(map[string]*openapi3.Schema{
			"exercise": required(),
			"value":    required(),
			"date":     date(),
			"notes":    optional(),
		}, "exercise", "value"),
	}
}
