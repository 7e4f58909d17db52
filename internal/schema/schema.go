// Package schema defines the inputs accepted by the API and how they are validated.
// The same types are used by the HTTP handlers to parse requests and by the client
// to check a payload before it is sent.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/templui/focusflow/internal/model"
)

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// QueryInput is implemented by inputs that travel in the URL query string.
type QueryInput interface {
	DecodeQuery(values url.Values)
	EncodeQuery() url.Values
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so messages match what the caller sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	must(v.RegisterValidation("notcommon", notCommon))
	must(v.RegisterValidation("maxbytes", maxBytes))
	for tag, values := range enums {
		must(v.RegisterValidation(tag, oneOf(values)))
	}

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// enums are validation tags accepting one value of a model enumeration.
var enums = map[string][]string{
	"goalcategory":     model.GoalCategories,
	"goalpriority":     model.GoalPriorities,
	"mood":             model.Moods,
	"resourcetype":     model.ResourceTypes,
	"resourcecategory": model.ResourceCategories,
}

func oneOf(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(values, fl.Field().String())
	}
}

// maxBytes limits the encoded length of a string, unlike max which counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("maxbytes: bad parameter %q", fl.Param()))
	}
	return len(fl.Field().String()) <= limit
}

var commonPasswordPatterns = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "sunshine",
}

// notCommon rejects passwords built around well-known weak patterns.
func notCommon(fl validator.FieldLevel) bool {
	lower := strings.ToLower(fl.Field().String())
	for _, pattern := range commonPasswordPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}

// ValidateEmail checks a single address, e.g. one returned by an OAuth provider.
func ValidateEmail(email string) error {
	err := validate.Var(email, "required,email,max=254")
	if err != nil {
		return &ValidationError{Field: "email", Message: "email must be a valid email address"}
	}
	return nil
}

// Validate checks v against its struct tags and returns the first failure as a
// *ValidationError. Any other error means v is not a validatable struct.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Message: message(fe)}
	}

	return err
}

// DecodeJSON reads a JSON document from r into dst and validates it.
// Malformed bodies are reported as *ValidationError. A body cut off by
// http.MaxBytesReader returns its *http.MaxBytesError unchanged.
func DecodeJSON(r io.Reader, dst any) error {
	err := json.NewDecoder(r).Decode(dst)
	if err != nil {
		return decodeError(err, dst)
	}
	return Validate(dst)
}

func decodeError(err error, dst any) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}

	if errors.Is(err, io.EOF) {
		return &ValidationError{Message: "Request body is required"}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be of type %s", field, jsonType(typeErr.Type)),
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ValidationError{Message: "Malformed JSON body"}
	}

	var timeErr *time.ParseError
	if errors.As(err, &timeErr) {
		field := timeField(dst)
		return &ValidationError{
			Field:   field,
			Message: strings.TrimSpace(field + " must be an RFC 3339 date-time, e.g. 2025-01-31T00:00:00Z"),
		}
	}

	return &ValidationError{Message: "Invalid request body"}
}

// timeField names the date field of dst. json does not report which field an
// UnmarshalJSON error came from, so this is only exact for inputs with one date.
func timeField(dst any) string {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ""
	}

	timeType := reflect.TypeOf(time.Time{})
	var names []string
	for i := range t.NumField() {
		f := t.Field(i)
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft == timeType {
			names = append(names, strings.SplitN(f.Tag.Get("json"), ",", 2)[0])
		}
	}
	if len(names) != 1 {
		return ""
	}
	return names[0]
}

func jsonType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		if t.String() == "time.Time" {
			return "date"
		}
		return "object"
	}
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String

	if values, ok := enums[fe.Tag()]; ok {
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(values, ", "))
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return field + " must be a valid email address"
	case "min", "gte":
		if isString {
			return fmt.Sprintf("%s must contain at least %s character(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s must contain at most %s character(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", field, fe.Param())
	case "notcommon":
		return field + " is too common, please choose a stronger one"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
