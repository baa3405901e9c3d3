package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int

	// Describe returns a single human-readable line, used by the HTML pages
	// that show the backend's message in a banner.
	Describe() string
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

func (a *APIError) Describe() string {
	return a.Message
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

func (s *StructuredError) Describe() string {
	parts := make([]string, 0, len(s.Errors))
	for field, problems := range s.Errors {
		parts = append(parts, field+": "+strings.Join(problems, ", "))
	}
	return strings.Join(parts, "; ")
}

var (
	MalformedBodyError    = NewSimple(400, "Malformed request body")
	InvalidMediaTypeError = NewSimple(415, "Unsupported media type")
	InternalServerError   = NewSimple(500, "Internal server error")

	NotFoundError     = NewSimple(404, "Resource not found")
	UnauthorizedError = NewSimple(401, "Missing or invalid session")

	/*
	 * Used for file uploads
	 */
	MissingFileError      = NewSimple(400, "A file must be provided in the 'content' field")
	MissingFileNameError  = NewSimple(400, "Please provide a valid file and name.")
	InvalidFileNameError  = NewSimple(400, "File names cannot contain '/'")
	FileAlreadyExistError = NewSimple(409, "A file with this name already exists")

	/*
	 * Used for authentications
	 */
	UserAlreadyConfirmedError   = NewSimple(400, "User is already confirmed")
	IDPInvalidPasswordError     = NewSimple(400, "Provided password does not meet requirements")
	IDPExistingEmailError       = NewSimple(400, "Email already exists")
	IDPUserNotFoundError        = NewSimple(404, "User not found")
	IDPUserNotConfirmedError    = NewSimple(400, "User is not confirmed yet")
	IDPCredentialsMismatchError = NewSimple(400, "Invalid credentials. Please try again.")
	IDPConfirmCodeMismatchError = NewSimple(400, "Confirmation code mismatch")
	IDPConfirmCodeExpiredError  = NewSimple(400, "Confirmation code has expired")
	IDPInvalidParameterError    = NewSimple(400, "Invalid parameters provided, the user is likely already verified")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "hasupper":
			problems[field] = append(problems[field], "Value must have at least one uppercase character")
		case "haslower":
			problems[field] = append(problems[field], "Value must have at least one lowercase character")
		case "hasdigit":
			problems[field] = append(problems[field], "Value must have at least one number")
		case "hasspecial":
			problems[field] = append(problems[field], "Value must have at least one special character")
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "http_url":
			problems[field] = append(problems[field], "Value must be an http or https URL")
		case "isodate":
			problems[field] = append(problems[field], "Value must be a valid date")
		case "nospaces":
			problems[field] = append(problems[field], "Value cannot contain whitespaces")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewMissingParamError(name string) *APIError {
	return NewSimple(http.StatusBadRequest, "Missing required parameter '%s'", name)
}

func NewFileTooLargeError(max int64) *APIError {
	return NewSimple(http.StatusRequestEntityTooLarge, "File exceeds the maximum size of %d bytes", max)
}
