package cli

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrCodeInvalidInput labels input validation failures in CLI output.
const ErrCodeInvalidInput = "INVALID_INPUT"

// StudentInput carries the student fields accepted from the command line.
type StudentInput struct {
	ID         string `validate:"required,entity_id"`
	Name       string `validate:"required,person_name"`
	Email      string `validate:"omitempty,email"`
	Phone      string `validate:"omitempty,phone"`
	Department string `validate:"omitempty,min=2,max=50"`
}

// CourseInput carries the course fields accepted from the command line.
type CourseInput struct {
	ID         string `validate:"required,entity_id"`
	Name       string `validate:"required,min=2,max=100"`
	Instructor string `validate:"omitempty,person_name"`
	Schedule   string `validate:"omitempty,max=100"`
}

// RecordInput carries the check-in fields accepted from the command line.
type RecordInput struct {
	StudentID string `validate:"required,entity_id"`
	Method    string `validate:"required,oneof=id_pass manual"`
	CourseID  string `validate:"omitempty,entity_id"`
}

// Patterns for the custom rules. Entity ids are the uppercase short
// codes used for students and courses (S001, CS101). Names and phone
// numbers follow the registrar's conventions.
var (
	entityIDPattern   = regexp.MustCompile(`^[A-Z0-9_-]{3,20}$`)
	personNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .-]{1,99}$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9()\s-]{7,20}$`)
)

// validate is the shared validator with the custom rules registered.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	for tag, re := range map[string]*regexp.Regexp{
		"entity_id":   entityIDPattern,
		"person_name": personNamePattern,
		"phone":       phonePattern,
	} {
		// RegisterValidation only fails for an empty tag name
		if err := v.RegisterValidation(tag, matchPattern(re)); err != nil {
			panic(err)
		}
	}
	return v
}

func matchPattern(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// checkInput validates in and flattens any field errors into one
// readable message.
func checkInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// fieldMessage renders one field error in plain language.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "entity_id":
		return fmt.Sprintf("%s must be 3-20 uppercase letters, digits, underscores or hyphens", fe.Field())
	case "person_name":
		return fmt.Sprintf("%s must be 2-100 letters, spaces, periods or hyphens", fe.Field())
	case "phone":
		return fmt.Sprintf("%s must be a valid phone number", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
