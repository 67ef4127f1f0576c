package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentInput_Valid(t *testing.T) {
	err := checkInput(StudentInput{
		ID:         "S001",
		Name:       "John Doe",
		Email:      "john.doe@university.edu",
		Phone:      "555-0101",
		Department: "Computer Science",
	})
	assert.NoError(t, err)
}

func TestStudentInput_OptionalFieldsMayBeEmpty(t *testing.T) {
	err := checkInput(StudentInput{ID: "S001", Name: "John Doe"})
	assert.NoError(t, err)
}

func TestStudentInput_IDFormat(t *testing.T) {
	cases := []struct {
		name string
		id   string
		ok   bool
	}{
		{"uppercase alnum", "S001", true},
		{"underscore and hyphen", "EXCH_2026-A", true},
		{"minimum length", "AB1", true},
		{"maximum length", "A2345678901234567890", true},
		{"lowercase rejected", "s001", false},
		{"too short", "AB", false},
		{"too long", "A23456789012345678901", false},
		{"spaces rejected", "S 01", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkInput(StudentInput{ID: tc.id, Name: "John Doe"})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStudentInput_NameFormat(t *testing.T) {
	cases := []struct {
		name  string
		value string
		ok    bool
	}{
		{"plain", "John Doe", true},
		{"hyphenated", "Mary-Jane Watson", true},
		{"initial", "J. R. Tolkien", true},
		{"single letter", "X", false},
		{"digits rejected", "R2D2", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkInput(StudentInput{ID: "S001", Name: tc.value})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStudentInput_EmailRejected(t *testing.T) {
	err := checkInput(StudentInput{ID: "S001", Name: "John Doe", Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email must be a valid email address")
}

func TestStudentInput_PhoneRejected(t *testing.T) {
	err := checkInput(StudentInput{ID: "S001", Name: "John Doe", Phone: "call me"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Phone must be a valid phone number")
}

func TestStudentInput_PhoneAcceptsCommonForms(t *testing.T) {
	for _, phone := range []string{"555-0101", "(555) 010-1234", "+1 555 010 1234"} {
		err := checkInput(StudentInput{ID: "S001", Name: "John Doe", Phone: phone})
		assert.NoError(t, err, "phone %q should validate", phone)
	}
}

func TestStudentInput_MultipleErrorsJoined(t *testing.T) {
	err := checkInput(StudentInput{ID: "s1", Name: "", Email: "nope"})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "ID must be")
	assert.Contains(t, msg, "Name is required")
	assert.Contains(t, msg, "Email must be")
	assert.Contains(t, msg, "; ")
}

func TestCourseInput_Valid(t *testing.T) {
	err := checkInput(CourseInput{
		ID:         "CS101",
		Name:       "Introduction to Computer Science",
		Instructor: "Dr. Smith",
		Schedule:   "Mon/Wed 9:00-10:30",
	})
	assert.NoError(t, err)
}

func TestCourseInput_NameLength(t *testing.T) {
	err := checkInput(CourseInput{ID: "CS101", Name: "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name must be at least 2 characters")
}

func TestRecordInput_MethodOneOf(t *testing.T) {
	require.NoError(t, checkInput(RecordInput{StudentID: "S001", Method: "id_pass"}))
	require.NoError(t, checkInput(RecordInput{StudentID: "S001", Method: "manual"}))

	err := checkInput(RecordInput{StudentID: "S001", Method: "card"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Method must be one of: id_pass manual")
}

func TestRecordInput_CourseOptional(t *testing.T) {
	require.NoError(t, checkInput(RecordInput{StudentID: "S001", Method: "id_pass"}))
	require.NoError(t, checkInput(RecordInput{StudentID: "S001", Method: "id_pass", CourseID: "CS101"}))

	err := checkInput(RecordInput{StudentID: "S001", Method: "id_pass", CourseID: "cs 101"})
	assert.Error(t, err)
}
