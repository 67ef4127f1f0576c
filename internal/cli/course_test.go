package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseAdd(t *testing.T) {
	db := cliEnv(t)

	out, _, err := runCLI(t, "--db", db, "course", "add", "CS101",
		"--name", "Introduction to Computer Science",
		"--instructor", "Dr. Smith",
		"--schedule", "Mon/Wed 9:00-10:30")
	require.NoError(t, err)
	assert.Contains(t, out, "Course CS101 (Introduction to Computer Science) added")
}

func TestCourseAdd_JSON(t *testing.T) {
	db := cliEnv(t)

	out, _, err := runCLI(t, "--db", db, "--format", "json", "course", "add", "MATH201", "--name", "Calculus II")
	require.NoError(t, err)

	data := responseData(t, out)
	assert.Equal(t, "MATH201", data["id"])
	assert.Equal(t, "Calculus II", data["name"])
}

func TestCourseAdd_InvalidID(t *testing.T) {
	db := cliEnv(t)

	out, _, err := runCLI(t, "--db", db, "course", "add", "cs101", "--name", "Lowercase Course")
	require.Error(t, err)
	assert.Contains(t, out, "Error [INVALID_INPUT]")
}

func TestCourseAdd_Duplicate(t *testing.T) {
	db := cliEnv(t)

	_, _, err := runCLI(t, "--db", db, "course", "add", "CS101", "--name", "Introduction to Computer Science")
	require.NoError(t, err)

	out, _, err := runCLI(t, "--db", db, "course", "add", "CS101", "--name", "A Different Course")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "DUPLICATE_KEY")
}

func TestCourseList(t *testing.T) {
	db := cliEnv(t)

	for _, args := range [][]string{
		{"course", "add", "PHYS101", "--name", "Physics I"},
		{"course", "add", "MATH201", "--name", "Calculus II"},
	} {
		_, _, err := runCLI(t, append([]string{"--db", db}, args...)...)
		require.NoError(t, err)
	}

	out, _, err := runCLI(t, "--db", db, "course", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2 course(s)")

	// Ordered by name
	assert.Less(t, indexOf(t, out, "Calculus II"), indexOf(t, out, "Physics I"))
}

func TestCourseList_Empty(t *testing.T) {
	db := cliEnv(t)

	out, _, err := runCLI(t, "--db", db, "course", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No courses defined.")
}

func TestCourseDelete(t *testing.T) {
	db := cliEnv(t)

	_, _, err := runCLI(t, "--db", db, "course", "add", "CS101", "--name", "Introduction to Computer Science")
	require.NoError(t, err)

	out, _, err := runCLI(t, "--db", db, "course", "delete", "CS101")
	require.NoError(t, err)
	assert.Contains(t, out, "Course CS101 (Introduction to Computer Science) deleted")

	out, _, err = runCLI(t, "--db", db, "course", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No courses defined.")
}

func TestCourseDelete_Missing(t *testing.T) {
	db := cliEnv(t)

	out, _, err := runCLI(t, "--db", db, "course", "delete", "NOPE101")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [NOT_FOUND]: course NOPE101 not found")
}
