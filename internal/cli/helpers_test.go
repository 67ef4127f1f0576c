package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args and captures its output.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return buf.String(), errBuf.String(), err
}

// cliEnv moves the test into an empty working directory, so relative
// backup and export directories land in temp space, and returns a
// database path inside it.
func cliEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	chdir(t, dir)
	return filepath.Join(dir, "attendance.db")
}

// chdir moves the test into dir, restoring the previous working
// directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// decodeResponse parses a JSON response envelope from command output.
func decodeResponse(t *testing.T, out string) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp
}

// responseData returns the data field of a successful JSON response.
func responseData(t *testing.T, out string) map[string]interface{} {
	t.Helper()

	resp := decodeResponse(t, out)
	require.Equal(t, "ok", resp["status"], "output: %s", out)
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "data is not an object: %s", out)
	return data
}

// indexOf returns where sub first appears in s, failing the test when
// it does not appear at all.
func indexOf(t *testing.T, s, sub string) int {
	t.Helper()

	idx := strings.Index(s, sub)
	require.GreaterOrEqual(t, idx, 0, "%q not found in output", sub)
	return idx
}
