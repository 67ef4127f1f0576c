package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "rollcall", cmd.Use)
	assert.Contains(t, cmd.Long, "SQLite")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{
		"student", "course", "record", "report", "stats",
		"export", "backup", "restore", "seed", "reset", "audit",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestStudentSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	for _, sub := range []string{"add", "list", "show", "delete"} {
		subCmd, _, err := cmd.Find([]string{"student", sub})
		require.NoError(t, err)
		assert.Equal(t, sub, subCmd.Name())
	}
}

func TestCourseSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	for _, sub := range []string{"add", "list", "delete"} {
		subCmd, _, err := cmd.Find([]string{"course", sub})
		require.NoError(t, err)
		assert.Equal(t, sub, subCmd.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestRecordCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	recordCmd, _, err := cmd.Find([]string{"record"})
	require.NoError(t, err)

	methodFlag := recordCmd.Flags().Lookup("method")
	require.NotNil(t, methodFlag)
	assert.Equal(t, "", methodFlag.DefValue)

	courseFlag := recordCmd.Flags().Lookup("course")
	require.NotNil(t, courseFlag)
}

func TestReportCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	reportCmd, _, err := cmd.Find([]string{"report"})
	require.NoError(t, err)

	for _, name := range []string{"from", "to", "student", "course"} {
		flag := reportCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag --%s should exist", name)
	}
}

func TestExportCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	exportCmd, _, err := cmd.Find([]string{"export"})
	require.NoError(t, err)

	outFlag := exportCmd.Flags().Lookup("out")
	require.NotNil(t, outFlag)

	// Export shares the report filter flags
	for _, name := range []string{"from", "to", "student", "course"} {
		flag := exportCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag --%s should exist", name)
	}
}

func TestAuditCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	auditCmd, _, err := cmd.Find([]string{"audit"})
	require.NoError(t, err)

	limitFlag := auditCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "20", limitFlag.DefValue)
}

func TestBackupPruneCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	pruneCmd, _, err := cmd.Find([]string{"backup", "prune"})
	require.NoError(t, err)
	require.Equal(t, "prune", pruneCmd.Name())

	daysFlag := pruneCmd.Flags().Lookup("days")
	require.NotNil(t, daysFlag)
	assert.Equal(t, "0", daysFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cliEnv(t)

	_, _, err := runCLI(t, "--format", "invalid", "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
