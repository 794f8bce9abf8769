package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeStderr(t, stdin, args...)
	return out, err
}

func executeStderr(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := executeStderr(t, "", "solve", "testdata/production.yaml")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "loaded problem")

	out, stderr, err := executeStderr(t, "", "-v", "solve", "testdata/production.yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG msg=\"loaded problem\" rows=3 cols=5")
	assert.NotContains(t, out, "loaded problem")
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "twophase", cmd.Use)
	assert.Contains(t, cmd.Long, "certificate")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"solve", "phase1", "canonical", "inverse", "serve"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
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
}

func TestSolveCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	solveCmd, _, err := cmd.Find([]string{"solve"})
	require.NoError(t, err)

	inputFlag := solveCmd.Flags().Lookup("input")
	require.NotNil(t, inputFlag)
	assert.Equal(t, "i", inputFlag.Shorthand)
	assert.Equal(t, "auto", inputFlag.DefValue)

	for _, name := range []string{"verify", "phase2", "trace"} {
		flag := solveCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "false", flag.DefValue)
	}
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	addrFlag := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addrFlag)
	assert.Equal(t, ":8080", addrFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, err := execute(t, "", "--format", "invalid", "solve", "testdata/production.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestConfigFile(t *testing.T) {
	out, err := execute(t, "", "--config", "testdata/config.yaml", "solve", "testdata/production.yaml")
	require.NoError(t, err)

	data := decodeSuccess(t, out)
	var got SolveOutput
	require.NoError(t, unmarshal(data, &got))
	assert.True(t, got.Verified)
	assert.Equal(t, "optimal", got.ResultType)
}

func TestConfigFlagsTakePrecedence(t *testing.T) {
	out, err := execute(t, "", "--config", "testdata/config.yaml", "--format", "text", "solve", "--verify=false", "testdata/production.yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "result: optimal\n"))
	assert.NotContains(t, out, "verified")
}

func TestConfigErrors(t *testing.T) {
	_, err := execute(t, "", "--config", "testdata/typo-config.yaml", "solve", "testdata/production.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "", "--config", "testdata/missing.yaml", "solve", "testdata/production.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("testdata/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, Config{Format: "json", Verify: true}, cfg)
}
