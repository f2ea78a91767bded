package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
	"github.com/mechmind-dwv/mcalc/internal/config"
	"github.com/mechmind-dwv/mcalc/internal/styles"
)

// runCLI executes the command tree against an isolated config location.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	if os.Getenv(config.EnvPath) == "" {
		t.Setenv(config.EnvPath, filepath.Join(t.TempDir(), "config.json"))
	}

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	code = execute(cmd, args, &errOut)
	return styles.Plain(out.String()), styles.Plain(errOut.String()), code
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "mcalc", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"add", "subtract", "multiply", "eval", "batch", "repl", "config", "version"}

	for _, name := range commands {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "command %s should exist", name)
			assert.Equal(t, name, sub.Name())
		})
	}

	sub, _, err := cmd.Find([]string{"sub"})
	require.NoError(t, err)
	assert.Equal(t, "subtract", sub.Name())
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	for _, name := range []string{"config", "json", "checked", "mode", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
}

func TestBinaryCommands(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"add", "2", "3"}, "2 + 3 = 5"},
		{[]string{"add", "--", "-1", "-1"}, "-1 + -1 = -2"},
		{[]string{"subtract", "5", "2"}, "5 - 2 = 3"},
		{[]string{"sub", "0", "5"}, "0 - 5 = -5"},
		{[]string{"multiply", "6", "7"}, "6 * 7 = 42"},
		{[]string{"add", "0.5", "0.25"}, "0.5 + 0.25 = 0.75"},
		{[]string{"add", "0x10", "1"}, "16 + 1 = 17"},
		{[]string{"add", "1_000", "1"}, "1000 + 1 = 1001"},
		{[]string{"subtract", "010", "1"}, "10 - 1 = 9"},
		{[]string{"add", "--mode", "float", "1", "2.5"}, "1 + 2.5 = 3.5"},
		{[]string{"add", "9223372036854775807", "1"}, "9223372036854775807 + 1 = -9223372036854775808"},
	}

	for _, tc := range cases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			out, stderr, code := runCLI(t, tc.args...)
			require.Equal(t, exitSuccess, code, "stderr: %s", stderr)
			assert.Equal(t, tc.want+"\n", out)
		})
	}
}

func TestBinaryJSON(t *testing.T) {
	out, _, code := runCLI(t, "add", "2", "3", "--json")
	require.Equal(t, exitSuccess, code)
	assert.JSONEq(t, `{"op":"add","a":2,"b":3,"result":5}`, out)
}

func TestExitCodes(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code int
	}{
		{"non-numeric operand", []string{"add", "1", "x"}, exitInvalid},
		{"mixed kinds", []string{"add", "1", "2.5"}, exitInvalid},
		{"int mode rejects float", []string{"add", "--mode", "int", "1.0", "2.0"}, exitInvalid},
		{"checked overflow", []string{"add", "--checked", "9223372036854775807", "1"}, exitOverflow},
		{"literal out of range", []string{"add", "99999999999999999999", "1"}, exitOverflow},
		{"missing operand", []string{"add", "1"}, exitInvalid},
		{"unknown flag", []string{"add", "--nope", "1", "2"}, exitInvalid},
		{"bad mode", []string{"add", "--mode", "hex", "1", "2"}, exitInvalid},
		{"bad expression", []string{"eval", "2+3"}, exitInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, stderr, code := runCLI(t, tc.args...)
			assert.Equal(t, tc.code, code)
			assert.Contains(t, stderr, "Error:")
		})
	}
}

func TestNegativeOperandHint(t *testing.T) {
	_, stderr, code := runCLI(t, "add", "0", "-5")
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stderr, `negative operands go after "--": mcalc add -- <a> <b>`)

	_, stderr, code = runCLI(t, "add", "--nope", "1", "2")
	assert.Equal(t, exitInvalid, code)
	assert.NotContains(t, stderr, "negative operands")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, ExitCode(nil))
	assert.Equal(t, exitOverflow, ExitCode(fmt.Errorf("wrapped: %w", calculator.ErrOverflow)))
	assert.Equal(t, exitInvalid, ExitCode(calculator.ErrInvalidOperand))
	assert.Equal(t, exitFailure, ExitCode(errors.New("boom")))
}

func TestEval(t *testing.T) {
	out, _, code := runCLI(t, "eval", "2 + 3")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "2 + 3 = 5\n", out)

	out, _, code = runCLI(t, "eval", "6", "x", "7")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "6 * 7 = 42\n", out)

	out, _, code = runCLI(t, "eval", "--json", "--", "-1 + -1")
	require.Equal(t, exitSuccess, code)
	assert.JSONEq(t, `{"op":"add","a":-1,"b":-1,"result":-2}`, out)
}

func TestConfigFileSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"checked":true,"format":"json"}`), 0o644))

	_, _, code := runCLI(t, "--config", path, "add", "9223372036854775807", "1")
	assert.Equal(t, exitOverflow, code)

	out, _, code := runCLI(t, "--config", path, "--checked=false", "add", "9223372036854775807", "1")
	require.Equal(t, exitSuccess, code)
	assert.JSONEq(t, `{"op":"add","a":9223372036854775807,"b":1,"result":-9223372036854775808}`, out)

	out, _, code = runCLI(t, "--config", path, "--json=false", "add", "1", "1")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "1 + 1 = 2\n", out)
}

func TestInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mode":"decimal"}`), 0o644))

	_, stderr, code := runCLI(t, "--config", path, "add", "1", "1")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "failed to load config")
}

func TestConfigInitRepairsCorruptConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv(config.EnvPath, path)
	require.NoError(t, os.WriteFile(path, []byte(`{"mode":"decimal"`), 0o644))

	_, stderr, code := runCLI(t, "add", "1", "1")
	require.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "failed to load config")

	out, stderr, code := runCLI(t, "version")
	require.Equal(t, exitSuccess, code, "stderr: %s", stderr)
	assert.Contains(t, out, "mcalc")

	_, stderr, code = runCLI(t, "config", "init", "--force")
	require.Equal(t, exitSuccess, code, "stderr: %s", stderr)

	_, err := config.Load(path)
	require.NoError(t, err)

	out, _, code = runCLI(t, "add", "1", "1")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "1 + 1 = 2\n", out)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcalc", "config.json")
	t.Setenv(config.EnvPath, path)

	out, _, code := runCLI(t, "config", "init")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Mode, cfg.Mode)

	_, stderr, code := runCLI(t, "config", "init")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "already exists")

	_, _, code = runCLI(t, "config", "init", "--force")
	assert.Equal(t, exitSuccess, code)

	out, _, code = runCLI(t, "config", "show", "--mode", "int")
	require.Equal(t, exitSuccess, code)
	assert.JSONEq(t, fmt.Sprintf(`{"path":%q,"version":1,"mode":"int","format":"text","checked":false,"color":true}`, path), out)
}

func TestVersion(t *testing.T) {
	out, _, code := runCLI(t, "version")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "mcalc "+Version+"\n", out)
}
