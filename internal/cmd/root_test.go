package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IObundle/versat-ai/internal/core"
	oerrors "github.com/IObundle/versat-ai/internal/errors"
	"github.com/IObundle/versat-ai/internal/testutil"
)

// isolate points HOME and the config file at a temp dir and clears every
// HWCOMPOSE_* override. It returns the config file path.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, env := range []string{"HWCOMPOSE_CATALOGS", "HWCOMPOSE_MODULES", "HWCOMPOSE_TARGETS",
		"HWCOMPOSE_OUTPUT", "HWCOMPOSE_JOBS", "HWCOMPOSE_LOG_TIMESTAMPS"} {
		t.Setenv(env, "")
	}
	configFile := filepath.Join(home, "config.yaml")
	t.Setenv("HWCOMPOSE_CONFIG", configFile)
	return configFile
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr), "want *ExitError, got %T: %v", err, err)
	return exitErr.Code
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"build", "vet", "diff", "tree", "targets", "catalog", "config", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "verbose", "timestamps", "catalog"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hwcompose version")
	assert.Contains(t, out, "CUE SDK:")
}

func TestBuild_JSON(t *testing.T) {
	isolate(t)

	out, err := run(t, "build", "iob_zybo_z7", "-o", "json")
	require.NoError(t, err)

	var ir core.IR
	require.NoError(t, json.Unmarshal([]byte(out), &ir))
	assert.Equal(t, "iob_system_iob_zybo_z7", ir.Name)
	assert.Equal(t, map[string]bool{"use_extmem": false}, ir.Flags)
	_, hasAXI := ir.Wire("axi")
	assert.False(t, hasAXI)
}

func TestBuild_FlagsAndName(t *testing.T) {
	isolate(t)

	out, err := run(t, "build", "iob_zybo_z7", "-o", "json", "--flag", "use_extmem", "--name", "soc")
	require.NoError(t, err)

	var ir core.IR
	require.NoError(t, json.Unmarshal([]byte(out), &ir))
	assert.Equal(t, "soc_iob_zybo_z7", ir.Name)
	_, hasAXI := ir.Wire("axi")
	assert.True(t, hasAXI)
	_, hasBridge := ir.Subblock("axi_async_bridge")
	assert.True(t, hasBridge)
}

func TestBuild_CatalogFileAndOut(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	catalog := testutil.WriteFile(t, dir, "spi.cue", testutil.SPIBoard)
	outFile := filepath.Join(dir, "out", "spi.yaml")

	stdout, err := run(t, "build", "spi_board", "--catalog", catalog, "--flag", "second", "--out", outFile)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	written := testutil.ReadFile(t, outFile)
	assert.Contains(t, written, "name: spi_board")
	assert.Contains(t, written, "instance: spi1")
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"unknown target", []string{"build", "nope"}, oerrors.ExitNotFound},
		{"unknown flag", []string{"build", "iob_zybo_z7", "--flag", "turbo"}, oerrors.ExitValidationError},
		{"bounds violation", []string{"build", "iob_zybo_z7", "--set", "AXI_DATA_W=0"}, oerrors.ExitValidationError},
		{"invalid output format", []string{"build", "iob_zybo_z7", "-o", "xml"}, oerrors.ExitValidationError},
		{"missing catalog", []string{"build", "--catalog", "/does/not/exist.cue"}, oerrors.ExitNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, exitCode(t, err))
		})
	}
}

func TestBuild_ConfigFile(t *testing.T) {
	configFile := isolate(t)
	dir := filepath.Dir(configFile)
	testutil.WriteFile(t, dir, "descriptions/spi.cue", testutil.SPIBoard)
	testutil.WriteFile(t, dir, "config.yaml", "targets:\n  - descriptions/spi.cue\noutput: json\njobs: 2\n")

	out, err := run(t, "build", "spi_board")
	require.NoError(t, err)

	var ir core.IR
	require.NoError(t, json.Unmarshal([]byte(out), &ir), "config output format applies")
	assert.Equal(t, "spi_board", ir.Name)
}

func TestVet(t *testing.T) {
	isolate(t)
	_, err := run(t, "vet", "iob_zybo_z7")
	assert.NoError(t, err)
}

func TestTree(t *testing.T) {
	isolate(t)
	out, err := run(t, "tree", "iob_zybo_z7", "--tables")
	require.NoError(t, err)
	assert.Contains(t, out, "iob_system_iob_zybo_z7 (target iob_zybo_z7)")
	assert.Contains(t, out, "subblocks")
	assert.Contains(t, out, "AXI_ADDR_W")
}

func TestTargets(t *testing.T) {
	isolate(t)
	out, err := run(t, "targets")
	require.NoError(t, err)
	assert.Contains(t, out, "iob_zybo_z7")
	assert.Contains(t, out, "use_extmem=false")
}

func TestCatalog(t *testing.T) {
	isolate(t)

	out, err := run(t, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "iob_clk")
	assert.Contains(t, out, "axi")

	out, err = run(t, "catalog", "show", "iob_clk", "--prefix", "sys_", "--options", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "sys_clk")
	assert.Contains(t, out, "sys_arst")
	assert.NotContains(t, out, "sys_cke")
	assert.Contains(t, out, "2 signals, 2 bits")

	_, err = run(t, "catalog", "show", "nope")
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))

	_, err = run(t, "catalog", "show", "iob", "--set", "WIDTH=8")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
}

func TestDiff(t *testing.T) {
	isolate(t)
	before := filepath.Join(t.TempDir(), "before.yaml")

	_, err := run(t, "build", "iob_zybo_z7", "--out", before)
	require.NoError(t, err)

	out, err := run(t, "diff", "iob_zybo_z7", before)
	require.NoError(t, err)
	assert.Empty(t, out, "identical builds have no differences")

	out, err = run(t, "diff", "iob_zybo_z7", before, "--flag", "use_extmem")
	require.NoError(t, err)
	assert.Contains(t, out, "wire/axi")
	assert.Contains(t, out, "subblock/axi_async_bridge")

	_, err = run(t, "diff", "iob_zybo_z7", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
}
