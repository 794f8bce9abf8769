package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	infeasibleStream = "2 1\n1\n1\n2 1\n1\n-1\n1 1\n0\n0\n"
	redundantStream  = "2 2\n1 1\n2 2\n2 1\n2\n4\n1 2\n1 0\n0\n"
	unboundedStream  = "1 2\n1 -1\n1 1\n0\n1 2\n1 1\n0\n"
)

func TestTextOutputGolden(t *testing.T) {
	for _, tc := range []struct {
		name  string
		stdin string
		args  []string
	}{
		{name: "solve_yaml", args: []string{"solve", "testdata/production.yaml"}},
		{name: "solve_lp_verify", args: []string{"solve", "--verify", "testdata/production.lp"}},
		{name: "phase1_infeasible", stdin: infeasibleStream, args: []string{"phase1"}},
		{name: "phase1_redundant", stdin: redundantStream, args: []string{"phase1", "--input", "stream"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.stdin, tc.args...)
			require.NoError(t, err)

			g := goldie.New(t,
				goldie.WithFixtureDir("testdata/golden"),
				goldie.WithNameSuffix(".golden"),
			)
			g.Assert(t, tc.name, []byte(out))
		})
	}
}

func TestSolveJSON(t *testing.T) {
	out, err := execute(t, "", "--format", "json", "solve", "--verify", "testdata/production.lp")
	require.NoError(t, err)

	var got SolveOutput
	require.NoError(t, unmarshal(decodeSuccess(t, out), &got))
	assert.Equal(t, "optimal", got.ResultType)
	assert.Equal(t, []string{"x1", "x2"}, got.Variables)
	assert.InDeltaSlice(t, []float64{2, 2}, got.Solution, 1e-9)
	assert.InDeltaSlice(t, []float64{2, 1, 0}, got.Certificate, 1e-9)
	require.NotNil(t, got.Value)
	assert.InDelta(t, 10, *got.Value, 1e-9)
	assert.True(t, got.Verified)
}

func TestSolveStdin(t *testing.T) {
	out, err := execute(t, unboundedStream, "solve", "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "result: unbounded\n")
	assert.Contains(t, out, "certificate: 1 1\n")
	assert.Contains(t, out, "verified: ok\n")

	out, err = execute(t, infeasibleStream, "solve")
	require.NoError(t, err)
	assert.Equal(t, "result: infeasible\ncertificate: -1 1\n", out)
}

func TestSolvePhase2(t *testing.T) {
	out, err := execute(t, "", "--format", "json", "solve", "--phase2", "--verify", "testdata/production.yaml")
	require.NoError(t, err)

	var got SolveOutput
	require.NoError(t, unmarshal(decodeSuccess(t, out), &got))
	assert.Equal(t, "optimal", got.ResultType)
	assert.InDeltaSlice(t, []float64{2, 2, 0, 0, 1}, got.Solution, 1e-9)
	assert.True(t, got.Verified)
}

func TestSolveTrace(t *testing.T) {
	out, err := execute(t, "", "solve", "--phase2", "--trace", "testdata/production.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "iteration 1: basis 2 3 4 objective 0\n")
	assert.Contains(t, out, "result: optimal\n")
}

func TestSolveErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		stdin string
		args  []string
		code  int
	}{
		{name: "missing file", args: []string{"solve", "testdata/missing.yaml"}, code: ExitCommandError},
		{name: "unknown input format", args: []string{"solve", "--input", "csv", "testdata/production.yaml"}, code: ExitCommandError},
		{name: "truncated stream", stdin: "2 2\n1 1\n", args: []string{"solve"}, code: ExitCommandError},
		{name: "phase2 without basis", args: []string{"solve", "--phase2", "testdata/production.lp"}, code: ExitCommandError},
		{name: "too many args", args: []string{"solve", "a", "b"}, code: ExitFailure},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.stdin, tc.args...)
			require.Error(t, err)
			assert.Equal(t, tc.code, GetExitCode(err))
		})
	}
}

func TestSolveErrorOutput(t *testing.T) {
	out, err := execute(t, "", "solve", "testdata/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E002]: failed to read problem")

	out, err = execute(t, "", "--format", "json", "solve", "testdata/missing.yaml")
	require.Error(t, err)
	var resp CLIResponse
	require.NoError(t, unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInput, resp.Error.Code)
}

func TestPhase1JSON(t *testing.T) {
	out, err := execute(t, redundantStream, "--format", "json", "phase1")
	require.NoError(t, err)

	var got Phase1Output
	require.NoError(t, unmarshal(decodeSuccess(t, out), &got))
	assert.True(t, got.Feasible)
	assert.Equal(t, []int{0}, got.Basis)
	assert.Equal(t, []int{1}, got.Redundant)
	assert.Empty(t, got.Certificate)
}
