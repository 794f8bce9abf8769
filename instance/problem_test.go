package instance_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/twophase/instance"
	"q.log/twophase/matrix"
	"q.log/twophase/simplex"
)

func quiet() simplex.Option {
	return simplex.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDetectFormat(t *testing.T) {
	for path, want := range map[string]instance.Format{
		"a.yaml":       instance.FormatYAML,
		"b.YML":        instance.FormatYAML,
		"c.mps":        instance.FormatMPS,
		"d.lp":         instance.FormatLP,
		"e.txt":        instance.FormatStream,
		"no-extension": instance.FormatStream,
	} {
		assert.Equal(t, want, instance.DetectFormat(path), path)
	}

	f, err := instance.ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, instance.FormatYAML, f)

	_, err = instance.ParseFormat("csv")
	assert.ErrorIs(t, err, instance.ErrUnknownFormat)
}

func TestLoadProduction(t *testing.T) {
	for _, name := range []string{"production.txt", "production.yaml", "production.lp"} {
		t.Run(name, func(t *testing.T) {
			p, err := instance.Load(filepath.Join("testdata", name), instance.FormatAuto)
			require.NoError(t, err)
			require.NoError(t, p.Model.Validate())
			assert.Equal(t, 3, p.Model.NumRows())
			assert.Equal(t, 5, p.Model.NumCols())

			res, err := simplex.TwoPhase(p.Model, quiet())
			require.NoError(t, err)
			opt, ok := res.(*simplex.Optimal)
			require.True(t, ok, "got %T", res)
			assert.InDelta(t, 10, opt.Value, 1e-9)
			require.NoError(t, simplex.Verify(p.Model, res, 1e-9))

			if p.Recovery != nil {
				x, err := p.Recovery.Recover(opt.Solution)
				require.NoError(t, err)
				assert.InDeltaSlice(t, []float64{2, 2}, x, 1e-9)
			}
		})
	}
}

func TestReadYAML(t *testing.T) {
	p, err := instance.Load(filepath.Join("testdata", "production.yaml"), instance.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, p.Basis)
	assert.Equal(t, []string{"x1", "x2", "s1", "s2", "s3"}, p.Model.Names)
	assert.Nil(t, p.Recovery)

	_, err = instance.Load(filepath.Join("testdata", "typo.yaml"), instance.FormatAuto)
	assert.ErrorIs(t, err, instance.ErrInvalidProblem)
	assert.Contains(t, err.Error(), "constraint")

	for name, doc := range map[string]string{
		"missing objective": "rhs: []\n",
		"rhs length":        "objective: [1]\nconstraints: [[1]]\nrhs: [1, 2]\n",
	} {
		_, err := instance.Decode(strings.NewReader(doc), instance.FormatYAML)
		assert.ErrorIs(t, err, instance.ErrInvalidProblem, name)
	}

	_, err = instance.Decode(strings.NewReader("objective: [1, 2]\nconstraints: [[1]]\nrhs: [1]\n"), instance.FormatYAML)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = instance.Decode(strings.NewReader("objective: [1]\nconstraints: [[1]]\nrhs: [1]\nnames: [a, b]\n"), instance.FormatYAML)
	assert.Error(t, err)
}

func TestReadStream(t *testing.T) {
	p, err := instance.ReadStream(strings.NewReader("1 2  1 -1\n1 1 0\n1 2 1 1\n-3"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1}, p.Model.A.RawData())
	assert.Equal(t, []float64{1, 1}, p.Model.C.RawData())
	assert.Equal(t, -3.0, p.Model.Z)

	for name, src := range map[string]string{
		"short matrix":  "2 2 1 2 3",
		"missing rhs":   "1 1 1",
		"bad token":     "1 1 x",
		"missing z":     "1 1 1 1 1 1 1 1 1",
		"wrong c shape": "1 1 1 1 1 1 2 1 1 1 0",
	} {
		_, err := instance.ReadStream(strings.NewReader(src))
		assert.Error(t, err, name)
	}

	_, err = instance.ReadStream(strings.NewReader("1 1 x"))
	assert.ErrorIs(t, err, matrix.ErrParse)
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := instance.Decode(strings.NewReader(""), instance.Format("xml"))
	assert.ErrorIs(t, err, instance.ErrUnknownFormat)

	_, err = instance.Load(filepath.Join("testdata", "missing.yaml"), instance.FormatAuto)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadMPS(t *testing.T) {
	p, err := instance.Load(filepath.Join("testdata", "tiny.mps"), instance.FormatAuto)
	require.NoError(t, err)
	require.NotNil(t, p.Recovery)
	assert.Equal(t, []string{"X1", "X2"}, p.Recovery.Names())
	assert.Equal(t, []float64{-1, -2, 0, 0, 0}, p.Model.C.RawData())

	res, err := simplex.TwoPhase(p.Model, quiet())
	require.NoError(t, err)
	opt, ok := res.(*simplex.Optimal)
	require.True(t, ok, "got %T", res)
	assert.InDelta(t, 1, p.Recovery.Value(opt.Value), 1e-9)

	x, err := p.Recovery.Recover(opt.Solution)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0}, x, 1e-9)
}
