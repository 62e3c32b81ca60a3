package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	loanpredictor "github.com/aouyang1/go-loanpredictor"
	"github.com/aouyang1/go-loanpredictor/artifact"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testdataDir = "../testdata"

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	err := app.Run(append([]string{"loanpredictor", "--log-level", "error"}, args...))
	return buf.String(), err
}

var exampleSettings = []string{
	"--set", "sector=Agriculture",
	"--set", "borrower_genders=female",
	"--set", "country=Kenya",
	"--set", "term_in_months=8",
	"--set", "lender_count=12",
}

func TestPredictJSON(t *testing.T) {
	out, err := runApp(t, append([]string{"--artifacts", testdataDir, "predict"}, exampleSettings...)...)
	require.Nil(t, err)

	var res loanpredictor.Results
	require.Nil(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, int64(470), res.Rounded)
	assert.Equal(t, int64(360), res.Lower)
	assert.Equal(t, int64(580), res.Upper)
	assert.Equal(t, "Kenya", res.Input.Categorical["country"])
	assert.Len(t, res.Attribution.Contributions, 9)
}

func TestPredictYAMLWithPlot(t *testing.T) {
	plot := filepath.Join(t.TempDir(), "attribution.html")
	args := append([]string{"--artifacts", testdataDir, "predict", "--format", "yaml", "--plot", plot}, exampleSettings...)
	out, err := runApp(t, args...)
	require.Nil(t, err)

	var res map[string]any
	require.Nil(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, 470, res["rounded"])

	_, err = os.Stat(plot)
	assert.Nil(t, err)
}

func TestPredictRangeOffsetFromEnv(t *testing.T) {
	t.Setenv("LOANPREDICTOR_RANGE_OFFSET", "50")
	t.Setenv("LOANPREDICTOR_ARTIFACT_DIR", testdataDir)

	out, err := runApp(t, append([]string{"predict"}, exampleSettings...)...)
	require.Nil(t, err)

	var res loanpredictor.Results
	require.Nil(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, int64(420), res.Lower)
	assert.Equal(t, int64(520), res.Upper)
}

func TestPredictNegativeRangeOffset(t *testing.T) {
	t.Setenv("LOANPREDICTOR_RANGE_OFFSET", "-10")

	_, err := runApp(t, append([]string{"--artifacts", testdataDir, "predict"}, exampleSettings...)...)
	assert.ErrorIs(t, err, loanpredictor.ErrInvalidRangeOffset)
}

func TestPredictFailures(t *testing.T) {
	testData := map[string]struct {
		args []string
		err  error
	}{
		"missing artifacts": {
			args: []string{"--artifacts", t.TempDir(), "predict"},
			err:  artifact.ErrMissingArtifact,
		},
		"unknown field": {
			args: []string{"--artifacts", testdataDir, "predict", "--set", "activity=Farming"},
			err:  ErrUnknownField,
		},
		"out of bounds": {
			args: []string{"--artifacts", testdataDir, "predict", "--set", "lender_count=500"},
			err:  loanpredictor.ErrOutOfBounds,
		},
		"fractional": {
			args: []string{"--artifacts", testdataDir, "predict", "--set", "lender_count=12.5"},
			err:  loanpredictor.ErrInvalidNumber,
		},
		"invalid category": {
			args: []string{"--artifacts", testdataDir, "predict", "--set", "sector=Mining"},
			err:  loanpredictor.ErrInvalidCategory,
		},
		"unknown format": {
			args: []string{"--artifacts", testdataDir, "predict", "--format", "xml"},
			err:  ErrUnknownFormat,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := runApp(t, td.args...)
			assert.ErrorIs(t, err, td.err)
		})
	}
}

func TestInspect(t *testing.T) {
	out, err := runApp(t, "--artifacts", testdataDir, "inspect")
	require.Nil(t, err)

	assert.Contains(t, out, "Tree Ensemble:")
	assert.Contains(t, out, "Trees: 2")
	assert.Contains(t, out, "Numeric Inputs:")
	assert.Contains(t, out, "14.000")
	assert.Contains(t, out, "Categorical Inputs:")
	assert.Contains(t, out, "Kenya, Philippines")
}
