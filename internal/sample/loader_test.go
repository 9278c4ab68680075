package sample

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/approx-cli/internal/model"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTwoColumnFile(t *testing.T) {
	path := writeTemp(t, "0.0 1.0\n0.5 2.5\n1.0 -3.25\n")

	set, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1.0}, set.X)
	assert.Equal(t, []float64{1.0, 2.5, -3.25}, set.Y)
}

func TestLoadScientificNotationAndExtraWhitespace(t *testing.T) {
	path := writeTemp(t, "  -1.000000e+01\t9.999e-01  \n\n2e0 3e0\n")

	set, err := NewLoader().Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, -10.0, set.X[0])
	assert.Equal(t, 0.9999, set.Y[0])
	assert.Equal(t, 2.0, set.X[1])
}

func TestLoadPreservesRowOrder(t *testing.T) {
	path := writeTemp(t, "3 30\n1 10\n2 20\n")

	set, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, set.X)
	assert.Equal(t, []float64{30, 10, 20}, set.Y)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSourceNotFound))
}

func TestLoadThreeColumnRow(t *testing.T) {
	path := writeTemp(t, "0 1\n1 2 3\n")

	_, err := NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedData))
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadSingleColumnRow(t *testing.T) {
	path := writeTemp(t, "42\n")

	_, err := NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedData))
}

func TestLoadNonNumericColumn(t *testing.T) {
	path := writeTemp(t, "0.5 abc\n")

	_, err := NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedData))
	assert.Contains(t, err.Error(), "column 2")
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTemp(t, "")

	_, err := NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedData))
	assert.Contains(t, err.Error(), "no rows")
}

func TestLoadBlankLinesOnly(t *testing.T) {
	path := writeTemp(t, "\n\n\n")

	_, err := NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedData))
}

func TestLoadHTTPWithoutSource(t *testing.T) {
	_, err := NewLoader().Load("https://example.com/data.txt")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSourceNotFound))
}

func TestParseSpecialFloatValues(t *testing.T) {
	set, err := Parse(strings.NewReader("0 NaN\n1 +Inf\n2 -Inf\n"), "mem")
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	want := model.SampleSet{
		X: []float64{-10, 0, 1.5e-30},
		Y: []float64{0.25, -1.0, 9.875e12},
	}
	require.NoError(t, WriteFile(path, want))

	got, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.X, got.X)
	assert.Equal(t, want.Y, got.Y)
}

func TestWriteFileSixtyDigitPrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, WriteFile(path, model.SampleSet{X: []float64{1}, Y: []float64{2}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fields := strings.Fields(string(data))
	require.Len(t, fields, 2)
	// 60 fractional digits after "1."
	assert.Contains(t, fields[0], "1."+strings.Repeat("0", 60)+"e+00")
}
