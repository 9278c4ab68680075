// Package sample loads and writes the two-column numeric datasets consumed by
// the comparison pipeline.
package sample

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/approx-cli/internal/model"
)

// Sentinel errors for the loader's failure taxonomy. Callers match them with
// eris.Is.
var (
	// ErrSourceNotFound means the source identifier did not resolve to
	// readable data.
	ErrSourceNotFound = eris.New("sample source not found")

	// ErrMalformedData means the source was readable but is not a non-empty
	// two-column numeric dataset.
	ErrMalformedData = eris.New("malformed sample data")
)

// Loader resolves dataset identifiers to sample sets. Identifiers are file
// paths, or http(s) URLs when an HTTP source is configured.
type Loader struct {
	http *HTTPSource
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPSource enables loading http(s):// identifiers through src.
func WithHTTPSource(src *HTTPSource) Option {
	return func(l *Loader) { l.http = src }
}

// NewLoader creates a Loader. Without options it reads local files only.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the dataset named by sourceID and returns its samples in row
// order. It fails with ErrSourceNotFound when the identifier does not
// resolve, and with ErrMalformedData when any row is not exactly two
// floating-point columns or the dataset is empty.
func (l *Loader) Load(sourceID string) (model.SampleSet, error) {
	if strings.HasPrefix(sourceID, "http://") || strings.HasPrefix(sourceID, "https://") {
		if l.http == nil {
			return model.SampleSet{}, eris.Wrapf(ErrSourceNotFound, "sample: no http source configured for %s", sourceID)
		}
		body, err := l.http.Fetch(sourceID)
		if err != nil {
			return model.SampleSet{}, err
		}
		defer body.Close() //nolint:errcheck
		return Parse(body, sourceID)
	}

	f, err := os.Open(sourceID)
	if err != nil {
		if os.IsNotExist(err) {
			return model.SampleSet{}, eris.Wrapf(ErrSourceNotFound, "sample: open %s", sourceID)
		}
		return model.SampleSet{}, eris.Wrapf(err, "sample: open %s", sourceID)
	}
	defer f.Close() //nolint:errcheck

	return Parse(f, sourceID)
}

// Parse reads whitespace-delimited numeric text, one (x, y) row per line.
// Blank lines are skipped; any non-blank line must hold exactly two parseable
// float64 columns.
func Parse(r io.Reader, sourceID string) (model.SampleSet, error) {
	var set model.SampleSet

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return model.SampleSet{}, eris.Wrapf(ErrMalformedData, "sample: %s line %d has %d columns, want 2", sourceID, line, len(fields))
		}

		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return model.SampleSet{}, eris.Wrapf(ErrMalformedData, "sample: %s line %d column 1: %q is not a number", sourceID, line, fields[0])
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return model.SampleSet{}, eris.Wrapf(ErrMalformedData, "sample: %s line %d column 2: %q is not a number", sourceID, line, fields[1])
		}

		set.X = append(set.X, x)
		set.Y = append(set.Y, y)
	}
	if err := scanner.Err(); err != nil {
		return model.SampleSet{}, eris.Wrapf(err, "sample: read %s", sourceID)
	}

	if set.Len() == 0 {
		return model.SampleSet{}, eris.Wrapf(ErrMalformedData, "sample: %s contains no rows", sourceID)
	}

	return set, nil
}
