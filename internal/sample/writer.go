package sample

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/approx-cli/internal/model"
)

// WriteFile writes set to path as whitespace-delimited rows with 60
// fractional digits per column, the same shape Load reads back.
func WriteFile(path string, set model.SampleSet) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "sample: create %s", path)
	}

	w := bufio.NewWriterSize(f, 1<<16)
	for i := range set.X {
		if _, err := fmt.Fprintf(w, "%.60e %.60e\n", set.X[i], set.Y[i]); err != nil {
			f.Close() //nolint:errcheck
			return eris.Wrapf(err, "sample: write %s", path)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close() //nolint:errcheck
		return eris.Wrapf(err, "sample: flush %s", path)
	}

	return eris.Wrapf(f.Close(), "sample: close %s", path)
}
