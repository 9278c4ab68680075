package sample

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHTTPSource() *HTTPSource {
	return NewHTTPSource(HTTPOptions{RateLimit: 1000, Burst: 1000, MaxRetries: 2})
}

func TestLoadHTTPDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0 0\n1 0.8414709848\n")) //nolint:errcheck
	}))
	defer srv.Close()

	loader := NewLoader(WithHTTPSource(testHTTPSource()))
	set, err := loader.Load(srv.URL + "/sin_output.txt")
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, 0.8414709848, set.Y[1])
}

func TestLoadHTTPNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	loader := NewLoader(WithHTTPSource(testHTTPSource()))
	_, err := loader.Load(srv.URL + "/missing.txt")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSourceNotFound))
}

func TestLoadHTTPMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a dataset\n")) //nolint:errcheck
	}))
	defer srv.Close()

	loader := NewLoader(WithHTTPSource(testHTTPSource()))
	_, err := loader.Load(srv.URL + "/bad.txt")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedData))
}

func TestFetchRetriesTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("0 1\n")) //nolint:errcheck
	}))
	defer srv.Close()

	loader := NewLoader(WithHTTPSource(testHTTPSource()))
	set, err := loader.Load(srv.URL + "/flaky.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchGivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	loader := NewLoader(WithHTTPSource(testHTTPSource()))
	_, err := loader.Load(srv.URL + "/down.txt")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSourceNotFound))
}
