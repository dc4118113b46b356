package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registryServer serves one YAML document per path.
func registryServer(t *testing.T, docs map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, ok := docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		fmt.Fprint(w, doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchMergesInSourceOrder(t *testing.T) {
	srv := registryServer(t, map[string]string{
		"/a.yaml": "packages:\n  - name: x\n    url: A\n  - name: only-a\n",
		"/b.yaml": "packages:\n  - name: only-b\n  - name: x\n    url: B\n",
	})

	agg := NewAggregator([]string{srv.URL + "/a.yaml", srv.URL + "/b.yaml"}, WithHTTPClient(srv.Client()))
	pkgs, err := agg.Fetch(context.Background())
	require.NoError(t, err)

	var names []string
	for _, p := range pkgs {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"x", "only-a", "only-b", "x"}, names)

	p, err := NewIndex(pkgs).FindByName("x")
	require.NoError(t, err)
	assert.Equal(t, "A", p.URL)
}

func TestFetchOrderIndependentOfCompletionOrder(t *testing.T) {
	// The first source answers last; the merge must still put it first.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow.yaml" {
			time.Sleep(50 * time.Millisecond)
			fmt.Fprint(w, "packages:\n  - name: dup\n    url: slow\n")
			return
		}
		fmt.Fprint(w, "packages:\n  - name: dup\n    url: fast\n")
	}))
	defer srv.Close()

	agg := NewAggregator([]string{srv.URL + "/slow.yaml", srv.URL + "/fast.yaml"}, WithHTTPClient(srv.Client()))
	idx, err := agg.FetchIndex(context.Background())
	require.NoError(t, err)

	p, err := idx.FindByName("dup")
	require.NoError(t, err)
	assert.Equal(t, "slow", p.URL)
}

func TestFetchFailsWithoutPartialResult(t *testing.T) {
	srv := registryServer(t, map[string]string{
		"/good.yaml": "packages:\n  - name: ok\n",
	})

	agg := NewAggregator([]string{srv.URL + "/good.yaml", srv.URL + "/missing.yaml"}, WithHTTPClient(srv.Client()))
	pkgs, err := agg.Fetch(context.Background())
	assert.Nil(t, pkgs)

	var fetchErr *RegistryFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, srv.URL+"/missing.yaml", fetchErr.URL)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestFetchFailsOnInvalidDocument(t *testing.T) {
	srv := registryServer(t, map[string]string{
		"/bad.yaml": "packages:\n  - description: nameless\n",
	})

	agg := NewAggregator([]string{srv.URL + "/bad.yaml"}, WithHTTPClient(srv.Client()))
	_, err := agg.Fetch(context.Background())

	var fetchErr *RegistryFetchError
	require.ErrorAs(t, err, &fetchErr)
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestFetchWithoutSources(t *testing.T) {
	_, err := NewAggregator(nil).Fetch(context.Background())
	var fetchErr *RegistryFetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFetchSendsUserAgent(t *testing.T) {
	var agent atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent.Store(r.UserAgent())
		fmt.Fprint(w, "packages: []\n")
	}))
	defer srv.Close()

	agg := NewAggregator([]string{srv.URL}, WithHTTPClient(srv.Client()), WithUserAgent("upy-test"))
	_, err := agg.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "upy-test", agent.Load())
}

func TestFetchLocalSources(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(first, []byte("packages:\n  - name: one\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("packages:\n  - name: two\n"), 0644))

	agg := NewAggregator([]string{first, "file://" + second})
	pkgs, err := agg.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	assert.Equal(t, "one", pkgs[0].Name)
	assert.Equal(t, "two", pkgs[1].Name)
}

func TestFetchHonoursCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAggregator([]string{srv.URL}, WithHTTPClient(srv.Client())).Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourcesReturnsCopy(t *testing.T) {
	urls := []string{"a", "b"}
	agg := NewAggregator(urls)
	urls[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, agg.Sources())
}
