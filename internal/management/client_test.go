package management

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/kontentgen/pkg/types"
)

func noSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var waits []time.Duration
	orig := sleepFn
	sleepFn = func(d time.Duration) { waits = append(waits, d) }
	t.Cleanup(func() { sleepFn = orig })
	return &waits
}

func TestListContentTypesFollowsContinuation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/p1/types", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		switch r.Header.Get("x-continuation") {
		case "":
			fmt.Fprint(w, `{"types":[{"id":"m1","codename":"movie","name":"Movie","elements":[`+
				`{"type":"text","id":"e1","codename":"title","name":"Title","is_required":true},`+
				`{"type":"taxonomy","id":"e2","codename":"genre","taxonomy_group":{"id":"t1"}}]}],`+
				`"pagination":{"continuation_token":"page2","next_page":"x"}}`)
		case "page2":
			fmt.Fprint(w, `{"types":[{"id":"a1","codename":"actor","name":"Actor","elements":[]}],"pagination":{"continuation_token":null}}`)
		default:
			t.Errorf("unexpected continuation %q", r.Header.Get("x-continuation"))
		}
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, ProjectID: "p1", APIKey: "secret"}
	got, err := c.ListContentTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "movie", got[0].Codename)
	require.Len(t, got[0].Elements, 2)
	assert.Equal(t, types.TextElement{ElementBase: types.ElementBase{ID: "e1", Codename: "title", Name: "Title", Required: true}}, got[0].Elements[0])
	tx, ok := got[0].Elements[1].(types.TaxonomyElement)
	require.True(t, ok)
	assert.Equal(t, "t1", tx.TaxonomyGroup.ID)
	assert.Equal(t, "actor", got[1].Codename)
}

func TestListWorkflowsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"w1","codename":"default","name":"Default","steps":[{"id":"s1","codename":"draft","name":"Draft"}]}]`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, ProjectID: "p1"}
	got, err := c.ListWorkflows(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "draft", got[0].Steps[0].Codename)
}

func TestRetriesOn5xxAndRetryAfter(t *testing.T) {
	waits := noSleep(t)
	var hit int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hit, 1) {
		case 1:
			w.WriteHeader(http.StatusInternalServerError)
		case 2:
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			fmt.Fprint(w, `{"id":"p1","name":"Movie DB","environment":"Production"}`)
		}
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, ProjectID: "p1"}
	info, err := c.ProjectInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Movie DB", info.Name)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hit))
	assert.Equal(t, []time.Duration{time.Second, 7 * time.Second}, *waits)
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	noSleep(t)
	var hit int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hit, 1)
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream down")
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, ProjectID: "p1"}
	_, err := c.ListTaxonomies(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Body)
	assert.Equal(t, int32(maxRetries+1), atomic.LoadInt32(&hit))
}

func TestClientErrorIsNotRetried(t *testing.T) {
	noSleep(t)
	var hit int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hit, 1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"invalid key"}`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, ProjectID: "p1", APIKey: "bad"}
	_, err := c.ListSnippets(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hit))
}

func TestFetchSnapshot(t *testing.T) {
	var mu sync.Mutex
	requested := map[string]bool{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested[r.URL.Path] = true
		mu.Unlock()
		switch r.URL.Path {
		case "/projects/p1":
			fmt.Fprint(w, `{"id":"p1","name":"Movie DB"}`)
		case "/projects/p1/types":
			fmt.Fprint(w, `{"types":[{"id":"m1","codename":"movie","name":"Movie","elements":[]}],"pagination":{}}`)
		case "/projects/p1/snippets":
			fmt.Fprint(w, `{"snippets":[],"pagination":{}}`)
		case "/projects/p1/taxonomies":
			fmt.Fprint(w, `{"taxonomies":[{"id":"t1","codename":"genres","name":"Genres","terms":[{"id":"x","codename":"drama","name":"Drama","terms":[]}]}],"pagination":{}}`)
		case "/projects/p1/languages":
			fmt.Fprint(w, `{"languages":[{"id":"l1","codename":"default","name":"Default","is_active":true,"is_default":true}],"pagination":{}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, ProjectID: "p1"}
	snap, err := c.FetchSnapshot(context.Background(), types.ExportSettings{Languages: true})
	require.NoError(t, err)
	assert.Equal(t, "p1", snap.ProjectID)
	assert.Equal(t, "Movie DB", snap.Project.Name)
	assert.Len(t, snap.Types, 1)
	assert.Len(t, snap.Taxonomies[0].Terms, 1)
	assert.True(t, snap.Languages[0].IsDefault)
	assert.False(t, snap.FetchedAt.IsZero())
	mu.Lock()
	assert.False(t, requested["/projects/p1/webhooks"])
	mu.Unlock()

	_, err = (&Client{BaseURL: srv.URL}).FetchSnapshot(context.Background(), types.ExportSettings{})
	require.Error(t, err)
}

func TestCanceledContext(t *testing.T) {
	noSleep(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Client{BaseURL: srv.URL, ProjectID: "p1"}).ProjectInfo(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
