package ddg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsServer(t *testing.T, newsBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/news.js") {
			assert.Equal(t, "4-123456789", r.URL.Query().Get("vqd"))
			assert.Equal(t, "json", r.URL.Query().Get("o"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(newsBody))
			return
		}
		// Search page carrying the vqd token.
		w.Write([]byte(`<html><script>DDG.deep.initialize('/d.js?q=x&vqd=4-123456789');</script></html>`))
	}))
}

func TestNews_Success(t *testing.T) {
	t.Parallel()

	srv := newsServer(t, `{"results":[
		{"title":"Flood warning near smelter","excerpt":"Heavy rain expected","source":"Reuters","date":1756684800,"url":"https://example.com/a"},
		{"title":"ESG update","excerpt":"...","source":"FT","date":1756598400,"url":"https://example.com/b"}
	]}`)
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.News(context.Background(), "Norsk Hydro climate risk", 3)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Flood warning near smelter", got[0].Title)
	assert.Equal(t, "Reuters", got[0].Source)
	assert.Equal(t, time.Unix(1756684800, 0).UTC(), got[0].Date)
	assert.Equal(t, "https://example.com/a", got[0].URL)
}

func TestNews_TruncatesToMax(t *testing.T) {
	t.Parallel()

	srv := newsServer(t, `{"results":[
		{"title":"a","date":1,"url":"u1"},
		{"title":"b","date":2,"url":"u2"},
		{"title":"c","date":3,"url":"u3"},
		{"title":"d","date":4,"url":"u4"}
	]}`)
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.News(context.Background(), "anything", 3)

	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestNews_EmptyResults(t *testing.T) {
	t.Parallel()

	srv := newsServer(t, `{"results":[]}`)
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.News(context.Background(), "nothing", 3)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNews_MissingVQD(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>no token here</html>`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.News(context.Background(), "anything", 3)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "vqd")
}

func TestNews_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.News(context.Background(), "anything", 3)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestNews_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := newsServer(t, `{not json`)
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.News(context.Background(), "anything", 3)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestNews_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := newsServer(t, `{"results":[]}`)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.News(ctx, "anything", 3)
	require.Error(t, err)
}
