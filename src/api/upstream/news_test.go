package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewsSearchFiltersBlacklist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		q := r.URL.Query()
		require.Equal(t, "tr", q.Get("language"))
		require.Equal(t, "publishedAt", q.Get("sortBy"))
		require.Equal(t, "20", q.Get("pageSize"))
		require.NotEmpty(t, q.Get("q"))

		json.NewEncoder(w).Encode(NewsResponse{
			Status: "ok",
			Articles: []Article{
				{Title: "Orman yangınları artıyor", Description: "iklim krizi"},
				{Title: "Bitcoin rekor kırdı", Description: "piyasa"},
				{Title: "Deniz temizliği", Description: "gönüllüler futbol sahasında buluştu"},
			},
		})
	}))
	defer srv.Close()

	resp, err := NewNews("test-key", srv.URL).Search(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, resp.Articles, 1)
	require.Equal(t, "Orman yangınları artıyor", resp.Articles[0].Title)
	require.Equal(t, 1, resp.TotalResults)
}

func TestNewsSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewNews("bad-key", srv.URL).Search(context.Background(), "çevre")
	require.Error(t, err)
}

func TestNewsSearchMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	_, err := NewNews("key", srv.URL).Search(context.Background(), "çevre")
	require.Error(t, err)
}
