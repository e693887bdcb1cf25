package webserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/greenlink-tr/greenlink/src/api/config"
	"github.com/greenlink-tr/greenlink/src/api/data"
	"github.com/greenlink-tr/greenlink/src/api/poll"
	"github.com/greenlink-tr/greenlink/src/api/upstream"
)

// newTestServer wires a router against file stores in a temp dir. No redis,
// no mysql, no recaptcha secret, so everything stays hermetic.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	ledger := data.NewLedger(dir + "/event-votes.json")
	requests := data.NewRequestStore(dir + "/event-requests.json")

	return New(config.Config{}, Deps{
		Engine:    poll.NewEngine(ledger),
		Catalog:   poll.NewCatalog(poll.PlannedEvents(), ledger, requests),
		Ledger:    ledger,
		Requests:  requests,
		Forum:     data.NewForumMemory(),
		Events:    upstream.NewEvents(upstream.EventsConfig{}),
		Recaptcha: upstream.NewRecaptcha("", ""),
	})
}

func doJSON(t *testing.T, g *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestCastVote(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
		wantVotes      map[string]int
	}{
		{
			name:           "first yes vote",
			body:           map[string]any{"id": "evt-1", "choice": "yes"},
			expectedStatus: http.StatusOK,
			wantVotes:      map[string]int{"yes": 1, "no": 0},
		},
		{
			name:           "explicit null previous choice",
			body:           map[string]any{"id": "evt-2", "choice": "no", "previousChoice": nil},
			expectedStatus: http.StatusOK,
			wantVotes:      map[string]int{"yes": 0, "no": 1},
		},
		{
			name:           "invalid choice",
			body:           map[string]any{"id": "evt-1", "choice": "maybe"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid previous choice",
			body:           map[string]any{"id": "evt-1", "choice": "yes", "previousChoice": "abstain"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing id",
			body:           map[string]any{"choice": "yes"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestServer(t)
			w := doJSON(t, g, "POST", "/api/event-vote", tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus != http.StatusOK {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.Equal(t, false, resp["ok"])
				return
			}

			var resp struct {
				OK    bool           `json:"ok"`
				ID    string         `json:"id"`
				Votes map[string]int `json:"votes"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.True(t, resp.OK)
			require.Equal(t, tt.body["id"], resp.ID)
			require.Equal(t, tt.wantVotes, resp.Votes)
		})
	}
}

func TestCastVoteSwitch(t *testing.T) {
	g := newTestServer(t)

	w := doJSON(t, g, "POST", "/api/event-vote", map[string]any{"id": "evt-1", "choice": "yes"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, g, "POST", "/api/event-vote", map[string]any{
		"id": "evt-1", "choice": "no", "previousChoice": "yes",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Votes map[string]int `json:"votes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, map[string]int{"yes": 0, "no": 1}, resp.Votes)
}

func TestInvalidVoteLeavesLedgerUnchanged(t *testing.T) {
	g := newTestServer(t)

	w := doJSON(t, g, "POST", "/api/event-vote", map[string]any{"id": "evt-1", "choice": "maybe"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, g, "GET", "/api/event-votes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Votes map[string]map[string]int `json:"votes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Empty(t, resp.Votes)
}

func TestSubmitEventRequest(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
	}{
		{
			name: "full submission",
			body: map[string]any{
				"name": "Ayşe", "email": "ayse@example.com", "city": "izmir",
				"type": "sahil-temizligi", "date": "2026-01-10", "people": "10-20",
				"message": "Sahili temizleyelim", "motivation": []string{"doğa"},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "everything optional",
			body:           map[string]any{},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad email",
			body:           map[string]any{"email": "not-an-email"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown type code",
			body:           map[string]any{"type": "uzay-yurusu"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestServer(t)
			w := doJSON(t, g, "POST", "/api/event-request", tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var resp struct {
					OK    bool `json:"ok"`
					Saved struct {
						ID        string `json:"id"`
						CreatedAt string `json:"createdAt"`
					} `json:"saved"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.True(t, resp.OK)
				require.NotEmpty(t, resp.Saved.ID)
				require.NotEmpty(t, resp.Saved.CreatedAt)
			}
		})
	}
}

// Submit a request, see it in the catalog with zero votes, vote on it, see
// the tally move.
func TestSubmittedRequestJoinsPoll(t *testing.T) {
	g := newTestServer(t)

	w := doJSON(t, g, "POST", "/api/event-request", map[string]any{
		"city": "izmir", "type": "sahil-temizligi", "message": "Clean the shore\nDetails...",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var submitted struct {
		Saved struct {
			ID string `json:"id"`
		} `json:"saved"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitted))

	type item struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Type  string `json:"type"`
		Yes   int    `json:"yes"`
		No    int    `json:"no"`
	}
	listItems := func() []item {
		w := doJSON(t, g, "GET", "/api/event-polls", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Events []item `json:"events"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Events
	}

	items := listItems()
	require.Len(t, items, 4)
	got := items[3]
	require.Equal(t, submitted.Saved.ID, got.ID)
	require.Equal(t, "Clean the shore", got.Title)
	require.Equal(t, "Sahil Temizliği", got.Type)
	require.Zero(t, got.Yes)
	require.Zero(t, got.No)

	w = doJSON(t, g, "POST", "/api/event-vote", map[string]any{"id": got.ID, "choice": "yes"})
	require.Equal(t, http.StatusOK, w.Code)

	items = listItems()
	require.Equal(t, 1, items[3].Yes)
	require.Zero(t, items[3].No)
}

func TestStatus(t *testing.T) {
	g := newTestServer(t)
	w := doJSON(t, g, "GET", "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, true, resp["ok"])
	require.Equal(t, "GreenLink", resp["name"])
}
