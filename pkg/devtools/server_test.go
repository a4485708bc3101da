package devtools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-ui/loom/pkg/nested"
)

func newTestTree() *nested.Nested[string] {
	n := nested.New[string]()
	n.Register(nested.Registration[string]{ID: "root", Value: "r", Children: []nested.Registration[string]{
		{ID: "a", Value: "alpha"},
		{ID: "b", Value: "beta"},
	}})
	return n
}

func TestTreeEndpoint(t *testing.T) {
	srv := New(newTestTree())

	req := httptest.NewRequest(http.MethodGet, "/tree", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var items []nested.FlatItem[string]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	require.Len(t, items, 3)
	assert.Equal(t, "root", items[0].ID)
	assert.Equal(t, "root", items[1].ParentID)
}

func TestStateEndpoint(t *testing.T) {
	tree := newTestTree()
	tree.Select("a")
	tree.Open("root")
	srv := New(tree)

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var state State
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Equal(t, []string{"a"}, state.Selected)
	assert.Equal(t, []string{"root"}, state.Mixed)
	assert.Equal(t, []string{"root"}, state.Opened)
	assert.Equal(t, []string{"root"}, state.Roots)
	assert.Equal(t, 3, state.Size)
}

func TestActionEndpoint(t *testing.T) {
	tree := newTestTree()
	srv := New(tree)

	req := httptest.NewRequest(http.MethodPost, "/nodes/root/select", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var state State
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	// Cascade: selecting the root selects the whole subtree.
	assert.ElementsMatch(t, []string{"root", "a", "b"}, state.Selected)
	assert.True(t, tree.Selected("a"))
}

func TestUnknownAction(t *testing.T) {
	srv := New(newTestTree())

	req := httptest.NewRequest(http.MethodPost, "/nodes/root/explode", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebsocketStreamsChanges(t *testing.T) {
	tree := newTestTree()
	srv := New(tree)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The watcher pushes an initial frame on connect.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var state State
	require.NoError(t, conn.ReadJSON(&state))
	assert.Empty(t, state.Selected)

	tree.Select("b")

	require.NoError(t, conn.ReadJSON(&state))
	assert.Contains(t, state.Selected, "b")
}
