package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/CUknot/realtime_chat/config"
	"github.com/CUknot/realtime_chat/database"
	"github.com/CUknot/realtime_chat/models"
	"github.com/CUknot/realtime_chat/websocket"
	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	router *gin.Engine
	store  *database.GormStore
	hub    *websocket.Hub
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := database.ConnectSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	cfg.HistoryLimit = 3

	hub := websocket.NewHub(store)
	router := gin.New()
	RegisterRoutes(router, store, hub, cfg)

	return &apiFixture{router: router, store: store, hub: hub}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func errorText(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

func TestHealthCheck(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"status": "ok", "message": "Server is running"}, decode[map[string]string](t, w))
}

func TestRooms_CreateGetList(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/rooms", gin.H{"name": "  general ", "description": "lobby"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Room](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "general", created.Name)

	w = f.do(t, http.MethodPost, "/api/rooms", gin.H{"name": "random"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodGet, "/api/rooms/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Room](t, w)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.Description)
	assert.Equal(t, "lobby", *got.Description)

	w = f.do(t, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rooms := decode[[]models.Room](t, w)
	require.Len(t, rooms, 2)
	names := []string{rooms[0].Name, rooms[1].Name}
	assert.ElementsMatch(t, []string{"general", "random"}, names)
	assert.False(t, rooms[0].CreatedAt.Before(rooms[1].CreatedAt))
}

func TestRooms_ListEmpty(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestRooms_CreateErrors(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/rooms", gin.H{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Room name is required", errorText(t, w))

	w = f.do(t, http.MethodPost, "/api/rooms", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Room name is required", errorText(t, w))

	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/rooms", gin.H{"name": "general"}).Code)
	w = f.do(t, http.MethodPost, "/api/rooms", gin.H{"name": "general"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Room already exists", errorText(t, w))

	w = f.do(t, http.MethodPost, "/api/rooms", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRooms_GetNotFound(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/api/rooms/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Room not found", errorText(t, w))
}

func TestMessages_CreateAndHistory(t *testing.T) {
	f := newAPIFixture(t)

	for _, content := range []string{"one", "two", "three", "four"} {
		w := f.do(t, http.MethodPost, "/api/messages", gin.H{"roomId": "r1", "username": "alice", "content": content})
		require.Equal(t, http.StatusCreated, w.Code)
		msg := decode[models.Message](t, w)
		assert.Equal(t, content, msg.Content)
		assert.Equal(t, "r1", msg.RoomID)
		// Distinct timestamps keep the history order deterministic.
		time.Sleep(5 * time.Millisecond)
	}

	w := f.do(t, http.MethodGet, "/api/messages/room/r1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]models.Message](t, w)
	require.Len(t, history, 3)
	assert.Equal(t, "one", history[0].Content)
	assert.Equal(t, "two", history[1].Content)
	assert.Equal(t, "three", history[2].Content)

	w = f.do(t, http.MethodGet, "/api/messages/room/empty", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestMessages_MissingFields(t *testing.T) {
	f := newAPIFixture(t)

	for _, body := range []gin.H{
		{"roomId": "r1", "username": "alice"},
		{"roomId": "r1", "content": "hi"},
		{"username": "alice", "content": "hi"},
		{"roomId": "r1", "username": "alice", "content": "   "},
	} {
		w := f.do(t, http.MethodPost, "/api/messages", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields", errorText(t, w))
	}
}

func TestMessages_PostBroadcastsToRoom(t *testing.T) {
	f := newAPIFixture(t)
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	resp.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(websocket.Message{Type: websocket.EventJoinRoom, Payload: "r1"}))
	require.Eventually(t, func() bool { return f.hub.MemberCount("r1") == 1 }, 2*time.Second, 10*time.Millisecond)

	w := f.do(t, http.MethodPost, "/api/messages", gin.H{"roomId": "r1", "username": "bot", "content": "via http"})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame struct {
		Type    string         `json:"type"`
		Payload models.Message `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, websocket.EventNewMessage, frame.Type)
	assert.Equal(t, "via http", frame.Payload.Content)
	assert.Equal(t, "bot", frame.Payload.Username)
}

func TestStoreFailureReturns500(t *testing.T) {
	f := newAPIFixture(t)
	require.NoError(t, f.store.Close())

	w := f.do(t, http.MethodGet, "/api/rooms", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch rooms", errorText(t, w))

	w = f.do(t, http.MethodPost, "/api/messages", gin.H{"roomId": "r1", "username": "alice", "content": "hi"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
