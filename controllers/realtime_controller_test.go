package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warbee0712/lunajoy/models"
)

type wsFrame struct {
	Event string                 `json:"event"`
	Data  models.LogCreatedEvent `json:"data"`
}

func dialWS(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func joinRoom(t *testing.T, conn *websocket.Conn, userID string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]string{"event": "joinRoom", "userId": userID}))
}

func readEvent(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame wsFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func assertNoEvent(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	var frame wsFrame
	err := conn.ReadJSON(&frame)
	assert.Error(t, err, "expected no event, got %+v", frame)
}

func submitLog(t *testing.T, serverURL, body string) {
	t.Helper()
	resp, err := http.Post(serverURL+"/log", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRealtimeDeliveryToAllOwnerSessions(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "u1")
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	tabA := dialWS(t, srv.URL)
	tabB := dialWS(t, srv.URL)
	other := dialWS(t, srv.URL)
	joinRoom(t, tabA, "u1")
	joinRoom(t, tabB, "u1")
	joinRoom(t, other, "u2")

	require.Eventually(t, func() bool { return app.hub.RoomSize("u1") == 2 },
		time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return app.hub.RoomSize("u2") == 1 },
		time.Second, 10*time.Millisecond)

	submitLog(t, srv.URL, validLogBody)

	for _, conn := range []*websocket.Conn{tabA, tabB} {
		frame := readEvent(t, conn)
		assert.Equal(t, "newLog", frame.Event)
		assert.Equal(t, "u1", frame.Data.UserID)
		assert.Equal(t, 5, frame.Data.Mood)
		assert.Equal(t, 3, frame.Data.Anxiety)
		assert.Equal(t, 2, frame.Data.Stress)
		assert.Equal(t, "2024-05-01", frame.Data.LogDate)
		assert.NotZero(t, frame.Data.ID)

		assertNoEvent(t, conn) // exactly one per session
	}

	assertNoEvent(t, other)
}

func TestRealtimeFIFOPerRoom(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "u1")
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	conn := dialWS(t, srv.URL)
	joinRoom(t, conn, "u1")
	require.Eventually(t, func() bool { return app.hub.RoomSize("u1") == 1 },
		time.Second, 10*time.Millisecond)

	submitLog(t, srv.URL, validLogBody)
	submitLog(t, srv.URL, strings.Replace(validLogBody, "2024-05-01", "2024-05-02", 1))

	first := readEvent(t, conn)
	second := readEvent(t, conn)
	assert.Equal(t, "2024-05-01", first.Data.LogDate)
	assert.Equal(t, "2024-05-02", second.Data.LogDate)
}

func TestRealtimeLeaveRoomStopsDelivery(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "u1")
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	conn := dialWS(t, srv.URL)
	joinRoom(t, conn, "u1")
	require.Eventually(t, func() bool { return app.hub.RoomSize("u1") == 1 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(map[string]string{"event": "leaveRoom", "userId": "u1"}))
	require.Eventually(t, func() bool { return app.hub.RoomSize("u1") == 0 },
		time.Second, 10*time.Millisecond)

	submitLog(t, srv.URL, validLogBody)
	assertNoEvent(t, conn)
}

func TestRealtimeDisconnectPerformsImplicitLeave(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	conn := dialWS(t, srv.URL)
	joinRoom(t, conn, "u1")
	require.Eventually(t, func() bool { return app.hub.RoomSize("u1") == 1 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return app.hub.RoomSize("u1") == 0 },
		time.Second, 10*time.Millisecond)
}

func TestRealtimeNoReplayForLateJoiners(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "u1")
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	submitLog(t, srv.URL, validLogBody)

	conn := dialWS(t, srv.URL)
	joinRoom(t, conn, "u1")
	require.Eventually(t, func() bool { return app.hub.RoomSize("u1") == 1 },
		time.Second, 10*time.Millisecond)

	assertNoEvent(t, conn)
}
