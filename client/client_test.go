package client

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warbee0712/lunajoy/controllers"
	"github.com/warbee0712/lunajoy/models"
	"github.com/warbee0712/lunajoy/services"
)

func newWSServer(t *testing.T) (*services.Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := services.NewHub()
	r := gin.New()
	r.GET("/ws", controllers.NewRealtimeController(hub).HandleWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestClientReceivesPushedEvents(t *testing.T) {
	hub, wsURL := newWSServer(t)

	c, err := Dial(context.Background(), wsURL)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	rec := NewReconciler(c)
	go c.Run(rec)

	rec.SetUser("u1")
	require.Eventually(t, func() bool { return hub.RoomSize("u1") == 1 },
		time.Second, 10*time.Millisecond)

	event := models.LogCreatedEvent{ID: 1, UserID: "u1", Mood: 5, Anxiety: 3, Stress: 2, LogDate: "2024-05-01"}
	require.NoError(t, hub.Publish("u1", services.Frame{Event: "newLog", Data: event}))

	require.Eventually(t, func() bool { return rec.Timeline().Len() == 1 },
		time.Second, 10*time.Millisecond)
	tl := rec.Timeline()
	assert.Equal(t, []string{"2024-05-01"}, tl.Dates)
	assert.Equal(t, []int{5}, tl.Mood)

	// a duplicate push for the same date is discarded
	require.NoError(t, hub.Publish("u1", services.Frame{Event: "newLog", Data: event}))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, rec.Timeline().Len())
}

func TestClientUserSwitchRejoins(t *testing.T) {
	hub, wsURL := newWSServer(t)

	c, err := Dial(context.Background(), wsURL)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	rec := NewReconciler(c)
	go c.Run(rec)

	rec.SetUser("u1")
	require.Eventually(t, func() bool { return hub.RoomSize("u1") == 1 },
		time.Second, 10*time.Millisecond)

	rec.SetUser("u2")
	require.Eventually(t, func() bool { return hub.RoomSize("u2") == 1 },
		time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return hub.RoomSize("u1") == 0 },
		time.Second, 10*time.Millisecond)

	// an event for the old user never lands in the new timeline
	require.NoError(t, hub.Publish("u1", services.Frame{Event: "newLog",
		Data: models.LogCreatedEvent{UserID: "u1", LogDate: "2024-05-01"}}))
	require.NoError(t, hub.Publish("u2", services.Frame{Event: "newLog",
		Data: models.LogCreatedEvent{UserID: "u2", LogDate: "2024-05-02"}}))

	require.Eventually(t, func() bool { return rec.Timeline().Len() == 1 },
		time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"2024-05-02"}, rec.Timeline().Dates)
}
