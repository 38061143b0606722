package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/tableside/models"
	"github.com/ray-remotestate/tableside/notify"
)

// feedServer serves the catch-up order list and pushes one order event to
// every websocket peer.
func feedServer(t *testing.T, existing []models.Order, pushed *models.Order) *httptest.Server {
	t.Helper()

	var upgrader websocket.Upgrader

	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(existing)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if pushed != nil {
			event := notify.Event{Type: notify.EventNewOrder, Order: pushed}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}

		// hold the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	return httptest.NewServer(mux)
}

func TestFeedCatchesUpThenAppliesPush(t *testing.T) {
	old := models.Order{ID: uuid.New(), TableNumber: "3", Status: models.StatusPending}
	fresh := models.Order{ID: uuid.New(), TableNumber: "7", Status: models.StatusPending}

	srv := feedServer(t, []models.Order{old}, &fresh)
	defer srv.Close()

	snapshots := make(chan []models.Order, 4)
	arrivals := make(chan models.Order, 4)

	feed := NewFeed(New(srv.URL))
	feed.OnSnapshot = func(orders []models.Order) { snapshots <- orders }
	feed.OnNewOrder = func(order models.Order) { arrivals <- order }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		feed.Run(ctx)
		close(done)
	}()

	first := nextSnapshot(t, snapshots)
	require.Len(t, first, 1)
	assert.Equal(t, old.ID, first[0].ID)

	second := nextSnapshot(t, snapshots)
	require.Len(t, second, 2)
	assert.Equal(t, fresh.ID, second[0].ID, "pushed order goes to the front")
	assert.Equal(t, old.ID, second[1].ID)

	select {
	case got := <-arrivals:
		assert.Equal(t, fresh.ID, got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("OnNewOrder never fired")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("feed did not stop on context cancel")
	}
}

func TestFeedIgnoresDuplicatePush(t *testing.T) {
	order := models.Order{ID: uuid.New(), TableNumber: "5"}

	// the pushed order is already in the catch-up list
	srv := feedServer(t, []models.Order{order}, &order)
	defer srv.Close()

	snapshots := make(chan []models.Order, 4)
	arrivals := make(chan models.Order, 4)

	feed := NewFeed(New(srv.URL))
	feed.OnSnapshot = func(orders []models.Order) { snapshots <- orders }
	feed.OnNewOrder = func(o models.Order) { arrivals <- o }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feed.Run(ctx)

	first := nextSnapshot(t, snapshots)
	require.Len(t, first, 1)

	select {
	case <-arrivals:
		t.Fatal("duplicate push should not fire OnNewOrder")
	case <-time.After(300 * time.Millisecond):
	}
	assert.Empty(t, snapshots)
}

func TestFeedReconnectReleasesConnectionWatcher(t *testing.T) {
	var upgrader websocket.Upgrader
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Order{})
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		// drop the peer immediately, forcing the feed to reconnect
		if conn, err := upgrader.Upgrade(w, r, nil); err == nil {
			conn.Close()
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	feed := NewFeed(New(srv.URL))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	before := runtime.NumGoroutine()
	for i := 0; i < 10; i++ {
		require.Error(t, feed.connect(ctx))
	}

	// every attempt's watcher must have exited; allow a little slack for
	// the http transport's own goroutines
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before+3 {
		if time.Now().After(deadline) {
			t.Fatalf("goroutines grew from %d to %d across reconnects", before, runtime.NumGoroutine())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func nextSnapshot(t *testing.T, snapshots chan []models.Order) []models.Order {
	t.Helper()
	select {
	case s := <-snapshots:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}
