package client

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/tableside/models"
	"github.com/ray-remotestate/tableside/notify"
)

const reconnectDelay = 3 * time.Second

// Feed keeps the admin view of the order list current over a single push
// channel. Every (re)connect triggers a catch-up fetch that replaces the
// list wholesale, so a missed event is repaired on the next connect rather
// than papered over by interval polling.
type Feed struct {
	api   *Client
	wsURL string

	// OnSnapshot receives the full order list after each catch-up fetch
	// and after each pushed order.
	OnSnapshot func(orders []models.Order)
	// OnNewOrder fires once per previously unseen order, for notification
	// side effects.
	OnNewOrder func(order models.Order)

	orders []models.Order
	known  map[uuid.UUID]bool
}

func NewFeed(api *Client) *Feed {
	return &Feed{
		api:   api,
		wsURL: wsURL(api.baseURL),
		known: make(map[uuid.UUID]bool),
	}
}

// Run blocks, reconnecting until the context is cancelled.
func (f *Feed) Run(ctx context.Context) error {
	for {
		if err := f.connect(ctx); err != nil {
			logrus.WithError(err).Warn("order feed connection lost")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (f *Feed) connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// the socket is open, so anything created from here on arrives as an
	// event; the catch-up fetch covers everything before
	if err := f.catchUp(ctx); err != nil {
		return err
	}

	// the watcher must not outlive this connection, or every reconnect
	// attempt would leave one behind
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		var event notify.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			logrus.WithError(err).Warn("order feed: malformed event")
			continue
		}
		if event.Type != notify.EventNewOrder || event.Order == nil {
			continue
		}
		f.apply(*event.Order)
	}
}

func (f *Feed) catchUp(ctx context.Context) error {
	orders, err := f.api.Orders(ctx)
	if err != nil {
		return err
	}

	f.orders = orders
	f.known = make(map[uuid.UUID]bool, len(orders))
	for _, o := range orders {
		f.known[o.ID] = true
	}
	f.emit()
	return nil
}

func (f *Feed) apply(order models.Order) {
	if f.known[order.ID] {
		return
	}
	f.known[order.ID] = true
	f.orders = append([]models.Order{order}, f.orders...)
	if f.OnNewOrder != nil {
		f.OnNewOrder(order)
	}
	f.emit()
}

func (f *Feed) emit() {
	if f.OnSnapshot == nil {
		return
	}
	snapshot := make([]models.Order, len(f.orders))
	copy(snapshot, f.orders)
	f.OnSnapshot(snapshot)
}

func wsURL(baseURL string) string {
	url := baseURL
	switch {
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	}
	return url + "/ws"
}
