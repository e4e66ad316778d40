// Package pgchannel bridges Postgres LISTEN/NOTIFY into the in-process
// notification bus. Units of work in any process issue pg_notify on the
// table_changed channel when they commit; this listener reposts every
// payload into the local bus so subscribers here observe writes made by
// other processes too. Signals already published locally arrive a second
// time through this path; delivery is at-least-once and duplicates are
// harmless.
package pgchannel

import (
	"context"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/ports"
)

const (
	minReconnectInterval = time.Second
	maxReconnectInterval = time.Minute

	// pingInterval bounds how long a dead connection can go unnoticed
	// when no notifications arrive.
	pingInterval = 90 * time.Second
)

// Listener consumes the table_changed Postgres channel and republishes
// payloads on the local change publisher.
type Listener struct {
	dsn       string
	publisher ports.ChangePublisher
	logger    *slog.Logger

	pq   *pq.Listener
	done chan struct{}
}

// NewListener creates a listener for the given database DSN. Start must be
// called before any signals flow.
func NewListener(dsn string, publisher ports.ChangePublisher, logger *slog.Logger) *Listener {
	return &Listener{
		dsn:       dsn,
		publisher: publisher,
		logger:    logger.With("component", "pgchannel_listener"),
		done:      make(chan struct{}),
	}
}

// Start opens the database connection, subscribes to the table_changed
// channel and begins republishing in a background goroutine.
func (l *Listener) Start() error {
	l.pq = pq.NewListener(l.dsn, minReconnectInterval, maxReconnectInterval, l.onEvent)

	if err := l.pq.Listen(postgres.NotifyChannel); err != nil {
		_ = l.pq.Close()
		return err
	}

	go l.run()
	l.logger.InfoContext(context.Background(), "Postgres change listener started",
		"channel", postgres.NotifyChannel)
	return nil
}

// Stop closes the connection and stops the republishing goroutine.
func (l *Listener) Stop() {
	close(l.done)
	if l.pq != nil {
		_ = l.pq.Close()
	}
	l.logger.InfoContext(context.Background(), "Postgres change listener stopped")
}

func (l *Listener) run() {
	for {
		select {
		case notification := <-l.pq.Notify:
			// nil arrives after a reconnect; subscribers re-read on any
			// signal, so no catch-up replay is needed here.
			if notification == nil {
				continue
			}
			l.publisher.Publish(notification.Extra)
		case <-time.After(pingInterval):
			go func() {
				if err := l.pq.Ping(); err != nil {
					l.logger.Error("Postgres change listener ping failed", "error", err)
				}
			}()
		case <-l.done:
			return
		}
	}
}

func (l *Listener) onEvent(event pq.ListenerEventType, err error) {
	if err != nil {
		l.logger.Error("Postgres change listener connection event", "event", int(event), "error", err)
	}
}
