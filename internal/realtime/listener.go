package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

// NotifyChannel is the Postgres NOTIFY channel raised by the trigger on
// messages inserts. The payload is a JSON-encoded MessageEvent built with
// row_to_json in the trigger function.
const NotifyChannel = "message_inserted"

const reconnectDelay = 3 * time.Second

// Listener holds a dedicated Postgres connection on LISTEN and republishes
// each notification through the Broker. Pool connections cannot be used
// here: LISTEN is connection-scoped state.
type Listener struct {
	connString string
	broker     *Broker
	logger     *slog.Logger
}

// NewListener creates a Listener publishing into broker.
func NewListener(connString string, broker *Broker, logger *slog.Logger) *Listener {
	return &Listener{connString: connString, broker: broker, logger: logger}
}

// Run listens for notifications until ctx is canceled, reconnecting with a
// fixed delay after connection failures. It is meant to run in its own
// goroutine for the lifetime of the server.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.logger.Error("realtime listener disconnected", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.connString)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+NotifyChannel); err != nil {
		return err
	}
	l.logger.Info("realtime listener connected", "channel", NotifyChannel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var evt MessageEvent
		if err := json.Unmarshal([]byte(notification.Payload), &evt); err != nil {
			l.logger.Warn("realtime listener: bad payload", "error", err)
			continue
		}
		l.broker.Publish(evt)
	}
}
