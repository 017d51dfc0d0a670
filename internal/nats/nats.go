package nats

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	libnats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"groupme/internal/config"
	"groupme/internal/core"
)

const (
	appName = "groupme"
)

// NATS publishes domain events to JetStream. Without a configured URL every publish is a no-op.
type NATS struct {
	Logger *slog.Logger
	Config *config.Config

	JS jetstream.JetStream
}

func (n *NATS) Init(ctx context.Context) error {
	n.Logger = n.Logger.With("component", "nats.NATS")

	if n.Config.NATSURL == "" {
		n.Logger.Warn("No NATS URL configured, events are dropped")
		return nil
	}

	nc, err := libnats.Connect(n.Config.NATSURL, libnats.Name(appName))
	if err != nil {
		return err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return err
	}

	n.JS = js

	if n.Config.NATSInit {
		if err := n.initNATS(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (n *NATS) HealthCheck(context.Context) error {
	if n.JS == nil {
		return nil
	}
	_, err := n.JS.Conn().RTT()
	return err
}

func (n *NATS) Shutdown(context.Context) error {
	if n.JS == nil {
		return nil
	}
	return n.JS.Conn().Drain()
}

func (n *NATS) Publish(ctx context.Context, event core.Event) error {
	if n.JS == nil {
		return nil
	}

	msg, err := NewMessage(event)
	if err != nil {
		return err
	}

	_, err = n.JS.PublishMsg(ctx, msg)
	if err != nil {
		return err
	}

	n.Logger.Debug("published event", "subject", msg.Subject, "id", event.ID())
	return nil
}

// NewMessage encodes the event for subject groupme.<type>, deduplicated by the event id.
func NewMessage(event core.Event) (*libnats.Msg, error) {
	bytes, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &libnats.Msg{
		Subject: Subject(event.Type),
		Data:    bytes,
		Header: libnats.Header{
			libnats.MsgIdHdr: []string{event.ID()},
		},
	}, nil
}

func Subject(t core.EventType) string {
	return appName + "." + string(t)
}

func (n *NATS) initNATS(ctx context.Context) error {
	n.Logger.Info("Initializing NATS")
	_, err := n.JS.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       appName,
		Subjects:   []string{appName + ".>"},
		MaxAge:     7 * 24 * time.Hour,
		Duplicates: 2 * time.Minute,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("Stream created or updated", "name", appName)

	return nil
}
