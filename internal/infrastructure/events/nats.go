package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

const (
	defaultSubjectPrefix = "ewaste"
	connectTimeout       = 5 * time.Second
)

// Connect dials NATS with reconnects enabled. name identifies this client in
// server monitoring.
func Connect(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(connectTimeout),
		nats.MaxReconnects(-1),
		nats.RetryOnFailedConnect(false),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return nc, nil
}

type publisher interface {
	Publish(subject string, data []byte) error
}

// StatusPublisher sends status change events as JSON. Subjects are
// <prefix>.item.status.<new status>, so consumers can subscribe to
// <prefix>.item.status.> for all changes.
type StatusPublisher struct {
	conn   publisher
	prefix string
}

func NewStatusPublisher(conn *nats.Conn, prefix string) *StatusPublisher {
	return newStatusPublisher(conn, prefix)
}

func newStatusPublisher(conn publisher, prefix string) *StatusPublisher {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}
	return &StatusPublisher{conn: conn, prefix: prefix}
}

// Subject returns the subject an event for the given status is published on.
func (p *StatusPublisher) Subject(status string) string {
	return p.prefix + ".item.status." + status
}

// PublishStatusChanged does not wait for a server acknowledgement.
func (p *StatusPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}
	if err := p.conn.Publish(p.Subject(string(event.To)), data); err != nil {
		return fmt.Errorf("publish status event: %w", err)
	}
	return nil
}

// NopPublisher drops every event. It is used when NATS is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishStatusChanged(context.Context, ports.StatusChangedEvent) error {
	return nil
}
