package events

import (
	"context"
	"eld-trip-planner/internal/platform/obs"
	"eld-trip-planner/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nats-io/nats.go"
)

// publisher is the subset of *nats.Conn used here.
type publisher interface {
	PublishMsg(m *nats.Msg) error
}

// NATSPublisher implements EventPublisher by sending one JSON message per
// planned trip to a fixed subject.
type NATSPublisher struct {
	nc      *nats.Conn
	pub     publisher
	subject string
}

// ConnectionMetrics tracks the broker connection state. Optional.
type ConnectionMetrics interface {
	NATSSetConnected(connected bool)
}

func NewNATSPublisher(url, subject string, m ConnectionMetrics) (*NATSPublisher, error) {
	if err := validSubject(subject); err != nil {
		return nil, err
	}

	setConnected := func(v bool) {
		if m != nil {
			m.NATSSetConnected(v)
		}
	}

	nc, err := nats.Connect(url,
		nats.Name("eld-trip-planner"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			setConnected(false)
			log.Printf("nats disconnected: err=%v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			setConnected(true)
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			setConnected(false)
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %q: %w", url, err)
	}
	setConnected(true)

	return &NATSPublisher{nc: nc, pub: nc, subject: subject}, nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
		p.nc.Close()
	}
}

func (p *NATSPublisher) PublishTripPlanned(ctx context.Context, ev ports.TripPlannedEvent) (err error) {
	defer obs.Time(ctx, "nats.PublishTripPlanned")(&err)

	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("publish trip planned: encode: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = b
	msg.Header.Set("Content-Type", "application/json")
	if id := obs.RequestID(ctx); id != "" {
		msg.Header.Set(obs.RequestIDHeader, id)
	}

	if err := p.pub.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish trip planned: subject=%s: %w", p.subject, err)
	}
	return nil
}

// validSubject rejects subjects NATS would refuse to publish to.
func validSubject(s string) error {
	if s == "" {
		return errors.New("nats subject is empty")
	}
	if strings.ContainsAny(s, " \t>*") {
		return fmt.Errorf("nats subject %q contains whitespace or wildcards", s)
	}
	for _, tok := range strings.Split(s, ".") {
		if tok == "" {
			return fmt.Errorf("nats subject %q has an empty token", s)
		}
	}
	return nil
}
