// Package events publishes listing change events to Kafka for downstream
// consumers such as notification delivery.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"lastbite/internal/engine/store"
	"lastbite/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	SchemaVersion = 1

	maxBatch     = 100
	writeTimeout = 5 * time.Second
)

// Writer is the subset of *kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Message struct {
	V          int       `json:"v"`
	Type       string    `json:"type"`
	ID         uuid.UUID `json:"id"`
	Seq        uint64    `json:"seq"`
	Status     string    `json:"status"`
	ProducerID uuid.UUID `json:"producer_id"`
	Remaining  int       `json:"remaining"`
	At         time.Time `json:"at"`
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// Publisher forwards store events to a Writer from its own goroutine. A
// full buffer drops the event with a warning rather than stalling the
// store.
type Publisher struct {
	writer  Writer
	clock   clock.Clock
	logger  *slog.Logger
	ch      chan kafka.Message
	quit    chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Int64
	sent    atomic.Int64
}

func NewPublisher(w Writer, buffer int, clk clock.Clock, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 1
	}
	return &Publisher{
		writer: w,
		clock:  clk,
		logger: logger,
		ch:     make(chan kafka.Message, buffer),
		quit:   make(chan struct{}),
	}
}

func Encode(ev store.Event, at time.Time) (kafka.Message, error) {
	l := ev.Listing
	body, err := json.Marshal(Message{
		V:          SchemaVersion,
		Type:       string(ev.Kind),
		ID:         l.ID(),
		Seq:        ev.Seq,
		Status:     l.Status().String(),
		ProducerID: l.ProducerID(),
		Remaining:  l.Remaining(),
		At:         at,
	})
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{Key: []byte(l.ID().String()), Value: body}, nil
}

// OnEvent is a store.Listener; it never blocks.
func (p *Publisher) OnEvent(ev store.Event) {
	msg, err := Encode(ev, p.clock.Now())
	if err != nil {
		p.logger.Error("encode listing event failed", slog.String("error", err.Error()))
		return
	}
	select {
	case p.ch <- msg:
	default:
		p.dropped.Add(1)
		p.logger.Warn("event buffer full, dropping listing event",
			slog.String("listing_id", ev.Listing.ID().String()),
			slog.Uint64("seq", ev.Seq))
	}
}

func (p *Publisher) Start() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for {
			select {
			case msg := <-p.ch:
				p.send(p.batch(msg))
			case <-p.quit:
				for {
					select {
					case msg := <-p.ch:
						p.send(p.batch(msg))
					default:
						return
					}
				}
			}
		}
	}()
}

// Stop flushes buffered events, bounded by ctx, and closes the writer.
func (p *Publisher) Stop(ctx context.Context) error {
	close(p.quit)
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return p.writer.Close()
}

func (p *Publisher) Dropped() int64 { return p.dropped.Load() }
func (p *Publisher) Sent() int64    { return p.sent.Load() }

func (p *Publisher) batch(first kafka.Message) []kafka.Message {
	msgs := []kafka.Message{first}
	for len(msgs) < maxBatch {
		select {
		case m := <-p.ch:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
	return msgs
}

func (p *Publisher) send(msgs []kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error("publish listing events failed",
			slog.Int("count", len(msgs)),
			slog.String("error", err.Error()))
		return
	}
	p.sent.Add(int64(len(msgs)))
}
