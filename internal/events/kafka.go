package events

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"sukaikan/internal/logger"
	"sukaikan/internal/metrics"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher buffers envelopes and writes them from a single goroutine.
// Messages are keyed by order id so the events of one order stay ordered.
type KafkaPublisher struct {
	w       messageWriter
	inbox   chan kafka.Message
	stop    chan struct{}
	done    chan struct{}
	started atomic.Bool
	once    sync.Once

	sent, failed, dropped metrics.Counter
}

// Stats counts what happened to published envelopes so far.
type Stats struct {
	Sent    uint64
	Failed  uint64
	Dropped uint64
}

func NewKafkaPublisher(brokers []string, buf int) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}, buf)
}

func newKafkaPublisher(w messageWriter, buf int) *KafkaPublisher {
	return &KafkaPublisher{
		w:     w,
		inbox: make(chan kafka.Message, buf),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start runs the write loop until ctx is cancelled or Close is called.
// Buffered messages are flushed before the writer is closed.
func (p *KafkaPublisher) Start(ctx context.Context) {
	p.started.Store(true)
	go func() {
		defer close(p.done)
		for {
			select {
			case <-ctx.Done():
				p.drain()
				return
			case <-p.stop:
				p.drain()
				return
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

func (p *KafkaPublisher) drain() {
	for {
		select {
		case m := <-p.inbox:
			p.write(m)
		default:
			if err := p.w.Close(); err != nil {
				logger.L().Error("failed to close kafka writer", zap.Error(err))
			}
			return
		}
	}
}

func (p *KafkaPublisher) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.w.WriteMessages(ctx, m); err != nil {
		logger.L().Error("failed to write event",
			zap.String("topic", m.Topic),
			zap.ByteString("key", m.Key),
			zap.Error(err),
		)
		p.failed.Inc()
		return
	}
	p.sent.Inc()
}

// Publish enqueues env without blocking. A full buffer drops the event.
func (p *KafkaPublisher) Publish(ctx context.Context, env Envelope) error {
	if env.RequestID == "" {
		env.RequestID = logger.RequestIDFrom(ctx)
	}

	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	m := kafka.Message{
		Topic: TopicFor(env.EventType),
		Key:   []byte(env.CorrelationID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.EventType)},
		},
	}

	select {
	case <-p.stop:
		return ErrPublisherClosed
	default:
	}

	select {
	case p.inbox <- m:
		return nil
	default:
		p.dropped.Inc()
		return ErrBufferFull
	}
}

func (p *KafkaPublisher) Stats() Stats {
	return Stats{Sent: p.sent.Load(), Failed: p.failed.Load(), Dropped: p.dropped.Load()}
}

// Close stops the write loop and waits for the flush.
func (p *KafkaPublisher) Close() {
	p.once.Do(func() { close(p.stop) })
	if p.started.Load() {
		<-p.done
	}
}
