package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/preordergh/storefront-core/internal/logging"
)

var ErrDisabled = errors.New("kafka disabled")

type Publisher interface {
	PublishRaw(ctx context.Context, topic, key string, value []byte) error
}

type Client struct {
	Brokers []string
}

func NewClient(brokersCSV string) *Client {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return &Client{Brokers: brokers}
}

func (c *Client) Enabled() bool {
	return len(c.Brokers) > 0
}

func (c *Client) NewReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  c.Brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// KafkaPublisher writes to any topic through one writer; the topic is set per message.
type KafkaPublisher struct {
	w *kafka.Writer
}

func (c *Client) NewPublisher() *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}}
}

func (p *KafkaPublisher) PublishRaw(ctx context.Context, topic, key string, value []byte) error {
	return p.w.WriteMessages(ctx, kafka.Message{Topic: topic, Key: []byte(key), Value: value, Time: time.Now().UTC()})
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }

// NopPublisher is used when no brokers are configured: the outbox still
// records every event, they are just never shipped.
type NopPublisher struct{}

func (NopPublisher) PublishRaw(context.Context, string, string, []byte) error { return ErrDisabled }

// Consume feeds decoded events to fn until ctx is done.
func Consume(ctx context.Context, reader *kafka.Reader, fn func(context.Context, Event)) {
	defer reader.Close()
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logging.Log(logging.Fields{Service: "events", Status: "read_error", Message: err.Error()})
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
			}
			continue
		}
		var evt Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logging.Log(logging.Fields{Service: "events", Status: "decode_error", Message: err.Error()})
			continue
		}
		if evt.EventID == "" {
			continue
		}
		fn(ctx, evt)
	}
}
