package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// WatermillBridge implements the Publisher and Subscriber interfaces using watermill's GoChannel.
type WatermillBridge struct {
	pub    message.Publisher
	sub    message.Subscriber
	tracer trace.Tracer
}

const (
	// Metadata keys used to transfer our Message structure fields through watermill's message.
	metaKeyVisitorID = "visitor_id"
	metaKeyTopic     = "topic"
)

// NewWatermillBridge initializes an in-memory Pub/Sub system without tracing.
func NewWatermillBridge() *WatermillBridge {
	return NewWatermillBridgeWithTracer(noop.NewTracerProvider().Tracer(tracerName))
}

// NewWatermillBridgeWithTracer initializes an in-memory Pub/Sub system that
// records a span for every publish and every handled message.
func NewWatermillBridgeWithTracer(tracer trace.Tracer) *WatermillBridge {
	logger := watermill.NewStdLogger(false, false)
	goChannel := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		logger,
	)

	return &WatermillBridge{
		pub:    goChannel,
		sub:    goChannel,
		tracer: tracer,
	}
}

func mapToWatermillMessage(msg Message) *message.Message {
	wmMsg := message.NewMessage(watermill.NewUUID(), msg.Payload)

	wmMsg.Metadata.Set(metaKeyVisitorID, msg.VisitorID)
	wmMsg.Metadata.Set(metaKeyTopic, msg.Topic)
	for k, v := range msg.Metadata {
		wmMsg.Metadata.Set(k, v)
	}

	return wmMsg
}

func mapToPubSubMessage(wmMsg *message.Message) Message {
	metadata := make(map[string]string)
	for k, v := range wmMsg.Metadata {
		if k != metaKeyVisitorID && k != metaKeyTopic {
			metadata[k] = v
		}
	}

	return Message{
		Topic:     wmMsg.Metadata.Get(metaKeyTopic),
		VisitorID: wmMsg.Metadata.Get(metaKeyVisitorID),
		Payload:   wmMsg.Payload,
		Metadata:  metadata,
	}
}

// Publish implements the Publisher interface.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	wmMsg := mapToWatermillMessage(msg)
	_, span := startSpan(ctx, wb.tracer, "publish", msg, wmMsg.UUID)

	err := wb.pub.Publish(msg.Topic, wmMsg)
	endSpan(span, err)
	return err
}

// Subscribe implements the Subscriber interface. Messages are handled on a
// background goroutine; Subscribe returns once the subscription is active.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wmMsg := range messages {
			msg := mapToPubSubMessage(wmMsg)
			spanCtx, span := startSpan(ctx, wb.tracer, "process", msg, wmMsg.UUID)

			err := handler(spanCtx, msg)
			endSpan(span, err)
			if err != nil {
				slog.Error("Failed to handle message", "topic", topic, "msg_id", wmMsg.UUID, "error", err)
				// GoChannel would redeliver a nacked message forever; log and move on.
				wmMsg.Ack()
				continue
			}
			wmMsg.Ack()
		}
		slog.Debug("Subscription message loop ended", "topic", topic)
	}()

	return nil
}

// Close implements the Publisher and Subscriber interface to shut down the bridge.
func (wb *WatermillBridge) Close() error {
	return wb.sub.Close()
}
