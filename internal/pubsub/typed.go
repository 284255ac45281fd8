package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/nfrund/alphaprime/internal/topicmgr"
)

// Event wraps a topic name and provides type-safe publishing and subscribing.
type Event[T any] struct {
	topicName string
}

// NewEvent creates a typed event and registers it with the default topic
// registry. The payload's JSON field names are recorded for documentation.
func NewEvent[T any](name, description string) Event[T] {
	var zero T
	t := reflect.TypeOf(zero)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var fields []string
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("json")
			if tag == "" || tag == "-" {
				continue
			}
			fieldName, _, _ := strings.Cut(tag, ",")
			fields = append(fields, fieldName)
		}
	}

	topicmgr.Default().MustRegister(topicmgr.TopicConfig{
		Name:        name,
		Description: description,
		Fields:      fields,
		TypeName:    t.Name(),
	})

	return Event[T]{topicName: name}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Publish sends a typed event. The compiler ensures 'payload' matches 'T'.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], visitorID string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.Name(), err)
	}

	return p.Publish(ctx, Message{
		Topic:     event.Name(),
		VisitorID: visitorID,
		Payload:   data,
	})
}

// Subscribe decodes each message on the event's topic into T before calling fn.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], fn func(ctx context.Context, payload T, msg Message) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", event.Name(), err)
		}
		return fn(ctx, payload, msg)
	})
}
