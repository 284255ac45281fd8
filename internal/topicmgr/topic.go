// Package topicmgr keeps a catalogue of the event topics the application
// publishes, so they can be listed and validated.
package topicmgr

import "time"

// TopicConfig describes a topic.
type TopicConfig struct {
	Name        string   `json:"name"`
	Module      string   `json:"module"`
	Description string   `json:"description"`
	Fields      []string `json:"fields,omitempty"`
	TypeName    string   `json:"type_name,omitempty"`
}

// Topic is a registered TopicConfig.
type Topic struct {
	TopicConfig
	RegisteredAt time.Time `json:"registered_at"`
}
