package audit

import (
	"sync"
	"time"
)

const maxRecent = 50

// Entry is one observed event.
type Entry struct {
	Topic   string    `json:"topic"`
	Summary string    `json:"summary"`
	At      time.Time `json:"at"`
}

// Stats is a snapshot of the trail.
type Stats struct {
	Counts map[string]int `json:"counts"`
	Recent []Entry        `json:"recent"`
}

// Trail counts events per topic and keeps the most recent ones.
type Trail struct {
	mu     sync.Mutex
	counts map[string]int
	recent []Entry
}

func NewTrail() *Trail {
	return &Trail{counts: make(map[string]int)}
}

func (t *Trail) Record(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.counts[e.Topic]++
	t.recent = append(t.recent, e)
	if len(t.recent) > maxRecent {
		t.recent = t.recent[len(t.recent)-maxRecent:]
	}
}

func (t *Trail) Count(topic string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[topic]
}

// Stats returns a copy of the counts and the recent entries, newest first.
func (t *Trail) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Stats{
		Counts: make(map[string]int, len(t.counts)),
		Recent: make([]Entry, 0, len(t.recent)),
	}
	for k, v := range t.counts {
		s.Counts[k] = v
	}
	for i := len(t.recent) - 1; i >= 0; i-- {
		s.Recent = append(s.Recent, t.recent[i])
	}
	return s
}
