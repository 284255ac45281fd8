package topicmgr

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrInvalidTopicName   = errors.New("topic name must be dot separated lowercase segments, e.g. 'enrollment.succeeded'")
	ErrMissingDescription = errors.New("topic description is required")
	ErrDuplicateTopic     = errors.New("topic already registered")
)

var topicNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)+$`)

// Validate checks a topic definition before registration.
func Validate(cfg TopicConfig) error {
	if !topicNamePattern.MatchString(cfg.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidTopicName, cfg.Name)
	}
	if cfg.Description == "" {
		return fmt.Errorf("%w: %s", ErrMissingDescription, cfg.Name)
	}
	return nil
}
