// Package catalog serves the courses, blog posts and career items shown on
// the site. Content is read from an afero filesystem and can be reloaded.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/spf13/afero"
)

// Service holds the current content snapshot. Fetch calls wait for the
// configured latency before answering.
type Service struct {
	fs      afero.Fs
	latency time.Duration

	mu       sync.RWMutex
	snapshot Snapshot
	loadedAt time.Time
}

// NewService loads content from fsys.
func NewService(fsys afero.Fs, latency time.Duration) (*Service, error) {
	s := &Service{fs: fsys, latency: latency}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload reads the content tree again. On error the previous snapshot is
// kept.
func (s *Service) Reload() (Snapshot, error) {
	snap, err := Load(s.fs)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load catalog: %w", err)
	}

	s.mu.Lock()
	s.snapshot = snap
	s.loadedAt = time.Now()
	s.mu.Unlock()

	slog.Debug("Catalog loaded", "courses", len(snap.Courses), "posts", len(snap.Posts), "career", len(snap.Career))
	return snap, nil
}

// LoadedAt reports when the current snapshot was read.
func (s *Service) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *Service) FetchCourses(ctx context.Context) ([]domain.Course, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshot.Courses), nil
}

func (s *Service) FetchBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshot.Posts), nil
}

func (s *Service) FetchCareerItems(ctx context.Context) ([]domain.CareerItem, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshot.Career), nil
}

// FindPost returns the post with the given id without simulated latency.
func (s *Service) FindPost(id string) (domain.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.snapshot.Posts {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.BlogPost{}, domain.ErrNotFound
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
