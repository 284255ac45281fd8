package enrollment

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store keeps open forms in memory, each owned by one visitor, and forgets
// them after a period without use.
type Store struct {
	forms    *cache.Cache
	ttl      time.Duration
	services Services
	opts     Options
}

type entry struct {
	owner string
	form  *Form
}

// NewStore creates a Store whose forms expire ttl after their last access.
func NewStore(services Services, opts Options, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		forms:    cache.New(ttl, ttl/2),
		ttl:      ttl,
		services: services,
		opts:     opts,
	}
}

// Create opens a new form for owner.
func (s *Store) Create(owner string, kind Kind, hooks Hooks) *Form {
	f := New(uuid.NewString(), kind, s.services, hooks, s.opts)
	s.forms.Set(f.ID(), &entry{owner: owner, form: f}, s.ttl)
	return f
}

// Get returns the form with id if it belongs to owner, refreshing its expiry.
func (s *Store) Get(id, owner string) (*Form, error) {
	v, found := s.forms.Get(id)
	if !found {
		return nil, ErrFormNotFound
	}
	e := v.(*entry)
	if e.owner != owner {
		return nil, ErrFormNotFound
	}
	s.forms.Set(id, e, s.ttl)
	return e.form, nil
}

// Remove forgets a form.
func (s *Store) Remove(id string) {
	s.forms.Delete(id)
}

// Len returns the number of open forms.
func (s *Store) Len() int {
	return s.forms.ItemCount()
}
