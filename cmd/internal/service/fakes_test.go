package service

import (
	"context"
	"errors"
	"sync"

	"meety/cmd/internal/domain/entity"
)

type memoryRepo struct {
	mu       sync.Mutex
	meetings map[string]*entity.Meeting
	order    []string
	writes   int
	fail     error
	lastFrom string
}

func newMemoryRepo(meetings ...*entity.Meeting) *memoryRepo {
	r := &memoryRepo{meetings: map[string]*entity.Meeting{}}
	for _, m := range meetings {
		r.meetings[m.MeetingID] = m
		r.order = append(r.order, m.MeetingID)
	}
	return r
}

func (r *memoryRepo) Create(_ context.Context, m *entity.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	if _, ok := r.meetings[m.MeetingID]; ok {
		return entity.ErrMeetingExists
	}
	cp := *m
	r.meetings[m.MeetingID] = &cp
	r.order = append(r.order, m.MeetingID)
	r.writes++
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (*entity.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	m, ok := r.meetings[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memoryRepo) filter(keep func(*entity.Meeting) bool) ([]*entity.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	out := []*entity.Meeting{}
	for _, id := range r.order {
		if m := r.meetings[id]; keep(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryRepo) FindByStatus(_ context.Context, status entity.Status) ([]*entity.Meeting, error) {
	return r.filter(func(m *entity.Meeting) bool { return m.Status == status })
}

func (r *memoryRepo) FindByStatusAndDate(_ context.Context, status entity.Status, date string) ([]*entity.Meeting, error) {
	return r.filter(func(m *entity.Meeting) bool { return m.Status == status && m.Date == date })
}

func (r *memoryRepo) FindByStatusBetween(_ context.Context, status entity.Status, from, to string) ([]*entity.Meeting, error) {
	r.lastFrom = from
	return r.filter(func(m *entity.Meeting) bool { return m.Status == status && m.Date >= from && m.Date <= to })
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id string, status entity.Status) (*entity.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	m, ok := r.meetings[id]
	if !ok {
		return nil, entity.ErrMeetingNotFound
	}
	m.Status = status
	r.writes++
	cp := *m
	return &cp, nil
}

var errStoreDown = errors.New("store unavailable")

type countingLocker struct {
	keys []string
	held int
	err  error
}

func (l *countingLocker) Lock(_ context.Context, key string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.keys = append(l.keys, key)
	l.held++
	return func() { l.held-- }, nil
}
