package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"filedrop/internal/common"
	"filedrop/internal/domain/model"
)

// MemoryStore is the process-lifetime backing store. It implements every
// repository interface over plain maps with per-entity monotonic counters,
// and behaves observably the same as the postgres variants.
type MemoryStore struct {
	mu sync.RWMutex

	events      map[int]model.Event
	submissions map[int]model.Submission
	activities  map[int]model.Activity
	files       map[string]model.StoredFile

	nextEventID      int
	nextSubmissionID int
	nextActivityID   int
	nextFileID       int
}

var (
	_ EventRepository      = (*MemoryStore)(nil)
	_ SubmissionRepository = (*MemoryStore)(nil)
	_ ActivityRepository   = (*MemoryStore)(nil)
	_ FileRepository       = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events:           map[int]model.Event{},
		submissions:      map[int]model.Submission{},
		activities:       map[int]model.Activity{},
		files:            map[string]model.StoredFile{},
		nextEventID:      1,
		nextSubmissionID: 1,
		nextActivityID:   1,
		nextFileID:       1,
	}
}

func (m *MemoryStore) CreateEvent(ctx context.Context, e *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = m.nextEventID
	m.nextEventID++
	e.CreatedAt = time.Now()
	e.InitialFiles = cloneStrings(e.InitialFiles)
	m.events[e.ID] = *e
	return nil
}

func (m *MemoryStore) FindEventByID(ctx context.Context, id int) (*model.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.events[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	e.InitialFiles = cloneStrings(e.InitialFiles)
	return &e, nil
}

func (m *MemoryStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]model.Event, 0, len(m.events))
	for _, e := range m.events {
		e.InitialFiles = cloneStrings(e.InitialFiles)
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].CreatedAt.After(events[j].CreatedAt)
		}
		return events[i].ID > events[j].ID
	})
	return events, nil
}

func (m *MemoryStore) UpdateEvent(ctx context.Context, e *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[e.ID]; !ok {
		return common.ErrNotFound
	}
	e.InitialFiles = cloneStrings(e.InitialFiles)
	m.events[e.ID] = *e
	return nil
}

func (m *MemoryStore) CountActiveEvents(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, e := range m.events {
		if e.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) ListActiveEventIDs(ctx context.Context) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []int
	for _, e := range m.events {
		if e.IsActive {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

func (m *MemoryStore) CreateSubmission(ctx context.Context, s *model.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.ID = m.nextSubmissionID
	m.nextSubmissionID++
	s.SubmittedAt = time.Now()
	if s.Files == nil {
		s.Files = []string{}
	}
	s.Files = cloneStrings(s.Files)
	m.submissions[s.ID] = *s
	return nil
}

func (m *MemoryStore) FindSubmissionByID(ctx context.Context, id int) (*model.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.submissions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	s.Files = cloneStrings(s.Files)
	return &s, nil
}

func (m *MemoryStore) ListSubmissions(ctx context.Context, eventID *int) ([]model.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	submissions := []model.Submission{}
	for _, s := range m.submissions {
		if eventID != nil && s.EventID != *eventID {
			continue
		}
		s.Files = cloneStrings(s.Files)
		submissions = append(submissions, s)
	}
	sort.Slice(submissions, func(i, j int) bool {
		if !submissions[i].SubmittedAt.Equal(submissions[j].SubmittedAt) {
			return submissions[i].SubmittedAt.After(submissions[j].SubmittedAt)
		}
		return submissions[i].ID > submissions[j].ID
	})
	return submissions, nil
}

func (m *MemoryStore) CountSubmissions(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.submissions), nil
}

func (m *MemoryStore) CountSubmissionsByEventIDs(ctx context.Context, eventIDs []int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[int]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = struct{}{}
	}
	count := 0
	for _, s := range m.submissions {
		if _, ok := wanted[s.EventID]; ok {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) CountSubmissionsPerEvent(ctx context.Context) (map[int]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := map[int]int{}
	for _, s := range m.submissions {
		counts[s.EventID]++
	}
	return counts, nil
}

func (m *MemoryStore) CreateActivity(ctx context.Context, a *model.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a.ID = m.nextActivityID
	m.nextActivityID++
	a.CreatedAt = time.Now()
	m.activities[a.ID] = *a
	return nil
}

func (m *MemoryStore) ListActivities(ctx context.Context, limit int) ([]model.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	activities := make([]model.Activity, 0, len(m.activities))
	for _, a := range m.activities {
		activities = append(activities, a)
	}
	sort.Slice(activities, func(i, j int) bool {
		if !activities[i].CreatedAt.Equal(activities[j].CreatedAt) {
			return activities[i].CreatedAt.After(activities[j].CreatedAt)
		}
		return activities[i].ID > activities[j].ID
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func (m *MemoryStore) SaveFile(ctx context.Context, f *model.StoredFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[f.Filename]; ok {
		return fmt.Errorf("storage name %q already taken: %w", f.Filename, common.ErrConflict)
	}
	f.ID = m.nextFileID
	m.nextFileID++
	f.CreatedAt = time.Now()
	stored := *f
	stored.Data = cloneBytes(f.Data)
	m.files[f.Filename] = stored
	return nil
}

func (m *MemoryStore) FindFileByName(ctx context.Context, filename string) (*model.StoredFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[filename]
	if !ok {
		return nil, common.ErrNotFound
	}
	f.Data = cloneBytes(f.Data)
	return &f, nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneBytes(in []byte) []byte {
	if in == nil {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
