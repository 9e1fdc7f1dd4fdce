package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/recommend"
	"github.com/jonathan/nac-planner/internal/selection"
	"github.com/jonathan/nac-planner/internal/types"
)

// planningSession is one interactive recommendation workflow. All access to
// rec goes through mu so each session has a single logical writer.
type planningSession struct {
	mu        sync.Mutex
	id        uuid.UUID
	rec       *recommend.Session
	createdAt time.Time
	updatedAt time.Time
}

// sessionView is the JSON representation of a planning session.
type sessionView struct {
	ID              string                 `json:"id"`
	Intake          *types.IntakeData      `json:"intake"`
	Selection       *selection.State       `json:"selection"`
	Dismissed       []string               `json:"dismissed"`
	Recommendations []types.Recommendation `json:"recommendations"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// view snapshots the session. Callers must hold ps.mu.
func (ps *planningSession) view() sessionView {
	recs := ps.rec.Recommendations()
	if recs == nil {
		recs = []types.Recommendation{}
	}
	return sessionView{
		ID:              ps.id.String(),
		Intake:          ps.rec.Intake(),
		Selection:       ps.rec.Selection(),
		Dismissed:       ps.rec.Dismissed(),
		Recommendations: recs,
		CreatedAt:       ps.createdAt,
		UpdatedAt:       ps.updatedAt,
	}
}

// sessionRegistry holds the in-process planning sessions.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*planningSession
	logger   *zap.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

func newSessionRegistry(logger *zap.Logger) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[uuid.UUID]*planningSession),
		logger:   logger,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// create registers a new session seeded with intake and an existing selection.
func (r *sessionRegistry) create(lib *library.Library, intake *types.IntakeData, state *selection.State) *planningSession {
	id := r.newID()
	rec := recommend.NewSession(lib, state, recommend.WithLogger(r.logger.With(zap.String("session_id", id.String()))))
	rec.SetIntake(intake)

	now := r.now().UTC()
	ps := &planningSession{id: id, rec: rec, createdAt: now, updatedAt: now}

	r.mu.Lock()
	r.sessions[id] = ps
	r.mu.Unlock()
	return ps
}

// get returns the session with the given id string.
func (r *sessionRegistry) get(id string) (*planningSession, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, &ErrNotFound{Resource: "session", ID: id}
	}

	r.mu.RLock()
	ps, ok := r.sessions[parsed]
	r.mu.RUnlock()
	if !ok {
		return nil, &ErrNotFound{Resource: "session", ID: id}
	}
	return ps, nil
}

// touch records a mutation. Callers must hold ps.mu.
func (r *sessionRegistry) touch(ps *planningSession) {
	ps.updatedAt = r.now().UTC()
}

func (r *sessionRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
