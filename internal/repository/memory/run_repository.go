package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	RunStateRunning   = "running"
	RunStateCompleted = "completed"
	RunStateExhausted = "exhausted" // step budget ran out before a final answer
	RunStateFailed    = "failed"
)

// RunState tracks one in-flight generation run. It exists only for the
// lifetime of the run plus a grace period for status polling.
type RunState struct {
	ThreadId  uuid.UUID
	ArticleId uuid.UUID
	State     string
	Step      int
	Error     string
	UpdatedAt time.Time
}

type RunRepository struct {
	cache *cache.Cache
}

func NewRunRepository() *RunRepository {
	// Runs finish within seconds under normal conditions; keep state for an
	// hour so clients can still poll after a slow upstream.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &RunRepository{
		cache: c,
	}
}

func (r *RunRepository) Save(state *RunState) {
	state.UpdatedAt = time.Now()
	r.cache.Set(state.ThreadId.String(), state, cache.DefaultExpiration)
}

func (r *RunRepository) Get(threadId uuid.UUID) (*RunState, bool) {
	if x, found := r.cache.Get(threadId.String()); found {
		return x.(*RunState), true
	}
	return nil, false
}

func (r *RunRepository) Delete(threadId uuid.UUID) {
	r.cache.Delete(threadId.String())
}
