package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Quokkas/internal/model"
)

// Manager is the process-scoped registry of live sessions. Each session owns
// its answer map for the session's lifetime; the manager only routes by ID.
type Manager struct {
	mu           sync.Mutex
	sessions     map[string]*Engine
	advanceDelay time.Duration
}

func NewManager(advanceDelay time.Duration) *Manager {
	return &Manager{
		sessions:     map[string]*Engine{},
		advanceDelay: advanceDelay,
	}
}

// Start creates a session over the given question sequence and returns its ID.
func (m *Manager) Start(quizID uint, questions []model.Question, onFinish func(Result)) (string, *Engine) {
	engine := NewEngine(m.advanceDelay, onFinish)
	engine.Load(quizID, questions)

	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = engine
	m.mu.Unlock()
	return id, engine
}

func (m *Manager) Get(id string) (*Engine, bool) {
	m.mu.Lock()
	engine, ok := m.sessions[id]
	m.mu.Unlock()
	return engine, ok
}

// Close tears the session down (canceling any pending auto-advance) and
// removes it from the registry.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	engine, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		engine.Close()
	}
	return ok
}
