// Package qservice holds compiled programs in memory between a
// /api/compile call and a later /api/execute call, generalizing the
// teacher's ProgramStore (internal/qservice/pstore.go, keyed by
// google/uuid) from a qprog.Program to this system's bytecode.ByteCode.
package qservice

import (
	"sync"

	"github.com/google/uuid"
	"github.com/kegliz/qivm/bytecode"
)

// Store holds compiled bytecode by id.
type Store interface {
	// Save stores code and returns a fresh id.
	Save(code bytecode.ByteCode) string
	// Get returns the bytecode previously saved under id.
	Get(id string) (bytecode.ByteCode, bool)
}

type programStore struct {
	mu       sync.RWMutex
	programs map[string]bytecode.ByteCode
}

// NewProgramStore creates a new in-memory Store.
func NewProgramStore() Store {
	return &programStore{programs: make(map[string]bytecode.ByteCode)}
}

func (ps *programStore) Save(code bytecode.ByteCode) string {
	id := uuid.New().String()
	ps.mu.Lock()
	ps.programs[id] = code
	ps.mu.Unlock()
	return id
}

func (ps *programStore) Get(id string) (bytecode.ByteCode, bool) {
	ps.mu.RLock()
	code, ok := ps.programs[id]
	ps.mu.RUnlock()
	return code, ok
}
