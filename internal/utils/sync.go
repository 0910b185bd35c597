package utils

import (
	"sync"
)

// OptionalMutex is a mutex that can be switched off when the consumer guarantees that every
// call is already serialized (a cooperative scheduler, a single core, an outer lock).
type OptionalMutex struct {
	Mutex    sync.Mutex
	UseMutex bool
}

func (m *OptionalMutex) Lock() {
	if m.UseMutex {
		m.Mutex.Lock()
	}
}

func (m *OptionalMutex) Unlock() {
	if m.UseMutex {
		m.Mutex.Unlock()
	}
}
