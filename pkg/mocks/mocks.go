// Package mocks provides hand-written test doubles for pack's
// external collaborators.
package mocks

import (
	"context"
	"os"
	"sync"
)

// MockVCS is a scriptable vcs.Client. A successful Clone creates the
// destination directory, mirroring the real collaborator closely
// enough for the frontends' installed checks. Safe for concurrent use
// by engine workers.
type MockVCS struct {
	mu          sync.Mutex
	cloneCalls  []string
	updateCalls []string

	// CloneErr and UpdateErr map coordinates to the failure the next
	// call should return.
	CloneErr  map[string]error
	UpdateErr map[string]error
}

// NewMockVCS creates an empty mock.
func NewMockVCS() *MockVCS {
	return &MockVCS{
		CloneErr:  make(map[string]error),
		UpdateErr: make(map[string]error),
	}
}

// Clone records the call and creates path unless scripted to fail.
func (m *MockVCS) Clone(ctx context.Context, name, path string) error {
	m.mu.Lock()
	m.cloneCalls = append(m.cloneCalls, name)
	err := m.CloneErr[name]
	m.mu.Unlock()

	if err != nil {
		return err
	}
	return os.MkdirAll(path, 0755)
}

// Update records the call and returns the scripted result.
func (m *MockVCS) Update(ctx context.Context, name, path string) error {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, name)
	err := m.UpdateErr[name]
	m.mu.Unlock()

	return err
}

// CloneCalls returns a snapshot of the recorded clone coordinates.
func (m *MockVCS) CloneCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.cloneCalls...)
}

// UpdateCalls returns a snapshot of the recorded update coordinates.
func (m *MockVCS) UpdateCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.updateCalls...)
}
