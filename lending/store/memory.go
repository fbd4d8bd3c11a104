// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/inversionesmg/lending-engine/lending"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	clients     map[lending.ClientID]lending.Client
	obligations map[lending.ObligationID]lending.Obligation
}

func NewMemory() *Memory {
	return &Memory{
		clients:     make(map[lending.ClientID]lending.Client),
		obligations: make(map[lending.ObligationID]lending.Obligation),
	}
}

// =============================================================================
// CLIENT STORE
// =============================================================================

func (m *Memory) SaveClient(_ context.Context, c lending.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.clients {
		if id != c.ID && existing.DocumentNumber == c.DocumentNumber {
			return lending.ErrDuplicateDocument
		}
	}
	m.clients[c.ID] = c
	return nil
}

func (m *Memory) GetClient(_ context.Context, id lending.ClientID) (*lending.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Memory) GetClientByDocument(_ context.Context, document string) (*lending.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.clients {
		if c.DocumentNumber == document {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListClients(_ context.Context) ([]lending.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clients := make([]lending.Client, 0, len(m.clients))
	for _, c := range m.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
	return clients, nil
}

func (m *Memory) DeleteClient(_ context.Context, id lending.ClientID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.clients[id]; !ok {
		return lending.ErrClientNotFound
	}
	delete(m.clients, id)

	// Cascade: obligations (and their payments) go with the client.
	for oid, o := range m.obligations {
		if o.ClientID == id {
			delete(m.obligations, oid)
		}
	}
	return nil
}

// =============================================================================
// OBLIGATION STORE
// =============================================================================

func (m *Memory) SaveObligation(_ context.Context, o lending.Obligation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.clients[o.ClientID]; !ok {
		return lending.ErrClientNotFound
	}
	m.obligations[o.ID] = cloneObligation(o)
	return nil
}

func (m *Memory) GetObligation(_ context.Context, id lending.ObligationID) (*lending.Obligation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.obligations[id]
	if !ok {
		return nil, nil
	}
	clone := cloneObligation(o)
	return &clone, nil
}

func (m *Memory) ListObligationsByClient(_ context.Context, clientID lending.ClientID) ([]lending.Obligation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []lending.Obligation
	for _, o := range m.obligations {
		if o.ClientID == clientID {
			out = append(out, cloneObligation(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteObligation(_ context.Context, id lending.ObligationID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.obligations[id]; !ok {
		return lending.ErrObligationNotFound
	}
	delete(m.obligations, id)
	return nil
}

func (m *Memory) AppendPayment(_ context.Context, id lending.ObligationID, p lending.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.obligations[id]
	if !ok {
		return lending.ErrObligationNotFound
	}
	o.Payments = append(o.Payments, p)
	m.obligations[id] = o
	return nil
}

// cloneObligation copies the payment slice so callers never share backing
// arrays with the store.
func cloneObligation(o lending.Obligation) lending.Obligation {
	clone := o
	clone.Payments = append([]lending.Payment(nil), o.Payments...)
	return clone
}
