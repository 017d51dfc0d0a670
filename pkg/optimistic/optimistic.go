// Package optimistic tracks a value that is shown as if a mutation succeeded before the server confirms it.
//
// A Mutation moves Idle -> Pending on Begin, then Pending -> Confirmed on Confirm or Pending -> RolledBack on
// Rollback, which restores the value shown before Begin. Only one mutation can be pending at a time.
package optimistic

import (
	"context"
	"errors"
	"sync"
)

type State int

const (
	Idle State = iota
	Pending
	Confirmed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled back"
	default:
		return "unknown"
	}
}

var (
	ErrPending    = errors.New("a mutation is already pending")
	ErrNotPending = errors.New("no mutation is pending")
)

type Mutation[T any] struct {
	mu sync.Mutex

	state    State
	current  T
	previous T
}

func New[T any](initial T) *Mutation[T] {
	return &Mutation[T]{current: initial}
}

// Begin applies next to the current value and shows the result until the mutation settles.
func (m *Mutation[T]) Begin(next func(current T) T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Pending {
		return m.current, ErrPending
	}

	m.previous = m.current
	m.current = next(m.current)
	m.state = Pending

	return m.current, nil
}

// Confirm settles the pending mutation with the value acknowledged by the server.
func (m *Mutation[T]) Confirm(confirmed T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Pending {
		return ErrNotPending
	}

	m.current = confirmed
	m.state = Confirmed
	return nil
}

// Rollback restores the value shown before Begin.
func (m *Mutation[T]) Rollback() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Pending {
		return ErrNotPending
	}

	m.current = m.previous
	m.state = RolledBack
	return nil
}

// Run begins the mutation, commits it and settles it according to the commit result.
// The commit error, if any, is returned after the rollback.
func (m *Mutation[T]) Run(ctx context.Context, next func(current T) T, commit func(ctx context.Context, optimistic T) (T, error)) error {
	optimistic, err := m.Begin(next)
	if err != nil {
		return err
	}

	confirmed, err := commit(ctx, optimistic)
	if err != nil {
		return errors.Join(err, m.Rollback())
	}

	return m.Confirm(confirmed)
}

func (m *Mutation[T]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

func (m *Mutation[T]) Value() T {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current
}
