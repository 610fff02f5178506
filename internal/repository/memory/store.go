package memory

import (
	"context"
	"fmt"
	"sync"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store is the in-process replacement for the relational database. A unit of
// work holds the write lock from Begin until Commit or Rollback, and Rollback
// restores the snapshot taken at Begin.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]entity.User
	chats    map[uuid.UUID]entity.Chat
	messages map[uuid.UUID]entity.Message
	seq      map[uuid.UUID]uint64
	nextSeq  uint64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]entity.User),
		chats:    make(map[uuid.UUID]entity.Chat),
		messages: make(map[uuid.UUID]entity.Message),
		seq:      make(map[uuid.UUID]uint64),
	}
}

type snapshot struct {
	users    map[uuid.UUID]entity.User
	chats    map[uuid.UUID]entity.Chat
	messages map[uuid.UUID]entity.Message
	seq      map[uuid.UUID]uint64
	nextSeq  uint64
}

func (s *Store) snapshot() *snapshot {
	return &snapshot{
		users:    cloneMap(s.users),
		chats:    cloneMap(s.chats),
		messages: cloneMap(s.messages),
		seq:      cloneMap(s.seq),
		nextSeq:  s.nextSeq,
	}
}

func (s *Store) restore(snap *snapshot) {
	s.users = snap.users
	s.chats = snap.chats
	s.messages = snap.messages
	s.seq = snap.seq
	s.nextSeq = snap.nextSeq
}

// stamp records insertion order for a new row.
func (s *Store) stamp(id uuid.UUID) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// guard is the locking policy shared by the repositories. Inside a unit of
// work the lock is already held and guard does nothing.
type guard struct {
	store *Store
	held  bool
}

func (g guard) read() func() {
	if g.held {
		return func() {}
	}
	g.store.mu.RLock()
	return g.store.mu.RUnlock
}

func (g guard) write() func() {
	if g.held {
		return func() {}
	}
	g.store.mu.Lock()
	return g.store.mu.Unlock
}

// Unit of work

type UnitOfWork struct {
	store *Store
	snap  *snapshot
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.snap != nil {
		return fmt.Errorf("transaction already started")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	u.snap = u.store.snapshot()
	return nil
}

func (u *UnitOfWork) Commit() error {
	if u.snap == nil {
		return fmt.Errorf("no transaction to commit")
	}
	u.snap = nil
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if u.snap == nil {
		return nil
	}
	u.store.restore(u.snap)
	u.snap = nil
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) guard() guard {
	return guard{store: u.store, held: u.snap != nil}
}

func (u *UnitOfWork) UserRepository() contract.UserRepository {
	return &UserRepository{guard: u.guard()}
}

func (u *UnitOfWork) ChatRepository() contract.ChatRepository {
	return &ChatRepository{guard: u.guard()}
}

func (u *UnitOfWork) MessageRepository() contract.MessageRepository {
	return &MessageRepository{guard: u.guard()}
}

type RepositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &RepositoryFactory{store: store}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &UnitOfWork{store: f.store}
}
