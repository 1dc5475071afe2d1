package store

import (
	"context"
	"sync"

	"github.com/bytedance/sonic"
)

// MemoryStore keeps the whole tree in process. Used for tests and local runs.
type MemoryStore struct {
	mu   sync.Mutex
	root map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{root: map[string]any{}}
}

func (s *MemoryStore) Get(ctx context.Context, path string, v any) error {
	keys, err := Split(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var node any = s.root
	if len(keys) > 0 {
		node = lookup(s.root, keys)
	} else if len(s.root) == 0 {
		node = nil
	}
	if node == nil {
		return ErrNotFound
	}
	return decodeInto(node, v)
}

func (s *MemoryStore) Set(ctx context.Context, path string, v any) error {
	keys, err := splitNonRoot(path)
	if err != nil {
		return err
	}
	node, err := toTree(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	setAt(s.root, keys, node)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, path string, fields map[string]any) error {
	base, err := Split(path)
	if err != nil {
		return err
	}
	type write struct {
		keys []string
		node any
	}
	writes := make([]write, 0, len(fields))
	for field, value := range fields {
		sub, err := splitNonRoot(field)
		if err != nil {
			return err
		}
		node, err := toTree(value)
		if err != nil {
			return err
		}
		keys := append(append([]string{}, base...), sub...)
		writes = append(writes, write{keys: keys, node: node})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		setAt(s.root, w.keys, w.node)
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	keys, err := splitNonRoot(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	deleteAt(s.root, keys)
	return nil
}

func (s *MemoryStore) Transaction(ctx context.Context, path string, fn TxFunc) error {
	keys, err := splitNonRoot(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []byte
	if node := lookup(s.root, keys); node != nil {
		if current, err = sonic.Marshal(node); err != nil {
			return err
		}
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	node, err := toTree(next)
	if err != nil {
		return err
	}
	setAt(s.root, keys, node)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) Close() error { return nil }
