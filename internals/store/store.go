// file: internals/store/store.go
package store

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound    = errors.New("store: node not found")
	ErrInvalidPath = errors.New("store: invalid path")
	ErrConflict    = errors.New("store: concurrent update conflict")
)

// TxFunc receives the current JSON of a node (nil when absent) and returns
// the value to write back. Returning a nil value deletes the node.
type TxFunc func(current []byte) (any, error)

// Store is a hierarchical document store addressed by "/"-separated paths.
type Store interface {
	Get(ctx context.Context, path string, v any) error
	Set(ctx context.Context, path string, v any) error
	Update(ctx context.Context, path string, fields map[string]any) error
	Delete(ctx context.Context, path string) error
	Transaction(ctx context.Context, path string, fn TxFunc) error
	Ping(ctx context.Context) error
	Close() error
}

// forbidden characters in a node key (same rules as the remote database)
const forbiddenKeyChars = ".$#[]/"

func ValidKey(key string) bool {
	if strings.TrimSpace(key) == "" {
		return false
	}
	return !strings.ContainsAny(key, forbiddenKeyChars)
}

// Join builds a path from keys. It does not validate; Split does.
func Join(keys ...string) string {
	return strings.Join(keys, "/")
}

// Split normalises a path into its keys. The root path yields no keys.
func Split(path string) ([]string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, nil
	}
	keys := strings.Split(path, "/")
	for _, k := range keys {
		if !ValidKey(k) {
			return nil, ErrInvalidPath
		}
	}
	return keys, nil
}

func splitNonRoot(path string) ([]string, error) {
	keys, err := Split(path)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, ErrInvalidPath
	}
	return keys, nil
}
