// file: internals/store/firebase_store.go
package store

import (
	"context"
	"encoding/json"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"github.com/bytedance/sonic"
	"google.golang.org/api/option"
)

// FirebaseStore talks to a Firebase Realtime Database with service-account
// (certificate) credentials.
type FirebaseStore struct {
	client *db.Client
}

func NewFirebaseStore(ctx context.Context, databaseURL, credentialsFile string) (*FirebaseStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("firebase: database url is empty")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase database: %w", err)
	}
	return &FirebaseStore{client: client}, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func (s *FirebaseStore) ref(keys []string) *db.Ref {
	return s.client.NewRef("/" + Join(keys...))
}

func (s *FirebaseStore) Get(ctx context.Context, path string, v any) error {
	keys, err := Split(path)
	if err != nil {
		return err
	}
	var raw json.RawMessage
	if err := s.ref(keys).Get(ctx, &raw); err != nil {
		return err
	}
	if isNull(raw) {
		return ErrNotFound
	}
	return sonic.Unmarshal(raw, v)
}

func (s *FirebaseStore) Set(ctx context.Context, path string, v any) error {
	keys, err := splitNonRoot(path)
	if err != nil {
		return err
	}
	node, err := toTree(v)
	if err != nil {
		return err
	}
	if node == nil {
		return s.ref(keys).Delete(ctx)
	}
	return s.ref(keys).Set(ctx, node)
}

func (s *FirebaseStore) Update(ctx context.Context, path string, fields map[string]any) error {
	keys, err := Split(path)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	payload := make(map[string]interface{}, len(fields))
	for field, value := range fields {
		if _, err := splitNonRoot(field); err != nil {
			return err
		}
		// nil children are removed by the database itself
		if payload[field], err = toTree(value); err != nil {
			return err
		}
	}
	return s.ref(keys).Update(ctx, payload)
}

func (s *FirebaseStore) Delete(ctx context.Context, path string) error {
	keys, err := splitNonRoot(path)
	if err != nil {
		return err
	}
	return s.ref(keys).Delete(ctx)
}

func (s *FirebaseStore) Transaction(ctx context.Context, path string, fn TxFunc) error {
	keys, err := splitNonRoot(path)
	if err != nil {
		return err
	}
	return s.ref(keys).Transaction(ctx, func(tn db.TransactionNode) (interface{}, error) {
		var raw json.RawMessage
		if err := tn.Unmarshal(&raw); err != nil {
			return nil, err
		}
		var current []byte
		if !isNull(raw) {
			current = raw
		}
		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		return toTree(next)
	})
}

func (s *FirebaseStore) Ping(ctx context.Context) error {
	var shallow map[string]interface{}
	return s.client.NewRef("/").GetShallow(ctx, &shallow)
}

func (s *FirebaseStore) Close() error { return nil }
