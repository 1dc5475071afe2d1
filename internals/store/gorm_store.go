// file: internals/store/gorm_store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/*
One row per leaf:

	store_node_path  = "admin/a1/workers/1000/name"
	store_node_value = "Budi"  (JSON scalar)

A subtree is every row whose path equals the node path or starts with "<path>/".
*/
type StoreNodeModel struct {
	StoreNodePath      string    `gorm:"column:store_node_path;type:varchar(768);primaryKey" json:"store_node_path"`
	StoreNodeValue     NodeValue `gorm:"column:store_node_value;not null" json:"store_node_value"`
	StoreNodeUpdatedAt time.Time `gorm:"column:store_node_updated_at;autoUpdateTime" json:"store_node_updated_at"`
}

func (StoreNodeModel) TableName() string {
	return "store_nodes"
}

type GormStore struct {
	DB *gorm.DB
}

// NewGormStore migrates the node table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&StoreNodeModel{}); err != nil {
		return nil, fmt.Errorf("migrate store_nodes: %w", err)
	}
	return &GormStore{DB: db}, nil
}

func (s *GormStore) isPostgres() bool {
	return s.DB.Dialector.Name() == "postgres"
}

func subtreeScope(path string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if path == "" {
			return db
		}
		prefix := path + "/"
		// LIKE alone is case-insensitive on SQLite, substr keeps the match exact.
		return db.Where(
			"store_node_path = ? OR (store_node_path LIKE ? ESCAPE '\\' AND substr(store_node_path, 1, ?) = ?)",
			path, escapeLike(prefix)+"%", utf8.RuneCountInString(prefix), prefix,
		)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s *GormStore) readSubtree(tx *gorm.DB, path string, lock bool) (any, error) {
	q := tx.Model(&StoreNodeModel{}).Scopes(subtreeScope(path))
	if lock && s.isPostgres() {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rows []StoreNodeModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	tree := map[string]any{}
	for _, row := range rows {
		var value any
		if err := sonic.Unmarshal(row.StoreNodeValue, &value); err != nil {
			return nil, fmt.Errorf("decode %s: %w", row.StoreNodePath, err)
		}
		rel := strings.Trim(strings.TrimPrefix(row.StoreNodePath, path), "/")
		if rel == "" {
			// the node itself is a leaf
			return value, nil
		}
		setAt(tree, strings.Split(rel, "/"), value)
	}
	return tree, nil
}

// writeSubtree replaces the node at keys with node (nil removes it).
func (s *GormStore) writeSubtree(tx *gorm.DB, keys []string, node any) error {
	path := Join(keys...)

	if parents := ancestors(keys); len(parents) > 0 {
		if err := tx.Where("store_node_path IN ?", parents).Delete(&StoreNodeModel{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Scopes(subtreeScope(path)).Delete(&StoreNodeModel{}).Error; err != nil {
		return err
	}
	if node == nil {
		return nil
	}

	leaves := map[string]any{}
	flatten(path, node, leaves)
	rows := make([]StoreNodeModel, 0, len(leaves))
	for p, value := range leaves {
		raw, err := sonic.Marshal(value)
		if err != nil {
			return err
		}
		rows = append(rows, StoreNodeModel{StoreNodePath: p, StoreNodeValue: NodeValue(raw)})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
}

func (s *GormStore) Get(ctx context.Context, path string, v any) error {
	keys, err := Split(path)
	if err != nil {
		return err
	}
	node, err := s.readSubtree(s.DB.WithContext(ctx), Join(keys...), false)
	if err != nil {
		return mapGormError(err)
	}
	if node == nil {
		return ErrNotFound
	}
	return decodeInto(node, v)
}

func (s *GormStore) Set(ctx context.Context, path string, v any) error {
	keys, err := splitNonRoot(path)
	if err != nil {
		return err
	}
	node, err := toTree(v)
	if err != nil {
		return err
	}
	return mapGormError(s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.writeSubtree(tx, keys, node)
	}))
}

func (s *GormStore) Update(ctx context.Context, path string, fields map[string]any) error {
	base, err := Split(path)
	if err != nil {
		return err
	}
	nodes := make(map[string]any, len(fields))
	for field, value := range fields {
		if _, err := splitNonRoot(field); err != nil {
			return err
		}
		if nodes[field], err = toTree(value); err != nil {
			return err
		}
	}
	return mapGormError(s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for field, node := range nodes {
			sub, _ := Split(field)
			keys := append(append([]string{}, base...), sub...)
			if err := s.writeSubtree(tx, keys, node); err != nil {
				return err
			}
		}
		return nil
	}))
}

func (s *GormStore) Delete(ctx context.Context, path string) error {
	keys, err := splitNonRoot(path)
	if err != nil {
		return err
	}
	return mapGormError(s.writeSubtree(s.DB.WithContext(ctx), keys, nil))
}

func (s *GormStore) Transaction(ctx context.Context, path string, fn TxFunc) error {
	keys, err := splitNonRoot(path)
	if err != nil {
		return err
	}
	path = Join(keys...)

	return mapGormError(s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.isPostgres() {
			// rows may not exist yet, so lock the path itself
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", path).Error; err != nil {
				return err
			}
		}
		node, err := s.readSubtree(tx, path, true)
		if err != nil {
			return err
		}
		var current []byte
		if node != nil {
			if current, err = sonic.Marshal(node); err != nil {
				return err
			}
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		nextNode, err := toTree(next)
		if err != nil {
			return err
		}
		return s.writeSubtree(tx, keys, nextNode)
	}))
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// serialization_failure, deadlock_detected
var conflictCodes = map[string]struct{}{"40001": {}, "40P01": {}}

func mapGormError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := conflictCodes[pgErr.Code]; ok {
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.Message)
		}
	}
	return err
}
