package store

import (
	"database/sql/driver"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// NodeValue is one JSON leaf. Postgres keeps it as JSONB; SQLite gets TEXT,
// since a JSON column has NUMERIC affinity there and "1000" would come back
// as an integer.
type NodeValue datatypes.JSON

func (NodeValue) GormDataType() string { return "json" }

func (NodeValue) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "TEXT"
}

func (v NodeValue) Value() (driver.Value, error) {
	return datatypes.JSON(v).Value()
}

// Scan also accepts numbers, for tables created before the column became TEXT.
func (v *NodeValue) Scan(src any) error {
	switch n := src.(type) {
	case int64:
		*v = NodeValue(strconv.FormatInt(n, 10))
		return nil
	case float64:
		*v = NodeValue(strconv.FormatFloat(n, 'g', -1, 64))
		return nil
	}
	var j datatypes.JSON
	if err := j.Scan(src); err != nil {
		return err
	}
	*v = NodeValue(j)
	return nil
}
