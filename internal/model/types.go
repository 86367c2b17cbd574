package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// scanJSON accepts both []byte (postgres jsonb) and string (sqlite text) column values.
func scanJSON(value interface{}, dst interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("scanJSON: unsupported column type")
	}
}

// StringSlice is a helper type for storing []string as JSONB in PostgreSQL.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	return scanJSON(value, s)
}
