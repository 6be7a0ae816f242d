package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// AvatarConfig is the opaque avatar rendering configuration a frontend
// stores for a profile. The backend only persists it, it never interprets
// single fields.
type AvatarConfig map[string]any

// Scan reads the value from the database.
func (a *AvatarConfig) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into an avatar configuration", value)
	}

	if len(data) == 0 {
		*a = nil
		return nil
	}

	return json.Unmarshal(data, a)
}

// Value returns the value for the SQL driver to write to the database.
func (a AvatarConfig) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}

	data, err := json.Marshal(a)
	if err != nil {
		return nil, errors.New("avatar configuration cannot be serialized")
	}

	return string(data), nil
}

// GormDataType defines the data type used by gorm for the type.
func (AvatarConfig) GormDataType() string {
	return "text"
}
