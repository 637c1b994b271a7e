package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// StringSlice stores an ordered list of strings as a jsonb column.
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
	b, err := toBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, s)
}

// AnswerMap maps question IDs to the user's submitted answer strings, stored
// as a jsonb column. A corrupt stored value degrades to an empty map rather
// than failing the read.
type AnswerMap map[uint]string

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(AnswerMap{})
	}
	return json.Marshal(m)
}

func (m *AnswerMap) Scan(value interface{}) error {
	*m = AnswerMap{}
	if value == nil {
		return nil
	}
	b, err := toBytes(value)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, m); err != nil {
		log.Warn().Err(err).Msg("Corrupt stored answer map, treating as empty")
		*m = AnswerMap{}
	}
	return nil
}

func toBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T for json scan", value)
	}
}
