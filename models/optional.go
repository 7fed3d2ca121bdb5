package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Optional is a presence-aware field for partial updates. A key that is
// absent from the JSON payload, or present with null, leaves Set false.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = v
	o.Set = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// changeSet collects column assignments for the fields a patch sets.
type changeSet map[string]any

func setField[T any](changes changeSet, column string, o Optional[T]) {
	if o.Set {
		changes[column] = o.Value
	}
}

func setList(changes changeSet, column string, o Optional[[]string]) {
	if o.Set {
		changes[column] = stringList(o.Value)
	}
}

func stringList(values []string) datatypes.JSONSlice[string] {
	if values == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](values)
}
