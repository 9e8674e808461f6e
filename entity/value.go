package entity

import (
	"fmt"

	"github.com/pkg/errors"
)

// Value wraps a decoded json/yaml value and provides type conversion helpers.
type Value struct {
	Raw any
}

// String returns the value as a string.
func (v Value) String() string {
	if v.Raw == nil {
		return ""
	}
	return fmt.Sprintf("%v", v.Raw)
}

// Int returns the value as an int.
// Json decodes numbers as float64 and yaml as int, both are accepted.
func (v Value) Int() (int, error) {
	switch i := v.Raw.(type) {
	case int:
		return i, nil
	case int64:
		return int(i), nil
	case float64:
		if i != float64(int(i)) {
			return 0, errors.Errorf("value is not integral: %v", i)
		}
		return int(i), nil
	}
	return 0, errors.Errorf("value is not an int: %T", v.Raw)
}

// Bool returns the value as a bool.
func (v Value) Bool() (bool, error) {
	b, ok := v.Raw.(bool)
	if !ok {
		return false, errors.Errorf("value is not a bool: %T", v.Raw)
	}
	return b, nil
}

// Map returns the value as a map.
func (v Value) Map() (map[string]any, error) {
	m, ok := v.Raw.(map[string]any)
	if !ok {
		return nil, errors.Errorf("value is not a map: %T", v.Raw)
	}
	return m, nil
}
