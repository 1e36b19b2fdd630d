package gamehub

import "errors"

var (
	ErrNoValueForKey    = errors.New("no value found for key")
	ErrValueNotAsserted = errors.New("value could not be asserted to specified type")
)

func checkAndAssertStringFromMap(src map[string]any, key string) (string, error) {
	data, ok := src[key]
	if !ok {
		return "", ErrNoValueForKey
	}
	value, ok := data.(string)
	if !ok {
		return "", ErrValueNotAsserted
	}

	return value, nil
}

// JSON numbers decode as float64; integer keys are narrowed here.
func checkAndAssertIntFromMap(src map[string]any, key string) (int, error) {
	data, ok := src[key]
	if !ok {
		return 0, ErrNoValueForKey
	}
	value, ok := data.(float64)
	if !ok {
		return 0, ErrValueNotAsserted
	}

	return int(value), nil
}

func checkAndAssertBoolFromMap(src map[string]any, key string) (bool, error) {
	data, ok := src[key]
	if !ok {
		return false, ErrNoValueForKey
	}
	value, ok := data.(bool)
	if !ok {
		return false, ErrValueNotAsserted
	}

	return value, nil
}
