package utils

import "github.com/pkg/errors"

// ErrMissingValue is returned by LookupValue when the key is absent.
var ErrMissingValue = errors.New("missing value")

// LookupValue returns md[key] as a T. An absent key and a value of another type are both errors
// that name the key.
func LookupValue[T any](md map[string]interface{}, key string) (T, error) {
	var zero T
	raw, ok := md[key]
	if !ok {
		return zero, errors.Wrap(ErrMissingValue, key)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, errors.Wrap(NewUnexpectedTypeError[T](raw), key)
	}
	return v, nil
}
