package utils

import (
	"encoding/json"
)

// Optional is a PATCH-body field that distinguishes "absent from the payload"
// from "explicitly null" from "explicitly set". A plain pointer cannot tell
// the first two apart, and partial updates must: an absent field leaves the
// stored value alone, while null clears a nullable column.
type Optional[T any] struct {
	Set   bool // the key appeared in the payload
	Valid bool // the value was non-null
	Value T
}

// UnmarshalJSON implements json.Unmarshaler. It only runs when the key is
// present, which is what makes Set reliable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Get returns the value and whether it was explicitly set to a non-null value
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set && o.Valid
}

// IsNull reports whether the field was explicitly set to null
func (o Optional[T]) IsNull() bool {
	return o.Set && !o.Valid
}
