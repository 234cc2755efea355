package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.June, 30)

	data, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2024-06-30"`, string(data))

	var parsed Date
	assert.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d, parsed)
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
}

func TestDateAddDays(t *testing.T) {
	deadline := NewDate(2024, time.June, 30)
	assert.Equal(t, "2024-06-23", deadline.AddDays(-7).String())
	assert.Equal(t, "2024-07-01", deadline.AddDays(1).String())
	// month boundary
	assert.Equal(t, "2024-05-31", NewDate(2024, time.June, 1).AddDays(-1).String())
}

func TestDateScan(t *testing.T) {
	var d Date

	assert.NoError(t, d.Scan(time.Date(2024, time.June, 30, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2024-06-30", d.String())

	assert.NoError(t, d.Scan("2024-06-23"))
	assert.Equal(t, "2024-06-23", d.String())

	assert.NoError(t, d.Scan("2024-06-23 00:00:00+00:00"))
	assert.Equal(t, "2024-06-23", d.String())

	assert.NoError(t, d.Scan([]byte("2024-06-27")))
	assert.Equal(t, "2024-06-27", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDateComparableAsMapKey(t *testing.T) {
	a := NewDate(2024, time.June, 23)
	b := DateOf(time.Date(2024, time.June, 23, 23, 59, 59, 0, time.UTC))
	set := map[Date]struct{}{a: {}}
	_, ok := set[b]
	assert.True(t, ok, "same calendar date must collapse to one key")
}
