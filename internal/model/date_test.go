package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err, "non-leap Feb 29 is rejected")

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateOfTruncates(t *testing.T) {
	noon := time.Date(2024, time.March, 10, 13, 45, 0, 0, time.FixedZone("ICT", 7*3600))
	d := DateOf(noon)

	assert.Equal(t, "2024-03-10", d.String(), "wall-clock date is kept, time discarded")
	assert.Equal(t, time.UTC, d.Time().Location())
}

func TestDateComparisons(t *testing.T) {
	a := NewDate(2024, time.March, 10)
	b := NewDate(2024, time.March, 11)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewDate(2024, time.March, 10)))
	assert.False(t, a.IsZero())
	assert.True(t, Date{}.IsZero())
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 10)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-10"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Equal(d))
}

func TestDateJSONOptional(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"03/10/2024"`), &d))
}

func TestDateSQLRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 10)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", v)

	var back Date
	require.NoError(t, back.Scan(v))
	assert.True(t, back.Equal(d))
}

func TestDateSQLNull(t *testing.T) {
	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v, "zero dates store as NULL")

	var d Date
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}
