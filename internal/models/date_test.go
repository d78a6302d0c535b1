package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var payload struct {
		DOB Date `json:"dob"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"dob":"2021-04-12"}`), &payload))
	assert.Equal(t, "2021-04-12", payload.DOB.String())

	require.NoError(t, json.Unmarshal([]byte(`{"dob":"2021-04-12T15:04:05Z"}`), &payload))
	assert.Equal(t, "2021-04-12", payload.DOB.String())

	require.NoError(t, json.Unmarshal([]byte(`{"dob":null}`), &payload))
	assert.True(t, payload.DOB.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"dob":"12/04/2021"}`), &payload))

	out, err := json.Marshal(Date{Time: time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2020-02-29"`, string(out))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2019, 7, 1, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2019-07-01", d.String())

	require.NoError(t, d.Scan([]byte("2018-03-04T00:00:00Z")))
	assert.Equal(t, "2018-03-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	value, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestEnrollmentStatusValid(t *testing.T) {
	assert.True(t, EnrollmentApproved.Valid())
	assert.False(t, EnrollmentStatus("waitlisted").Valid())
}
