package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "noon", input: "12:00", want: "12:00"},
		{name: "last minute of day", input: "23:59", want: "23:59"},
		{name: "hours out of range", input: "24:00", wantErr: true},
		{name: "minutes out of range", input: "10:60", wantErr: true},
		{name: "missing separator", input: "1000", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing seconds", input: "10:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_MinutesFromMidnight(t *testing.T) {
	tests := []struct {
		input TimeString
		want  int
	}{
		{input: "00:00", want: 0},
		{input: "01:00", want: 60},
		{input: "09:30", want: 570},
		{input: "23:59", want: 1439},
	}

	for _, tt := range tests {
		got, err := tt.input.MinutesFromMidnight()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := TimeString("25:00").MinutesFromMidnight()
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), got)

	// Переход через полночь не поддерживается
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)

	got, err = TimeString("01:00").SubMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:00"), got)

	_, err = TimeString("00:30").SubMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestTimeString_Display12h(t *testing.T) {
	tests := []struct {
		input TimeString
		want  string
	}{
		{input: "00:00", want: "12:00 AM"},
		{input: "00:30", want: "12:30 AM"},
		{input: "09:05", want: "09:05 AM"},
		{input: "12:00", want: "12:00 PM"},
		{input: "13:45", want: "01:45 PM"},
		{input: "23:00", want: "11:00 PM"},
	}

	for _, tt := range tests {
		got, err := tt.input.Display12h()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:00")))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 6, 10, 16, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:15"), ts)

	assert.Error(t, ts.Scan(42))
}
