package clock

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Time
	}{
		{"plain morning", "09:00", Time(540)},
		{"late evening", "22:30", Time(1350)},
		{"midnight", "00:00", Midnight},
		{"last minute of day", "23:59", Time(1439)},
		{"hour only", "7", Time(420)},
		{"surrounding whitespace", " 08:15 ", Time(495)},
		{"empty normalizes to midnight", "", Midnight},
		{"garbage normalizes to midnight", "half past nine", Midnight},
		{"hour out of range", "24:00", Midnight},
		{"minute out of range", "10:75", Midnight},
		{"negative hour", "-1:30", Midnight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestTimeString(t *testing.T) {
	assert.Equal(t, "09:05", Time(545).String())
	assert.Equal(t, "00:00", Midnight.String())
	assert.Equal(t, "23:59", Time(1439).String())
}

func TestTimeJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Time(1350))
	require.NoError(t, err)
	assert.Equal(t, `"22:30"`, string(b))

	var parsed Time
	require.NoError(t, json.Unmarshal([]byte(`"06:00"`), &parsed))
	assert.Equal(t, Time(360), parsed)

	// Malformed JSON values normalize instead of erroring.
	require.NoError(t, json.Unmarshal([]byte(`"nonsense"`), &parsed))
	assert.Equal(t, Midnight, parsed)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("09:00"))
	assert.True(t, IsValid("23:59"))
	assert.False(t, IsValid("24:00"))
	assert.False(t, IsValid("9:00"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("09"))
	assert.False(t, IsValid("09:5"))
}

func TestWindowNormalized(t *testing.T) {
	start, end := Window{Start: Parse("09:00"), End: Parse("17:00")}.Normalized()
	assert.Equal(t, 540, start)
	assert.Equal(t, 1020, end)

	// Crossing midnight pushes the end into the next day.
	start, end = Window{Start: Parse("22:00"), End: Parse("06:00")}.Normalized()
	assert.Equal(t, 1320, start)
	assert.Equal(t, 1800, end)
}

func TestWindowDuration(t *testing.T) {
	assert.Equal(t, 510, Window{Start: Parse("08:00"), End: Parse("16:30")}.Duration())
	assert.Equal(t, 480, Window{Start: Parse("22:00"), End: Parse("06:00")}.Duration())
	assert.Equal(t, 0, Window{Start: Parse("10:00"), End: Parse("10:00")}.Duration())
}
