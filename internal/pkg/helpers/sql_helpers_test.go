package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/timetabler/internal/pkg/timetable"
)

func TestTimeOfDay(t *testing.T) {
	v, err := TimeOfDay("09:30")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, int64(9*3600+30*60)*1_000_000, v.Microseconds)

	v, err = TimeOfDay("23:59:00")
	require.NoError(t, err)
	assert.Equal(t, int64(23*3600+59*60)*1_000_000, v.Microseconds)

	_, err = TimeOfDay("7pm")
	assert.Error(t, err)
}

func TestClockToTime(t *testing.T) {
	c, ok := timetable.NewClock(0, 1)
	require.True(t, ok)
	assert.Equal(t, int64(60_000_000), ClockToTime(c).Microseconds)
}
