package datetime_test

import (
	"testing"
	"time"

	"bouncearound.com/daycare/internal/testutil"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clockRow struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	At datetime.Clock
}

func TestClockRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.AutoMigrate(&clockRow{}))

	rows := []clockRow{
		{ID: uuid.New(), At: datetime.NewClock(8, 0, 0)},
		{ID: uuid.New(), At: datetime.NewClock(18, 7, 45)},
		{ID: uuid.New(), At: datetime.NewClock(7, 30, 0)},
	}
	require.NoError(t, db.Create(&rows).Error)

	var got clockRow
	require.NoError(t, db.First(&got, "id = ?", rows[1].ID).Error)
	assert.Equal(t, "18:07:45", got.At.String())

	t.Run("ordering keeps the time of day", func(t *testing.T) {
		var ordered []clockRow
		require.NoError(t, db.Order("at ASC").Find(&ordered).Error)
		require.Len(t, ordered, 3)
		assert.Equal(t, []datetime.Clock{
			datetime.NewClock(7, 30, 0),
			datetime.NewClock(8, 0, 0),
			datetime.NewClock(18, 7, 45),
		}, []datetime.Clock{ordered[0].At, ordered[1].At, ordered[2].At})
	})

	t.Run("comparison in a where clause", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&clockRow{}).Where("at > ?", datetime.NewClock(18, 0, 0)).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestClockScan(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "09:15:30", "09:15:30"},
		{"bytes", []byte("17:45:00"), "17:45:00"},
		{"short string", "06:05", "06:05:00"},
		{"time", time.Date(2024, 5, 1, 13, 2, 3, 0, time.UTC), "13:02:03"},
		{"microseconds", int64((10*3600 + 30*60) * 1_000_000), "10:30:00"},
		{"nil", nil, "00:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c datetime.Clock
			require.NoError(t, c.Scan(tc.value))
			assert.Equal(t, tc.want, c.String())
		})
	}

	t.Run("garbage", func(t *testing.T) {
		var c datetime.Clock
		assert.Error(t, c.Scan("noon"))
		assert.Error(t, c.Scan(3.5))
	})
}

func TestClockMinutesSince(t *testing.T) {
	pickup := datetime.NewClock(18, 0, 0)

	assert.Equal(t, 0, datetime.NewClock(18, 0, 0).MinutesSince(pickup))
	assert.Equal(t, 0, datetime.NewClock(18, 0, 59).MinutesSince(pickup))
	assert.Equal(t, 1, datetime.NewClock(18, 1, 0).MinutesSince(pickup))
	assert.Equal(t, 25, datetime.NewClock(18, 25, 10).MinutesSince(pickup))
	assert.Equal(t, -5, datetime.NewClock(17, 55, 0).MinutesSince(pickup))
	assert.Equal(t, 60, datetime.NewClock(19, 0, 0).MinutesSince(pickup))
}

func TestClockJSON(t *testing.T) {
	c, err := datetime.ParseClock(" 08:05 ")
	require.NoError(t, err)

	raw, err := c.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"08:05:00"`, string(raw))

	var back datetime.Clock
	require.NoError(t, back.UnmarshalJSON(raw))
	assert.Equal(t, c, back)

	assert.Error(t, back.UnmarshalJSON([]byte(`805`)))
	assert.Error(t, back.UnmarshalJSON([]byte(`"25:99"`)))
}
