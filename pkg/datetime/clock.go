package datetime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Clock is a wall-clock time of day with second precision, stored as SQL TIME
// and serialised as HH:MM:SS.
type Clock int

const secondsPerDay = 24 * 60 * 60

func NewClock(hour, minute, second int) Clock {
	return Clock(hour*3600 + minute*60 + second)
}

func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute(), t.Second())
}

var clockLayouts = []string{"15:04:05", "15:04", "15:04:05.999999999"}

func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q, expected HH:MM:SS", s)
}

func (c Clock) HMS() (int, int, int) {
	v := int(c)
	return v / 3600, (v % 3600) / 60, v % 60
}

func (c Clock) String() string {
	h, m, s := c.HMS()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// MinutesSince returns whole minutes elapsed from other to c.
func (c Clock) MinutesSince(other Clock) int {
	return int(c-other) / 60
}

func (c Clock) Valid() bool {
	return c >= 0 && c < secondsPerDay
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time must be a string in HH:MM:SS format")
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *Clock) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*c = 0
	case time.Time:
		*c = ClockOf(v)
	case string:
		parsed, err := ParseClock(v)
		if err != nil {
			return err
		}
		*c = parsed
	case []byte:
		parsed, err := ParseClock(string(v))
		if err != nil {
			return err
		}
		*c = parsed
	case int64:
		// microseconds since midnight
		*c = Clock(v / 1_000_000)
	default:
		return fmt.Errorf("cannot scan %T into Clock", value)
	}
	return nil
}

func (Clock) GormDataType() string {
	return "time"
}

// GormDBDataType keeps HH:MM:SS text on sqlite, whose driver cannot decode a
// bare TIME value.
func (Clock) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "varchar(8)"
	}
	return "time"
}
