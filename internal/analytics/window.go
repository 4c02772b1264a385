package analytics

import (
	"fmt"
	"strings"
	"time"

	"zendesk-analytics/internal/zendesk"
)

// Bucket is the granularity used to group tickets by creation time.
type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
)

// ParseBucket accepts day, week or month, case-insensitively.
func ParseBucket(s string) (Bucket, error) {
	switch Bucket(strings.ToLower(strings.TrimSpace(s))) {
	case BucketDay, "":
		return BucketDay, nil
	case BucketWeek:
		return BucketWeek, nil
	case BucketMonth:
		return BucketMonth, nil
	default:
		return "", fmt.Errorf("unknown grouping %q (expected day, week or month)", s)
	}
}

// ParseWeekday parses a weekday name such as "sunday" or "Mon".
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// Calendar fixes the time zone and week start used for every date key.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

// DefaultCalendar uses UTC with weeks starting on Sunday.
func DefaultCalendar() Calendar {
	return Calendar{Location: time.UTC, WeekStart: time.Sunday}
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// DayKey formats t as YYYY-MM-DD in the calendar's zone.
func (c Calendar) DayKey(t time.Time) string {
	return t.In(c.loc()).Format("2006-01-02")
}

// SnapToStart normalizes a timestamp to the beginning of its bucket (0:00:00).
func (c Calendar) SnapToStart(t time.Time, bucket Bucket) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.In(c.loc())
	switch bucket {
	case BucketMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case BucketWeek:
		back := (int(t.Weekday()) - int(c.WeekStart) + 7) % 7
		return time.Date(t.Year(), t.Month(), t.Day()-back, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// GroupKey is the sortable bucket key: YYYY-MM-DD for day and week, YYYY-MM for month.
func (c Calendar) GroupKey(t time.Time, bucket Bucket) string {
	start := c.SnapToStart(t, bucket)
	if bucket == BucketMonth {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

// GroupLabel is the human-readable form of a bucket key.
func GroupLabel(key string, bucket Bucket) string {
	switch bucket {
	case BucketMonth:
		if t, err := time.Parse("2006-01", key); err == nil {
			return t.Format("January 2006")
		}
	case BucketWeek:
		return "Week starting " + key
	}
	return key
}

// FilterCreatedWithin keeps tickets created strictly after now minus days.
// A non-positive days value keeps everything.
func FilterCreatedWithin(tickets []zendesk.Ticket, days int, now time.Time) []zendesk.Ticket {
	if days <= 0 {
		return tickets
	}
	cutoff := now.AddDate(0, 0, -days)
	kept := make([]zendesk.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.CreatedAt.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
