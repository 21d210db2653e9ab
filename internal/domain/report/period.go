package report

import (
	"fmt"
	"time"

	"github.com/tourdesk/backend/internal/domain/shared"
)

// Granularity selects the reporting period size.
type Granularity string

const (
	GranularityYear  Granularity = "year"
	GranularityMonth Granularity = "month"
	GranularityWeek  Granularity = "week"
	GranularityDay   Granularity = "day"
)

// IsValid checks if the granularity is a known value
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityYear, GranularityMonth, GranularityWeek, GranularityDay:
		return true
	}
	return false
}

// String returns the string representation of Granularity
func (g Granularity) String() string {
	return string(g)
}

// SupportsOperationalCosts reports whether fixed monthly overhead can be
// attributed at this granularity. Splitting a monthly figure across weeks or
// days would just invent precision, so only month and year carry it.
func (g Granularity) SupportsOperationalCosts() bool {
	return g == GranularityMonth || g == GranularityYear
}

// ParseGranularity validates a raw query value.
func ParseGranularity(raw string) (Granularity, error) {
	g := Granularity(raw)
	if !g.IsValid() {
		return "", shared.NewDomainError("ERR_INVALID_GRANULARITY",
			fmt.Sprintf("unknown granularity %q, expected year, month, week or day", raw))
	}
	return g, nil
}

// PeriodBucket identifies one reporting period. Key is stable and sortable
// within a granularity; Label is what the UI shows.
type PeriodBucket struct {
	Key         string      `json:"key"`
	Label       string      `json:"label"`
	Granularity Granularity `json:"granularity"`
}

// BucketTime assigns a timestamp to its reporting period. The timestamp is
// first shifted into loc so that orders placed late at night land in the
// business's calendar day, not the server's. Weeks start on Monday.
func BucketTime(t time.Time, g Granularity, loc *time.Location) PeriodBucket {
	local := t.In(loc)
	switch g {
	case GranularityYear:
		return PeriodBucket{
			Key:         fmt.Sprintf("%04d", local.Year()),
			Label:       fmt.Sprintf("%04d", local.Year()),
			Granularity: g,
		}
	case GranularityMonth:
		return PeriodBucket{
			Key:         fmt.Sprintf("%04d-%02d", local.Year(), int(local.Month())),
			Label:       fmt.Sprintf("%s %04d", local.Month().String(), local.Year()),
			Granularity: g,
		}
	case GranularityWeek:
		start := weekStart(local)
		end := start.AddDate(0, 0, 6)
		return PeriodBucket{
			Key:         start.Format("2006-01-02"),
			Label:       fmt.Sprintf("%s - %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
			Granularity: g,
		}
	default:
		return PeriodBucket{
			Key:         local.Format("2006-01-02"),
			Label:       fmt.Sprintf("%s, %s", local.Weekday().String(), local.Format("2006-01-02")),
			Granularity: GranularityDay,
		}
	}
}

func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}
