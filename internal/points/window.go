package points

import (
	"fmt"
	"time"
)

// Window names a leaderboard time range. Every bounded window starts at a
// local midnight in the Pacific timezone, regardless of server timezone.
type Window string

const (
	WindowAll   Window = "all"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

// pacific is loaded at init; time.Date in this location resolves the local
// midnights correctly across the seasonal offset changes. The binary embeds
// the zone data (time/tzdata) so container images without a tzdata package
// still resolve it.
var pacific = mustLoadLocation("America/Los_Angeles")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("loading timezone %s: %v", name, err))
	}
	return loc
}

// ParseWindow validates a user-supplied window name.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowAll, WindowWeek, WindowMonth, WindowYear:
		return Window(s), nil
	}
	return "", fmt.Errorf("unknown leaderboard window %q", s)
}

// WindowStart returns the inclusive lower bound of the window containing
// now. The second return is false for the unbounded all-time window.
//
// Weeks start Monday 00:00 Pacific, months on the 1st, years on January 1st.
func WindowStart(now time.Time, w Window) (time.Time, bool) {
	local := now.In(pacific)

	switch w {
	case WindowWeek:
		back := int(local.Weekday()) - int(time.Monday)
		if back < 0 {
			back = 6 // Sunday rolls back to the previous Monday
		}
		monday := local.AddDate(0, 0, -back)
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, pacific), true
	case WindowMonth:
		return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, pacific), true
	case WindowYear:
		return time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, pacific), true
	default:
		return time.Time{}, false
	}
}
