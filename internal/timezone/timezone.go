package timezone

import "time"

// All clinics operate on Egyptian local time; "today" in stats and
// dashboards means today in Cairo, not on the server.
const DefaultTimezone = "Africa/Cairo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// Today returns the current clinic-local date in the YYYY-MM-DD form
// appointments are keyed on.
func Today() string {
	return Now().Format("2006-01-02")
}
