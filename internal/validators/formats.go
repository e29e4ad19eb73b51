package validators

import "regexp"

var (
	// Egyptian mobile numbers: 010/011/012/015 followed by eight digits.
	phoneRe = regexp.MustCompile(`^01[0125][0-9]{8}$`)

	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

func IsEgyptianMobile(phone string) bool {
	return phoneRe.MatchString(phone)
}

func IsISODate(date string) bool {
	return dateRe.MatchString(date)
}

func IsTimeOfDay(t string) bool {
	return timeRe.MatchString(t)
}
