package devserver

import (
	"regexp"
	"time"
	"unicode/utf8"
)

var (
	titleRe       = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ0-9 ]*$`)
	descriptionRe = regexp.MustCompile(`^[\p{L}\p{N}_\s\-',.]*$`)
)

const (
	minAuctionLength = 120 * time.Second
	maxAuctionLength = 24 * time.Hour
	minPrice         = 5.0
	cancelWindow     = 10 * time.Second
)

func checkTitle(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > 3 && n < 15 && titleRe.MatchString(s)
}

func checkDescription(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > 3 && n < 80 && descriptionRe.MatchString(s)
}

func checkPrice(p float64) bool { return p >= minPrice }

func checkAmount(a float64) bool { return a >= 0 }

// checkEnd accepts end times between two minutes and one day ahead.
func checkEnd(end int64, now time.Time) bool {
	d := time.Unix(end, 0).Sub(now.Truncate(time.Second))
	return d >= minAuctionLength && d <= maxAuctionLength
}

func checkUsername(s string) *apiError {
	if n := utf8.RuneCountInString(s); n < 3 || n > 25 {
		return errUsernameLength
	}
	return nil
}

func checkPassword(s string) *apiError {
	if n := utf8.RuneCountInString(s); n < 6 || n > 32 {
		return errPasswordLength
	}
	return nil
}
