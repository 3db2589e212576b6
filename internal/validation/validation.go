package validation

import (
	"slices"
	"strings"
)

// allowedEmailDomains are the mail providers the shop accepts bookings from.
var allowedEmailDomains = map[string]struct{}{
	"gmail.com":       {},
	"hotmail.com":     {},
	"outlook.com":     {},
	"yahoo.com":       {},
	"yandex.com":      {},
	"mynet.com":       {},
	"superonline.com": {},
	"ttnet.net.tr":    {},
}

const phoneDigitsRequired = 10

// IsEmailValid reports whether email has exactly one @, a non-empty local part
// and an allow-listed domain (case-insensitive).
func IsEmailValid(email string) bool {
	if email == "" || strings.Count(email, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(email, "@")
	if local == "" {
		return false
	}
	_, ok := allowedEmailDomains[strings.ToLower(domain)]
	return ok
}

// AllowedEmailDomains lists the accepted domains in sorted order, for form hints.
func AllowedEmailDomains() []string {
	var domains []string
	for d := range allowedEmailDomains {
		domains = append(domains, d)
	}
	slices.Sort(domains)
	return domains
}

// PhoneDigits strips everything but ASCII digits.
func PhoneDigits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhoneNumber renders up to 10 digits as "(XXX) XXX XX XX", progressively
// while typing. Extra digits are dropped.
func FormatPhoneNumber(value string) string {
	d := PhoneDigits(value)
	if len(d) > phoneDigitsRequired {
		d = d[:phoneDigitsRequired]
	}
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 3:
		return "(" + d
	case len(d) <= 6:
		return "(" + d[:3] + ") " + d[3:]
	case len(d) <= 8:
		return "(" + d[:3] + ") " + d[3:6] + " " + d[6:]
	default:
		return "(" + d[:3] + ") " + d[3:6] + " " + d[6:8] + " " + d[8:]
	}
}

// IsPhoneValid reports whether exactly 10 digits were entered.
func IsPhoneValid(phone string) bool {
	return len(PhoneDigits(phone)) == phoneDigitsRequired
}
