package extractor

import (
	"regexp"
	"strings"

	"bizscout/bizscout/utils/types"
)

var (
	nonDigitRe = regexp.MustCompile(`\D`)

	// "7:00pm" -> "7:00 pm"
	hoursWithMinutesRe = regexp.MustCompile(`(?i)(\d+):(\d+)\s*([ap]m)\b`)
	// "7pm" -> "7:00 pm"; the leading group keeps "7:00 pm" from matching on "00 pm".
	hoursBareRe = regexp.MustCompile(`(?i)(^|[^:\d])(\d{1,2})\s*([ap]m)\b`)

	urlRe = regexp.MustCompile(`(?i)^https?://` +
		`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|` +
		`localhost|` +
		`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?` +
		`(?:/?|[/?]\S+)$`)
)

// CleanText collapses whitespace runs to a single space and trims the ends.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FormatPhoneNumber renders 10-digit and 1-prefixed 11-digit numbers as
// (AAA) BBB-CCCC. Any other input comes back untouched.
func FormatPhoneNumber(phone string) string {
	if phone == "" {
		return ""
	}
	digits := nonDigitRe.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 10:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	case len(digits) == 11 && digits[0] == '1':
		return "(" + digits[1:4] + ") " + digits[4:7] + "-" + digits[7:]
	default:
		return phone
	}
}

// FormatHours cleans an opening-hours string and normalizes am/pm tokens.
func FormatHours(hours string) string {
	hours = CleanText(hours)
	if hours == "" {
		return ""
	}
	hours = hoursWithMinutesRe.ReplaceAllString(hours, "${1}:${2} ${3}")
	return hoursBareRe.ReplaceAllString(hours, "${1}${2}:00 ${3}")
}

// ValidateURL reports whether s looks like an absolute http(s) URL.
func ValidateURL(s string) bool {
	if s == "" {
		return false
	}
	return urlRe.MatchString(s)
}

// SearchString derives the one search string the strategies run with.
// website_url takes precedence over business_name. When it passes ValidateURL
// it is reduced to its bare domain; otherwise it is searched as free text.
func SearchString(q types.BusinessQuery) string {
	if website := strings.TrimSpace(q.WebsiteURL); website != "" {
		if ValidateURL(website) {
			return types.Domain(website)
		}
		return website
	}
	return strings.TrimSpace(q.BusinessName)
}
