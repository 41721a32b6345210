package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tried in order; the first one that yields a value in [0, 5] wins.
var ratingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*stars?`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*out\s*of\s*5`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*/\s*5`),
	regexp.MustCompile(`(\d+\.?\d*)`),
}

var reviewCountRe = regexp.MustCompile(`\d+(?:,\d{3})*`)

var knownCategories = []string{
	"Consulting", "Business Services", "Marketing", "Legal Services",
	"Financial Services", "Technology", "Healthcare", "Real Estate",
	"Restaurant", "Retail", "Manufacturing", "Education",
	"Non-profit", "Government", "Entertainment", "Fitness",
	"Beauty", "Automotive", "Home Services", "Professional Services",
}

var serviceKeywords = []string{
	"consulting", "planning", "strategy", "marketing", "advertising",
	"legal", "tax", "accounting", "financial", "insurance",
	"technology", "software", "web design", "development",
	"healthcare", "medical", "dental", "therapy",
	"real estate", "property", "mortgage", "investment",
	"education", "training", "coaching", "mentoring",
}

var attributePatterns = []*regexp.Regexp{
	regexp.MustCompile(`black.?owned`),
	regexp.MustCompile(`women.?led`),
	regexp.MustCompile(`minority.?owned`),
	regexp.MustCompile(`veteran.?owned`),
	regexp.MustCompile(`lgbtq.?owned`),
	regexp.MustCompile(`family.?owned`),
	regexp.MustCompile(`locally.?owned`),
	regexp.MustCompile(`eco.?friendly`),
	regexp.MustCompile(`green`),
	regexp.MustCompile(`sustainable`),
}

// titleCase capitalizes every run of letters, so separators such as "_" and
// "." start a new word: "eco_friendly" -> "Eco_Friendly".
// cases.Caser is stateful, so each call gets its own.
func titleCase(s string) string {
	caser := cases.Title(language.English)
	var b strings.Builder
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(s[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}

// ExtractRating pulls a 0-5 star rating out of free text such as
// "Rated 4.6 stars" or "4/5". It returns "" when nothing in range is found.
func ExtractRating(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range ratingPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		rating, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if rating >= 0 && rating <= 5 {
			return formatRating(rating)
		}
	}
	return ""
}

// formatRating always keeps a fractional digit: 4 -> "4.0", 4.35 -> "4.35".
func formatRating(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ExtractReviewCount returns the first integer in text, e.g. "2,847 reviews" -> 2847.
func ExtractReviewCount(text string) (int, bool) {
	m := reviewCountRe.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractCategories returns every known category label mentioned in text.
func ExtractCategories(text string) []string {
	categories := []string{}
	if text == "" {
		return categories
	}
	lower := strings.ToLower(text)
	for _, c := range knownCategories {
		if strings.Contains(lower, strings.ToLower(c)) {
			categories = append(categories, c)
		}
	}
	return categories
}

// ExtractServices returns the title-cased service keywords found in text.
// The result is a set; callers must not depend on its order.
func ExtractServices(text string) []string {
	services := []string{}
	if text == "" {
		return services
	}
	lower := strings.ToLower(text)
	seen := make(map[string]struct{}, len(serviceKeywords))
	for _, kw := range serviceKeywords {
		if !strings.Contains(lower, kw) {
			continue
		}
		s := titleCase(kw)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		services = append(services, s)
	}
	return services
}

// ExtractBusinessAttributes finds ownership and sustainability markers like
// "Black-owned" or "eco friendly". Matches are not deduplicated.
func ExtractBusinessAttributes(text string) []string {
	attributes := []string{}
	if text == "" {
		return attributes
	}
	lower := strings.ToLower(text)
	for _, re := range attributePatterns {
		m := re.FindString(lower)
		if m == "" {
			continue
		}
		attributes = append(attributes, titleCase(strings.ReplaceAll(m, "-", " ")))
	}
	return attributes
}
