// bizscout/utils/types/business.go
package types

import (
	"net/url"
	"strings"
)

// NotFoundMessage is returned when no strategy resolves a business name.
const NotFoundMessage = "Business listing not found. Please verify the name or try again."

// BusinessQuery is the inbound extraction request.
type BusinessQuery struct {
	BusinessName string `json:"business_name,omitempty"`
	WebsiteURL   string `json:"website_url,omitempty"`
}

// Empty reports whether neither identifying field was supplied.
func (q BusinessQuery) Empty() bool {
	return strings.TrimSpace(q.BusinessName) == "" && strings.TrimSpace(q.WebsiteURL) == ""
}

// Domain returns the host of rawURL without a leading "www.".
func Domain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(rawURL)
	}
	host := u.Host
	if len(host) >= 4 && strings.EqualFold(host[:4], "www.") {
		host = host[4:]
	}
	return host
}

type Review struct {
	Stars int    `json:"stars"`
	Text  string `json:"text"`
}

// BusinessRecord is the canonical, total output for one business.
type BusinessRecord struct {
	BusinessName       string   `json:"business_name"`
	StarRating         string   `json:"star_rating"`
	ReviewCount        int      `json:"review_count"`
	TopReviews         []Review `json:"top_reviews"`
	ReviewsPlaceholder bool     `json:"reviews_placeholder"`
	Categories         []string `json:"categories"`
	HoursOfOperation   string   `json:"hours_of_operation"`
	Address            string   `json:"address"`
	WebsiteURL         string   `json:"website_url"`
	PhoneNumber        string   `json:"phone_number"`
	ProfilePhotoURL    string   `json:"profile_photo_url"`
	ServicesListed     []string `json:"services_listed"`
	BusinessAttributes []string `json:"business_attributes"`
	GoogleMapsLink     string   `json:"google_maps_link"`
}

// NewBusinessRecord returns a record with every field at its default.
// Slices are empty rather than nil so they serialize as [].
func NewBusinessRecord() BusinessRecord {
	return BusinessRecord{
		TopReviews:         []Review{},
		Categories:         []string{},
		ServicesListed:     []string{},
		BusinessAttributes: []string{},
	}
}

// Normalize replaces nil slices with empty ones, e.g. after decoding a cached record.
func (r *BusinessRecord) Normalize() {
	if r.TopReviews == nil {
		r.TopReviews = []Review{}
	}
	if r.Categories == nil {
		r.Categories = []string{}
	}
	if r.ServicesListed == nil {
		r.ServicesListed = []string{}
	}
	if r.BusinessAttributes == nil {
		r.BusinessAttributes = []string{}
	}
}

type ErrorOutcome struct {
	Error string `json:"error"`
}

const (
	WebhookSuccess = "success"
	WebhookError   = "error"
)

type WebhookStatus struct {
	Status          string  `json:"status"`
	Message         string  `json:"message"`
	WebhookResponse *string `json:"webhook_response,omitempty"`
}

// WebhookPayload is the body posted to the webhook.
type WebhookPayload struct {
	Source       string         `json:"source"`
	Timestamp    string         `json:"timestamp"`
	BusinessData BusinessRecord `json:"business_data"`
}

// ExtractResponse is a successful /extract body: the record plus delivery status.
type ExtractResponse struct {
	BusinessRecord
	WebhookStatus WebhookStatus `json:"webhook_status"`
}

// ExtractionOutcome is what the orchestrator hands back: exactly one of
// Record or NotFound is set.
type ExtractionOutcome struct {
	Record   *BusinessRecord
	NotFound *ErrorOutcome
	Source   string
	Cached   bool
}

func (o ExtractionOutcome) Found() bool {
	return o.Record != nil
}

// NotFoundOutcome builds the terminal not-found result.
func NotFoundOutcome() ExtractionOutcome {
	return ExtractionOutcome{NotFound: &ErrorOutcome{Error: NotFoundMessage}}
}
