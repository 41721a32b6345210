package extractor

// Field names a value a strategy may scrape.
type Field string

const (
	FieldName        Field = "name"
	FieldRating      Field = "rating"
	FieldReviewCount Field = "review_count"
	FieldAddress     Field = "address"
	FieldPhone       Field = "phone"
	FieldWebsite     Field = "website"
	FieldHours       Field = "hours"
	FieldCategories  Field = "categories"
	FieldReviews     Field = "reviews"
	FieldMapsLink    Field = "maps_link"
	FieldPhotoURL    Field = "photo_url"
	FieldDescription Field = "description"
)

// RawFields is the partial result of one strategy attempt. Any field may be
// absent; the typed getters report presence instead of guessing defaults.
type RawFields map[Field]any

// String returns a non-empty string value.
func (r RawFields) String(f Field) (string, bool) {
	v, ok := r[f].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r RawFields) Int(f Field) (int, bool) {
	v, ok := r[f].(int)
	return v, ok
}

// Strings returns a non-empty string list.
func (r RawFields) Strings(f Field) ([]string, bool) {
	v, ok := r[f].([]string)
	if !ok || len(v) == 0 {
		return nil, false
	}
	return v, true
}

func (r RawFields) Reviews(f Field) (ReviewSet, bool) {
	v, ok := r[f].(ReviewSet)
	return v, ok
}
