package extractor

import (
	"context"
	"net/url"

	"github.com/rotisserie/eris"
)

// MapsStrategy reads the listing panel of a rendered maps search page.
type MapsStrategy struct {
	renderer PageRenderer
	sel      MapsSelectors
}

func NewMapsStrategy(renderer PageRenderer, sel MapsSelectors) *MapsStrategy {
	return &MapsStrategy{renderer: renderer, sel: sel}
}

func (m *MapsStrategy) Name() string { return "google_maps" }

// SearchURL builds the maps search URL for query.
func (m *MapsStrategy) SearchURL(query string) string {
	return m.sel.SearchURL + url.QueryEscape(query)
}

func (m *MapsStrategy) Attempt(ctx context.Context, query string) (RawFields, error) {
	var fields RawFields
	err := m.renderer.Render(ctx, m.SearchURL(query), func(page Page) error {
		f, err := m.read(ctx, page)
		if err != nil {
			return err
		}
		fields = f
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "google_maps")
	}
	return fields, nil
}

// read walks one rendered page. Only the business name is mandatory.
func (m *MapsStrategy) read(ctx context.Context, page Page) (RawFields, error) {
	name, ok := lookupText(ctx, page, m.sel.Name)
	if !ok {
		return nil, eris.Wrap(ErrNoResult, "business name not found")
	}
	fields := RawFields{FieldName: name}

	if label, ok := lookupLabel(ctx, page, m.sel.Rating); ok {
		if rating := ExtractRating(label); rating != "" {
			fields[FieldRating] = rating
		}
	}
	if label, ok := lookupLabel(ctx, page, m.sel.ReviewCount); ok {
		if n, ok := ExtractReviewCount(label); ok {
			fields[FieldReviewCount] = n
		}
	}
	if v, ok := lookupText(ctx, page, m.sel.Address); ok {
		fields[FieldAddress] = v
	}
	if v, ok := lookupText(ctx, page, m.sel.Phone); ok {
		fields[FieldPhone] = v
	}
	if v, ok := lookupAttr(ctx, page, m.sel.Website, "href"); ok {
		fields[FieldWebsite] = v
	}
	if v, ok := lookupText(ctx, page, m.sel.Hours); ok {
		fields[FieldHours] = v
	}
	if cats, ok := lookupAllText(ctx, page, m.sel.Categories); ok {
		fields[FieldCategories] = cats
	}
	if v, ok := lookupAttr(ctx, page, m.sel.Photo, "src"); ok {
		fields[FieldPhotoURL] = v
	}
	if v, ok := lookupText(ctx, page, m.sel.Description); ok {
		fields[FieldDescription] = v
	}

	fields[FieldReviews] = ExtractReviews(ctx, page, m.sel.Reviews)
	if link := page.URL(); link != "" {
		fields[FieldMapsLink] = link
	}
	return fields, nil
}
