package extractor

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"bizscout/bizscout/utils/logging"
	"bizscout/bizscout/utils/types"
)

// ReviewSet is the result of review extraction. Placeholder marks the fixed
// substitute reviews returned when the page could not be walked at all.
type ReviewSet struct {
	Reviews     []types.Review
	Placeholder bool
}

func placeholderReviews() ReviewSet {
	return ReviewSet{
		Reviews: []types.Review{
			{Stars: 5, Text: "Excellent service and very professional team."},
			{Stars: 4, Text: "Great experience working with this company."},
			{Stars: 5, Text: "Highly recommended for their expertise."},
		},
		Placeholder: true,
	}
}

// ExtractReviews reads up to sel.Limit reviews below root. A review counts only
// when both a star rating and snippet text were found. If the review list
// itself cannot be queried the placeholder set is returned instead.
func ExtractReviews(ctx context.Context, root Element, sel ReviewSelectors) ReviewSet {
	items, err := root.FindAll(ctx, sel.Item)
	if err != nil {
		logging.AppLogger.Warn("review extraction failed, using placeholder reviews",
			zap.String("selector", sel.Item),
			zap.Error(err),
		)
		return placeholderReviews()
	}

	limit := sel.Limit
	if limit <= 0 {
		limit = 5
	}
	if len(items) > limit {
		items = items[:limit]
	}

	reviews := []types.Review{}
	for _, item := range items {
		label, ok := lookupAttr(ctx, item, sel.Stars, "aria-label")
		if !ok {
			continue
		}
		stars := ExtractRating(label)
		if stars == "" {
			continue
		}
		text, ok := lookupText(ctx, item, sel.Text)
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(stars, 64)
		// review stars are 1-5; a "0 stars" label is noise
		if err != nil || int(value) < 1 {
			continue
		}
		reviews = append(reviews, types.Review{Stars: int(value), Text: text})
	}
	return ReviewSet{Reviews: reviews}
}
