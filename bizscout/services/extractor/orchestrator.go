package extractor

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"bizscout/bizscout/utils/logging"
	"bizscout/bizscout/utils/types"
)

// Orchestrator tries strategies in priority order and maps the first hit into
// a BusinessRecord. Strategies run one at a time; a hit ends the attempt.
type Orchestrator struct {
	strategies []Strategy
}

func NewOrchestrator(strategies ...Strategy) *Orchestrator {
	return &Orchestrator{strategies: strategies}
}

// Extract never fails: it returns either a record or the not-found outcome.
func (o *Orchestrator) Extract(ctx context.Context, query string) types.ExtractionOutcome {
	defer logging.LogDuration(ctx, "Orchestrator.Extract")()

	for _, s := range o.strategies {
		if ctx.Err() != nil {
			logging.AppLogger.Warn("extraction cancelled",
				zap.String("query", query),
				zap.Error(ctx.Err()),
			)
			break
		}
		fields, err := o.attempt(ctx, s, query)
		if err != nil {
			logging.AppLogger.Info("strategy missed, trying next",
				zap.String("strategy", s.Name()),
				zap.String("query", query),
				zap.Bool("no_result", eris.Is(err, ErrNoResult)),
				zap.Error(err),
			)
			continue
		}
		record := BuildRecord(fields)
		logging.AppLogger.Info("business extracted",
			zap.String("strategy", s.Name()),
			zap.String("query", query),
			zap.String("business_name", record.BusinessName),
		)
		return types.ExtractionOutcome{Record: &record, Source: s.Name()}
	}
	return types.NotFoundOutcome()
}

// attempt runs one strategy, turning panics and empty results into misses.
func (o *Orchestrator) attempt(ctx context.Context, s Strategy, query string) (fields RawFields, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.ErrorLogger.Error("strategy panicked",
				zap.String("strategy", s.Name()),
				zap.Any("panic", r),
			)
			fields, err = nil, eris.Wrapf(ErrNoResult, "%s: panic: %v", s.Name(), r)
		}
	}()
	fields, err = s.Attempt(ctx, query)
	if err != nil {
		return nil, err
	}
	if _, ok := fields.String(FieldName); !ok {
		return nil, eris.Wrapf(ErrNoResult, "%s: empty business name", s.Name())
	}
	return fields, nil
}

// BuildRecord projects raw strategy output onto the total BusinessRecord,
// normalizing each field and filling defaults for whatever is absent.
func BuildRecord(fields RawFields) types.BusinessRecord {
	rec := types.NewBusinessRecord()

	if v, ok := fields.String(FieldName); ok {
		rec.BusinessName = CleanText(v)
	}
	if v, ok := fields.String(FieldRating); ok {
		rec.StarRating = v
	}
	if v, ok := fields.Int(FieldReviewCount); ok && v >= 0 {
		rec.ReviewCount = v
	}
	if set, ok := fields.Reviews(FieldReviews); ok {
		if set.Reviews != nil {
			rec.TopReviews = set.Reviews
		}
		rec.ReviewsPlaceholder = set.Placeholder
	}
	if v, ok := fields.String(FieldHours); ok {
		rec.HoursOfOperation = FormatHours(v)
	}
	if v, ok := fields.String(FieldAddress); ok {
		rec.Address = CleanText(v)
	}
	if v, ok := fields.String(FieldWebsite); ok {
		rec.WebsiteURL = v
	}
	if v, ok := fields.String(FieldPhone); ok {
		rec.PhoneNumber = FormatPhoneNumber(CleanText(v))
	}
	if v, ok := fields.String(FieldPhotoURL); ok {
		rec.ProfilePhotoURL = v
	}
	if v, ok := fields.String(FieldMapsLink); ok {
		rec.GoogleMapsLink = v
	}

	description, _ := fields.String(FieldDescription)
	if cats, ok := fields.Strings(FieldCategories); ok {
		rec.Categories = cats
	} else {
		rec.Categories = ExtractCategories(description)
	}
	rec.ServicesListed = ExtractServices(description)
	rec.BusinessAttributes = ExtractBusinessAttributes(description)
	return rec
}
