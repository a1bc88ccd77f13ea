package presenters

import (
	"context"
	"ratingd/internal/providers"
	"ratingd/internal/services"
	"ratingd/internal/structures"
)

// StaticReviewFacility reports a fixed availability. A daemon cannot raise
// the platform sheet itself, so a request is only logged for the host.
type StaticReviewFacility struct {
	available bool
	logger    providers.Logger
}

func NewStaticReviewFacility(available bool, logger providers.Logger) *StaticReviewFacility {
	return &StaticReviewFacility{available: available, logger: logger}
}

func (f *StaticReviewFacility) Available() bool {
	return f.available
}

func (f *StaticReviewFacility) RequestReview(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.logger.Infof(providers.TypePrompt, "Native review requested")
	return nil
}

// NewReviewProvider returns nil unless native review is enabled in the config.
func NewReviewProvider(conf *structures.Config, logger providers.Logger) services.ReviewFacility {
	if !conf.Prompt.NativeReview {
		return nil
	}
	return NewStaticReviewFacility(true, logger)
}
