package services

import (
	"context"
	"ratingd/internal/models"
)

// Presenter shows a modal dialog and returns the action of the picked choice.
type Presenter interface {
	Present(ctx context.Context, d models.Dialog) (models.Action, error)
}

// ReviewFacility is the platform's in-app review. A nil facility means the
// module is not installed at all.
type ReviewFacility interface {
	Available() bool
	RequestReview(ctx context.Context) error
}

// LinkOpener opens a URL outside the application. Failures are not reported back.
type LinkOpener interface {
	Open(url string)
}

// LedgerInterface is the subset of *ledger.Ledger the service needs.
type LedgerInterface interface {
	RecordUse(ctx context.Context) error
	RecordPositiveEvent(ctx context.Context) error
	RecordRatingSeen(ctx context.Context) error
	RecordRated(ctx context.Context) error
	RecordDecline(ctx context.Context) error
	ResetCounters(ctx context.Context) error
	ReadAll(ctx context.Context) (models.LedgerSnapshot, error)
}
