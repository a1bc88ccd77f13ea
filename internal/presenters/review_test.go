package presenters

import (
	"context"
	"testing"

	"ratingd/internal/providers"
	"ratingd/internal/structures"
	"ratingd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticReviewFacility(t *testing.T) {
	logger := &testutil.MockLogger{}
	f := NewStaticReviewFacility(true, logger)

	assert.True(t, f.Available())
	require.NoError(t, f.RequestReview(context.Background()))
	require.Len(t, logger.Logs, 1)
	assert.Equal(t, providers.TypePrompt, logger.Logs[0].Type)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.RequestReview(ctx), context.Canceled)
}

func TestNewReviewProvider(t *testing.T) {
	conf := &structures.Config{}
	assert.Nil(t, NewReviewProvider(conf, &testutil.MockLogger{}))

	conf.Prompt.NativeReview = true
	r := NewReviewProvider(conf, &testutil.MockLogger{})
	require.NotNil(t, r)
	assert.True(t, r.Available())
}
