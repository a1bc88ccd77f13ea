package services

import (
	"testing"

	"ratingd/internal/ledger"
	"ratingd/internal/storage"
	"ratingd/internal/structures"
	"ratingd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPromptServiceProvider(t *testing.T) {
	days := 7
	logger := &testutil.MockLogger{}
	conf := &structures.Config{Prompt: structures.PromptConfig{
		AppStoreID:          "99",
		PlayStoreID:         "com.example",
		Platform:            PlatformAndroid,
		DaysBeforeReminding: &days,
	}}

	svc, err := NewPromptServiceProvider(conf, ledger.New(storage.NewMemoryStore(), logger), &testutil.MockPresenter{}, nil, nil, logger, nil)
	require.NoError(t, err)

	opts := svc.Options()
	assert.Equal(t, PlatformAndroid, opts.Platform)
	assert.Equal(t, 7, opts.DaysBeforeReminding)
	assert.Equal(t, 1, opts.UsesUntilPrompt)
	assert.Equal(t, "market://details?id=com.example", opts.StoreURL())
	require.NotEmpty(t, logger.Logs)
}

func TestNewPromptServiceProvider_MissingIDs(t *testing.T) {
	logger := &testutil.MockLogger{}
	_, err := NewPromptServiceProvider(&structures.Config{}, ledger.New(storage.NewMemoryStore(), logger), &testutil.MockPresenter{}, nil, nil, logger, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}
