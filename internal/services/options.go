package services

import (
	"fmt"
	"ratingd/internal/policy"
	"ratingd/internal/structures"
)

const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

type Callbacks struct {
	EnjoyingApp    func()
	NotEnjoyingApp func()
	Accept         func()
	Delay          func()
	Decline        func()
}

// Overrides is a partial configuration. Empty strings, nil pointers and nil
// funcs fall back to the default for that single field.
type Overrides struct {
	structures.PromptConfig
	Callbacks Callbacks
	Timing    policy.TimingPolicy
}

// Options is the merged, read-only prompt policy.
type Options struct {
	AppStoreID           string
	PlayStoreID          string
	Platform             string
	EnjoyingMessage      string
	EnjoyingActions      structures.EnjoyingActions
	Title                string
	Message              string
	ActionLabels         structures.ActionLabels
	Callbacks            Callbacks
	EventsUntilPrompt    int
	UsesUntilPrompt      int
	DaysBeforeReminding  int
	ShowIsEnjoyingDialog bool
	Debug                bool
	Timing               policy.TimingPolicy
}

func noop() {}

func DefaultOptions() Options {
	return Options{
		Platform:        PlatformIOS,
		EnjoyingMessage: "Are you enjoying this app?",
		EnjoyingActions: structures.EnjoyingActions{
			Accept:  "Yes!",
			Decline: "Not really",
		},
		Title:   "Rate Us!",
		Message: "How about a rating on the app store?",
		ActionLabels: structures.ActionLabels{
			Accept:  "Ok, sure",
			Delay:   "Remind me later",
			Decline: "No, thanks",
		},
		Callbacks: Callbacks{
			EnjoyingApp:    noop,
			NotEnjoyingApp: noop,
			Accept:         noop,
			Delay:          noop,
			Decline:        noop,
		},
		EventsUntilPrompt:    1,
		UsesUntilPrompt:      1,
		DaysBeforeReminding:  1,
		ShowIsEnjoyingDialog: true,
		Debug:                false,
		Timing:               policy.DefaultTiming{},
	}
}

// MergeOptions applies o onto the defaults field by field.
func MergeOptions(o Overrides) Options {
	opts := DefaultOptions()

	opts.AppStoreID = o.AppStoreID
	opts.PlayStoreID = o.PlayStoreID
	str(&opts.Platform, o.Platform)
	str(&opts.EnjoyingMessage, o.EnjoyingMessage)
	str(&opts.EnjoyingActions.Accept, o.EnjoyingActions.Accept)
	str(&opts.EnjoyingActions.Decline, o.EnjoyingActions.Decline)
	str(&opts.Title, o.Title)
	str(&opts.Message, o.Message)
	str(&opts.ActionLabels.Accept, o.ActionLabels.Accept)
	str(&opts.ActionLabels.Delay, o.ActionLabels.Delay)
	str(&opts.ActionLabels.Decline, o.ActionLabels.Decline)

	fn(&opts.Callbacks.EnjoyingApp, o.Callbacks.EnjoyingApp)
	fn(&opts.Callbacks.NotEnjoyingApp, o.Callbacks.NotEnjoyingApp)
	fn(&opts.Callbacks.Accept, o.Callbacks.Accept)
	fn(&opts.Callbacks.Delay, o.Callbacks.Delay)
	fn(&opts.Callbacks.Decline, o.Callbacks.Decline)

	if o.EventsUntilPrompt != nil {
		opts.EventsUntilPrompt = *o.EventsUntilPrompt
	}
	if o.UsesUntilPrompt != nil {
		opts.UsesUntilPrompt = *o.UsesUntilPrompt
	}
	if o.DaysBeforeReminding != nil {
		opts.DaysBeforeReminding = *o.DaysBeforeReminding
	}
	if o.ShowIsEnjoyingDialog != nil {
		opts.ShowIsEnjoyingDialog = *o.ShowIsEnjoyingDialog
	}
	if o.Debug != nil {
		opts.Debug = *o.Debug
	}
	if o.Timing != nil {
		opts.Timing = o.Timing
	}
	return opts
}

func (o Options) Thresholds() policy.Thresholds {
	return policy.Thresholds{
		EventsUntilPrompt:   o.EventsUntilPrompt,
		UsesUntilPrompt:     o.UsesUntilPrompt,
		DaysBeforeReminding: o.DaysBeforeReminding,
		Debug:               o.Debug,
	}
}

// StoreURL is the review page of the app on the configured platform.
func (o Options) StoreURL() string {
	if o.Platform == PlatformAndroid {
		return fmt.Sprintf("market://details?id=%s", o.PlayStoreID)
	}
	return fmt.Sprintf("https://itunes.apple.com/app/id%s?action=write-review", o.AppStoreID)
}

func str(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func fn(dst *func(), v func()) {
	if v != nil {
		*dst = v
	}
}
