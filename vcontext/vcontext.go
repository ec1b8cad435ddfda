// Package vcontext holds the process-scoped validation settings that every
// rule in validator/ reads: the validation date, the country code used for
// phone-number checks, thorough mode, and the Google-rules subset.
//
// Callers override a setting with a scoped guard that restores the previous
// value once released. The engine installs one Context with With for the
// whole of a validation run, so every rule that reads Current() sees the same
// values regardless of which worker goroutine runs it. The runner itself
// does not read or pass this context.
package vcontext

import (
	"strings"
	"sync"
	"time"
)

// Context is the immutable snapshot of validation settings a single rule sees.
type Context struct {
	ValidationDate     time.Time
	CountryCode        string
	ThoroughMode       bool
	GoogleRulesEnabled bool
}

// UnknownCountryCode is GTFS's own placeholder for "country not specified".
const UnknownCountryCode = "ZZ"

// CountryKnown reports whether phone-number validation should run for this context.
func (c Context) CountryKnown() bool {
	code := strings.ToUpper(strings.TrimSpace(c.CountryCode))
	return code != "" && code != UnknownCountryCode
}

var (
	mu      sync.Mutex
	current = Context{ValidationDate: time.Now(), CountryCode: UnknownCountryCode}
)

// Current returns the process-wide validation context.
func Current() Context {
	mu.Lock()
	defer mu.Unlock()
	return current
}

func set(newCtx Context) func() {
	mu.Lock()
	prev := current
	current = newCtx
	mu.Unlock()
	return func() {
		mu.Lock()
		current = prev
		mu.Unlock()
	}
}

// SetValidationDate overrides the validation date and returns a guard that
// restores the previous value when called.
func SetValidationDate(t time.Time) func() {
	c := Current()
	c.ValidationDate = t
	return set(c)
}

// SetCountryCode overrides the country code and returns a restore guard.
func SetCountryCode(code string) func() {
	c := Current()
	c.CountryCode = code
	return set(c)
}

// SetThoroughMode overrides thorough mode and returns a restore guard.
func SetThoroughMode(enabled bool) func() {
	c := Current()
	c.ThoroughMode = enabled
	return set(c)
}

// SetGoogleRulesEnabled overrides the Google-rules flag and returns a restore guard.
func SetGoogleRulesEnabled(enabled bool) func() {
	c := Current()
	c.GoogleRulesEnabled = enabled
	return set(c)
}

// With installs ctx for the duration of fn, restoring the previous context afterward.
func With(ctx Context, fn func()) {
	mu.Lock()
	prev := current
	current = ctx
	mu.Unlock()
	defer func() {
		mu.Lock()
		current = prev
		mu.Unlock()
	}()
	fn()
}
