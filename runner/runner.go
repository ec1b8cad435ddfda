// Package runner dispatches the rule library (validator.Validator
// implementations) over a loaded feed in parallel, isolates panics per rule,
// and folds the per-rule notices back together in registration order so the
// report is reproducible regardless of how goroutines interleave.
package runner

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/transitdata/gtfsvalidate/logging"
	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/validator"
)

// entry pairs a rule with the name the runner reports it under. Most
// validator.Validator implementations don't carry a name of their own (the
// teacher's interface predates this requirement), so the name is supplied at
// registration time instead of forcing every rule file to grow a Name method.
type entry struct {
	name string
	rule validator.Validator
}

// Runner is a registry of rules plus the worker pool that executes them.
type Runner struct {
	entries []entry
	workers int
}

// New creates an empty runner. workers <= 0 defaults to runtime.GOMAXPROCS(0).
func New(workers int) *Runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{workers: workers}
}

// Register adds a rule under the given name. Registration order is the
// order notices from distinct rules are folded into the final container.
func (r *Runner) Register(name string, rule validator.Validator) {
	r.entries = append(r.entries, entry{name: name, rule: rule})
}

// Len returns the number of registered rules.
func (r *Runner) Len() int { return len(r.entries) }

// Run executes every registered rule against loader and returns a fresh
// container holding the union of their notices.
func (r *Runner) Run(loader *parser.FeedLoader, config validator.Config) *notice.NoticeContainer {
	container := notice.NewNoticeContainer()
	r.RunWith(loader, container, config)
	return container
}

// RunWith executes every registered rule and merges their notices into the
// caller-supplied container, in registration order. It returns how many
// rules ran and how many of those panicked, so callers can report a
// validation summary alongside the notices themselves.
func (r *Runner) RunWith(loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) (ran int, failed int) {
	n := len(r.entries)
	if n == 0 {
		return 0, 0
	}

	perRule := make([]*notice.NoticeContainer, n)
	failedFlags := make([]bool, n)
	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup
	wg.Add(n)

	for i, e := range r.entries {
		perRule[i] = notice.NewNoticeContainerWithLimit(0)
		sem <- struct{}{}
		go func(i int, e entry) {
			defer wg.Done()
			defer func() { <-sem }()
			failedFlags[i] = runIsolated(e, loader, perRule[i], config)
		}(i, e)
	}

	wg.Wait()

	// Fold in registration order: this is the "monoid-like fold" the rule
	// runner contract requires instead of arrival-order accumulation.
	for i, c := range perRule {
		for _, n := range c.GetNotices() {
			container.AddNotice(n)
		}
		if failedFlags[i] {
			failed++
		}
	}

	return n, failed
}

// runIsolated runs a single rule, converting any panic into a
// runtime_exception_in_validator_error notice instead of letting it escape.
// It reports whether the rule panicked.
func runIsolated(e entry, loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) (panicked bool) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Errorf("rule %s panicked: %v", e.name, rec)
			container.AddNotice(notice.NewRuntimeExceptionInValidatorErrorNotice(e.name, fmt.Sprintf("%v", rec)))
			panicked = true
		}
	}()
	e.rule.Validate(loader, container, config)
	return false
}
