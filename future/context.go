package future

import (
	"github.com/quarkframe/go-accelrt/asyncval"
)

// CompletionContext supplies the waiting infrastructure for callers that
// have no scheduling runtime of their own. It wraps a single-purpose
// asyncval.Waiter that can do nothing but block on values: it cannot
// enqueue work, so holding one never turns into an accidental task
// executor.
//
// A CompletionContext must outlive every future constructed from it.
// Typically one is created per client and shared by all of its futures.
type CompletionContext struct {
	waiter *asyncval.Waiter
}

// NewCompletionContext returns a context ready to be passed to New.
func NewCompletionContext() *CompletionContext {
	return &CompletionContext{waiter: asyncval.NewWaiter()}
}
