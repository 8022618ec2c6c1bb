// Package workers runs periodic background jobs of the feedback site.
//
// A [Workers] aggregate starts every registered [Worker] in its own
// goroutine and waits for all of them after the context is cancelled.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// Pruner removes expired state and reports how many entries were dropped.
type Pruner interface {
	Prune(ctx context.Context) int
}
