// Package archive persists assembled package manifests through an ordered
// chain of capability-dependent strategies. Each backend is probed before it
// is attempted; a backend that is unavailable or fails recoverably hands the
// manifest to the next one, while a user cancellation stops the chain
// outright.
package archive

import (
	"context"
	"errors"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/telemetry"
)

var (
	// ErrCancelled is returned when the user aborts a persist step.
	// Cancellation is terminal: the chain does not fall through.
	ErrCancelled = errors.New("persist cancelled")

	// ErrExhausted is returned when every backend in the chain was
	// unavailable or failed.
	ErrExhausted = errors.New("no archive backend could persist the package")
)

// Status is the outcome category of a persist attempt.
type Status string

const (
	StatusSaved     Status = "saved"
	StatusCancelled Status = "cancelled"
)

// Result describes how a manifest was persisted.
type Result struct {
	Status   Status
	Method   string
	Location string
	Entries  int
	// FellBackFrom lists backends that were skipped or failed before the
	// one that succeeded.
	FellBackFrom []string
}

// Backend is one persistence strategy.
type Backend interface {
	// Name identifies the strategy in results and logs.
	Name() string
	// Available probes whether the strategy can run in this environment.
	Available(ctx context.Context) bool
	// Persist writes the manifest. ErrCancelled aborts the chain; any
	// other error falls through to the next backend.
	Persist(ctx context.Context, m Manifest) (Result, error)
}

// Notifier surfaces a short-lived notification after a successful persist.
type Notifier interface {
	Notify(artifact string, entries int)
}

// LogNotifier reports persisted artifacts through the structured log.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(artifact string, entries int) {
	telemetry.Info("archive.persisted", map[string]any{
		"artifact": artifact,
		"entries":  entries,
	})
}

// Chain tries backends in order until one persists the manifest.
type Chain struct {
	Backends []Backend
	Notifier Notifier
}

// Persist runs the fallback chain. Context cancellation at any point is
// treated as a user cancellation.
func (c *Chain) Persist(ctx context.Context, m Manifest) (Result, error) {
	var fellBack []string
	for _, backend := range c.Backends {
		if err := ctx.Err(); err != nil {
			return Result{Status: StatusCancelled}, ErrCancelled
		}
		if !backend.Available(ctx) {
			fellBack = append(fellBack, backend.Name())
			telemetry.Debug("archive.backend_unavailable", map[string]any{"backend": backend.Name()})
			continue
		}

		result, err := backend.Persist(ctx, m)
		if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) {
			return Result{Status: StatusCancelled, Method: backend.Name()}, ErrCancelled
		}
		if err != nil {
			fellBack = append(fellBack, backend.Name())
			telemetry.Error("archive.backend_failed", map[string]any{
				"backend": backend.Name(),
				"err":     err.Error(),
			})
			continue
		}

		result.FellBackFrom = fellBack
		if c.Notifier != nil {
			c.Notifier.Notify(result.Location, result.Entries)
		}
		return result, nil
	}
	return Result{}, ErrExhausted
}
