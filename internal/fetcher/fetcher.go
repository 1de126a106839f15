// Package fetcher runs the acquisition loop: probe the live client, and while
// a match is running fetch, decode and publish a full snapshot once a second.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Alex-Aron/LeagueOverlay/internal/feed"
	"github.com/Alex-Aron/LeagueOverlay/internal/liveclient"
	"github.com/Alex-Aron/LeagueOverlay/internal/schema"
)

const (
	DefaultIdleBackoff    = 5 * time.Second
	DefaultActiveInterval = 1 * time.Second
)

// Source is the part of liveclient.Client the loop needs.
type Source interface {
	CheckActive(ctx context.Context) bool
	FetchSnapshotRaw(ctx context.Context) (json.RawMessage, error)
}

// Publisher receives decoded snapshots. Send must not block; returning
// feed.ErrClosed ends the loop.
type Publisher interface {
	Send(*schema.GameInfo) error
}

type State int32

const (
	StateIdle State = iota
	StateActive
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// SleepFunc suspends the loop for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type Fetcher struct {
	source         Source
	out            Publisher
	logger         *zap.Logger
	sleep          SleepFunc
	idleBackoff    time.Duration
	activeInterval time.Duration

	state     atomic.Int32
	published atomic.Uint64
}

type Option func(*Fetcher)

func WithSleep(fn SleepFunc) Option {
	return func(f *Fetcher) { f.sleep = fn }
}

// WithIntervals overrides the idle backoff and active cadence. Zero keeps the default.
func WithIntervals(idle, active time.Duration) Option {
	return func(f *Fetcher) {
		if idle > 0 {
			f.idleBackoff = idle
		}
		if active > 0 {
			f.activeInterval = active
		}
	}
}

func New(source Source, out Publisher, logger *zap.Logger, opts ...Option) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Fetcher{
		source:         source,
		out:            out,
		logger:         logger,
		sleep:          Sleep,
		idleBackoff:    DefaultIdleBackoff,
		activeInterval: DefaultActiveInterval,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) State() State { return State(f.state.Load()) }

// Published counts snapshots handed to the publisher.
func (f *Fetcher) Published() uint64 { return f.published.Load() }

// Run polls until the publisher reports the consumer is gone (returns nil)
// or ctx is done (returns ctx.Err()). Failures inside a cycle are logged and
// never end the loop.
func (f *Fetcher) Run(ctx context.Context) error {
	f.logger.Info("starting live client polling",
		zap.Duration("idle_backoff", f.idleBackoff),
		zap.Duration("active_interval", f.activeInterval))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !f.source.CheckActive(ctx) {
			f.setState(StateIdle)
			f.logger.Debug("no active game detected, waiting")
			if err := f.sleep(ctx, f.idleBackoff); err != nil {
				return err
			}
			continue
		}

		f.setState(StateActive)
		if stop := f.cycle(ctx); stop {
			f.logger.Info("consumer closed, stopping live client polling",
				zap.Uint64("published", f.Published()))
			return nil
		}
		if err := f.sleep(ctx, f.activeInterval); err != nil {
			return err
		}
	}
}

// cycle fetches and publishes one snapshot. It reports true only when the
// consumer is gone.
func (f *Fetcher) cycle(ctx context.Context) bool {
	raw, err := f.source.FetchSnapshotRaw(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		f.logger.Warn("failed to fetch game data", append(liveclient.LogFields(err), zap.Error(err))...)
		return false
	}

	info, err := liveclient.Decode[schema.GameInfo](liveclient.EndpointAllGameData, raw)
	if err != nil {
		f.logger.Warn("failed to decode game data", append(liveclient.LogFields(err), zap.Error(err))...)
		return false
	}

	if err := f.out.Send(&info); err != nil {
		if errors.Is(err, feed.ErrClosed) {
			return true
		}
		f.logger.Warn("failed to publish game data", zap.Error(err))
		return false
	}
	f.published.Add(1)
	return false
}

func (f *Fetcher) setState(s State) {
	prev := State(f.state.Swap(int32(s)))
	if prev != s {
		f.logger.Info("live client state changed",
			zap.Stringer("from", prev),
			zap.Stringer("to", s))
	}
}
