// Package overlay is the consuming side of the feed: it keeps the latest
// snapshot in a guarded slot, derives what the overlay displays, tracks
// whether the overlay is shown, and pushes views to a Broadcaster.
package overlay

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Alex-Aron/LeagueOverlay/internal/feed"
	"github.com/Alex-Aron/LeagueOverlay/internal/schema"
)

// View is one renderable state of the overlay. Stats is nil when no snapshot
// has arrived yet or the active player was not found in it.
type View struct {
	Version int
	Visible bool
	Stats   *Stats
}

type Broadcaster interface {
	Publish(View)
}

type Consumer struct {
	queue   *feed.Queue[*schema.GameInfo]
	slot    *Slot
	toggles <-chan struct{}
	out     Broadcaster
	logger  *zap.Logger

	mu      sync.Mutex
	visible bool
}

// NewConsumer wires a consumer. toggles is the signal source that flips
// visibility (a hotkey listener, the HTTP API); it may be nil. out may be nil.
func NewConsumer(queue *feed.Queue[*schema.GameInfo], slot *Slot, toggles <-chan struct{}, out Broadcaster, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if slot == nil {
		slot = &Slot{}
	}
	return &Consumer{
		queue:   queue,
		slot:    slot,
		toggles: toggles,
		out:     out,
		logger:  logger,
		visible: true,
	}
}

// Run drains the queue until ctx is done. It closes the queue on return so
// the producer stops on its next publish.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.queue.Close()

	toggles := c.toggles
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-c.queue.Ready():
			if info, ok := c.queue.Latest(); ok && info != nil {
				c.apply(info)
			}

		case _, ok := <-toggles:
			if !ok {
				toggles = nil
				continue
			}
			c.Toggle()
		}
	}
}

func (c *Consumer) apply(info *schema.GameInfo) {
	version := c.slot.Store(*info)
	if _, ok := info.Self(); !ok {
		c.logger.Debug("active player not found in allPlayers",
			zap.String("riot_id", info.ActivePlayer.RiotID),
			zap.Int("players", len(info.AllPlayers)))
	}
	c.logger.Debug("snapshot received",
		zap.Int("version", version),
		zap.Float64("game_time", info.GameData.GameTime))
	c.publish()
}

// Toggle flips visibility and returns the new value.
func (c *Consumer) Toggle() bool {
	c.mu.Lock()
	c.visible = !c.visible
	visible := c.visible
	c.mu.Unlock()

	c.logger.Info("toggling overlay visibility", zap.Bool("visible", visible))
	c.publish()
	return visible
}

func (c *Consumer) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Snapshot returns the latest snapshot received, if any.
func (c *Consumer) Snapshot() (schema.GameInfo, int, bool) {
	return c.slot.Load()
}

// View derives the current view from the slot.
func (c *Consumer) View() View {
	info, version, ok := c.slot.Load()
	v := View{Version: version, Visible: c.Visible()}
	if !ok {
		return v
	}
	if stats, found := Compute(&info); found {
		v.Stats = &stats
	}
	return v
}

func (c *Consumer) publish() {
	if c.out == nil {
		return
	}
	c.out.Publish(c.View())
}
