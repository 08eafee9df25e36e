// Package sim drives the worm-and-bubbles simulation: it owns the ECS world,
// runs the frame systems, spawns bubbles on a deterministic timer, and
// forwards clicks to the worm.
package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bubbleworm/clock"
	"github.com/milk9111/bubbleworm/common"
	"github.com/milk9111/bubbleworm/ecs"
	"github.com/milk9111/bubbleworm/ecs/component"
	"github.com/milk9111/bubbleworm/ecs/system"
	"go.uber.org/zap"
)

const spawnTimerKey = "spawn"

// VisualFactory creates host visuals. Radius reports the unscaled collision
// radius of an asset, which the simulation derives bubble radii from.
type VisualFactory interface {
	NewVisual(asset string, layer int, pos cp.Vector, angle float64) (component.VisualHandle, error)
	Radius(asset string) (float64, bool)
}

type Options struct {
	Tuning    Tuning
	Visuals   VisualFactory
	Placement Placement
	Rand      *rand.Rand
	Logger    *zap.Logger
}

type Controller struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	timers    *clock.Timers
	visuals   VisualFactory
	placement Placement
	rng       *rand.Rand
	logger    *zap.Logger
	tuning    Tuning

	chain ecs.Entity
}

// New builds the world, places the worm at a random spot inside its spawn
// rect, and spawns the first bubble.
func New(opts Options) (*Controller, error) {
	if opts.Visuals == nil {
		return nil, errors.New("sim: visual factory is required")
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		world:     ecs.NewWorld(),
		scheduler: ecs.NewScheduler(system.NewChainSystem(), system.NewBubbleSystem()),
		timers:    clock.New(),
		visuals:   opts.Visuals,
		placement: opts.Placement,
		rng:       opts.Rand,
		logger:    opts.Logger,
		tuning:    opts.Tuning,
	}
	if c.placement == nil {
		c.placement = RectPlacement{Field: c.tuning.Bubble.Field}
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	if err := c.spawnChain(); err != nil {
		return nil, err
	}
	if _, err := c.Spawn(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) spawnChain() error {
	t := c.tuning.Chain
	head := cp.Vector{
		X: common.RandRange(c.rng.Float64(), t.Spawn.Min.X, t.Spawn.Max.X),
		Y: common.RandRange(c.rng.Float64(), t.Spawn.Min.Y, t.Spawn.Max.Y),
	}

	chain := &component.Chain{
		Head:        head,
		Destination: head,
		Params:      t.Params,
	}
	for i, seg := range t.Segments {
		pos := head.Add(seg.Offset)
		part, err := c.visuals.NewVisual(seg.Sprite, t.RenderLayer, pos, 0)
		if err != nil {
			return fmt.Errorf("sim: create chain part %d: %w", i, err)
		}
		chain.Segments = append(chain.Segments, pos)
		chain.Parts = append(chain.Parts, part)
	}

	c.chain = ecs.CreateEntity(c.world)
	if err := ecs.Add(c.world, c.chain, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return fmt.Errorf("sim: add player tag: %w", err)
	}
	if err := ecs.Add(c.world, c.chain, component.ChainComponent.Kind(), chain); err != nil {
		return fmt.Errorf("sim: add chain: %w", err)
	}

	c.logger.Debug("chain spawned", zap.Float64("x", head.X), zap.Float64("y", head.Y), zap.Int("segments", len(chain.Segments)))
	return nil
}

// Spawn creates one bubble and schedules the next spawn, replacing any spawn
// already pending.
func (c *Controller) Spawn() (ecs.Entity, error) {
	t := c.tuning.Bubble
	// Always reschedule first so a failed spawn does not stop the loop.
	delay := common.RandRange(c.rng.Float64(), t.SpawnDelayMin, t.SpawnDelayMax)
	c.timers.ScheduleOnce(spawnTimerKey, delay, c.spawnFromTimer)

	rx, ry := c.rng.Float64(), c.rng.Float64()
	pos, err := c.placement.Place(rx, ry)
	if err != nil {
		c.logger.Warn("placement failed, using uniform field", zap.Error(err))
		pos, _ = RectPlacement{Field: t.Field}.Place(rx, ry)
	}
	angle := c.rng.Float64() * 360
	spin := common.RandRange(c.rng.Float64(), -t.SpinMax, t.SpinMax)

	baseRadius, ok := c.visuals.Radius(t.Sprite)
	if !ok {
		return 0, fmt.Errorf("sim: unknown bubble sprite %q", t.Sprite)
	}
	handle, err := c.visuals.NewVisual(t.Sprite, t.RenderLayer, pos, angle)
	if err != nil {
		return 0, fmt.Errorf("sim: create bubble visual: %w", err)
	}

	e := ecs.CreateEntity(c.world)
	if err := ecs.Add(c.world, e, component.BubbleComponent.Kind(), &component.Bubble{
		Position:   pos,
		Angle:      angle,
		Spin:       spin,
		Scale:      1,
		BaseRadius: baseRadius,
	}); err != nil {
		handle.Release()
		ecs.DestroyEntity(c.world, e)
		return 0, fmt.Errorf("sim: add bubble: %w", err)
	}
	if err := ecs.Add(c.world, e, component.ShrinkComponent.Kind(), &component.Shrink{
		Duration: t.ShrinkDuration,
		From:     1,
		To:       t.ShrinkTo,
	}); err != nil {
		handle.Release()
		ecs.DestroyEntity(c.world, e)
		return 0, fmt.Errorf("sim: add shrink: %w", err)
	}
	if err := ecs.Add(c.world, e, component.VisualComponent.Kind(), &component.Visual{Handle: handle}); err != nil {
		handle.Release()
		ecs.DestroyEntity(c.world, e)
		return 0, fmt.Errorf("sim: add visual: %w", err)
	}

	c.logger.Debug("bubble spawned",
		zap.Stringer("entity", e),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
		zap.Float64("next_in", delay),
	)
	return e, nil
}

func (c *Controller) spawnFromTimer() {
	if _, err := c.Spawn(); err != nil {
		c.logger.Error("spawn bubble", zap.Error(err))
	}
}

// Update advances one frame: worm motion, then pickups, spin, shrink and
// expiry, then due timers.
func (c *Controller) Update(dt float64) {
	c.scheduler.Update(c.world, dt)
	c.timers.Advance(dt)

	for _, evt := range c.world.Events().Drain() {
		data, _ := evt.Data.(ecs.BubbleEvent)
		c.logger.Debug(evt.Type,
			zap.Stringer("entity", data.Entity),
			zap.Float64("x", data.X),
			zap.Float64("y", data.Y),
			zap.Float64("radius", data.Radius),
		)
	}
}

// OnMouseDown steers the worm toward p.
func (c *Controller) OnMouseDown(p cp.Vector) {
	chain := c.Chain()
	if chain == nil {
		return
	}
	if !system.ApplyClick(chain, p) {
		c.logger.Debug("click on head ignored", zap.Float64("x", p.X), zap.Float64("y", p.Y))
	}
}

// SetTuning applies reloaded tuning. Chain parameters take effect next frame;
// bubble settings apply to later spawns. Spawn and segment layout only matter
// at construction and are ignored here.
func (c *Controller) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.tuning = t
	if chain := c.Chain(); chain != nil {
		chain.Params = t.Chain.Params
	}
	if rp, ok := c.placement.(RectPlacement); ok {
		rp.Field = t.Bubble.Field
		c.placement = rp
	}
	return nil
}

// SetPlacement swaps the bubble placement strategy.
func (c *Controller) SetPlacement(p Placement) {
	if p == nil {
		p = RectPlacement{Field: c.tuning.Bubble.Field}
	}
	c.placement = p
}

func (c *Controller) Chain() *component.Chain {
	chain, _ := ecs.Get(c.world, c.chain, component.ChainComponent.Kind())
	return chain
}

// Bubbles returns a snapshot of the live bubble entities.
func (c *Controller) Bubbles() []ecs.Entity {
	return ecs.Query(c.world, component.BubbleComponent.Kind())
}

func (c *Controller) Bubble(e ecs.Entity) (*component.Bubble, bool) {
	return ecs.Get(c.world, e, component.BubbleComponent.Kind())
}

// PendingSpawns is 1 while a spawn is scheduled and 0 otherwise.
func (c *Controller) PendingSpawns() int {
	if _, ok := c.timers.Due(spawnTimerKey); ok {
		return 1
	}
	return 0
}

// NextSpawnIn returns the time until the pending spawn fires.
func (c *Controller) NextSpawnIn() (float64, bool) {
	due, ok := c.timers.Due(spawnTimerKey)
	if !ok {
		return 0, false
	}
	return due - c.timers.Now(), true
}

func (c *Controller) World() *ecs.World {
	return c.world
}

func (c *Controller) Tuning() Tuning {
	return c.tuning
}
