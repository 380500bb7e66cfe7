// Package scheduler runs per-frame tasks cooperatively on a single
// goroutine.
//
// A task is a callback invoked once per frame with the elapsed game time
// since the previous frame. It keeps running while it returns Continue and
// is retired for good the first time it returns Stop. Tasks run in
// registration order, and a task observes every mutation made by tasks
// before it in the same frame.
//
// The Scheduler is not safe for concurrent use, except for Pause, Resume
// and Paused, which may be called from any goroutine.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Result tells the scheduler whether a task wants to run next frame.
type Result int

const (
	Continue Result = iota
	Stop
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// TaskFunc is a per-frame callback.
type TaskFunc func(dt time.Duration) Result

// TaskID identifies a registered task.
type TaskID uint64

// Renderer is notified after every frame in which at least one task ran.
type Renderer interface {
	Render()
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func()

func (f RendererFunc) Render() { f() }

const defaultCompactThreshold = 64

type task struct {
	id    TaskID
	fn    TaskFunc
	alive bool
}

// Scheduler owns the task list and drives it one frame at a time.
type Scheduler struct {
	tasks  []*task
	index  map[TaskID]*task
	nextID TaskID
	live   int
	dead   int

	sweeping         bool
	compactThreshold int

	renderer      Renderer
	clock         *PausableClock
	lastExec      time.Time
	maxFrameDelta time.Duration
	paused        atomic.Bool

	logger  zerolog.Logger
	metrics instruments
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock Frame reads elapsed time from.
func WithClock(c *PausableClock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithLogger sets the logger used for task faults and housekeeping.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithCompactThreshold sets how many tombstones may accumulate before the
// task list is rebuilt. Values below 1 keep the default.
func WithCompactThreshold(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.compactThreshold = n
		}
	}
}

// WithMaxFrameDelta caps the elapsed time Frame hands to tasks. Zero
// disables the cap.
func WithMaxFrameDelta(d time.Duration) Option {
	return func(s *Scheduler) { s.maxFrameDelta = d }
}

// New creates a scheduler that notifies renderer after each productive
// frame. renderer may be nil.
func New(renderer Renderer, opts ...Option) *Scheduler {
	s := &Scheduler{
		index:            make(map[TaskID]*task),
		compactThreshold: defaultCompactThreshold,
		renderer:         renderer,
		logger:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = NewPausableClock(nil)
	}
	s.metrics = newInstruments(s.logger)
	s.lastExec = s.clock.Now()
	return s
}

// SetRenderer replaces the render collaborator.
func (s *Scheduler) SetRenderer(r Renderer) {
	s.renderer = r
}

// Clock returns the clock Frame reads.
func (s *Scheduler) Clock() *PausableClock {
	return s.clock
}

// Register appends fn to the task list. A task registered while a frame is
// being swept runs later in that same frame. Registering into an idle
// scheduler restarts the frame baseline, so the first Frame does not see
// the idle time.
func (s *Scheduler) Register(fn TaskFunc) TaskID {
	if s.live == 0 {
		s.lastExec = s.clock.Now()
	}
	s.nextID++
	t := &task{id: s.nextID, fn: fn, alive: true}
	s.tasks = append(s.tasks, t)
	s.index[t.id] = t
	s.live++
	s.metrics.live.Add(context.Background(), 1)
	return t.id
}

// Cancel stops the task with the given id. It reports whether a live task
// was found.
func (s *Scheduler) Cancel(id TaskID) bool {
	t, ok := s.index[id]
	if !ok {
		return false
	}
	s.kill(t)
	s.maybeCompact()
	return true
}

// Clear stops every task. Later frames do nothing until new tasks are
// registered.
func (s *Scheduler) Clear() {
	for _, t := range s.tasks {
		s.kill(t)
	}
	s.maybeCompact()
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	return s.live
}

// Tick runs one frame: every live task is invoked with dt in registration
// order and tasks returning Stop are retired. When at least one task was
// live at the start of the frame the renderer is notified, the frame time
// becomes the baseline for the next Frame, and Tick returns true.
func (s *Scheduler) Tick(dt time.Duration) bool {
	if s.live == 0 {
		return false
	}

	s.sweeping = true
	for i := 0; i < len(s.tasks); i++ {
		t := s.tasks[i]
		if !t.alive {
			continue
		}
		if s.invoke(t, dt) == Stop {
			s.kill(t)
		}
	}
	s.sweeping = false

	s.metrics.ticks.Add(context.Background(), 1)
	if s.renderer != nil {
		s.renderer.Render()
	}
	s.lastExec = s.clock.Now()
	s.maybeCompact()
	return true
}

// Frame ticks with the game time elapsed since the last productive frame.
// It does nothing while the scheduler is paused.
func (s *Scheduler) Frame() bool {
	if s.paused.Load() {
		return false
	}
	elapsed := s.clock.Now().Sub(s.lastExec)
	if elapsed < 0 {
		elapsed = 0
	}
	if s.maxFrameDelta > 0 && elapsed > s.maxFrameDelta {
		elapsed = s.maxFrameDelta
	}
	return s.Tick(elapsed)
}

// Run calls Frame every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Frame()
		}
	}
}

// Pause stops Frame from running tasks and freezes the clock.
func (s *Scheduler) Pause() {
	s.paused.Store(true)
	s.clock.Pause()
}

// Resume restarts frames. Time spent paused is not reported to tasks.
func (s *Scheduler) Resume() {
	s.clock.Resume()
	s.paused.Store(false)
}

func (s *Scheduler) Paused() bool {
	return s.paused.Load()
}

func (s *Scheduler) invoke(t *task, dt time.Duration) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Uint64("task", uint64(t.id)).
				Interface("panic", r).
				Msg("Task panicked, stopping it")
			s.metrics.faults.Add(context.Background(), 1)
			res = Stop
		}
	}()
	return t.fn(dt)
}

func (s *Scheduler) kill(t *task) {
	if !t.alive {
		return
	}
	t.alive = false
	t.fn = nil
	delete(s.index, t.id)
	s.live--
	s.dead++
	s.metrics.live.Add(context.Background(), -1)
}

// maybeCompact drops tombstones once they pile up. It never runs mid-frame
// so indices held by the sweep stay valid.
func (s *Scheduler) maybeCompact() {
	if s.sweeping || s.dead == 0 {
		return
	}
	if s.live > 0 && (s.dead < s.compactThreshold || s.dead <= s.live) {
		return
	}

	kept := make([]*task, 0, s.live)
	for _, t := range s.tasks {
		if t.alive {
			kept = append(kept, t)
		}
	}
	s.logger.Debug().Int("dropped", s.dead).Int("live", len(kept)).Msg("Compacted task list")
	s.tasks = kept
	s.dead = 0
}
