package ecs

import (
	"context"
	"reflect"
	"runtime"
	"time"

	"github.com/kamstrup/intmap"
	"golang.org/x/sync/errgroup"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
	RecentFrames    []time.Duration
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

const frameHistorySize = 120

// Scheduler manages systems and drives frames against a World. Each frame it
// partitions the registered systems into conflict-free batches: two systems
// conflict when one's write set intersects the other's write or read set.
// Systems in a batch run concurrently across workers; batches run in order.
// Conflicting systems serialize in registration order, so for a fixed
// registered set the batch partition is deterministic.
type Scheduler struct {
	world    *World
	systems  []System
	names    []string
	access   []AccessSet
	reads    []*intmap.Set[ComponentID]
	writes   []*intmap.Set[ComponentID]
	queries  [][]queryRefresher
	commands []*Commands

	systemStats []*systemStatsInternal
	frameTimes  *SizedQueue[time.Duration]

	plan      [][]int
	planValid bool

	workers int
	onError func([]SystemError)
}

type worldInitializer interface {
	Init(*World)
}

type queryRefresher interface {
	Execute()
}

type signatured interface {
	viewSignature() []viewField
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:      world,
		workers:    runtime.GOMAXPROCS(0),
		frameTimes: NewSizedQueue[time.Duration](frameHistorySize),
	}
}

// SetWorkers bounds how many systems of one batch run concurrently. Defaults
// to GOMAXPROCS.
func (s *Scheduler) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	s.workers = n
}

// SetOnError installs a hook that Run delivers each frame's collected
// failures to.
func (s *Scheduler) SetOnError(fn func([]SystemError)) {
	s.onError = fn
}

// Register adds a system to the scheduler, snapshots its declared access
// sets, and initializes its Query, View, and Resource fields. Query and View
// fields are validated against the declared sets: a signature component
// outside them panics with AccessViolationError. Registration invalidates
// the cached execution plan.
func (s *Scheduler) Register(system System) {
	name := systemName(system)
	access := snapshotAccess(system.Access())

	reads := intmap.NewSet[ComponentID](len(access.Reads))
	for _, cid := range access.Reads {
		reads.Add(cid)
	}
	writes := intmap.NewSet[ComponentID](len(access.Writes))
	for _, cid := range access.Writes {
		writes.Add(cid)
	}

	queries := s.initFields(system, name, reads, writes)

	s.systems = append(s.systems, system)
	s.names = append(s.names, name)
	s.access = append(s.access, access)
	s.reads = append(s.reads, reads)
	s.writes = append(s.writes, writes)
	s.queries = append(s.queries, queries)
	s.commands = append(s.commands, newCommands())
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
	s.planValid = false
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func snapshotAccess(a AccessSet) AccessSet {
	return AccessSet{
		Reads:  append([]ComponentID(nil), a.Reads...),
		Writes: append([]ComponentID(nil), a.Writes...),
	}
}

// initFields walks the system struct, initializes Query/View/Resource fields
// with the world, validates query signatures against the declared sets, and
// collects the per-frame query refreshers.
func (s *Scheduler) initFields(system System, name string, reads, writes *intmap.Set[ComponentID]) []queryRefresher {
	value := reflect.ValueOf(system)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	var refreshers []queryRefresher
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		fieldPtr := field.Addr().Interface()
		init, ok := fieldPtr.(worldInitializer)
		if !ok {
			continue
		}
		init.Init(s.world)

		if sig, ok := fieldPtr.(signatured); ok {
			for _, f := range sig.viewSignature() {
				if f.kind == fieldWithout {
					// Absence checks only observe membership, which cannot
					// change while a frame executes.
					continue
				}
				if !reads.Has(f.id) && !writes.Has(f.id) {
					panic(AccessViolationError{System: name, Type: f.typ})
				}
			}
		}
		if refresher, ok := fieldPtr.(queryRefresher); ok {
			refreshers = append(refreshers, refresher)
		}
	}
	return refreshers
}

// conflicts reports whether systems i and j may not run concurrently.
func (s *Scheduler) conflicts(i, j int) bool {
	for _, cid := range s.access[i].Writes {
		if s.writes[j].Has(cid) || s.reads[j].Has(cid) {
			return true
		}
	}
	for _, cid := range s.access[i].Reads {
		if s.writes[j].Has(cid) {
			return true
		}
	}
	return false
}

// ensurePlan computes the batch partition if registration changed it.
// Each system lands in the batch just after its last conflicting
// predecessor, so batch membership is a pure function of the registered set.
func (s *Scheduler) ensurePlan() {
	if s.planValid {
		return
	}

	batchOf := make([]int, len(s.systems))
	batches := 0
	for i := range s.systems {
		b := 0
		for j := 0; j < i; j++ {
			if s.conflicts(i, j) && batchOf[j]+1 > b {
				b = batchOf[j] + 1
			}
		}
		batchOf[i] = b
		if b+1 > batches {
			batches = b + 1
		}
	}

	s.plan = make([][]int, batches)
	for i, b := range batchOf {
		s.plan[b] = append(s.plan[b], i)
	}
	s.planValid = true
}

// Plan returns the conflict-free execution batches by system name, in
// execution order.
func (s *Scheduler) Plan() [][]string {
	s.ensurePlan()
	plan := make([][]string, len(s.plan))
	for b, batch := range s.plan {
		plan[b] = make([]string, len(batch))
		for i, idx := range batch {
			plan[b][i] = s.names[idx]
		}
	}
	return plan
}

// Once executes one frame with the given delta time in seconds. Systems in
// the same batch run concurrently; a failing system does not stop the frame.
// After all batches complete, command buffers are flushed in registration
// order and all collected failures are returned.
func (s *Scheduler) Once(dt float64) []SystemError {
	s.ensurePlan()
	frameStart := time.Now()

	if t := GetResource[Time](s.world); t != nil {
		t.Advance(time.Duration(dt * float64(time.Second)))
	}

	errs := make([]error, len(s.systems))
	for _, batch := range s.plan {
		g := new(errgroup.Group)
		g.SetLimit(s.workers)
		for _, idx := range batch {
			g.Go(func() error {
				frame := &Frame{
					DeltaTime: dt,
					Commands:  s.commands[idx],
					world:     s.world,
					system:    s.names[idx],
					reads:     s.reads[idx],
					writes:    s.writes[idx],
				}
				for _, refresher := range s.queries[idx] {
					refresher.Execute()
				}

				start := time.Now()
				err := s.systems[idx].Execute(frame)
				duration := time.Since(start)

				stats := s.systemStats[idx]
				stats.executionCount++
				stats.lastDuration = duration
				stats.totalDuration += duration
				if duration < stats.minDuration {
					stats.minDuration = duration
				}
				if duration > stats.maxDuration {
					stats.maxDuration = duration
				}

				errs[idx] = err
				return nil
			})
		}
		g.Wait()
	}

	var failures []SystemError
	for i, err := range errs {
		if err != nil {
			failures = append(failures, SystemError{System: s.names[i], Err: err})
		}
	}
	for i := range s.systems {
		for _, err := range s.commands[i].Flush(s.world) {
			failures = append(failures, SystemError{System: s.names[i], Err: err})
		}
	}

	s.frameTimes.Push(time.Since(frameStart))
	return failures
}

// Run executes frames repeatedly at the given interval until the context is
// cancelled. Collected failures are delivered to the OnError hook, if any.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.deliver(s.Once(dt))
		}
	}
}

// RunPaced executes frames back to back, pacing them with the given frame
// rate keeper, until the context is cancelled.
func (s *Scheduler) RunPaced(ctx context.Context, keeper *FrameRateKeeper) {
	lastTime := time.Now()
	keeper.Reset()
	for {
		if ctx.Err() != nil {
			return
		}
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		s.deliver(s.Once(dt))
		keeper.WaitNextFrame()
		keeper.Reset()
	}
}

func (s *Scheduler) deliver(failures []SystemError) {
	if len(failures) > 0 && s.onError != nil {
		s.onError(failures)
	}
}

// Stats returns statistics about system execution, including the recent
// frame duration history.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:  len(s.systems),
		Systems:      make([]SystemStats, len(s.systemStats)),
		RecentFrames: s.frameTimes.Items(),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}
		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}
	stats.TotalExecutions = totalExecs
	return stats
}
