package threadpriority

import (
	"runtime"

	boshlog "github.com/cloudfoundry/schedutils/logger"
)

const builderLogTag = "ThreadBuilder"

// Builder spawns a goroutine locked to a dedicated OS thread with the
// requested scheduling applied before the user function runs. It is
// sequencing sugar over the set/get calls; a zero builder just pins the
// goroutine.
type Builder struct {
	priority  *ThreadPriority
	policy    ThreadSchedulePolicy
	hasPolicy bool
	logger    boshlog.Logger
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithPriority(p ThreadPriority) *Builder {
	b.priority = &p
	return b
}

func (b *Builder) WithPolicy(policy ThreadSchedulePolicy) *Builder {
	b.policy = policy
	b.hasPolicy = true
	return b
}

func (b *Builder) WithLogger(logger boshlog.Logger) *Builder {
	b.logger = logger
	return b
}

// Spawn starts f on its own OS thread. It blocks until the scheduling has
// been applied and returns the outcome; on failure f is never run.
//
// The thread stays locked for the goroutine's lifetime, so it is destroyed
// when f returns instead of rejoining the runtime's pool with altered
// scheduling.
func (b *Builder) Spawn(f func()) error {
	errCh := make(chan error)
	go func() {
		runtime.LockOSThread()
		err := b.apply()
		errCh <- err
		if err != nil {
			return
		}
		f()
	}()
	return <-errCh
}

// SpawnBestEffort starts f on its own OS thread and runs it even when the
// scheduling could not be applied, logging a warning instead of failing.
func (b *Builder) SpawnBestEffort(f func()) {
	go func() {
		runtime.LockOSThread()
		if err := b.apply(); err != nil && b.logger != nil {
			b.logger.Warn(builderLogTag, "Continuing without requested scheduling: %s", err.Error())
		}
		f()
	}()
}

func (b *Builder) apply() error {
	if b.priority == nil {
		return nil
	}
	policy := b.policy
	if !b.hasPolicy {
		policy = PolicyNormal
		if b.priority.IsDeadline() {
			policy = PolicyDeadline
		}
	}
	return SetThreadScheduling(CurrentThreadID(), *b.priority, policy)
}
