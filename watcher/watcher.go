// Package watcher polls a thread's scheduling and reports changes made
// behind the process's back, e.g. by an administrator running renice or
// chrt against the thread.
package watcher

import (
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/jpillora/backoff"

	bosherr "github.com/cloudfoundry/schedutils/errors"
	boshlog "github.com/cloudfoundry/schedutils/logger"
	"github.com/cloudfoundry/schedutils/threadpriority"
)

const watcherLogTag = "ScheduleWatcher"

// ScheduleReader reads the current scheduling of a thread.
type ScheduleReader interface {
	ReadThread(id threadpriority.ThreadID) (threadpriority.Thread, error)
}

// Event reports one observed priority change.
type Event struct {
	Thread   threadpriority.Thread
	Previous threadpriority.ThreadPriority
}

type Watcher struct {
	reader      ScheduleReader
	id          threadpriority.ThreadID
	interval    time.Duration
	timeService clock.Clock
	logger      boshlog.Logger

	events   chan Event
	stopCh   chan struct{}
	stopOnce sync.Once
}

func New(
	reader ScheduleReader,
	id threadpriority.ThreadID,
	interval time.Duration,
	timeService clock.Clock,
	logger boshlog.Logger,
) *Watcher {
	return &Watcher{
		reader:      reader,
		id:          id,
		interval:    interval,
		timeService: timeService,
		logger:      logger,

		events: make(chan Event, 16),
		stopCh: make(chan struct{}),
	}
}

func (w *Watcher) Events() <-chan Event { return w.events }

// Start reads the thread once to establish the baseline and begins polling.
// Read failures after Start back off exponentially up to ten intervals and
// do not stop the watcher.
func (w *Watcher) Start() error {
	thread, err := w.reader.ReadThread(w.id)
	if err != nil {
		return bosherr.WrapErrorf(err, "Reading initial scheduling of thread %s", w.id.String())
	}

	w.logger.Debug(watcherLogTag, "Watching thread %s, baseline %s", w.id.String(), thread.Priority.String())
	go w.run(thread.Priority)
	return nil
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *Watcher) run(last threadpriority.ThreadPriority) {
	retry := &backoff.Backoff{
		Min:    w.interval,
		Max:    10 * w.interval,
		Factor: 2,
	}
	wait := w.interval

	for {
		timer := w.timeService.NewTimer(wait)
		select {
		case <-w.stopCh:
			timer.Stop()
			close(w.events)
			return
		case <-timer.C():
		}

		thread, err := w.reader.ReadThread(w.id)
		if err != nil {
			wait = retry.Duration()
			w.logger.Warn(watcherLogTag, "Failed to read thread %s, retrying in %s: %s", w.id.String(), wait, err.Error())
			continue
		}
		retry.Reset()
		wait = w.interval

		if thread.Priority.Equal(last) {
			continue
		}

		w.logger.Info(watcherLogTag, "Thread %s changed from %s to %s", w.id.String(), last.String(), thread.Priority.String())
		event := Event{Thread: thread, Previous: last}
		last = thread.Priority

		select {
		case w.events <- event:
		case <-w.stopCh:
			close(w.events)
			return
		}
	}
}
