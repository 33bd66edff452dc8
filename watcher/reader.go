package watcher

import (
	bosherr "github.com/cloudfoundry/schedutils/errors"
	"github.com/cloudfoundry/schedutils/threadpriority"
)

type osScheduleReader struct{}

// NewOSScheduleReader reads scheduling from the running kernel.
func NewOSScheduleReader() ScheduleReader {
	return osScheduleReader{}
}

func (osScheduleReader) ReadThread(id threadpriority.ThreadID) (threadpriority.Thread, error) {
	priority, err := threadpriority.GetThreadPriority(id)
	if err != nil {
		return threadpriority.Thread{}, bosherr.WrapErrorf(err, "Reading scheduling of thread %s", id.String())
	}
	return threadpriority.Thread{ID: id, Priority: priority}, nil
}
