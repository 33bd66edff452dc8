package fakes

import (
	"sync"

	"github.com/cloudfoundry/schedutils/threadpriority"
)

type FakeScheduleReader struct {
	// Guards every field; the watcher reads from its own goroutine.
	Mutex sync.Mutex

	ReadThreadIDs     []threadpriority.ThreadID
	ReadThreadThread  threadpriority.Thread
	ReadThreadErr     error
	ReadThreadThreads []threadpriority.Thread
	ReadThreadErrs    []error
}

func NewFakeScheduleReader() *FakeScheduleReader {
	return &FakeScheduleReader{}
}

func (r *FakeScheduleReader) ReadThread(id threadpriority.ThreadID) (threadpriority.Thread, error) {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()

	r.ReadThreadIDs = append(r.ReadThreadIDs, id)

	thread, err := r.ReadThreadThread, r.ReadThreadErr

	if len(r.ReadThreadThreads) > 0 {
		thread = r.ReadThreadThreads[0]
		r.ReadThreadThreads = r.ReadThreadThreads[1:]
	}

	if len(r.ReadThreadErrs) > 0 {
		err = r.ReadThreadErrs[0]
		r.ReadThreadErrs = r.ReadThreadErrs[1:]
	}

	return thread, err
}

func (r *FakeScheduleReader) CallCount() int {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()
	return len(r.ReadThreadIDs)
}

// SetThread replaces the steady-state result returned once the queued
// results are drained.
func (r *FakeScheduleReader) SetThread(thread threadpriority.Thread) {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()
	r.ReadThreadThread = thread
	r.ReadThreadErr = nil
}

func (r *FakeScheduleReader) SetErr(err error) {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()
	r.ReadThreadErr = err
}
