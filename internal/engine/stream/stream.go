// Package stream implements the ordered synchronous insertion queue.
//
// The queue models the original insertion-point semantics: tasks run one at
// a time on a single goroutine, strictly in order, with no preemption, and a
// running task may insert follow-up tasks that are guaranteed to complete
// before anything appended after the inserting task begins. That ordering
// guarantee is the entire reason the mechanism exists.
package stream

import (
	"context"

	"github.com/WebReflection/header-snippets/internal/core/domain"
	"go.trai.ch/zerr"
)

// Task is a unit of work on the stream. The insertion point it receives is
// scoped to this task's own execution and must not be retained.
type Task func(ctx context.Context, ip *Insertion) error

type entry struct {
	name string
	task Task
}

// Stream is a strict-FIFO task queue with insertion points.
type Stream struct {
	queue []entry
}

// New creates an empty Stream.
func New() *Stream {
	return &Stream{}
}

// Append queues a task at the tail of the stream.
func (s *Stream) Append(name string, task Task) {
	s.queue = append(s.queue, entry{name: name, task: task})
}

// Len returns the number of tasks still queued.
func (s *Stream) Len() int {
	return len(s.queue)
}

// Run drains the stream. Each task runs to completion before the next
// begins; a started task is never aborted, so the context is consulted only
// between tasks. The first task error stops the run and is returned with
// the task's name attached.
func (s *Stream) Run(ctx context.Context) error {
	for len(s.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, "stream interrupted")
		}

		head := s.queue[0]
		s.queue = s.queue[1:]

		ip := &Insertion{live: true}
		err := head.task(ctx, ip)
		ip.live = false

		// Inserted tasks run before everything queued after the task
		// that inserted them.
		if len(ip.pending) > 0 {
			s.queue = append(ip.pending, s.queue...)
		}

		if err != nil {
			return zerr.With(zerr.Wrap(err, "stream task failed"), "task", head.name)
		}
	}
	return nil
}

// Insertion is the insertion point handed to a running task. It is only
// valid while that task is executing: the model deliberately does not
// support batching insertions across tasks, so a retained handle fails with
// ErrStreamCorrupted instead of silently reordering work.
type Insertion struct {
	live    bool
	pending []entry
}

// Insert splices a task in directly after the current one, ahead of
// everything appended later. Multiple inserts from one task keep their
// insertion order.
func (ip *Insertion) Insert(name string, task Task) error {
	if !ip.live {
		return zerr.With(domain.ErrStreamCorrupted, "task", name)
	}
	ip.pending = append(ip.pending, entry{name: name, task: task})
	return nil
}
