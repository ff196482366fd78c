// Package task runs the background maintenance tasks of the service.
package task

import (
	"context"
	"time"

	"github.com/spacekeep/capture-service/pkg/safeclose"

	"go.uber.org/zap"
)

// Task is one background maintenance job.
type Task interface {
	Name() string
	Run(ctx context.Context) error
	LoopInterval() time.Duration
	IsStartupRun() bool
}

// Scheduler drives the registered tasks on their intervals until the
// close signal fires.
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safeclose.SafeClose
}

func NewScheduler(logger *zap.Logger, sc *safeclose.SafeClose) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{logger: logger, sc: sc}
}

func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start launches every registered task loop.
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}
	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))
	for _, task := range s.tasks {
		s.startTask(task)
	}
}

func (s *Scheduler) startTask(task Task) {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		if task.IsStartupRun() {
			s.runOnce(task)
		}
		if task.LoopInterval() <= 0 {
			return
		}

		ticker := time.NewTicker(task.LoopInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runOnce(task)
			case <-closeSignal:
				s.logger.Info("task stopped", zap.String("name", task.Name()))
				return
			}
		}
	})
}

func (s *Scheduler) runOnce(task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String("name", task.Name()),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task run error",
			zap.String("name", task.Name()),
			zap.Error(err))
	}
}
