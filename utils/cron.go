package utils

import (
	"github.com/go-home-io/kiwi/providers"
	"gopkg.in/robfig/cron.v2"
)

// Scheduler backed by cron.v2.
type cronScheduler struct {
	engine *cron.Cron
}

// NewCron creates and starts a new scheduler.
func NewCron() providers.ICronProvider {
	s := &cronScheduler{
		engine: cron.New(),
	}

	s.engine.Start()
	return s
}

// AddFunc schedules a new job, spec is either a cron expression
// or a descriptor such as "@every 10m".
func (s *cronScheduler) AddFunc(spec string, cmd func()) (int, error) {
	id, err := s.engine.AddFunc(spec, cmd)
	if err != nil {
		return 0, err
	}

	return int(id), nil
}

// RemoveFunc removes scheduled job.
func (s *cronScheduler) RemoveFunc(id int) {
	s.engine.Remove(cron.EntryID(id))
}

// Stop stops scheduler, running jobs are not interrupted.
func (s *cronScheduler) Stop() {
	s.engine.Stop()
}
