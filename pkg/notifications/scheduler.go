package notifications

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/financial-times/myft.go/pkg/logger"
)

// Scheduler runs a job repeatedly until the returned cancel func is called.
type Scheduler interface {
	Schedule(interval time.Duration, job func()) (cancel func())
}

// CronScheduler runs jobs on a robfig/cron runner. A tick that fires while the
// previous run of the same job is still going is skipped.
type CronScheduler struct {
	logger logger.Logger
}

func NewCronScheduler(log logger.Logger) *CronScheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &CronScheduler{logger: log}
}

func (s *CronScheduler) Schedule(interval time.Duration, job func()) func() {
	cl := cronLogger{l: s.logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if effective := CronInterval(interval); effective != interval {
		s.logger.Warn("poll interval rounded to whole seconds", "interval", interval.String(), "effective", effective.String())
	}
	c.Schedule(cron.Every(interval), cron.FuncJob(job))
	c.Start()

	var once sync.Once
	return func() {
		once.Do(func() {
			// not waiting on the returned context: a running job finishes on its own
			c.Stop()
		})
	}
}

// CronInterval is the period CronScheduler actually runs at for interval: cron
// truncates to whole seconds, with a minimum of one second.
func CronInterval(interval time.Duration) time.Duration {
	if interval < time.Second {
		return time.Second
	}
	return interval.Truncate(time.Second)
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	l logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
