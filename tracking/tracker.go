package tracking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultInterval       = 2 * time.Second
	defaultCompletedDelay = 2 * time.Second
	defaultCeiling        = 5 * time.Minute

	// FallbackErrorMessage is surfaced for failed jobs that carry no
	// error message of their own.
	FallbackErrorMessage = "Unknown error"
)

// ErrPollTimeout is returned when the overall polling ceiling elapses
// before the job reaches a terminal status.
var ErrPollTimeout = errors.New("tracking: polling ceiling exceeded")

// Hooks receive tracking events. Nil hooks are skipped. No hook is
// invoked after Track returns.
type Hooks struct {
	// OnUpdate is called for every applied status observation, in order.
	OnUpdate func(Job)
	// OnPollError is called when a single poll fails. Polling continues;
	// only a successful terminal observation halts the loop.
	OnPollError func(error)
	// OnCompleted is called exactly once, CompletedDelay after a
	// completed status is observed.
	OnCompleted func(Job)
	// OnFailed is called immediately when a failed status is observed.
	// The message is the job's error message or FallbackErrorMessage.
	OnFailed func(Job, string)
}

// Config configures a Tracker.
type Config struct {
	// Interval is the delay between polls. Defaults to 2s.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	// CompletedDelay is the pause between observing a completed status
	// and invoking OnCompleted. Defaults to 2s.
	CompletedDelay time.Duration `yaml:"completed_delay" mapstructure:"completed_delay"`
	// Ceiling bounds the total polling duration. Defaults to 5m;
	// negative disables the ceiling entirely.
	Ceiling time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.CompletedDelay <= 0 {
		c.CompletedDelay = defaultCompletedDelay
	}
	if c.Ceiling == 0 {
		c.Ceiling = defaultCeiling
	}
}

// Tracker drives the polling loop for one job at a time. A Tracker is
// stateless between calls and may be reused for multiple jobs.
type Tracker struct {
	fetcher Fetcher
	config  Config
	log     zerolog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for poll-level logging.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Tracker) { t.log = log }
}

// NewTracker creates a tracker polling through the given fetcher.
func NewTracker(fetcher Fetcher, cfg Config, opts ...Option) *Tracker {
	cfg.ApplyDefaults()
	t := &Tracker{fetcher: fetcher, config: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// pollResult pairs a poll's outcome with its sequence number.
type pollResult struct {
	seq int
	job *Job
	err error
}

// Track polls the job until a terminal status is observed, the ceiling
// elapses, or ctx is cancelled. The first poll is issued immediately,
// then one per Interval. Polls run concurrently with the schedule: if
// the service is slower than the interval, several requests may be in
// flight at once, and only the response matching the most recently
// issued poll is applied.
//
// Track returns nil after a terminal hook has fired, ErrPollTimeout if
// the ceiling elapsed, or ctx's cancellation cause. No hook fires after
// Track returns; in-flight responses are discarded on teardown.
func (t *Tracker) Track(ctx context.Context, jobID string, hooks Hooks) error {
	// Cancelled on return so in-flight polls do not outlive tracking.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The ceiling bounds polling only. Once a terminal status has been
	// applied the job is no longer being polled, so the completed delay
	// waits on the caller's context alone.
	pollCtx := ctx
	if t.config.Ceiling > 0 {
		var cancelCeiling context.CancelFunc
		pollCtx, cancelCeiling = context.WithTimeoutCause(ctx, t.config.Ceiling, ErrPollTimeout)
		defer cancelCeiling()
	}

	results := make(chan pollResult, 4)
	latest := 0

	issue := func() {
		latest++
		seq := latest
		go func() {
			job, err := t.fetcher.JobStatus(pollCtx, jobID)
			select {
			case results <- pollResult{seq: seq, job: job, err: err}:
			case <-pollCtx.Done():
			}
		}()
	}

	issue()
	ticker := time.NewTicker(t.config.Interval)
	defer ticker.Stop()

	polling := true
	var completed Job
	var completedFire <-chan time.Time

	waitCtx := pollCtx
	for {
		select {
		case <-waitCtx.Done():
			err := context.Cause(waitCtx)
			if errors.Is(err, ErrPollTimeout) {
				t.log.Warn().Str("job_id", jobID).Msg("polling ceiling exceeded")
				if hooks.OnPollError != nil {
					hooks.OnPollError(ErrPollTimeout)
				}
			}
			return err

		case <-ticker.C:
			if polling {
				issue()
			}

		case r := <-results:
			if !polling || r.seq != latest {
				// Stale response from an earlier poll; a fresher
				// observation has already been applied.
				continue
			}
			if r.err != nil {
				t.log.Debug().Err(r.err).Str("job_id", jobID).Msg("poll failed")
				if hooks.OnPollError != nil {
					hooks.OnPollError(r.err)
				}
				continue
			}

			t.log.Debug().
				Str("job_id", jobID).
				Str("status", string(r.job.Status)).
				Int("progress", r.job.Progress).
				Msg("status observed")
			if hooks.OnUpdate != nil {
				hooks.OnUpdate(*r.job)
			}

			switch r.job.Status {
			case StatusCompleted:
				polling = false
				ticker.Stop()
				waitCtx = ctx
				completed = *r.job
				completedFire = time.After(t.config.CompletedDelay)
			case StatusFailed:
				polling = false
				ticker.Stop()
				msg := r.job.ErrorMessage
				if msg == "" {
					msg = FallbackErrorMessage
				}
				if hooks.OnFailed != nil {
					hooks.OnFailed(*r.job, msg)
				}
				return nil
			case StatusQueued, StatusPreprocessing, StatusDiarization, StatusClassification:
				// Non-terminal; keep polling.
			}

		case <-completedFire:
			if hooks.OnCompleted != nil {
				hooks.OnCompleted(completed)
			}
			return nil
		}
	}
}
