package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/transcript-sheet/transcript"
	"github.com/mrsingh-rishi/transcript-sheet/types"
)

//go:generate mockgen -source=transcriberworker.go -destination=mocks_test.go -package=worker

type State string

const (
	StateInit          State = "INIT"
	StateAuthenticated State = "AUTHENTICATED"
	StateUploaded      State = "UPLOADED"
	StateSubmitted     State = "SUBMITTED"
	StatePolling       State = "POLLING"
	StateDone          State = "DONE"
	StateFailed        State = "FAILED"
	StateTimedOut      State = "TIMED_OUT"
)

type AudioFetcher interface {
	Fetch(ctx context.Context, link string) (*types.AudioDescriptor, error)
}

// SpeechClient is one provider session. Implementations keep the access
// token, so a new one is created for every run.
type SpeechClient interface {
	Authenticate(ctx context.Context, credential string) (string, error)
	Upload(ctx context.Context, audio *types.AudioDescriptor) (string, error)
	SubmitTask(ctx context.Context, fileID string, sampleRate, channels int) (*types.Task, error)
	PollStatus(ctx context.Context, taskID string) (*types.Task, error)
	DownloadResult(ctx context.Context, resultID string) ([]byte, error)
}

// PollPolicy waits Duration/Divisor before each of Attempts status checks.
type PollPolicy struct {
	Attempts int
	Divisor  float64
}

func DefaultPollPolicy() PollPolicy {
	return PollPolicy{Attempts: 3, Divisor: 10}
}

func (p PollPolicy) Wait(duration float64) time.Duration {
	if duration <= 0 || p.Divisor <= 0 {
		return 0
	}
	return time.Duration(duration / p.Divisor * float64(time.Second))
}

// RunError is returned by Run on FAILED and TIMED_OUT. State is the last state
// the run reached before Outcome.
type RunError struct {
	State   State
	Outcome State
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("transcription %s in state %s: %v", strings.ToLower(string(e.Outcome)), e.State, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

type Config struct {
	Credential string
	NewClient  func() SpeechClient
	Fetcher    AudioFetcher
	Policy     PollPolicy
	Logger     *logrus.Entry
}

// TranscriberWorker drives one link through the provider and returns the
// shaped table. Run is safe for concurrent use; runs share nothing mutable.
type TranscriberWorker struct {
	credential string
	newClient  func() SpeechClient
	fetcher    AudioFetcher
	policy     PollPolicy
	log        *logrus.Entry
}

func NewTranscriberWorker(cfg Config) (*TranscriberWorker, error) {
	if cfg.Credential == "" {
		return nil, fmt.Errorf("provider credential is required")
	}
	if cfg.NewClient == nil {
		return nil, fmt.Errorf("speech client factory is required")
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("audio fetcher is required")
	}
	if cfg.Policy.Attempts < 1 {
		return nil, fmt.Errorf("poll attempts must be >= 1, got %d", cfg.Policy.Attempts)
	}
	if cfg.Policy.Divisor <= 0 {
		return nil, fmt.Errorf("poll divisor must be > 0, got %v", cfg.Policy.Divisor)
	}
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = logrus.NewEntry(l)
	}
	return &TranscriberWorker{
		credential: cfg.Credential,
		newClient:  cfg.NewClient,
		fetcher:    cfg.Fetcher,
		policy:     cfg.Policy,
		log:        log.WithField("module", "worker"),
	}, nil
}

type run struct {
	state State
	log   *logrus.Entry
}

func (r *run) advance(to State) {
	r.log.WithFields(logrus.Fields{"from": r.state, "to": to}).Info("state changed")
	r.state = to
}

func (r *run) fail(err error) error {
	outcome := StateFailed
	if types.KindOf(err) == types.ErrTimeout {
		outcome = StateTimedOut
	}
	r.log.WithError(err).WithFields(logrus.Fields{
		"state":   r.state,
		"outcome": outcome,
		"kind":    types.KindOf(err),
		"network": types.IsNetwork(err),
	}).Error("transcription failed")
	return &RunError{State: r.state, Outcome: outcome, Err: err}
}

// Run executes INIT → AUTHENTICATED → UPLOADED → SUBMITTED → POLLING → DONE.
func (w *TranscriberWorker) Run(ctx context.Context, link string) (types.Table, error) {
	r := &run{
		state: StateInit,
		log:   w.log.WithField("run_id", uuid.NewString()),
	}
	client := w.newClient()

	if _, err := client.Authenticate(ctx, w.credential); err != nil {
		return nil, r.fail(err)
	}
	r.advance(StateAuthenticated)

	audio, err := w.fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, r.fail(err)
	}
	fileID, err := client.Upload(ctx, audio)
	if err != nil {
		return nil, r.fail(err)
	}
	sampleRate, channels, duration := audio.SampleRate, audio.Channels, audio.Duration
	audio = nil // release the encoded buffer before polling
	r.advance(StateUploaded)

	task, err := client.SubmitTask(ctx, fileID, sampleRate, channels)
	if err != nil {
		return nil, r.fail(err)
	}
	r.log.WithField("task_id", task.ID).Info("task submitted")
	r.advance(StateSubmitted)

	r.advance(StatePolling)
	task, err = w.poll(ctx, r, client, task.ID, duration)
	if err != nil {
		return nil, r.fail(err)
	}

	raw, err := client.DownloadResult(ctx, task.ResultFileID)
	if err != nil {
		return nil, r.fail(err)
	}
	table, err := transcript.Shape(raw)
	if err != nil {
		return nil, r.fail(err)
	}
	r.advance(StateDone)
	r.log.WithField("segments", len(table)).Info("transcription done")
	return table, nil
}

// poll checks the task at most policy.Attempts times with a constant wait
// before every check.
func (w *TranscriberWorker) poll(ctx context.Context, r *run, client SpeechClient, taskID string, duration float64) (*types.Task, error) {
	wait := w.policy.Wait(duration)
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(wait), uint64(w.policy.Attempts))

	last := types.StatusRunning
	for attempt := 1; ; attempt++ {
		d := b.NextBackOff()
		if d == backoff.Stop {
			return nil, types.Errorf(types.ErrTimeout, "poll", "task %s still %s after %d attempts", taskID, last, w.policy.Attempts)
		}
		if err := sleep(ctx, d); err != nil {
			return nil, err
		}

		task, err := client.PollStatus(ctx, taskID)
		if err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, types.NewError(types.ErrTimeout, "poll", err)
			}
			return nil, err
		}
		last = task.Status
		r.log.WithFields(logrus.Fields{
			"task_id": taskID,
			"attempt": attempt,
			"status":  task.Status,
			"wait":    d.String(),
		}).Info("task polled")

		switch task.Status {
		case types.StatusDone:
			return task, nil
		case types.StatusError:
			return nil, types.Errorf(types.ErrStatus, "task:get", "task %s finished with status %s", taskID, task.Status)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return types.NewError(types.ErrTimeout, "poll", ctx.Err())
		}
		return types.NewError(types.ErrStatus, "poll", ctx.Err())
	case <-t.C:
		return nil
	}
}
