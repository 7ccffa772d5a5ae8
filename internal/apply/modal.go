package apply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"jobmate/careers-service/internal/config"
	"jobmate/careers-service/internal/i18n"
	"jobmate/careers-service/internal/metrics"
	"jobmate/careers-service/internal/notify"
)

// ErrSubmissionFailed wraps any failure reported by the apply collaborator.
var ErrSubmissionFailed = errors.New("application could not be submitted")

// ErrClosed is returned by Save once the modal has been closed.
var ErrClosed = errors.New("apply modal is closed")

// Client sends a submission to the ATS.
type Client interface {
	Apply(ctx context.Context, jobID int64, params map[string]string, resume File) error
}

// Tracker records analytics events. Implementations must not block.
type Tracker interface {
	TrackEvent(ctx context.Context, label string)
}

// AppliedStore remembers which jobs a session has applied to.
type AppliedStore interface {
	Add(ctx context.Context, sessionID string, jobID int64) error
}

// Outcome of one submission attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailed  Outcome = "FAILED"
)

// Attempt describes one dispatched submission. It carries no applicant data.
type Attempt struct {
	JobID     int64
	SessionID string
	Source    string
	Format    string
	Outcome   Outcome
	Error     string
	At        time.Time
}

// Journal keeps an audit trail of submission attempts.
type Journal interface {
	Record(ctx context.Context, a Attempt) error
}

// Deps are the collaborators of a Modal. Journal and Metrics may be nil.
type Deps struct {
	Settings   *config.Settings
	Client     Client
	Tracker    Tracker
	Notifier   notify.Notifier
	Applied    AppliedStore
	Journal    Journal
	Translator Translator
	Metrics    *metrics.Metrics
}

// Params identify what the modal was opened for.
type Params struct {
	JobID     int64
	Source    string
	SessionID string
	Locale    string
}

// Modal is one open application dialog.
type Modal struct {
	deps   Deps
	params Params

	mu       sync.Mutex
	state    State
	form     *Form
	hasError bool
	applying bool
	closed   bool

	done      chan struct{}
	closeOnce sync.Once
}

// Open builds the form and returns a modal in the READY state.
func Open(deps Deps, params Params) *Modal {
	m := &Modal{
		deps:   deps,
		params: params,
		state:  StateLoading,
		done:   make(chan struct{}),
	}
	m.form = BuildForm(deps.Settings, deps.Translator, params.Locale)
	_ = m.transition(StateReady)
	return m
}

// View is a snapshot of a modal for rendering.
type View struct {
	JobID            int64    `json:"jobId"`
	State            State    `json:"state"`
	HasError         bool     `json:"hasError"`
	Applying         bool     `json:"applying"`
	Fields           []*Field `json:"fields"`
	PrivacyStatement string   `json:"privacyStatement,omitempty"`
	PrivacyPolicyURL string   `json:"privacyPolicyUrl,omitempty"`
}

// Snapshot returns the current view.
func (m *Modal) Snapshot() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := View{
		JobID:    m.params.JobID,
		State:    m.state,
		HasError: m.hasError,
		Applying: m.applying,
		Fields:   m.form.Fields(),
	}
	pc := m.deps.Settings.PrivacyConsent
	if pc.UsePrivacyPolicyURL {
		v.PrivacyPolicyURL = pc.PrivacyPolicyURL
	} else {
		v.PrivacyStatement = m.deps.Settings.PrivacyStatement()
	}
	return v
}

// State returns the lifecycle state.
func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// HasError reports whether the last submission failed.
func (m *Modal) HasError() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasError
}

// Applying reports whether a submission is in flight.
func (m *Modal) Applying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applying
}

// Values returns the values entered so far.
func (m *Modal) Values() Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form.Values()
}

// Save merges vals into the form and, if the form is valid, submits it.
//
// A validation failure returns *ValidationError without contacting the ATS.
// A collaborator failure leaves the modal open with HasError set and the
// values intact, and returns an error wrapping ErrSubmissionFailed. On
// success the job is remembered for the session and the modal closes.
func (m *Modal) Save(ctx context.Context, vals Values) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state == StateFailed {
		_ = m.transition(StateReady)
	}
	if !IsTransitionAllowed(m.state, StateSubmitting) {
		err := &TransitionError{From: m.state, To: StateSubmitting}
		m.mu.Unlock()
		return err
	}
	m.form.Set(vals)
	if err := m.form.Validate(); err != nil {
		m.mu.Unlock()
		m.count("invalid")
		return err
	}
	source := m.params.Source
	sub := NewSubmission(m.params.JobID, m.form, source)
	_ = m.transition(StateSubmitting)
	m.applying = true
	m.hasError = false
	m.mu.Unlock()

	m.deps.Tracker.TrackEvent(ctx, fmt.Sprintf("Apply to Job: %d", sub.JobID))
	err := m.deps.Client.Apply(ctx, sub.JobID, sub.Params, sub.Resume)

	attempt := Attempt{
		JobID:     sub.JobID,
		SessionID: m.params.SessionID,
		Source:    source,
		Format:    sub.Params["format"],
		At:        time.Now().UTC(),
	}

	m.mu.Lock()
	m.applying = false
	if err != nil {
		_ = m.transition(StateFailed)
		m.hasError = true
		m.mu.Unlock()

		attempt.Outcome, attempt.Error = OutcomeFailed, err.Error()
		m.record(ctx, attempt)
		m.count("failed")
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	_ = m.transition(StateSuccess)
	m.mu.Unlock()

	m.deps.Notifier.Alert(ctx, m.successToast())
	if err := m.deps.Applied.Add(ctx, m.params.SessionID, sub.JobID); err != nil {
		slog.Warn("remember applied job failed", "jobId", sub.JobID, "err", err)
	}
	attempt.Outcome = OutcomeSuccess
	m.record(ctx, attempt)
	m.count("success")
	m.Close()
	return nil
}

// Close dismisses the modal. It is safe to call more than once; Done is
// closed on the first call.
func (m *Modal) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		close(m.done)
	})
}

// Done is closed when the modal closes, whether by success or dismissal.
// Nothing is ever sent on it.
func (m *Modal) Done() <-chan struct{} { return m.done }

// SetSource replaces the referral source sent with the next submission.
func (m *Modal) SetSource(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.Source = source
}

// ViewPrivacyPolicy returns the configured privacy policy URL.
func (m *Modal) ViewPrivacyPolicy() string {
	return m.deps.Settings.PrivacyConsent.PrivacyPolicyURL
}

// transition must be called with mu held.
func (m *Modal) transition(to State) error {
	if !IsTransitionAllowed(m.state, to) {
		return &TransitionError{From: m.state, To: to}
	}
	m.state = to
	return nil
}

func (m *Modal) successToast() notify.Toast {
	t := func(key string) string { return m.deps.Translator.Translate(m.params.Locale, key) }
	return notify.Toast{
		Theme:     "success",
		Icon:      "check",
		Title:     t(i18n.ThankYou),
		Message:   t(i18n.YouWillBeContacted),
		Position:  "growlTopRight",
		HideDelay: 3000,
	}
}

func (m *Modal) record(ctx context.Context, a Attempt) {
	if m.deps.Journal == nil {
		return
	}
	if err := m.deps.Journal.Record(ctx, a); err != nil {
		slog.Warn("journal application attempt failed", "jobId", a.JobID, "err", err)
	}
}

func (m *Modal) count(outcome string) {
	if m.deps.Metrics != nil {
		m.deps.Metrics.Applications.WithLabelValues(outcome).Inc()
	}
}
