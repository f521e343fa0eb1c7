// Package payment implements the simulated mobile-money payment flow.
//
// An attempt moves through a linear state machine: input -> processing ->
// success. There are no backward transitions and no failure state; the
// processing delay stands in for the gateway round trip.
package payment

import (
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Status is the current phase of a payment attempt.
type Status string

const (
	// StatusInput means the attempt is awaiting a phone number.
	StatusInput Status = "input"
	// StatusProcessing means the simulated gateway round trip is underway.
	StatusProcessing Status = "processing"
	// StatusSuccess means the attempt completed and holds a transaction ID.
	StatusSuccess Status = "success"
)

var (
	// ErrPhoneRequired is returned when Begin is called with an empty phone
	// number. The attempt stays in the input state.
	ErrPhoneRequired = errors.New("phone number required")
	// ErrAttemptInFlight is returned when Begin is called while a previous
	// attempt has not finished.
	ErrAttemptInFlight = errors.New("payment attempt already in flight")
	// ErrCannotCancel is returned when Close is called after the attempt has
	// left the input state. A payment cannot be abandoned mid-flight.
	ErrCannotCancel = errors.New("cannot cancel payment in progress")
)

// Attempt is a snapshot of the simulator state. TransactionID is set only
// once the attempt reaches StatusSuccess.
type Attempt struct {
	Phone         string
	Status        Status
	TransactionID string
}

// Config controls the simulated timing. Zero durations complete transitions
// on the next timer tick, which tests rely on.
type Config struct {
	// ProcessingDelay is the simulated gateway round trip.
	ProcessingDelay time.Duration
	// SuccessDisplay is how long the success state is held before the
	// completion callback fires and the simulator resets.
	SuccessDisplay time.Duration
}

// DefaultConfig matches the storefront's original timing.
func DefaultConfig() Config {
	return Config{
		ProcessingDelay: 3 * time.Second,
		SuccessDisplay:  2 * time.Second,
	}
}

// Simulator drives a single payment attempt at a time. All transitions are
// serialized by an internal mutex; the delay timers never block the caller.
type Simulator struct {
	cfg       Config
	onSuccess func(Attempt)
	newID     func() string

	mu      sync.Mutex
	attempt Attempt
}

// NewSimulator creates a simulator that invokes onSuccess with the completed
// attempt after the success display interval, then resets itself to input.
// The callback runs on a timer goroutine and must not call back into the
// simulator synchronously expecting pre-reset state.
func NewSimulator(cfg Config, onSuccess func(Attempt)) *Simulator {
	if onSuccess == nil {
		onSuccess = func(Attempt) {}
	}
	return &Simulator{
		cfg:       cfg,
		onSuccess: onSuccess,
		newID:     func() string { return "TXN-" + uuid.New().String() },
		attempt:   Attempt{Status: StatusInput},
	}
}

// Begin starts the simulated payment. An empty phone number is rejected and
// the attempt stays in input; a second Begin while an attempt is in flight is
// rejected to keep exactly one active checkout.
func (s *Simulator) Begin(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attempt.Status != StatusInput {
		return ErrAttemptInFlight
	}
	if phone == "" {
		return ErrPhoneRequired
	}

	s.attempt.Phone = phone
	s.attempt.Status = StatusProcessing
	time.AfterFunc(s.cfg.ProcessingDelay, s.complete)
	return nil
}

// complete moves processing -> success and schedules the completion callback.
func (s *Simulator) complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attempt.Status != StatusProcessing {
		return
	}
	s.attempt.TransactionID = s.newID()
	s.attempt.Status = StatusSuccess
	time.AfterFunc(s.cfg.SuccessDisplay, s.finish)
}

// finish delivers the completed attempt and resets the simulator to input.
func (s *Simulator) finish() {
	s.mu.Lock()
	if s.attempt.Status != StatusSuccess {
		s.mu.Unlock()
		return
	}
	done := s.attempt
	s.attempt = Attempt{Status: StatusInput}
	s.mu.Unlock()

	s.onSuccess(done)
}

// Close abandons the attempt. Only permitted in the input state: once
// processing has started the flow must run to completion. Closing clears the
// entered phone number.
func (s *Simulator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attempt.Status != StatusInput {
		return ErrCannotCancel
	}
	s.attempt = Attempt{Status: StatusInput}
	return nil
}

// State returns a snapshot of the current attempt.
func (s *Simulator) State() Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}
