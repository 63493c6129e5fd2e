package service

import (
	"time"

	"github.com/storekit/checkout/internal/core/domain"
)

type attemptState int

const (
	stateIdle attemptState = iota
	stateCreating
	stateAwaitingAuthorization
	stateLaunchingWeb
	stateCompleting
	stateTerminal
)

func (s attemptState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateCreating:
		return "creating"
	case stateAwaitingAuthorization:
		return "awaiting_authorization"
	case stateLaunchingWeb:
		return "launching_web"
	case stateCompleting:
		return "completing"
	case stateTerminal:
		return "terminal"
	}
	return "unknown"
}

// attempt is the state of one checkout attempt. One instance owns one
// checkout resource from start to terminal state and is then discarded;
// attempts are never reused or shared.
type attempt struct {
	id        string
	path      domain.CheckoutPath
	state     attemptState
	checkout  *domain.Checkout
	status    domain.CompletionStatus
	err       error
	dismissed bool
	startedAt time.Time
}

func newAttempt(id string, path domain.CheckoutPath, checkout *domain.Checkout) *attempt {
	return &attempt{
		id:        id,
		path:      path,
		state:     stateIdle,
		checkout:  checkout,
		status:    domain.CompletionPending,
		startedAt: time.Now().UTC(),
	}
}

// terminate moves the attempt to its terminal state. The completion
// status is set once; later calls are ignored.
func (a *attempt) terminate(status domain.CompletionStatus, err error) {
	if a.state == stateTerminal {
		return
	}
	a.state = stateTerminal
	a.status = status
	a.err = err
}

func (a *attempt) record() domain.Attempt {
	return domain.Attempt{
		ID:         a.id,
		CheckoutID: a.checkout.ID,
		Path:       a.path,
		Status:     a.status,
		CreatedAt:  a.startedAt,
		UpdatedAt:  a.startedAt,
	}
}
