package webpart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/ralim/listcreation/history"
	"github.com/ralim/listcreation/sphttp"
	"github.com/rs/zerolog/log"
)

var ErrBusy = errors.New("a list creation is already in progress")

const (
	MessageListExists  = "List already exists"
	MessageListCreated = "A new list has been created"
	MessageBusy        = "A list creation is already in progress"
)

// ListCreationRequest is read from the two form inputs at click time
type ListCreationRequest struct {
	Name        string
	Description string
}

// Recorder keeps a record of each finished pass
type Recorder interface {
	Record(ctx context.Context, attempt *history.Attempt) error
}

// Recorders hands each attempt to every non-nil recorder, returning the first failure
type Recorders []Recorder

func (r Recorders) Record(ctx context.Context, attempt *history.Attempt) error {
	var firstErr error
	for _, recorder := range r {
		if recorder == nil {
			continue
		}
		if err := recorder.Record(ctx, attempt); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type WorkflowOptions struct {
	Client          sphttp.Client
	WebAbsoluteURL  string
	EncodeListTitle bool     // Percent-encode the title in the existence check
	Recorder        Recorder // Optional
}

// Workflow checks whether a list exists and creates it if not.
// Only one pass runs at a time, clicks arriving while busy are ignored.
// There is no atomicity between the check and the create; a list created elsewhere
// in between surfaces as a server error from the create call.
type Workflow struct {
	client          sphttp.Client
	webAbsoluteURL  string
	encodeListTitle bool
	recorder        Recorder
	busy            atomic.Bool
}

func NewWorkflow(opts WorkflowOptions) *Workflow {
	return &Workflow{
		client:          opts.Client,
		webAbsoluteURL:  opts.WebAbsoluteURL,
		encodeListTitle: opts.EncodeListTitle,
		recorder:        opts.Recorder,
	}
}

func (w *Workflow) Busy() bool {
	return w.busy.Load()
}

// Run performs one check-then-create pass and notifies the outcome exactly once.
// ErrBusy is returned without notifying if another pass is still running.
func (w *Workflow) Run(ctx context.Context, req ListCreationRequest, notify Notifier) (*history.Attempt, error) {
	if !w.busy.CompareAndSwap(false, true) {
		log.Info().Str("list", req.Name).Msg("Ignoring list creation, previous one still running")
		return nil, ErrBusy
	}
	defer w.busy.Store(false)

	attempt := w.checkThenCreate(ctx, req)
	log.Info().
		Str("list", attempt.ListName).
		Str("outcome", string(attempt.Outcome)).
		Int("status", attempt.Status).
		Msg(attempt.Message)
	if notify != nil {
		notify.Notify(attempt.Message)
	}
	if w.recorder != nil {
		if err := w.recorder.Record(ctx, attempt); err != nil {
			log.Warn().Err(err).Str("list", attempt.ListName).Msg("Couldn't record list creation attempt")
		}
	}
	return attempt, nil
}

func (w *Workflow) checkThenCreate(ctx context.Context, req ListCreationRequest) *history.Attempt {
	attempt := &history.Attempt{ListName: req.Name, Description: req.Description}

	resp, err := w.client.Get(ctx, sphttp.ListByTitleURL(w.webAbsoluteURL, req.Name, w.encodeListTitle))
	if err != nil {
		return transportFailed(attempt, err)
	}
	attempt.Status = resp.Status
	switch resp.Status {
	case http.StatusOK:
		attempt.Outcome = history.OutcomeExists
		attempt.Message = MessageListExists
		return attempt
	case http.StatusNotFound:
		// Free to create
	default:
		return serverError(attempt, resp)
	}

	resp, err = w.client.Post(ctx, sphttp.ListsURL(w.webAbsoluteURL), sphttp.NewListDefinition(req.Name, req.Description))
	if err != nil {
		return transportFailed(attempt, err)
	}
	attempt.Status = resp.Status
	if resp.Status != http.StatusCreated {
		return serverError(attempt, resp)
	}
	attempt.Outcome = history.OutcomeCreated
	attempt.Message = MessageListCreated
	return attempt
}

func serverError(attempt *history.Attempt, resp *sphttp.Response) *history.Attempt {
	attempt.Outcome = history.OutcomeServerError
	attempt.Message = fmt.Sprintf("Error message: %d - %s", resp.Status, resp.StatusText)
	return attempt
}

func transportFailed(attempt *history.Attempt, err error) *history.Attempt {
	attempt.Outcome = history.OutcomeTransportFailed
	attempt.Status = 0
	attempt.Message = fmt.Sprintf("Request failed: %v", err)
	return attempt
}
