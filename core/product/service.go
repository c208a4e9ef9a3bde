package product

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lotus/core"
)

type (
	// Client is the remote product service.
	// Each call is a single attempt: no retry, no backoff and no timeout of its own.
	Client interface {
		List(ctx context.Context, limit int) ([]Product, error)
		Create(ctx context.Context, c Candidate) (Product, error)
		Update(ctx context.Context, id int, c Candidate) (Product, error)
		Delete(ctx context.Context, id int) error
	}

	Intent string
	State  string

	// Transition is reported to the Observer every time an intent changes state.
	Transition struct {
		Intent    Intent
		Ticket    uint64
		ProductID int
		From      State
		To        State
		Err       error
	}

	Observer func(Transition)
)

// Intents
const (
	IntentLoad   Intent = "load"
	IntentCreate Intent = "create"
	IntentUpdate Intent = "update"
	IntentDelete Intent = "delete"
)

// States. Invalid, Succeeded, Failed and Discarded are terminal: the intent is idle again afterwards.
const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateInvalid    State = "invalid"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
	StateDiscarded  State = "discarded" // server succeeded but a newer intent already reconciled the record
)

// Service runs the create/update/delete intents: validate, call the remote service,
// then reconcile the List with the server's answer.
type Service struct {
	tickets uint64 // atomic
	pending int64  // atomic

	client     Client
	list       *List
	validate   *validator.Validate
	translator ut.Translator
	logger     core.Logger
	pageSize   int

	mu       sync.RWMutex
	observer Observer
	loaded   bool
	loadErr  error
}

func NewService(
	client Client,
	list *List,
	validate *validator.Validate,
	translator ut.Translator,
	logger core.Logger,
) *Service {
	return &Service{
		client:     client,
		list:       list,
		validate:   validate,
		translator: translator,
		logger:     logger,
		pageSize:   DefaultPageSize,
	}
}

// SetPageSize changes the number of products requested by Load. n <= 0 is ignored.
func (svc *Service) SetPageSize(n int) {
	if n > 0 {
		svc.pageSize = n
	}
}

// Observe registers fn to be called on every intent transition.
func (svc *Service) Observe(fn Observer) {
	svc.mu.Lock()
	svc.observer = fn
	svc.mu.Unlock()
}

func (svc *Service) Products() []Product { return svc.list.Items() }

func (svc *Service) Count() int { return svc.list.Len() }

func (svc *Service) Get(id int) (Product, error) {
	if p, ok := svc.list.Get(id); ok {
		return p, nil
	}
	return Product{}, ErrNotFound
}

// Pending is the number of intents currently waiting on the remote service.
func (svc *Service) Pending() int {
	return int(atomic.LoadInt64(&svc.pending))
}

// Loaded reports whether the catalog has been fetched successfully at least once.
func (svc *Service) Loaded() bool {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.loaded
}

// LoadErr is the error of the last Load, nil if it succeeded.
func (svc *Service) LoadErr() error {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.loadErr
}

// Validate runs the product rules on c; see the package level Validate.
func (svc *Service) Validate(c Candidate) map[string]string {
	return Validate(svc.validate, svc.translator, c)
}

// Load fetches the catalog and replaces the List with it.
// On failure the List keeps its last known good state.
func (svc *Service) Load(ctx context.Context) error {
	ticket := svc.nextTicket()
	svc.emit(IntentLoad, ticket, 0, StateIdle, StateSubmitting, nil)

	done := svc.track()
	products, err := svc.client.List(ctx, svc.pageSize)
	done()

	svc.mu.Lock()
	svc.loadErr = err
	if err == nil {
		svc.loaded = true
	}
	svc.mu.Unlock()

	if err != nil {
		svc.fail(IntentLoad, ticket, 0, err)
		return err
	}
	svc.list.ResetFenced(ticket, products)
	svc.emit(IntentLoad, ticket, 0, StateSubmitting, StateSucceeded, nil)
	return nil
}

// EnsureLoaded loads the catalog unless it was already loaded successfully.
func (svc *Service) EnsureLoaded(ctx context.Context) error {
	if svc.Loaded() {
		return nil
	}
	return svc.Load(ctx)
}

// Create validates c, sends it to the remote service and appends the server's record.
func (svc *Service) Create(ctx context.Context, c Candidate) (Product, error) {
	ticket := svc.nextTicket()
	c, err := svc.validated(IntentCreate, ticket, 0, c)
	if err != nil {
		return Product{}, err
	}

	done := svc.track()
	created, err := svc.client.Create(ctx, c)
	done()
	if err != nil {
		svc.fail(IntentCreate, ticket, 0, err)
		return Product{}, err
	}

	if created.ID == 0 {
		created.ID = svc.list.NextID()
		svc.logger.Warn(fmt.Sprintf("created product has no ID; using placeholder %d", created.ID))
	}
	if !svc.list.InsertFenced(ticket, created) {
		// the server handed out an ID we already hold: it is the same record
		svc.logger.Warn(fmt.Sprintf("created product reuses ID %d; replacing local entry", created.ID))
		svc.list.ReplaceFenced(ticket, created)
	}
	svc.emit(IntentCreate, ticket, created.ID, StateSubmitting, StateSucceeded, nil)
	return created, nil
}

// Update validates c, sends it as the full replacement of product id and swaps the
// List entry for the server's record.
func (svc *Service) Update(ctx context.Context, id int, c Candidate) (Product, error) {
	ticket := svc.nextTicket()
	c, err := svc.validated(IntentUpdate, ticket, id, c)
	if err != nil {
		return Product{}, err
	}

	done := svc.track()
	updated, err := svc.client.Update(ctx, id, c)
	done()
	if err != nil {
		svc.fail(IntentUpdate, ticket, id, err)
		return Product{}, err
	}

	if updated.ID == 0 {
		updated.ID = id
	}
	to := StateSucceeded
	if svc.list.ReplaceFenced(ticket, updated) == Stale {
		to = StateDiscarded
	}
	svc.emit(IntentUpdate, ticket, id, StateSubmitting, to, nil)
	return updated, nil
}

// Delete asks the remote service to remove product id, then drops it from the List.
func (svc *Service) Delete(ctx context.Context, id int) error {
	ticket := svc.nextTicket()
	svc.emit(IntentDelete, ticket, id, StateIdle, StateSubmitting, nil)

	done := svc.track()
	err := svc.client.Delete(ctx, id)
	done()
	if err != nil {
		svc.fail(IntentDelete, ticket, id, err)
		return err
	}
	svc.list.Remove(id)
	svc.emit(IntentDelete, ticket, id, StateSubmitting, StateSucceeded, nil)
	return nil
}

// validated runs the idle -> validating -> (invalid | submitting) part of an intent.
func (svc *Service) validated(intent Intent, ticket uint64, id int, c Candidate) (Candidate, error) {
	svc.emit(intent, ticket, id, StateIdle, StateValidating, nil)

	c = c.Clean()
	if fldErrs := svc.Validate(c); len(fldErrs) > 0 {
		err := newValidationError(fldErrs)
		svc.emit(intent, ticket, id, StateValidating, StateInvalid, err)
		return c, err
	}
	svc.emit(intent, ticket, id, StateValidating, StateSubmitting, nil)
	return c, nil
}

// track counts a remote call as pending until the returned func is called.
func (svc *Service) track() func() {
	atomic.AddInt64(&svc.pending, 1)
	return func() { atomic.AddInt64(&svc.pending, -1) }
}

func (svc *Service) fail(intent Intent, ticket uint64, id int, err error) {
	msg := fmt.Sprintf("product %s failed", intent)
	svc.logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{"product_id": id, "ticket": ticket})
	svc.emit(intent, ticket, id, StateSubmitting, StateFailed, err)
}

func (svc *Service) nextTicket() uint64 {
	return atomic.AddUint64(&svc.tickets, 1)
}

func (svc *Service) emit(intent Intent, ticket uint64, id int, from, to State, err error) {
	svc.mu.RLock()
	obs := svc.observer
	svc.mu.RUnlock()
	if obs != nil {
		obs(Transition{Intent: intent, Ticket: ticket, ProductID: id, From: from, To: to, Err: err})
	}
}
