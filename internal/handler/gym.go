package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/retshidi-radebe/bzfitness/internal/notify"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

// notifyTimeout bounds one notification email send.
const notifyTimeout = 15 * time.Second

// GymOptions configures a GymHandler. Zero values select UTC, the default
// logger and no notifications.
type GymOptions struct {
	Location  *time.Location
	Logger    *slog.Logger
	Validator *openapi.Validator
	Notifier  notify.Sender
	NotifyTo  []string
}

// GymHandler serves the gym records: members, attendance, payments, the
// timetable, enquiries, progress and stats.
type GymHandler struct {
	store     *store.Store
	loc       *time.Location
	logger    *slog.Logger
	validator *openapi.Validator
	notifier  notify.Sender
	notifyTo  []string
	now       func() time.Time

	pending sync.WaitGroup // in-flight notification sends
}

// NewGymHandler creates a new GymHandler.
func NewGymHandler(st *store.Store, opts GymOptions) *GymHandler {
	h := &GymHandler{
		store:     st,
		loc:       opts.Location,
		logger:    opts.Logger,
		validator: opts.Validator,
		notifier:  opts.Notifier,
		notifyTo:  opts.NotifyTo,
		now:       time.Now,
	}
	if h.loc == nil {
		h.loc = time.UTC
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.validator == nil {
		h.validator = openapi.NewValidator()
	}
	if h.notifier == nil {
		h.notifier = &notify.NoopSender{}
	}
	return h
}

// Wait blocks until queued notification emails have been sent or have
// failed, or ctx is done.
func (h *GymHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// today returns the current time in the gym's time zone.
func (h *GymHandler) today() time.Time {
	return h.now().In(h.loc)
}

// storeError answers a failed store call with 404 and notFound for
// store.ErrNotFound, and with the generic 500 otherwise.
func (h *GymHandler) storeError(w http.ResponseWriter, r *http.Request, op string, err error, notFound string) {
	if classifyStoreError(err) == http.StatusNotFound {
		writeError(w, http.StatusNotFound, notFound)
		return
	}
	serverError(w, r, h.logger, op, err)
}
