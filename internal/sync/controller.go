// Package sync runs every network-backed state change of the contact list:
// fetching, creating and deleting contacts, plus the loading flag and the
// status messages shown to the user.
package sync

import (
	"context"
	"strconv"
	gosync "sync"
	"time"

	"github.com/cristianoliveira/contacts/internal/api"
	"github.com/cristianoliveira/contacts/internal/colors"
	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/cristianoliveira/contacts/internal/errors"
	"github.com/cristianoliveira/contacts/internal/form"
	"github.com/cristianoliveira/contacts/internal/i18n"
	"github.com/cristianoliveira/contacts/internal/listview"
)

// DefaultClearDelay is how long a success message stays visible.
const DefaultClearDelay = 3 * time.Second

// UIStatus is a snapshot of the transient status flags.
type UIStatus struct {
	Loading bool
	Error   string
	Success string
}

// Confirmer asks the user to approve deleting the contact with id.
type Confirmer func(id int) bool

// AlwaysConfirm approves every deletion.
func AlwaysConfirm(int) bool { return true }

// Options configure a Controller. Service is required; the rest default.
type Options struct {
	Service    api.ContactService
	List       *listview.Engine
	Form       *form.Form
	Translator i18n.Translator
	Scheduler  Scheduler
	ClearDelay time.Duration
}

// Controller coordinates the contact service with the list and the form.
// Methods block until the remote call settles and are safe to call from
// multiple goroutines.
type Controller struct {
	svc        api.ContactService
	list       *listview.Engine
	form       *form.Form
	tr         i18n.Translator
	sched      Scheduler
	clearDelay time.Duration

	mu       gosync.Mutex
	inflight int
	errMsg   string
	success  string
	fetchSeq uint64
	msgGen   uint64
	timer    Timer
	onChange func()
}

// New returns a controller for opts.
func New(opts Options) *Controller {
	c := &Controller{
		svc:        opts.Service,
		list:       opts.List,
		form:       opts.Form,
		tr:         opts.Translator,
		sched:      opts.Scheduler,
		clearDelay: opts.ClearDelay,
	}
	if c.tr == nil {
		c.tr = i18n.Static{}
	}
	if c.list == nil {
		c.list = listview.NewEngine(listview.DefaultPageSize, domain.DefaultSortOptions())
	}
	if c.form == nil {
		c.form = form.New(c.tr)
	}
	if c.sched == nil {
		c.sched = RealScheduler{}
	}
	if c.clearDelay <= 0 {
		c.clearDelay = DefaultClearDelay
	}
	return c
}

// List returns the list engine the controller feeds.
func (c *Controller) List() *listview.Engine { return c.list }

// Form returns the form the controller submits and resets.
func (c *Controller) Form() *form.Form { return c.form }

// OnChange registers fn to be called after every status or data change,
// including timed message clears. fn runs outside the controller lock.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Status returns the current status flags.
func (c *Controller) Status() UIStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return UIStatus{Loading: c.inflight > 0, Error: c.errMsg, Success: c.success}
}

// Close cancels a pending message clear.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// begin enters the loading state and clears the error message.
func (c *Controller) begin() {
	c.mu.Lock()
	c.inflight++
	c.errMsg = ""
	c.mu.Unlock()
	c.notify()
}

// end leaves the loading state after applying update under the lock.
func (c *Controller) end(update func()) {
	c.mu.Lock()
	if c.inflight > 0 {
		c.inflight--
	}
	if update != nil {
		update()
	}
	c.mu.Unlock()
	c.notify()
}

// setSuccessLocked shows msg and schedules its removal. A later message
// bumps the generation so an older pending clear becomes a no-op.
func (c *Controller) setSuccessLocked(msg string) {
	c.success = msg
	c.msgGen++
	gen := c.msgGen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.sched.AfterFunc(c.clearDelay, func() { c.clearSuccess(gen) })
}

// setErrorLocked shows msg in place of any success message. The pending
// clear of that success message is cancelled.
func (c *Controller) setErrorLocked(msg string) {
	c.errMsg = msg
	c.dropSuccessLocked()
}

func (c *Controller) dropSuccessLocked() {
	c.success = ""
	c.msgGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) clearSuccess(gen uint64) {
	c.mu.Lock()
	if gen != c.msgGen {
		c.mu.Unlock()
		return
	}
	c.success = ""
	c.timer = nil
	c.mu.Unlock()
	c.notify()
}

// FetchAll replaces the collection with the service's contacts. On failure
// the collection becomes empty and a translated error is shown. Only the
// most recently started fetch may update state; older responses are dropped.
func (c *Controller) FetchAll(ctx context.Context) error {
	c.mu.Lock()
	c.fetchSeq++
	token := c.fetchSeq
	c.inflight++
	c.errMsg = ""
	c.mu.Unlock()
	c.notify()

	contacts, err := c.svc.List(ctx)

	stale := false
	c.end(func() {
		if token != c.fetchSeq {
			stale = true
			return
		}
		if err != nil {
			c.errMsg = c.tr.Instant("messages.loadFailed", nil)
			c.list.Replace(nil)
			return
		}
		c.list.Replace(contacts)
	})

	fields := map[string]interface{}{"token": token}
	switch {
	case stale:
		colors.StructuredDebug("sync", "fetch", "stale_discarded", err, "", fields)
		return nil
	case err != nil:
		colors.StructuredError("sync", "fetch", "failed", err, "", fields)
		return err
	default:
		fields["count"] = len(contacts)
		colors.StructuredInfo("sync", "fetch", "success", nil, "", fields)
		return nil
	}
}

// SubmitForm validates the form and creates the contact it describes.
// Validation failures show the summary message and never reach the service.
func (c *Controller) SubmitForm(ctx context.Context) (domain.Contact, error) {
	payload, err := c.form.Submit()
	if err != nil {
		var summary string
		if verr, ok := err.(*errors.ValidationError); ok {
			summary = verr.Summary
		} else {
			summary = c.tr.Instant("messages.invalidForm", nil)
		}
		c.mu.Lock()
		c.setErrorLocked(summary)
		c.mu.Unlock()
		c.notify()
		colors.StructuredDebug("sync", "submit", "invalid", err, "", nil)
		return domain.Contact{}, err
	}
	return c.Create(ctx, payload)
}

// Create stores payload remotely. On success the form is reset, the page
// goes back to 1, the list is re-fetched once and a success message is
// shown for the clear delay. On failure the collection is left untouched.
func (c *Controller) Create(ctx context.Context, payload domain.ContactPayload) (domain.Contact, error) {
	c.begin()
	created, err := c.svc.Create(ctx, payload)
	if err != nil {
		c.end(func() { c.setErrorLocked(c.tr.Instant("messages.addFailed", nil)) })
		colors.StructuredError("sync", "create", "failed", err, "", nil)
		return domain.Contact{}, err
	}

	c.form.Reset()
	c.list.ResetPage()
	c.end(func() { c.setSuccessLocked(c.tr.Instant("messages.added", nil)) })
	colors.StructuredInfo("sync", "create", "success", nil, created.IDString(), nil)

	_ = c.FetchAll(ctx)
	return created, nil
}

// Delete removes the contact with id after confirm approves it. A nil or
// declining confirm returns errors.ErrConfirmationDeclined before any state
// changes. On success the list is re-fetched and the page clamped into the
// new page count.
func (c *Controller) Delete(ctx context.Context, id int, confirm Confirmer) error {
	if confirm == nil || !confirm(id) {
		colors.StructuredDebug("sync", "delete", "declined", nil, strconv.Itoa(id), nil)
		return errors.ErrConfirmationDeclined
	}

	c.begin()
	if err := c.svc.Delete(ctx, id); err != nil {
		c.end(func() { c.setErrorLocked(c.tr.Instant("messages.deleteFailed", nil)) })
		colors.StructuredError("sync", "delete", "failed", err, strconv.Itoa(id), nil)
		return err
	}
	c.end(func() { c.setSuccessLocked(c.tr.Instant("messages.deleted", nil)) })
	colors.StructuredInfo("sync", "delete", "success", nil, strconv.Itoa(id), nil)

	_ = c.FetchAll(ctx)
	c.list.ClampPage()
	c.notify()
	return nil
}

// DismissMessages clears the error and success messages.
func (c *Controller) DismissMessages() {
	c.mu.Lock()
	c.errMsg = ""
	c.dropSuccessLocked()
	c.mu.Unlock()
	c.notify()
}
