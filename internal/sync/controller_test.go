package sync

import (
	"context"
	"fmt"
	"io"
	gosync "sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cristianoliveira/contacts/internal/api"
	"github.com/cristianoliveira/contacts/internal/colors"
	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/cristianoliveira/contacts/internal/errors"
	"github.com/cristianoliveira/contacts/internal/form"
	"github.com/cristianoliveira/contacts/internal/i18n"
	"github.com/cristianoliveira/contacts/internal/listview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	colors.SetOutput(io.Discard, io.Discard)
	goleak.VerifyTestMain(m)
}

// fakeScheduler runs delayed calls when Advance moves its clock past them.
type fakeScheduler struct {
	mu     gosync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *fakeScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []func()
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t.f)
		}
	}
	s.mu.Unlock()
	for _, f := range due {
		f()
	}
}

func (s *fakeScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type fixture struct {
	svc   *api.MockContactService
	sched *fakeScheduler
	ctrl  *Controller
	tr    *i18n.Bundle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tr, err := i18n.New(i18n.DefaultLanguage)
	require.NoError(t, err)
	svc := &api.MockContactService{}
	sched := &fakeScheduler{}
	ctrl := New(Options{
		Service:    svc,
		List:       listview.NewEngine(5, domain.DefaultSortOptions()),
		Form:       form.New(tr),
		Translator: tr,
		Scheduler:  sched,
	})
	t.Cleanup(ctrl.Close)
	return &fixture{svc: svc, sched: sched, ctrl: ctrl, tr: tr}
}

func makeContacts(n int) []domain.Contact {
	out := make([]domain.Contact, n)
	for i := range out {
		out[i] = domain.Contact{ID: i + 1, Name: fmt.Sprintf("Contact %02d", i+1), Phone: fmt.Sprintf("+1415555%04d", i+1), IsActive: true}
	}
	return out
}

func TestFetchAllReplacesCollection(t *testing.T) {
	f := newFixture(t)
	var changes atomic.Int32
	f.ctrl.OnChange(func() { changes.Add(1) })

	f.svc.On("List", mock.Anything).Run(func(mock.Arguments) {
		assert.True(t, f.ctrl.Status().Loading, "loading while the request is in flight")
	}).Return(makeContacts(3), nil).Once()

	require.NoError(t, f.ctrl.FetchAll(context.Background()))
	assert.Equal(t, 3, f.ctrl.List().Len())
	assert.Equal(t, UIStatus{}, f.ctrl.Status())
	assert.GreaterOrEqual(t, changes.Load(), int32(2))
	f.svc.AssertExpectations(t)
}

func TestFetchAllFailureEmptiesCollectionAndClearsLoading(t *testing.T) {
	f := newFixture(t)
	f.ctrl.List().Replace(makeContacts(4))
	f.svc.On("List", mock.Anything).Return(nil, &errors.NetworkError{Op: "list contacts", StatusCode: 500}).Once()

	err := f.ctrl.FetchAll(context.Background())
	assert.True(t, errors.IsNetwork(err))
	assert.Zero(t, f.ctrl.List().Len())
	assert.Equal(t, UIStatus{Error: "Failed to load contacts. Please try again."}, f.ctrl.Status())
}

func TestFetchAllClearsPreviousError(t *testing.T) {
	f := newFixture(t)
	f.svc.On("List", mock.Anything).Return(nil, fmt.Errorf("down")).Once()
	f.svc.On("List", mock.Anything).Return(makeContacts(1), nil).Once()

	_ = f.ctrl.FetchAll(context.Background())
	require.NotEmpty(t, f.ctrl.Status().Error)
	require.NoError(t, f.ctrl.FetchAll(context.Background()))
	assert.Empty(t, f.ctrl.Status().Error)
}

func TestStaleFetchIsDiscarded(t *testing.T) {
	f := newFixture(t)
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	f.svc.On("List", mock.Anything).Run(func(mock.Arguments) {
		close(firstStarted)
		<-releaseFirst
	}).Return(makeContacts(7), nil).Once()
	f.svc.On("List", mock.Anything).Return(makeContacts(2), nil).Once()

	done := make(chan error)
	go func() { done <- f.ctrl.FetchAll(context.Background()) }()
	<-firstStarted

	require.NoError(t, f.ctrl.FetchAll(context.Background()))
	assert.Equal(t, 2, f.ctrl.List().Len())
	assert.True(t, f.ctrl.Status().Loading, "first fetch still in flight")

	close(releaseFirst)
	require.NoError(t, <-done)
	assert.Equal(t, 2, f.ctrl.List().Len(), "older response must not overwrite newer data")
	assert.False(t, f.ctrl.Status().Loading)
}

func TestCreateSuccess(t *testing.T) {
	f := newFixture(t)
	frm := f.ctrl.Form()
	frm.Set(form.FieldName, "Ana")
	frm.Set(form.FieldPhone, "+14155552671")
	f.ctrl.List().Replace(makeContacts(12))
	f.ctrl.List().GoToPage(3)

	payload := domain.ContactPayload{Name: "Ana", Phone: "+14155552671", IsActive: true}
	f.svc.On("Create", mock.Anything, payload).Return(domain.Contact{ID: 13, Name: "Ana"}, nil).Once()
	f.svc.On("List", mock.Anything).Return(makeContacts(13), nil).Once()

	created, err := f.ctrl.SubmitForm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 13, created.ID)

	assert.Equal(t, domain.DefaultDraft(), frm.Draft())
	assert.False(t, frm.Dirty(form.FieldName))
	assert.Equal(t, 1, f.ctrl.List().CurrentPage())
	assert.Equal(t, 13, f.ctrl.List().Len())
	assert.Equal(t, UIStatus{Success: "Contact added successfully!"}, f.ctrl.Status())
	f.svc.AssertNumberOfCalls(t, "List", 1)
	f.svc.AssertExpectations(t)

	f.sched.Advance(2999 * time.Millisecond)
	assert.Equal(t, "Contact added successfully!", f.ctrl.Status().Success)
	f.sched.Advance(time.Millisecond)
	assert.Empty(t, f.ctrl.Status().Success)
}

func TestCreateFailureKeepsCollection(t *testing.T) {
	f := newFixture(t)
	f.ctrl.List().Replace(makeContacts(3))
	f.svc.On("Create", mock.Anything, mock.Anything).Return(domain.Contact{}, &errors.NetworkError{Op: "create contact", StatusCode: 400}).Once()

	_, err := f.ctrl.Create(context.Background(), domain.ContactPayload{Name: "Ana", Phone: "+1415"})
	require.Error(t, err)
	assert.Equal(t, 3, f.ctrl.List().Len())
	assert.Equal(t, UIStatus{Error: "Failed to add contact. Please try again."}, f.ctrl.Status())
	f.svc.AssertNotCalled(t, "List", mock.Anything)
	assert.Zero(t, f.sched.pending())
}

func TestSubmitInvalidFormNeverCallsService(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Form().Set(form.FieldName, "A")
	f.ctrl.Form().Set(form.FieldPhone, "abc")

	_, err := f.ctrl.SubmitForm(context.Background())
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, "Please fill in all required fields correctly.", f.ctrl.Status().Error)
	assert.Equal(t, "Name must be at least 2 characters", f.ctrl.Form().FieldError(form.FieldName))
	f.svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteDeclinedChangesNothing(t *testing.T) {
	f := newFixture(t)
	f.ctrl.List().Replace(makeContacts(2))
	var changes atomic.Int32
	f.ctrl.OnChange(func() { changes.Add(1) })

	for name, confirm := range map[string]Confirmer{
		"nil":     nil,
		"decline": func(int) bool { return false },
	} {
		t.Run(name, func(t *testing.T) {
			err := f.ctrl.Delete(context.Background(), 1, confirm)
			assert.ErrorIs(t, err, errors.ErrConfirmationDeclined)
		})
	}
	assert.Equal(t, UIStatus{}, f.ctrl.Status())
	assert.Equal(t, 2, f.ctrl.List().Len())
	assert.Zero(t, changes.Load())
	f.svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteLastItemOfLastPageClampsPage(t *testing.T) {
	f := newFixture(t)
	f.ctrl.List().Replace(makeContacts(6))
	f.ctrl.List().GoToPage(2)
	require.Equal(t, 2, f.ctrl.List().TotalPages())

	var asked int
	f.svc.On("Delete", mock.Anything, 6).Return(nil).Once()
	f.svc.On("List", mock.Anything).Return(makeContacts(5), nil).Once()

	err := f.ctrl.Delete(context.Background(), 6, func(id int) bool { asked = id; return true })
	require.NoError(t, err)
	assert.Equal(t, 6, asked)
	assert.Equal(t, 1, f.ctrl.List().TotalPages())
	assert.Equal(t, 1, f.ctrl.List().CurrentPage())
	assert.Equal(t, "Contact deleted successfully!", f.ctrl.Status().Success)

	f.sched.Advance(DefaultClearDelay)
	assert.Empty(t, f.ctrl.Status().Success)
}

func TestDeleteKeepsPageWhenStillValid(t *testing.T) {
	f := newFixture(t)
	f.ctrl.List().Replace(makeContacts(12))
	f.ctrl.List().GoToPage(2)
	f.svc.On("Delete", mock.Anything, 1).Return(nil).Once()
	f.svc.On("List", mock.Anything).Return(makeContacts(12)[1:], nil).Once()

	require.NoError(t, f.ctrl.Delete(context.Background(), 1, AlwaysConfirm))
	assert.Equal(t, 2, f.ctrl.List().CurrentPage())
}

func TestDeleteFailureSetsErrorOnly(t *testing.T) {
	f := newFixture(t)
	f.ctrl.List().Replace(makeContacts(3))
	f.svc.On("Delete", mock.Anything, 2).Return(fmt.Errorf("timeout")).Once()

	err := f.ctrl.Delete(context.Background(), 2, AlwaysConfirm)
	require.Error(t, err)
	assert.Equal(t, 3, f.ctrl.List().Len())
	assert.Equal(t, UIStatus{Error: "Failed to delete contact. Please try again."}, f.ctrl.Status())
	f.svc.AssertNotCalled(t, "List", mock.Anything)
}

func TestWriteFailureReplacesSuccessMessage(t *testing.T) {
	tests := []struct {
		name    string
		fail    func(f *fixture) error
		wantErr string
	}{
		{
			name: "create",
			fail: func(f *fixture) error {
				f.svc.On("Create", mock.Anything, mock.Anything).Return(domain.Contact{}, fmt.Errorf("503")).Once()
				_, err := f.ctrl.Create(context.Background(), domain.ContactPayload{Name: "Bia", Phone: "+1416"})
				return err
			},
			wantErr: "Failed to add contact. Please try again.",
		},
		{
			name: "delete",
			fail: func(f *fixture) error {
				f.svc.On("Delete", mock.Anything, 1).Return(fmt.Errorf("503")).Once()
				return f.ctrl.Delete(context.Background(), 1, AlwaysConfirm)
			},
			wantErr: "Failed to delete contact. Please try again.",
		},
		{
			name: "invalid form",
			fail: func(f *fixture) error {
				f.ctrl.Form().Set(form.FieldName, "A")
				_, err := f.ctrl.SubmitForm(context.Background())
				return err
			},
			wantErr: "Please fill in all required fields correctly.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.svc.On("Create", mock.Anything, mock.Anything).Return(domain.Contact{ID: 1}, nil).Once()
			f.svc.On("List", mock.Anything).Return(makeContacts(1), nil).Once()
			_, err := f.ctrl.Create(context.Background(), domain.ContactPayload{Name: "Ana", Phone: "+1415"})
			require.NoError(t, err)
			require.Equal(t, "Contact added successfully!", f.ctrl.Status().Success)

			require.Error(t, tt.fail(f))
			assert.Equal(t, UIStatus{Error: tt.wantErr}, f.ctrl.Status())
			assert.Zero(t, f.sched.pending(), "the old clear is cancelled")

			f.sched.Advance(DefaultClearDelay)
			assert.Equal(t, tt.wantErr, f.ctrl.Status().Error)
		})
	}
}

func TestPendingClearNeverErasesNewerMessage(t *testing.T) {
	f := newFixture(t)
	f.svc.On("Create", mock.Anything, mock.Anything).Return(domain.Contact{ID: 1}, nil).Once()
	f.svc.On("Delete", mock.Anything, 1).Return(nil).Once()
	f.svc.On("List", mock.Anything).Return(makeContacts(1), nil)

	_, err := f.ctrl.Create(context.Background(), domain.ContactPayload{Name: "Ana", Phone: "+1415"})
	require.NoError(t, err)
	f.sched.Advance(2 * time.Second)

	require.NoError(t, f.ctrl.Delete(context.Background(), 1, AlwaysConfirm))
	f.sched.Advance(time.Second)
	assert.Equal(t, "Contact deleted successfully!", f.ctrl.Status().Success, "the create clear must not wipe the delete message")

	f.sched.Advance(2 * time.Second)
	assert.Empty(t, f.ctrl.Status().Success)
}

func TestClearWithOldGenerationIsNoop(t *testing.T) {
	f := newFixture(t)
	f.ctrl.mu.Lock()
	f.ctrl.setSuccessLocked("first")
	old := f.ctrl.msgGen
	f.ctrl.setSuccessLocked("second")
	f.ctrl.mu.Unlock()

	f.ctrl.clearSuccess(old)
	assert.Equal(t, "second", f.ctrl.Status().Success)
	assert.Equal(t, 1, f.sched.pending(), "replacing a message cancels the older clear")
}

func TestDismissMessages(t *testing.T) {
	f := newFixture(t)
	f.ctrl.mu.Lock()
	f.ctrl.setSuccessLocked("done")
	f.ctrl.errMsg = "oops"
	f.ctrl.mu.Unlock()

	f.ctrl.DismissMessages()
	assert.Equal(t, UIStatus{}, f.ctrl.Status())
	assert.Zero(t, f.sched.pending())
}

func TestMessagesAreTranslated(t *testing.T) {
	f := newFixture(t)
	f.tr.Use("es")
	f.svc.On("List", mock.Anything).Return(nil, fmt.Errorf("down")).Once()

	_ = f.ctrl.FetchAll(context.Background())
	assert.Equal(t, "No se pudieron cargar los contactos. Inténtalo de nuevo.", f.ctrl.Status().Error)
}

func TestRealSchedulerClearsAndDoesNotLeak(t *testing.T) {
	svc := &api.MockContactService{}
	svc.On("Create", mock.Anything, mock.Anything).Return(domain.Contact{ID: 1}, nil).Once()
	svc.On("List", mock.Anything).Return(makeContacts(1), nil).Once()

	var changes atomic.Int32
	ctrl := New(Options{Service: svc, ClearDelay: 100 * time.Millisecond})
	ctrl.OnChange(func() { changes.Add(1) })

	_, err := ctrl.Create(context.Background(), domain.ContactPayload{Name: "Ana", Phone: "+1415"})
	require.NoError(t, err)
	assert.Equal(t, "messages.added", ctrl.Status().Success)

	before := changes.Load()
	assert.Eventually(t, func() bool {
		return ctrl.Status().Success == ""
	}, time.Second, 5*time.Millisecond)
	assert.Greater(t, changes.Load(), before, "timed clear notifies listeners")
	ctrl.Close()
	goleak.VerifyNone(t)
}
