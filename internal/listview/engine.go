// Package listview holds the authoritative in-memory contact collection and
// derives the filtered, sorted and paginated view from it.
package listview

import (
	"sync"

	"github.com/cristianoliveira/contacts/internal/domain"
)

// DefaultPageSize is used when no positive page size is configured.
const DefaultPageSize = 5

// State is a snapshot of the list view parameters.
type State struct {
	SearchTerm string
	Sort       domain.SortOptions
	Page       int
	PageSize   int
}

// Engine owns the contact collection and the list view state.
// Every derived value is recomputed on read; nothing derived is stored.
type Engine struct {
	mu       sync.RWMutex
	contacts []domain.Contact
	term     string
	sort     domain.SortOptions
	page     int
	pageSize int
}

// NewEngine creates an engine with the given page size and sort options.
func NewEngine(pageSize int, sort domain.SortOptions) *Engine {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if !sort.Field.IsValid() || !sort.Direction.IsValid() {
		sort = domain.DefaultSortOptions()
	}
	return &Engine{
		contacts: []domain.Contact{},
		sort:     sort,
		page:     1,
		pageSize: pageSize,
	}
}

// Replace swaps the whole collection. There is no incremental merge.
func (e *Engine) Replace(contacts []domain.Contact) {
	copied := make([]domain.Contact, len(contacts))
	copy(copied, contacts)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.contacts = copied
}

// Contacts returns a copy of the full collection.
func (e *Engine) Contacts() []domain.Contact {
	e.mu.RLock()
	defer e.mu.RUnlock()
	copied := make([]domain.Contact, len(e.contacts))
	copy(copied, e.contacts)
	return copied
}

// Len returns the size of the full collection.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.contacts)
}

// State returns the current view parameters.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return State{SearchTerm: e.term, Sort: e.sort, Page: e.page, PageSize: e.pageSize}
}

// Filtered returns the contacts matching the search term, in collection order.
func (e *Engine) Filtered() []domain.Contact {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.FilterContacts(e.contacts, e.term)
}

// Sorted returns the filtered contacts ordered by the current sort options.
func (e *Engine) Sorted() []domain.Contact {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sortedLocked()
}

func (e *Engine) sortedLocked() []domain.Contact {
	return domain.SortContacts(domain.FilterContacts(e.contacts, e.term), e.sort)
}

// Page returns the contacts visible on the current page.
func (e *Engine) Page() []domain.Contact {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.Paginate(e.sortedLocked(), e.page, e.pageSize)
}

// FilteredCount returns the number of contacts matching the search term.
func (e *Engine) FilteredCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filteredCountLocked()
}

func (e *Engine) filteredCountLocked() int {
	return len(domain.FilterContacts(e.contacts, e.term))
}

// TotalPages returns max(1, ceil(filtered/pageSize)).
func (e *Engine) TotalPages() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.TotalPages(e.filteredCountLocked(), e.pageSize)
}

// FirstVisible returns the 1-based index of the first item Page returns.
func (e *Engine) FirstVisible() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.FirstVisible(e.displayPageLocked(), e.pageSize, e.filteredCountLocked())
}

// LastVisible returns min(page*pageSize, filtered count) for the page Page returns.
func (e *Engine) LastVisible() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.LastVisible(e.displayPageLocked(), e.pageSize, e.filteredCountLocked())
}

// DisplayPage returns the page Page slices: the stored page clamped into
// [1, TotalPages]. The stored page itself is left alone.
func (e *Engine) DisplayPage() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.displayPageLocked()
}

func (e *Engine) displayPageLocked() int {
	return domain.ClampPage(e.page, e.filteredCountLocked(), e.pageSize)
}

// CurrentPage returns the stored page number. Reads never clamp it.
func (e *Engine) CurrentPage() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.page
}

// PageSize returns the configured page size.
func (e *Engine) PageSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pageSize
}

// GoToPage moves to page n, clamped into [1, TotalPages].
func (e *Engine) GoToPage(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = domain.ClampPage(n, e.filteredCountLocked(), e.pageSize)
	return e.page
}

// NextPage advances one page, stopping at the last page.
func (e *Engine) NextPage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = domain.ClampPage(e.page+1, e.filteredCountLocked(), e.pageSize)
	return e.page
}

// PrevPage goes back one page, stopping at the first page.
func (e *Engine) PrevPage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = domain.ClampPage(e.page-1, e.filteredCountLocked(), e.pageSize)
	return e.page
}

// ClampPage pulls the current page back into range, e.g. after a delete
// shrank the list. Returns the resulting page.
func (e *Engine) ClampPage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = domain.ClampPage(e.page, e.filteredCountLocked(), e.pageSize)
	return e.page
}

// ResetPage moves back to the first page.
func (e *Engine) ResetPage() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = 1
}

// SetSearchTerm updates the search term and resets the page to 1.
func (e *Engine) SetSearchTerm(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.term = term
	e.page = 1
}

// SearchTerm returns the current search term.
func (e *Engine) SearchTerm() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.term
}

// SetPageSize updates the page size and resets the page to 1.
// Sizes below one are ignored.
func (e *Engine) SetPageSize(size int) {
	if size < 1 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pageSize = size
	e.page = 1
}

// SetSort replaces the sort options. Invalid values are ignored.
func (e *Engine) SetSort(field domain.SortField, direction domain.SortDirection) {
	if !field.IsValid() || !direction.IsValid() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sort = domain.SortOptions{Field: field, Direction: direction}
}

// Sort returns the current sort options.
func (e *Engine) Sort() domain.SortOptions {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sort
}

// ToggleSort sorts by field. Selecting the current field flips the direction;
// a new field starts ascending.
func (e *Engine) ToggleSort(field domain.SortField) {
	if !field.IsValid() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sort.Field == field {
		e.sort.Direction = e.sort.Direction.Toggle()
		return
	}
	e.sort = domain.SortOptions{Field: field, Direction: domain.SortAsc}
}

// CycleSortField moves to the next sortable field, ascending.
func (e *Engine) CycleSortField() domain.SortField {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sort = domain.SortOptions{Field: e.sort.Field.Next(), Direction: domain.SortAsc}
	return e.sort.Field
}

// ToggleDirection flips the sort direction of the current field.
func (e *Engine) ToggleDirection() domain.SortDirection {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sort.Direction = e.sort.Direction.Toggle()
	return e.sort.Direction
}
