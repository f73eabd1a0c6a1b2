package main

import (
	gosync "sync"

	"github.com/cristianoliveira/contacts/cmd"
	"github.com/cristianoliveira/contacts/internal/api"
	"github.com/cristianoliveira/contacts/internal/config"
	"github.com/cristianoliveira/contacts/internal/domain"
	apperrors "github.com/cristianoliveira/contacts/internal/errors"
	"github.com/cristianoliveira/contacts/internal/form"
	"github.com/cristianoliveira/contacts/internal/i18n"
	"github.com/cristianoliveira/contacts/internal/listview"
	"github.com/cristianoliveira/contacts/internal/prefs"
	"github.com/cristianoliveira/contacts/internal/sync"
)

// deps provides the collaborators shared by the subcommands.
type deps interface {
	Service() api.ContactService
	Bundle() (*i18n.Bundle, error)
	Prefs() (prefs.Store, error)
}

// runtimeDeps builds collaborators from the loaded configuration on first use,
// after the root command has run setup.
type runtimeDeps struct {
	mu    gosync.Mutex
	svc   api.ContactService
	store prefs.Store
}

var defaultDeps = &runtimeDeps{}

var cliHandler apperrors.ErrorHandler = apperrors.NewDefaultCLIHandler()

func (d *runtimeDeps) Service() api.ContactService {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.svc == nil {
		d.svc = api.NewClientFromConfig()
	}
	return d.svc
}

func (d *runtimeDeps) Prefs() (prefs.Store, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.store == nil {
		store, err := prefs.Open("")
		if err != nil {
			return nil, err
		}
		d.store = store
	}
	return d.store, nil
}

// Bundle returns translations in the --lang language, else the saved
// language preference, else default_language.
func (d *runtimeDeps) Bundle() (*i18n.Bundle, error) {
	bundle, err := i18n.New(config.Get("default_language", i18n.DefaultLanguage))
	if err != nil {
		return nil, err
	}
	lang := cmd.LanguageOverride()
	if lang == "" {
		if store, err := d.Prefs(); err == nil {
			lang = prefs.Language(store, bundle.Default())
		}
	}
	if lang != "" {
		bundle.Use(lang)
	}
	return bundle, nil
}

// Close releases the preference store if it was opened.
func (d *runtimeDeps) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.store == nil {
		return nil
	}
	err := d.store.Close()
	d.store = nil
	return err
}

// newController wires a sync controller with the configured list defaults.
func newController(d deps) (*sync.Controller, *i18n.Bundle, error) {
	bundle, err := d.Bundle()
	if err != nil {
		return nil, nil, err
	}
	sortOpts := domain.SortOptions{
		Field:     domain.SortField(config.Get("sort_by", string(domain.SortByNameField))),
		Direction: domain.SortDirection(config.Get("sort_order", string(domain.SortAsc))),
	}
	engine := listview.NewEngine(config.GetInt("page_size", listview.DefaultPageSize), sortOpts)
	ctrl := sync.New(sync.Options{
		Service:    d.Service(),
		List:       engine,
		Form:       form.New(bundle),
		Translator: bundle,
		ClearDelay: config.GetDuration("message_clear_delay", sync.DefaultClearDelay),
	})
	return ctrl, bundle, nil
}
