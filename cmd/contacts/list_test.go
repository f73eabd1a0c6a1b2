package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func executeList(t *testing.T, d *fakeDeps, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := NewListCmd(d)
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestNewListCmdPanicsWithoutDeps(t *testing.T) {
	assert.Panics(t, func() { NewListCmd(nil) })
}

func TestListTable(t *testing.T) {
	d := newFakeDeps(t)
	d.svc.On("List", mock.Anything).Return(sampleContacts(), nil).Once()

	out, err := executeList(t, d)
	require.NoError(t, err)

	ada := strings.Index(out, "Ada Lovelace")
	alan := strings.Index(out, "Alan Turing")
	grace := strings.Index(out, "Grace Hopper")
	require.True(t, ada >= 0 && alan >= 0 && grace >= 0, out)
	assert.Less(t, ada, alan)
	assert.Less(t, alan, grace)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Showing 1-3 of 3  Page 1 of 1")
}

func TestListSortAndOrder(t *testing.T) {
	d := newFakeDeps(t)
	d.svc.On("List", mock.Anything).Return(sampleContacts(), nil).Once()

	out, err := executeList(t, d, "--sort", "id", "--order", "desc", "--format", "compact")
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing\nGrace Hopper\nAda Lovelace\n", out)
}

func TestListSearch(t *testing.T) {
	d := newFakeDeps(t)
	d.svc.On("List", mock.Anything).Return(sampleContacts(), nil).Once()

	out, err := executeList(t, d, "--search", "EXAMPLE.ORG", "--format", "compact")
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing\n", out)
}

func TestListNoMatches(t *testing.T) {
	d := newFakeDeps(t)
	d.svc.On("List", mock.Anything).Return(sampleContacts(), nil).Once()

	out, err := executeList(t, d, "--search", "zzz")
	require.NoError(t, err)
	assert.Equal(t, "No contacts match \"zzz\".\n", out)
}

func TestListEmpty(t *testing.T) {
	d := newFakeDeps(t)
	d.svc.On("List", mock.Anything).Return([]domain.Contact{}, nil).Once()

	out, err := executeList(t, d)
	require.NoError(t, err)
	assert.Contains(t, out, "No contacts")
	assert.Contains(t, out, "Get started by adding a new contact.")
}

func TestListPaging(t *testing.T) {
	d := newFakeDeps(t)
	d.svc.On("List", mock.Anything).Return(sampleContacts(), nil).Once()

	out, err := executeList(t, d, "--page-size", "2", "--page", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Grace Hopper")
	assert.NotContains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Showing 3-3 of 3  Page 2 of 2")
}

func TestListJSON(t *testing.T) {
	d := newFakeDeps(t)
	d.svc.On("List", mock.Anything).Return(sampleContacts(), nil).Once()

	out, err := executeList(t, d, "--format", "json", "--page-size", "2")
	require.NoError(t, err)

	var got []domain.Contact
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Ada Lovelace", got[0].Name)
	assert.Equal(t, "Alan Turing", got[1].Name)
}

func TestListTranslated(t *testing.T) {
	d := newFakeDeps(t)
	d.lang = "es"
	d.svc.On("List", mock.Anything).Return([]domain.Contact{}, nil).Once()

	out, err := executeList(t, d)
	require.NoError(t, err)
	assert.NotContains(t, out, "Get started by adding a new contact.")
}

func TestListFetchFailure(t *testing.T) {
	d := newFakeDeps(t)
	d.svc.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, err := executeList(t, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to load contacts. Please try again.")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestListRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"--format", "xml"}, "xml"},
		{"bad page", []string{"--page", "0"}, "page must be at least 1"},
		{"bad page size", []string{"--page-size", "-1"}, "page-size must be positive"},
		{"bad sort", []string{"--sort", "age"}, "age"},
		{"bad order", []string{"--order", "sideways"}, "sideways"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDeps(t)
			_, err := executeList(t, d, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			d.svc.AssertNotCalled(t, "List", mock.Anything)
		})
	}
}
