package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVersionClient struct{}

func (fakeVersionClient) Version() string  { return "1.2.3" }
func (fakeVersionClient) Detailed() string { return "contacts 1.2.3 built today (go1.24 linux/amd64)" }

func TestNewVersionCmdPanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() { NewVersionCmd(nil) })
}

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", nil, "contacts version 1.2.3\n"},
		{"verbose", []string{"--verbose"}, "contacts 1.2.3 built today (go1.24 linux/amd64)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewVersionCmd(fakeVersionClient{})
			c.SetOut(&out)
			c.SetArgs(tt.args)
			require.NoError(t, c.Execute())
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestVersionCmdRejectsArgs(t *testing.T) {
	c := NewVersionCmd(buildInfo{})
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"extra"})
	assert.Error(t, c.Execute())
}
