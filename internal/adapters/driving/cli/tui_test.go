package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Registered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_Help(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"tui", "--help"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "interactive terminal")
	assert.Contains(t, buf.String(), "Ctrl+R")
}

func TestSetConfigWatcher(t *testing.T) {
	prev := configWatcher
	defer func() { configWatcher = prev }()

	called := false
	SetConfigWatcher(func(func()) (func(), error) {
		called = true
		return func() {}, nil
	})

	require.NotNil(t, configWatcher)
	_, err := configWatcher(func() {})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestMCPCmd_Registered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "mcp" {
			found = true
			break
		}
	}
	assert.True(t, found, "mcp command should be registered")
}
