package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnSchedule(t *testing.T) {
	schedule, err := turnSchedule([]string{"left", " R "}, 10, 5)
	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.True(t, schedule[10].RotateLeft)
	assert.True(t, schedule[15].RotateRight)

	_, err = turnSchedule([]string{"up"}, 0, 1)
	assert.ErrorContains(t, err, `unknown turn "up"`)
}

func TestRunPrintsTurn(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, options{level: "courtyard", ticks: 220, rotate: []string{"left"}, at: 30, gap: 1, every: 1000})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "[rotation_started 90]")
	assert.Contains(t, text, "[rotation_finished 90]")

	lines := strings.Split(strings.TrimSpace(text), "\n")
	// Header plus the start and finish ticks.
	assert.Len(t, lines, 3)
}

func TestRunRejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(&out, options{level: "courtyard", ticks: 0}))
	assert.Error(t, run(&out, options{level: "no_such_level", ticks: 10}))
}

func TestRootCmdFlags(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--ticks", "5", "--rotate", "right", "--at", "2"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "[rotation_started -90]")
}
