// registry_test.go: Tests for per-category logger handles
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CachedCaseInsensitive(t *testing.T) {
	s := newTestSink(t, Config{Name: "svc"})

	first := s.Logger("Orders.Handler")
	assert.Same(t, first, s.Logger("orders.handler"))
	assert.Same(t, first, s.Logger(" ORDERS.HANDLER "))
	assert.Equal(t, "Orders.Handler", s.Logger("orders.HANDLER").Category())

	assert.NotSame(t, first, s.Logger("Orders"))
	assert.Same(t, s.Default(), s.Logger("SVC"))
	assert.Same(t, s.Default(), s.Logger(""))
	assert.Equal(t, "svc", s.Default().Category())
	assert.Same(t, s, first.Sink())
}

func TestRegistry_ConcurrentLookup(t *testing.T) {
	s := newTestSink(t, Config{})

	const goroutines = 16
	handles := make([]*Logger, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i] = s.Logger("shared")
		}(i)
	}
	wg.Wait()

	for _, h := range handles {
		assert.Same(t, handles[0], h)
	}
}

func TestLogger_LevelHelpers(t *testing.T) {
	s := newTestSink(t, Config{})
	l := s.Logger("c")

	l.Trace("t")
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	l.Critical("c")
	l.Log(LevelNone, "n")
	require.NoError(t, s.Close())

	want := []string{"TRCE|c|t", "DBUG|c|d", "INFO|c|i", "WARN|c|w", "ERRR|c|e", "CRIT|c|c", "    |c|n"}
	lines := strings.Split(strings.TrimSuffix(readSlot(t, s, 0), "\n"), "\n")
	require.Len(t, lines, len(want))
	for i, line := range lines {
		assert.Equal(t, fixedStamp+"|"+want[i], line)
	}
}

func TestLogger_EventsAndExceptions(t *testing.T) {
	s := newTestSink(t, Config{})
	l := s.Logger("c")

	l.LogEvent(LevelInformation, 42, "started")
	l.LogException(LevelWarning, 7, errors.New("timeout"), "retrying")
	require.NoError(t, l.LogState(LevelError, 3, map[string]int{"orders": 2}, errors.New("db down"),
		func(state any, err error) string { return fmt.Sprintf("state=%v", state) }))
	require.NoError(t, s.Close())

	want := fixedStamp + "|INFO|c|started [42]\n" +
		fixedStamp + "|WARN|c|retrying [7] [timeout]\n" +
		fixedStamp + "|ERRR|c|state=map[orders:2] [3] [db down]\n"
	assert.Equal(t, want, readSlot(t, s, 0))
}

// countingStringer counts how often it is formatted.
type countingStringer struct{ calls *int }

func (c countingStringer) String() string {
	*c.calls++
	return "value"
}

func TestLogger_LogfSkipsFormattingWhenDisabled(t *testing.T) {
	s := newTestSink(t, Config{MinLevel: LevelInformation})
	l := s.Logger("c")

	calls := 0
	l.Logf(LevelDebug, "debug %s", countingStringer{&calls})
	assert.Zero(t, calls)

	l.Logf(LevelWarning, "warn %s", countingStringer{&calls})
	assert.Equal(t, 1, calls)
	require.NoError(t, s.Close())

	assert.Equal(t, fixedStamp+"|WARN|c|warn value\n", readSlot(t, s, 0))
}
