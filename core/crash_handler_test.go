package core

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTerminal struct {
	finis int
}

func (f *fakeTerminal) Fini() { f.finis++ }

// swapCrashSinks redirects output and exit for the duration of a test
func swapCrashSinks(t *testing.T) (*bytes.Buffer, chan int) {
	t.Helper()
	var buf bytes.Buffer
	codes := make(chan int, 1)

	crashMu.Lock()
	prevOut, prevExit := crashOut, crashExit
	crashOut = &buf
	crashExit = func(code int) { codes <- code }
	crashMu.Unlock()

	t.Cleanup(func() {
		crashMu.Lock()
		crashOut, crashExit = prevOut, prevExit
		crashTerminal = nil
		crashMu.Unlock()
	})
	return &buf, codes
}

func TestHandleCrashFinalizesTerminalOnce(t *testing.T) {
	buf, codes := swapCrashSinks(t)
	term := &fakeTerminal{}
	SetCrashTerminal(term)

	HandleCrash("boom")
	require.Equal(t, 1, <-codes)
	assert.Equal(t, 1, term.finis)
	assert.Contains(t, buf.String(), "CRASH DETECTED: boom")
	assert.Contains(t, buf.String(), "Stack Trace:")

	// Terminal is unregistered after the first crash
	HandleCrash("again")
	<-codes
	assert.Equal(t, 1, term.finis)
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	buf, codes := swapCrashSinks(t)
	HandleCrash(nil)
	assert.Empty(t, buf.String())
	assert.Len(t, codes, 0)
}

func TestGoRecoversPanic(t *testing.T) {
	_, codes := swapCrashSinks(t)

	Go(func() { panic("worker failed") })
	assert.Equal(t, 1, <-codes)
}

func TestGoRunsFunction(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	ran := false
	Go(func() {
		defer wg.Done()
		ran = true
	})
	wg.Wait()
	assert.True(t, ran)
}
