// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCenter() (*Center, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewCenter()
	c.SetClock(clock.Now)
	return c, clock
}

func TestShowNewestFirst(t *testing.T) {
	c, _ := newTestCenter()
	c.Show(Info("primeiro"))
	c.Show(Error("segundo"))

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "segundo", active[0].Message)
	assert.Equal(t, KindError, active[0].Kind)
	assert.Equal(t, "primeiro", active[1].Message)
}

func TestKeyedShowDoesNotStack(t *testing.T) {
	c, _ := newTestCenter()
	id1 := c.Show(PersistentWarning(KeyTenMinute, MsgTenMinute))
	id2 := c.Show(PersistentWarning(KeyTenMinute, MsgTenMinute))

	assert.Equal(t, id1, id2)
	assert.Len(t, c.Active(), 1)
	assert.True(t, c.Visible(KeyTenMinute))
}

func TestDismissByKey(t *testing.T) {
	c, _ := newTestCenter()
	c.Show(PersistentWarning(KeyTenMinute, MsgTenMinute))
	c.Show(PersistentWarning(KeyFiveMinute, MsgFiveMinute))
	c.Show(Info("outra"))

	DismissSessionWarnings(c)

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "outra", active[0].Message)

	// Dismissing a missing key is a no-op.
	c.Dismiss(KeyFiveMinute)
	c.Dismiss("")
	assert.Len(t, c.Active(), 1)
}

func TestShowAfterDismissAddsAgain(t *testing.T) {
	c, _ := newTestCenter()
	id1 := c.Show(PersistentWarning(KeyFiveMinute, MsgFiveMinute))
	c.Dismiss(KeyFiveMinute)
	id2 := c.Show(PersistentWarning(KeyFiveMinute, MsgFiveMinute))
	assert.NotEqual(t, id1, id2)
	assert.Len(t, c.Active(), 1)
}

func TestTickExpiresTimedOnly(t *testing.T) {
	c, clock := newTestCenter()
	c.Show(Error("erro"))
	c.Show(PersistentWarning(KeySessionExpired, MsgSessionExpired))

	clock.Advance(ErrorDuration - time.Millisecond)
	assert.Len(t, c.Tick(), 2)

	clock.Advance(time.Millisecond)
	active := c.Tick()
	require.Len(t, active, 1)
	assert.Equal(t, KeySessionExpired, active[0].Key)

	clock.Advance(24 * time.Hour)
	assert.Len(t, c.Tick(), 1)
}

func TestRemoveByID(t *testing.T) {
	c, _ := newTestCenter()
	id := c.Show(Success("ok"))
	c.Show(Info("fica"))
	c.Remove(id)
	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "fica", active[0].Message)
}

func TestTrimKeepsPersistent(t *testing.T) {
	c, _ := newTestCenter()
	c.Show(PersistentWarning(KeyTenMinute, MsgTenMinute))
	for i := 0; i < 10; i++ {
		c.Show(Info("x"))
	}
	active := c.Active()
	assert.Len(t, active, 5)
	assert.True(t, c.Visible(KeyTenMinute))
}

func TestOnShowListener(t *testing.T) {
	c, _ := newTestCenter()
	var seen []string
	c.OnShow(func(n Notification) { seen = append(seen, n.Message) })

	c.Show(PersistentWarning(KeyTenMinute, "a"))
	c.Show(PersistentWarning(KeyTenMinute, "a"))
	c.Show(Info("b"))

	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "info", KindInfo.String())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "warning", KindWarning.String())
	assert.Equal(t, "success", KindSuccess.String())
}

func TestConcurrentShow(t *testing.T) {
	c, _ := newTestCenter()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Show(PersistentWarning(KeyFiveMinute, MsgFiveMinute))
			c.Tick()
		}()
	}
	wg.Wait()
	assert.Len(t, c.Active(), 1)
}
