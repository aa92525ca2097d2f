// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// loop_test.go — loop contract: virtual clock control, watcher registration
// lifecycle, closed-loop semantics.
package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/timeloop/api"
	"github.com/momentics/timeloop/control"
	"github.com/momentics/timeloop/fake"
)

func TestLoop_ClockStartsAtZero(t *testing.T) {
	l := New()
	assert.Equal(t, time.Duration(0), l.Time())
}

func TestLoop_WithStartTime(t *testing.T) {
	l := New(WithStartTime(10 * time.Second))
	assert.Equal(t, 10*time.Second, l.Time())
}

func TestLoop_SetTimeOverridesClock(t *testing.T) {
	l := New(WithStartTime(10 * time.Second))
	l.SetTime(3 * time.Second)
	assert.Equal(t, 3*time.Second, l.Time())
}

func TestLoop_AdvanceTime(t *testing.T) {
	l := New()
	l.AdvanceTime(2 * time.Second)
	assert.Equal(t, 2*time.Second, l.Time())

	// Zero and negative deltas are no-ops.
	l.AdvanceTime(0)
	l.AdvanceTime(-time.Second)
	assert.Equal(t, 2*time.Second, l.Time())
}

func TestLoop_AddReaderRegistersReadInterest(t *testing.T) {
	l := New()
	ep := fake.NewEndpoint()

	require.NoError(t, l.AddReader(ep, func() {}))

	snap := l.Snapshot()
	require.Len(t, snap, 1)
	reg := snap[ep]
	assert.Equal(t, api.ReadyRead, reg.Mask)
	require.NotNil(t, reg.Reader)
	assert.Nil(t, reg.Writer)
	assert.False(t, reg.Reader.Cancelled())
}

func TestLoop_AddReaderReplacesAndCancelsPriorHandle(t *testing.T) {
	l := New()
	ep := fake.NewEndpoint()

	require.NoError(t, l.AddReader(ep, func() {}))
	first := l.Snapshot()[ep].Reader

	require.NoError(t, l.AddReader(ep, func() {}))
	second := l.Snapshot()[ep].Reader

	assert.True(t, first.Cancelled())
	assert.NotSame(t, first, second)
	assert.False(t, second.Cancelled())
}

func TestLoop_ReaderWriterRolesAreIndependent(t *testing.T) {
	l := New()
	ep := fake.NewEndpoint()

	require.NoError(t, l.AddReader(ep, func() {}))
	require.NoError(t, l.AddWriter(ep, func() {}))

	reg := l.Snapshot()[ep]
	assert.Equal(t, api.ReadyRead|api.ReadyWrite, reg.Mask)
	require.NotNil(t, reg.Reader)
	require.NotNil(t, reg.Writer)

	// Dropping the reader leaves a write-only registration.
	assert.True(t, l.RemoveReader(ep))
	snap := l.Snapshot()
	require.Len(t, snap, 1)
	reg = snap[ep]
	assert.Equal(t, api.ReadyWrite, reg.Mask)
	assert.Nil(t, reg.Reader)
	require.NotNil(t, reg.Writer)

	// Dropping the writer removes the endpoint from the registry entirely.
	assert.True(t, l.RemoveWriter(ep))
	assert.Empty(t, l.Snapshot())
}

func TestLoop_RemoveReaderCancelsHandle(t *testing.T) {
	l := New()
	ep := fake.NewEndpoint()

	require.NoError(t, l.AddReader(ep, func() {}))
	h := l.Snapshot()[ep].Reader

	assert.True(t, l.RemoveReader(ep))
	assert.True(t, h.Cancelled())
}

func TestLoop_RemoveAbsentRoleReturnsFalse(t *testing.T) {
	l := New()
	ep := fake.NewEndpoint()

	// Nothing registered at all.
	assert.False(t, l.RemoveReader(ep))
	assert.False(t, l.RemoveWriter(ep))

	// Writer-only registration: removing the reader reports false and leaves
	// the writer untouched.
	require.NoError(t, l.AddWriter(ep, func() {}))
	assert.False(t, l.RemoveReader(ep))
	reg := l.Snapshot()[ep]
	assert.Equal(t, api.ReadyWrite, reg.Mask)
	require.NotNil(t, reg.Writer)
}

func TestLoop_RemoveIsIdempotent(t *testing.T) {
	l := New()
	ep := fake.NewEndpoint()

	require.NoError(t, l.AddReader(ep, func() {}))
	assert.True(t, l.RemoveReader(ep))
	assert.False(t, l.RemoveReader(ep))
	assert.False(t, l.RemoveReader(ep))
}

func TestLoop_ClosedLoopAddFailsRemoveDegrades(t *testing.T) {
	l := New()
	ep := fake.NewEndpoint()
	require.NoError(t, l.AddReader(ep, func() {}))

	l.Close()
	require.True(t, l.IsClosed())

	err := l.AddReader(ep, func() {})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrLoopClosed)

	err = l.AddWriter(ep, func() {})
	assert.ErrorIs(t, err, api.ErrLoopClosed)

	_, err = l.CallSoon(func() {})
	assert.ErrorIs(t, err, api.ErrLoopClosed)

	_, err = l.CallAt(time.Second, func() {})
	assert.ErrorIs(t, err, api.ErrLoopClosed)

	// Teardown code keeps working without error plumbing.
	assert.False(t, l.RemoveReader(ep))
	assert.False(t, l.RemoveWriter(ep))
}

func TestLoop_CloseDiscardsPendingWork(t *testing.T) {
	l := New()
	ep := fake.NewEndpoint()
	require.NoError(t, l.AddReader(ep, func() {}))
	_, err := l.CallAt(5*time.Second, func() {})
	require.NoError(t, err)
	_, err = l.CallSoon(func() {})
	require.NoError(t, err)

	l.Close()

	state := l.Probes().DumpState()
	assert.Equal(t, 0, state["pending_timers"])
	assert.Equal(t, 0, state["registered_endpoints"])
	assert.Equal(t, 0, state["ready_callbacks"])
	assert.Empty(t, l.Snapshot())

	// Close is idempotent and RunOnce on a closed loop is a no-op.
	l.Close()
	l.RunOnce()
}

func TestLoop_RemovalCounters(t *testing.T) {
	l := New()
	ep := fake.NewEndpoint()

	require.NoError(t, l.AddReader(ep, func() {}))
	require.NoError(t, l.AddWriter(ep, func() {}))
	l.RemoveReader(ep)
	l.RemoveWriter(ep)

	// A failed removal does not count.
	l.RemoveReader(ep)

	c := l.Counters()
	assert.Equal(t, 1, c.RemoveReaderCount(ep.ID()))
	assert.Equal(t, 1, c.RemoveWriterCount(ep.ID()))

	c.Reset()
	assert.Equal(t, 0, c.RemoveReaderCount(ep.ID()))
	assert.Equal(t, 0, c.RemoveWriterCount(ep.ID()))
}

func TestLoop_SharedCountersOption(t *testing.T) {
	shared := control.NewCounters()
	l := New(WithCounters(shared))
	assert.Same(t, shared, l.Counters())
}
