package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndRunByName(t *testing.T) {
	s := New()

	runs := 0
	require.NoError(t, s.Register(NewFuncJob("compliance_scan", "0 6 * * *", func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		runs++
		return nil
	})))
	require.NoError(t, s.Register(NewFuncJob("manual", "", func(context.Context) error {
		return errors.New("boom")
	})))

	assert.Equal(t, []string{"compliance_scan", "manual"}, s.Registered())

	require.NoError(t, s.RunByName(context.Background(), "compliance_scan"))
	assert.Equal(t, 1, runs)

	assert.EqualError(t, s.RunByName(context.Background(), "manual"), "boom")
	assert.Error(t, s.RunByName(context.Background(), "missing"))
}

func TestRegisterRejectsBadExpression(t *testing.T) {
	s := New()
	err := s.Register(NewFuncJob("broken", "every day", func(context.Context) error { return nil }))
	require.Error(t, err)
	assert.Empty(t, s.Registered())
}

func TestStartStop(t *testing.T) {
	s := New()
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
