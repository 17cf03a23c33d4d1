package checkers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvChecker(t *testing.T) {
	c := NewEnvChecker("ATLAS_TEST_KEY")
	assert.Equal(t, "env:ATLAS_TEST_KEY", c.Name())

	t.Setenv("ATLAS_TEST_KEY", "")
	assert.EqualError(t, c.Check(context.Background()), "ATLAS_TEST_KEY is not set")

	t.Setenv("ATLAS_TEST_KEY", "value")
	assert.NoError(t, c.Check(context.Background()))
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestPostgresChecker_BoundsPing(t *testing.T) {
	var deadline time.Time
	c := NewPostgresChecker(pingerFunc(func(ctx context.Context) error {
		var ok bool
		deadline, ok = ctx.Deadline()
		require.True(t, ok)
		return nil
	}))

	require.NoError(t, c.Check(context.Background()))
	assert.Equal(t, "postgres", c.Name())
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
}

func TestPostgresChecker_PropagatesError(t *testing.T) {
	c := NewPostgresChecker(pingerFunc(func(context.Context) error { return errors.New("no route") }))

	assert.EqualError(t, c.Check(context.Background()), "no route")
}
