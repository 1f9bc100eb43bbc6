package output

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunWithSpinner_NoTTY(t *testing.T) {
	called := false
	err := RunWithSpinner(context.Background(), func(context.Context) error {
		called = true
		return nil
	}, WithTitle("building"))

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestRunWithSpinner_PropagatesError(t *testing.T) {
	want := errors.New("boom")
	err := RunWithSpinner(context.Background(), func(context.Context) error { return want })
	assert.ErrorIs(t, err, want)
}

func TestRunWithSpinner_Timeout(t *testing.T) {
	err := RunWithSpinner(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, WithTimeout(10*time.Millisecond))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
