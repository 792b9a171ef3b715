package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tj/assert"
)

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) RefreshUpcoming(ctx context.Context, _ time.Time) (int, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("missing deadline")
	}
	return 2, f.err
}

func TestRunCallsRefresher(t *testing.T) {
	r := &fakeRefresher{}
	s := New(time.Hour, r)

	s.run()
	assert.Equal(t, 1, r.calls)

	r.err = errors.New("store unavailable")
	s.run()
	assert.Equal(t, 2, r.calls)
}

func TestStartAndStop(t *testing.T) {
	r := &fakeRefresher{}
	s := New(0, r)

	assert.NoError(t, s.Start())
	s.Stop()
	assert.Equal(t, 0, r.calls)
}
