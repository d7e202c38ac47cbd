package email

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxDropsOldestWhenFull(t *testing.T) {
	o := NewOutbox(2, 5)
	for i := 0; i < 3; i++ {
		o.Add(Message{Subject: fmt.Sprintf("m%d", i)}, errors.New("fail"))
	}

	pending := o.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "m1", pending[0].Message.Subject)
	assert.Equal(t, "m2", pending[1].Message.Subject)
}

func TestOutboxRetryGivesUp(t *testing.T) {
	o := NewOutbox(10, 3)
	o.Add(Message{Subject: "stuck"}, errors.New("fail"))

	failing := func(context.Context, Message) error { return errors.New("still failing") }

	sent, dropped := o.Retry(context.Background(), failing)
	assert.Equal(t, 0, sent)
	assert.Equal(t, 0, dropped)
	require.Equal(t, 1, o.Len())
	assert.Equal(t, 2, o.Pending()[0].Attempts)

	sent, dropped = o.Retry(context.Background(), failing)
	assert.Equal(t, 0, sent)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 0, o.Len())
}

func TestOutboxRetryPartial(t *testing.T) {
	o := NewOutbox(10, 5)
	o.Add(Message{To: "good@example.com"}, errors.New("fail"))
	o.Add(Message{To: "bad@example.com"}, errors.New("fail"))

	sent, dropped := o.Retry(context.Background(), func(_ context.Context, msg Message) error {
		if msg.To == "bad@example.com" {
			return errors.New("rejected")
		}
		return nil
	})

	assert.Equal(t, 1, sent)
	assert.Equal(t, 0, dropped)
	pending := o.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "bad@example.com", pending[0].Message.To)
	assert.Equal(t, "rejected", pending[0].LastError)
}

func TestOutboxRetryStopsOnCancelledContext(t *testing.T) {
	o := NewOutbox(10, 5)
	o.Add(Message{Subject: "a"}, errors.New("fail"))
	o.Add(Message{Subject: "b"}, errors.New("fail"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	sent, _ := o.Retry(ctx, func(context.Context, Message) error {
		calls++
		return nil
	})
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, sent)
	assert.Equal(t, 2, o.Len())
}

func TestOutboxRetryEmpty(t *testing.T) {
	o := NewOutbox(0, 0)
	sent, dropped := o.Retry(context.Background(), func(context.Context, Message) error {
		t.Fatal("send should not be called")
		return nil
	})
	assert.Zero(t, sent)
	assert.Zero(t, dropped)
}
