package notify_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/stickyboard/pkg/core"
	"github.com/aretw0/stickyboard/pkg/notify"
)

func TestHub_PublishReachesCurrentSubscribers(t *testing.T) {
	hub := notify.NewHub()

	var got []core.Signal
	unsub := hub.Subscribe(core.TopicTodosUpdated, func(s core.Signal) {
		got = append(got, s)
	})
	defer unsub()

	var other int
	hub.Subscribe(core.TopicNotesUpdated, func(core.Signal) { other++ })

	hub.Publish(core.TopicTodosUpdated, core.Updated(core.Overrides{7: true}))
	hub.Publish(core.TopicTodosUpdated, core.Invalidate())

	require.Len(t, got, 2)
	assert.Equal(t, core.SignalUpdated, got[0].Kind)
	assert.Equal(t, core.Overrides{7: true}, got[0].Overrides)
	assert.Equal(t, core.SignalInvalidate, got[1].Kind)
	assert.Nil(t, got[1].Overrides)
	assert.Zero(t, other)
}

func TestHub_PayloadIsCopiedPerSubscriber(t *testing.T) {
	hub := notify.NewHub()

	hub.Subscribe("t", func(s core.Signal) { s.Overrides[1] = false })
	var seen core.Overrides
	hub.Subscribe("t", func(s core.Signal) { seen = s.Overrides })

	payload := core.Overrides{1: true}
	hub.Publish("t", core.Updated(payload))

	assert.True(t, payload[1])
	require.NotNil(t, seen)
	assert.True(t, seen[1])
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := notify.NewHub()

	var calls int
	unsub := hub.Subscribe("t", func(core.Signal) { calls++ })
	assert.Equal(t, 1, hub.Subscribers("t"))

	unsub()
	unsub()
	assert.Equal(t, 0, hub.Subscribers("t"))

	hub.Publish("t", core.Invalidate())
	assert.Zero(t, calls)
}

func TestHub_NoReplayForLateSubscribers(t *testing.T) {
	hub := notify.NewHub()
	hub.Publish("t", core.Invalidate())

	var calls int
	hub.Subscribe("t", func(core.Signal) { calls++ })
	assert.Zero(t, calls)
}

func TestHub_HandlerMayUnsubscribeDuringDelivery(t *testing.T) {
	hub := notify.NewHub()

	var unsub func()
	var calls int
	unsub = hub.Subscribe("t", func(core.Signal) {
		calls++
		unsub()
	})

	hub.Publish("t", core.Invalidate())
	hub.Publish("t", core.Invalidate())
	assert.Equal(t, 1, calls)
}

func TestHub_PanickingSubscriberIsIsolated(t *testing.T) {
	hub := notify.NewHub()

	var delivered atomic.Int32
	hub.Subscribe("t", func(core.Signal) { panic("boom") })
	hub.Subscribe("t", func(core.Signal) { delivered.Add(1) })

	assert.NotPanics(t, func() { hub.Publish("t", core.Invalidate()) })
	assert.Equal(t, int32(1), delivered.Load())
}

func TestHub_Concurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := notify.NewHub()
	var total atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := hub.Subscribe("t", func(core.Signal) { total.Add(1) })
			for j := 0; j < 50; j++ {
				hub.Publish("t", core.Invalidate())
			}
			unsub()
		}()
	}
	wg.Wait()

	assert.Positive(t, total.Load())
	state := hub.State().(notify.HubState)
	assert.Equal(t, uint64(400), state.Published)
	assert.Empty(t, state.Topics)
}
