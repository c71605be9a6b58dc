package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testRecordsLoadedEvent struct {
	Source string
	Count  int
}

func (e testRecordsLoadedEvent) EventType() EventType {
	return RecordsLoaded
}

type testStatisticComputedEvent struct {
	Statistic string
	Buckets   int
}

func (e testStatisticComputedEvent) EventType() EventType {
	return StatisticComputed
}

func TestEventTypeEnum(t *testing.T) {
	t.Run("EventType.String() returns correct values", func(t *testing.T) {
		assert.Equal(t, "RecordsLoaded", RecordsLoaded.String())
		assert.Equal(t, "StatisticComputed", StatisticComputed.String())
		assert.Equal(t, "StatisticFailed", StatisticFailed.String())
		assert.Equal(t, "ReportMerged", ReportMerged.String())
		assert.Equal(t, "Unknown", EventType(999).String())
	})
}

func TestBus(t *testing.T) {
	t.Run("delivers events to subscribers in publish order", func(t *testing.T) {
		bus := NewBus()
		var received []Event
		handler := func(e Event) { received = append(received, e) }

		bus.Subscribe(RecordsLoaded, handler)
		bus.Subscribe(StatisticComputed, handler)

		bus.Publish(testRecordsLoadedEvent{Source: "scores.json", Count: 3})
		bus.Publish(testStatisticComputedEvent{Statistic: "avg(score)", Buckets: 12})

		assert.Len(t, received, 2)
		assert.Equal(t, RecordsLoaded, received[0].EventType())
		assert.Equal(t, StatisticComputed, received[1].EventType())
	})

	t.Run("handlers only receive events they subscribed to", func(t *testing.T) {
		bus := NewBus()
		var loaded, computed []Event

		bus.Subscribe(RecordsLoaded, func(e Event) { loaded = append(loaded, e) })
		bus.Subscribe(StatisticComputed, func(e Event) { computed = append(computed, e) })

		bus.Publish(testRecordsLoadedEvent{Count: 1})
		bus.Publish(testRecordsLoadedEvent{Count: 2})
		bus.Publish(testStatisticComputedEvent{Buckets: 1})

		assert.Len(t, loaded, 2)
		assert.Len(t, computed, 1)
	})

	t.Run("multiple handlers for one event type all run in subscription order", func(t *testing.T) {
		bus := NewBus()
		var order []string

		bus.Subscribe(RecordsLoaded, func(Event) { order = append(order, "first") })
		bus.Subscribe(RecordsLoaded, func(Event) { order = append(order, "second") })

		bus.Publish(testRecordsLoadedEvent{})

		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("subscribe all receives every event type", func(t *testing.T) {
		bus := NewBus()
		var types []EventType

		bus.SubscribeAll(func(e Event) { types = append(types, e.EventType()) })

		bus.Publish(testRecordsLoadedEvent{})
		bus.Publish(testStatisticComputedEvent{})

		assert.Equal(t, []EventType{RecordsLoaded, StatisticComputed}, types)
	})

	t.Run("publishing without subscribers is a no-op", func(t *testing.T) {
		bus := NewBus()

		assert.NotPanics(t, func() { bus.Publish(testRecordsLoadedEvent{}) })
	})

	t.Run("nil bus drops events", func(t *testing.T) {
		var bus *Bus

		assert.NotPanics(t, func() { bus.Publish(testRecordsLoadedEvent{}) })
	})
}
