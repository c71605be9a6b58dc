package infra

// EventType represents the type of event raised while running a report
type EventType int

const (
	RecordsLoaded EventType = iota
	StatisticComputed
	StatisticFailed
	ReportMerged
)

// String returns the string representation of the EventType
func (et EventType) String() string {
	switch et {
	case RecordsLoaded:
		return "RecordsLoaded"
	case StatisticComputed:
		return "StatisticComputed"
	case StatisticFailed:
		return "StatisticFailed"
	case ReportMerged:
		return "ReportMerged"
	default:
		return "Unknown"
	}
}

type Event interface{ EventType() EventType }
type Handler func(Event)

// Bus delivers events synchronously, in subscription order, on the publishing
// goroutine. It is not safe for concurrent use.
type Bus struct{ subs map[EventType][]Handler }

func NewBus() *Bus { return &Bus{subs: map[EventType][]Handler{}} }

func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	for _, h := range b.subs[e.EventType()] {
		h(e)
	}
}

func (b *Bus) Subscribe(evt EventType, h Handler) { b.subs[evt] = append(b.subs[evt], h) }

// SubscribeAll registers h for every event type.
func (b *Bus) SubscribeAll(h Handler) {
	for _, evt := range []EventType{RecordsLoaded, StatisticComputed, StatisticFailed, ReportMerged} {
		b.Subscribe(evt, h)
	}
}
