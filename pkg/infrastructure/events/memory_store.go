package events

import (
	"sync"

	"github.com/vsinha/mrp-policy/pkg/infrastructure/logging"
	"go.uber.org/zap"
)

type InMemoryEventStore struct {
	versions    map[string]int
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	allEvents   []Event
	handlers    sync.WaitGroup
	logger      *zap.Logger
}

var _ EventStore = (*InMemoryEventStore)(nil)

func NewInMemoryEventStore(logger *zap.Logger) *InMemoryEventStore {
	return &InMemoryEventStore{
		versions:    make(map[string]int),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
		logger:      logging.OrNop(logger),
	}
}

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()

	s.versions[streamID]++
	eventWithVersion := BaseEvent{
		EventID:      event.ID(),
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: s.versions[streamID],
	}

	s.allEvents = append(s.allEvents, eventWithVersion)
	handlers := s.matchingHandlers(eventWithVersion.EventType)
	s.mutex.Unlock()

	s.logger.Debug("event appended",
		zap.String("op", "events.append"),
		zap.String("type", eventWithVersion.EventType),
		zap.String("stream", streamID),
		zap.Int("version", eventWithVersion.EventVersion))

	s.notifySubscribers(handlers, eventWithVersion)
	return nil
}

// ReadAllEvents returns events in append order starting at fromPosition
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}

	return append([]Event(nil), s.allEvents[fromPosition:]...), nil
}

// ReadEventsByType returns every stored event of the given type in append order
func (s *InMemoryEventStore) ReadEventsByType(eventType string) []Event {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var result []Event
	for _, e := range s.allEvents {
		if e.Type() == eventType {
			result = append(result, e)
		}
	}
	return result
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
	return nil
}

func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for eventType, handlers := range s.subscribers {
		kept := make([]EventHandler, 0, len(handlers))
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.subscribers[eventType] = kept
	}
	return nil
}

// Wait blocks until every subscriber notification started so far has returned
func (s *InMemoryEventStore) Wait() {
	s.handlers.Wait()
}

// matchingHandlers must be called with the mutex held
func (s *InMemoryEventStore) matchingHandlers(eventType string) []EventHandler {
	var result []EventHandler
	for _, h := range s.subscribers[eventType] {
		if h.CanHandle(eventType) {
			result = append(result, h)
		}
	}
	return result
}

func (s *InMemoryEventStore) notifySubscribers(handlers []EventHandler, event Event) {
	for _, handler := range handlers {
		s.handlers.Add(1)
		go func(h EventHandler, e Event) {
			defer s.handlers.Done()
			if err := h.Handle(e); err != nil {
				s.logger.Warn("event handler failed",
					zap.String("op", "events.notify"),
					zap.String("type", e.Type()),
					zap.String("stream", e.StreamID()),
					zap.Error(err))
			}
		}(handler, event)
	}
}
