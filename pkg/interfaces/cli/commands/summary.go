package commands

import (
	"sync"

	"github.com/vsinha/mrp-policy/pkg/infrastructure/events"
	"go.uber.org/zap"
)

var summaryEventTypes = []string{
	events.ConfigRejectedEvent,
	events.TriggerFiredEvent,
	events.OrderPlannedEvent,
	events.ComponentSkippedEvent,
}

// runSummary counts planning events as they are published
type runSummary struct {
	mu     sync.Mutex
	counts map[string]int
}

func newRunSummary() *runSummary {
	return &runSummary{counts: make(map[string]int, len(summaryEventTypes))}
}

func (s *runSummary) Handle(event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[event.Type()]++
	return nil
}

func (s *runSummary) CanHandle(eventType string) bool {
	for _, t := range summaryEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

func (s *runSummary) count(eventType string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[eventType]
}

func (s *runSummary) fields() []zap.Field {
	return []zap.Field{
		zap.Int("rejected_configs", s.count(events.ConfigRejectedEvent)),
		zap.Int("triggers", s.count(events.TriggerFiredEvent)),
		zap.Int("orders", s.count(events.OrderPlannedEvent)),
		zap.Int("skipped", s.count(events.ComponentSkippedEvent)),
	}
}
