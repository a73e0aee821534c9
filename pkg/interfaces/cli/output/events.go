package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/events"
)

type eventRecord struct {
	ID        uuid.UUID   `json:"id"`
	Type      string      `json:"type"`
	Stream    string      `json:"stream"`
	Version   int         `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// WriteEventLog writes events as JSON lines in the order given
func WriteEventLog(w io.Writer, log []events.Event) error {
	encoder := json.NewEncoder(w)
	for _, e := range log {
		record := eventRecord{
			ID:        e.ID(),
			Type:      e.Type(),
			Stream:    e.StreamID(),
			Version:   e.Version(),
			Timestamp: e.Timestamp(),
			Data:      e.Data(),
		}
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to encode %s event: %w", e.Type(), err)
		}
	}
	return nil
}

// WriteEventLogFile writes the event log to filename, replacing any existing file
func WriteEventLogFile(filename string, log []events.Event) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := WriteEventLog(file, log); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filename, err)
	}
	return nil
}
