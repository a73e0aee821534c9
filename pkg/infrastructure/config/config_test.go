package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mrp-policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
planning:
  start_date: "2026-01-05"
  bucket_days: 1
  horizon_days: 30
  concurrency: 2
inputs:
  items: testdata/items.csv
  demands: testdata/demands.csv
output:
  format: csv
`)

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	if conf.Logging.Level != "debug" || conf.Logging.Format != "json" {
		t.Errorf("Expected debug/json logging, got %s/%s", conf.Logging.Level, conf.Logging.Format)
	}
	if conf.Logging.Output != "stderr" {
		t.Errorf("Expected default logging output stderr, got %s", conf.Logging.Output)
	}
	if conf.Planning.BucketDays != 1 || conf.Planning.HorizonDays != 30 || conf.Planning.Concurrency != 2 {
		t.Errorf("Unexpected planning config: %+v", conf.Planning)
	}
	if conf.Inputs.Items != "testdata/items.csv" {
		t.Errorf("Expected items path, got %q", conf.Inputs.Items)
	}
	if conf.Inputs.Receipts != "" {
		t.Errorf("Expected empty receipts path, got %q", conf.Inputs.Receipts)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Expected csv output, got %s", conf.Output.Format)
	}

	expected := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	if got := conf.StartDate(time.Now()); !got.Equal(expected) {
		t.Errorf("Expected start date %v, got %v", expected, got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	conf, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	if conf.Planning.BucketDays != 7 {
		t.Errorf("Expected default bucket days 7, got %d", conf.Planning.BucketDays)
	}
	if conf.Planning.Concurrency != 4 {
		t.Errorf("Expected default concurrency 4, got %d", conf.Planning.Concurrency)
	}
	if conf.Output.Format != "text" {
		t.Errorf("Expected default output text, got %s", conf.Output.Format)
	}

	now := time.Date(2026, 3, 9, 15, 30, 0, 0, time.UTC)
	if got := conf.StartDate(now); !got.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected start date truncated to day, got %v", got)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "planning:\n  concurrency: 2\n")
	t.Setenv("MRP_POLICY_PLANNING_CONCURRENCY", "8")
	t.Setenv("MRP_POLICY_OUTPUT_FORMAT", "json")

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if conf.Planning.Concurrency != 8 {
		t.Errorf("Expected env override concurrency 8, got %d", conf.Planning.Concurrency)
	}
	if conf.Output.Format != "json" {
		t.Errorf("Expected env override output json, got %s", conf.Output.Format)
	}
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"zero bucket days", "planning:\n  bucket_days: 0\n"},
		{"negative horizon", "planning:\n  horizon_days: -1\n"},
		{"zero concurrency", "planning:\n  concurrency: 0\n"},
		{"bad start date", "planning:\n  start_date: 05/01/2026\n"},
		{"bad output format", "output:\n  format: html\n"},
		{"unknown weekday", "planning:\n  calendar:\n    working_days: [mon, funday]\n"},
		{"no working days", "planning:\n  calendar:\n    working_days: []\n"},
		{"bad holiday", "planning:\n  calendar:\n    holidays: [\"Jan 1\"]\n"},
		{"unknown default mrp type", "inputs:\n  default_mrp_type: VB\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Error("Expected error, got none")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestLoad_Calendar(t *testing.T) {
	path := writeConfig(t, `
planning:
  calendar:
    name: PLANT-1
    working_days: [mon, tue, wed, thu, fri]
    holidays: ["2026-01-09"]
output:
  events: events.jsonl
`)

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if conf.Output.Events != "events.jsonl" {
		t.Errorf("Expected events path, got %q", conf.Output.Events)
	}

	calendar, err := conf.Calendar()
	if err != nil {
		t.Fatalf("Failed to build calendar: %v", err)
	}
	if calendar.CalendarID() != "PLANT-1" {
		t.Errorf("Expected calendar PLANT-1, got %s", calendar.CalendarID())
	}
	if len(calendar.WorkingDays()) != 5 {
		t.Errorf("Expected 5 working days, got %v", calendar.WorkingDays())
	}

	// Monday 2026-01-12 minus one working day skips the weekend and the Friday holiday.
	monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	if got := calendar.SubtractWorkingDays(monday, 1); !got.Equal(time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected 2026-01-08, got %s", got.Format(DateLayout))
	}
}

func TestLoad_DefaultCalendarIsContinuous(t *testing.T) {
	chdir(t, t.TempDir())

	conf, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	calendar, err := conf.Calendar()
	if err != nil {
		t.Fatalf("Failed to build calendar: %v", err)
	}
	if len(calendar.WorkingDays()) != 7 {
		t.Errorf("Expected every weekday to be a working day, got %v", calendar.WorkingDays())
	}
	if len(calendar.Holidays()) != 0 {
		t.Errorf("Expected no holidays, got %v", calendar.Holidays())
	}
}

func TestLoad_CalendarEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MRP_POLICY_PLANNING_CALENDAR_WORKING_DAYS", "mon,tue,wed,thu,fri,sat")

	conf, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	calendar, err := conf.Calendar()
	if err != nil {
		t.Fatalf("Failed to build calendar: %v", err)
	}
	if len(calendar.WorkingDays()) != 6 {
		t.Errorf("Expected 6 working days from env, got %v", calendar.WorkingDays())
	}
}

func TestLoad_DefaultMRPType(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MRP_POLICY_INPUTS_DEFAULT_MRP_TYPE", "mts")

	conf, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if conf.Inputs.DefaultMRPType != "mts" {
		t.Errorf("Expected default mrp type mts, got %q", conf.Inputs.DefaultMRPType)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
