// Package config loads the mrp-policy configuration file. Every key can be
// overridden by an MRP_POLICY_* environment variable, e.g.
// MRP_POLICY_PLANNING_CONCURRENCY=8.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/erp"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/logging"
)

// DateLayout is the format of dates in config files and input CSVs
const DateLayout = "2006-01-02"

// EnvPrefix is the prefix for environment overrides
const EnvPrefix = "MRP_POLICY"

// Configuration holds all configuration for mrp-policy.
type Configuration struct {
	Logging  logging.Config `mapstructure:"logging"`
	Planning PlanningConfig `mapstructure:"planning"`
	Inputs   InputsConfig   `mapstructure:"inputs"`
	Output   OutputConfig   `mapstructure:"output"`
}

// PlanningConfig controls bucket generation and run parallelism
type PlanningConfig struct {
	StartDate   string `mapstructure:"start_date"`   // empty means today
	BucketDays  int    `mapstructure:"bucket_days"`  // length of one time bucket
	HorizonDays int    `mapstructure:"horizon_days"` // 0 uses each component's own horizon
	Concurrency int    `mapstructure:"concurrency"`  // components evaluated in parallel

	Calendar CalendarConfig `mapstructure:"calendar"`
}

// CalendarConfig describes the working calendar used to offset release dates
// by lead time
type CalendarConfig struct {
	Name        string   `mapstructure:"name"`
	WorkingDays []string `mapstructure:"working_days"` // e.g. [mon, tue, wed, thu, fri]
	Holidays    []string `mapstructure:"holidays"`     // YYYY-MM-DD
}

// InputsConfig names the files a planning run reads
type InputsConfig struct {
	Items      string `mapstructure:"items"`
	Components string `mapstructure:"components"`
	Demands    string `mapstructure:"demands"`
	Receipts   string `mapstructure:"receipts"`
	Inventory  string `mapstructure:"inventory"`

	// DefaultMRPType replaces unrecognized item master MRP type codes. Empty
	// rejects those rows.
	DefaultMRPType string `mapstructure:"default_mrp_type"`
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format"` // text, json, csv
	Dir    string `mapstructure:"dir"`    // empty writes to stdout
	Events string `mapstructure:"events"` // JSON lines event log, empty disables
}

func setDefaults(v *viper.Viper) {
	defaults := logging.DefaultConfig()
	v.SetDefault("logging.level", defaults.Level)
	v.SetDefault("logging.format", defaults.Format)
	v.SetDefault("logging.output", defaults.Output)
	v.SetDefault("logging.development", defaults.Development)

	v.SetDefault("planning.start_date", "")
	v.SetDefault("planning.bucket_days", 7)
	v.SetDefault("planning.horizon_days", 0)
	v.SetDefault("planning.concurrency", 4)
	v.SetDefault("planning.calendar.name", "DEFAULT")
	v.SetDefault("planning.calendar.working_days", []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"})
	v.SetDefault("planning.calendar.holidays", []string{})

	v.SetDefault("inputs.items", "")
	v.SetDefault("inputs.components", "")
	v.SetDefault("inputs.demands", "")
	v.SetDefault("inputs.receipts", "")
	v.SetDefault("inputs.inventory", "")
	v.SetDefault("inputs.default_mrp_type", "")

	v.SetDefault("output.format", "text")
	v.SetDefault("output.dir", "")
	v.SetDefault("output.events", "")
}

// Load reads configuration from configPath. With an empty path it looks for
// mrp-policy.yaml in the working directory and falls back to defaults when
// none exists.
func Load(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("mrp-policy")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the values viper cannot type-check on its own
func (c *Configuration) Validate() error {
	if c.Planning.BucketDays <= 0 {
		return fmt.Errorf("planning.bucket_days must be positive, got %d", c.Planning.BucketDays)
	}
	if c.Planning.HorizonDays < 0 {
		return fmt.Errorf("planning.horizon_days cannot be negative, got %d", c.Planning.HorizonDays)
	}
	if c.Planning.Concurrency <= 0 {
		return fmt.Errorf("planning.concurrency must be positive, got %d", c.Planning.Concurrency)
	}
	if c.Planning.StartDate != "" {
		if _, err := time.Parse(DateLayout, c.Planning.StartDate); err != nil {
			return fmt.Errorf("planning.start_date %q is not a %s date: %w", c.Planning.StartDate, DateLayout, err)
		}
	}
	if _, err := c.Calendar(); err != nil {
		return err
	}
	if c.Inputs.DefaultMRPType != "" {
		if _, err := erp.AllowsNegativeInventory(c.Inputs.DefaultMRPType); err != nil {
			return fmt.Errorf("inputs.default_mrp_type: %w", err)
		}
	}
	switch c.Output.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("output.format %q is not supported (expected: text, json, or csv)", c.Output.Format)
	}
	return nil
}

// StartDate returns the configured planning start date, or today's date in
// UTC when none is set.
func (c *Configuration) StartDate(now time.Time) time.Time {
	if c.Planning.StartDate == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	start, _ := time.Parse(DateLayout, c.Planning.StartDate)
	return start
}

// Calendar builds the working calendar described by planning.calendar
func (c *Configuration) Calendar() (*entities.WorkCalendar, error) {
	cal := c.Planning.Calendar

	days := make([]time.Weekday, 0, len(cal.WorkingDays))
	for _, name := range cal.WorkingDays {
		day, err := entities.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("planning.calendar.working_days: %w", err)
		}
		days = append(days, day)
	}

	holidays := make([]time.Time, 0, len(cal.Holidays))
	for _, h := range cal.Holidays {
		date, err := time.Parse(DateLayout, strings.TrimSpace(h))
		if err != nil {
			return nil, fmt.Errorf("planning.calendar.holidays %q is not a %s date: %w", h, DateLayout, err)
		}
		holidays = append(holidays, date)
	}

	calendar, err := entities.NewWorkCalendar(cal.Name, days, holidays)
	if err != nil {
		return nil, fmt.Errorf("planning.calendar: %w", err)
	}
	return calendar, nil
}
