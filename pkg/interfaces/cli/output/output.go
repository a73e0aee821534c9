package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vsinha/mrp-policy/pkg/application/dto"
)

const dateLayout = "2006-01-02"

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate writes a planning result in the configured format. Text and JSON go
// to w unless an output directory is set; CSV writes planned orders to w, or
// one file per table into the output directory.
func Generate(w io.Writer, result *dto.PlanningResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(w, result, config)
	case "json":
		return generateJSONOutput(w, result, config)
	case "csv":
		return generateCSVOutput(w, result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateTextOutput(w io.Writer, result *dto.PlanningResult, config Config) error {
	if config.OutputDir == "" {
		return WriteText(w, result, config.Verbose)
	}

	filename, err := createFile(config.OutputDir, "planning_result.txt", func(f io.Writer) error {
		return WriteText(f, result, config.Verbose)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Results saved to: %s\n", filename)
	return nil
}

func generateJSONOutput(w io.Writer, result *dto.PlanningResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		_, err := fmt.Fprintln(w, string(jsonData))
		return err
	}

	filename, err := createFile(config.OutputDir, "planning_result.json", func(f io.Writer) error {
		_, err := f.Write(jsonData)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "JSON results saved to: %s\n", filename)
	return nil
}

func generateCSVOutput(w io.Writer, result *dto.PlanningResult, config Config) error {
	if config.OutputDir == "" {
		return WriteOrdersCSV(w, result.PlannedOrders)
	}

	ordersFile, err := createFile(config.OutputDir, "planned_orders.csv", func(f io.Writer) error {
		return WriteOrdersCSV(f, result.PlannedOrders)
	})
	if err != nil {
		return fmt.Errorf("failed to write planned orders CSV: %w", err)
	}

	projectionsFile, err := createFile(config.OutputDir, "bucket_projections.csv", func(f io.Writer) error {
		return WriteProjectionsCSV(f, result.Plans)
	})
	if err != nil {
		return fmt.Errorf("failed to write bucket projections CSV: %w", err)
	}

	peggingFile, err := createFile(config.OutputDir, "pegging.csv", func(f io.Writer) error {
		return WritePeggingCSV(f, result.PlannedOrders)
	})
	if err != nil {
		return fmt.Errorf("failed to write pegging CSV: %w", err)
	}

	fmt.Fprintf(w, "CSV results saved to:\n")
	fmt.Fprintf(w, "  Planned Orders: %s\n", ordersFile)
	fmt.Fprintf(w, "  Bucket Projections: %s\n", projectionsFile)
	fmt.Fprintf(w, "  Pegging: %s\n", peggingFile)
	return nil
}

// WriteDecision writes a single trigger decision as text or JSON
func WriteDecision(w io.Writer, decision dto.TriggerDecision, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(decision, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text", "csv":
		verdict := "no order"
		if decision.Triggered {
			verdict = fmt.Sprintf("plan order (net requirement %s)", decision.NetRequirement)
		}
		_, err := fmt.Fprintf(w, "%s: projected %s vs threshold %s [%s] -> %s\n",
			decision.ComponentID,
			decision.ProjectedOnHand,
			decision.EffectiveThreshold,
			decision.Regime,
			verdict)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func createFile(dir, name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(dir, name)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filename, err)
	}

	if err := write(file); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", filename, err)
	}
	return filename, nil
}
