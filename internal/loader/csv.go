// Package loader reads launch records into an immutable launch.Dataset.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dbsmedya/launchdash/internal/launch"
)

// Column headers of the launch CSV.
const (
	ColFlightNumber    = "Flight Number"
	ColLaunchSite      = "Launch Site"
	ColPayloadMass     = "Payload Mass (kg)"
	ColBoosterVersion  = "Booster Version"
	ColBoosterCategory = "Booster Version Category"
	ColClass           = "class"
)

var (
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyDataset is returned when the source holds no records.
	ErrEmptyDataset = errors.New("dataset has no records")
	// ErrInvalidOutcome is returned when class is not 0 or 1.
	ErrInvalidOutcome = errors.New("class must be 0 or 1")
	// ErrInvalidPayload is returned for unparsable or negative payload masses.
	ErrInvalidPayload = errors.New("invalid payload mass")
)

var requiredColumns = []string{ColLaunchSite, ColPayloadMass, ColBoosterCategory, ColClass}

// LoadCSV reads the launch CSV at path into a Dataset.
func LoadCSV(path string) (*launch.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return launch.NewDataset(records), nil
}

// ReadCSV parses launch records from r. Columns are located by header name,
// so their order is free and unknown columns are ignored.
func ReadCSV(r io.Reader) ([]launch.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var records []launch.Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return records, nil
}

func parseRow(row []string, index map[string]int) (launch.Record, error) {
	field := func(col string) (string, bool) {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var rec launch.Record
	rec.LaunchSite, _ = field(ColLaunchSite)
	rec.BoosterVersionCategory, _ = field(ColBoosterCategory)
	rec.BoosterVersion, _ = field(ColBoosterVersion)

	if s, ok := field(ColFlightNumber); ok && s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return launch.Record{}, fmt.Errorf("invalid %s %q: %w", ColFlightNumber, s, err)
		}
		rec.FlightNumber = n
	}

	payload, _ := field(ColPayloadMass)
	kg, err := parsePayload(payload)
	if err != nil {
		return launch.Record{}, err
	}
	rec.PayloadMassKg = kg

	class, _ := field(ColClass)
	outcome, err := parseOutcome(class)
	if err != nil {
		return launch.Record{}, err
	}
	rec.Class = outcome

	return rec, nil
}

func parsePayload(s string) (float64, error) {
	kg, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(kg) || math.IsInf(kg, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPayload, s)
	}
	if kg < 0 {
		return 0, fmt.Errorf("%w: %v is negative", ErrInvalidPayload, kg)
	}
	return kg, nil
}

// parseOutcome accepts "0"/"1" and their float spellings ("1.0").
func parseOutcome(s string) (launch.Outcome, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidOutcome, s)
	}
	o := launch.Outcome(v)
	if float64(o) != v || !o.Valid() {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidOutcome, s)
	}
	return o, nil
}
