package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"options-analyzer/internal/models"
)

// legRecord is one row of a legs CSV file.
type legRecord struct {
	Type     string  `csv:"type"`
	Position string  `csv:"position"`
	Strike   float64 `csv:"strike"`
	Premium  float64 `csv:"premium"`
	Quantity int     `csv:"quantity"`
	Shares   int     `csv:"shares_per_contract"`
}

// legsFromFile reads option legs from a CSV file with a
// type,position,strike,premium,quantity[,shares_per_contract] header.
func legsFromFile(path string) ([]models.OptionLeg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening legs file: %w", err)
	}
	defer f.Close()

	var records []*legRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parsing legs file %s: %w", path, err)
	}

	legs := make([]models.OptionLeg, 0, len(records))
	for i, r := range records {
		leg := models.OptionLeg{
			Type:              models.OptionType(strings.ToUpper(r.Type)),
			Position:          models.Side(strings.ToUpper(r.Position)),
			Strike:            r.Strike,
			Premium:           r.Premium,
			Quantity:          r.Quantity,
			SharesPerContract: r.Shares,
		}
		if err := leg.Validate(); err != nil {
			return nil, fmt.Errorf("legs file row %d: %w", i+1, err)
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

// parseLegSpec parses a position:type:strike:premium:quantity flag value,
// e.g. "long:call:100:5.00:1".
func parseLegSpec(spec string) (models.OptionLeg, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 5 {
		return models.OptionLeg{}, fmt.Errorf("leg spec %q: want position:type:strike:premium:quantity", spec)
	}

	strike, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return models.OptionLeg{}, fmt.Errorf("leg spec %q: bad strike: %w", spec, err)
	}
	premium, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return models.OptionLeg{}, fmt.Errorf("leg spec %q: bad premium: %w", spec, err)
	}
	quantity, err := strconv.Atoi(parts[4])
	if err != nil {
		return models.OptionLeg{}, fmt.Errorf("leg spec %q: bad quantity: %w", spec, err)
	}

	leg := models.OptionLeg{
		Position: models.Side(strings.ToUpper(parts[0])),
		Type:     models.OptionType(strings.ToUpper(parts[1])),
		Strike:   strike,
		Premium:  premium,
		Quantity: quantity,
	}
	if err := leg.Validate(); err != nil {
		return models.OptionLeg{}, err
	}
	return leg, nil
}

// legsFromFlags collects legs from --leg specs and an optional --legs-file.
func legsFromFlags(specs []string, file string) ([]models.OptionLeg, error) {
	var legs []models.OptionLeg
	for _, spec := range specs {
		leg, err := parseLegSpec(spec)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	if file != "" {
		fromFile, err := legsFromFile(file)
		if err != nil {
			return nil, err
		}
		legs = append(legs, fromFile...)
	}
	if len(legs) == 0 {
		return nil, fmt.Errorf("no legs given: use --leg or --legs-file")
	}
	return legs, nil
}
