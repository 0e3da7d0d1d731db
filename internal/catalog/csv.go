package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/scythe504/spyfall-backend/internal"
)

// LoadCSVFile reads a catalog from a two column file: id,icon.
func LoadCSVFile(filePath string) (*Catalog, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("unable to read locations file %s: %w", filePath, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

func ReadCSV(r io.Reader) (*Catalog, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse locations as CSV: %w", err)
	}

	var locations []internal.Location
	for _, record := range records {
		if len(record) < 2 {
			log.Warn().Strs("record", record).Msg("skipping invalid location record")
			continue
		}
		id := strings.TrimSpace(record[0])
		if id == "" {
			log.Warn().Strs("record", record).Msg("skipping location record without id")
			continue
		}
		locations = append(locations, internal.Location{
			ID:   id,
			Icon: strings.TrimSpace(record[1]),
		})
	}

	return New(locations)
}
