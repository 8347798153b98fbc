package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ExportCSV writes the full listing collection to a CSV file at path,
// creating the parent directory if needed. One-shot, best effort.
func (s *ListingStore) ExportCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"id", "title", "description", "price", "area_acres", "latitude", "longitude"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, l := range s.listings {
		row := []string{
			l.ID,
			l.Title,
			l.Description,
			strconv.FormatFloat(l.Price, 'f', -1, 64),
			strconv.FormatFloat(l.Area, 'f', -1, 64),
			strconv.FormatFloat(l.Location.Lat, 'f', -1, 64),
			strconv.FormatFloat(l.Location.Lng, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return writer.Error()
}
