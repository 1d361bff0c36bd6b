package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// idColumns are the accepted header names for the ID column
var idColumns = []string{"user_id", "UserID"}

// ReadUserIDs loads the ordered sequence of user IDs from a CSV file.
// The file must carry a header row with a user_id (or UserID) column;
// blank cells are skipped, any other non-numeric cell is a parse error.
func ReadUserIDs(csvPath string) ([]int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	csvReader := csv.NewReader(file)
	csvReader.LazyQuotes = true

	headers, err := csvReader.Read()
	if err == io.EOF {
		return nil, nil // empty file, empty batch
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idCol := -1
	for i, h := range headers {
		cleanHeader := strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
		for _, candidate := range idColumns {
			if cleanHeader == candidate {
				idCol = i
			}
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("CSV must have a 'user_id' or 'UserID' column, found: %v", headers)
	}

	var ids []int
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}

		cell := strings.TrimSpace(record[idCol])
		if cell == "" {
			continue
		}

		id, err := strconv.Atoi(cell)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID %q in CSV: %w", cell, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
