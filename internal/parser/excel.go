// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// parseExcel extracts text from Excel bytes using "markdownification" strategy
func parseExcel(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open Excel file: %v", ErrUnreadable, err)
	}
	defer f.Close()

	var builder strings.Builder

	sheetList := f.GetSheetList()

	for sheetIdx, sheetName := range sheetList {
		if sheetIdx > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))

		rows, err := f.GetRows(sheetName)
		if err != nil {
			// Skip this sheet if we can't read it (e.g., password protected)
			builder.WriteString(fmt.Sprintf("(Unable to read sheet %s: %v)\n", sheetName, err))
			continue
		}

		if len(rows) == 0 {
			continue
		}

		// First row is headers
		headers := rows[0]
		if len(headers) == 0 {
			continue
		}

		// Build row text: "Row [X]: [Header 1]: [Value], [Header 2]: [Value]..."
		for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
			row := rows[rowIdx]

			rowParts := []string{}
			for colIdx, header := range headers {
				if colIdx < len(row) && row[colIdx] != "" {
					value := strings.TrimSpace(row[colIdx])
					if value != "" {
						headerName := strings.TrimSpace(header)
						if headerName == "" {
							headerName = fmt.Sprintf("Column %d", colIdx+1)
						}
						rowParts = append(rowParts, fmt.Sprintf("%s: %s", headerName, value))
					}
				}
			}

			if len(rowParts) > 0 {
				builder.WriteString(fmt.Sprintf("Row %d: %s\n", rowIdx+1, strings.Join(rowParts, ", ")))
			}
		}
	}

	return builder.String(), nil
}
