package series

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Series is the shape the charting client consumes: a status flag plus the
// numeric values in row order.
type Series struct {
	Status string    `json:"status"`
	Values []float64 `json:"values"`
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Format turns raw spreadsheet rows into a Series. The first row is always
// dropped as the header. Each remaining row contributes the value in column B
// when that cell parses as a finite number; other rows are skipped. Row order
// is preserved. An empty input (or header-only input) yields an empty Values
// slice, not an error.
func Format(rows [][]interface{}) Series {
	values := []float64{}
	if len(rows) > 1 {
		for _, row := range rows[1:] {
			if len(row) < 2 {
				continue
			}
			cell := cellText(row[1])
			if cell == "" {
				continue
			}
			v, ok := parseLeadingFloat(cell)
			if !ok {
				continue
			}
			values = append(values, v)
		}
	}
	return Series{Status: "ok", Values: values}
}

func cellText(cell interface{}) string {
	if s, ok := cell.(string); ok {
		return s
	}
	if cell == nil {
		return ""
	}
	return fmt.Sprint(cell)
}

// parseLeadingFloat parses the longest numeric prefix of s, so "100abc"
// yields 100. Non-finite results count as a failed parse.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	prefix := numberPrefix.FindString(s)
	if prefix == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
