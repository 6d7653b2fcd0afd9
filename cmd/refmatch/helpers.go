package main

import (
	"fmt"
	"strconv"
)

func formatScore(score float64) string {
	return fmt.Sprintf("%.3f", score)
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}

func truncateString(s string, limit int) string {
	if limit <= 3 || len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
