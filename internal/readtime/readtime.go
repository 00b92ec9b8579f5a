// Package readtime computes the display label for an article's estimated
// reading time from its content length.
package readtime

import (
	"math"
	"strconv"
	"strings"
)

// WordsPerMinute is the assumed average reading speed.
const WordsPerMinute = 265

// Estimate returns a label like "1 min" or "3.5 mins". The word count is a
// plain whitespace split, so HTML tags count as words; minutes are rounded
// up to the nearest half.
func Estimate(content string) string {
	words := len(strings.Fields(content))
	minutes := float64(words) / WordsPerMinute
	rounded := math.Ceil(minutes*2) / 2

	if rounded <= 1 {
		return "1 min"
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " mins"
}
