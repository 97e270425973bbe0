// Package scan turns externally captured spool data, OCR'd label text and QR
// code payloads, into plain structured values for the inventory flows. Image
// capture and decoding happen on the client; only the extracted text or
// bytes arrive here.
package scan

import (
	"regexp"
	"strconv"
	"strings"
)

// Parsed holds the values recognized in a blob of OCR text. Fields the text
// did not contain are nil; unparseable text is not an error.
type Parsed struct {
	PrintTimeMinutes *int     `json:"printTimeMinutes"`
	Price            *float64 `json:"price"`
	RawText          string   `json:"rawText"`
}

var (
	whitespace = regexp.MustCompile(`\s+`)

	// print time: "2h 35m", "2h 35 min", "2:35 h", "2h", "35 min", "2:35"
	reHourMin  = regexp.MustCompile(`(?i)(\d+)\s*h(?:our)?s?\s*(\d+)\s*m(?:in)?`)
	reColonDur = regexp.MustCompile(`(?i)(\d+)\s*:\s*(\d+)\s*(?:h|m|min)`)
	reHourOnly = regexp.MustCompile(`(?i)(\d+)\s*h(?:our)?s?(?:\s|$|m)`)
	reMinOnly  = regexp.MustCompile(`(?i)(\d+)\s*m(?:in)?(?:\s|$)`)
	reMinWord  = regexp.MustCompile(`(?i)(\d+)\s*minutes?`)
	reColon    = regexp.MustCompile(`(\d+)\s*:\s*(\d+)(?:\s|$|m|h)`)

	// price: "$24.99", "€10,50", "24.99"
	rePrice = regexp.MustCompile(`[$€£]?\s*(\d+[.,]\d{2})(?:\s|$|[^\d])`)
)

// ParseText extracts a print time and a price from free-form text using the
// same heuristics slicer screenshots and receipts tend to match.
func ParseText(text string) Parsed {
	return Parsed{
		PrintTimeMinutes: parsePrintTime(text),
		Price:            parsePrice(text),
		RawText:          text,
	}
}

func parsePrintTime(text string) *int {
	joined := whitespace.ReplaceAllString(text, " ")

	for _, re := range []*regexp.Regexp{reHourMin, reColonDur} {
		if m := re.FindStringSubmatch(joined); m != nil {
			h, err1 := strconv.Atoi(m[1])
			min, err2 := strconv.Atoi(m[2])
			if err1 == nil && err2 == nil {
				total := h*60 + min
				return &total
			}
		}
	}
	if m := reHourOnly.FindStringSubmatch(joined); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil {
			total := h * 60
			return &total
		}
	}
	if m := reMinOnly.FindStringSubmatch(joined); m != nil {
		if min, err := strconv.Atoi(m[1]); err == nil {
			return &min
		}
	}
	if m := reMinWord.FindStringSubmatch(joined); m != nil {
		if min, err := strconv.Atoi(m[1]); err == nil {
			return &min
		}
	}
	if m := reColon.FindStringSubmatch(joined); m != nil {
		h, err1 := strconv.Atoi(m[1])
		min, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			total := h*60 + min
			return &total
		}
	}
	return nil
}

func parsePrice(text string) *float64 {
	joined := whitespace.ReplaceAllString(text, " ")
	m := rePrice.FindStringSubmatch(joined)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return nil
	}
	return &v
}
