// Package types provides type definitions for the records exchanged with the remote store.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FlexString is a string that also decodes from JSON numbers and booleans.
// Spreadsheet-backed rows often return ids as numbers.
type FlexString string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	*s = FlexString(string(data))
	return nil
}

// String returns the underlying string.
func (s FlexString) String() string {
	return string(s)
}

// Amount is a monetary value that decodes from numbers, numeric strings,
// empty strings and null. Anything unparsable decodes to zero.
type Amount float64

// UnmarshalJSON implements lenient numeric decoding.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] != '"' {
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			f = 0
		}
		*a = Amount(f)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*a = Amount(parseAmount(str))
	return nil
}

// Float64 returns the amount as a float64, mapping NaN and infinities to zero.
func (a Amount) Float64() float64 {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

var (
	dotGrouped   = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+(,\d+)?$`)
	commaGrouped = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)
	commaDecimal = regexp.MustCompile(`^-?\d+,\d{1,2}$`)
)

// parseAmount parses a user-entered amount such as "Rp 1.500.000",
// "1,500,000.50", "1,5" or "2.5e7". Currency text and spaces are dropped
// first. Dot grouping with an optional comma decimal is read the
// Indonesian way.
func parseAmount(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-', r == '+', r == 'e', r == 'E':
			return r
		default:
			return -1
		}
	}, strings.ToLower(strings.TrimSpace(stripCurrency(raw))))
	if cleaned == "" {
		return 0
	}

	switch {
	case dotGrouped.MatchString(cleaned):
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case commaGrouped.MatchString(cleaned):
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case commaDecimal.MatchString(cleaned):
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// stripCurrency removes a leading or trailing currency marker.
func stripCurrency(raw string) string {
	s := strings.TrimSpace(raw)
	for _, marker := range []string{"IDR", "Rp.", "Rp", "USD", "US$", "$", "EUR", "€"} {
		if len(s) >= len(marker) && strings.EqualFold(s[:len(marker)], marker) {
			s = s[len(marker):]
		}
		if len(s) >= len(marker) && strings.EqualFold(s[len(s)-len(marker):], marker) {
			s = s[:len(s)-len(marker)]
		}
	}
	return strings.TrimSpace(s)
}

// StringList decodes from a JSON array or a newline-delimited string.
// Blank entries are dropped and each entry is trimmed.
type StringList []string

// UnmarshalJSON implements lenient list decoding.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	switch data[0] {
	case '[':
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			var s string
			switch v := item.(type) {
			case string:
				s = v
			case nil:
				continue
			default:
				b, _ := json.Marshal(v)
				s = string(b)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		*l = out
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*l = SplitLines(str)
	default:
		*l = StringList{string(data)}
	}
	return nil
}

// SplitLines splits a newline-delimited block into trimmed, non-empty lines.
func SplitLines(s string) StringList {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out StringList
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-•*▪ ")
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Any converts the list into a []any for template contexts.
func (l StringList) Any() []any {
	out := make([]any, len(l))
	for i, s := range l {
		out[i] = s
	}
	return out
}
