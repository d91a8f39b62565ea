package concept

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Literals written for non-finite parameters.
const (
	literalNaN    = "NaN"
	literalPosInf = "Infinity"
	literalNegInf = "-Infinity"
)

// sentinels lists every accepted spelling of a non-finite value.
var sentinels = map[string]float64{
	"-Infinity": math.Inf(-1), "-infinity": math.Inf(-1), "-Inf": math.Inf(-1), "-inf": math.Inf(-1),
	"+Infinity": math.Inf(1), "+infinity": math.Inf(1), "+Inf": math.Inf(1), "+inf": math.Inf(1),
	"Infinity": math.Inf(1), "infinity": math.Inf(1), "Inf": math.Inf(1), "inf": math.Inf(1),
	"NaN": math.NaN(), "NAN": math.NaN(), "nan": math.NaN(), "NA": math.NaN(), "na": math.NaN(),
}

// ParseSentinel resolves a non-finite spelling such as "-Inf" or "NA".
func ParseSentinel(s string) (float64, bool) {
	v, ok := sentinels[s]

	return v, ok
}

// ParseValue parses a sentinel spelling or a decimal number.
func ParseValue(s string) (float64, error) {
	if v, ok := ParseSentinel(s); ok {
		return v, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrValue)
	}

	return v, nil
}

// FormatValue renders v the way concept documents store it.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return literalNaN
	case math.IsInf(v, 1):
		return literalPosInf
	case math.IsInf(v, -1):
		return literalNegInf
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// MarshalJSON writes finite parameters as numbers and the rest as strings.
func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString(strconv.Quote(FormatValue(v)))
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// UnmarshalJSON accepts numbers, sentinel strings and numeric strings; null reads as NaN.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("set: %w", err)
	}
	out := make(Set, len(raw))
	for i, r := range raw {
		if string(bytes.TrimSpace(r)) == "null" {
			out[i] = math.NaN()
			continue
		}
		var num float64
		if err := json.Unmarshal(r, &num); err == nil {
			out[i] = num
			continue
		}
		var str string
		if err := json.Unmarshal(r, &str); err != nil {
			return fmt.Errorf("set parameter %d %s: %w", i, string(r), ErrValue)
		}
		v, err := ParseValue(str)
		if err != nil {
			return fmt.Errorf("set parameter %d: %w", i, err)
		}
		out[i] = v
	}
	*s = out

	return nil
}

// WriteDocument encodes doc as indented JSON (keys sorted).
func WriteDocument(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("concept: encode document: %w", err)
	}

	return nil
}

// ReadDocument decodes a concept document and checks the arity of every set.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("concept: decode document: %w", err)
	}
	for cluster, concepts := range doc {
		for key, c := range concepts {
			for i, s := range c {
				if _, err := s.Shape(); err != nil {
					return nil, fmt.Errorf("concept: %s/%s set %d: %w", cluster, key, i, err)
				}
			}
		}
	}

	return doc, nil
}
