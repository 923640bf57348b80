package summary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Decode parses the backend summary payload, keeping object key order at
// both the employee and the period level.
// PRE: none
// POST: returns a Summary with non-nil Daily and Monthly, or a
// *MalformedSummaryError describing the first problem found
func Decode(data []byte) (Summary, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{', ""); err != nil {
		return Summary{}, err
	}

	var s Summary
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Summary{}, &MalformedSummaryError{Reason: err.Error()}
		}
		key, _ := tok.(string)
		switch key {
		case "daily":
			if s.Daily, err = decodeBreakdowns(dec, key); err != nil {
				return Summary{}, err
			}
		case "monthly":
			if s.Monthly, err = decodeBreakdowns(dec, key); err != nil {
				return Summary{}, err
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return Summary{}, &MalformedSummaryError{Field: key, Reason: err.Error()}
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return Summary{}, &MalformedSummaryError{Reason: err.Error()}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Summary{}, &MalformedSummaryError{Reason: "trailing data after summary object"}
	}

	if s.Daily == nil {
		return Summary{}, &MalformedSummaryError{Field: "daily", Reason: "missing"}
	}
	if s.Monthly == nil {
		return Summary{}, &MalformedSummaryError{Field: "monthly", Reason: "missing"}
	}
	return s, nil
}

// decodeBreakdowns reads one section. A repeated employee or period key
// keeps its first position and takes the last value, as JSON.parse does.
func decodeBreakdowns(dec *json.Decoder, field string) ([]Breakdown, error) {
	if err := expectDelim(dec, '{', field); err != nil {
		return nil, err
	}
	out := []Breakdown{}
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &MalformedSummaryError{Field: field, Reason: err.Error()}
		}
		employee, _ := tok.(string)
		path := field + "." + employee
		if err := expectDelim(dec, '{', path); err != nil {
			return nil, err
		}
		b := Breakdown{Employee: employee, Entries: []Entry{}}
		keys := make(map[string]int)
		for dec.More() {
			ktok, err := dec.Token()
			if err != nil {
				return nil, &MalformedSummaryError{Field: path, Reason: err.Error()}
			}
			key, _ := ktok.(string)
			vtok, err := dec.Token()
			if err != nil {
				return nil, &MalformedSummaryError{Field: path, Reason: err.Error()}
			}
			num, ok := vtok.(json.Number)
			if !ok {
				return nil, &MalformedSummaryError{Field: path + "." + key, Reason: "hours must be a number"}
			}
			hours, err := num.Float64()
			if err != nil {
				return nil, &MalformedSummaryError{Field: path + "." + key, Reason: err.Error()}
			}
			if i, dup := keys[key]; dup {
				b.Entries[i].Hours = hours
				continue
			}
			keys[key] = len(b.Entries)
			b.Entries = append(b.Entries, Entry{Key: key, Hours: hours})
		}
		if _, err := dec.Token(); err != nil {
			return nil, &MalformedSummaryError{Field: path, Reason: err.Error()}
		}
		if i, dup := seen[employee]; dup {
			out[i] = b
			continue
		}
		seen[employee] = len(out)
		out = append(out, b)
	}
	if _, err := dec.Token(); err != nil {
		return nil, &MalformedSummaryError{Field: field, Reason: err.Error()}
	}
	return out, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, field string) error {
	tok, err := dec.Token()
	if err != nil {
		return &MalformedSummaryError{Field: field, Reason: err.Error()}
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return &MalformedSummaryError{Field: field, Reason: fmt.Sprintf("expected object, got %v", tok)}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler using Decode.
func (s *Summary) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// MarshalJSON writes the summary as nested objects in slice order.
// Nil Daily or Monthly slices are written as empty objects.
func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"daily":`)
	if err := writeBreakdowns(&buf, s.Daily); err != nil {
		return nil, err
	}
	buf.WriteString(`,"monthly":`)
	if err := writeBreakdowns(&buf, s.Monthly); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeBreakdowns(buf *bytes.Buffer, bs []Breakdown) error {
	buf.WriteByte('{')
	for i, b := range bs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(buf, b.Employee); err != nil {
			return err
		}
		buf.WriteByte('{')
		for j, e := range b.Entries {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(buf, e.Key); err != nil {
				return err
			}
			buf.WriteString(strconv.FormatFloat(e.Hours, 'g', -1, 64))
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}
