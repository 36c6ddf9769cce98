package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp accepts epoch milliseconds or an RFC 3339 string.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			ts.Time = time.Time{}
			return nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("timestamp %q: %w", s, err)
		}
		ts.Time = t
		return nil
	}
	var millis int64
	if err := json.Unmarshal(data, &millis); err != nil {
		return fmt.Errorf("timestamp %s: %w", data, err)
	}
	ts.Time = time.UnixMilli(millis)
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UnixMilli())
}

// Format renders the timestamp in local time, or "-" when unset.
func (ts Timestamp) Format(layout string) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(layout)
}
