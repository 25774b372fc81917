package chronograph

import "encoding/json"

// MarshalSplits encodes a split sequence as JSON. Timestamps use RFC 3339
// with nanoseconds, so durations survive a round trip well below
// millisecond accuracy.
func MarshalSplits(splits []Split) ([]byte, error) {
	return json.Marshal(splits)
}

// UnmarshalSplits decodes a split sequence produced by MarshalSplits.
func UnmarshalSplits(data []byte) ([]Split, error) {
	var splits []Split
	if err := json.Unmarshal(data, &splits); err != nil {
		return nil, err
	}
	return splits, nil
}

// JSON returns the Chronograph's split records encoded as JSON.
func (c *Chronograph) JSON() ([]byte, error) {
	return MarshalSplits(c.Splits())
}
