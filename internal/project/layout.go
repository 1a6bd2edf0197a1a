package project

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// legacyRackName and the default height are applied when a file holds a
// bare list of items from the single-rack format.
const legacyRackName = "Rack 1"

// DecodeLayout parses a persisted layout. A list of racks is read as is;
// a list of items without an "equipment" key is read as a single rack.
// Missing fields are defaulted rather than rejected.
func DecodeLayout(data []byte) ([]model.Rack, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []model.Rack{}, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if len(raw) == 0 {
		return []model.Rack{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw[0], &fields); err != nil {
		return nil, fmt.Errorf("failed to parse layout entry: %w", err)
	}

	var racks []model.Rack
	if _, ok := fields["equipment"]; ok {
		if err := json.Unmarshal(data, &racks); err != nil {
			return nil, fmt.Errorf("failed to parse racks: %w", err)
		}
	} else {
		var items []model.Item
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse legacy layout: %w", err)
		}
		rack := model.NewRack(legacyRackName, model.DefaultRackHeight)
		rack.Equipment = items
		racks = []model.Rack{rack}
	}
	for i := range racks {
		racks[i].Normalize()
	}
	return racks, nil
}

// EncodeLayout renders racks in the persisted format.
func EncodeLayout(racks []model.Rack) ([]byte, error) {
	if racks == nil {
		racks = []model.Rack{}
	}
	data, err := json.MarshalIndent(racks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layout: %w", err)
	}
	return data, nil
}
