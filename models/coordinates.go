package models

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// LatLng represents a geographical point as returned by the geocoding service.
type LatLng struct {
	Lat float32 `json:"lat"` // Latitude of the point.
	Lng float32 `json:"lng"` // Longitude of the point.
}

// InRange reports whether the point lies within the valid latitude and
// longitude ranges. Decoding never checks this.
func (ll LatLng) InRange() bool {
	return ll.Lat >= -90 && ll.Lat <= 90 && ll.Lng >= -180 && ll.Lng <= 180
}

func (ll *LatLng) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "LatLng", "lat", "lng"); err != nil {
		return err
	}

	type plain LatLng
	return json.Unmarshal(data, (*plain)(ll))
}

// unwrapLatLng returns the nested "latLng" object when the service wraps the
// coordinate pair, and data unchanged otherwise.
func unwrapLatLng(data []byte) []byte {
	if nested := gjson.GetBytes(data, "latLng"); nested.IsObject() {
		return []byte(nested.Raw)
	}
	return data
}
