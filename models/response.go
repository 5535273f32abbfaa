package models

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// MapQuest application status codes carried in Info.StatusCode.
// See https://developer.mapquest.com/documentation/geocoding-api/status-codes/
const (
	StatusOK           uint32 = 0
	StatusInvalidInput uint32 = 400
	StatusKeyError     uint32 = 403
	StatusUnknownError uint32 = 500
)

// GeocodeResponse is the body of a forward geocoding call.
type GeocodeResponse struct {
	Info    Info            `json:"info"`
	Options Options         `json:"options"`
	Results []GeocodeResult `json:"results"`
}

// ReverseGeocodeResponse is the body of a reverse geocoding call.
type ReverseGeocodeResponse struct {
	Info    Info                   `json:"info"`
	Options Options                `json:"options"`
	Results []ReverseGeocodeResult `json:"results"`
}

// Info is the status envelope present in every response, successful or not.
type Info struct {
	StatusCode uint32   `json:"statuscode"`
	Messages   []string `json:"messages"` // Messages describe the status, may be empty.
}

// Succeeded reports whether the service accepted the request. A call can
// succeed at the HTTP level and still carry a non-zero status code here.
func (i Info) Succeeded() bool {
	return i.StatusCode == StatusOK
}

// Options echoes the options the service applied to the request.
type Options struct {
	MaxResults        uint32 `json:"maxResults"`
	ThumbMaps         bool   `json:"thumbMaps"`
	IgnoreLatLngInput bool   `json:"ignoreLatLngInput"`
}

// GeocodeResult groups the candidates found for one submitted address.
type GeocodeResult struct {
	ProvidedLocation ProvidedLocation `json:"providedLocation"`
	Locations        []Location       `json:"locations"`
}

// ReverseGeocodeResult groups the candidates found for one submitted point.
type ReverseGeocodeResult struct {
	ProvidedLocation LatLng     `json:"providedLocation"`
	Locations        []Location `json:"locations"`
}

// ProvidedLocation is the address as it was submitted.
type ProvidedLocation struct {
	Location string `json:"location"`
}

// Location is one candidate address match.
type Location struct {
	Street     string `json:"street"`
	AdminArea6 string `json:"adminArea6"` // Neighborhood name.
	AdminArea5 string `json:"adminArea5"` // City name.
	AdminArea4 string `json:"adminArea4"` // County name.
	AdminArea3 string `json:"adminArea3"` // State name.
	AdminArea1 string `json:"adminArea1"` // Country name.

	Type LocationType `json:"type"`
	// DragPoint only applies to locations of a dragroute call.
	DragPoint bool `json:"dragPoint"`
	// DisplayLatLng is the point to use when showing the address as a POI.
	DisplayLatLng LatLng       `json:"displayLatLng"`
	SideOfStreet  SideOfStreet `json:"sideOfStreet"`

	// See https://developer.mapquest.com/documentation/geocoding-api/quality-codes/
	GeocodeQualityCode string `json:"geocodeQualityCode"`
	GeocodeQuality     string `json:"geocodeQuality"`

	// LinkID identifies the closest road to the address for routing.
	LinkID string `json:"linkId"`
}

var locationFields = []string{
	"street", "adminArea6", "adminArea5", "adminArea4", "adminArea3", "adminArea1",
	"type", "dragPoint", "displayLatLng", "sideOfStreet",
	"geocodeQualityCode", "geocodeQuality", "linkId",
}

func (r *GeocodeResponse) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "GeocodeResponse", "info", "options", "results"); err != nil {
		return err
	}

	type plain GeocodeResponse
	return json.Unmarshal(data, (*plain)(r))
}

func (r *ReverseGeocodeResponse) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "ReverseGeocodeResponse", "info", "options", "results"); err != nil {
		return err
	}

	type plain ReverseGeocodeResponse
	return json.Unmarshal(data, (*plain)(r))
}

// UnmarshalJSON accepts the status code under both "statuscode" and
// "status_code".
func (i *Info) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "Info", "messages"); err != nil {
		return err
	}
	if err := rejectCaseVariants(gjson.ParseBytes(data), "Info", "statuscode", "status_code"); err != nil {
		return err
	}

	var raw struct {
		StatusCode    *uint32  `json:"statuscode"`
		AltStatusCode *uint32  `json:"status_code"`
		Messages      []string `json:"messages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.StatusCode != nil:
		i.StatusCode = *raw.StatusCode
	case raw.AltStatusCode != nil:
		i.StatusCode = *raw.AltStatusCode
	default:
		return &MissingFieldError{Object: "Info", Field: "statuscode"}
	}
	i.Messages = raw.Messages

	return nil
}

func (o *Options) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "Options", "maxResults", "thumbMaps", "ignoreLatLngInput"); err != nil {
		return err
	}

	type plain Options
	return json.Unmarshal(data, (*plain)(o))
}

func (r *GeocodeResult) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "GeocodeResult", "providedLocation", "locations"); err != nil {
		return err
	}

	type plain GeocodeResult
	return json.Unmarshal(data, (*plain)(r))
}

// UnmarshalJSON reads the provided location either as a bare lat/lng pair or
// wrapped in a "latLng" object.
func (r *ReverseGeocodeResult) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "ReverseGeocodeResult", "providedLocation", "locations"); err != nil {
		return err
	}

	var raw struct {
		ProvidedLocation json.RawMessage `json:"providedLocation"`
		Locations        []Location      `json:"locations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if err := json.Unmarshal(unwrapLatLng(raw.ProvidedLocation), &r.ProvidedLocation); err != nil {
		return err
	}
	r.Locations = raw.Locations

	return nil
}

func (p *ProvidedLocation) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "ProvidedLocation", "location"); err != nil {
		return err
	}

	type plain ProvidedLocation
	return json.Unmarshal(data, (*plain)(p))
}

func (l *Location) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "Location", locationFields...); err != nil {
		return err
	}

	type plain Location
	return json.Unmarshal(data, (*plain)(l))
}
