package models

import (
	"encoding/json"
	"fmt"
)

// LocationType is the MapQuest type of a location, sent on the wire as a
// single-letter code.
type LocationType int

const (
	// LocationTypeStop is a regular stop ("s").
	LocationTypeStop LocationType = iota
	// LocationTypeVia is a via point ("v").
	LocationTypeVia
)

var locationTypeCodes = map[string]LocationType{
	"s": LocationTypeStop,
	"v": LocationTypeVia,
}

var locationTypeNames = map[LocationType]string{
	LocationTypeStop: "Stop",
	LocationTypeVia:  "Via",
}

// ParseLocationType maps a wire code to a LocationType. Codes other than
// "s" and "v" are rejected.
func ParseLocationType(code string) (LocationType, error) {
	if lt, ok := locationTypeCodes[code]; ok {
		return lt, nil
	}

	return 0, &UnknownCodeError{Field: "type", Value: code, Expected: []string{"s", "v"}}
}

// Code returns the wire code of the location type.
func (lt LocationType) Code() string {
	return codeOf(locationTypeCodes, lt)
}

func (lt LocationType) String() string {
	if name, ok := locationTypeNames[lt]; ok {
		return name
	}
	return fmt.Sprintf("LocationType(%d)", int(lt))
}

// UnmarshalJSON decodes the single-letter wire code.
func (lt *LocationType) UnmarshalJSON(data []byte) error {
	code, err := decodeCode(data, "type")
	if err != nil {
		return err
	}

	parsed, err := ParseLocationType(code)
	if err != nil {
		return err
	}
	*lt = parsed

	return nil
}

// MarshalJSON encodes the location type back to its wire code.
func (lt LocationType) MarshalJSON() ([]byte, error) {
	return marshalCode(lt.Code(), lt)
}

// SideOfStreet tells which side of the road an address point lies on.
type SideOfStreet int

const (
	SideOfStreetLeft SideOfStreet = iota
	SideOfStreetRight
	SideOfStreetMixed
	SideOfStreetNone
)

var sideOfStreetCodes = map[string]SideOfStreet{
	"l": SideOfStreetLeft,
	"r": SideOfStreetRight,
	"m": SideOfStreetMixed,
	"n": SideOfStreetNone,
}

var sideOfStreetNames = map[SideOfStreet]string{
	SideOfStreetLeft:  "Left",
	SideOfStreetRight: "Right",
	SideOfStreetMixed: "Mixed",
	SideOfStreetNone:  "None",
}

// ParseSideOfStreet maps a wire code to a SideOfStreet. Codes other than
// "l", "r", "m" and "n" are rejected.
func ParseSideOfStreet(code string) (SideOfStreet, error) {
	if side, ok := sideOfStreetCodes[code]; ok {
		return side, nil
	}

	return 0, &UnknownCodeError{Field: "sideOfStreet", Value: code, Expected: []string{"l", "r", "m", "n"}}
}

// Code returns the wire code of the side of street.
func (s SideOfStreet) Code() string {
	return codeOf(sideOfStreetCodes, s)
}

func (s SideOfStreet) String() string {
	if name, ok := sideOfStreetNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SideOfStreet(%d)", int(s))
}

// UnmarshalJSON decodes the single-letter wire code.
func (s *SideOfStreet) UnmarshalJSON(data []byte) error {
	code, err := decodeCode(data, "sideOfStreet")
	if err != nil {
		return err
	}

	parsed, err := ParseSideOfStreet(code)
	if err != nil {
		return err
	}
	*s = parsed

	return nil
}

// MarshalJSON encodes the side of street back to its wire code.
func (s SideOfStreet) MarshalJSON() ([]byte, error) {
	return marshalCode(s.Code(), s)
}

// decodeCode extracts the raw string of a code field. A null or non-string
// value is reported as an unknown code carrying the raw JSON text.
func decodeCode(data []byte, field string) (string, error) {
	var code string
	if err := json.Unmarshal(data, &code); err != nil || string(data) == "null" {
		return "", &UnknownCodeError{Field: field, Value: string(data)}
	}

	return code, nil
}

func codeOf[T comparable](table map[string]T, value T) string {
	for code, v := range table {
		if v == value {
			return code
		}
	}
	return ""
}

func marshalCode(code string, value fmt.Stringer) ([]byte, error) {
	if code == "" {
		return nil, fmt.Errorf("cannot encode %s: no wire code", value)
	}
	return json.Marshal(code)
}
