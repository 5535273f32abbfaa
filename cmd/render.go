package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/UnknownOlympus/mapquest/geocoding"
	"github.com/UnknownOlympus/mapquest/models"
	"github.com/olekukonko/tablewriter"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
)

var locationHeader = []string{
	"#", "Street", "Neighborhood", "City", "County", "State", "Country",
	"Type", "Side", "Lat", "Lng", "Quality", "Link",
}

// renderGroup is one result group reduced to what the renderers need.
type renderGroup struct {
	provided  string
	locations []models.Location
}

func render(out io.Writer, format string, info models.Info, groups []renderGroup, payload any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case formatTable:
		renderTable(out, info, groups)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderTable(out io.Writer, info models.Info, groups []renderGroup) {
	fmt.Fprintf(out, "status: %d\n", info.StatusCode)
	for _, msg := range info.Messages {
		fmt.Fprintf(out, "message: %s\n", msg)
	}

	for _, group := range groups {
		fmt.Fprintf(out, "provided location: %s\n", group.provided)
		if len(group.locations) == 0 {
			fmt.Fprintln(out, "no candidates")
			continue
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader(locationHeader)
		table.SetAutoWrapText(false)
		for idx, loc := range group.locations {
			table.Append([]string{
				strconv.Itoa(idx + 1),
				loc.Street,
				loc.AdminArea6,
				loc.AdminArea5,
				loc.AdminArea4,
				loc.AdminArea3,
				loc.AdminArea1,
				loc.Type.String(),
				loc.SideOfStreet.String(),
				strconv.FormatFloat(float64(loc.DisplayLatLng.Lat), 'f', -1, 32),
				strconv.FormatFloat(float64(loc.DisplayLatLng.Lng), 'f', -1, 32),
				loc.GeocodeQualityCode + " " + loc.GeocodeQuality,
				loc.LinkID,
			})
		}
		table.Render()
	}
}

func geocodeGroups(resp *models.GeocodeResponse) []renderGroup {
	groups := make([]renderGroup, 0, len(resp.Results))
	for _, result := range resp.Results {
		groups = append(groups, renderGroup{provided: result.ProvidedLocation.Location, locations: result.Locations})
	}
	return groups
}

func reverseGroups(resp *models.ReverseGeocodeResponse) []renderGroup {
	groups := make([]renderGroup, 0, len(resp.Results))
	for _, result := range resp.Results {
		provided := geocoding.FormatLatLng(result.ProvidedLocation.Lat, result.ProvidedLocation.Lng)
		groups = append(groups, renderGroup{provided: provided, locations: result.Locations})
	}
	return groups
}
