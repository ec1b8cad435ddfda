package notice

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Description carries the human-facing explanation for a notice code:
// what it means, which GTFS reference it comes from, and how a feed
// producer would typically fix it.
type Description struct {
	Text          string   `json:"description"`
	GTFSReference string   `json:"gtfsReference,omitempty"`
	AffectedFiles []string `json:"affectedFiles,omitempty"`
	ExampleFix    string   `json:"exampleFix,omitempty"`
}

// SeverityInfo documents what a severity level means for a feed producer.
type SeverityInfo struct {
	Level       string `json:"level"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
}

var severityDescriptions = map[SeverityLevel]SeverityInfo{
	ERROR: {
		Level:       "ERROR",
		Description: "Violates the GTFS specification",
		Urgency:     "Must fix before publishing the feed",
	},
	WARNING: {
		Level:       "WARNING",
		Description: "Data quality issue that may affect riders or consuming software",
		Urgency:     "Should fix to improve feed quality",
	},
	INFO: {
		Level:       "INFO",
		Description: "Best-practice observation, not a spec violation",
		Urgency:     "Consider fixing for a more complete feed",
	},
}

// GetSeverityInfo describes a severity level for display to a feed producer.
func GetSeverityInfo(severity SeverityLevel) SeverityInfo {
	if info, ok := severityDescriptions[severity]; ok {
		return info
	}
	return SeverityInfo{Level: severity.String(), Description: "Unrecognized severity level"}
}

// curatedDescriptions holds hand-written explanations for the notice codes
// most feed producers hit first. Codes not listed here still get a
// Description from Describe, synthesized from the code name itself.
var curatedDescriptions = map[string]Description{
	"missing_required_file": {
		Text:          "A required GTFS file is missing from the feed.",
		GTFSReference: "https://gtfs.org/schedule/reference/#dataset-files",
		AffectedFiles: []string{"agency.txt", "stops.txt", "routes.txt", "trips.txt", "stop_times.txt"},
		ExampleFix:    "Add the missing file with its required headers and at least one data row.",
	},
	"missing_required_field": {
		Text:          "A required field is missing from a GTFS file.",
		GTFSReference: "https://gtfs.org/schedule/reference/#field-definitions",
		ExampleFix:    "Add the missing column to the file header and provide a value for every row.",
	},
	"empty_file": {
		Text:          "A GTFS file is present but has no data rows.",
		GTFSReference: "https://gtfs.org/schedule/reference/#dataset-files",
		ExampleFix:    "Remove the file if it is not needed, or populate it with data rows.",
	},
	"invalid_date_format": {
		Text:          "A date field is not in GTFS's YYYYMMDD format.",
		GTFSReference: "https://gtfs.org/schedule/reference/#field-types",
		AffectedFiles: []string{"calendar.txt", "calendar_dates.txt", "feed_info.txt"},
		ExampleFix:    "Change '2026-12-25' to '20261225'.",
	},
	"invalid_time_format": {
		Text:          "A time field is not in GTFS's HH:MM:SS 24-hour format.",
		GTFSReference: "https://gtfs.org/schedule/reference/#field-types",
		AffectedFiles: []string{"stop_times.txt", "frequencies.txt"},
		ExampleFix:    "Change '2:30 PM' to '14:30:00'; use hours past 24 for next-day service, e.g. '25:30:00'.",
	},
	"invalid_coordinate": {
		Text:          "A coordinate is outside its valid range (latitude -90..90, longitude -180..180).",
		GTFSReference: "https://gtfs.org/schedule/reference/#stopstxt",
		AffectedFiles: []string{"stops.txt", "shapes.txt"},
		ExampleFix:    "Correct the coordinate, e.g. stop_lat=40.748817, stop_lon=-73.985428.",
	},
	"invalid_route_type": {
		Text:          "route_type is not a valid GTFS route type code.",
		GTFSReference: "https://gtfs.org/schedule/reference/#routestxt",
		AffectedFiles: []string{"routes.txt"},
		ExampleFix:    "Use a basic type (0-12) or an extended type (100-1702).",
	},
	"duplicate_key": {
		Text:       "A record's primary key is used by more than one row.",
		ExampleFix: "Ensure the identifying field is unique within the file.",
	},
	"missing_route_name": {
		Text:          "Both route_short_name and route_long_name are empty.",
		GTFSReference: "https://gtfs.org/schedule/reference/#routestxt",
		AffectedFiles: []string{"routes.txt"},
		ExampleFix:    "Provide at least one of route_short_name or route_long_name.",
	},
	"same_name_and_description": {
		Text:          "route_short_name and route_long_name are identical.",
		GTFSReference: "https://gtfs.org/schedule/reference/#routestxt",
		AffectedFiles: []string{"routes.txt"},
		ExampleFix:    "Give the long name more detail than the short name, or drop one of the two.",
	},
	"poor_color_contrast": {
		Text:          "route_color and route_text_color do not contrast enough to read clearly.",
		GTFSReference: "https://gtfs.org/schedule/reference/#routestxt",
		AffectedFiles: []string{"routes.txt"},
		ExampleFix:    "Pick a lighter/darker pairing, e.g. white text (FFFFFF) on a dark background.",
	},
	"generic_stop_name": {
		Text:       "A stop name is too generic to identify the stop (e.g. 'Stop 1').",
		ExampleFix: "Use a descriptive name such as 'Main St & 1st Ave'.",
	},
	"stop_name_missing_but_inherited": {
		Text:       "A stop has no stop_name and relies on its parent station's name.",
		ExampleFix: "Add an explicit stop_name even where it can inherit from parent_station.",
	},
	"foreign_key_violation": {
		Text:       "A field references an ID that does not exist in the table it points to.",
		ExampleFix: "Correct the reference, or add the missing row to the referenced file.",
	},
	"excessive_travel_speed": {
		Text:          "The implied speed between two stop_times is implausible for the route's mode.",
		GTFSReference: "https://gtfs.org/schedule/best-practices/#stop_timestxt",
		AffectedFiles: []string{"stop_times.txt"},
		ExampleFix:    "Check for a missing intermediate stop or a wrong arrival/departure time.",
	},
	"invalid_bikes_allowed": {
		Text:          "bikes_allowed is not 0, 1, or 2.",
		GTFSReference: "https://gtfs.org/schedule/reference/#tripstxt",
		AffectedFiles: []string{"trips.txt"},
		ExampleFix:    "Use 0 (no information), 1 (bikes allowed), or 2 (bikes not allowed).",
	},
	"attribution_without_role": {
		Text:          "An attribution has none of is_producer, is_operator, is_authority set.",
		GTFSReference: "https://gtfs.org/schedule/reference/#attributionstxt",
		AffectedFiles: []string{"attributions.txt"},
		ExampleFix:    "Set at least one role field to 1.",
	},
	"duplicate_stop_sequence": {
		Text:          "A trip has two stop_times rows with the same stop_sequence.",
		GTFSReference: "https://gtfs.org/schedule/reference/#stop_timestxt",
		AffectedFiles: []string{"stop_times.txt"},
		ExampleFix:    "Renumber stop_sequence so each row in the trip is unique.",
	},
	"invalid_frequency_time_range": {
		Text:          "A frequencies.txt row has start_time at or after end_time.",
		GTFSReference: "https://gtfs.org/schedule/reference/#frequenciestxt",
		AffectedFiles: []string{"frequencies.txt"},
		ExampleFix:    "Make sure start_time is strictly before end_time.",
	},
	"invalid_headway": {
		Text:          "headway_secs is zero or negative.",
		GTFSReference: "https://gtfs.org/schedule/reference/#frequenciestxt",
		AffectedFiles: []string{"frequencies.txt"},
		ExampleFix:    "Use a positive headway, e.g. 900 for 15 minutes.",
	},
	"overlapping_frequency": {
		Text:          "Two frequencies.txt periods for the same trip overlap in time.",
		GTFSReference: "https://gtfs.org/schedule/reference/#frequenciestxt",
		AffectedFiles: []string{"frequencies.txt"},
		ExampleFix:    "Adjust the periods so they don't share any time, e.g. 06:00-12:00 and 12:00-18:00.",
	},
	"invalid_transfer_type": {
		Text:          "transfer_type is not one of the four defined GTFS values.",
		GTFSReference: "https://gtfs.org/schedule/reference/#transferstxt",
		AffectedFiles: []string{"transfers.txt"},
		ExampleFix:    "Use 0 (recommended), 1 (timed), 2 (minimum time), or 3 (not possible).",
	},
	"expired_feed": {
		Text:          "The feed's last service date is in the past.",
		GTFSReference: "https://gtfs.org/schedule/reference/#feed_infotxt",
		AffectedFiles: []string{"feed_info.txt", "calendar.txt"},
		ExampleFix:    "Publish an updated feed with a later feed_end_date or service period.",
	},
	"isolated_stop": {
		Text:          "A stop is not served by any stop_times row, directly or through a parent station.",
		GTFSReference: "https://gtfs.org/schedule/reference/#stopstxt",
		AffectedFiles: []string{"stops.txt", "stop_times.txt"},
		ExampleFix:    "Serve the stop with a trip, or remove it if it is no longer in use.",
	},
	"invalid_pathway_mode": {
		Text:          "pathway_mode is not a valid GTFS pathway type code (1-7).",
		GTFSReference: "https://gtfs.org/schedule/reference/#pathwaystxt",
		AffectedFiles: []string{"pathways.txt"},
	},
	"unreasonable_level_index": {
		Text:          "level_index is far outside the range a real building would use.",
		GTFSReference: "https://gtfs.org/schedule/reference/#levelstxt",
		AffectedFiles: []string{"levels.txt"},
	},
	"invalid_fare_price": {
		Text:          "A fare price is negative or has more decimal precision than the currency supports.",
		GTFSReference: "https://gtfs.org/schedule/reference/#fare_attributestxt",
		AffectedFiles: []string{"fare_attributes.txt"},
	},
	"invalid_payment_method": {
		Text:          "payment_method is not 0 (on board) or 1 (before boarding).",
		GTFSReference: "https://gtfs.org/schedule/reference/#fare_attributestxt",
		AffectedFiles: []string{"fare_attributes.txt"},
	},
	"empty_fare_rule": {
		Text:       "A fare_rules.txt row has no qualifying condition (route, origin, destination, or contains).",
		AffectedFiles: []string{"fare_rules.txt"},
	},
	"suspicious_coordinate": {
		Text:       "A coordinate looks like a placeholder value, e.g. (0, 0).",
		AffectedFiles: []string{"stops.txt", "shapes.txt"},
	},
	"very_close_stops": {
		Text:       "Two stops are within a few meters of each other.",
		AffectedFiles: []string{"stops.txt"},
		ExampleFix: "Merge the duplicate or confirm the coordinates are both correct.",
	},
	"service_never_active": {
		Text:          "A calendar.txt service has every weekday column set to 0.",
		GTFSReference: "https://gtfs.org/schedule/reference/#calendartxt",
		AffectedFiles: []string{"calendar.txt"},
	},
	"unused_service": {
		Text:       "A service_id is defined but no trip references it.",
		AffectedFiles: []string{"calendar.txt", "trips.txt"},
	},
	"invalid_currency_code": {
		Text:          "currency_type is not a recognized ISO 4217 code.",
		GTFSReference: "https://gtfs.org/schedule/reference/#fare_attributestxt",
		AffectedFiles: []string{"fare_attributes.txt"},
	},
	"insufficient_coordinate_precision": {
		Text:       "A coordinate has fewer than the recommended decimal places.",
		ExampleFix: "Use at least 5-6 decimal places, e.g. 40.748817 instead of 40.75.",
	},
	"validator_error": {
		Text: "A rule failed to complete and recovered from a panic instead of crashing validation.",
	},
}

// Describe returns the curated description for a notice code, or a
// generated one if the code has not been curated. The generated form is
// produced from the code itself, the way the fallback below does: split
// on underscores and title-case each word, so every code still resolves
// to something readable for a consumer that hasn't added a curated entry.
func Describe(code string) Description {
	if d, ok := curatedDescriptions[code]; ok {
		return d
	}
	return Description{Text: titleCaseCode(code) + "."}
}

var titleCaser = cases.Title(language.English)

func titleCaseCode(code string) string {
	words := strings.Split(code, "_")
	for i, word := range words {
		words[i] = titleCaser.String(word)
	}
	return strings.Join(words, " ")
}
