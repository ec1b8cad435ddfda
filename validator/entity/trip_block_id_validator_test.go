package entity

import (
	"testing"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/testutil"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/validator"
)

func TestTripBlockIdValidator_Validate(t *testing.T) {
	tests := []struct {
		name         string
		files        map[string]string
		expectedCode []string
		notExpected  []string
	}{
		{
			name: "valid block with consistent service",
			files: map[string]string{
				"trips.txt": `trip_id,route_id,service_id,block_id
trip_1,route_1,service_1,block_1
trip_2,route_1,service_1,block_1`,
			},
			expectedCode: []string{},
			notExpected:  []string{"block_service_mismatch", "single_trip_block"},
		},
		{
			name: "block with service mismatch",
			files: map[string]string{
				"trips.txt": `trip_id,route_id,service_id,block_id
trip_1,route_1,service_1,block_1
trip_2,route_1,service_2,block_1`,
			},
			expectedCode: []string{"block_service_mismatch"},
			notExpected:  []string{},
		},
		{
			name: "single trip in block",
			files: map[string]string{
				"trips.txt": `trip_id,route_id,service_id,block_id
trip_1,route_1,service_1,block_1
trip_2,route_1,service_1,block_2`,
			},
			expectedCode: []string{"single_trip_block"},
			notExpected:  []string{"block_service_mismatch"},
		},
		{
			name: "block with multiple routes",
			files: map[string]string{
				"trips.txt": `trip_id,route_id,service_id,block_id
trip_1,route_1,service_1,block_1
trip_2,route_2,service_1,block_1
trip_3,route_3,service_1,block_1`,
			},
			expectedCode: []string{"block_multiple_routes"},
			notExpected:  []string{"block_service_mismatch"},
		},
		{
			name: "block with too many trips",
			files: map[string]string{
				"trips.txt": `trip_id,route_id,service_id,block_id
trip_1,route_1,service_1,block_1
trip_2,route_1,service_1,block_1
trip_3,route_1,service_1,block_1
trip_4,route_1,service_1,block_1
trip_5,route_1,service_1,block_1
trip_6,route_1,service_1,block_1
trip_7,route_1,service_1,block_1
trip_8,route_1,service_1,block_1
trip_9,route_1,service_1,block_1
trip_10,route_1,service_1,block_1
trip_11,route_1,service_1,block_1
trip_12,route_1,service_1,block_1
trip_13,route_1,service_1,block_1
trip_14,route_1,service_1,block_1
trip_15,route_1,service_1,block_1
trip_16,route_1,service_1,block_1
trip_17,route_1,service_1,block_1
trip_18,route_1,service_1,block_1
trip_19,route_1,service_1,block_1
trip_20,route_1,service_1,block_1
trip_21,route_1,service_1,block_1`,
			},
			expectedCode: []string{"block_too_many_trips"},
			notExpected:  []string{"block_service_mismatch"},
		},
		{
			name: "trips without blocks",
			files: map[string]string{
				"trips.txt": `trip_id,route_id,service_id,block_id
trip_1,route_1,service_1,
trip_2,route_1,service_1,`,
			},
			expectedCode: []string{},
			notExpected:  []string{"single_trip_block", "block_service_mismatch"},
		},
		{
			name: "empty trips file",
			files: map[string]string{
				"trips.txt": `trip_id,route_id,service_id,block_id`,
			},
			expectedCode: []string{},
			notExpected:  []string{"single_trip_block", "block_service_mismatch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := testutil.CreateTestFeedLoader(t, tt.files)
			container := notice.NewNoticeContainer()
			v := NewTripBlockIdValidator()
			config := validator.Config{}

			v.Validate(loader, container, config)

			notices := container.GetNotices()
			noticeMap := make(map[string]bool)
			for _, n := range notices {
				noticeMap[n.Code()] = true
			}

			for _, code := range tt.expectedCode {
				if !noticeMap[code] {
					t.Errorf("Expected notice with code %s, but not found", code)
				}
			}

			for _, code := range tt.notExpected {
				if noticeMap[code] {
					t.Errorf("Did not expect notice with code %s, but found it", code)
				}
			}
		})
	}
}

func TestTripBlockIdValidator_ParseTrip(t *testing.T) {
	v := &TripBlockIdValidator{}

	tests := []struct {
		name     string
		row      *parser.CSVRow
		expected *TripBlockInfo
	}{
		{
			name: "valid trip with block",
			row: &parser.CSVRow{
				Values: map[string]string{
					"trip_id":    "trip_1",
					"route_id":   "route_1",
					"service_id": "service_1",
					"block_id":   "block_1",
				},
				RowNumber: 2,
			},
			expected: &TripBlockInfo{
				TripID:    "trip_1",
				RouteID:   "route_1",
				ServiceID: "service_1",
				BlockID:   "block_1",
				RowNumber: 2,
			},
		},
		{
			name: "valid trip without block",
			row: &parser.CSVRow{
				Values: map[string]string{
					"trip_id":    "trip_1",
					"route_id":   "route_1",
					"service_id": "service_1",
				},
				RowNumber: 2,
			},
			expected: &TripBlockInfo{
				TripID:    "trip_1",
				RouteID:   "route_1",
				ServiceID: "service_1",
				BlockID:   "",
				RowNumber: 2,
			},
		},
		{
			name: "trip with whitespace",
			row: &parser.CSVRow{
				Values: map[string]string{
					"trip_id":    "  trip_1  ",
					"route_id":   "  route_1  ",
					"service_id": " service_1 ",
					"block_id":   " block_1 ",
				},
				RowNumber: 2,
			},
			expected: &TripBlockInfo{
				TripID:    "trip_1",
				RouteID:   "route_1",
				ServiceID: "service_1",
				BlockID:   "block_1",
				RowNumber: 2,
			},
		},
		{
			name: "missing required field",
			row: &parser.CSVRow{
				Values: map[string]string{
					"trip_id":  "trip_1",
					"route_id": "route_1",
				},
				RowNumber: 2,
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.parseTrip(tt.row)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("Expected nil, got %+v", result)
				}
				return
			}

			if result == nil {
				t.Errorf("Expected %+v, got nil", tt.expected)
				return
			}

			if result.TripID != tt.expected.TripID ||
				result.RouteID != tt.expected.RouteID ||
				result.ServiceID != tt.expected.ServiceID ||
				result.BlockID != tt.expected.BlockID ||
				result.RowNumber != tt.expected.RowNumber {
				t.Errorf("Expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}
