package schema

import "github.com/transitdata/gtfsvalidate/types"

// CalendarDate represents service exceptions from calendar_dates.txt
type CalendarDate struct {
	ServiceID     string             `csv:"service_id"`
	Date          string             `csv:"date"`
	ExceptionType types.ExceptionType `csv:"exception_type"`
}
