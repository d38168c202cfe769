package requests

import "time"

type AvailableLabTechsQuery struct {
	Department string `validate:"max=100"`
	TestType   string `validate:"max=100"`
}

// DateRange bounds are inclusive and apply to the completion time.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (d DateRange) IsEmpty() bool {
	return d.From == nil && d.To == nil
}
