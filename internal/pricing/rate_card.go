package pricing

import (
	"time"

	"workx.com/workx/internal/constants"
)

// Rate is one row of the display rate card. The admin sets the
// authoritative price on each task; this table is estimation only.
type Rate struct {
	Base float64 `json:"base"`
	Fee  float64 `json:"fee"`
	Unit string  `json:"unit"`
}

var rateCard = map[string]Rate{
	"Blue Book":      {Base: 15, Fee: 2, Unit: "page"},
	"Observation":    {Base: 17, Fee: 2, Unit: "page"},
	"Record-Ruled":   {Base: 20, Fee: 2, Unit: "page"},
	"Record-Unruled": {Base: 15, Fee: 2, Unit: "page"},
	"PPT":            {Base: 60, Fee: 7, Unit: "10 slides"},
	"Word Doc":       {Base: 50, Fee: 6, Unit: "doc"},
	"Report":         {Base: 100, Fee: 12, Unit: "doc"},
}

func RateCard() map[string]Rate {
	out := make(map[string]Rate, len(rateCard))
	for k, v := range rateCard {
		out[k] = v
	}
	return out
}

func ValidWorkType(workType string) bool {
	_, ok := rateCard[workType]
	return ok
}

// MaterialCost applies only when the platform buys the material.
func MaterialCost(workType string, option constants.MaterialOption) float64 {
	if option != constants.MaterialBuy {
		return 0
	}
	switch workType {
	case "Blue Book":
		return 20
	case "Record-Ruled", "Record-Unruled":
		return 90
	}
	return 0
}

const sameDayRate = 0.25

const dateLayout = "2006-01-02"

// SameDay reports whether deadlineDate falls on today and the
// fractional surcharge that applies if it does.
func SameDay(deadlineDate string, today time.Time) (bool, float64) {
	if deadlineDate != today.Format(dateLayout) {
		return false, 0
	}
	return true, sameDayRate
}
