package extractService

import "time"

// SanitizeDates nils any date field that is not a valid date so the batch
// handed to storage never carries an unusable sentinel value.
func SanitizeDates(ex *Extraction) {
	for i := range ex.SingleBets {
		ex.SingleBets[i].PlacedAt = validOrNil(ex.SingleBets[i].PlacedAt)
	}
	for i := range ex.ParlayHeaders {
		ex.ParlayHeaders[i].PlacedAt = validOrNil(ex.ParlayHeaders[i].PlacedAt)
	}
	for i := range ex.ParlayLegs {
		ex.ParlayLegs[i].GameDate = validOrNil(ex.ParlayLegs[i].GameDate)
	}
}

func validOrNil(t *time.Time) *time.Time {
	if !IsValidDate(t) {
		return nil
	}
	return t
}
