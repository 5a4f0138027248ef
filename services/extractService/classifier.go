package extractService

import (
	"regexp"
	"strings"
)

// Column positions in the canonical export layout. Rows from alternate
// layouts may be shorter; cellAt returns "" past the end.
const (
	colDate = iota
	colStatus
	colLeague
	colMatch
	colBetType
	colMarket
	colSelection
	colPrice
	colWager
	colWinnings
	colPayout
	colResult
	colBetSlipID
	colPotentialPayout
)

// Rows with fewer cells than this carry too little to classify safely.
const minRowCells = 5

var betSlipIDRe = regexp.MustCompile(`^\d{19}$`)

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// IsDateLike reports whether the token parses as one of the known export
// date formats.
func IsDateLike(token string) bool {
	return ParseDate(token) != nil
}

// IsBetID reports whether the token is a sportsbook slip identifier, which
// the exports encode as exactly 19 decimal digits.
func IsBetID(token string) bool {
	return betSlipIDRe.MatchString(strings.TrimSpace(token))
}

func isParlayMarker(betType string) bool {
	if strings.EqualFold(betType, "MULTIPLE") {
		return true
	}
	return strings.Contains(strings.ToUpper(betType), "PARLAY")
}

// IsParlayHeader reports whether the row opens a multi-leg bet: a parlay
// marker in the bet-type cell and a date-like placement cell.
func IsParlayHeader(row []string) bool {
	if !isParlayMarker(cellAt(row, colBetType)) {
		return false
	}
	return IsDateLike(cellAt(row, colDate))
}

// IsSingleBet reports whether the row is a standalone wager: a non-parlay
// bet type, a date-like placement cell, and at least one of match/market
// populated so sparse noise rows are not mistaken for bets.
func IsSingleBet(row []string) bool {
	if isParlayMarker(cellAt(row, colBetType)) {
		return false
	}
	if !IsDateLike(cellAt(row, colDate)) {
		return false
	}
	return cellAt(row, colMatch) != "" || cellAt(row, colMarket) != ""
}

// IsLegContinuation reports whether the row continues the currently open
// parlay: no placement date, but leg content in status/league/match.
func IsLegContinuation(row []string) bool {
	if cellAt(row, colDate) != "" {
		return false
	}
	return cellAt(row, colStatus) != "" || cellAt(row, colLeague) != "" || cellAt(row, colMatch) != ""
}

// FindBetSlipID returns the explicit slip id on the row, preferring the
// dedicated column but accepting one anywhere, since some layouts shift it.
func FindBetSlipID(row []string) (string, bool) {
	if id := cellAt(row, colBetSlipID); IsBetID(id) {
		return id, true
	}
	for _, c := range row {
		c = strings.TrimSpace(c)
		if IsBetID(c) {
			return c, true
		}
	}
	return "", false
}
