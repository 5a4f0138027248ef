package extractService

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"betSheetImporter/models"
)

// Extraction is the structured batch one upload produces: the assembled
// records plus the aggregates derived alongside them.
type Extraction struct {
	SingleBets    []models.SingleBet
	ParlayHeaders []models.ParlayHeader
	ParlayLegs    []models.ParlayLeg
	TeamStats     []models.TeamStat
	PlayerStats   []models.PlayerStat
	PropStats     []models.PropStat
}

type assemblerState int

const (
	stateScanning assemblerState = iota
	stateParlayOpen
)

type assembler struct {
	userID string
	out    *Extraction
	stats  *statsBuilder

	state         assemblerState
	currentSlipID string
	legCounter    int
}

// AssembleRecords walks normalized rows in order and assembles single bets,
// parlay headers, and parlay legs, building aggregates as records land.
// Rows that classify as nothing are skipped; this function never fails.
func AssembleRecords(userID string, rows [][]string) *Extraction {
	a := &assembler{
		userID: userID,
		out:    &Extraction{},
		stats:  newStatsBuilder(userID),
	}

	for _, row := range rows {
		a.consume(row)
	}

	a.out.TeamStats, a.out.PlayerStats, a.out.PropStats = a.stats.build()
	return a.out
}

func (a *assembler) consume(row []string) {
	if !meaningfulRow(row) {
		return
	}

	switch {
	case IsParlayHeader(row):
		a.openParlay(row)
	case IsSingleBet(row):
		a.closeParlay()
		a.addSingleBet(row)
	case a.state == stateParlayOpen && IsLegContinuation(row):
		a.addParlayLeg(row)
	default:
		// separator or noise row between records
	}
}

// meaningfulRow filters rows too thin to classify: fewer than five cells,
// or nothing but blanks.
func meaningfulRow(row []string) bool {
	if len(row) < minRowCells {
		return false
	}
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}

func (a *assembler) openParlay(row []string) {
	slipID, found := FindBetSlipID(row)
	if !found {
		slipID = syntheticSlipID()
	}

	match := cellAt(row, colMatch)
	potential := ParseAmount(cellAt(row, colPotentialPayout))
	if potential == nil {
		potential = ParseAmount(cellAt(row, colPayout))
	}

	header := models.ParlayHeader{
		UserID:          a.userID,
		PlacedAt:        ParseDate(cellAt(row, colDate)),
		Status:          cellAt(row, colStatus),
		League:          cellAt(row, colLeague),
		Match:           match,
		BetType:         cellAt(row, colBetType),
		Market:          cellAt(row, colMarket),
		Selection:       cellAt(row, colSelection),
		Price:           ParseAmount(cellAt(row, colPrice)),
		Wager:           ParseAmount(cellAt(row, colWager)),
		Winnings:        ParseAmount(cellAt(row, colWinnings)),
		Payout:          ParseAmount(cellAt(row, colPayout)),
		PotentialPayout: potential,
		Result:          cellAt(row, colResult),
		BetSlipID:       slipID,
	}
	a.out.ParlayHeaders = append(a.out.ParlayHeaders, header)

	a.currentSlipID = slipID
	a.legCounter = 0
	a.state = stateParlayOpen

	if n := expectedLegCount(match); n > 1 {
		log.Printf("Extract: parlay %s lists about %d legs", slipID, n)
	}
}

func (a *assembler) closeParlay() {
	if a.state != stateParlayOpen {
		return
	}
	a.state = stateScanning
	a.currentSlipID = ""
	a.legCounter = 0
}

func (a *assembler) addSingleBet(row []string) {
	slipID, found := FindBetSlipID(row)
	if !found {
		slipID = syntheticSlipID()
	}

	bet := models.SingleBet{
		UserID:    a.userID,
		PlacedAt:  ParseDate(cellAt(row, colDate)),
		Status:    cellAt(row, colStatus),
		League:    cellAt(row, colLeague),
		Match:     cellAt(row, colMatch),
		BetType:   cellAt(row, colBetType),
		Market:    cellAt(row, colMarket),
		Selection: cellAt(row, colSelection),
		Price:     ParseAmount(cellAt(row, colPrice)),
		Wager:     ParseAmount(cellAt(row, colWager)),
		Winnings:  ParseAmount(cellAt(row, colWinnings)),
		Payout:    ParseAmount(cellAt(row, colPayout)),
		Result:    cellAt(row, colResult),
		BetSlipID: slipID,
	}
	a.out.SingleBets = append(a.out.SingleBets, bet)
	a.stats.observe(bet.Match, bet.Market, bet.League, outcomeText(bet.Result, bet.Status))
}

func (a *assembler) addParlayLeg(row []string) {
	a.legCounter++

	// Alternate layouts shift leg cells left by one, so fall back to the
	// neighbouring column when the primary cell is blank.
	market := cellAt(row, colMarket)
	if market == "" {
		market = cellAt(row, colBetType)
	}
	selection := cellAt(row, colSelection)
	if selection == "" {
		selection = cellAt(row, colMarket)
	}
	price := ParseAmount(cellAt(row, colPrice))
	if price == nil {
		price = ParseAmount(cellAt(row, colSelection))
	}

	leg := models.ParlayLeg{
		UserID:    a.userID,
		BetSlipID: a.currentSlipID,
		LegNumber: a.legCounter,
		Status:    cellAt(row, colStatus),
		League:    cellAt(row, colLeague),
		Match:     cellAt(row, colMatch),
		Market:    market,
		Selection: selection,
		Price:     price,
		GameDate:  legGameDate(row),
	}
	a.out.ParlayLegs = append(a.out.ParlayLegs, leg)
	a.stats.observe(leg.Match, leg.Market, leg.League, leg.Status)
}

// legGameDate finds a game date in the trailing cells of a leg row; some
// layouts carry it after the price, others not at all.
func legGameDate(row []string) *time.Time {
	for i := colPrice; i < len(row); i++ {
		if d := ParseDate(cellAt(row, i)); d != nil {
			return d
		}
	}
	return nil
}

func outcomeText(result, status string) string {
	if strings.TrimSpace(result) != "" {
		return result
	}
	return status
}

// expectedLegCount estimates the leg count from the comma-separated header
// match description. Diagnostic only: leg accumulation stops at the next
// header or single-bet row, not at this count.
func expectedLegCount(match string) int {
	if strings.TrimSpace(match) == "" {
		return 0
	}
	return strings.Count(match, ",") + 1
}

func syntheticSlipID() string {
	return fmt.Sprintf("synthetic-%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}
