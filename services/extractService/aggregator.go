package extractService

import (
	"encoding/json"
	"log"
	"strings"

	"gorm.io/datatypes"

	"betSheetImporter/models"
)

// statsBuilder accumulates team/player/prop counters for one extraction run.
// All state is local to the run; nothing is merged across uploads here.
type statsBuilder struct {
	userID string

	teams     map[string]*models.TeamStat
	teamOrder []string

	players     map[string]*models.PlayerStat
	playerOrder []string
	propSeen    map[string]map[string]bool
	propLists   map[string][]string

	props     map[string]*models.PropStat
	propOrder []string
}

func newStatsBuilder(userID string) *statsBuilder {
	return &statsBuilder{
		userID:    userID,
		teams:     make(map[string]*models.TeamStat),
		players:   make(map[string]*models.PlayerStat),
		propSeen:  make(map[string]map[string]bool),
		propLists: make(map[string][]string),
		props:     make(map[string]*models.PropStat),
	}
}

// SplitTeams splits a match description into its participant team names.
// "Lakers vs Celtics" and "Lakers @ Celtics" both yield two teams; a
// description with no separator is treated as a single participant.
func SplitTeams(match string) []string {
	m := strings.TrimSpace(match)
	if m == "" {
		return nil
	}

	parts := strings.Split(m, " vs ")
	if len(parts) == 1 {
		parts = strings.Split(m, " @ ")
	}

	var teams []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			teams = append(teams, t)
		}
	}
	return teams
}

// ExtractPlayerAndProp splits a market label like "LeBron James - Points"
// into the player name and prop-type label. Both are empty when the market
// carries no " - " separator.
func ExtractPlayerAndProp(market string) (string, string) {
	m := strings.TrimSpace(market)
	idx := strings.Index(m, " - ")
	if idx < 0 {
		return "", ""
	}
	return strings.TrimSpace(m[:idx]), strings.TrimSpace(m[idx+3:])
}

// bumpOutcome increments exactly one outcome counter for the given result
// text. Anything that is not a win, loss, or push counts as pending.
func bumpOutcome(outcome string, wins, losses, pushes, pending *int) {
	o := strings.ToLower(outcome)
	switch {
	case strings.Contains(o, "win") || strings.Contains(o, "won"):
		*wins++
	case strings.Contains(o, "los"):
		*losses++
	case strings.Contains(o, "push"):
		*pushes++
	default:
		*pending++
	}
}

// observe feeds one assembled bet or leg into the aggregates.
func (b *statsBuilder) observe(match, market, league, outcome string) {
	for _, team := range SplitTeams(match) {
		b.observeTeam(team, league, outcome)
	}

	player, propType := ExtractPlayerAndProp(market)
	if player != "" {
		b.observePlayer(player, propType, outcome)
	}
	if propType != "" {
		b.observeProp(propType, outcome)
	}
}

func (b *statsBuilder) observeTeam(team, league, outcome string) {
	s, ok := b.teams[team]
	if !ok {
		s = &models.TeamStat{UserID: b.userID, Team: team}
		b.teams[team] = s
		b.teamOrder = append(b.teamOrder, team)
	}
	if league != "" {
		s.League = league
	}
	s.TotalBets++
	bumpOutcome(outcome, &s.Wins, &s.Losses, &s.Pushes, &s.Pending)
}

func (b *statsBuilder) observePlayer(player, propType, outcome string) {
	s, ok := b.players[player]
	if !ok {
		s = &models.PlayerStat{UserID: b.userID, Player: player}
		b.players[player] = s
		b.playerOrder = append(b.playerOrder, player)
		b.propSeen[player] = make(map[string]bool)
	}
	s.TotalBets++
	bumpOutcome(outcome, &s.Wins, &s.Losses, &s.Pushes, &s.Pending)

	if propType != "" && !b.propSeen[player][propType] {
		b.propSeen[player][propType] = true
		b.propLists[player] = append(b.propLists[player], propType)
	}
}

func (b *statsBuilder) observeProp(propType, outcome string) {
	s, ok := b.props[propType]
	if !ok {
		s = &models.PropStat{UserID: b.userID, PropType: propType}
		b.props[propType] = s
		b.propOrder = append(b.propOrder, propType)
	}
	s.TotalBets++
	bumpOutcome(outcome, &s.Wins, &s.Losses, &s.Pushes, &s.Pending)
}

// RebuildStats re-derives the aggregate rows from already-persisted records,
// applying the same counter rules the assembler uses during extraction.
func RebuildStats(userID string, bets []models.SingleBet, legs []models.ParlayLeg) ([]models.TeamStat, []models.PlayerStat, []models.PropStat) {
	b := newStatsBuilder(userID)
	for _, bet := range bets {
		b.observe(bet.Match, bet.Market, bet.League, outcomeText(bet.Result, bet.Status))
	}
	for _, leg := range legs {
		b.observe(leg.Match, leg.Market, leg.League, leg.Status)
	}
	return b.build()
}

// build snapshots the accumulated counters as model rows in first-seen order.
func (b *statsBuilder) build() ([]models.TeamStat, []models.PlayerStat, []models.PropStat) {
	teams := make([]models.TeamStat, 0, len(b.teamOrder))
	for _, k := range b.teamOrder {
		teams = append(teams, *b.teams[k])
	}

	players := make([]models.PlayerStat, 0, len(b.playerOrder))
	for _, k := range b.playerOrder {
		s := *b.players[k]
		if list := b.propLists[k]; len(list) > 0 {
			raw, err := json.Marshal(list)
			if err != nil {
				log.Printf("Extract: error encoding prop types for %s: %v", k, err)
			} else {
				s.PropTypes = datatypes.JSON(raw)
			}
		}
		players = append(players, s)
	}

	props := make([]models.PropStat, 0, len(b.propOrder))
	for _, k := range b.propOrder {
		props = append(props, *b.props[k])
	}
	return teams, players, props
}
