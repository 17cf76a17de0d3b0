package season

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jstittsworth/fpl-rewind/internal/fpl"
)

// Field-candidate chains, evaluated in priority order. Each logical attribute
// has appeared under several column names across snapshot eras; the first
// non-empty candidate wins.
var (
	nameFields     = []string{"name", "web_name", "player_name", "second_name", "secondName"}
	positionFields = []string{"position", "element_type", "pos", "elementType"}
	priceFields    = []string{"value", "Value", "now_cost", "NowCost", "price", "Price", "cost", "Cost"}
	identityFields = []string{"element", "id", "code", "player_id", "PlayerID"}
	teamFields     = []string{"team", "Team", "club", "Club"}
	gameweekFields = []string{"GW", "gw", "gameweek", "Gameweek"}
	pointsFields   = []string{"total_points", "points", "TotalPoints", "Points"}

	fixtureFields  = []string{"fixture", "Fixture", "FixtureID", "FixtureId"}
	opponentFields = []string{"opponent_team", "opponent", "opp_team", "opposition"}
	venueFields    = []string{"was_home", "home_away", "venue"}
	kickoffFields  = []string{"kickoff_time", "kickoff"}
)

var positionByCode = map[string]fpl.Position{
	"1": fpl.PositionGK, "GK": fpl.PositionGK, "GKP": fpl.PositionGK, "GOALKEEPER": fpl.PositionGK,
	"2": fpl.PositionDEF, "DEF": fpl.PositionDEF, "DEFENDER": fpl.PositionDEF, "DEFENDERS": fpl.PositionDEF,
	"3": fpl.PositionMID, "MID": fpl.PositionMID, "MIDFIELDER": fpl.PositionMID, "MIDFIELDERS": fpl.PositionMID,
	"4": fpl.PositionFWD, "FWD": fpl.PositionFWD, "FW": fpl.PositionFWD, "FORWARD": fpl.PositionFWD,
	"FORWARDS": fpl.PositionFWD, "ST": fpl.PositionFWD,
}

// pick returns the first non-empty value among the candidate columns.
func pick(rec Record, fields []string) string {
	for _, f := range fields {
		if v := strings.TrimSpace(rec[f]); v != "" {
			return v
		}
	}
	return ""
}

func resolveName(rec Record) string {
	return pick(rec, nameFields)
}

// resolvePosition maps the many source encodings (numeric codes 1-4 and
// assorted spellings) onto a canonical position; nil means unknown.
func resolvePosition(rec Record) *fpl.Position {
	raw := strings.ToUpper(pick(rec, positionFields))
	if pos, ok := positionByCode[raw]; ok {
		return &pos
	}
	return nil
}

// resolvePrice parses the raw integer-tenths cost field into millions;
// nil when unparsable.
func resolvePrice(rec Record) *float64 {
	raw := pick(rec, priceFields)
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	price := n / 10
	return &price
}

// resolveIdentity derives the deduplication key for a row: an explicit id
// field when one exists, otherwise a slug of the resolved name, otherwise
// the literal "unknown".
func resolveIdentity(rec Record) string {
	if id := pick(rec, identityFields); id != "" {
		return id
	}
	name := resolveName(rec)
	if name == "" {
		return "unknown"
	}
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

func resolveTeam(rec Record) string {
	return pick(rec, teamFields)
}

func resolveGameweek(rec Record) (int, bool) {
	n, err := strconv.Atoi(pick(rec, gameweekFields))
	if err != nil {
		return 0, false
	}
	return n, true
}

func resolvePoints(rec Record) (int, bool) {
	n, err := strconv.Atoi(pick(rec, pointsFields))
	if err != nil {
		return 0, false
	}
	return n, true
}

// homeAway collapses the venue encodings into "H", "A" or "".
func homeAway(rec Record) string {
	switch strings.ToUpper(pick(rec, venueFields)) {
	case "H", "HOME", "TRUE", "1":
		return "H"
	case "A", "AWAY", "FALSE", "0":
		return "A"
	}
	return ""
}

// fixtureKey identifies the real-world fixture appearance a row describes, so
// redundant exports of the same appearance can be collapsed. Preference
// order: explicit fixture id, then opponent plus home/away, then kickoff date
// truncated to the day. ok=false when nothing identifying is present.
func fixtureKey(rec Record, gw int) (string, bool) {
	if fx := pick(rec, fixtureFields); fx != "" {
		return fmt.Sprintf("%d|FX:%s", gw, fx), true
	}
	opp := pick(rec, opponentFields)
	ha := homeAway(rec)
	if opp != "" || ha != "" {
		return fmt.Sprintf("%d|OPP:%s|%s", gw, opp, ha), true
	}
	if ko := pick(rec, kickoffFields); ko != "" {
		if len(ko) > 10 {
			ko = ko[:10]
		}
		return fmt.Sprintf("%d|KO:%s", gw, ko), true
	}
	return "", false
}
