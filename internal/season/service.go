package season

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-rewind/internal/fpl"
)

// Service is the read-only query surface over the on-disk season snapshots.
// Every request re-derives its result from the filesystem; there is no cache
// and no shared mutable state.
type Service struct {
	resolver *Resolver
	logger   *logrus.Logger
}

func NewService(resolver *Resolver, logger *logrus.Logger) *Service {
	return &Service{
		resolver: resolver,
		logger:   logger,
	}
}

// ListSeasons enumerates the seasons present under the data roots.
func (s *Service) ListSeasons() []string {
	return s.resolver.Seasons()
}

// ListPlayers returns the canonical player list for a season, one entry per
// identity in first-occurrence order. With a gameweek cutoff, each player
// carries cumulative points through that gameweek and the descriptive fields
// (name, position, price, team) come from rows of the exact requested
// gameweek only. An unlocatable or unreadable data file yields an empty
// list, never an error.
func (s *Service) ListPlayers(token string, gw *int) []fpl.Player {
	players := []fpl.Player{}

	path, ok := s.resolver.DataFile(token)
	if !ok {
		return players
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("failed to read season data file")
		return players
	}
	rows := ParseCSV(string(raw))

	var ledger *pointsLedger
	scope := rows
	if gw != nil {
		ledger = aggregatePoints(rows, *gw)
		scope = filterExactGameweek(rows, *gw)
	}

	seen := make(map[string]struct{}, len(scope))
	for _, row := range scope {
		name := resolveName(row)
		if name == "" {
			continue
		}
		identity := resolveIdentity(row)
		if _, dup := seen[identity]; dup {
			continue
		}
		seen[identity] = struct{}{}

		player := fpl.Player{
			ID:          identity,
			Name:        name,
			ElementType: resolvePosition(row),
			Price:       resolvePrice(row),
			Team:        resolveTeam(row),
		}
		if ledger != nil {
			pts := ledger.cumulative(identity, *gw)
			player.Points = &pts
		}
		players = append(players, player)
	}

	s.logger.WithFields(logrus.Fields{
		"season":  token,
		"path":    path,
		"players": len(players),
	}).Debug("resolved season players")
	return players
}

// filterExactGameweek keeps rows whose raw gameweek value equals gw. Player
// attributes are gameweek-specific snapshots, so they scope to the exact
// requested gameweek even though points are cumulative.
func filterExactGameweek(rows []Record, gw int) []Record {
	want := strconv.Itoa(gw)
	var out []Record
	for _, row := range rows {
		if pick(row, gameweekFields) == want {
			out = append(out, row)
		}
	}
	return out
}
