package season

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fpl-rewind/internal/fpl"
)

func newTestService(roots ...string) *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(NewResolver(roots, logger), logger)
}

func intPtr(v int) *int { return &v }

const sampleCSV = "name,position,value,GW,total_points,fixture\n" +
	"Alice,GK,50,1,6,100\n" +
	"Alice,GK,50,2,2,101\n"

func TestListPlayersCumulativePoints(t *testing.T) {
	root := t.TempDir()
	writeDataFile(t, filepath.Join(root, "seasons", "2024-2025", "gws", "merged_gw.csv"), sampleCSV)

	svc := newTestService(root)
	players := svc.ListPlayers("2024-25", intPtr(2))

	require.Len(t, players, 1)
	p := players[0]
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, "alice", p.ID)
	require.NotNil(t, p.ElementType)
	assert.Equal(t, fpl.PositionGK, *p.ElementType)
	require.NotNil(t, p.Price)
	assert.Equal(t, 5.0, *p.Price)
	require.NotNil(t, p.Points)
	assert.Equal(t, 8, *p.Points)
}

func TestListPlayersMissingSeasonIsEmpty(t *testing.T) {
	svc := newTestService(t.TempDir())

	players := svc.ListPlayers("2015-16", intPtr(5))

	assert.NotNil(t, players)
	assert.Empty(t, players)
}

func TestListPlayersNoGameweekOmitsPoints(t *testing.T) {
	root := t.TempDir()
	writeDataFile(t, filepath.Join(root, "seasons", "2024-2025", "gws", "merged_gw.csv"), sampleCSV)

	svc := newTestService(root)
	players := svc.ListPlayers("2024-2025", nil)

	require.Len(t, players, 1)
	assert.Nil(t, players[0].Points)
}

func TestListPlayersAttributesScopedToRequestedGameweek(t *testing.T) {
	csv := "name,position,value,GW,total_points,fixture\n" +
		"Alice,GK,50,1,6,100\n" +
		"Alice,GK,55,2,2,101\n"
	root := t.TempDir()
	writeDataFile(t, filepath.Join(root, "seasons", "2024-2025", "gws", "merged_gw.csv"), csv)

	svc := newTestService(root)
	players := svc.ListPlayers("2024-2025", intPtr(2))

	require.Len(t, players, 1)
	require.NotNil(t, players[0].Price)
	// Price reflects the requested gameweek while points stay cumulative.
	assert.Equal(t, 5.5, *players[0].Price)
	require.NotNil(t, players[0].Points)
	assert.Equal(t, 8, *players[0].Points)
}

func TestListPlayersDropsNamelessRows(t *testing.T) {
	csv := "name,position,value,GW,total_points\n" +
		",GK,50,1,6\n" +
		"Alice,GK,50,1,6\n"
	root := t.TempDir()
	writeDataFile(t, filepath.Join(root, "seasons", "2024-2025", "gws", "merged_gw.csv"), csv)

	svc := newTestService(root)
	players := svc.ListPlayers("2024-2025", intPtr(1))

	require.Len(t, players, 1)
	assert.Equal(t, "Alice", players[0].Name)
}

func TestListPlayersDeduplicatesByIdentity(t *testing.T) {
	csv := "name,element,position,value,GW,total_points,fixture\n" +
		"Alice,7,GK,50,1,6,100\n" +
		"Alice,7,GK,50,1,6,100\n" +
		"Bob,8,DEF,45,1,2,100\n"
	root := t.TempDir()
	writeDataFile(t, filepath.Join(root, "seasons", "2024-2025", "gws", "merged_gw.csv"), csv)

	svc := newTestService(root)
	players := svc.ListPlayers("2024-2025", intPtr(1))

	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, "Bob", players[1].Name)
	require.NotNil(t, players[0].Points)
	assert.Equal(t, 6, *players[0].Points)
}

func TestListPlayersIdempotent(t *testing.T) {
	root := t.TempDir()
	writeDataFile(t, filepath.Join(root, "seasons", "2024-2025", "gws", "merged_gw.csv"), sampleCSV)

	svc := newTestService(root)
	first := svc.ListPlayers("2024-2025", intPtr(2))
	second := svc.ListPlayers("2024-2025", intPtr(2))

	assert.Equal(t, first, second)
}

func TestListSeasons(t *testing.T) {
	root := t.TempDir()
	writeDataFile(t, filepath.Join(root, "seasons", "2024-2025", "gws", "merged_gw.csv"), sampleCSV)
	writeDataFile(t, filepath.Join(root, "2019-20", "gw", "merged_gw.csv"), sampleCSV)

	svc := newTestService(root)

	assert.Equal(t, []string{"2019-20", "2024-2025"}, svc.ListSeasons())
}
