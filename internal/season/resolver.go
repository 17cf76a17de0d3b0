package season

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
)

var (
	longSeasonPattern  = regexp.MustCompile(`^(\d{4})[-/](\d{4})$`)
	shortSeasonPattern = regexp.MustCompile(`^(\d{4})[-/](\d{2})$`)
	seasonDirPattern   = regexp.MustCompile(`^\d{4}-(\d{2}|\d{4})$`)
	mergedGWPattern    = regexp.MustCompile(`(?i)merged_gw.*\.csv$`)
)

// NormalizeSeason expands a user-supplied season token into its long
// ("2024-2025") and short ("2024-25") canonical forms. On-disk layouts use
// either form interchangeably. Tokens matching neither pattern come back
// unchanged in both positions.
func NormalizeSeason(token string) (long, short string) {
	if m := longSeasonPattern.FindStringSubmatch(token); m != nil {
		return m[1] + "-" + m[2], m[1] + "-" + m[2][2:]
	}
	if m := shortSeasonPattern.FindStringSubmatch(token); m != nil {
		yy, _ := strconv.Atoi(m[2])
		return m[1] + "-" + strconv.Itoa(yy+2000), m[1] + "-" + m[2]
	}
	return token, token
}

// Resolver locates season data files under one or more data roots. It knows
// the historical directory conventions the snapshot archives have used and
// falls back to a recursive search when none of them match.
type Resolver struct {
	roots  []string
	logger *logrus.Logger
}

func NewResolver(roots []string, logger *logrus.Logger) *Resolver {
	if len(roots) == 0 {
		roots = []string{"data"}
	}
	return &Resolver{
		roots:  roots,
		logger: logger,
	}
}

// layoutCandidates lists the known merged-gameweek file locations for one
// season directory name, relative to a data root, in probe order.
func layoutCandidates(season string) []string {
	return []string{
		filepath.Join("seasons", season, "gws", "merged_gw.csv"),
		filepath.Join("seasons", season, "gw", "merged_gw.csv"),
		filepath.Join("seasons", season, "gws", "merged_gw", "merged_gw.csv"),
		filepath.Join(season, "gws", "merged_gw.csv"),
		filepath.Join(season, "gw", "merged_gw.csv"),
		filepath.Join(season, "gws", "merged_gw", "merged_gw.csv"),
	}
}

// DataFile resolves a season token to the path of its merged gameweek CSV.
// Long-form candidates are probed before short-form ones. When no known
// layout matches it recursively searches the season-rooted directories for
// any merged_gw*.csv and returns the lexicographically first match. A miss
// reports ok=false; it is never an error.
func (r *Resolver) DataFile(token string) (string, bool) {
	long, short := NormalizeSeason(token)
	forms := []string{long}
	if short != long {
		forms = append(forms, short)
	}

	for _, form := range forms {
		for _, root := range r.roots {
			for _, rel := range layoutCandidates(form) {
				candidate := filepath.Join(root, rel)
				if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
					return candidate, true
				}
			}
		}
	}

	var found []string
	for _, form := range forms {
		for _, root := range r.roots {
			found = append(found, findMergedCSVs(filepath.Join(root, "seasons", form))...)
			found = append(found, findMergedCSVs(filepath.Join(root, form))...)
		}
	}
	if len(found) == 0 {
		r.logger.WithField("season", token).Debug("no merged gameweek file found")
		return "", false
	}
	sort.Strings(found)
	return found[0], true
}

// findMergedCSVs walks dir collecting files named like merged_gw*.csv.
// Unreadable directories are skipped rather than aborting the walk.
func findMergedCSVs(dir string) []string {
	var out []string
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && mergedGWPattern.MatchString(d.Name()) {
			out = append(out, path)
		}
		return nil
	})
	return out
}

// Seasons enumerates season-named subdirectories across all data roots,
// looking both directly under each root and under its seasons/ segment.
// The result is deduplicated and sorted; absent roots yield an empty list.
func (r *Resolver) Seasons() []string {
	set := make(map[string]struct{})
	for _, root := range r.roots {
		for _, dir := range []string{root, filepath.Join(root, "seasons")} {
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() && seasonDirPattern.MatchString(entry.Name()) {
					set[entry.Name()] = struct{}{}
				}
			}
		}
	}

	seasons := make([]string, 0, len(set))
	for s := range set {
		seasons = append(seasons, s)
	}
	sort.Strings(seasons)
	return seasons
}
