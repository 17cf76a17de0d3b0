package season

// pointsLedger accumulates per-identity scoring through a gameweek cutoff.
// Rows whose fixture can be identified are summed per distinct fixture, which
// keeps both legs of a double gameweek while dropping duplicate exports of
// the same appearance. Rows with no derivable fixture key fall back to a
// per-gameweek maximum: summing unidentifiable rows would let duplicate
// exports inflate totals, so the conservative side is chosen.
type pointsLedger struct {
	sums map[string]map[int]int
	maxs map[string]map[int]int
	seen map[string]map[int]map[string]struct{}
}

func newPointsLedger() *pointsLedger {
	return &pointsLedger{
		sums: make(map[string]map[int]int),
		maxs: make(map[string]map[int]int),
		seen: make(map[string]map[int]map[string]struct{}),
	}
}

// aggregatePoints scans rows with gameweek <= cutoff and a parseable points
// value, filing each into the ledger. Rows lacking a gameweek or points value
// are excluded from aggregation entirely.
func aggregatePoints(rows []Record, cutoff int) *pointsLedger {
	ledger := newPointsLedger()
	for _, row := range rows {
		gw, ok := resolveGameweek(row)
		if !ok || gw > cutoff {
			continue
		}
		pts, ok := resolvePoints(row)
		if !ok {
			continue
		}
		identity := resolveIdentity(row)

		key, ok := fixtureKey(row, gw)
		if !ok {
			ledger.recordMax(identity, gw, pts)
			continue
		}
		if ledger.fixtureSeen(identity, gw, key) {
			// Duplicate export of the same fixture appearance.
			continue
		}
		ledger.recordSum(identity, gw, pts)
	}
	return ledger
}

func (l *pointsLedger) recordSum(identity string, gw, pts int) {
	byGW := l.sums[identity]
	if byGW == nil {
		byGW = make(map[int]int)
		l.sums[identity] = byGW
	}
	byGW[gw] += pts
}

func (l *pointsLedger) recordMax(identity string, gw, pts int) {
	byGW := l.maxs[identity]
	if byGW == nil {
		byGW = make(map[int]int)
		l.maxs[identity] = byGW
	}
	cur, ok := byGW[gw]
	if !ok || pts > cur {
		byGW[gw] = pts
	}
}

// fixtureSeen reports whether this fixture appearance was already counted for
// the identity and gameweek, marking it as seen otherwise.
func (l *pointsLedger) fixtureSeen(identity string, gw int, key string) bool {
	byGW := l.seen[identity]
	if byGW == nil {
		byGW = make(map[int]map[string]struct{})
		l.seen[identity] = byGW
	}
	keys := byGW[gw]
	if keys == nil {
		keys = make(map[string]struct{})
		byGW[gw] = keys
	}
	if _, ok := keys[key]; ok {
		return true
	}
	keys[key] = struct{}{}
	return false
}

// cumulative returns the identity's total through the cutoff: the summed
// keyed-fixture values, plus the max fallback only for gameweeks where no
// keyed value exists.
func (l *pointsLedger) cumulative(identity string, cutoff int) int {
	total := 0
	sums := l.sums[identity]
	for gw, pts := range sums {
		if gw <= cutoff {
			total += pts
		}
	}
	for gw, pts := range l.maxs[identity] {
		if gw > cutoff {
			continue
		}
		if _, keyed := sums[gw]; keyed {
			continue
		}
		total += pts
	}
	return total
}
