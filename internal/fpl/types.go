package fpl

// Position is a player's on-pitch role.
type Position string

const (
	PositionGK  Position = "GK"
	PositionDEF Position = "DEF"
	PositionMID Position = "MID"
	PositionFWD Position = "FWD"
)

// Player is the canonical, deduplicated view of a single identity within one
// season's data. ElementType and Price are nil when the source rows carried
// nothing parseable; Points is nil unless a gameweek cutoff was requested.
type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ElementType *Position `json:"element_type"`
	Price       *float64  `json:"price"`
	Team        string    `json:"team"`
	Points      *int      `json:"points"`
}

// ElementRef is one entry of the remote bootstrap element list. The API hands
// out two identifiers per player: a small per-season element id and a stable
// cross-season code.
type ElementRef struct {
	ID   int `json:"id"`
	Code int `json:"code"`
}

// HistoryRow is one gameweek entry of a player's element-summary history.
// Value is the player's cost in integer tenths of a million.
type HistoryRow struct {
	Round       int `json:"round"`
	TotalPoints int `json:"total_points"`
	Value       int `json:"value"`
}

// PlayerSummary describes a player's price movement and point haul over a
// round range, computed from the remote history endpoint.
type PlayerSummary struct {
	PriceFrom   *float64 `json:"price_from"`
	PriceTo     *float64 `json:"price_to"`
	PriceDelta  *float64 `json:"price_delta"`
	PointsRange int      `json:"points_range"`
}
