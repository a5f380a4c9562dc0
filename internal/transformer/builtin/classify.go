package builtin

import "statcheck/pkg/records"

// Classification thresholds for player typing.
const (
	allRounderRuns    = 500 // runs must exceed this
	allRounderWickets = 50  // wickets must reach this
)

// Player type labels.
const (
	TypeAllRounder = "All-Rounder"
	TypeBatsman    = "Batsman"
	TypeBowler     = "Bowler"
)

// Classify derives the Target field from runs and wickets:
//
//	runs > 500 && wickets >= 50 -> All-Rounder
//	runs > 500 && wickets <  50 -> Batsman
//	runs <= 500                 -> Bowler (wickets irrelevant)
//
// The three branches are exhaustive and mutually exclusive, so every record
// that reaches this transformer gets exactly one label. Run it after
// Require(runs, wickets); both fields are guaranteed numeric by then.
type Classify struct {
	RunsField    string
	WicketsField string
	Target       string
}

func (c Classify) Apply(in []records.Record) []records.Record {
	for _, rec := range in {
		runs, _ := rec.Number(c.RunsField)
		wickets, _ := rec.Number(c.WicketsField)
		rec[c.Target] = playerType(runs, wickets)
	}
	return in
}

func playerType(runs, wickets float64) string {
	switch {
	case runs > allRounderRuns && wickets >= allRounderWickets:
		return TypeAllRounder
	case runs > allRounderRuns:
		return TypeBatsman
	default:
		return TypeBowler
	}
}
