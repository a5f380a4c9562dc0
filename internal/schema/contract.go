// Package schema defines the column contract the data processor's output
// must satisfy, and the conformance check against it.
package schema

// Field is one column of a contract.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"` // "integer" | "string"
}

// Contract is an ordered column contract; check results report violations
// in field order.
type Contract struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// PlayerResults is the contract every processor result dataset is held to.
func PlayerResults() Contract {
	return Contract{
		Name: "player_results",
		Fields: []Field{
			{Name: "eventType", Type: "string"},
			{Name: "playerName", Type: "string"},
			{Name: "age", Type: "integer"},
			{Name: "runs", Type: "integer"},
			{Name: "wickets", Type: "integer"},
			{Name: "playerType", Type: "string"},
		},
	}
}
