package types

// OutcomeRecord is the persisted form of an OutcomeEvent, written to the
// optional archive. The engine never reads these back; they exist for
// offline reporting only.
type OutcomeRecord struct {
	DateKey         string  `json:"dateKey" dynamodbav:"DateKey"` // YYYY-MM-DD, partition key
	EventID         string  `json:"eventId" dynamodbav:"EventID"` // sort key
	Queue           string  `json:"queue" dynamodbav:"Queue"`
	Kind            string  `json:"kind" dynamodbav:"Kind"`
	Timestamp       string  `json:"timestamp" dynamodbav:"Timestamp"` // RFC3339
	CallerNumber    string  `json:"callerNumber,omitempty" dynamodbav:"CallerNumber"`
	WaitSeconds     float64 `json:"waitSeconds" dynamodbav:"WaitSeconds"`
	WaitKnown       bool    `json:"waitKnown" dynamodbav:"WaitKnown"`
	ServiceLevelHit bool    `json:"serviceLevelHit" dynamodbav:"ServiceLevelHit"`
}
