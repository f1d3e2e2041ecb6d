package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	EventID string `json:"eventId"`
	Data    []byte `json:"data"`
}

// Routing keys - one per change feed event kind
const (
	EventScenarioInserted = "scenario.inserted"
	EventScenarioModified = "scenario.modified"
	EventScenarioRemoved  = "scenario.removed"
	EventScenarioUnknown  = "scenario.unknown"
)
