package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeClassifyHand   MessageType = "classify_hand"
	MessageTypeClassifyHole   MessageType = "classify_hole"
	MessageTypeEstimateEquity MessageType = "estimate_equity"

	// Server to client messages
	MessageTypeHandClass    MessageType = "hand_class"
	MessageTypeEquityResult MessageType = "equity_result"
	MessageTypeError        MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
