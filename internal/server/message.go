package server

import (
	"encoding/json"
	"time"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type ClassifyHandData struct {
	Cards []string `json:"cards"`
}

type ClassifyHoleData struct {
	Cards []string `json:"cards"`
}

type EstimateEquityData struct {
	HoleCards      []string `json:"holeCards"`
	CommunityCards []string `json:"communityCards,omitempty"`
	Opponents      int      `json:"opponents"`
	Iterations     int      `json:"iterations,omitempty"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HandClassData struct {
	Category    uint8  `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type EquityResultData struct {
	WinPercent float64 `json:"winPercent"`
	Wins       uint32  `json:"wins"`
	Ties       uint32  `json:"ties"`
	Iterations uint32  `json:"iterations"`
	Opponents  int     `json:"opponents"`
	HandPolicy string  `json:"handPolicy"`
	TiePolicy  string  `json:"tiePolicy"`
	ElapsedMs  int64   `json:"elapsedMs"`
}
