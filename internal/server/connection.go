package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/crsthn-slv/poker-game-sub001/internal/equity"
	"github.com/crsthn-slv/poker-game-sub001/internal/requestid"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	id           string
	conn         *websocket.Conn
	send         chan *Message
	logger       *log.Logger
	ctx          context.Context
	cancel       context.CancelFunc
	closeOnce    sync.Once
	service      *Service
	stats        *Stats
	clock        quartz.Clock
	estimateWait time.Duration
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, service *Service, stats *Stats, clock quartz.Clock, estimateWait time.Duration) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	id := requestid.New()

	return &Connection{
		id:           id,
		conn:         conn,
		send:         make(chan *Message, 256),
		logger:       logger.WithPrefix("conn").With("conn", id),
		ctx:          ctx,
		cancel:       cancel,
		service:      service,
		stats:        stats,
		clock:        clock,
		estimateWait: estimateWait,
	}
}

// ID returns the connection's generated identifier
func (c *Connection) ID() string {
	return c.id
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, this is expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	requestID := msg.RequestID
	if requestID == "" {
		requestID = requestid.New()
	}

	c.logger.Debug("Received message", "type", msg.Type, "requestId", requestID)

	switch msg.Type {
	case MessageTypeClassifyHand:
		var data ClassifyHandData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse classify hand data", requestID)
			return
		}
		c.handleClassifyHand(data, requestID)

	case MessageTypeClassifyHole:
		var data ClassifyHoleData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse classify hole data", requestID)
			return
		}
		c.handleClassifyHole(data, requestID)

	case MessageTypeEstimateEquity:
		var data EstimateEquityData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse estimate equity data", requestID)
			return
		}
		// Run off the read pump so a long batch never blocks other requests
		go c.runEstimate(data, requestID)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String(), requestID)
	}
}

func (c *Connection) handleClassifyHand(data ClassifyHandData, requestID string) {
	result, err := c.service.ClassifyHand(data)
	if err != nil {
		c.sendError("invalid_card", err.Error(), requestID)
		return
	}

	c.stats.RecordClassification()
	c.reply(MessageTypeHandClass, HandClassData{
		Category:    uint8(result.Category),
		Name:        result.Category.String(),
		Description: result.Description,
	}, requestID)
}

func (c *Connection) handleClassifyHole(data ClassifyHoleData, requestID string) {
	result, err := c.service.ClassifyHole(data)
	if err != nil {
		c.sendError("invalid_card", err.Error(), requestID)
		return
	}

	c.stats.RecordClassification()
	c.reply(MessageTypeHandClass, HandClassData{
		Category:    uint8(result.Category),
		Name:        result.Category.String(),
		Description: result.Description,
	}, requestID)
}

// runEstimate executes an equity batch and answers with the result, or
// with a deadline_exceeded error once the configured wait elapses. The
// batch itself always runs to completion; a late result is discarded.
func (c *Connection) runEstimate(data EstimateEquityData, requestID string) {
	type outcome struct {
		result  equity.Result
		elapsed time.Duration
		err     error
	}

	done := make(chan outcome, 1)
	go func() {
		result, elapsed, err := c.service.EstimateEquity(data)
		done <- outcome{result: result, elapsed: elapsed, err: err}
	}()

	expired := make(chan struct{})
	timer := c.clock.AfterFunc(c.estimateWait, func() { close(expired) })
	defer timer.Stop()

	select {
	case out := <-done:
		if out.err != nil {
			code := "invalid_card"
			if errors.Is(out.err, ErrDuplicateCard) {
				code = "duplicate_card"
			}
			c.sendError(code, out.err.Error(), requestID)
			return
		}

		c.stats.RecordEstimate(out.elapsed)
		c.reply(MessageTypeEquityResult, EquityResultData{
			WinPercent: out.result.Percent(),
			Wins:       out.result.Wins,
			Ties:       out.result.Ties,
			Iterations: out.result.Trials,
			Opponents:  data.Opponents,
			HandPolicy: c.service.CompletionPolicy().String(),
			TiePolicy:  c.service.TiePolicy().String(),
			ElapsedMs:  out.elapsed.Milliseconds(),
		}, requestID)

	case <-expired:
		c.logger.Warn("Equity estimate exceeded deadline", "wait", c.estimateWait, "requestId", requestID)
		c.sendError("deadline_exceeded",
			fmt.Sprintf("estimate still running after %s", c.estimateWait), requestID)
	}
}

// reply marshals data and sends it tagged with the request ID
func (c *Connection) reply(messageType MessageType, data interface{}, requestID string) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	msg.RequestID = requestID

	_ = c.SendMessage(msg) // Ignore send errors, client may have gone
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message, requestID string) {
	c.reply(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	}, requestID)
}
