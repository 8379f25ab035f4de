package server

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crsthn-slv/poker-game-sub001/internal/equity"
)

func TestClassifyHandRoundTrip(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	sendMessage(t, ws, MessageTypeClassifyHand, ClassifyHandData{
		Cards: []string{"SA", "SK", "SQ", "SJ", "ST"},
	}, "")

	resp := readMessage(t, ws)
	require.Equal(t, MessageTypeHandClass, resp.Type)

	var data HandClassData
	decodeData(t, resp, &data)
	assert.Equal(t, uint8(10), data.Category)
	assert.Equal(t, "Royal Flush", data.Name)
	assert.Equal(t, "Royal Flush", data.Description)
}

func TestClassifyHandFirstFiveOnly(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	// The sixth card would complete a flush but must be ignored
	sendMessage(t, ws, MessageTypeClassifyHand, ClassifyHandData{
		Cards: []string{"SA", "SK", "SQ", "SJ", "H2", "S2"},
	}, "")

	resp := readMessage(t, ws)
	require.Equal(t, MessageTypeHandClass, resp.Type)

	var data HandClassData
	decodeData(t, resp, &data)
	assert.Equal(t, "High Card", data.Name)
	assert.Equal(t, "Ace high", data.Description)
}

func TestClassifyHandShortInput(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	sendMessage(t, ws, MessageTypeClassifyHand, ClassifyHandData{
		Cards: []string{"SA", "SK", "SQ"},
	}, "")

	resp := readMessage(t, ws)
	require.Equal(t, MessageTypeHandClass, resp.Type)

	var data HandClassData
	decodeData(t, resp, &data)
	assert.Equal(t, uint8(0), data.Category)
	assert.Equal(t, "Invalid hand", data.Description)
}

func TestClassifyHandInvalidCard(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	sendMessage(t, ws, MessageTypeClassifyHand, ClassifyHandData{
		Cards: []string{"SA", "XX", "SQ", "SJ", "ST"},
	}, "")

	resp := readMessage(t, ws)
	require.Equal(t, MessageTypeError, resp.Type)

	var data ErrorData
	decodeData(t, resp, &data)
	assert.Equal(t, "invalid_card", data.Code)
	assert.Contains(t, data.Message, `"XX"`)
}

func TestClassifyHoleRoundTrip(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	sendMessage(t, ws, MessageTypeClassifyHole, ClassifyHoleData{
		Cards: []string{"SA", "HA"},
	}, "")

	resp := readMessage(t, ws)
	require.Equal(t, MessageTypeHandClass, resp.Type)

	var data HandClassData
	decodeData(t, resp, &data)
	assert.Equal(t, uint8(2), data.Category)
	assert.Equal(t, "Pair", data.Name)
	assert.Equal(t, "Pair of Aces", data.Description)
}

func TestEstimateEquityRoundTrip(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	sendMessage(t, ws, MessageTypeEstimateEquity, EstimateEquityData{
		HoleCards:  []string{"SA", "HA"},
		Opponents:  1,
		Iterations: 400,
	}, "")

	resp := readMessage(t, ws)
	require.Equal(t, MessageTypeEquityResult, resp.Type)

	var data EquityResultData
	decodeData(t, resp, &data)
	assert.Equal(t, uint32(400), data.Iterations)
	assert.Equal(t, 1, data.Opponents)
	assert.Equal(t, "best-of-seven", data.HandPolicy)
	assert.Equal(t, "loss", data.TiePolicy)
	// Pocket aces heads up win roughly 85% of the time
	assert.Greater(t, data.WinPercent, 70.0)
	assert.LessOrEqual(t, data.WinPercent, 100.0)
	assert.GreaterOrEqual(t, data.ElapsedMs, int64(0))
}

func TestEstimateEquityNoOpponents(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	sendMessage(t, ws, MessageTypeEstimateEquity, EstimateEquityData{
		HoleCards: []string{"SA", "HA"},
		Opponents: 0,
	}, "")

	resp := readMessage(t, ws)
	require.Equal(t, MessageTypeEquityResult, resp.Type)

	var data EquityResultData
	decodeData(t, resp, &data)
	assert.Equal(t, uint32(0), data.Iterations)
	assert.Equal(t, 0.0, data.WinPercent)
}

func TestEstimateEquityDuplicateCard(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	sendMessage(t, ws, MessageTypeEstimateEquity, EstimateEquityData{
		HoleCards:      []string{"SA", "HK"},
		CommunityCards: []string{"SA", "D2", "D3"},
		Opponents:      1,
	}, "")

	resp := readMessage(t, ws)
	require.Equal(t, MessageTypeError, resp.Type)

	var data ErrorData
	decodeData(t, resp, &data)
	assert.Equal(t, "duplicate_card", data.Code)
	assert.Contains(t, data.Message, "SA")
}

func TestRequestIDEchoed(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	sendMessage(t, ws, MessageTypeClassifyHole, ClassifyHoleData{
		Cards: []string{"SA", "HK"},
	}, "client-request-17")

	resp := readMessage(t, ws)
	assert.Equal(t, "client-request-17", resp.RequestID)
}

func TestRequestIDGeneratedWhenOmitted(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	sendMessage(t, ws, MessageTypeClassifyHole, ClassifyHoleData{
		Cards: []string{"SA", "HK"},
	}, "")

	resp := readMessage(t, ws)
	assert.Len(t, resp.RequestID, 26)
}

func TestUnknownMessageType(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	sendMessage(t, ws, MessageType("deal_me_in"), struct{}{}, "")

	resp := readMessage(t, ws)
	require.Equal(t, MessageTypeError, resp.Type)

	var data ErrorData
	decodeData(t, resp, &data)
	assert.Equal(t, "unknown_message_type", data.Code)
}

func TestMalformedPayload(t *testing.T) {
	t.Parallel()
	_, wsURL := newTestServer(t, testConfig())
	ws := dialTestServer(t, wsURL)

	msg := &Message{
		Type:      MessageTypeClassifyHand,
		Data:      json.RawMessage(`["not","an","object"]`),
		Timestamp: time.Now(),
	}
	require.NoError(t, ws.WriteJSON(msg))

	resp := readMessage(t, ws)
	require.Equal(t, MessageTypeError, resp.Type)

	var data ErrorData
	decodeData(t, resp, &data)
	assert.Equal(t, "invalid_message", data.Code)
}

// blockingEstimator never completes until released, standing in for a
// batch that overruns the configured wait.
type blockingEstimator struct {
	release chan struct{}
}

func (b *blockingEstimator) Estimate(req equity.Request, rng *rand.Rand) equity.Result {
	<-b.release
	return equity.Result{}
}

func TestEstimateDeadlineExceeded(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Equity.EstimateWaitMs = 1000

	service, err := NewService(cfg, testLogger())
	require.NoError(t, err)

	blocker := &blockingEstimator{release: make(chan struct{})}
	service.estimator = blocker
	t.Cleanup(func() { close(blocker.release) })

	mockClock := quartz.NewMock(t)
	srv := NewServer(cfg, service, testLogger())
	srv.clock = mockClock
	go srv.run()
	t.Cleanup(func() { _ = srv.Stop() })

	ts := httptest.NewServer(http.HandlerFunc(srv.handleWebSocket))
	t.Cleanup(ts.Close)

	ws := dialTestServer(t, "ws"+strings.TrimPrefix(ts.URL, "http"))

	sendMessage(t, ws, MessageTypeEstimateEquity, EstimateEquityData{
		HoleCards: []string{"SA", "HA"},
		Opponents: 1,
	}, "slow-batch")

	// Let the server arm the deadline timer, then advance past it
	time.Sleep(250 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mockClock.Advance(time.Second).MustWait(ctx)

	resp := readMessage(t, ws)
	require.Equal(t, MessageTypeError, resp.Type)
	assert.Equal(t, "slow-batch", resp.RequestID)

	var data ErrorData
	decodeData(t, resp, &data)
	assert.Equal(t, "deadline_exceeded", data.Code)
	assert.Contains(t, data.Message, "still running")
}
