package stream

import "encoding/json"

// TickerMessage is the envelope of every frame received from the Gate.io
// spot WebSocket. Result is kept raw because its shape depends on the
// channel and event.
type TickerMessage struct {
	Time    int64           `json:"time"`    // Server timestamp (in seconds since epoch)
	Channel string          `json:"channel"` // Channel the frame belongs to, e.g. "spot.tickers"
	Event   string          `json:"event"`   // Frame kind: "subscribe" or "update"
	Error   *FrameError     `json:"error"`   // Set when the server rejected a request
	Result  json.RawMessage `json:"result"`  // Channel-specific payload
}

// FrameError is the error payload carried by rejected requests.
type FrameError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TickerResult is the spot.tickers update payload. Prices arrive as
// strings and are parsed by the handler.
type TickerResult struct {
	CurrencyPair     string `json:"currency_pair"`     // Trading pair, e.g. "BTC_USDT"
	Last             string `json:"last"`              // Last traded price
	LowestAsk        string `json:"lowest_ask"`        // Best ask, may be empty
	HighestBid       string `json:"highest_bid"`       // Best bid, may be empty
	ChangePercentage string `json:"change_percentage"` // 24h change
	BaseVolume       string `json:"base_volume"`       // 24h base asset volume
	QuoteVolume      string `json:"quote_volume"`      // 24h quote asset volume
	High24h          string `json:"high_24h"`          // 24h high
	Low24h           string `json:"low_24h"`           // 24h low
}
