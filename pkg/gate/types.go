package gate

// SubscribeRequest is the message sent after every connection open to
// subscribe the ticker channel for a set of currency pairs.
type SubscribeRequest struct {
	Time    int64    `json:"time"`    // Client timestamp (in milliseconds since epoch)
	Channel string   `json:"channel"` // Target channel, e.g. "spot.tickers"
	Event   string   `json:"event"`   // Always "subscribe"
	Payload []string `json:"payload"` // Currency pairs, e.g. ["BTC_USDT", "ETH_USDT"]
}
