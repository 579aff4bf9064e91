package gate

import "time"

// Wire protocol identifiers for the Gate.io v4 spot WebSocket.
const (
	ChannelSpotTickers = "spot.tickers"
	EventSubscribe     = "subscribe"
	EventUpdate        = "update"
)

// PairSeparator joins the base and quote assets of a currency pair,
// e.g. "BTC_USDT".
const PairSeparator = "_"

// Default endpoints of the public Gate.io API.
const (
	DefaultRESTBaseURL = "https://data.gateapi.io"
	PairsEndpoint      = "/api2/1/pairs"
	DefaultWSURL       = "wss://api.gateio.ws/ws/v4/"
)

// DefaultPairs is the fallback subscription set used when the tradable
// pair list cannot be fetched.
var DefaultPairs = []string{"BTC_USDT", "ETH_USDT", "LTC_USDT"}

// Connection timing. The reconnect schedule has two fixed tiers: the
// short delay serves the first shortRetryAttempts attempts of a failure
// streak, the long delay every attempt after that.
const (
	defaultKeepaliveInterval = 5 * time.Second
	defaultShortRetryDelay   = 2 * time.Second
	defaultLongRetryDelay    = 30 * time.Second

	shortRetryAttempts   = 4
	minReconnectAttempts = 1
	maxReconnectAttempts = 60 // attempt counter saturates here

	pingWriteTimeout        = 10 * time.Second
	defaultHandshakeTimeout = 15 * time.Second
)
