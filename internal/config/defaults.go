package config

import "time"

const (
	// DefaultPort is the fixed port the TUI consumer listens on.
	DefaultPort = 43567
	// DefaultDialTimeout bounds a single connection attempt.
	DefaultDialTimeout = 1 * time.Second
	// DefaultReconnectTimeout bounds re-connect attempts during a session.
	DefaultReconnectTimeout = 500 * time.Millisecond
	// DefaultInitialRounds is the connect retry budget at bridge construction.
	DefaultInitialRounds = 3
	// DefaultRetryDelay is the base inter-round delay during initial connect.
	DefaultRetryDelay = 200 * time.Millisecond
	// DefaultRunTimeout bounds one compared-runner subprocess.
	DefaultRunTimeout = 60 * time.Second
	// DefaultSuitePath is the default suite discovery root.
	DefaultSuitePath = "."
	// DefaultOutputJSONFile is the default session results file name.
	DefaultOutputJSONFile = "session-results.json"
	// DefaultOutputJSONDir is the default output directory.
	DefaultOutputJSONDir = "storage"
	// DefaultHistoryDBFile is the default run-history database file name.
	DefaultHistoryDBFile = "history.db"
)

// DefaultHosts are the candidate consumer addresses, in priority order.
// Loopback first since the TUI normally runs in the same container.
var DefaultHosts = []string{
	"127.0.0.1",
	"localhost",
	"0.0.0.0",
}
