package p2p

import (
	"log/slog"
	"strings"
)

// slogLvlTrace sits below Debug for the per-message read/write noise
// of busy peers.
const slogLvlTrace slog.Level = slog.LevelDebug - 4

// slogUpperString renders wire command names the way they appear in
// protocol docs.
func slogUpperString(key, val string) slog.Attr {
	return slog.String(key, strings.ToUpper(val))
}
