package app

import (
	"io"
	"log/slog"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home    string       // state directory, e.g. $HOME/.sessionbridge
	KDF     string       // passphrase KDF for new key files; empty is argon2id
	Verbose bool         // log at debug level
	Log     io.Writer    // log destination; nil discards
	Logger  *slog.Logger // optional; built from Log and Verbose when nil
}

// logger returns cfg.Logger or a text logger writing to cfg.Log.
func (cfg Config) logger() *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	w := cfg.Log
	if w == nil {
		w = io.Discard
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
