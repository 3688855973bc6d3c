package app

import (
	"log/slog"

	"sessionbridge/internal/bridge"
	"sessionbridge/internal/community"
	"sessionbridge/internal/crypto"
	"sessionbridge/internal/domain"
	"sessionbridge/internal/host"
	keysvc "sessionbridge/internal/services/keys"
	"sessionbridge/internal/store"
)

// Wire bundles the stores, the boundary and the services for the CLI.
type Wire struct {
	Logger *slog.Logger
	Bridge *bridge.Bridge
	Host   *host.Host
	Keys   domain.KeyService
	Dumps  domain.DumpStore
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	logger := cfg.logger()
	kdf, err := store.ParseKDF(cfg.KDF)
	if err != nil {
		return nil, err
	}

	// Native side: shared crypto library and URL grammar behind the bridge
	lib := bridge.NewLibrary(crypto.Native{}, nil)
	b := bridge.New(lib, community.URLs{}, logger)

	// Managed side
	h := host.New(b)

	// File-based stores
	keyStore := store.NewKeyPairFileStore(cfg.Home).WithKDF(kdf)
	dumpStore := store.NewDumpFileStore(cfg.Home)

	return &Wire{
		Logger: logger,
		Bridge: b,
		Host:   h,
		Keys:   keysvc.New(keyStore, h),
		Dumps:  dumpStore,
	}, nil
}

// Close releases every native config object still alive.
func (w *Wire) Close() error { return w.Host.Close() }
