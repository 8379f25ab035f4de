package main

import (
	"github.com/crsthn-slv/poker-game-sub001/cmd/poker-game/shared"
	"github.com/crsthn-slv/poker-game-sub001/internal/server"
)

// ServeCmd runs the WebSocket classify/estimate service
type ServeCmd struct {
	Config     string `kong:"default='poker-game.hcl',help='HCL config file (a missing file runs the defaults)'"`
	Addr       string `kong:"help='Override the listen address'"`
	Port       int    `kong:"help='Override the listen port'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
	Seed       *int64 `kong:"help='Deterministic RNG seed for estimates (optional)'"`
	Iterations int    `kong:"help='Override the default estimate iteration count'"`
	Workers    int    `kong:"help='Override the estimate worker count'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	// Flags override the file
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.Seed != nil {
		cfg.Equity.Seed = *c.Seed
	}
	if c.Iterations != 0 {
		cfg.Equity.Iterations = c.Iterations
	}
	if c.Workers != 0 {
		cfg.Equity.Workers = c.Workers
	}
	if !c.Debug {
		shared.ParseLevel(logger, cfg.Server.LogLevel)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	service, err := server.NewService(cfg, logger)
	if err != nil {
		return err
	}
	srv := server.NewServer(cfg, service, logger)

	logger.Info("Starting poker service",
		"address", cfg.ListenAddress(),
		"iterations", cfg.Equity.Iterations,
		"max_iterations", cfg.Equity.MaxIterations,
		"workers", cfg.Equity.Workers,
		"hand_policy", cfg.Equity.HandPolicy,
		"tie_policy", cfg.Equity.TiePolicy)

	ctx := shared.SetupSignalHandler(logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server")
		return srv.Stop()
	case err := <-serverErr:
		return err
	}
}
