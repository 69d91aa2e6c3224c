package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/felipegalvaoz/zemdocs-admin/internal/empresa"
	"github.com/felipegalvaoz/zemdocs-admin/pkg/backend"
	"github.com/felipegalvaoz/zemdocs-admin/pkg/cnpja"
)

// cmdEnv bundles the wired clients a command needs, plus the cleanup
// for the lookup cache.
type cmdEnv struct {
	svc   *empresa.Service
	cache *cnpja.Cache
}

func (e *cmdEnv) Close() {
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			zap.L().Warn("close lookup cache", zap.Error(err))
		}
	}
}

// initService wires the backend client, the cached registry client and
// the empresa facade from config. Fails fast when the backend
// credential is missing.
func initService() (*cmdEnv, error) {
	if err := cfg.ValidateBackend(); err != nil {
		return nil, err
	}

	bc := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Token,
		backend.WithTimeout(time.Duration(cfg.Backend.TimeoutSecs)*time.Second))

	registry := cnpja.NewClient(
		cnpja.WithBaseURL(cfg.Registry.BaseURL),
		cnpja.WithRatePerMinute(cfg.Registry.RatePerMin),
	)

	env := &cmdEnv{}
	cache, err := cnpja.OpenCache(cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour)
	if err != nil {
		// The cache only saves registry quota; run without it.
		zap.L().Warn("open lookup cache, continuing uncached", zap.Error(err))
	} else {
		env.cache = cache
	}

	var rc cnpja.Client = registry
	if env.cache != nil {
		rc = cnpja.NewCachedClient(registry, env.cache)
	}

	env.svc = empresa.NewService(bc, rc, empresa.WithNotifier(cliNotifier{}))
	return env, nil
}

// cliNotifier logs outcome notifications; the terminal already shows
// the command result, so these go to the log, not stdout.
type cliNotifier struct{}

func (cliNotifier) Success(msg string) { zap.L().Info(msg) }
func (cliNotifier) Error(msg string)   { zap.L().Warn(msg) }
