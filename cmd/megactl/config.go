package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/megactl/internal/crossmint"
	"github.com/danmuck/megactl/internal/reconcile"
)

type runConfig struct {
	Client    crossmint.Config
	Reconcile reconcile.ServiceConfig
}

func defaultRunConfig() runConfig {
	return runConfig{
		Client:    crossmint.DefaultConfig(),
		Reconcile: reconcile.DefaultServiceConfig(),
	}
}

type fileConfig struct {
	BaseURL           string  `toml:"base_url"`
	RequestTimeout    string  `toml:"request_timeout"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	RetryMax          int     `toml:"retry_max"`
	RetryWaitMin      string  `toml:"retry_wait_min"`
	RetryWaitMax      string  `toml:"retry_wait_max"`
	VerifyConvergence bool    `toml:"verify_convergence"`
}

func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load megactl config: %w", err)
	}

	if meta.IsDefined("base_url") {
		url := strings.TrimSpace(raw.BaseURL)
		if url != "" {
			cfg.Client.BaseURL = url
		}
	}

	if meta.IsDefined("request_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RequestTimeout))
		if err != nil {
			return runConfig{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		cfg.Client.RequestTimeout = d
	}

	if meta.IsDefined("requests_per_second") {
		cfg.Client.RequestsPerSecond = raw.RequestsPerSecond
	}

	if meta.IsDefined("retry_max") {
		cfg.Client.RetryMax = raw.RetryMax
	}

	if meta.IsDefined("retry_wait_min") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RetryWaitMin))
		if err != nil {
			return runConfig{}, fmt.Errorf("parse retry_wait_min: %w", err)
		}
		cfg.Client.RetryWaitMin = d
	}

	if meta.IsDefined("retry_wait_max") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RetryWaitMax))
		if err != nil {
			return runConfig{}, fmt.Errorf("parse retry_wait_max: %w", err)
		}
		cfg.Client.RetryWaitMax = d
	}

	if meta.IsDefined("verify_convergence") {
		cfg.Reconcile.VerifyConvergence = raw.VerifyConvergence
	}

	return cfg, nil
}
