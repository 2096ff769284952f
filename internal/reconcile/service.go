package reconcile

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/megactl/internal/megaverse"
)

// Reconcile run options.
type ServiceConfig struct {
	// VerifyConvergence re-fetches the current map after apply and logs
	// any residual divergence against the goal.
	VerifyConvergence bool
}

// Reconcile service defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		VerifyConvergence: true,
	}
}

// Service drives one fetch, diff, apply, verify pass against a remote
// client. It holds no state between runs.
type Service struct {
	cfg    ServiceConfig
	client Client
}

// NewService builds a run service with default configuration.
func NewService(client Client) *Service {
	return NewServiceWithConfig(client, DefaultServiceConfig())
}

// NewServiceWithConfig builds a run service with explicit configuration.
func NewServiceWithConfig(client Client, cfg ServiceConfig) *Service {
	return &Service{cfg: cfg, client: client}
}

// Run executes one reconciliation pass. Fetch and diff errors are fatal and
// abort before any mutation; per-mutation failures are accumulated into the
// returned report instead.
func (s *Service) Run(ctx context.Context) (Report, error) {
	log.Info().Msg("fetching current map")
	current, err := s.client.CurrentMap(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("fetch current map: %w", err)
	}

	log.Info().Msg("fetching goal map")
	goal, err := s.client.GoalMap(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("fetch goal map: %w", err)
	}

	rows, columns := goal.Dimensions()
	log.Info().Int("rows", rows).Int("columns", columns).Msg("mapped megaverse edges")

	plan, err := Diff(current, goal)
	if err != nil {
		return Report{}, err
	}
	if len(plan) == 0 {
		log.Info().Msg("megaverse already matches goal map")
		return Report{}, nil
	}

	log.Info().Int("mutations", len(plan)).Msg("applying mutation plan")
	report := Apply(ctx, s.client, plan)
	log.Info().
		Int("attempted", report.Attempted).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("apply pass complete")

	if s.cfg.VerifyConvergence && ctx.Err() == nil {
		s.verify(ctx, goal)
	}
	return report, nil
}

// verify re-fetches and re-diffs after apply. Residual divergence is logged
// only; the report's failure list already drives the caller's decision.
func (s *Service) verify(ctx context.Context, goal megaverse.Grid) {
	current, err := s.client.CurrentMap(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("convergence check: refetch failed")
		return
	}
	residual, err := Diff(current, goal)
	if err != nil {
		log.Warn().Err(err).Msg("convergence check: diff failed")
		return
	}
	if len(residual) == 0 {
		log.Info().Msg("convergence verified")
		return
	}
	log.Warn().Int("divergent", len(residual)).Msg("residual divergence after apply")
}
