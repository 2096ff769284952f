package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/megactl/internal/megaverse"
	"github.com/danmuck/megactl/internal/observability"
)

var ErrUnsupportedMutation = errors.New("reconcile: unsupported mutation")

// Client is the remote megaverse boundary consumed by the reconciler. The
// implementation owns authentication, rate-limit pacing, and retry; errors
// it surfaces are terminal for the one call that produced them.
type Client interface {
	CurrentMap(ctx context.Context) (megaverse.Grid, error)
	GoalMap(ctx context.Context) (megaverse.Grid, error)
	CreatePolyanet(ctx context.Context, pos megaverse.Position) error
	DeletePolyanet(ctx context.Context, pos megaverse.Position) error
	CreateSoloon(ctx context.Context, pos megaverse.Position, color megaverse.Color) error
	DeleteSoloon(ctx context.Context, pos megaverse.Position) error
	CreateCometh(ctx context.Context, pos megaverse.Position, direction megaverse.Direction) error
	DeleteCometh(ctx context.Context, pos megaverse.Position) error
}

// Failure records one mutation the remote rejected.
type Failure struct {
	Mutation Mutation
	Err      error
}

// Report summarizes one apply pass. Failed mutations stay divergent and are
// naturally retried by the next diff+apply run.
type Report struct {
	Attempted int
	Succeeded int
	Failed    int
	Failures  []Failure
}

// Converged reports whether every attempted mutation landed.
func (r Report) Converged() bool {
	return r.Failed == 0
}

// Apply dispatches mutations strictly in plan order, one in flight at a
// time. A failed mutation is recorded and the run continues; only context
// cancellation stops the pass early, between mutations.
func Apply(ctx context.Context, client Client, mutations []Mutation) Report {
	var report Report
	for _, m := range mutations {
		if ctx.Err() != nil {
			log.Warn().
				Int("remaining", len(mutations)-report.Attempted).
				Msg("apply interrupted")
			break
		}
		report.Attempted++
		err := dispatch(ctx, client, m)
		observability.RecordMutation(m.Action, m.Object.Kind.String(), err == nil)
		if err != nil {
			report.Failed++
			report.Failures = append(report.Failures, Failure{Mutation: m, Err: err})
			log.Warn().
				Err(err).
				Str("action", m.Action).
				Str("object", m.Object.GoalValue()).
				Stringer("position", m.Position).
				Msg("mutation failed")
			continue
		}
		report.Succeeded++
		log.Info().
			Str("action", m.Action).
			Str("object", m.Object.GoalValue()).
			Stringer("position", m.Position).
			Msg("mutation applied")
	}
	return report
}

// dispatch selects the remote operation for one mutation. The object kind
// set is closed, so anything unmatched is a programming error surfaced as
// a per-mutation failure.
func dispatch(ctx context.Context, client Client, m Mutation) error {
	switch m.Action {
	case ActionCreate:
		switch m.Object.Kind {
		case megaverse.Polyanet:
			return client.CreatePolyanet(ctx, m.Position)
		case megaverse.Soloon:
			return client.CreateSoloon(ctx, m.Position, m.Object.Color)
		case megaverse.Cometh:
			return client.CreateCometh(ctx, m.Position, m.Object.Direction)
		}
	case ActionDelete:
		switch m.Object.Kind {
		case megaverse.Polyanet:
			return client.DeletePolyanet(ctx, m.Position)
		case megaverse.Soloon:
			return client.DeleteSoloon(ctx, m.Position)
		case megaverse.Cometh:
			return client.DeleteCometh(ctx, m.Position)
		}
	}
	return fmt.Errorf("%w: %s %s", ErrUnsupportedMutation, m.Action, m.Object.Kind)
}
