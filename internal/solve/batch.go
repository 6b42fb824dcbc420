package solve

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sleep-optimizer/internal/sim"
)

// TeamRequest is one independent team simulation.
type TeamRequest struct {
	Name     string
	Members  []sim.Member
	Settings sim.TeamSettings
}

// SimulateTeams runs independent requests on the worker pool. Results keep
// the request order; each request gets its own seed derived from its
// position, so the output does not depend on scheduling. Cancellation is
// checked between requests, never inside a run.
func (s *Service) SimulateTeams(ctx context.Context, reqs []TeamRequest) ([]*sim.TeamProduction, error) {
	out := make([]*sim.TeamProduction, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts := s.simOptions(fmt.Sprintf("team-%d", i))
			opts.IncludeLog = true
			res, err := sim.SimulateTeamProduction(req.Members, req.Settings, opts)
			if err != nil {
				return fmt.Errorf("team %q: %w", req.Name, err)
			}
			out[i] = res
			s.logger.Debug("simulated team", zap.String("team", req.Name), zap.Int("members", len(req.Members)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
