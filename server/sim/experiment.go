package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Result is everything an experiment produces. AverageBankroll and
// AverageTrueCount are taken over forward-filled trajectories so every
// session contributes to every hand index.
type Result struct {
	ID               uuid.UUID     `json:"id"`
	Seed             uint64        `json:"seed"`
	Config           Config        `json:"config"`
	Trajectories     []Trajectory  `json:"trajectories,omitempty"`
	AverageBankroll  []float64     `json:"average_bankroll"`
	AverageTrueCount []float64     `json:"average_true_count"`
	FinalBankrolls   []float64     `json:"final_bankrolls"`
	Stats            Summary       `json:"stats"`
	Elapsed          time.Duration `json:"elapsed_ns"`
}

// Runner executes sessions in parallel. Results do not depend on Workers:
// every session gets its own generator seeded before any work starts.
type Runner struct {
	Workers int
	Logger  *slog.Logger

	// Progress and OnSession are called from worker goroutines.
	Progress  func(done, total int)
	OnSession func(Trajectory)
}

// Run validates cfg and plays sessions independent sessions (cfg.Sessions
// when sessions <= 0). A zero cfg.Seed is replaced by a fresh secure seed,
// reported in Result.Seed.
func (r *Runner) Run(ctx context.Context, cfg Config, sessions int) (*Result, error) {
	if sessions > 0 {
		cfg.Sessions = sessions
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := r.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = SecureSeed()
	}
	cfg.Seed = seed

	stream := newSeedStream(seed)
	sessionSeeds := make([]seedStream, cfg.Sessions)
	for i := range sessionSeeds {
		sessionSeeds[i] = newSeedStream(stream.next())
	}

	start := time.Now()
	trajs := make([]Trajectory, cfg.Sessions)
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range trajs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			s, err := NewSession(cfg, sessionSeeds[i].rng())
			if err != nil {
				return err
			}
			t, err := s.Run(gctx)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			trajs[i] = t
			log.Debug("session done", "session", i, "state", t.State, "hands", len(t.Bankroll), "final", t.Final(cfg.InitialBankroll))
			if r.OnSession != nil {
				r.OnSession(t)
			}
			if r.Progress != nil {
				r.Progress(int(done.Add(1)), cfg.Sessions)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// a cancellation seen before launching leaves g.Wait clean
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := aggregate(cfg, trajs, stream.rng())
	res.ID = uuid.New()
	res.Seed = seed
	res.Elapsed = time.Since(start)
	log.Info("experiment done",
		"id", res.ID,
		"sessions", cfg.Sessions,
		"hands", res.Stats.HandsPlayed,
		"roi", res.Stats.ROI,
		"risk_of_ruin", res.Stats.RiskOfRuin,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

func aggregate(cfg Config, trajs []Trajectory, rng *rand.Rand) *Result {
	bank := make([][]float64, len(trajs))
	tcs := make([][]float64, len(trajs))
	finals := make([]float64, len(trajs))
	for i, t := range trajs {
		bank[i], tcs[i] = t.Bankroll, t.TrueCount
		finals[i] = t.Final(cfg.InitialBankroll)
	}
	res := &Result{
		Config:           cfg,
		Trajectories:     trajs,
		AverageBankroll:  columnMean(pad(bank, cfg.InitialBankroll)),
		AverageTrueCount: columnMean(pad(tcs, 0)),
		FinalBankrolls:   finals,
	}
	res.Stats = Summarize(trajs, cfg.InitialBankroll, cfg.HandsPerSession, rng)
	return res
}
