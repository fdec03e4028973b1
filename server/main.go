package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"

	"github.com/nathanfoale/skycity-blackjack/server/sim"
)

//
// ===== bootstrap =====
//

func newLogger(debug bool) *slog.Logger {
	pl := pterm.DefaultLogger.WithLevel(pterm.LogLevelInfo)
	if debug {
		pl = pl.WithLevel(pterm.LogLevelDebug)
	}
	return slog.New(pterm.NewSlogHandler(pl))
}

var stopFlag atomic.Bool

func main() {
	_ = godotenv.Load()

	if os.Getenv("NO_COLOR") != "" {
		pterm.DisableColor()
	}
	log := newLogger(asBool(os.Getenv("DEBUG")))
	slog.SetDefault(log)

	var serve, variants, hands bool
	for _, a := range os.Args[1:] {
		switch a {
		case "--serve":
			serve = true
		case "--variants":
			variants = true
		case "--hands":
			hands = true
		}
	}

	if variants {
		printVariants()
		return
	}

	cfg, err := configFromEnv()
	if err != nil {
		log.Error("bad configuration", "err", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watchSignals(cancel)

	switch {
	case serve:
		runServer(ctx, cfg, log)
	case hands:
		replayHands(cfg, atoiDef(os.Getenv("SHOW_HANDS"), 20))
	default:
		if err := runExperiment(ctx, cfg, log); err != nil {
			log.Error("simulation failed", "err", err)
			os.Exit(1)
		}
	}
}

func watchSignals(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	stopFlag.Store(true)
	cancel()
}

//
// ===== modes =====
//

func runExperiment(ctx context.Context, cfg sim.Config, log *slog.Logger) error {
	bar, _ := pterm.DefaultProgressbar.WithTotal(cfg.Sessions).WithTitle("Simulating sessions").Start()
	var mu sync.Mutex
	r := &sim.Runner{
		Workers: atoiDef(os.Getenv("WORKERS"), 0),
		Logger:  log,
		Progress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			if bar != nil {
				bar.Increment()
			}
		},
	}
	res, err := r.Run(ctx, cfg, 0)
	if bar != nil {
		_, _ = bar.Stop()
	}
	if err != nil {
		if stopFlag.Load() && errors.Is(err, context.Canceled) {
			pterm.Warning.Println("interrupted")
			return nil
		}
		return err
	}
	printReport(res.Config, getenv("VARIANT", "classic"), res)
	return nil
}

func runServer(ctx context.Context, cfg sim.Config, log *slog.Logger) {
	port := getenv("PORT", "8080")
	s := &server{
		base:    cfg,
		workers: atoiDef(os.Getenv("WORKERS"), 0),
		maxWork: atoiDef(os.Getenv("MAX_WORK"), 0),
		log:     log,
	}
	srv := &http.Server{Addr: ":" + port, Handler: Router(s), ReadTimeout: 15 * time.Second, WriteTimeout: 5 * time.Minute}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()
	log.Info("listening", "url", "http://localhost:"+port, "variant", getenv("VARIANT", "classic"))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// replayHands plays the first n hands of one session and prints every deal.
func replayHands(cfg sim.Config, n int) {
	seed := cfg.Seed
	if seed == 0 {
		seed = sim.SecureSeed()
	}
	s, err := sim.NewSession(cfg, rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)))
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	rows := [][]string{{"#", "TC", "Bet", "Player", "Dealer", "Outcome", "Delta", "Bankroll"}}
	for i := 1; i <= n && s.State() == sim.Playing; i++ {
		h, err := s.Step()
		if err != nil {
			pterm.Error.Println(err)
			break
		}
		rows = append(rows, handRow(i, h))
	}
	pterm.Info.Printfln("seed %d, session %s", seed, s.State())
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
