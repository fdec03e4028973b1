package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
	"github.com/nathanfoale/skycity-blackjack/server/sim"
)

func money(v float64) string { return fmt.Sprintf("$%.0f", v) }
func pct(v float64) string   { return fmt.Sprintf("%.2f%%", v) }

// summaryRows is the statistics table, header first.
func summaryRows(res *sim.Result) pterm.TableData {
	s := res.Stats
	return pterm.TableData{
		{"Metric", "Value"},
		{"Sessions", fmt.Sprint(len(res.FinalBankrolls))},
		{"Hands played", fmt.Sprint(s.HandsPlayed)},
		{"Final avg bankroll", money(s.MeanFinal)},
		{"  95% CI", money(s.MeanFinalCI[0]) + " .. " + money(s.MeanFinalCI[1])},
		{"ROI", pct(s.ROI)},
		{"EV/hand", fmt.Sprintf("$%.2f", s.EVPerHand)},
		{"Std dev", money(s.StdDev)},
		{"Sharpe ratio", fmt.Sprintf("%.4f", s.Sharpe)},
		{"Risk of ruin", pct(s.RiskOfRuin * 100)},
		{"  95% CI", pct(s.RuinCI[0]*100) + " .. " + pct(s.RuinCI[1]*100)},
		{"Best outcome", money(s.Best)},
		{"Worst outcome", money(s.Worst)},
		{"Max gain", money(s.MaxGain)},
		{"Max loss", money(s.MaxLoss)},
		{"Reshuffles", fmt.Sprint(s.Reshuffles)},
	}
}

// outcomeRows tallies outcomes, most frequent first.
func outcomeRows(s sim.Summary) pterm.TableData {
	type kv struct {
		o engine.Outcome
		n int
	}
	var list []kv
	for o, n := range s.Outcomes {
		list = append(list, kv{o, n})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].n != list[j].n {
			return list[i].n > list[j].n
		}
		return list[i].o < list[j].o
	})
	rows := pterm.TableData{{"Outcome", "Hands", "Share"}}
	for _, e := range list {
		share := 0.0
		if s.HandsPlayed > 0 {
			share = float64(e.n) / float64(s.HandsPlayed) * 100
		}
		rows = append(rows, []string{string(e.o), fmt.Sprint(e.n), pct(share)})
	}
	return rows
}

// checkpointRows samples the average trajectory at up to n evenly spaced
// hand indexes, always including the last.
func checkpointRows(res *sim.Result, n int) pterm.TableData {
	rows := pterm.TableData{{"Hand", "Avg bankroll", "Avg true count"}}
	total := len(res.AverageBankroll)
	if total == 0 || n <= 0 {
		return rows
	}
	step := max(1, total/n)
	for i := step - 1; i < total; i += step {
		rows = append(rows, checkpoint(res, i))
	}
	if (total % step) != 0 {
		rows = append(rows, checkpoint(res, total-1))
	}
	return rows
}

func checkpoint(res *sim.Result, i int) []string {
	return []string{fmt.Sprint(i + 1), money(res.AverageBankroll[i]), fmt.Sprintf("%+.2f", res.AverageTrueCount[i])}
}

func printReport(cfg sim.Config, variant string, res *sim.Result) {
	pterm.DefaultSection.Println("Simulation results")
	pterm.Info.Printfln("variant %s, %d decks, %s, %d sessions x %d hands, seed %d",
		variant, cfg.Rules.Decks, cfg.Mode, cfg.Sessions, cfg.HandsPerSession, res.Seed)
	_ = pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(summaryRows(res)).Render()
	pterm.DefaultSection.WithLevel(2).Println("Outcomes")
	_ = pterm.DefaultTable.WithHasHeader().WithData(outcomeRows(res.Stats)).Render()
	pterm.DefaultSection.WithLevel(2).Println("Average trajectory")
	_ = pterm.DefaultTable.WithHasHeader().WithData(checkpointRows(res, 10)).Render()
	if res.Stats.ROI >= 0 {
		pterm.Success.Printfln("ROI %s in %s", pct(res.Stats.ROI), res.Elapsed.Round(time.Millisecond))
	} else {
		pterm.Warning.Printfln("ROI %s in %s", pct(res.Stats.ROI), res.Elapsed.Round(time.Millisecond))
	}
}

func printVariants() {
	rows := pterm.TableData{{"Variant", "Decks", "Payout", "H17", "Push 22", "Charlie", "Double on", "Counting"}}
	for _, name := range engine.VariantNames() {
		r, _ := engine.Variant(name)
		double := "any"
		if len(r.DoubleOn) > 0 {
			parts := make([]string, len(r.DoubleOn))
			for i, v := range r.DoubleOn {
				parts[i] = fmt.Sprint(v)
			}
			double = strings.Join(parts, ",")
		}
		rows = append(rows, []string{
			name, fmt.Sprint(r.Decks), fmt.Sprintf("%.1f", r.BlackjackPayout),
			yesNo(r.HitSoft17), yesNo(r.Push22), yesNo(r.FiveCardCharlie), double, yesNo(r.CountingAllowed),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// handRow renders one resolved hand for the --hands replay.
func handRow(i int, h sim.HandResult) []string {
	return []string{
		fmt.Sprint(i),
		fmt.Sprintf("%+.1f", h.TrueCount),
		money(h.Bet),
		engine.Describe(h.Player),
		engine.Describe(h.Dealer),
		string(h.Outcome),
		fmt.Sprintf("%+.0f", h.Delta),
		money(h.Bankroll),
	}
}
