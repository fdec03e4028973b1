package sim

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
)

// Summary is the scalar statistics table of an experiment. StdDev and
// Variance are population figures over final bankrolls, ROI is a percentage
// and RiskOfRuin a fraction.
type Summary struct {
	MeanFinal   float64                `json:"mean_final"`
	StdDev      float64                `json:"std_dev"`
	Variance    float64                `json:"variance"`
	ROI         float64                `json:"roi"`
	RiskOfRuin  float64                `json:"risk_of_ruin"`
	Sharpe      float64                `json:"sharpe"`
	EVPerHand   float64                `json:"ev_per_hand"`
	MaxGain     float64                `json:"max_gain"`
	MaxLoss     float64                `json:"max_loss"`
	Best        float64                `json:"best"`
	Worst       float64                `json:"worst"`
	RuinCI      [2]float64             `json:"ruin_ci95"`
	MeanFinalCI [2]float64             `json:"mean_final_ci95"`
	HandsPlayed int                    `json:"hands_played"`
	Outcomes    map[engine.Outcome]int `json:"outcomes"`
	Reshuffles  int                    `json:"reshuffles"`
}

const bootstrapRounds = 1000

// Summarize computes the statistics over trajectories. rng only drives the
// bootstrap resampling.
func Summarize(trajs []Trajectory, initial float64, handsPerSession int, rng *rand.Rand) Summary {
	s := Summary{Outcomes: map[engine.Outcome]int{}}
	n := len(trajs)
	if n == 0 {
		return s
	}
	finals := make([]float64, n)
	ruined := 0
	for i, t := range trajs {
		finals[i] = t.Final(initial)
		if finals[i] <= 0 {
			ruined++
		}
		s.HandsPlayed += len(t.Bankroll)
		s.Reshuffles += t.Reshuffles
		for o, c := range t.Outcomes {
			s.Outcomes[o] += c
		}
	}

	s.MeanFinal, s.Variance = meanVar(finals)
	s.StdDev = math.Sqrt(s.Variance)
	s.ROI = (s.MeanFinal - initial) / initial * 100
	if s.StdDev != 0 {
		s.Sharpe = s.ROI / (s.StdDev / initial)
	}
	if handsPerSession > 0 {
		s.EVPerHand = (s.MeanFinal - initial) / float64(handsPerSession)
	}
	s.RiskOfRuin = float64(ruined) / float64(n)

	s.Best, s.Worst = finals[0], finals[0]
	for _, f := range finals[1:] {
		s.Best = max(s.Best, f)
		s.Worst = min(s.Worst, f)
	}
	s.MaxGain = s.Best - initial
	s.MaxLoss = initial - s.Worst

	s.RuinCI[0], s.RuinCI[1] = WilsonCI95(ruined, n)
	s.MeanFinalCI[0], s.MeanFinalCI[1] = BootstrapCI95(finals, bootstrapRounds, rng)
	return s
}

func meanVar(vals []float64) (mean, variance float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	return mean, variance / float64(len(vals))
}

// WilsonCI95 is the 95% score interval for hits out of total trials.
func WilsonCI95(hits, total int) (low, hi float64) {
	if total <= 0 {
		return 0, 1
	}
	z := 1.96
	n := float64(total)
	p := float64(hits) / n
	den := 1 + (z*z)/n
	center := p + (z*z)/(2*n)
	half := z * math.Sqrt((p*(1-p))/n+(z*z)/(4*n*n))
	return (center - half) / den, (center + half) / den
}

// BootstrapCI95 for the mean of vals.
func BootstrapCI95(vals []float64, B int, rng *rand.Rand) (low, hi float64) {
	n := len(vals)
	if n == 0 || B <= 1 {
		return 0, 0
	}
	res := make([]float64, B)
	for b := 0; b < B; b++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += vals[rng.IntN(n)]
		}
		res[b] = sum / float64(n)
	}
	sort.Float64s(res)
	l := int(0.025 * float64(B-1))
	h := int(0.975 * float64(B-1))
	return res[l], res[h]
}

// pad forward-fills every series to the longest length. An empty series is
// filled with fill.
func pad(series [][]float64, fill float64) [][]float64 {
	longest := 0
	for _, s := range series {
		longest = max(longest, len(s))
	}
	out := make([][]float64, len(series))
	for i, s := range series {
		p := make([]float64, longest)
		last := fill
		for j := range p {
			if j < len(s) {
				last = s[j]
			}
			p[j] = last
		}
		out[i] = p
	}
	return out
}

// columnMean averages equal-length series per index.
func columnMean(series [][]float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	out := make([]float64, len(series[0]))
	for _, s := range series {
		for j, v := range s {
			out[j] += v
		}
	}
	for j := range out {
		out[j] /= float64(len(series))
	}
	return out
}
