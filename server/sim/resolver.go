package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
)

// insuranceIndex is the Hi-Lo true count at which insurance is taken.
const insuranceIndex = 3.0

// Table is one session's private dealing state.
type Table struct {
	Rules    engine.RuleSet
	Shoe     *engine.Shoe
	Count    *engine.CountTracker
	Strategy engine.Strategy
	Dealer   engine.Dealer
	Bets     BetSizer
	Rand     *rand.Rand
}

// NewTable wires a fresh shoe and counter for cfg around rng.
func NewTable(cfg Config, rng *rand.Rand) (*Table, error) {
	strategy, err := engine.StrategyByName(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	system, err := engine.CountSystemByName(cfg.CountSystem)
	if err != nil {
		return nil, err
	}
	bets := BetSizer{
		MinBet:   cfg.MinBet,
		Spread:   cfg.Spread,
		Rounding: cfg.rounding(),
		Counting: cfg.Rules.CountingAllowed,
	}
	if cfg.Exposure != nil {
		adj := *cfg.Exposure
		if cfg.Rules.MaxSplits == 0 {
			adj.SplitChance = 0
		}
		bets.Adjust = adj
	}
	return &Table{
		Rules:    cfg.Rules,
		Shoe:     engine.NewShoe(cfg.Rules, rng),
		Count:    engine.NewCountTracker(system),
		Strategy: strategy,
		Dealer:   engine.Dealer{HitSoft17: cfg.Rules.HitSoft17},
		Bets:     bets,
		Rand:     rng,
	}, nil
}

// draw takes one card and counts it as it leaves the shoe.
func (t *Table) draw() (engine.Card, error) {
	c, err := t.Shoe.Draw()
	if err != nil {
		return c, err
	}
	t.Count.Update(c)
	return c, nil
}

// HandResult is the settlement of one hand.
type HandResult struct {
	Outcome   engine.Outcome `json:"outcome"`
	Bet       float64        `json:"bet"`     // initial wager after the cap
	Wagered   float64        `json:"wagered"` // total own money at risk, doubles and insurance included
	Delta     float64        `json:"delta"`
	Bankroll  float64        `json:"bankroll"`
	TrueCount float64        `json:"true_count"` // before the deal
	Insured   bool           `json:"insured"`
	Player    engine.Hand    `json:"-"`
	Dealer    engine.Hand    `json:"-"`
}

// Resolver plays one hand against the table and settles it.
type Resolver interface {
	Resolve(t *Table, bankroll float64) (HandResult, error)
}

// ResolverFor picks the resolver for the config's mode and outcome model.
func ResolverFor(c Config) Resolver {
	if c.Mode == Estimated {
		return NewEstimatedResolver(c.Model)
	}
	return DealtResolver{}
}

// DealtResolver deals real cards: naturals, optional insurance and
// surrender, strategy, dealer play-out, house-rule terminals, comparison.
type DealtResolver struct{}

func (DealtResolver) Resolve(t *Table, bankroll float64) (HandResult, error) {
	tc := t.Count.TrueCount(t.Shoe.Remaining())
	bet := t.Bets.Size(tc, bankroll, t.Rand)
	res := HandResult{Bet: bet, Wagered: bet, TrueCount: tc}

	var cards [4]engine.Card
	for i := range cards {
		c, err := t.draw()
		if err != nil {
			return res, fmt.Errorf("initial deal: %w", err)
		}
		cards[i] = c
	}
	player := engine.Hand{cards[0], cards[1]}
	dealer := engine.Hand{cards[2], cards[3]}
	up := dealer[0]

	// insurance side bet, settled with the naturals
	var insurance float64
	if t.Rules.Insurance && t.Rules.CountingAllowed && up.Rank == engine.Ace && tc >= insuranceIndex {
		insurance = min(bet/2, bankroll-res.Wagered)
		if insurance > 0 {
			res.Insured = true
			res.Wagered += insurance
		}
	}
	settle := func(o engine.Outcome, delta float64) (HandResult, error) {
		if res.Insured {
			if dealer.IsNatural() {
				delta += 2 * insurance
			} else {
				delta -= insurance
			}
		}
		res.Outcome, res.Delta, res.Bankroll = o, delta, bankroll+delta
		res.Player, res.Dealer = player, dealer
		return res, nil
	}

	switch pn, dn := player.IsNatural(), dealer.IsNatural(); {
	case pn && dn:
		return settle(engine.Push, 0)
	case pn:
		return settle(engine.Blackjack, bet*t.Rules.BlackjackPayout)
	case dn:
		return settle(engine.DealerBlackjack, -bet)
	}

	if t.Rules.Surrender {
		if s, ok := t.Strategy.(engine.Surrenderer); ok && s.Surrender(player, up) {
			return settle(engine.Surrendered, -bet/2)
		}
	}

	// winAmt is paid on a win, loseAmt taken on a loss; they differ on free doubles.
	winAmt, loseAmt := bet, bet
	canDouble := t.Rules.CanDouble(player)
play:
	for {
		switch t.Strategy.Decide(player, up, canDouble && len(player) == 2) {
		case engine.Stand:
			break play
		case engine.Surrender:
			if t.Rules.Surrender && len(player) == 2 {
				return settle(engine.Surrendered, -bet/2)
			}
			break play
		case engine.Double:
			if !canDouble || len(player) != 2 {
				break play
			}
			c, err := t.draw()
			if err != nil {
				return res, fmt.Errorf("double: %w", err)
			}
			player = append(player, c)
			if t.Rules.FreeDoubles {
				winAmt = 2 * bet
			} else {
				extra := min(bet, bankroll-res.Wagered)
				winAmt, loseAmt = bet+extra, bet+extra
				res.Wagered += extra
			}
			if player.IsBust() {
				return settle(engine.Bust, -loseAmt)
			}
			break play
		default:
			c, err := t.draw()
			if err != nil {
				return res, fmt.Errorf("hit: %w", err)
			}
			player = append(player, c)
			if player.IsBust() {
				return settle(engine.Bust, -loseAmt)
			}
		}
	}

	dealer, err := t.Dealer.PlayOut(dealer, t.Shoe, t.Count)
	if err != nil {
		return res, fmt.Errorf("dealer play: %w", err)
	}

	pv, dv := player.Value(), dealer.Value()
	switch {
	case t.Rules.FiveCardCharlie && len(player) >= 5:
		return settle(engine.Charlie, winAmt)
	case t.Rules.Push22 && dv == 22:
		return settle(engine.Push22, 0)
	case dv > 21:
		return settle(engine.DealerBust, winAmt)
	case pv > dv:
		return settle(engine.Win, winAmt)
	case pv < dv:
		return settle(engine.Lose, -loseAmt)
	}
	return settle(engine.Push, 0)
}
