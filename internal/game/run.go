package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Phase is the run state machine's current state.
type Phase string

const (
	PhaseStageSelect   Phase = "stage_select"
	PhaseSquadPreview  Phase = "squad_preview"
	PhasePlaying       Phase = "playing"
	PhaseScoring       Phase = "scoring"
	PhaseStageComplete Phase = "stage_complete"
	PhaseShop          Phase = "shop"
	PhaseRunWon        Phase = "run_won"
	PhaseRunLost       Phase = "run_lost"
)

// Terminal reports whether the phase ends the run.
func (p Phase) Terminal() bool {
	return p == PhaseRunWon || p == PhaseRunLost
}

// RunConfig carries everything needed to start a run from a prepared card
// pool. Squad must hold exactly 15 cards; ModifierPool is the candidate pool
// offered through the shop. Opponents enables league-comparison mode when
// non-empty.
type RunConfig struct {
	Squad        []Card
	ModifierPool []Modifier
	Opponents    []LeagueOpponent
	Rules        Rules
	Seed         int64
	Logger       *zap.Logger
}

// Run is the aggregate state of one in-progress run. It is owned exclusively
// by its caller and processed one action at a time; the combo detector and
// scoring pipeline never mutate it.
type Run struct {
	ID    string `json:"id"`
	Rules Rules  `json:"rules"`
	Seed  int64  `json:"seed"`

	Phase       Phase `json:"phase"`
	Ante        int   `json:"ante"`
	Stage       Stage `json:"stage"`
	ScoreTarget int   `json:"score_target"`
	StageScore  int   `json:"stage_score"`
	RunScore    int   `json:"run_score"`

	Squad       []Card   `json:"squad"`
	Deck        []Card   `json:"deck"`
	Hand        []Card   `json:"hand"`
	DiscardPile []Card   `json:"discard_pile"`
	Selected    []string `json:"selected"`

	PlaysRemaining    int `json:"plays_remaining"`
	DiscardsRemaining int `json:"discards_remaining"`

	Coins        int         `json:"coins"`
	ModifierPool []Modifier  `json:"modifier_pool"`
	Equipped     []Modifier  `json:"equipped"`
	ComboLevels  ComboLevels `json:"combo_levels"`

	Shop *ShopOffer `json:"shop,omitempty"`

	LeagueMode      bool             `json:"league_mode"`
	Opponents       []LeagueOpponent `json:"opponents,omitempty"`
	CurrentOpponent *LeagueOpponent  `json:"current_opponent,omitempty"`
	Adverse         *AdverseEffect   `json:"adverse,omitempty"`

	LastScoring *ScoringResult `json:"last_scoring,omitempty"`

	logger *zap.Logger
	rng    *rand.Rand
}

// NewRun builds a run from a prepared card pool. Malformed input (wrong squad
// size, duplicate ids) is a collaborator contract violation and fails fast.
// The run starts in the squad preview phase; stage selection happens before
// the pool is prepared.
func NewRun(cfg RunConfig) (*Run, error) {
	squad, err := NewSquad(cfg.Squad)
	if err != nil {
		return nil, fmt.Errorf("invalid squad: %w", err)
	}

	seenMods := make(map[string]struct{}, len(cfg.ModifierPool))
	for _, m := range cfg.ModifierPool {
		if m.ID == "" {
			return nil, fmt.Errorf("modifier %q has empty id", m.Name)
		}
		if _, dup := seenMods[m.ID]; dup {
			return nil, fmt.Errorf("duplicate modifier id %q", m.ID)
		}
		seenMods[m.ID] = struct{}{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rules := cfg.Rules.sanitize()

	r := &Run{
		ID:           uuid.NewString(),
		Rules:        rules,
		Seed:         seed,
		Phase:        PhaseSquadPreview,
		Ante:         1,
		Stage:        StageLow,
		Squad:        squad,
		ModifierPool: append([]Modifier(nil), cfg.ModifierPool...),
		ComboLevels:  NewComboLevels(),
		LeagueMode:   len(cfg.Opponents) > 0,
		Opponents:    AssignOpponents(cfg.Opponents, rules.TotalAntes),
		logger:       logger,
		rng:          rand.New(rand.NewSource(seed)),
	}
	return r, nil
}

// Start shuffles the squad into a fresh deck, deals the opening hand and
// enters the first stage.
func (r *Run) Start() bool {
	if r.Phase != PhaseSquadPreview {
		return false
	}
	r.Ante = 1
	r.Stage = StageLow
	r.ScoreTarget = ScoreTarget(r.Ante, r.Stage, nil)
	r.StageScore = 0
	r.RunScore = 0
	r.Coins = 0
	r.Equipped = nil
	r.ComboLevels = NewComboLevels()
	r.CurrentOpponent = nil
	r.Adverse = nil
	r.LastScoring = nil
	r.dealFreshHand()
	r.Phase = PhasePlaying

	r.logger.Info("run started",
		zap.String("run_id", r.ID),
		zap.Int("ante", r.Ante),
		zap.String("stage", string(r.Stage)),
		zap.Int("target", r.ScoreTarget),
	)
	return true
}

// dealFreshHand reshuffles the full squad into a new deck and deals a hand.
func (r *Run) dealFreshHand() {
	deck := Shuffle(r.rng, r.Squad)
	r.Hand, r.Deck = Deal(deck, r.Rules.HandSize)
	r.DiscardPile = nil
	r.Selected = nil
	r.PlaysRemaining = r.Rules.MaxPlays
	r.DiscardsRemaining = r.Rules.MaxDiscards
}

// PlayCap returns the current selection cap, honouring a tight-formation
// adverse effect.
func (r *Run) PlayCap() int {
	return r.Adverse.PlayCap(r.Rules.MaxSelected)
}

// ToggleSelect toggles a hand card's membership in the current selection,
// referenced by instance id. Selecting beyond the play cap is a no-op.
func (r *Run) ToggleSelect(instanceID string) bool {
	if r.Phase != PhasePlaying {
		return false
	}
	if findCard(r.Hand, instanceID) < 0 {
		return false
	}
	for i, id := range r.Selected {
		if id == instanceID {
			r.Selected = append(r.Selected[:i], r.Selected[i+1:]...)
			return true
		}
	}
	if len(r.Selected) >= r.PlayCap() {
		return false
	}
	r.Selected = append(r.Selected, instanceID)
	return true
}

// selectedCards resolves the selection to cards in hand order.
func (r *Run) selectedCards() []Card {
	selected := make(map[string]bool, len(r.Selected))
	for _, id := range r.Selected {
		selected[id] = true
	}
	var cards []Card
	for _, c := range r.Hand {
		if selected[c.InstanceID] {
			cards = append(cards, c)
		}
	}
	return cards
}

// removeSelectedFromHand drops the selected cards from the hand.
func (r *Run) removeSelectedFromHand() {
	selected := make(map[string]bool, len(r.Selected))
	for _, id := range r.Selected {
		selected[id] = true
	}
	kept := r.Hand[:0]
	for _, c := range r.Hand {
		if !selected[c.InstanceID] {
			kept = append(kept, c)
		}
	}
	r.Hand = kept
	r.Selected = nil
}

// PlayHand plays the current selection: consumes one play, moves the played
// cards to the discard pile, scores them and enters the scoring phase. The
// complete trace is available synchronously on LastScoring; callers step
// through it at their own pace and commit via FinishScoring.
func (r *Run) PlayHand() (*ScoringResult, bool) {
	if r.Phase != PhasePlaying || len(r.Selected) == 0 || r.PlaysRemaining <= 0 {
		return nil, false
	}
	if len(r.Selected) > r.PlayCap() {
		return nil, false
	}

	played := r.selectedCards()
	best := DetectBest(played)
	all := DetectAll(played)
	result := CalculateScore(played, best, all, r.Equipped, r.ComboLevels, r.Adverse)

	r.removeSelectedFromHand()
	r.DiscardPile = append(r.DiscardPile, played...)
	r.PlaysRemaining--
	r.LastScoring = &result
	r.Phase = PhaseScoring

	r.logger.Debug("hand played",
		zap.String("run_id", r.ID),
		zap.String("combo", string(best.Type)),
		zap.Int("score", result.FinalScore),
		zap.Int("plays_remaining", r.PlaysRemaining),
	)
	return &result, true
}

// FinishScoring commits the pending score to the stage total and decides the
// next state: stage complete when the target is reached, run lost when plays
// are exhausted, otherwise refill the hand and keep playing. The
// target-reached check precedes the plays-exhausted check.
func (r *Run) FinishScoring() bool {
	if r.Phase != PhaseScoring {
		return false
	}
	if r.LastScoring != nil {
		r.StageScore += r.LastScoring.FinalScore
	}

	if r.StageScore >= r.ScoreTarget {
		r.Phase = PhaseStageComplete
		r.logger.Info("stage cleared",
			zap.String("run_id", r.ID),
			zap.Int("ante", r.Ante),
			zap.String("stage", string(r.Stage)),
			zap.Int("score", r.StageScore),
			zap.Int("target", r.ScoreTarget),
		)
		return true
	}
	if r.PlaysRemaining <= 0 {
		r.Phase = PhaseRunLost
		r.logger.Info("run lost",
			zap.String("run_id", r.ID),
			zap.Int("ante", r.Ante),
			zap.String("stage", string(r.Stage)),
			zap.Int("score", r.StageScore),
			zap.Int("target", r.ScoreTarget),
		)
		return true
	}

	r.Hand, r.Deck, r.DiscardPile = refillHand(r.rng, r.Hand, r.Deck, r.DiscardPile, r.Rules.HandSize)
	r.Phase = PhasePlaying
	return true
}

// DiscardSelected moves the selected cards to the discard pile and draws
// equal-count replacements. It consumes a discard, not a play, and never
// scores.
func (r *Run) DiscardSelected() bool {
	if r.Phase != PhasePlaying || len(r.Selected) == 0 || r.DiscardsRemaining <= 0 {
		return false
	}
	discarded := r.selectedCards()
	r.removeSelectedFromHand()
	r.DiscardPile = append(r.DiscardPile, discarded...)
	r.Hand, r.Deck, r.DiscardPile = refillHand(r.rng, r.Hand, r.Deck, r.DiscardPile, r.Rules.HandSize)
	r.DiscardsRemaining--
	return true
}

// ContinueToShop banks the stage score, pays out the coin reward and opens
// the shop.
func (r *Run) ContinueToShop() bool {
	if r.Phase != PhaseStageComplete {
		return false
	}
	reward := CalculateReward(r.Stage, r.PlaysRemaining, r.Coins, r.Rules)
	r.Coins += reward
	r.RunScore += r.StageScore
	r.StageScore = 0
	r.LastScoring = nil
	r.Shop = r.generateShopOffer()
	r.Phase = PhaseShop

	r.logger.Info("shop opened",
		zap.String("run_id", r.ID),
		zap.Int("reward", reward),
		zap.Int("coins", r.Coins),
	)
	return true
}

// LeaveShop advances the ante/stage pointer and starts the next stage, or
// wins the run after the adverse stage of the final ante. The full squad is
// reshuffled into a new deck and quotas reset to their maxima.
func (r *Run) LeaveShop() bool {
	if r.Phase != PhaseShop {
		return false
	}
	r.Shop = nil

	ante, stage, done := nextStage(r.Ante, r.Stage, r.Rules.TotalAntes)
	if done {
		r.Phase = PhaseRunWon
		r.logger.Info("run won",
			zap.String("run_id", r.ID),
			zap.Int("run_score", r.RunScore),
		)
		return true
	}

	r.Ante = ante
	r.Stage = stage
	r.CurrentOpponent = nil
	r.Adverse = nil
	if stage == StageAdverse {
		r.Adverse = randomAdverseEffect(r.rng)
		if r.LeagueMode && ante-1 < len(r.Opponents) {
			opp := r.Opponents[ante-1]
			r.CurrentOpponent = &opp
		}
	}
	r.ScoreTarget = ScoreTarget(ante, stage, r.CurrentOpponent)
	r.StageScore = 0
	r.dealFreshHand()
	r.Phase = PhasePlaying

	r.logger.Info("stage started",
		zap.String("run_id", r.ID),
		zap.Int("ante", ante),
		zap.String("stage", string(stage)),
		zap.Int("target", r.ScoreTarget),
	)
	return true
}

// Abandon ends the run immediately, counting it as a loss.
func (r *Run) Abandon() bool {
	if r.Phase.Terminal() {
		return false
	}
	r.Phase = PhaseRunLost
	r.logger.Info("run abandoned", zap.String("run_id", r.ID))
	return true
}

// nextStage advances the stage pointer: low → high → adverse → next ante's
// low. done is true after the adverse stage of the final ante.
func nextStage(ante int, stage Stage, totalAntes int) (int, Stage, bool) {
	switch stage {
	case StageLow:
		return ante, StageHigh, false
	case StageHigh:
		return ante, StageAdverse, false
	}
	if ante >= totalAntes {
		return ante, stage, true
	}
	return ante + 1, StageLow, false
}

// FinalScore is the run's total banked score. Score from a stage that was
// never cleared is not banked.
func (r *Run) FinalScore() int {
	return r.RunScore
}
