package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gafferdeck/gaffer-server-go/internal/game"
	"github.com/gafferdeck/gaffer-server-go/internal/progress"
)

// clientMessage is one action request from the client.
type clientMessage struct {
	Type string `json:"type"`

	// new_run payload
	Squad     []game.Card            `json:"squad,omitempty"`
	Modifiers []game.Modifier        `json:"modifiers,omitempty"`
	Opponents []game.LeagueOpponent  `json:"opponents,omitempty"`
	Gameweek  int                    `json:"gameweek,omitempty"`
	Seed      int64                  `json:"seed,omitempty"`

	// action payloads
	CardID     string `json:"card_id,omitempty"`
	ModifierID string `json:"modifier_id,omitempty"`
}

// serverMessage is one reply pushed to the client.
type serverMessage struct {
	Type    string              `json:"type"`
	Run     *runView            `json:"run,omitempty"`
	Scoring *game.ScoringResult `json:"scoring,omitempty"`
	Record  *progress.RunRecord `json:"record,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// runView is the client-facing projection of a run. Deck order is the draw
// order and must stay hidden, so only the count is exposed.
type runView struct {
	ID                string                `json:"id"`
	Phase             game.Phase            `json:"phase"`
	Ante              int                   `json:"ante"`
	Stage             game.Stage            `json:"stage"`
	ScoreTarget       int                   `json:"score_target"`
	StageScore        int                   `json:"stage_score"`
	RunScore          int                   `json:"run_score"`
	Hand              []game.Card           `json:"hand"`
	DeckCount         int                   `json:"deck_count"`
	DiscardCount      int                   `json:"discard_count"`
	Selected          []string              `json:"selected"`
	PlaysRemaining    int                   `json:"plays_remaining"`
	DiscardsRemaining int                   `json:"discards_remaining"`
	PlayCap           int                   `json:"play_cap"`
	Coins             int                   `json:"coins"`
	Equipped          []game.Modifier       `json:"equipped"`
	ComboLevels       game.ComboLevels      `json:"combo_levels"`
	Shop              *game.ShopOffer       `json:"shop,omitempty"`
	Adverse           *game.AdverseEffect   `json:"adverse,omitempty"`
	CurrentOpponent   *game.LeagueOpponent  `json:"current_opponent,omitempty"`
}

func viewOf(r *game.Run) *runView {
	if r == nil {
		return nil
	}
	return &runView{
		ID:                r.ID,
		Phase:             r.Phase,
		Ante:              r.Ante,
		Stage:             r.Stage,
		ScoreTarget:       r.ScoreTarget,
		StageScore:        r.StageScore,
		RunScore:          r.RunScore,
		Hand:              r.Hand,
		DeckCount:         len(r.Deck),
		DiscardCount:      len(r.DiscardPile),
		Selected:          r.Selected,
		PlaysRemaining:    r.PlaysRemaining,
		DiscardsRemaining: r.DiscardsRemaining,
		PlayCap:           r.PlayCap(),
		Coins:             r.Coins,
		Equipped:          r.Equipped,
		ComboLevels:       r.ComboLevels,
		Shop:              r.Shop,
		Adverse:           r.Adverse,
		CurrentOpponent:   r.CurrentOpponent,
	}
}

// session is one connected client and its (at most one) active run.
type session struct {
	id        string
	server    *Server
	conn      *websocket.Conn
	managerID string
	gameweek  int
	game      *game.Run
	logger    *zap.Logger
}

func newSession(s *Server, conn *websocket.Conn, managerID string) *session {
	id := uuid.NewString()
	return &session{
		id:        id,
		server:    s,
		conn:      conn,
		managerID: managerID,
		logger:    s.logger.With(zap.String("session_id", id)),
	}
}

// run reads and handles messages until the connection closes. Messages are
// handled strictly in order.
func (s *session) run() {
	defer s.conn.Close()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError("malformed message")
			continue
		}
		s.handle(msg)
	}
}

func (s *session) handle(msg clientMessage) {
	switch msg.Type {
	case "new_run":
		s.handleNewRun(msg)
	case "resume":
		s.handleResume()
	case "start":
		s.applyAction(func(r *game.Run) bool { return r.Start() })
	case "toggle_select":
		s.applyAction(func(r *game.Run) bool { return r.ToggleSelect(msg.CardID) })
	case "play":
		s.handlePlay()
	case "finish_scoring":
		s.applyAction(func(r *game.Run) bool { return r.FinishScoring() })
	case "discard":
		s.applyAction(func(r *game.Run) bool { return r.DiscardSelected() })
	case "continue":
		s.applyAction(func(r *game.Run) bool { return r.ContinueToShop() })
	case "buy_modifier":
		s.applyAction(func(r *game.Run) bool { return r.BuyModifier(msg.ModifierID) })
	case "buy_tactic":
		s.applyAction(func(r *game.Run) bool { return r.BuyTactic() })
	case "buy_transfer":
		s.applyAction(func(r *game.Run) bool { return r.BuyTransfer() })
	case "sell_modifier":
		s.applyAction(func(r *game.Run) bool { return r.SellModifier(msg.ModifierID) })
	case "leave_shop":
		s.applyAction(func(r *game.Run) bool { return r.LeaveShop() })
	case "abandon":
		s.applyAction(func(r *game.Run) bool { return r.Abandon() })
	case "state":
		s.sendState()
	default:
		s.sendError("unknown message type: " + msg.Type)
	}
}

func (s *session) handleNewRun(msg clientMessage) {
	r, err := game.NewRun(game.RunConfig{
		Squad:        msg.Squad,
		ModifierPool: msg.Modifiers,
		Opponents:    msg.Opponents,
		Rules:        s.server.rules,
		Seed:         msg.Seed,
		Logger:       s.server.logger,
	})
	if err != nil {
		s.sendError(err.Error())
		return
	}
	s.game = r
	s.gameweek = msg.Gameweek
	s.persist()
	s.sendState()
}

func (s *session) handleResume() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	snap, err := s.server.store.LoadSnapshot(ctx, s.managerID)
	if err != nil {
		s.logger.Warn("failed to load snapshot", zap.Error(err))
		s.sendError("failed to load saved run")
		return
	}
	if snap == nil {
		s.sendError("no saved run")
		return
	}
	r, err := snap.Restore(s.server.logger)
	if err != nil {
		s.sendError(err.Error())
		return
	}
	s.game = r
	s.sendState()
}

func (s *session) handlePlay() {
	if s.game == nil {
		s.sendError("no active run")
		return
	}
	result, ok := s.game.PlayHand()
	if !ok {
		s.sendError("action rejected")
		return
	}
	s.persist()
	s.send(serverMessage{Type: "scoring", Run: viewOf(s.game), Scoring: result})
}

// applyAction runs one engine action, persists the outcome and pushes the new
// state. Rejected actions surface as errors without a state push.
func (s *session) applyAction(action func(*game.Run) bool) {
	if s.game == nil {
		s.sendError("no active run")
		return
	}
	if !action(s.game) {
		s.sendError("action rejected")
		return
	}
	s.persist()
	s.sendState()
}

// persist snapshots a resumable run, or clears the snapshot and records the
// completed run when a terminal phase is reached.
func (s *session) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.game.Phase.Terminal() {
		if err := s.server.store.ClearSnapshot(ctx, s.managerID); err != nil {
			s.logger.Warn("failed to clear snapshot", zap.Error(err))
		}
		s.recordRun(ctx)
		return
	}
	snap, ok := s.game.Snapshot()
	if !ok {
		return
	}
	if err := s.server.store.SaveSnapshot(ctx, s.managerID, snap); err != nil {
		s.logger.Warn("failed to save snapshot", zap.Error(err))
	}
}

// recordRun hands the completion record to the progress store and pushes it
// to the client.
func (s *session) recordRun(ctx context.Context) {
	rec := progress.NewRunRecord(s.game, s.gameweek)

	p, err := s.server.store.LoadProgress(ctx, s.managerID)
	if err != nil {
		s.logger.Warn("failed to load progress", zap.Error(err))
	}
	if p == nil {
		p = progress.NewManagerProgress(s.managerID, "", "", s.gameweek)
	}
	p.Record(rec, -1)
	if err := s.server.store.SaveProgress(ctx, p); err != nil {
		s.logger.Warn("failed to save progress", zap.Error(err))
	}
	s.send(serverMessage{Type: "run_complete", Run: viewOf(s.game), Record: &rec})
}

func (s *session) sendState() {
	s.send(serverMessage{Type: "state", Run: viewOf(s.game)})
}

func (s *session) sendError(message string) {
	s.send(serverMessage{Type: "error", Error: message})
}

func (s *session) send(msg serverMessage) {
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Warn("failed to write message", zap.Error(err))
	}
}
