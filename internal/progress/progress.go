// Package progress keeps the simple cross-run record the engine hands off on
// run completion: run history plus which gameweeks a manager has unlocked.
package progress

import (
	"time"

	"github.com/gafferdeck/gaffer-server-go/internal/game"
)

// RunRecord is the value object produced when a run completes.
type RunRecord struct {
	Gameweek     int        `json:"gameweek"`
	AnteReached  int        `json:"ante_reached"`
	StageReached game.Stage `json:"stage_reached"`
	Won          bool       `json:"won"`
	FinalScore   int        `json:"final_score"`
	Timestamp    time.Time  `json:"timestamp"`
}

// NewRunRecord builds the completion record for a finished run.
func NewRunRecord(r *game.Run, gameweek int) RunRecord {
	return RunRecord{
		Gameweek:     gameweek,
		AnteReached:  r.Ante,
		StageReached: r.Stage,
		Won:          r.Phase == game.PhaseRunWon,
		FinalScore:   r.FinalScore(),
		Timestamp:    time.Now(),
	}
}

// ManagerProgress is one manager's cross-run state.
type ManagerProgress struct {
	ManagerID     string      `json:"manager_id"`
	ManagerName   string      `json:"manager_name"`
	TeamName      string      `json:"team_name"`
	UnlockedWeeks []int       `json:"unlocked_weeks"`
	RunHistory    []RunRecord `json:"run_history"`
}

// NewManagerProgress starts a fresh progress record with one unlocked week.
func NewManagerProgress(managerID, managerName, teamName string, firstWeek int) *ManagerProgress {
	return &ManagerProgress{
		ManagerID:     managerID,
		ManagerName:   managerName,
		TeamName:      teamName,
		UnlockedWeeks: []int{firstWeek},
	}
}

// Unlocked reports whether a gameweek is unlocked.
func (p *ManagerProgress) Unlocked(week int) bool {
	for _, w := range p.UnlockedWeeks {
		if w == week {
			return true
		}
	}
	return false
}

// Record appends a completed run and, on a win, unlocks the next week.
// nextWeek < 0 means there is nothing left to unlock.
func (p *ManagerProgress) Record(rec RunRecord, nextWeek int) {
	p.RunHistory = append(p.RunHistory, rec)
	if rec.Won && nextWeek >= 0 && !p.Unlocked(nextWeek) {
		p.UnlockedWeeks = append(p.UnlockedWeeks, nextWeek)
	}
}

// NextUnlock returns the first week from candidates that is still locked,
// or -1 when everything is unlocked. Callers order candidates by whatever
// unlock priority they want.
func (p *ManagerProgress) NextUnlock(candidates []int) int {
	for _, w := range candidates {
		if !p.Unlocked(w) {
			return w
		}
	}
	return -1
}
