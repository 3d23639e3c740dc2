package controller

import (
	"github.com/VolkerFelix/EvolveMeBackened/model"
)

// EvaluateGame turns two team powers into a match outcome. Each side scores
// its average power; the strictly higher score wins and equal scores are a
// draw with no winner. No I/O happens here, which is what makes re-running an
// evaluation safe.
func (c *controller) EvaluateGame(home, away *model.TeamPower) model.GameOutcome {
	out := model.GameOutcome{
		HomeScore: home.AveragePower,
		AwayScore: away.AveragePower,
	}

	switch {
	case out.HomeScore > out.AwayScore:
		out.HomeResult = model.ResultWin
		out.AwayResult = model.ResultLoss
		winner := home.TeamID
		out.WinnerTeamID = &winner
	case out.HomeScore < out.AwayScore:
		out.HomeResult = model.ResultLoss
		out.AwayResult = model.ResultWin
		winner := away.TeamID
		out.WinnerTeamID = &winner
	default:
		out.HomeResult = model.ResultDraw
		out.AwayResult = model.ResultDraw
	}

	return out
}
