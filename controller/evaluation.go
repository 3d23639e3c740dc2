package controller

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/VolkerFelix/EvolveMeBackened/events"
	"github.com/VolkerFelix/EvolveMeBackened/model"
)

// EvaluateGamesForDate resolves every not-yet-finished game on the given UTC
/// day. Each game is its own unit of work: a failure is recorded and the
// batch moves on. Games that another run already finished are skipped by the
// status guard, so triggering the same date twice reports zero new games.
func (c *controller) EvaluateGamesForDate(ctx context.Context, date time.Time) (*model.EvaluationSummary, error) {
	games, err := c.db.ListUnfinishedGamesOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("error listing games for %s: %w", date.Format("2006-01-02"), err)
	}

	summary := &model.EvaluationSummary{
		Date:    date.UTC(),
		Errors:  []string{},
		Results: []model.GameOutcome{},
	}

	for i := range games {
		g := &games[i]
		out, applied, err := c.evaluateAndRecord(ctx, g)
		if err != nil {
			summary.GamesEvaluated++
			summary.Errors = append(summary.Errors, fmt.Sprintf("game %s: %v", g.ID, err))
			continue
		}
		if !applied {
			// Someone else finished it between the listing and the guard.
			continue
		}
		summary.GamesEvaluated++
		summary.GamesUpdated++
		summary.Results = append(summary.Results, *out)
	}

	log.Printf("evaluated %d games for %s, %d updated, %d failed",
		summary.GamesEvaluated, date.Format("2006-01-02"), summary.GamesUpdated, len(summary.Errors))
	return summary, nil
}

// evaluateAndRecord handles a single game: fresh power for both sides, the
// pure outcome, then the guarded finish that commits the status flip and
// both standings increments together. A failure anywhere leaves the game
// unfinished, so the next trigger picks it up again. The returned applied
// flag is false when the guard lost the race.
func (c *controller) evaluateAndRecord(ctx context.Context, g *model.Game) (*model.GameOutcome, bool, error) {
	homePower, err := c.db.GetTeamPower(ctx, g.HomeTeamID)
	if err != nil {
		return nil, false, fmt.Errorf("home power: %w", err)
	}
	awayPower, err := c.db.GetTeamPower(ctx, g.AwayTeamID)
	if err != nil {
		return nil, false, fmt.Errorf("away power: %w", err)
	}

	out := c.EvaluateGame(homePower, awayPower)
	out.GameID = g.ID
	out.HomeTeamName = g.HomeTeamName
	out.AwayTeamName = g.AwayTeamName

	applied, err := c.db.FinishGame(ctx, g, &out)
	if err != nil {
		return nil, false, fmt.Errorf("finishing game: %w", err)
	}
	if !applied {
		return nil, false, nil
	}

	if err := c.pub.Publish(ctx, events.TopicGameResults, out); err != nil {
		log.Printf("error publishing result for game %s: %v", g.ID, err)
	}

	return &out, true, nil
}

func (c *controller) GameDaySummary(ctx context.Context, date time.Time) (*model.GameDaySummary, error) {
	return c.db.CountGamesOn(ctx, date)
}

func (c *controller) StartDueGames(ctx context.Context) (int, error) {
	started, err := c.db.StartDueGames(ctx, c.clock.Now())
	if err != nil {
		return 0, err
	}
	if started > 0 {
		log.Printf("moved %d games to in_progress", started)
	}
	return started, nil
}

// RunPeriodicGameEvaluation starts due games and evaluates due games on a
// fixed cadence until the shutdown channel is closed. Unevaluated games stay
// scheduled, so anything a tick misses is picked up by the next.
func (c *controller) RunPeriodicGameEvaluation(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(frequency)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			log.Printf("shutting down periodic game evaluation")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			c.runEvaluationTick(ctx)
			cancel()
		}
	}
}

// runEvaluationTick is one pass of the periodic loop. It evaluates yesterday
// as well as today, so games whose day rolled over between ticks are still
// resolved instead of waiting for a manual trigger.
func (c *controller) runEvaluationTick(ctx context.Context) {
	if _, err := c.StartDueGames(ctx); err != nil {
		log.Printf("error starting due games: %v", err)
	}
	now := c.clock.Now().UTC()
	for _, date := range []time.Time{now.AddDate(0, 0, -1), now} {
		if _, err := c.EvaluateGamesForDate(ctx, date); err != nil {
			log.Printf("error running periodic evaluation for %s: %v", date.Format("2006-01-02"), err)
		}
	}
}
