package controller

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/VolkerFelix/EvolveMeBackened/events"
	"github.com/VolkerFelix/EvolveMeBackened/model"
)

// ScoringConfig maps a stat delta onto live score and power increments. The
// values are a game-balance knob, not a structural rule, so they come in
// from configuration rather than living here as constants. The mapping is
// monotonic and never produces a negative increment.
type ScoringConfig struct {
	ScorePerStatPoint int32
	PowerPerStatPoint int32
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{ScorePerStatPoint: 1, PowerPerStatPoint: 1}
}

func (s ScoringConfig) ScoreIncrement(delta model.StatDelta) int32 {
	return clampNonNegative(delta.Total() * s.ScorePerStatPoint)
}

func (s ScoringConfig) PowerIncrement(delta model.StatDelta) int32 {
	return clampNonNegative(delta.Total() * s.PowerPerStatPoint)
}

func clampNonNegative(v int32) int32 {
	if v < 0 {
		return 0
	}
	return v
}

func (c *controller) ActiveGamesFor(ctx context.Context, userID uuid.UUID) ([]model.Game, error) {
	return c.db.ListActiveGamesFor(ctx, userID)
}

// resolveTeamSide pins a user to the side they first contributed to, even if
// their team membership changes mid-game. Only without a prior contribution
// does current membership decide, and only between the game's two teams.
func (c *controller) resolveTeamSide(ctx context.Context, g *model.Game, userID uuid.UUID) (uuid.UUID, error) {
	teamID, found, err := c.db.GetContributionTeamID(ctx, g.ID, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if found {
		return teamID, nil
	}

	teamID, found, err = c.db.GetMembershipTeamID(ctx, userID, g.HomeTeamID, g.AwayTeamID)
	if err != nil {
		return uuid.Nil, err
	}
	if !found {
		return uuid.Nil, ErrNotAParticipant
	}
	return teamID, nil
}

func (c *controller) ApplyContribution(ctx context.Context, gameID, userID uuid.UUID, delta model.StatDelta) (*model.LiveGameState, error) {
	g, err := c.db.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	teamID, err := c.resolveTeamSide(ctx, g, userID)
	if err != nil {
		return nil, err
	}

	score := c.scoring.ScoreIncrement(delta)
	power := c.scoring.PowerIncrement(delta)

	state, err := c.db.ApplyLiveIncrement(ctx, gameID, teamID, userID, score, power)
	if err != nil {
		return nil, fmt.Errorf("error updating live score for game %s: %w", gameID, err)
	}

	contribution := &model.LiveContribution{
		GameID:         gameID,
		UserID:         userID,
		TeamID:         teamID,
		ScoreAdded:     score,
		PowerAdded:     power,
		StaminaGained:  delta.Stamina,
		StrengthGained: delta.Strength,
	}
	if err := c.db.UpsertLiveContribution(ctx, contribution); err != nil {
		// The increment already landed; losing the per-user record is worth
		// a log line, not a failed contribution.
		log.Printf("error recording contribution for user %s in game %s: %v", userID, gameID, err)
	}

	topic := fmt.Sprintf("%s:%s", events.TopicLiveScores, gameID)
	if err := c.pub.Publish(ctx, topic, state); err != nil {
		log.Printf("error publishing live score for game %s: %v", gameID, err)
	}

	return state, nil
}

// RecordActivity applies one processed upload to the user's stats and then
// to every in-progress game the user is part of. The stat write is the only
// thing that can fail the call: live-game bookkeeping is best effort because
// activity ingestion must not bounce on unrelated league state.
func (c *controller) RecordActivity(ctx context.Context, userID uuid.UUID, delta model.StatDelta) ([]model.LiveGameState, error) {
	if err := c.db.ApplyStatDelta(ctx, userID, delta); err != nil {
		return nil, fmt.Errorf("error applying stat delta: %w", err)
	}

	games, err := c.db.ListActiveGamesFor(ctx, userID)
	if err != nil {
		log.Printf("error listing active games for user %s: %v", userID, err)
		return nil, nil
	}

	states := make([]model.LiveGameState, 0, len(games))
	for i := range games {
		state, err := c.ApplyContribution(ctx, games[i].ID, userID, delta)
		if err != nil {
			if errors.Is(err, ErrNotAParticipant) {
				log.Printf("skipping game %s: user %s is not on either roster", games[i].ID, userID)
			} else {
				log.Printf("error applying contribution to game %s: %v", games[i].ID, err)
			}
			continue
		}
		states = append(states, *state)
	}
	return states, nil
}
