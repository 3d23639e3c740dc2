package controller

import (
	"context"

	"github.com/google/uuid"

	"github.com/VolkerFelix/EvolveMeBackened/model"
)

// GetTeamPower is always computed fresh from the current member stats, with
// no caching between calls. Two evaluations in the same batch each see the
// stats as they are at that moment.
func (c *controller) GetTeamPower(ctx context.Context, teamID uuid.UUID) (*model.TeamPower, error) {
	return c.db.GetTeamPower(ctx, teamID)
}
