package model

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID        uuid.UUID
	Name      string
	Color     string
	OwnerID   uuid.UUID
	CreatedAt time.Time
}

// TeamPower is the aggregate strength of a team's active roster at a point
// in time. It is computed fresh from member stats for every evaluation and
// never persisted.
type TeamPower struct {
	TeamID       uuid.UUID `json:"team_id"`
	MemberCount  int32     `json:"member_count"`
	TotalPower   int32     `json:"total_power"`
	AveragePower int32     `json:"average_power"`
}
