package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VolkerFelix/EvolveMeBackened/model"
)

var (
	ErrTeamNotFound   error = errors.New("team not found")
	ErrGameNotFound   error = errors.New("game not found")
	ErrSeasonNotFound error = errors.New("season not found")
	ErrUserNotFound   error = errors.New("user not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) GetTeam(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	const query = `SELECT id, team_name, team_color, owner_id, created_at
					FROM teams WHERE id=@id`

	args := pgx.NamedArgs{"id": id}
	var t model.Team
	err := db.pool.QueryRow(ctx, query, args).Scan(
		&t.ID, &t.Name, &t.Color, &t.OwnerID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("error reading team %s: %w", id, err)
	}
	return &t, nil
}

// GetTeamPower aggregates the active roster in a single query. The LEFT JOIN
// keeps members without a stat row at zero rather than dropping them from
// the member count.
func (db *postgresDB) GetTeamPower(ctx context.Context, teamID uuid.UUID) (*model.TeamPower, error) {
	const query = `SELECT
						COUNT(tm.user_id) AS member_count,
						COALESCE(SUM(ua.stamina + ua.strength), 0) AS total_power
					FROM team_members tm
					LEFT JOIN user_avatars ua ON tm.user_id = ua.user_id
					WHERE tm.team_id=@teamID AND tm.status='active'`

	args := pgx.NamedArgs{"teamID": teamID}
	power := &model.TeamPower{TeamID: teamID}
	err := db.pool.QueryRow(ctx, query, args).Scan(&power.MemberCount, &power.TotalPower)
	if err != nil {
		return nil, fmt.Errorf("error computing power for team %s: %w", teamID, err)
	}
	if power.MemberCount > 0 {
		power.AveragePower = power.TotalPower / power.MemberCount
	}
	return power, nil
}

func (db *postgresDB) ApplyStatDelta(ctx context.Context, userID uuid.UUID, delta model.StatDelta) error {
	const query = `UPDATE user_avatars
					SET stamina = stamina + @stamina,
						strength = strength + @strength,
						updated = @updated
					WHERE user_id=@userID`

	args := pgx.NamedArgs{
		"userID":   userID,
		"stamina":  delta.Stamina,
		"strength": delta.Strength,
		"updated":  db.clock.Now().UTC(),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error applying stat delta for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
