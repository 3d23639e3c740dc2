package testutils

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VolkerFelix/EvolveMeBackened/containers"
	"github.com/VolkerFelix/EvolveMeBackened/db"
)

// TestDB wraps a postgres test container together with a db.DB connected
// to it. Pool gives tests raw access for seeding rows the db.DB interface
// has no writer for, like users and teams.
type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Pool      *pgxpool.Pool
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	pool, err := pgxpool.New(context.Background(), container.ConnectionString())
	if err != nil {
		log.Fatalf("error creating pool for test container: %v", err)
	}

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Pool:      pool,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.Pool.Close()
	db.container.Shutdown()
}

// InsertUser creates a user and their avatar with the given stats.
func (db *TestDB) InsertUser(ctx context.Context, username string, stamina, strength int32) (uuid.UUID, error) {
	id := uuid.New()

	_, err := db.Pool.Exec(ctx,
		"INSERT INTO users (id, username) VALUES (@id, @username)",
		pgx.NamedArgs{"id": id, "username": username})
	if err != nil {
		return uuid.Nil, fmt.Errorf("error inserting user %s: %w", username, err)
	}

	_, err = db.Pool.Exec(ctx,
		"INSERT INTO user_avatars (user_id, stamina, strength) VALUES (@userID, @stamina, @strength)",
		pgx.NamedArgs{"userID": id, "stamina": stamina, "strength": strength})
	if err != nil {
		return uuid.Nil, fmt.Errorf("error inserting avatar for %s: %w", username, err)
	}

	return id, nil
}

// InsertTeam creates a team owned by ownerID with the given users as
// active members. The owner is not made a member unless listed.
func (db *TestDB) InsertTeam(ctx context.Context, name string, ownerID uuid.UUID, memberIDs ...uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()

	_, err := db.Pool.Exec(ctx,
		"INSERT INTO teams (id, team_name, owner_id) VALUES (@id, @name, @ownerID)",
		pgx.NamedArgs{"id": id, "name": name, "ownerID": ownerID})
	if err != nil {
		return uuid.Nil, fmt.Errorf("error inserting team %s: %w", name, err)
	}

	for _, userID := range memberIDs {
		_, err := db.Pool.Exec(ctx,
			"INSERT INTO team_members (id, team_id, user_id) VALUES (@id, @teamID, @userID)",
			pgx.NamedArgs{"id": uuid.New(), "teamID": id, "userID": userID})
		if err != nil {
			return uuid.Nil, fmt.Errorf("error adding member to team %s: %w", name, err)
		}
	}

	return id, nil
}

// InsertLeague creates a league with the given teams as active members.
func (db *TestDB) InsertLeague(ctx context.Context, name string, teamIDs ...uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()

	_, err := db.Pool.Exec(ctx,
		"INSERT INTO leagues (id, name, max_teams) VALUES (@id, @name, @maxTeams)",
		pgx.NamedArgs{"id": id, "name": name, "maxTeams": 32})
	if err != nil {
		return uuid.Nil, fmt.Errorf("error inserting league %s: %w", name, err)
	}

	for _, teamID := range teamIDs {
		_, err := db.Pool.Exec(ctx,
			"INSERT INTO league_memberships (id, league_id, team_id) VALUES (@id, @leagueID, @teamID)",
			pgx.NamedArgs{"id": uuid.New(), "leagueID": id, "teamID": teamID})
		if err != nil {
			return uuid.Nil, fmt.Errorf("error adding team to league %s: %w", name, err)
		}
	}

	return id, nil
}

// InsertRoster builds a league of numTeams teams, each with membersPerTeam
// users whose avatars all carry the given stats. It returns the league ID
// and the team IDs in creation order.
func (db *TestDB) InsertRoster(ctx context.Context, numTeams, membersPerTeam int, stamina, strength int32) (uuid.UUID, []uuid.UUID, error) {
	teamIDs := make([]uuid.UUID, 0, numTeams)

	for t := 0; t < numTeams; t++ {
		memberIDs := make([]uuid.UUID, 0, membersPerTeam)
		for m := 0; m < membersPerTeam; m++ {
			userID, err := db.InsertUser(ctx, fmt.Sprintf("roster-t%d-u%d-%s", t, m, uuid.NewString()[:8]), stamina, strength)
			if err != nil {
				return uuid.Nil, nil, err
			}
			memberIDs = append(memberIDs, userID)
		}

		var owner uuid.UUID
		if len(memberIDs) > 0 {
			owner = memberIDs[0]
		} else {
			var err error
			owner, err = db.InsertUser(ctx, fmt.Sprintf("roster-t%d-owner-%s", t, uuid.NewString()[:8]), 0, 0)
			if err != nil {
				return uuid.Nil, nil, err
			}
		}
		teamID, err := db.InsertTeam(ctx, fmt.Sprintf("roster-team-%d-%s", t, uuid.NewString()[:8]), owner, memberIDs...)
		if err != nil {
			return uuid.Nil, nil, err
		}
		teamIDs = append(teamIDs, teamID)
	}

	leagueID, err := db.InsertLeague(ctx, fmt.Sprintf("roster-league-%s", uuid.NewString()[:8]), teamIDs...)
	if err != nil {
		return uuid.Nil, nil, err
	}

	return leagueID, teamIDs, nil
}
