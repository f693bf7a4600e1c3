package database

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

const (
	resultsTable = "uno_results"
	playersTable = "uno_result_players"
)

// Service stores finished game results.
type Service struct {
	db *sqlx.DB
	m  *sync.Mutex
}

// resultRow is one row of the results table.
type resultRow struct {
	ID          string `db:"id"`
	RoomCode    string `db:"room_code"`
	Winner      string `db:"winner"`
	PlayerCount int    `db:"player_count"`
	FinishedAt  string `db:"finished_at"`
}

// New opens the results database and creates its tables if needed.
func New(driver, dsn string) (*Service, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	schema := []string{
		`create table if not exists ` + resultsTable + ` (
			id text not null primary key,
			room_code text not null,
			winner text not null,
			player_count integer not null,
			finished_at text not null
		)`,
		`create table if not exists ` + playersTable + ` (
			result_id text not null,
			seat integer not null,
			player_name text not null,
			primary key (result_id, seat)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return &Service{
		db: db,
		m:  &sync.Mutex{},
	}, nil
}

func (s *Service) Close() error {
	return s.db.Close()
}

func (s *Service) Insert(result GameResult) error {
	s.m.Lock()
	defer s.m.Unlock()

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(tx.Rebind("INSERT INTO "+resultsTable+
		" (id, room_code, winner, player_count, finished_at) VALUES (?, ?, ?, ?, ?)"),
		result.ID,
		result.RoomCode,
		result.Winner,
		len(result.Players),
		result.FinishedAt)
	if err != nil {
		return fmt.Errorf("insert result %s: %w", result.ID, err)
	}
	for seat, name := range result.Players {
		_, err = tx.Exec(tx.Rebind("INSERT INTO "+playersTable+
			" (result_id, seat, player_name) VALUES (?, ?, ?)"),
			result.ID, seat, name)
		if err != nil {
			return fmt.Errorf("insert player %q of result %s: %w", name, result.ID, err)
		}
	}
	return tx.Commit()
}

const selectResults = "SELECT r.id, r.room_code, r.winner, r.player_count, r.finished_at FROM " + resultsTable + " r"

func (s *Service) GetAll() ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.query(selectResults + " ORDER BY r.finished_at")
}

func (s *Service) GetByID(id string) (GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	results, err := s.query(selectResults+" WHERE r.id = ?", id)
	if err != nil {
		return GameResult{}, err
	}
	if len(results) == 0 {
		return GameResult{}, sql.ErrNoRows
	}
	return results[0], nil
}

// GetByPlayer returns every result the named player took part in, or
// sql.ErrNoRows when there is none.
func (s *Service) GetByPlayer(playerName string) ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	results, err := s.query(selectResults+
		" WHERE r.id IN (SELECT result_id FROM "+playersTable+" WHERE player_name = ?)"+
		" ORDER BY r.finished_at", playerName)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, sql.ErrNoRows
	}
	return results, nil
}

func (s *Service) query(query string, args ...any) ([]GameResult, error) {
	var rows []resultRow
	if err := s.db.Select(&rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	results := make([]GameResult, 0, len(rows))
	for _, row := range rows {
		players := []string{}
		err := s.db.Select(&players, s.db.Rebind("SELECT player_name FROM "+playersTable+
			" WHERE result_id = ? ORDER BY seat"), row.ID)
		if err != nil {
			return nil, fmt.Errorf("query players of %s: %w", row.ID, err)
		}
		results = append(results, GameResult{
			ID:          row.ID,
			RoomCode:    row.RoomCode,
			Winner:      row.Winner,
			Players:     players,
			PlayerCount: row.PlayerCount,
			FinishedAt:  row.FinishedAt,
		})
	}
	return results, nil
}
