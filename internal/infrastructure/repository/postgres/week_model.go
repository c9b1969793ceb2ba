package postgres

import "time"

type weekTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	Status    string    `db:"status"`
	CloseDate time.Time `db:"close_date"`
	Price     int64     `db:"price"`
	AdminFee  int64     `db:"admin_fee"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type weekInsertModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	Status    string    `db:"status"`
	CloseDate time.Time `db:"close_date"`
	Price     int64     `db:"price"`
	AdminFee  int64     `db:"admin_fee"`
	CreatedAt time.Time `db:"created_at"`
}

type matchTableModel struct {
	ID           string    `db:"id"`
	WeekID       string    `db:"week_id"`
	SortOrder    int       `db:"sort_order"`
	HomeTeam     string    `db:"home_team"`
	AwayTeam     string    `db:"away_team"`
	HomeLogo     string    `db:"home_logo"`
	AwayLogo     string    `db:"away_logo"`
	KickoffAt    time.Time `db:"kickoff_at"`
	Status       string    `db:"status"`
	HomePosition *int      `db:"home_position"`
	AwayPosition *int      `db:"away_position"`
	HomeScore    *int      `db:"home_score"`
	AwayScore    *int      `db:"away_score"`
	Outcome      *string   `db:"outcome"`
}
