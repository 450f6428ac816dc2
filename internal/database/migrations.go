package database

type migration struct {
	id   int
	name string
	sql  string
}

var migrations = []migration{
	{
		id:   1,
		name: "initial_schema",
		sql: `
			-- Games table: what is needed to rebuild a game from its log
			CREATE TABLE games (
				id TEXT PRIMARY KEY,
				seed INTEGER NOT NULL,
				player_count INTEGER NOT NULL,
				rules_json TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'active',
				winner TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);

			-- Game actions: every accepted action, in order
			CREATE TABLE game_actions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				game_id TEXT NOT NULL,
				seq INTEGER NOT NULL,
				action_type TEXT NOT NULL,
				message_json TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				UNIQUE (game_id, seq),
				FOREIGN KEY (game_id) REFERENCES games(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_game_actions_game ON game_actions(game_id);
		`,
	},
	{
		id:   2,
		name: "add_snapshots",
		sql: `
			-- Latest view of each game, for reads that do not need a replay
			CREATE TABLE game_snapshots (
				game_id TEXT PRIMARY KEY,
				seq INTEGER NOT NULL,
				encoding TEXT NOT NULL,
				data BLOB NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (game_id) REFERENCES games(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_games_status ON games(status);
		`,
	},
}
