// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	txID BLOB(32) NOT NULL,
	eventIndex INTEGER NOT NULL,
	time INTEGER NOT NULL,
	signer BLOB(32) NOT NULL,
	name TEXT NOT NULL,
	owner BLOB(32) NOT NULL,
	asset BLOB(32) NOT NULL,
	tag INTEGER NOT NULL,
	amount BLOB(8) NOT NULL
);

CREATE INDEX IF NOT EXISTS event_i_time ON event(time);
CREATE INDEX IF NOT EXISTS event_i_txID ON event(txID);
CREATE INDEX IF NOT EXISTS event_i_owner ON event(owner);
CREATE INDEX IF NOT EXISTS event_i_asset ON event(asset);
CREATE INDEX IF NOT EXISTS event_i_name ON event(name);
`
