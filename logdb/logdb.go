// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"encoding/binary"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/tx"
)

const selectEvents = "SELECT seq, txID, eventIndex, time, signer, name, owner, asset, tag, amount FROM event"

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a single connection keeps an in memory db alive and serializes writers
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the sqlite library version.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Write stores the events of receipts in one transaction.
func (db *LogDB) Write(ctx context.Context, receipts ...*tx.Receipt) error {
	dbTx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := dbTx.PrepareContext(ctx, "INSERT INTO event(txID, eventIndex, time, signer, name, owner, asset, tag, amount) VALUES(?,?,?,?,?,?,?,?,?)")
	if err != nil {
		dbTx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range receipts {
		for i, ev := range r.Events {
			e := newEvent(r, uint32(i), ev)
			if _, err := stmt.ExecContext(ctx,
				e.TxID.Bytes(),
				e.Index,
				e.Time,
				e.Signer.Bytes(),
				e.Name,
				e.Owner.Bytes(),
				e.Asset.Bytes(),
				e.Tag,
				binary.BigEndian.AppendUint64(nil, e.Amount),
			); err != nil {
				dbTx.Rollback()
				return errors.Wrap(err, "insert event")
			}
		}
	}
	return dbTx.Commit()
}

// FilterEvents returns events matching the filter, all events for a nil filter.
func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, selectEvents+" ORDER BY seq ASC")
	}
	var args []any
	stmt := selectEvents + " WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND time >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND time <= ?"
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.TxID != nil {
			args = append(args, criteria.TxID.Bytes())
			stmt += " AND txID = ?"
		}
		if criteria.Name != nil {
			args = append(args, *criteria.Name)
			stmt += " AND name = ?"
		}
		if criteria.Owner != nil {
			args = append(args, criteria.Owner.Bytes())
			stmt += " AND owner = ?"
		}
		if criteria.Asset != nil {
			args = append(args, criteria.Asset.Bytes())
			stmt += " AND asset = ?"
		}
		stmt += " )"
		if i == len(filter.CriteriaSet)-1 {
			stmt += ")"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}
	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			e                          Event
			txID, signer, owner, asset []byte
			amount                     []byte
		)
		if err := rows.Scan(&e.Seq, &txID, &e.Index, &e.Time, &signer, &e.Name, &owner, &asset, &e.Tag, &amount); err != nil {
			return nil, err
		}
		e.TxID = chain.BytesToBytes32(txID)
		e.Signer = chain.BytesToAddress(signer)
		e.Owner = chain.BytesToAddress(owner)
		e.Asset = chain.BytesToAddress(asset)
		if len(amount) == 8 {
			e.Amount = binary.BigEndian.Uint64(amount)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
