// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/chain"
)

// Layout of an encoded ledger record.
const (
	discriminatorSize = 8
	ownerSize         = 32
	countSize         = 4
	idSize            = 32
	timestampSize     = 8
)

// discriminator tags ledger record data.
var discriminator = chain.Blake2b([]byte("account:StakeInfo")).Bytes()[:discriminatorSize]

var errCorruptLedger = errors.New("corrupt ledger record")

// Space returns the storage size of a ledger record holding n entries.
func Space(n uint64) uint64 {
	return discriminatorSize + ownerSize +
		(countSize + n) +
		(countSize + n*idSize) +
		(countSize + n*timestampSize)
}

// Entry is one custodied asset.
type Entry struct {
	CollectionTag uint8         `json:"collectionTag"`
	AssetID       chain.Address `json:"assetID"`
	StakedAt      int64         `json:"stakedAt"`
}

// Ledger is the per owner record of staked assets.
type Ledger struct {
	owner   *chain.Address
	entries []Entry
}

// Owner returns the bound owner, if any.
func (l *Ledger) Owner() (chain.Address, bool) {
	if l.owner == nil {
		return chain.Address{}, false
	}
	return *l.owner, true
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in staking order.
func (l *Ledger) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// EnsureOwner binds an unowned ledger to caller, or checks the bound owner is caller.
func (l *Ledger) EnsureOwner(caller chain.Address) error {
	if l.owner == nil {
		l.owner = &caller
		return nil
	}
	return l.checkOwner(caller)
}

func (l *Ledger) checkOwner(caller chain.Address) error {
	if l.owner == nil || *l.owner != caller {
		return newError(CodeUnauthorized, "caller %v", caller)
	}
	return nil
}

// Append records a new entry. expected must equal the current entry count.
func (l *Ledger) Append(tag uint8, assetID chain.Address, stakedAt int64, expected uint64) error {
	if expected != uint64(len(l.entries)) {
		return newError(CodeIncorrectSize, "expected %d, have %d", expected, len(l.entries))
	}
	l.entries = append(l.entries, Entry{CollectionTag: tag, AssetID: assetID, StakedAt: stakedAt})
	return nil
}

// RemoveAt deletes the entry at i, keeping the order of the others.
func (l *Ledger) RemoveAt(i int) (Entry, error) {
	if i < 0 || i >= len(l.entries) {
		return Entry{}, newError(CodeNotFound, "index %d", i)
	}
	e := l.entries[i]
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return e, nil
}

// FindByAsset returns the index of the first entry of assetID.
func (l *Ledger) FindByAsset(assetID chain.Address) (int, error) {
	for i, e := range l.entries {
		if e.AssetID == assetID {
			return i, nil
		}
	}
	return -1, newError(CodeNotFound, "asset %v", assetID)
}

// resetTimestamps sets every entry's stake time to now.
func (l *Ledger) resetTimestamps(now int64) {
	for i := range l.entries {
		l.entries[i].StakedAt = now
	}
}

// Encode returns the persisted form of the ledger, exactly Space(Len()) bytes.
// An unbound owner is stored as the zero address.
func (l *Ledger) Encode() []byte {
	n := uint64(len(l.entries))
	data := make([]byte, 0, Space(n))
	data = append(data, discriminator...)
	if l.owner != nil {
		data = append(data, l.owner.Bytes()...)
	} else {
		data = append(data, make([]byte, ownerSize)...)
	}

	data = binary.LittleEndian.AppendUint32(data, uint32(n))
	for _, e := range l.entries {
		data = append(data, e.CollectionTag)
	}
	data = binary.LittleEndian.AppendUint32(data, uint32(n))
	for _, e := range l.entries {
		data = append(data, e.AssetID.Bytes()...)
	}
	data = binary.LittleEndian.AppendUint32(data, uint32(n))
	for _, e := range l.entries {
		data = binary.LittleEndian.AppendUint64(data, uint64(e.StakedAt))
	}
	return data
}

type reader struct {
	data []byte
	err  error
}

func (r *reader) next(n uint64) []byte {
	if r.err != nil {
		return nil
	}
	if uint64(len(r.data)) < n {
		r.err = errors.Wrapf(errCorruptLedger, "need %d bytes, have %d", n, len(r.data))
		return nil
	}
	b := r.data[:n]
	r.data = r.data[n:]
	return b
}

func (r *reader) count(width uint64) uint64 {
	b := r.next(countSize)
	if b == nil {
		return 0
	}
	n := uint64(binary.LittleEndian.Uint32(b))
	if n*width > uint64(len(r.data)) {
		r.err = errors.Wrapf(errCorruptLedger, "count %d exceeds data", n)
		return 0
	}
	return n
}

// DecodeLedger parses a persisted ledger. Trailing bytes are ignored.
func DecodeLedger(data []byte) (*Ledger, error) {
	r := &reader{data: data}
	if disc := r.next(discriminatorSize); disc != nil && string(disc) != string(discriminator) {
		return nil, errors.Wrap(errCorruptLedger, "bad discriminator")
	}
	var l Ledger
	if owner := r.next(ownerSize); owner != nil {
		if addr := chain.BytesToAddress(owner); !addr.IsZero() {
			l.owner = &addr
		}
	}

	n := r.count(1)
	tags := r.next(n)
	if ids := r.count(idSize); r.err == nil && ids != n {
		return nil, errors.Wrapf(errCorruptLedger, "id count %d, tag count %d", ids, n)
	}
	ids := r.next(n * idSize)
	if ts := r.count(timestampSize); r.err == nil && ts != n {
		return nil, errors.Wrapf(errCorruptLedger, "timestamp count %d, tag count %d", ts, n)
	}
	times := r.next(n * timestampSize)
	if r.err != nil {
		return nil, r.err
	}

	l.entries = make([]Entry, n)
	for i := range l.entries {
		l.entries[i] = Entry{
			CollectionTag: tags[i],
			AssetID:       chain.BytesToAddress(ids[i*idSize : (i+1)*idSize]),
			StakedAt:      int64(binary.LittleEndian.Uint64(times[i*timestampSize:])),
		}
	}
	return &l, nil
}
