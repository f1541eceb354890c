// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

var pdaMarker = []byte("ProgramDerivedAddress")

// DeriveAddress computes the deterministic address owned by program for the given seeds.
// Nobody holds a private key of a derived address, only the program can act for it.
func DeriveAddress(program Address, seeds ...[]byte) Address {
	data := make([][]byte, 0, len(seeds)+2)
	data = append(data, seeds...)
	data = append(data, program.Bytes(), pdaMarker)
	return Address(Blake2b(data...))
}
