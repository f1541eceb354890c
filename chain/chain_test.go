// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressString(t *testing.T) {
	addr := BytesToAddress([]byte("owner"))

	parsed, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	_, err = ParseAddress("111")
	assert.Error(t, err)
	_, err = ParseAddress("0OIl")
	assert.Error(t, err)

	assert.Equal(t, "11111111111111111111111111111111", Address{}.String())
	assert.True(t, Address{}.IsZero())
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("json"))
	data, err := json.Marshal(&addr)
	require.NoError(t, err)

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestParseBytes32(t *testing.T) {
	b := BytesToBytes32([]byte("abc"))
	parsed, err := ParseBytes32(b.String())
	require.NoError(t, err)
	assert.Equal(t, b, parsed)

	parsed, err = ParseBytes32(b.String()[2:])
	require.NoError(t, err)
	assert.Equal(t, b, parsed)

	_, err = ParseBytes32("0x12")
	assert.Error(t, err)
	_, err = ParseBytes32("1x" + b.String()[2:])
	assert.Error(t, err)
}

func TestDeriveAddress(t *testing.T) {
	owner := BytesToAddress([]byte("owner"))
	a1 := DeriveAddress(StakingProgramID, []byte("stake"), owner.Bytes())
	a2 := DeriveAddress(StakingProgramID, []byte("stake"), owner.Bytes())
	assert.Equal(t, a1, a2)

	assert.NotEqual(t, a1, DeriveAddress(TokenProgramID, []byte("stake"), owner.Bytes()))
	assert.NotEqual(t, a1, DeriveAddress(StakingProgramID, []byte("stake_account"), owner.Bytes()))
}

func TestPublicKeyToAddress(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	a1 := PublicKeyToAddress(key.PublicKey)
	a2 := PublicKeyToAddress(key.PublicKey)
	assert.Equal(t, a1, a2)
	assert.False(t, a1.IsZero())
}

func TestMinimumBalance(t *testing.T) {
	assert.Equal(t, uint64(890880), MinimumBalance(0))
	assert.Equal(t, uint64((128+165)*3480*2), MinimumBalance(165))
	assert.True(t, IsRentExempt(MinimumBalance(100), 100))
	assert.False(t, IsRentExempt(MinimumBalance(100)-1, 100))
}
