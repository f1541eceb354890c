// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "strings"

// Collections lists the accepted collection symbols.
var Collections = []string{"CLB", "UG", "GOTM", "GREATGOATS", "CNDY"}

// CheckCollection accepts a metadata symbol of a whitelisted collection.
// Trailing NUL padding is ignored, matching is case sensitive.
func CheckCollection(symbol string) error {
	symbol = strings.TrimRight(symbol, "\x00")
	for _, c := range Collections {
		if symbol == c {
			return nil
		}
	}
	return newError(CodeIncorrectCollection, "symbol %q", symbol)
}
