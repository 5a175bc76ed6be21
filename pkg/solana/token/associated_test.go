package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianpay/tokenkit/pkg/solana"
	"github.com/meridianpay/tokenkit/pkg/solana/system"
)

func TestGetAssociatedAccount(t *testing.T) {
	// Reference derivation generated with the spl-token tooling.
	for _, s := range []struct{ wallet, mint, expected string }{
		{
			wallet:   "4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM",
			mint:     "8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh",
			expected: "H7MQwEzt97tUJryocn3qaEoy2ymWstwyEk1i9Yv3EmuZ",
		},
	} {
		wallet, err := base58.Decode(s.wallet)
		require.NoError(t, err)
		mint, err := base58.Decode(s.mint)
		require.NoError(t, err)

		actual, err := GetAssociatedAccount(wallet, mint)
		require.NoError(t, err)
		assert.Equal(t, s.expected, base58.Encode(actual))
	}
}

func TestCreateAssociatedAccount(t *testing.T) {
	for _, tc := range []struct {
		name      string
		command   byte
		construct func(subsidizer, wallet, mint ed25519.PublicKey) (solana.Instruction, ed25519.PublicKey, error)
		decompile func(m solana.Message, index int) (*DecompiledCreateAssociatedAccount, error)
	}{
		{"create", commandCreate, CreateAssociatedTokenAccount, DecompileCreateAssociatedAccount},
		{"create_idempotent", commandCreateIdempotent, CreateAssociatedTokenAccountIdempotent, DecompileCreateAssociatedAccountIdempotent},
	} {
		t.Run(tc.name, func(t *testing.T) {
			keys := generateKeys(t, 3)
			subsidizer, wallet, mint := keys[0], keys[1], keys[2]

			expectedAddr, err := GetAssociatedAccount(wallet, mint)
			require.NoError(t, err)

			instruction, addr, err := tc.construct(subsidizer, wallet, mint)
			require.NoError(t, err)
			assert.Equal(t, expectedAddr, addr)

			assert.Equal(t, []byte{tc.command}, instruction.Data)

			// The subsidizer pays and signs, the derived address is created,
			// everything else is a read-only reference.
			require.Len(t, instruction.Accounts, 7)
			assert.True(t, instruction.Accounts[0].IsSigner)
			assert.True(t, instruction.Accounts[0].IsWritable)
			assert.False(t, instruction.Accounts[1].IsSigner)
			assert.True(t, instruction.Accounts[1].IsWritable)
			for _, account := range instruction.Accounts[2:] {
				assert.False(t, account.IsSigner)
				assert.False(t, account.IsWritable)
			}

			assert.EqualValues(t, addr, instruction.Accounts[1].PublicKey)
			assert.EqualValues(t, system.ProgramKey[:], instruction.Accounts[4].PublicKey)
			assert.EqualValues(t, ProgramKey, instruction.Accounts[5].PublicKey)
			assert.EqualValues(t, system.RentSysVar, instruction.Accounts[6].PublicKey)

			decompiled, err := tc.decompile(solana.NewTransaction(subsidizer, instruction).Message, 0)
			require.NoError(t, err)
			assert.Equal(t, subsidizer, decompiled.Subsidizer)
			assert.Equal(t, addr, decompiled.Address)
			assert.Equal(t, wallet, decompiled.Owner)
			assert.Equal(t, mint, decompiled.Mint)

			// the sibling command byte is rejected by this decompiler
			instruction.Data = []byte{tc.command ^ 1}
			_, err = tc.decompile(solana.NewTransaction(subsidizer, instruction).Message, 0)
			assert.Equal(t, solana.ErrIncorrectInstruction, err)
		})
	}
}
