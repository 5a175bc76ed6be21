package token

import (
	"bytes"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repeatedKey returns a 32-byte key filled with b, matching the fixtures used
// by other implementations of this encoding.
func repeatedKey(b byte) ed25519.PublicKey {
	return ed25519.PublicKey(bytes.Repeat([]byte{b}, ed25519.PublicKeySize))
}

func TestInstruction_CrossImpl(t *testing.T) {
	for _, tc := range []struct {
		instruction InstructionData
		encoded     []byte
	}{
		{
			InitializeMint{Decimals: 2, MintAuthority: repeatedKey(1)},
			append(append([]byte{0, 2}, repeatedKey(1)...), 0),
		},
		{
			InitializeMint{Decimals: 2, MintAuthority: repeatedKey(1), FreezeAuthority: repeatedKey(2)},
			append(append(append([]byte{0, 2}, repeatedKey(1)...), 1), repeatedKey(2)...),
		},
		{InitializeAccount{}, []byte{1}},
		{InitializeMultisig{M: 1}, []byte{2, 1}},
		{Transfer{Amount: 1}, []byte{3, 1, 0, 0, 0, 0, 0, 0, 0}},
		{Approve{Amount: 1}, []byte{4, 1, 0, 0, 0, 0, 0, 0, 0}},
		{Revoke{}, []byte{5}},
		{
			SetAuthority{Type: AuthorityTypeFreezeAccount, NewAuthority: repeatedKey(4)},
			append([]byte{6, 1, 1}, repeatedKey(4)...),
		},
		{
			SetAuthority{Type: AuthorityTypeMintTokens},
			[]byte{6, 0, 0},
		},
		{MintTo{Amount: 1}, []byte{7, 1, 0, 0, 0, 0, 0, 0, 0}},
		{Burn{Amount: 1}, []byte{8, 1, 0, 0, 0, 0, 0, 0, 0}},
		{CloseAccount{}, []byte{9}},
		{FreezeAccount{}, []byte{10}},
		{ThawAccount{}, []byte{11}},
		{TransferChecked{Amount: 1, Decimals: 2}, []byte{12, 1, 0, 0, 0, 0, 0, 0, 0, 2}},
		{ApproveChecked{Amount: 1, Decimals: 2}, []byte{13, 1, 0, 0, 0, 0, 0, 0, 0, 2}},
		{MintToChecked{Amount: 1, Decimals: 2}, []byte{14, 1, 0, 0, 0, 0, 0, 0, 0, 2}},
		{BurnChecked{Amount: 1, Decimals: 2}, []byte{15, 1, 0, 0, 0, 0, 0, 0, 0, 2}},
		{
			InitializeAccount2{Owner: repeatedKey(2)},
			append([]byte{16}, repeatedKey(2)...),
		},
	} {
		assert.Equal(t, tc.encoded, tc.instruction.Pack())
		assert.EqualValues(t, tc.encoded[0], tc.instruction.Command())

		decoded, err := Unpack(tc.encoded)
		require.NoError(t, err)
		assert.Equal(t, tc.instruction, decoded)
	}
}

func TestInstruction_MaxAmount(t *testing.T) {
	encoded := Transfer{Amount: 0xffffffffffffffff}.Pack()
	assert.Equal(t, []byte{3, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, encoded)

	decoded, err := Unpack(encoded)
	require.NoError(t, err)
	assert.Equal(t, Transfer{Amount: 0xffffffffffffffff}, decoded)
}

func TestUnpack_Invalid(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{},
		{17},              // unknown command
		{255},             // unknown command
		{0},               // InitializeMint without decimals
		{0, 2},            // InitializeMint without mint authority
		append([]byte{0, 2}, repeatedKey(1)[:31]...),      // truncated mint authority
		append([]byte{0, 2}, repeatedKey(1)...),           // missing option discriminant
		append(append([]byte{0, 2}, repeatedKey(1)...), 2), // invalid option discriminant
		append(append([]byte{0, 2}, repeatedKey(1)...), 1), // present option without key
		{2},                          // InitializeMultisig without m
		{3, 1, 0, 0, 0, 0, 0, 0},     // truncated amount
		{6},                          // SetAuthority without type
		{6, 4},                       // invalid authority type
		{6, 0, 1, 1, 2, 3},           // truncated new authority
		{12, 1, 0, 0, 0, 0, 0, 0, 0}, // TransferChecked without decimals
		append([]byte{16}, repeatedKey(2)[:16]...), // truncated owner
	} {
		decoded, err := Unpack(data)
		assert.Nil(t, decoded)
		assert.Equal(t, ErrInvalidInstruction, err)
	}
}

func TestUnpack_TrailingBytes(t *testing.T) {
	// Bytes beyond a variant's declared fields are ignored.
	decoded, err := Unpack([]byte{3, 1, 0, 0, 0, 0, 0, 0, 0, 0xde, 0xad})
	require.NoError(t, err)
	assert.Equal(t, Transfer{Amount: 1}, decoded)

	decoded, err = Unpack([]byte{5, 0xff})
	require.NoError(t, err)
	assert.Equal(t, Revoke{}, decoded)
}

func TestUnpack_OptionalKeyConsumption(t *testing.T) {
	// An absent optional key consumes exactly one byte, a present one exactly
	// thirty-three; bytes after it are trailing and never folded into the key.
	absent := append(append([]byte{0, 2}, repeatedKey(1)...), 0)
	absent = append(absent, 0xaa, 0xbb)
	decoded, err := Unpack(absent)
	require.NoError(t, err)
	assert.Equal(t, repeatedKey(1), decoded.(InitializeMint).MintAuthority)
	assert.Nil(t, decoded.(InitializeMint).FreezeAuthority)

	present := append(append(append([]byte{0, 2}, repeatedKey(1)...), 1), repeatedKey(2)...)
	present = append(present, 0xcc)
	decoded, err = Unpack(present)
	require.NoError(t, err)
	assert.Equal(t, repeatedKey(2), decoded.(InitializeMint).FreezeAuthority)

	decoded, err = Unpack([]byte{6, 0, 0, 0xff})
	require.NoError(t, err)
	assert.Nil(t, decoded.(SetAuthority).NewAuthority)
}

func TestAuthorityType(t *testing.T) {
	for b, expected := range []AuthorityType{
		AuthorityTypeMintTokens,
		AuthorityTypeFreezeAccount,
		AuthorityTypeAccountOwner,
		AuthorityTypeCloseAccount,
	} {
		actual, err := AuthorityTypeFromByte(byte(b))
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}

	_, err := AuthorityTypeFromByte(4)
	assert.Equal(t, ErrInvalidInstruction, err)
}

func TestUnpack_DecodedKeysAreCopies(t *testing.T) {
	encoded := InitializeAccount2{Owner: repeatedKey(2)}.Pack()

	decoded, err := Unpack(encoded)
	require.NoError(t, err)

	encoded[1] = 0xff
	assert.Equal(t, repeatedKey(2), decoded.(InitializeAccount2).Owner)
}
