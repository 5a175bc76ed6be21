package token

import (
	"crypto/ed25519"
	"encoding/binary"
)

// InstructionData is implemented by the typed form of every token program
// instruction. Pack produces the wire encoding: the command byte followed by
// the variant's fields in fixed positional order, little-endian for all
// multi-byte integers.
type InstructionData interface {
	Command() Command
	Pack() []byte
}

// InitializeMint initializes a new mint.
//
// A nil FreezeAuthority means the mint cannot freeze accounts.
type InitializeMint struct {
	Decimals        byte
	MintAuthority   ed25519.PublicKey
	FreezeAuthority ed25519.PublicKey
}

// InitializeAccount initializes a new account to hold tokens.
type InitializeAccount struct {
}

// InitializeMultisig initializes a multisignature account with M required
// signatures.
type InitializeMultisig struct {
	M byte
}

// Transfer moves tokens from one account to another, either directly or via
// a delegate.
type Transfer struct {
	Amount uint64
}

// Approve delegates authority over tokens on behalf of the source account's
// owner.
type Approve struct {
	Amount uint64
}

// Revoke revokes a previously approved delegate.
type Revoke struct {
}

// SetAuthority sets a new authority of a mint or account.
//
// A nil NewAuthority clears the authority.
type SetAuthority struct {
	Type         AuthorityType
	NewAuthority ed25519.PublicKey
}

// MintTo mints new tokens to an account.
type MintTo struct {
	Amount uint64
}

// Burn removes tokens from an account.
type Burn struct {
	Amount uint64
}

// CloseAccount closes an account by transferring all of its lamports to the
// destination account.
type CloseAccount struct {
}

// FreezeAccount freezes an initialized account using the mint's freeze
// authority.
type FreezeAccount struct {
}

// ThawAccount thaws a frozen account using the mint's freeze authority.
type ThawAccount struct {
}

// TransferChecked is Transfer with an expected mint decimal check.
type TransferChecked struct {
	Amount   uint64
	Decimals byte
}

// ApproveChecked is Approve with an expected mint decimal check.
type ApproveChecked struct {
	Amount   uint64
	Decimals byte
}

// MintToChecked is MintTo with an expected mint decimal check.
type MintToChecked struct {
	Amount   uint64
	Decimals byte
}

// BurnChecked is Burn with an expected mint decimal check.
type BurnChecked struct {
	Amount   uint64
	Decimals byte
}

// InitializeAccount2 is like InitializeAccount, but the owner key is carried
// in the instruction data rather than the account list.
type InitializeAccount2 struct {
	Owner ed25519.PublicKey
}

func (InitializeMint) Command() Command     { return CommandInitializeMint }
func (InitializeAccount) Command() Command  { return CommandInitializeAccount }
func (InitializeMultisig) Command() Command { return CommandInitializeMultisig }
func (Transfer) Command() Command           { return CommandTransfer }
func (Approve) Command() Command            { return CommandApprove }
func (Revoke) Command() Command             { return CommandRevoke }
func (SetAuthority) Command() Command       { return CommandSetAuthority }
func (MintTo) Command() Command             { return CommandMintTo }
func (Burn) Command() Command               { return CommandBurn }
func (CloseAccount) Command() Command       { return CommandCloseAccount }
func (FreezeAccount) Command() Command      { return CommandFreezeAccount }
func (ThawAccount) Command() Command        { return CommandThawAccount }
func (TransferChecked) Command() Command    { return CommandTransferChecked }
func (ApproveChecked) Command() Command     { return CommandApproveChecked }
func (MintToChecked) Command() Command      { return CommandMintToChecked }
func (BurnChecked) Command() Command        { return CommandBurnChecked }
func (InitializeAccount2) Command() Command { return CommandInitializeAccount2 }

func (i InitializeMint) Pack() []byte {
	data := []byte{byte(CommandInitializeMint), i.Decimals}
	data = append(data, i.MintAuthority...)
	return appendOptionalKey(data, i.FreezeAuthority)
}

func (InitializeAccount) Pack() []byte {
	return []byte{byte(CommandInitializeAccount)}
}

func (i InitializeMultisig) Pack() []byte {
	return []byte{byte(CommandInitializeMultisig), i.M}
}

func (i Transfer) Pack() []byte {
	return packAmount(CommandTransfer, i.Amount)
}

func (i Approve) Pack() []byte {
	return packAmount(CommandApprove, i.Amount)
}

func (Revoke) Pack() []byte {
	return []byte{byte(CommandRevoke)}
}

func (i SetAuthority) Pack() []byte {
	data := []byte{byte(CommandSetAuthority), byte(i.Type)}
	return appendOptionalKey(data, i.NewAuthority)
}

func (i MintTo) Pack() []byte {
	return packAmount(CommandMintTo, i.Amount)
}

func (i Burn) Pack() []byte {
	return packAmount(CommandBurn, i.Amount)
}

func (CloseAccount) Pack() []byte {
	return []byte{byte(CommandCloseAccount)}
}

func (FreezeAccount) Pack() []byte {
	return []byte{byte(CommandFreezeAccount)}
}

func (ThawAccount) Pack() []byte {
	return []byte{byte(CommandThawAccount)}
}

func (i TransferChecked) Pack() []byte {
	return packAmountDecimals(CommandTransferChecked, i.Amount, i.Decimals)
}

func (i ApproveChecked) Pack() []byte {
	return packAmountDecimals(CommandApproveChecked, i.Amount, i.Decimals)
}

func (i MintToChecked) Pack() []byte {
	return packAmountDecimals(CommandMintToChecked, i.Amount, i.Decimals)
}

func (i BurnChecked) Pack() []byte {
	return packAmountDecimals(CommandBurnChecked, i.Amount, i.Decimals)
}

func (i InitializeAccount2) Pack() []byte {
	data := make([]byte, 1+ed25519.PublicKeySize)
	data[0] = byte(CommandInitializeAccount2)
	copy(data[1:], i.Owner)
	return data
}

// Unpack decodes the typed form of an instruction from its wire encoding.
//
// The first byte selects the variant; fields are consumed strictly left to
// right. Empty input, an unknown command, a truncated field, or a malformed
// optional key all result in ErrInvalidInstruction. Trailing bytes beyond a
// variant's declared fields are ignored, matching the behavior existing
// encoded payloads rely on.
func Unpack(data []byte) (InstructionData, error) {
	if len(data) == 0 {
		return nil, ErrInvalidInstruction
	}

	cmd, rest := Command(data[0]), data[1:]
	switch cmd {
	case CommandInitializeMint:
		if len(rest) < 1 {
			return nil, ErrInvalidInstruction
		}
		decimals := rest[0]
		mintAuthority, rest, err := unpackKey(rest[1:])
		if err != nil {
			return nil, err
		}
		freezeAuthority, _, err := unpackOptionalKey(rest)
		if err != nil {
			return nil, err
		}
		return InitializeMint{
			Decimals:        decimals,
			MintAuthority:   mintAuthority,
			FreezeAuthority: freezeAuthority,
		}, nil
	case CommandInitializeAccount:
		return InitializeAccount{}, nil
	case CommandInitializeMultisig:
		if len(rest) < 1 {
			return nil, ErrInvalidInstruction
		}
		return InitializeMultisig{M: rest[0]}, nil
	case CommandTransfer, CommandApprove, CommandMintTo, CommandBurn:
		amount, _, err := unpackAmount(rest)
		if err != nil {
			return nil, err
		}
		switch cmd {
		case CommandTransfer:
			return Transfer{Amount: amount}, nil
		case CommandApprove:
			return Approve{Amount: amount}, nil
		case CommandMintTo:
			return MintTo{Amount: amount}, nil
		default:
			return Burn{Amount: amount}, nil
		}
	case CommandRevoke:
		return Revoke{}, nil
	case CommandSetAuthority:
		if len(rest) < 1 {
			return nil, ErrInvalidInstruction
		}
		authorityType, err := AuthorityTypeFromByte(rest[0])
		if err != nil {
			return nil, err
		}
		newAuthority, _, err := unpackOptionalKey(rest[1:])
		if err != nil {
			return nil, err
		}
		return SetAuthority{
			Type:         authorityType,
			NewAuthority: newAuthority,
		}, nil
	case CommandCloseAccount:
		return CloseAccount{}, nil
	case CommandFreezeAccount:
		return FreezeAccount{}, nil
	case CommandThawAccount:
		return ThawAccount{}, nil
	case CommandTransferChecked, CommandApproveChecked, CommandMintToChecked, CommandBurnChecked:
		amount, rest, err := unpackAmount(rest)
		if err != nil {
			return nil, err
		}
		if len(rest) < 1 {
			return nil, ErrInvalidInstruction
		}
		decimals := rest[0]
		switch cmd {
		case CommandTransferChecked:
			return TransferChecked{Amount: amount, Decimals: decimals}, nil
		case CommandApproveChecked:
			return ApproveChecked{Amount: amount, Decimals: decimals}, nil
		case CommandMintToChecked:
			return MintToChecked{Amount: amount, Decimals: decimals}, nil
		default:
			return BurnChecked{Amount: amount, Decimals: decimals}, nil
		}
	case CommandInitializeAccount2:
		owner, _, err := unpackKey(rest)
		if err != nil {
			return nil, err
		}
		return InitializeAccount2{Owner: owner}, nil
	default:
		return nil, ErrInvalidInstruction
	}
}

// AuthorityType specifies the authority kind for SetAuthority instructions.
// The byte mapping is part of the wire contract and must never be reordered.
type AuthorityType byte

const (
	// AuthorityTypeMintTokens is the authority to mint new tokens.
	AuthorityTypeMintTokens AuthorityType = iota
	// AuthorityTypeFreezeAccount is the authority to freeze any account
	// associated with the mint.
	AuthorityTypeFreezeAccount
	// AuthorityTypeAccountOwner is the owner of a given token account.
	AuthorityTypeAccountOwner
	// AuthorityTypeCloseAccount is the authority to close a token account.
	AuthorityTypeCloseAccount
)

// AuthorityTypeFromByte decodes an AuthorityType, rejecting any byte outside
// the defined mapping.
func AuthorityTypeFromByte(b byte) (AuthorityType, error) {
	if b > byte(AuthorityTypeCloseAccount) {
		return 0, ErrInvalidInstruction
	}
	return AuthorityType(b), nil
}

func packAmount(cmd Command, amount uint64) []byte {
	data := make([]byte, 1+8)
	data[0] = byte(cmd)
	binary.LittleEndian.PutUint64(data[1:], amount)
	return data
}

func packAmountDecimals(cmd Command, amount uint64, decimals byte) []byte {
	data := make([]byte, 1+8+1)
	data[0] = byte(cmd)
	binary.LittleEndian.PutUint64(data[1:], amount)
	data[9] = decimals
	return data
}

// appendOptionalKey appends the optional key sub-encoding: a 0 byte when the
// key is absent, or a 1 byte followed by the 32-byte key.
func appendOptionalKey(data []byte, key ed25519.PublicKey) []byte {
	if len(key) == 0 {
		return append(data, 0)
	}
	data = append(data, 1)
	return append(data, key...)
}

func unpackAmount(data []byte) (uint64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, ErrInvalidInstruction
	}
	return binary.LittleEndian.Uint64(data), data[8:], nil
}

func unpackKey(data []byte) (ed25519.PublicKey, []byte, error) {
	if len(data) < ed25519.PublicKeySize {
		return nil, nil, ErrInvalidInstruction
	}

	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(key, data)
	return key, data[ed25519.PublicKeySize:], nil
}

func unpackOptionalKey(data []byte) (ed25519.PublicKey, []byte, error) {
	if len(data) == 0 {
		return nil, nil, ErrInvalidInstruction
	}

	switch data[0] {
	case 0:
		return nil, data[1:], nil
	case 1:
		return unpackKey(data[1:])
	default:
		return nil, nil, ErrInvalidInstruction
	}
}
