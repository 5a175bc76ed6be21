package token

import (
	"crypto/ed25519"

	"github.com/meridianpay/tokenkit/pkg/solana"
	"github.com/meridianpay/tokenkit/pkg/solana/system"
)

// appendAuthorityAccounts applies the owner/delegate convention shared by
// every authority-bearing instruction: with no trailing signers the authority
// reference itself signs; otherwise the authority is a multisignature account
// (not a signer) and each trailing key is appended as its own read-only
// signer reference, in the order supplied.
func appendAuthorityAccounts(accounts []solana.AccountMeta, authority ed25519.PublicKey, signers []ed25519.PublicKey) []solana.AccountMeta {
	accounts = append(accounts, solana.NewReadonlyAccountMeta(authority, len(signers) == 0))
	for _, signer := range signers {
		accounts = append(accounts, solana.NewReadonlyAccountMeta(signer, true))
	}
	return accounts
}

// NewInitializeMintInstruction creates an InitializeMint instruction.
//
// The instruction requires no signers and MUST be included within the same
// transaction as the system program's CreateAccount instruction that creates
// the account being initialized. Otherwise another party can acquire
// ownership of the uninitialized account.
//
// A nil freezeAuthority means the mint cannot freeze accounts.
func NewInitializeMintInstruction(tokenProgram, mint, mintAuthority, freezeAuthority ed25519.PublicKey, decimals byte) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The mint to initialize.
	//   1. `[]` Rent sysvar
	return solana.NewInstruction(
		tokenProgram,
		InitializeMint{
			Decimals:        decimals,
			MintAuthority:   mintAuthority,
			FreezeAuthority: freezeAuthority,
		}.Pack(),
		solana.NewAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	), nil
}

// NewInitializeAccountInstruction creates an InitializeAccount instruction.
//
// The instruction requires no signers and MUST be included within the same
// transaction as the system program's CreateAccount instruction that creates
// the account being initialized.
func NewInitializeAccountInstruction(tokenProgram, account, mint, owner ed25519.PublicKey) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   0. `[writable]`  The account to initialize.
	//   1. `[]` The mint this account will be associated with.
	//   2. `[]` The new account's owner/multisignature.
	//   3. `[]` Rent sysvar
	return solana.NewInstruction(
		tokenProgram,
		InitializeAccount{}.Pack(),
		solana.NewAccountMeta(account, false),
		solana.NewReadonlyAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(owner, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	), nil
}

// NewInitializeAccount2Instruction creates an InitializeAccount2 instruction.
// Unlike InitializeAccount, the owner key is carried in the instruction data
// rather than the account list.
func NewInitializeAccount2Instruction(tokenProgram, account, mint, owner ed25519.PublicKey) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   0. `[writable]`  The account to initialize.
	//   1. `[]` The mint this account will be associated with.
	//   2. `[]` Rent sysvar
	return solana.NewInstruction(
		tokenProgram,
		InitializeAccount2{Owner: owner}.Pack(),
		solana.NewAccountMeta(account, false),
		solana.NewReadonlyAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	), nil
}

// NewInitializeMultisigInstruction creates an InitializeMultisig instruction,
// requiring m of the supplied signer keys to sign future transactions.
//
// The signer configuration is validated against [MinSigners, MaxSigners]
// before any encoding occurs.
func NewInitializeMultisigInstruction(tokenProgram, multisig ed25519.PublicKey, signers []ed25519.PublicKey, m byte) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}
	if !isValidSignerCount(int(m)) || !isValidSignerCount(len(signers)) || int(m) > len(signers) {
		return solana.Instruction{}, ErrMissingRequiredSignature
	}

	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The multisignature account to initialize.
	//   1. `[]` Rent sysvar
	//   2. ..2+N. `[]` The signer accounts.
	accounts := make([]solana.AccountMeta, 0, 2+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(multisig, false))
	accounts = append(accounts, solana.NewReadonlyAccountMeta(system.RentSysVar, false))
	for _, signer := range signers {
		accounts = append(accounts, solana.NewReadonlyAccountMeta(signer, false))
	}

	return solana.NewInstruction(
		tokenProgram,
		InitializeMultisig{M: m}.Pack(),
		accounts...,
	), nil
}

// NewTransferInstruction creates a Transfer instruction.
func NewTransferInstruction(tokenProgram, source, dest, authority ed25519.PublicKey, signers []ed25519.PublicKey, amount uint64) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   * Single owner/delegate
	//   0. `[writable]` The source account.
	//   1. `[writable]` The destination account.
	//   2. `[signer]` The source account's owner/delegate.
	//
	//   * Multisignature owner/delegate
	//   0. `[writable]` The source account.
	//   1. `[writable]` The destination account.
	//   2. `[]` The source account's multisignature owner/delegate.
	//   3. ..3+M `[signer]` M signer accounts.
	accounts := make([]solana.AccountMeta, 0, 3+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(source, false))
	accounts = append(accounts, solana.NewAccountMeta(dest, false))
	accounts = appendAuthorityAccounts(accounts, authority, signers)

	return solana.NewInstruction(
		tokenProgram,
		Transfer{Amount: amount}.Pack(),
		accounts...,
	), nil
}

// NewApproveInstruction creates an Approve instruction.
func NewApproveInstruction(tokenProgram, source, delegate, owner ed25519.PublicKey, signers []ed25519.PublicKey, amount uint64) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   * Single owner
	//   0. `[writable]` The source account.
	//   1. `[]` The delegate.
	//   2. `[signer]` The source account owner.
	//
	//   * Multisignature owner
	//   0. `[writable]` The source account.
	//   1. `[]` The delegate.
	//   2. `[]` The source account's multisignature owner.
	//   3. ..3+M `[signer]` M signer accounts
	accounts := make([]solana.AccountMeta, 0, 3+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(source, false))
	accounts = append(accounts, solana.NewReadonlyAccountMeta(delegate, false))
	accounts = appendAuthorityAccounts(accounts, owner, signers)

	return solana.NewInstruction(
		tokenProgram,
		Approve{Amount: amount}.Pack(),
		accounts...,
	), nil
}

// NewRevokeInstruction creates a Revoke instruction.
func NewRevokeInstruction(tokenProgram, source, owner ed25519.PublicKey, signers []ed25519.PublicKey) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   * Single owner
	//   0. `[writable]` The source account.
	//   1. `[signer]` The source account owner.
	//
	//   * Multisignature owner
	//   0. `[writable]` The source account.
	//   1. `[]` The source account's multisignature owner.
	//   2. ..2+M `[signer]` M signer accounts
	accounts := make([]solana.AccountMeta, 0, 2+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(source, false))
	accounts = appendAuthorityAccounts(accounts, owner, signers)

	return solana.NewInstruction(
		tokenProgram,
		Revoke{}.Pack(),
		accounts...,
	), nil
}

// NewSetAuthorityInstruction creates a SetAuthority instruction. A nil
// newAuthority clears the existing one.
func NewSetAuthorityInstruction(tokenProgram, owned, newAuthority ed25519.PublicKey, authorityType AuthorityType, owner ed25519.PublicKey, signers []ed25519.PublicKey) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   * Single authority
	//   0. `[writable]` The mint or account to change the authority of.
	//   1. `[signer]` The current authority of the mint or account.
	//
	//   * Multisignature authority
	//   0. `[writable]` The mint or account to change the authority of.
	//   1. `[]` The mint's or account's multisignature authority.
	//   2. ..2+M `[signer]` M signer accounts
	accounts := make([]solana.AccountMeta, 0, 2+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(owned, false))
	accounts = appendAuthorityAccounts(accounts, owner, signers)

	return solana.NewInstruction(
		tokenProgram,
		SetAuthority{
			Type:         authorityType,
			NewAuthority: newAuthority,
		}.Pack(),
		accounts...,
	), nil
}

// NewMintToInstruction creates a MintTo instruction.
func NewMintToInstruction(tokenProgram, mint, dest, authority ed25519.PublicKey, signers []ed25519.PublicKey, amount uint64) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   * Single authority
	//   0. `[writable]` The mint.
	//   1. `[writable]` The account to mint tokens to.
	//   2. `[signer]` The mint's minting authority.
	//
	//   * Multisignature authority
	//   0. `[writable]` The mint.
	//   1. `[writable]` The account to mint tokens to.
	//   2. `[]` The mint's multisignature mint-tokens authority.
	//   3. ..3+M `[signer]` M signer accounts.
	accounts := make([]solana.AccountMeta, 0, 3+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(mint, false))
	accounts = append(accounts, solana.NewAccountMeta(dest, false))
	accounts = appendAuthorityAccounts(accounts, authority, signers)

	return solana.NewInstruction(
		tokenProgram,
		MintTo{Amount: amount}.Pack(),
		accounts...,
	), nil
}

// NewBurnInstruction creates a Burn instruction.
func NewBurnInstruction(tokenProgram, account, mint, authority ed25519.PublicKey, signers []ed25519.PublicKey, amount uint64) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   * Single owner/delegate
	//   0. `[writable]` The account to burn from.
	//   1. `[writable]` The token mint.
	//   2. `[signer]` The account's owner/delegate.
	//
	//   * Multisignature owner/delegate
	//   0. `[writable]` The account to burn from.
	//   1. `[writable]` The token mint.
	//   2. `[]` The account's multisignature owner/delegate.
	//   3. ..3+M `[signer]` M signer accounts.
	accounts := make([]solana.AccountMeta, 0, 3+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(account, false))
	accounts = append(accounts, solana.NewAccountMeta(mint, false))
	accounts = appendAuthorityAccounts(accounts, authority, signers)

	return solana.NewInstruction(
		tokenProgram,
		Burn{Amount: amount}.Pack(),
		accounts...,
	), nil
}

// NewCloseAccountInstruction creates a CloseAccount instruction, transferring
// all of the account's lamports to the destination account. Non-native
// accounts may only be closed if their token amount is zero.
func NewCloseAccountInstruction(tokenProgram, account, dest, owner ed25519.PublicKey, signers []ed25519.PublicKey) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   * Single owner
	//   0. `[writable]` The account to close.
	//   1. `[writable]` The destination account.
	//   2. `[signer]` The account's owner.
	//
	//   * Multisignature owner
	//   0. `[writable]` The account to close.
	//   1. `[writable]` The destination account.
	//   2. `[]` The account's multisignature owner.
	//   3. ..3+M `[signer]` M signer accounts.
	accounts := make([]solana.AccountMeta, 0, 3+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(account, false))
	accounts = append(accounts, solana.NewAccountMeta(dest, false))
	accounts = appendAuthorityAccounts(accounts, owner, signers)

	return solana.NewInstruction(
		tokenProgram,
		CloseAccount{}.Pack(),
		accounts...,
	), nil
}

// NewFreezeAccountInstruction creates a FreezeAccount instruction.
func NewFreezeAccountInstruction(tokenProgram, account, mint, authority ed25519.PublicKey, signers []ed25519.PublicKey) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   * Single authority
	//   0. `[writable]` The account to freeze.
	//   1. `[]` The token mint.
	//   2. `[signer]` The mint's freeze authority.
	//
	//   * Multisignature authority
	//   0. `[writable]` The account to freeze.
	//   1. `[]` The token mint.
	//   2. `[]` The mint's multisignature freeze authority.
	//   3. ..3+M `[signer]` M signer accounts.
	accounts := make([]solana.AccountMeta, 0, 3+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(account, false))
	accounts = append(accounts, solana.NewReadonlyAccountMeta(mint, false))
	accounts = appendAuthorityAccounts(accounts, authority, signers)

	return solana.NewInstruction(
		tokenProgram,
		FreezeAccount{}.Pack(),
		accounts...,
	), nil
}

// NewThawAccountInstruction creates a ThawAccount instruction.
func NewThawAccountInstruction(tokenProgram, account, mint, authority ed25519.PublicKey, signers []ed25519.PublicKey) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Account expectations match FreezeAccount.
	accounts := make([]solana.AccountMeta, 0, 3+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(account, false))
	accounts = append(accounts, solana.NewReadonlyAccountMeta(mint, false))
	accounts = appendAuthorityAccounts(accounts, authority, signers)

	return solana.NewInstruction(
		tokenProgram,
		ThawAccount{}.Pack(),
		accounts...,
	), nil
}

// NewTransferCheckedInstruction creates a TransferChecked instruction, which
// additionally verifies the mint and its decimal precision.
func NewTransferCheckedInstruction(tokenProgram, source, mint, dest, authority ed25519.PublicKey, signers []ed25519.PublicKey, amount uint64, decimals byte) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   * Single owner/delegate
	//   0. `[writable]` The source account.
	//   1. `[]` The token mint.
	//   2. `[writable]` The destination account.
	//   3. `[signer]` The source account's owner/delegate.
	//
	//   * Multisignature owner/delegate
	//   0. `[writable]` The source account.
	//   1. `[]` The token mint.
	//   2. `[writable]` The destination account.
	//   3. `[]` The source account's multisignature owner/delegate.
	//   4. ..4+M `[signer]` M signer accounts.
	accounts := make([]solana.AccountMeta, 0, 4+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(source, false))
	accounts = append(accounts, solana.NewReadonlyAccountMeta(mint, false))
	accounts = append(accounts, solana.NewAccountMeta(dest, false))
	accounts = appendAuthorityAccounts(accounts, authority, signers)

	return solana.NewInstruction(
		tokenProgram,
		TransferChecked{Amount: amount, Decimals: decimals}.Pack(),
		accounts...,
	), nil
}

// NewApproveCheckedInstruction creates an ApproveChecked instruction.
func NewApproveCheckedInstruction(tokenProgram, source, mint, delegate, owner ed25519.PublicKey, signers []ed25519.PublicKey, amount uint64, decimals byte) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Accounts expected by this instruction:
	//
	//   * Single owner
	//   0. `[writable]` The source account.
	//   1. `[]` The token mint.
	//   2. `[]` The delegate.
	//   3. `[signer]` The source account owner.
	//
	//   * Multisignature owner
	//   0. `[writable]` The source account.
	//   1. `[]` The token mint.
	//   2. `[]` The delegate.
	//   3. `[]` The source account's multisignature owner.
	//   4. ..4+M `[signer]` M signer accounts
	accounts := make([]solana.AccountMeta, 0, 4+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(source, false))
	accounts = append(accounts, solana.NewReadonlyAccountMeta(mint, false))
	accounts = append(accounts, solana.NewReadonlyAccountMeta(delegate, false))
	accounts = appendAuthorityAccounts(accounts, owner, signers)

	return solana.NewInstruction(
		tokenProgram,
		ApproveChecked{Amount: amount, Decimals: decimals}.Pack(),
		accounts...,
	), nil
}

// NewMintToCheckedInstruction creates a MintToChecked instruction.
func NewMintToCheckedInstruction(tokenProgram, mint, dest, authority ed25519.PublicKey, signers []ed25519.PublicKey, amount uint64, decimals byte) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Account expectations match MintTo.
	accounts := make([]solana.AccountMeta, 0, 3+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(mint, false))
	accounts = append(accounts, solana.NewAccountMeta(dest, false))
	accounts = appendAuthorityAccounts(accounts, authority, signers)

	return solana.NewInstruction(
		tokenProgram,
		MintToChecked{Amount: amount, Decimals: decimals}.Pack(),
		accounts...,
	), nil
}

// NewBurnCheckedInstruction creates a BurnChecked instruction.
func NewBurnCheckedInstruction(tokenProgram, account, mint, authority ed25519.PublicKey, signers []ed25519.PublicKey, amount uint64, decimals byte) (solana.Instruction, error) {
	if err := CheckProgramAccount(tokenProgram); err != nil {
		return solana.Instruction{}, err
	}

	// Account expectations match Burn.
	accounts := make([]solana.AccountMeta, 0, 3+len(signers))
	accounts = append(accounts, solana.NewAccountMeta(account, false))
	accounts = append(accounts, solana.NewAccountMeta(mint, false))
	accounts = appendAuthorityAccounts(accounts, authority, signers)

	return solana.NewInstruction(
		tokenProgram,
		BurnChecked{Amount: amount, Decimals: decimals}.Pack(),
		accounts...,
	), nil
}
