package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"hash"
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBase58(t *testing.T, s string) []byte {
	b, err := base58.Decode(s)
	require.NoError(t, err)
	return b
}

func TestCreateProgramAddress_SeedLimits(t *testing.T) {
	programID := mustBase58(t, "BPFLoader1111111111111111111111111111111111")

	tooLong := make([]byte, maxSeedLength+1)
	_, err := CreateProgramAddress(programID, tooLong)
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)
	_, err = CreateProgramAddress(programID, []byte("short seed"), tooLong)
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)

	_, err = CreateProgramAddress(programID, make([]byte, maxSeedLength))
	assert.NoError(t, err)

	seeds := make([][]byte, maxSeeds+1)
	for i := range seeds {
		seeds[i] = []byte{byte(i)}
	}
	_, err = CreateProgramAddress(programID, seeds...)
	assert.Equal(t, ErrTooManySeeds, err)
}

func TestCreateProgramAddress_Ref(t *testing.T) {
	programID := mustBase58(t, "BPFLoader1111111111111111111111111111111111")

	// The "SeedPubey" spelling comes from the upstream SDK fixture the
	// expected outputs were derived against.
	seedKey := mustBase58(t, "SeedPubey1111111111111111111111111111111111")

	for _, tc := range []struct {
		seeds    [][]byte
		expected string
	}{
		{[][]byte{{}, {1}}, "3gF2KMe9KiC6FNVBmfg9i267aMPvK37FewCip4eGBFcT"},
		{[][]byte{[]byte("☉")}, "7ytmC1nT1xY4RfxCV2ZgyA7UakC93do5ZdyhdF3EtPj7"},
		{[][]byte{[]byte("Talking"), []byte("Squirrels")}, "HwRVBufQ4haG5XSgpspwKtNd3PC9GM9m1196uJW36vds"},
		{[][]byte{seedKey}, "GUs5qLUfsEHkcMB9T38vjr18ypEhRuNWiePW2LoK4E3K"},
	} {
		actual, err := CreateProgramAddress(programID, tc.seeds...)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, base58.Encode(actual))
	}

	// Every seed contributes to the derivation individually.
	a, err := CreateProgramAddress(programID, []byte("Talking"))
	require.NoError(t, err)
	b, err := CreateProgramAddress(programID, []byte("Talking"), []byte("Squirrels"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

// onCurveHash always sums to a real public key, forcing the derivation onto
// the curve so the rejection branch can be exercised deterministically.
type onCurveHash struct {
	key ed25519.PublicKey
}

func (h *onCurveHash) Write(p []byte) (int, error) { return len(p), nil }
func (h *onCurveHash) Sum([]byte) []byte           { return h.key }
func (h *onCurveHash) Reset()                      {}
func (h *onCurveHash) Size() int                   { return sha256.Size }
func (h *onCurveHash) BlockSize() int              { return sha256.BlockSize }

func TestCreateProgramAddress_OnCurve(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	programHashCtor = func() hash.Hash { return &onCurveHash{key: pub} }
	defer func() { programHashCtor = sha256.New }()

	programID, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	_, err = CreateProgramAddress(programID, []byte("seed"))
	assert.Equal(t, ErrInvalidPublicKey, err)
}

func TestFindProgramAddress(t *testing.T) {
	for i := 0; i < 1000; i++ {
		programID, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		addr, bump, err := FindProgramAddressAndBump(programID, []byte("seed"))
		require.NoError(t, err)
		require.NotNil(t, addr)

		// The bump must reproduce the same address directly.
		direct, err := CreateProgramAddress(programID, []byte("seed"), []byte{bump})
		require.NoError(t, err)
		assert.Equal(t, direct, addr)
	}
}

func TestFindProgramAddress_Ref(t *testing.T) {
	// program id -> address derived with seeds ["Lil'", "Bits"], generated
	// against the upstream SDK.
	for _, ref := range [][2]string{
		{"4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM", "Bn9pAWUXWc5Kd849xTkQcHqiCbHUEizLFn4r5Cf8XYnd"},
		{"8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh", "oDvUHiiGdMo31xYzjefAzUekWH8EbCKrxgs2FkyTs1S"},
		{"CiDwVBFgWV9E5MvXWoLgnEgn2hK7rJikbvfWavzAQz3", "B2vBn2bmF9GuaGkebrm8oUqDC34pE6m4bagjNcVE6msv"},
		{"GcdayuLaLyrdmUu324nahyv33G5poQdLUEZ1nEytDeP", "2mN5Nfq9v1EwTV9FPTHPESZ3XiZce9wi5PQoULFuxvev"},
		{"LX3EUdRUBUa3TbsYXLEUdj9J3prXkWXvLYSWyYyc2Jj", "9CqF6oTZtW5zSeoLnZRoQmj3s2tXGPqifM1W8Z8LVE1z"},
		{"QRSsyMWN1yHT9ir42bgNZUNZ4PdEhcSWCrL2AryKpy5", "FwBDYafabYZLDC8FwaDCsLxWkKnaQxKuQv3afDAGiXJ8"},
		{"UKrXU5bFrTzrqqpZXs8GVDbp4xPweiM65ADXNAy3ddR", "2Y1miPDc3BkHVdNFeFTtRkiw8nbptrBqboJkbqxk5SFt"},
		{"YEGAxog9gxiGXxo538aAQxq55XAebpFfwU72ZUxmSHm", "5jeaj2d8T2hjU63h2chjtSnuUmjti6qZK7oi6jwTspoo"},
		{"c8fpTXm3XTRgE5maYQ24Li4L65wMYvAFomzXknxVEx7", "6brHYNpseuh39WW3Md5WxTyw12kqumR4tTyZqzkyPWZP"},
		{"g35TxFqwMx95vCk63fTxGTHb6ei4W24qg5t2x6xD3cT", "ESVKwnyn9DEkNcR5ZnHFbMK66nCArc9dChFCULstzLy5"},
		{"jwV7SyvqCSrVcKibYvurCCWr7DUmT7yRYPmY9QwvrGo", "69BytoSYkhMovVk8gfGUwhf9P8HSnrcYhaoWY2dgmrPE"},
		{"oqtkwi1j2wZuJSh74CMk7wk77nFUQDt1Qhf3Liweew9", "EfwG5mLknsUXPLHkUp1doxgN1W4Azr3gkZ1Zu6w6AxdF"},
		{"skJQSS6csSHJzZfcZToe3gyN8M2BMKnbH1YYY2wNTbV", "Cw2qpvCaoPGxEJypW7rW5obTKSTLpCDRN7TgrrVugkfC"},
		{"wei3wABWhvzigge84jFXySCd8untJRhB9KS3jLw6GFq", "8jztcAvddJNqK1ZjwcRkfWYAkfJW7dBbwoxZt7HSNg1G"},
		{"21Z7hRtGQYRi8NocdZzhRuBRt9UZbFXbm1dKYvevp4vB", "9PPbRbNP3rqwzk16r7NDBzk1YDfo9EpWDWSqCYLn5eaF"},
		{"25TXLvcMJNvRY4vb95G9Kpvf9A3LJCdWLswD47xvXsaX", "2rXxCqDNwia2f245koA11w7NoyNhNH4PwhSVLwpeBVRf"},
		{"29MvzRLSCDR8wm3ZeaXbDkftQAc719jQvkF6ZKGvFgEs", "8habU8xKFCDeJNg9No6prtCY1Lq2px5bqWEyudy1SScW"},
		{"2DGLdv4X63urMTAYA5o37gR7fBAsi6qKWcYz4WauyUuD", "7CPuXK4rdxhNqPUtTjvJ2peNEgVbBCzPV89SVK8boWai"},
		{"2HAkHQnbytQZm9HWfb4V1cALvBjeR3wE6UrsZhtuhHZZ", "5U8dYpWb2W1s3ptdNhJJAkyf2JaRUxFAzVEnZmSP2t8X"},
		{"2M59vuWgsiuHAqQVB6KvuXuaBCJR8138gMAm4uCuR6Du", "E5dLtHAM353EPnHyuZ32sKREn26VW4Y8bzb2KQJTBHQh"},
	} {
		programID := mustBase58(t, ref[0])
		expected := mustBase58(t, ref[1])

		actual, err := FindProgramAddress(programID, []byte("Lil'"), []byte("Bits"))
		require.NoError(t, err)
		assert.EqualValues(t, expected, actual)
	}
}
