package dictionary_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/dargueta/lzwpack"
	"github.com/dargueta/lzwpack/dictionary"
	lt "github.com/dargueta/lzwpack/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type EncodeTestCase struct {
	Name          string
	Input         []byte
	ExpectedCodes []lzwpack.Code
	ExpectedSize  int
	ExpectedWidth uint
}

func TestEncode__Basic(t *testing.T) {
	tests := []EncodeTestCase{
		{"single symbol", []byte{7}, []lzwpack.Code{7}, 256, 8},
		{"two different", []byte{1, 2}, []lzwpack.Code{1, 2}, 257, 9},
		{"run of three", []byte{65, 65, 65}, []lzwpack.Code{65, 256}, 257, 9},
		{"run of four", []byte{65, 65, 65, 65}, []lzwpack.Code{65, 256, 65}, 258, 9},
		{
			"repeated pair",
			[]byte{'a', 'b', 'a', 'b', 'a', 'b'},
			[]lzwpack.Code{'a', 'b', 256, 256},
			259,
			9,
		},
		{
			"TOBEORNOT",
			[]byte("TOBEORNOTTOBEORTOBEORNOT"),
			[]lzwpack.Code{
				'T', 'O', 'B', 'E', 'O', 'R', 'N', 'O', 'T',
				256, 258, 260, 265, 259, 261, 263,
			},
			271,
			9,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			result, err := dictionary.Encode(test.Input)
			require.NoError(t, err)
			assert.Equal(t, test.ExpectedCodes, result.Codes, "codes are wrong")
			assert.Equal(t, test.ExpectedSize, result.DictionarySize, "dictionary size is wrong")
			assert.Equal(t, test.ExpectedWidth, result.CodeWidth(), "code width is wrong")
		})
	}
}

func TestEncode__Empty(t *testing.T) {
	_, err := dictionary.Encode([]byte{})
	assert.ErrorIs(t, err, lzwpack.ErrEmptyInput)
	assert.ErrorIs(t, err, lzwpack.ErrInvalidArgument)
}

func TestDecode__RunOfThree(t *testing.T) {
	// Code 256 isn't in the decoder's dictionary yet when it's read, so this
	// goes through the KwKwK branch.
	output, err := dictionary.Decode([]lzwpack.Code{65, 256})
	require.NoError(t, err)
	assert.Equal(t, []byte{65, 65, 65}, output)
}

func TestDecode__RunOfFour(t *testing.T) {
	output, err := dictionary.Decode([]lzwpack.Code{65, 256, 65})
	require.NoError(t, err)
	assert.Equal(t, []byte{65, 65, 65, 65}, output)
}

func TestDecode__KwKwKAfterLongerPrefix(t *testing.T) {
	// "abababa" encodes to a, b, 256 (ab), 258 (aba). 258 is allocated on the
	// same step it's used.
	input := []byte("abababa")
	result, err := dictionary.Encode(input)
	require.NoError(t, err)
	require.Equal(t, []lzwpack.Code{'a', 'b', 256, 258}, result.Codes)

	output, err := dictionary.Decode(result.Codes)
	require.NoError(t, err)
	assert.Equal(t, input, output)
}

func TestDecode__KnownEntries(t *testing.T) {
	output, err := dictionary.Decode([]lzwpack.Code{'a', 'b', 256, 256})
	require.NoError(t, err)
	assert.Equal(t, []byte("ababab"), output)
}

func TestDecode__Corrupt(t *testing.T) {
	tests := []struct {
		Name  string
		Codes []lzwpack.Code
	}{
		{"empty", []lzwpack.Code{}},
		{"nil", nil},
		{"first code not a root", []lzwpack.Code{256}},
		{"skips the next code", []lzwpack.Code{65, 257}},
		{"far past the end", []lzwpack.Code{1, 2, 3, 9000}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			output, err := dictionary.Decode(test.Codes)
			assert.ErrorIs(t, err, lzwpack.ErrCorruptStream)
			assert.Nil(t, output, "no partial output should be returned")
		})
	}
}

// kwkwkChain returns codes that each extend the previous entry by one symbol:
// 65, 256, 257, ... The decoded length grows quadratically with the count.
func kwkwkChain(count int) []lzwpack.Code {
	codes := []lzwpack.Code{65}
	for code := lzwpack.Code(dictionary.RootCodes); len(codes) < count; code++ {
		codes = append(codes, code)
	}
	return codes
}

func TestDecodeLimit(t *testing.T) {
	codes := kwkwkChain(4) // 1 + 2 + 3 + 4 symbols

	output, err := dictionary.DecodeLimit(codes, 10)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{65}, 10), output)

	output, err = dictionary.DecodeLimit(codes, 9)
	assert.ErrorIs(t, err, lzwpack.ErrLengthMismatch)
	assert.Nil(t, output)

	output, err = dictionary.DecodeLimit(codes, 0)
	assert.ErrorIs(t, err, lzwpack.ErrLengthMismatch)
	assert.Nil(t, output)

	output, err = dictionary.DecodeLimit(codes, -1)
	require.NoError(t, err)
	assert.Len(t, output, 10)
}

func TestDecodeLimit__StopsLongChainEarly(t *testing.T) {
	// Unbounded, these 30,000 codes decode to about 450 million symbols.
	output, err := dictionary.DecodeLimit(kwkwkChain(30000), 1000)
	assert.ErrorIs(t, err, lzwpack.ErrLengthMismatch)
	assert.Nil(t, output)
}

func TestDecodeLimit__CorruptBeatsLimit(t *testing.T) {
	_, err := dictionary.DecodeLimit([]lzwpack.Code{65, 300}, 1)
	assert.ErrorIs(t, err, lzwpack.ErrCorruptStream)
}

func TestCodeWidth(t *testing.T) {
	tests := []struct {
		Size     int
		Expected uint
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{256, 8},
		{257, 9},
		{512, 9},
		{513, 10},
		{65536, 16},
		{65537, 17},
	}

	for _, test := range tests {
		assert.Equal(t, test.Expected, dictionary.CodeWidth(test.Size), "size %d", test.Size)
	}
}

func TestRoundTrip__RandomData(t *testing.T) {
	source := rand.New(rand.NewSource(1337))
	for i := 0; i < 50; i++ {
		input := make([]byte, 1+source.Intn(4000))
		source.Read(input)
		runRoundTripTestCase(t, input)
	}
}

func TestRoundTrip__SmallAlphabet(t *testing.T) {
	// A small alphabet grows long dictionary chains quickly and hits the KwKwK
	// branch often.
	source := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		input := make([]byte, 1+source.Intn(6000))
		for j := range input {
			input[j] = byte(source.Intn(3))
		}
		runRoundTripTestCase(t, input)
	}
}

func TestRoundTrip__Repetitive(t *testing.T) {
	runRoundTripTestCase(t, bytes.Repeat([]byte{182}, 9174))
	runRoundTripTestCase(t, lt.RepetitiveBytes(20000))
	runRoundTripTestCase(t, lt.RandomBytes(t, 3000))
}

func TestRoundTrip__EverySingleByte(t *testing.T) {
	for i := 0; i < 256; i++ {
		runRoundTripTestCase(t, []byte{byte(i)})
	}
}

////////////////////////////////////////////////////////////////////////////////
// Helper functions

func runRoundTripTestCase(t *testing.T, input []byte) {
	t.Helper()

	result, err := dictionary.Encode(input)
	require.NoError(t, err, "unexpected error while encoding")

	// Every code but the last one allocates exactly one new entry.
	require.Equal(
		t,
		dictionary.RootCodes+len(result.Codes)-1,
		result.DictionarySize,
		"dictionary size doesn't match the number of codes emitted",
	)

	limit := lzwpack.Code(1) << result.CodeWidth()
	for i, code := range result.Codes {
		require.Less(t, int(code), result.DictionarySize, "code %d out of range", i)
		require.Less(t, code, limit, "code %d doesn't fit in %d bits", i, result.CodeWidth())
	}

	output, err := dictionary.Decode(result.Codes)
	require.NoError(t, err, "unexpected error while decoding")
	if !bytes.Equal(input, output) {
		t.Fatalf("decoded data doesn't match original data (%d bytes)", len(input))
	}
}
