package attributes

import (
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// testCalldata lays out the fields by hand at their documented offsets.
func testCalldata() []byte {
	data := make([]byte, MinCalldataLength)
	copy(data, []byte{0xde, 0xad, 0xbe, 0xef})

	fields := data[SelectorLength:]
	binary.BigEndian.PutUint32(fields[0:4], 1368)
	binary.BigEndian.PutUint32(fields[4:8], 810949)
	binary.BigEndian.PutUint64(fields[8:16], 3)
	binary.BigEndian.PutUint64(fields[16:24], 1718000000)
	binary.BigEndian.PutUint64(fields[24:32], 6100000)
	copy(fields[32:64], common.LeftPadBytes(big.NewInt(7_000_000_000).Bytes(), 32))
	copy(fields[64:96], common.LeftPadBytes(big.NewInt(1).Bytes(), 32))
	copy(fields[96:128], common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111").Bytes())
	copy(fields[128:160], common.HexToHash("0x0000000000000000000000002222222222222222222222222222222222222222").Bytes())
	copy(fields[160:192], common.LeftPadBytes(big.NewInt(800_000).Bytes(), 32))
	copy(fields[192:224], common.LeftPadBytes(new(big.Int).Lsh(big.NewInt(1), 200).Bytes(), 32))

	return data
}

func TestDecodeAttributes(t *testing.T) {
	attrs, err := DecodeAttributes(testCalldata())
	require.NoError(t, err)

	require.Equal(t, uint32(1368), attrs.BaseFeeScalar)
	require.Equal(t, uint32(810949), attrs.BlobBaseFeeScalar)
	require.Equal(t, uint64(3), attrs.SequenceNumber)
	require.Equal(t, uint64(1718000000), attrs.Timestamp)
	require.Equal(t, uint64(6100000), attrs.Number)
	require.Equal(t, 0, attrs.BaseFee.Cmp(big.NewInt(7_000_000_000)))
	require.Equal(t, 0, attrs.BlobBaseFee.Cmp(big.NewInt(1)))
	require.Equal(t, common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111"), attrs.BlockHash)
	require.Equal(t, common.HexToHash("0x0000000000000000000000002222222222222222222222222222222222222222"), attrs.BatcherHash)
	require.Equal(t, 0, attrs.FctMintedPerGas.Cmp(big.NewInt(800_000)))
	require.Equal(t, 0, attrs.TotalFctMinted.Cmp(new(big.Int).Lsh(big.NewInt(1), 200)))
}

func TestDecodeAttributesIgnoresTrailingBytes(t *testing.T) {
	data := append(testCalldata(), 0x01, 0x02, 0x03)

	attrs, err := DecodeAttributes(data)
	require.NoError(t, err)
	require.Equal(t, uint64(1718000000), attrs.Timestamp)
}

func TestDecodeAttributesTooShort(t *testing.T) {
	for _, size := range []int{0, SelectorLength, MinCalldataLength - 1} {
		_, err := DecodeAttributes(make([]byte, size))
		require.ErrorIs(t, err, ErrMalformedAttributes)
	}
}

func TestMarshalBinaryLayout(t *testing.T) {
	expected, err := DecodeAttributes(testCalldata())
	require.NoError(t, err)

	encoded, err := expected.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, encoded, MinCalldataLength)
	require.Equal(t, AttributesFuncBytes4, encoded[:SelectorLength])
	require.Equal(t, testCalldata()[SelectorLength:], encoded[SelectorLength:])
}

func TestMarshalBinaryNilNumbers(t *testing.T) {
	encoded, err := (&BlockAttributes{Timestamp: 42}).MarshalBinary()
	require.NoError(t, err)

	attrs, err := DecodeAttributes(encoded)
	require.NoError(t, err)
	require.Equal(t, uint64(42), attrs.Timestamp)
	require.Equal(t, 0, attrs.FctMintedPerGas.Sign())
	require.Equal(t, 0, attrs.BaseFee.Sign())
}
