package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleInfoIDs(t *testing.T) {
	info := TitleInfo{ID: 0x0004000000055D00}

	assert.Equal(t, uint32(0x00055D00), info.LowID())
	assert.Equal(t, uint32(0x00040000), info.HighID())
	assert.Equal(t, uint32(0x055D), info.UniqueID())
	assert.Equal(t, "0004000000055D00", info.HexID())
}

func TestTitleInfoExtdataID(t *testing.T) {
	tests := []struct {
		name string
		info TitleInfo
		want uint32
	}{
		{
			name: "derived from low id",
			info: TitleInfo{ID: 0x0004000000030800},
			want: 0x0308,
		},
		{
			name: "explicit id wins",
			info: TitleInfo{ID: 0x0004000000030800, Extdata: 0x1234},
			want: 0x1234,
		},
		{
			name: "shared extdata",
			info: TitleInfo{ID: 0x0004000000055E00},
			want: 0x0000055D,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.ExtdataID())
		})
	}
}

func TestTitleInfoIsActivityLog(t *testing.T) {
	assert.True(t, TitleInfo{ID: 0x0004003000021200, Media: MediaNAND}.IsActivityLog())
	assert.False(t, TitleInfo{ID: 0x0004003000021200, Media: MediaSD}.IsActivityLog())
	assert.False(t, TitleInfo{ID: 0x0004001000021300, Media: MediaNAND}.IsActivityLog())
}

func TestMediaTypeString(t *testing.T) {
	assert.Equal(t, "NAND", MediaNAND.String())
	assert.Equal(t, "SD Card", MediaSD.String())
	assert.Equal(t, "Cartridge", MediaGameCard.String())
	assert.Equal(t, "Unknown", MediaType(9).String())
}

func TestParseMediumKind(t *testing.T) {
	for _, k := range []MediumKind{KindSave, KindExtdata, KindDSSave, KindGBASave} {
		got, err := ParseMediumKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseMediumKind("nds")
	assert.ErrorIs(t, err, ErrUnknownMedium)
}
