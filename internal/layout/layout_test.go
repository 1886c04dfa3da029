package layout

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

func TestLayout_BackupsDir(t *testing.T) {
	l := New("/sd/savekeep")
	info := types.TitleInfo{ID: 0x0004000000055D00, ShortDesc: "Pokémon X"}

	assert.Equal(t, filepath.Join("/sd/savekeep", "saves", "0x0055D Pokémon X"), l.SaveBackupsDir(info))
	assert.Equal(t, filepath.Join("/sd/savekeep", "extdata", "0x0055D Pokémon X"), l.ExtdataBackupsDir(info))
	assert.Equal(t, l.ExtdataBackupsDir(info), l.BackupsDir(info, types.KindExtdata))
	assert.Equal(t, l.SaveBackupsDir(info), l.BackupsDir(info, types.KindDSSave))
}

func TestLayout_FallsBackToProductCode(t *testing.T) {
	l := New("/r")
	info := types.TitleInfo{ID: 0x0004000000030800, ProductCode: "CTR-P-AXXE"}
	assert.Equal(t, filepath.Join("/r", "saves", "0x00308 CTR-P-AXXE"), l.SaveBackupsDir(info))

	info.ProductCode = ""
	assert.Equal(t, filepath.Join("/r", "saves", "0x00308"), l.SaveBackupsDir(info))
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mario Kart 7", "Mario Kart 7"},
		{`A:B/C\D?E*F"G<H>I|J`, "ABCDEFGHIJ"},
		{"Dr. Mario!", "Dr Mario"},
		{"  spaced  ", "spaced"},
		// Decomposed e + combining acute composes to a single rune.
		{"Poke\u0301mon", "Pok\u00e9mon"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeName(tt.in), tt.in)
	}
}

func TestDSSaveFile(t *testing.T) {
	assert.Equal(t, "Pokemon Black.sav", DSSaveFile(types.TitleInfo{ShortDesc: "Pokemon Black"}))
	assert.Equal(t, "00048000004A4200.sav", DSSaveFile(types.TitleInfo{ID: 0x00048000004A4200}))
}

func TestNewBackupName(t *testing.T) {
	now := time.Date(2024, 3, 9, 17, 4, 5, 0, time.Local)
	clk := testclock.NewClock(now)

	name := NewBackupName(clk)
	assert.Equal(t, "20240309-170405", name)

	parsed, ok := ParseBackupName(name)
	assert.True(t, ok)
	assert.True(t, parsed.Equal(now))

	_, ok = ParseBackupName("my backup")
	assert.False(t, ok)
}
