package types

import (
	"fmt"
	"image"
)

// MediaType identifies where a title is installed.
type MediaType uint8

// Media types as reported by the title catalog.
const (
	MediaNAND     MediaType = 0
	MediaSD       MediaType = 1
	MediaGameCard MediaType = 2
)

// String returns the display name of the media type.
func (m MediaType) String() string {
	switch m {
	case MediaNAND:
		return "NAND"
	case MediaSD:
		return "SD Card"
	case MediaGameCard:
		return "Cartridge"
	default:
		return "Unknown"
	}
}

// Card distinguishes native cartridges from DS-mode cartridges.
type Card uint8

// Card families.
const (
	CardCTR Card = 0
	CardTWL Card = 1
)

// CardType is the save chip detected on a DS cartridge. The capacity and page
// size of each chip are answered by the FlashCart driver.
type CardType int

// DS save chip types.
const (
	NoChip                CardType = -1
	EEPROM512B            CardType = 0
	EEPROM8KB             CardType = 1
	EEPROM64KB            CardType = 2
	EEPROM128KB           CardType = 3
	EEPROMStdDummy        CardType = 4
	Flash256KB1           CardType = 5
	Flash256KB2           CardType = 6
	Flash512KB1           CardType = 7
	Flash512KB2           CardType = 8
	Flash1MB              CardType = 9
	Flash8MB              CardType = 10
	Flash512KBInfrared    CardType = 11
	Flash256KBInfrared    CardType = 12
	FlashStdDummy         CardType = 13
	FlashStdInfraredDummy CardType = 14
)

// activityLogLowIDs are the regional system saves that hold the activity log.
var activityLogLowIDs = map[uint32]bool{
	0x00020200: true,
	0x00021200: true,
	0x00022200: true,
	0x00026200: true,
	0x00027200: true,
	0x00028200: true,
}

// sharedExtdata maps titles that share another title's extdata to the owner's
// extdata id.
var sharedExtdata = map[uint32]uint32{
	0x00055E00: 0x0000055D, // Pokemon Y
	0x0011C500: 0x0011C400, // Pokemon Alpha Sapphire
	0x00175E00: 0x00164800, // Pokemon Moon
	0x00179600: 0x00179400, // Fire Emblem Fates
	0x00179800: 0x00179400,
	0x001B5100: 0x001B5000, // Pokemon Ultra Moon
}

// TitleInfo is an immutable snapshot of one installed title. The engine
// borrows it for the duration of a single operation.
type TitleInfo struct {
	// ID is the 64-bit unique title id (high word << 32 | low word).
	ID uint64

	// Media is where the title is installed.
	Media MediaType

	// Card is the cartridge family; only meaningful for game cards.
	Card Card

	// CardType is the detected save chip for DS cartridges.
	CardType CardType

	// Extdata is the extdata id when it differs from the default derivation.
	// Zero means derive it from the low id.
	Extdata uint32

	ProductCode string
	ShortDesc   string
	LongDesc    string

	// Icon is the title's icon handle for the rendering layer; may be nil.
	Icon image.Image
}

// LowID returns the lower 32 bits of the title id.
func (t TitleInfo) LowID() uint32 { return uint32(t.ID) }

// HighID returns the upper 32 bits of the title id.
func (t TitleInfo) HighID() uint32 { return uint32(t.ID >> 32) }

// UniqueID returns the unique id encoded in the low id.
func (t TitleInfo) UniqueID() uint32 { return t.LowID() >> 8 }

// ExtdataID returns the id of the extdata archive that belongs to the title.
func (t TitleInfo) ExtdataID() uint32 {
	if t.Extdata != 0 {
		return t.Extdata
	}
	if id, ok := sharedExtdata[t.LowID()]; ok {
		return id
	}
	return t.UniqueID()
}

// IsActivityLog reports whether the title is one of the activity log system saves.
func (t TitleInfo) IsActivityLog() bool {
	return t.Media == MediaNAND && activityLogLowIDs[t.LowID()]
}

// HexID formats the title id as 16 uppercase hex digits.
func (t TitleInfo) HexID() string {
	return fmt.Sprintf("%016X", t.ID)
}
