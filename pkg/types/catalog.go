package types

import "image"

// ConfigStore answers per-title configuration questions.
type ConfigStore interface {
	AdditionalSaveFolders(id uint64) []string
	AdditionalExtdataFolders(id uint64) []string
	Favorite(id uint64) bool
}

// SpecialInfo is a yes/no question the rendering layer asks about a title.
type SpecialInfo int

// Special info questions.
const (
	TitleIsActivityLog SpecialInfo = iota
	CanCheat
)

// SpecialInfoResult answers a SpecialInfo question.
type SpecialInfoResult int

// Special info answers.
const (
	SpecialFalse SpecialInfoResult = iota
	SpecialTrue
	SpecialInvalid
)

// Presentation is what the rendering layer reads from a title holder.
type Presentation interface {
	Name() string
	ID() uint64
	Icon() image.Image
	MediaType() MediaType
	Favorite() bool
	SpecialInfo(q SpecialInfo) SpecialInfoResult
	CheatKey() string
}
