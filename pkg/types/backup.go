package types

import "fmt"

// Origin folder sentinels for BackupEntry.Origin.
const (
	// OriginDefault selects the title's default backups directory.
	OriginDefault = -1
	// OriginNew marks a backup that has just been created and should be
	// registered in the backup set once it succeeds.
	OriginNew = -2
)

// BackupEntry names one backup folder. Origin >= 0 selects one of the title's
// additional folders; OriginDefault selects the default backups directory.
type BackupEntry struct {
	Origin int
	Folder string
}

// MediumKind determines which storage container driver handles a backup.
type MediumKind int

// Medium kinds.
const (
	KindSave MediumKind = iota
	KindExtdata
	KindDSSave
	KindGBASave
)

func (k MediumKind) String() string {
	switch k {
	case KindSave:
		return "save"
	case KindExtdata:
		return "extdata"
	case KindDSSave:
		return "ds"
	case KindGBASave:
		return "gba"
	default:
		return "unknown"
	}
}

// ParseMediumKind parses the name returned by MediumKind.String.
func ParseMediumKind(s string) (MediumKind, error) {
	for k := KindSave; k <= KindGBASave; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMedium, s)
}

// IsExtdata reports whether the kind stores its backups under the extdata tree.
func (k MediumKind) IsExtdata() bool { return k == KindExtdata }

// Input is the bundle passed to a backup or restore.
type Input struct {
	// Backup is the chosen folder name and origin. Use OriginNew to register
	// the backup in the title's backup set after it succeeds.
	Backup BackupEntry
}
