package catalog

import (
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

// manifest is the YAML document listing the titles of a device.
type manifest struct {
	Titles []manifestTitle `yaml:"titles"`
}

type manifestTitle struct {
	ID          string `yaml:"id"`
	Media       string `yaml:"media"`
	ProductCode string `yaml:"product_code"`
	ShortDesc   string `yaml:"short_desc"`
	LongDesc    string `yaml:"long_desc"`
	Card        string `yaml:"card"`
	CardType    int    `yaml:"card_type"`
	ExtdataID   string `yaml:"extdata_id"`
	Save        string `yaml:"save"`
	Extdata     bool   `yaml:"extdata"`
}

var mediaNames = map[string]types.MediaType{
	"nand":     types.MediaNAND,
	"sd":       types.MediaSD,
	"":         types.MediaSD,
	"cart":     types.MediaGameCard,
	"gamecard": types.MediaGameCard,
}

var saveKinds = map[string]types.MediumKind{
	"":         types.KindSave,
	"standard": types.KindSave,
	"ds":       types.KindDSSave,
	"gba":      types.KindGBASave,
}

// ParseTitleID parses a title id written as hex, with or without 0x.
func ParseTitleID(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	id, err := strconv.ParseUint(s, 16, 64)
	if err != nil || s == "" {
		return 0, errors.Annotatef(types.ErrInvalidTitleID, "%q", s)
	}
	return id, nil
}

// LoadManifest reads a YAML title manifest from path and returns a catalog
// holding its titles in file order.
func LoadManifest(fs afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading manifest %s", path)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Annotatef(err, "parsing manifest %s", path)
	}

	c := New()
	for i, mt := range m.Titles {
		info, kinds, err := mt.title()
		if err != nil {
			return nil, errors.Annotatef(err, "manifest entry %d", i)
		}
		c.Add(info, kinds...)
	}
	logger.Debugf("loaded %d titles from %s", c.Len(), path)
	return c, nil
}

func (mt manifestTitle) title() (types.TitleInfo, []types.MediumKind, error) {
	id, err := ParseTitleID(mt.ID)
	if err != nil {
		return types.TitleInfo{}, nil, errors.Trace(err)
	}
	media, ok := mediaNames[strings.ToLower(mt.Media)]
	if !ok {
		return types.TitleInfo{}, nil, errors.NotValidf("media %q", mt.Media)
	}
	info := types.TitleInfo{
		ID:          id,
		Media:       media,
		ProductCode: mt.ProductCode,
		ShortDesc:   mt.ShortDesc,
		LongDesc:    mt.LongDesc,
		CardType:    types.CardType(mt.CardType),
	}
	if strings.EqualFold(mt.Card, "twl") {
		info.Card = types.CardTWL
	}
	if mt.ExtdataID != "" {
		ext, err := ParseTitleID(mt.ExtdataID)
		if err != nil {
			return types.TitleInfo{}, nil, errors.Annotate(err, "extdata id")
		}
		info.Extdata = uint32(ext)
	}

	var kinds []types.MediumKind
	if !strings.EqualFold(mt.Save, "none") {
		kind, ok := saveKinds[strings.ToLower(mt.Save)]
		if !ok {
			return types.TitleInfo{}, nil, errors.NotValidf("save kind %q", mt.Save)
		}
		kinds = append(kinds, kind)
	}
	if mt.Extdata {
		kinds = append(kinds, types.KindExtdata)
	}
	return info, kinds, nil
}
