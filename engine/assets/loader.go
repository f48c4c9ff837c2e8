package assets

import (
	"path/filepath"
	"strings"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/mesh"
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeModel
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeModel:
		return "model"
	}
	return "none"
}

// Loader turns an asset file into a mesh.
type Loader interface {
	Load(path string) (*mesh.Mesh, error)
}

func determineAssetType(path string) AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return AssetTypeModel
	default:
		return AssetTypeNone
	}
}
