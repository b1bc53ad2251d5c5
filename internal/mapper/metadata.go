package mapper

import (
	"maps"

	"gorm.io/datatypes"
)

// cloneMetadata never returns nil so that jsonb columns always hold an object.
func cloneMetadata(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return maps.Clone(m)
}

func metadataToModel(m map[string]interface{}) datatypes.JSONMap {
	return datatypes.JSONMap(cloneMetadata(m))
}

func metadataToEntity(m datatypes.JSONMap) map[string]interface{} {
	return cloneMetadata(map[string]interface{}(m))
}
