// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap_test

import (
	"testing"

	"carvel.dev/yaml2json/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
)

func TestAsUnorderedStringMaps(t *testing.T) {
	nested := orderedmap.NewMap()
	nested.Set("nestedKey", "nestedValue")

	input := orderedmap.NewMap()
	input.Set("key", []interface{}{nested, 1})

	result := orderedmap.Conversion{Object: input}.AsUnorderedStringMaps()

	assert.Equal(t, map[string]interface{}{
		"key": []interface{}{map[string]interface{}{"nestedKey": "nestedValue"}, 1},
	}, result)

	// original is left untouched
	value, found := input.Get("key")
	assert.True(t, found)
	assert.Same(t, nested, value.([]interface{})[0])
}

func TestAsUnorderedStringMapsRejectsNativeMaps(t *testing.T) {
	assert.Panics(t, func() {
		orderedmap.Conversion{Object: []interface{}{map[string]interface{}{}}}.AsUnorderedStringMaps()
	})
}
