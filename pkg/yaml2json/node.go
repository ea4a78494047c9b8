// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yaml2json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"carvel.dev/yaml2json/pkg/orderedmap"
	"gopkg.in/yaml.v3"
)

const (
	mergeTag = "!!merge"

	// aliases may expand a document to this many values per byte of its text
	valuesPerByte = 64
	minMaxValues  = 10000
)

// nodeConverter turns a decoded YAML node tree into plain values:
// *orderedmap.Map, []interface{}, string, bool, int, int64, uint64, float64 or nil.
type nodeConverter struct {
	// guards against aliases that (indirectly) refer to themselves
	expanding map[*yaml.Node]bool

	maxValues int
	values    int
}

// newNodeConverter limits the number of values produced for a document of
// docSize bytes, so that nested aliases cannot blow up the output.
func newNodeConverter(docSize int) *nodeConverter {
	maxValues := docSize * valuesPerByte
	if maxValues < minMaxValues {
		maxValues = minMaxValues
	}
	return &nodeConverter{expanding: map[*yaml.Node]bool{}, maxValues: maxValues}
}

func (c *nodeConverter) Convert(node *yaml.Node) (interface{}, error) {
	c.values++
	if c.values > c.maxValues {
		return nil, fmt.Errorf("line %d: Expected document to expand to at most %d values (excessive aliasing)", node.Line, c.maxValues)
	}

	switch node.Kind {
	case 0:
		return nil, nil

	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return c.Convert(node.Content[0])

	case yaml.MappingNode:
		return c.convertMapping(node)

	case yaml.SequenceNode:
		result := make([]interface{}, 0, len(node.Content))
		for _, item := range node.Content {
			val, err := c.Convert(item)
			if err != nil {
				return nil, err
			}
			result = append(result, val)
		}
		return result, nil

	case yaml.AliasNode:
		if c.expanding[node.Alias] {
			return nil, fmt.Errorf("line %d: Alias '*%s' refers to itself", node.Line, node.Value)
		}
		c.expanding[node.Alias] = true
		defer delete(c.expanding, node.Alias)
		return c.Convert(node.Alias)

	case yaml.ScalarNode:
		return c.convertScalar(node)

	default:
		return nil, fmt.Errorf("line %d: Unknown YAML node kind %d", node.Line, node.Kind)
	}
}

func (c *nodeConverter) convertMapping(node *yaml.Node) (interface{}, error) {
	result := orderedmap.NewMap()

	// explicit keys win over merged ones regardless of where they appear
	explicit := map[string]struct{}{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Tag == mergeTag {
			continue
		}
		key, err := c.convertKey(node.Content[i])
		if err != nil {
			return nil, err
		}
		explicit[key] = struct{}{}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		if keyNode.Tag == mergeTag {
			err := c.merge(result, valNode, explicit)
			if err != nil {
				return nil, err
			}
			continue
		}

		key, err := c.convertKey(keyNode)
		if err != nil {
			return nil, err
		}
		val, err := c.Convert(valNode)
		if err != nil {
			return nil, err
		}
		result.Set(key, val)
	}

	return result, nil
}

// merge applies a "<<" value: a mapping (usually an alias) or a sequence of
// them, where earlier mappings take precedence over later ones.
func (c *nodeConverter) merge(result *orderedmap.Map, node *yaml.Node, explicit map[string]struct{}) error {
	var sources []*yaml.Node

	switch resolveAlias(node).Kind {
	case yaml.MappingNode:
		sources = append(sources, node)
	case yaml.SequenceNode:
		for _, item := range resolveAlias(node).Content {
			if resolveAlias(item).Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: Expected merge value to be a mapping or a sequence of mappings", item.Line)
			}
			sources = append(sources, item)
		}
	default:
		return fmt.Errorf("line %d: Expected merge value to be a mapping or a sequence of mappings", node.Line)
	}

	for _, src := range sources {
		val, err := c.Convert(src)
		if err != nil {
			return err
		}
		err = val.(*orderedmap.Map).IterateErr(func(k string, v interface{}) error {
			if _, found := explicit[k]; found {
				return nil
			}
			if _, found := result.Get(k); !found {
				result.Set(k, v)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// convertKey renders a mapping key as a JSON object key.
func (c *nodeConverter) convertKey(node *yaml.Node) (string, error) {
	val, err := c.Convert(node)
	if err != nil {
		return "", err
	}

	switch typedVal := val.(type) {
	case string:
		return typedVal, nil
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(typedVal), nil
	case float64:
		return strconv.FormatFloat(typedVal, 'g', -1, 64), nil
	case int, int64, uint64:
		return fmt.Sprintf("%d", typedVal), nil
	default:
		// complex keys are spelled as their compact JSON
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		err := enc.Encode(typedVal)
		if err != nil {
			return "", fmt.Errorf("line %d: Encoding mapping key: %s", node.Line, err)
		}
		return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
	}
}

func (c *nodeConverter) convertScalar(node *yaml.Node) (interface{}, error) {
	var val interface{}

	err := node.Decode(&val)
	if err != nil {
		return nil, err
	}

	// JSON has no representation for .inf and .nan
	if f, ok := val.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return nil, nil
	}
	return val, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
