// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yaml2json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"carvel.dev/yaml2json/pkg/orderedmap"
	"carvel.dev/yaml2json/pkg/yamlsplit"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Converter turns one YAML document into one output value.
type Converter struct {
	opts ConverterOpts
}

func NewConverter(opts ConverterOpts) (*Converter, error) {
	err := opts.Validate()
	if err != nil {
		return nil, err
	}
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	return &Converter{opts}, nil
}

func (c *Converter) Opts() ConverterOpts { return c.opts }

// Convert decodes doc and encodes it in the configured format. Output always
// ends with a newline. On failure a *DocumentError is returned.
func (c *Converter) Convert(doc yamlsplit.Document) ([]byte, error) {
	val, err := c.decode(doc)
	if err != nil {
		return nil, NewDocumentError(doc, err)
	}

	var out []byte
	switch c.opts.Format {
	case FormatTOML:
		out, err = c.encodeTOML(val)
	default:
		out, err = c.encodeJSON(val)
	}
	if err != nil {
		return nil, NewDocumentError(doc, err)
	}
	return out, nil
}

func (c *Converter) decode(doc yamlsplit.Document) (interface{}, error) {
	if doc.IsBlank() {
		return nil, nil
	}

	var node yaml.Node

	err := yaml.NewDecoder(bytes.NewReader(doc.Bytes())).Decode(&node)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	return newNodeConverter(doc.Len()).Convert(&node)
}

func (c *Converter) encodeJSON(val interface{}) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if c.opts.Style == StylePretty {
		enc.SetIndent("", c.opts.indent())
	}

	err := enc.Encode(val)
	if err != nil {
		return nil, fmt.Errorf("Encoding JSON: %s", err)
	}
	return buf.Bytes(), nil
}

func (c *Converter) encodeTOML(val interface{}) ([]byte, error) {
	if _, ok := val.(*orderedmap.Map); !ok {
		return nil, fmt.Errorf("Expected document to be a mapping for TOML output, but was %s", typeName(val))
	}

	var buf bytes.Buffer

	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if c.opts.Style == StylePretty {
		enc.Indent = c.opts.indent()
	}

	err := enc.Encode(orderedmap.Conversion{Object: val}.AsUnorderedStringMaps())
	if err != nil {
		return nil, fmt.Errorf("Encoding TOML: %s", err)
	}
	if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func typeName(val interface{}) string {
	switch val.(type) {
	case nil:
		return "null"
	case *orderedmap.Map:
		return "mapping"
	case []interface{}:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "float"
	default:
		return "integer"
	}
}
