/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// property keys
const (
	PropUseStreamsForBinary = "jdbc.use_streams_for_binary"
	PropBatchSize           = "jdbc.batch_size"
	PropBatchVersionedData  = "jdbc.batch_versioned_data"
	PropUseGetGeneratedKeys = "jdbc.use_get_generated_keys"
)

// Properties dialect default settings, overridable by configuration.
type Properties map[string]string

func (p Properties) Get(key string) string {
	return p[key]
}

func (p Properties) Int(key string, def int) int {
	v, ok := p[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (p Properties) Bool(key string, def bool) bool {
	v, ok := p[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Clone copy of p, so that overrides do not leak into the shared dialect.
func (p Properties) Clone() Properties {
	c := make(Properties, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Merge copies every entry of other into p.
func (p Properties) Merge(other Properties) Properties {
	for k, v := range other {
		p[k] = v
	}
	return p
}

// Keys sorted property names
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadProperties reads YAML overrides. Nested maps are flattened with dots:
//
//	jdbc:
//	  batch_size: 30
//
// becomes jdbc.batch_size=30.
func LoadProperties(r io.Reader) (Properties, error) {
	raw := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return PropertiesFromMap(raw), nil
}

// PropertiesFromMap flattens nested maps into dotted keys.
func PropertiesFromMap(m map[string]any) Properties {
	props := Properties{}
	flatten("", m, props)
	return props
}

func flatten(prefix string, m map[string]any, out Properties) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch x := v.(type) {
		case map[string]any:
			flatten(key, x, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(x)
		}
	}
}
