package nav

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes the map as a YAML mapping whose keys keep declaration order.
func (m SidebarMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m.entries {
		var val yaml.Node
		if err := val.Encode(e.groups); err != nil {
			return nil, fmt.Errorf("encode sidebar %s: %w", e.prefix, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.prefix},
			&val,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping, validating every key and group.
func (m *SidebarMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("sidebar: expected mapping, got %v at line %d", value.Kind, value.Line)
	}
	out := SidebarMap{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		prefix := value.Content[i].Value
		var groups []Group
		if err := value.Content[i+1].Decode(&groups); err != nil {
			return fmt.Errorf("sidebar %s: %w", prefix, err)
		}
		if err := out.Add(prefix, groups...); err != nil {
			return err
		}
	}
	*m = out
	return nil
}

// MarshalJSON encodes the map as a JSON object whose keys keep declaration order.
func (m SidebarMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.prefix)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.groups)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (m *SidebarMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("sidebar: expected object")
	}
	out := SidebarMap{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		prefix, _ := tok.(string)
		var groups []Group
		if err := dec.Decode(&groups); err != nil {
			return fmt.Errorf("sidebar %s: %w", prefix, err)
		}
		if err := out.Add(prefix, groups...); err != nil {
			return err
		}
	}
	*m = out
	return nil
}
