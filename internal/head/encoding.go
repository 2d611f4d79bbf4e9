package head

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes an entry as [tag, {attrs...}] or [tag, {attrs...}, content].
func (e Entry) MarshalYAML() (any, error) {
	attrs := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, a := range e.Attrs {
		attrs.Content = append(attrs.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Value},
		)
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Tag}, attrs)
	if e.Content != "" {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Content})
	}
	return seq, nil
}

// UnmarshalYAML decodes the [tag, {attrs...}, content?] form.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) < 1 || len(value.Content) > 3 {
		return fmt.Errorf("head entry at line %d: expected [tag, attrs, content?]", value.Line)
	}
	out := Entry{Tag: normalizeTag(value.Content[0].Value)}
	if len(value.Content) > 1 {
		attrs := value.Content[1]
		if attrs.Kind != yaml.MappingNode {
			return fmt.Errorf("head entry %s at line %d: attributes must be a mapping", out.Tag, attrs.Line)
		}
		for i := 0; i+1 < len(attrs.Content); i += 2 {
			out.Attrs = append(out.Attrs, Attr{Key: attrs.Content[i].Value, Value: attrs.Content[i+1].Value})
		}
	}
	if len(value.Content) == 3 {
		out.Content = value.Content[2].Value
	}
	*e = out
	return nil
}

// MarshalJSON encodes an entry as ["tag", {attrs...}] with attribute order preserved.
func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	tag, err := json.Marshal(e.Tag)
	if err != nil {
		return nil, err
	}
	buf.WriteByte('[')
	buf.Write(tag)
	buf.WriteString(",{")
	for i, a := range e.Attrs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(a.Key)
		v, _ := json.Marshal(a.Value)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	if e.Content != "" {
		c, _ := json.Marshal(e.Content)
		buf.WriteByte(',')
		buf.Write(c)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the ["tag", {attrs...}, "content"?] form.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) < 1 || len(parts) > 3 {
		return fmt.Errorf("head entry: expected [tag, attrs, content?]")
	}
	out := Entry{}
	if err := json.Unmarshal(parts[0], &out.Tag); err != nil {
		return err
	}
	out.Tag = normalizeTag(out.Tag)
	if len(parts) > 1 {
		dec := json.NewDecoder(bytes.NewReader(parts[1]))
		if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
			return fmt.Errorf("head entry %s: attributes must be an object", out.Tag)
		}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return err
			}
			var v string
			if err := dec.Decode(&v); err != nil {
				return err
			}
			k, _ := kt.(string)
			out.Attrs = append(out.Attrs, Attr{Key: k, Value: v})
		}
	}
	if len(parts) == 3 {
		if err := json.Unmarshal(parts[2], &out.Content); err != nil {
			return err
		}
	}
	*e = out
	return nil
}
