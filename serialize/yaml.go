package serialize

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/krakenconfig/hocon/hoconparser"
)

// ToYAML renders a resolved Value as block-style YAML via gopkg.in/yaml.v3
// (the teacher's own dependency — sqlparser/dom.go already leans on it for
// docstring parsing; here it's the output serializer spec.md §6 names).
// Object keys are built as an explicit yaml.Node sequence rather than a Go
// map so insertion order survives (yaml.v3 would otherwise alphabetize a
// map[string]any the way encoding/json does).
func ToYAML(v hoconparser.Value) (string, error) {
	node := valueToYAMLNode(v)
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func valueToYAMLNode(v hoconparser.Value) *yaml.Node {
	switch v.Kind {
	case hoconparser.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case hoconparser.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool)}
	case hoconparser.KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int, 10)}
	case hoconparser.KindReal:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.Real, 'g', -1, 64)}
	case hoconparser.KindDuration:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: hoconparser.FormatDuration(v.Duration)}
	case hoconparser.KindString:
		node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str}
		if strings.Contains(v.Str, "\n") {
			node.Style = yaml.LiteralStyle
		}
		return node
	case hoconparser.KindList:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.List {
			seq.Content = append(seq.Content, valueToYAMLNode(item))
		}
		return seq
	case hoconparser.KindTree:
		return treeToYAMLNode(v.Tree)
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func treeToYAMLNode(t *hoconparser.ConfigTree) *yaml.Node {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			valueToYAMLNode(v),
		)
	}
	return mapping
}
