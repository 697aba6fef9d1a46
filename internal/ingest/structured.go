package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// scalar accepts a JSON or YAML string or number and keeps its text.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = scalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	*s = scalar(n.String())
	return nil
}

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	if node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = scalar(node.Value)
	return nil
}

type document struct {
	ID       scalar `json:"id" yaml:"id"`
	End      scalar `json:"end" yaml:"end"`
	Duration scalar `json:"duration" yaml:"duration"`
	Category scalar `json:"category" yaml:"category"`
	Tier     scalar `json:"tier" yaml:"tier"`
}

func (d document) record() record {
	return record{
		ID:       string(d.ID),
		End:      string(d.End),
		Duration: string(d.Duration),
		Category: string(d.Category),
		Tier:     string(d.Tier),
	}
}

// readJSON accepts a top-level array, or an object with an "intervals" array.
func readJSON(r io.Reader) ([]record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read json: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var docs []document
	if data[0] == '{' {
		var wrapped struct {
			Intervals []document `json:"intervals"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
		docs = wrapped.Intervals
	} else if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}

	return toRecords(docs), nil
}

// readYAML accepts a top-level sequence, or a mapping with an "intervals"
// sequence.
func readYAML(r io.Reader) ([]record, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	var docs []document
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&docs); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case yaml.MappingNode:
		var wrapped struct {
			Intervals []document `yaml:"intervals"`
		}
		if err := node.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		docs = wrapped.Intervals
	default:
		return nil, fmt.Errorf("failed to parse yaml: expected a list of intervals")
	}

	return toRecords(docs), nil
}

func toRecords(docs []document) []record {
	records := make([]record, len(docs))
	for i, d := range docs {
		records[i] = d.record()
	}
	return records
}
