// SPDX-License-Identifier: Apache-2.0

package docsection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// Step is one documented test step and its expected behaviour.
type Step struct {
	Name     string
	Expected string
}

// Steps is an ordered set of steps keyed by name. Setting a name that already
// exists replaces its expected behaviour in place. It serialises as a
// name -> expected mapping that keeps source order.
type Steps []Step

// Get returns the expected behaviour for the named step.
func (s Steps) Get(name string) (string, bool) {
	for _, st := range s {
		if st.Name == name {
			return st.Expected, true
		}
	}
	return "", false
}

// Set adds or replaces a step.
func (s *Steps) Set(name, expected string) {
	for i := range *s {
		if (*s)[i].Name == name {
			(*s)[i].Expected = expected
			return
		}
	}
	*s = append(*s, Step{Name: name, Expected: expected})
}

// Names returns step names in order.
func (s Steps) Names() []string {
	names := make([]string, len(s))
	for i, st := range s {
		names[i] = st.Name
	}
	return names
}

// Map returns the steps as an unordered name -> expected map.
func (s Steps) Map() map[string]string {
	m := make(map[string]string, len(s))
	for _, st := range s {
		m[st.Name] = st.Expected
	}
	return m
}

// ExtractSteps returns the steps listed in the Steps section of doc.
// Items are split on the first '/' into name and expected behaviour;
// without a '/' the expected behaviour is DefaultExpected.
func ExtractSteps(doc string) Steps {
	steps := Steps{}
	for _, item := range StepsSection.Items(doc) {
		name, expected, found := strings.Cut(item, "/")
		name = strings.TrimSpace(name)
		if found {
			expected = strings.TrimSpace(expected)
		} else {
			expected = DefaultExpected
		}
		steps.Set(name, expected)
	}
	return steps
}

// MarshalJSON writes the steps as a JSON object in source order.
func (s Steps) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, st := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(st.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(st.Expected)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping key order.
func (s *Steps) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("steps: expected object, got %v", tok)
	}

	out := Steps{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var expected string
		if err := dec.Decode(&expected); err != nil {
			return fmt.Errorf("steps: %q: %w", name, err)
		}
		out.Set(name, expected)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// MarshalYAML writes the steps as an ordered YAML mapping.
func (s Steps) MarshalYAML() (interface{}, error) {
	ms := make(yaml.MapSlice, 0, len(s))
	for _, st := range s {
		ms = append(ms, yaml.MapItem{Key: st.Name, Value: st.Expected})
	}
	return ms, nil
}

// UnmarshalYAML reads a YAML mapping, keeping key order.
func (s *Steps) UnmarshalYAML(data []byte) error {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("steps: %w", err)
	}
	out := Steps{}
	for _, item := range ms {
		var expected string
		if item.Value != nil {
			expected = fmt.Sprint(item.Value)
		}
		out.Set(fmt.Sprint(item.Key), expected)
	}
	*s = out
	return nil
}
