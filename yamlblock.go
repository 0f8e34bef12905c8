package geodesy

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAMLBlock lowers a block-form YAML definition into the same
// GysResource shape NewGysResource produces from shorthand, so that the
// rest of the construction pipeline never has to care which surface
// syntax the caller used.
func ParseYAMLBlock(definition string) (*GysResource, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(definition), &doc); err != nil {
		return nil, &SyntaxError{Detail: err.Error()}
	}
	if len(doc) != 1 {
		return nil, &SyntaxError{Detail: "block definition must have exactly one top-level key"}
	}

	var id string
	var body interface{}
	for k, v := range doc {
		id, body = k, v
	}

	bodyMap, _ := body.(map[string]interface{})
	var steps []string

	if rawSteps, ok := bodyMap["steps"]; ok {
		list, ok := rawSteps.([]interface{})
		if !ok {
			return nil, &SyntaxError{Detail: "'steps' must be a list"}
		}
		for _, item := range list {
			stepMap, ok := item.(map[string]interface{})
			if !ok || len(stepMap) != 1 {
				return nil, &SyntaxError{Detail: "each pipeline step must have exactly one operator key"}
			}
			for name, params := range stepMap {
				steps = append(steps, lowerYAMLStep(name, params))
			}
		}
	} else if bodyMap != nil {
		steps = append(steps, lowerYAMLStep(id, bodyMap))
	} else {
		steps = append(steps, id)
	}

	return &GysResource{ID: id, Steps: steps}, nil
}

// lowerYAMLStep renders one operator's YAML parameter map as the same
// "name key:value key:value" text NewGysResource produces from
// shorthand, so chase/splitIntoParameters handle both surface syntaxes
// identically downstream.
func lowerYAMLStep(name string, params interface{}) string {
	m, ok := params.(map[string]interface{})
	if !ok || len(m) == 0 {
		return name
	}
	parts := []string{name}
	for k, v := range m {
		parts = append(parts, fmt.Sprintf("%s:%v", k, v))
	}
	return strings.Join(parts, " ")
}
