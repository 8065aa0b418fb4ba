package capabilities

import "gopkg.in/yaml.v3"

// Model describes one chat model the proxy will accept.
type Model struct {
	// Model identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`
	Provider    string `yaml:"provider" json:"provider"`

	// Limits
	ContextWindow int `yaml:"context_window" json:"context_window"`
	MaxOutput     int `yaml:"max_output" json:"max_output"`
}

// catalog is the embedded YAML document shape.
type catalog struct {
	Models []Model `yaml:"-"`
}

// UnmarshalYAML preserves the model order from the YAML file, which is the
// order clients should present models in.
func (c *catalog) UnmarshalYAML(node *yaml.Node) error {
	type modelsOnly struct {
		Models map[string]Model `yaml:"models"`
	}
	var m modelsOnly
	if err := node.Decode(&m); err != nil {
		return err
	}

	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value == "models" {
			modelsNode := node.Content[i+1]
			// modelsNode.Content alternates: key, value, key, value...
			for j := 0; j < len(modelsNode.Content); j += 2 {
				id := modelsNode.Content[j].Value
				if model, ok := m.Models[id]; ok {
					model.ID = id
					c.Models = append(c.Models, model)
				}
			}
			break
		}
	}

	return nil
}
