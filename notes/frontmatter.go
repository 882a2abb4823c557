package notes

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// frontmatterField returns the raw value of key in the YAML frontmatter of a
// note. Values are read as written, so 2301.10 stays 2301.10.
func frontmatterField(content, key string) (string, bool) {
	if !strings.HasPrefix(content, frontmatterDelimiter+"\n") {
		return "", false
	}
	rest := content[len(frontmatterDelimiter)+1:]

	end := strings.Index(rest, "\n"+frontmatterDelimiter)
	if end < 0 {
		return "", false
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(rest[:end]), &doc); err != nil {
		return "", false
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return "", false
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return "", false
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key && mapping.Content[i+1].Kind == yaml.ScalarNode {
			return mapping.Content[i+1].Value, true
		}
	}
	return "", false
}
