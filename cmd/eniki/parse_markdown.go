package main

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"eniki/internal/api"
)

var listItemRegex = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)

// parseMarkdown splits a batch-write file into front matter defaults
// and one entry text per markdown list item.
func parseMarkdown(input string) (api.EntryCreateRequest, []string, error) {
	frontMatter := map[string]any{}
	content := input

	lines := strings.Split(input, "\n")
	if len(lines) >= 3 && strings.TrimSpace(lines[0]) == "---" {
		end := -1
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "---" {
				end = i
				break
			}
		}
		if end == -1 {
			return api.EntryCreateRequest{}, nil, fmt.Errorf("front matter not closed")
		}
		frontText := strings.Join(lines[1:end], "\n")
		if err := yaml.Unmarshal([]byte(frontText), &frontMatter); err != nil {
			return api.EntryCreateRequest{}, nil, err
		}
		content = strings.Join(lines[end+1:], "\n")
	}

	items := []string{}
	for _, line := range strings.Split(content, "\n") {
		match := listItemRegex.FindStringSubmatch(line)
		if len(match) == 2 {
			item := strings.TrimSpace(match[1])
			if item != "" {
				items = append(items, item)
			}
		}
	}

	defaults, err := frontMatterToRequest(frontMatter)
	if err != nil {
		return api.EntryCreateRequest{}, nil, err
	}
	return defaults, items, nil
}

func frontMatterToRequest(frontMatter map[string]any) (api.EntryCreateRequest, error) {
	req := api.EntryCreateRequest{}

	if value, ok := frontMatter["image_source"].(string); ok {
		switch value {
		case api.ImageSourcePredefined, api.ImageSourceGenerated:
			req.ImageSource = value
		default:
			return req, fmt.Errorf("invalid image_source %q", value)
		}
	}
	if value, ok := frontMatter["image_base64"].(string); ok {
		req.ImageBase64 = value
	}

	return req, nil
}
