package dto

import "strings"

func requireString(details map[string]any, field, value string) {
	if strings.TrimSpace(value) == "" {
		details[field] = "required"
	}
}
