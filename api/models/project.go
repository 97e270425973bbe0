// api/models/project.go
package models

import "strings"

// Project is a named grouping of printed parts. Deleting a project leaves
// its parts in place with a dangling projectId.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ValidProjectName reports whether a project name is non-empty after trimming.
func ValidProjectName(name string) bool {
	return strings.TrimSpace(name) != ""
}
