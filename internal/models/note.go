package models

import "strings"

// Note is study material grouped by paper.
type Note struct {
	ID      string `json:"id"`
	Paper   string `json:"paper"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (n Note) GetID() string { return n.ID }

// Paragraphs splits the content on newlines, dropping blank lines.
func (n Note) Paragraphs() []string {
	var out []string
	for _, line := range strings.Split(n.Content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
