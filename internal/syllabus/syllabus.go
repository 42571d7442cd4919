// Package syllabus holds the FSc physics chapter list and the lab each
// chapter links to.
package syllabus

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed chapters.yaml
var chaptersYAML []byte

var ErrChapterNotFound = errors.New("syllabus: chapter not found")

type Chapter struct {
	ID          int      `yaml:"id"`
	Grade       int      `yaml:"grade"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Topics      []string `yaml:"topics"`
	Lab         string   `yaml:"lab,omitempty"`
	LabLabel    string   `yaml:"lab_label,omitempty"`
}

// HasLab reports whether the chapter links to an interactive lab.
func (c Chapter) HasLab() bool { return c.Lab != "" }

// ExplainPrompt is the tutor question asked when a student wants the
// chapter explained.
func (c Chapter) ExplainPrompt() string {
	return fmt.Sprintf("Explain %s to me simply, as found in the FSc Physics syllabus.", c.Title)
}

var (
	once     sync.Once
	chapters []Chapter
	loadErr  error
)

// Parse decodes a chapter list.
func Parse(data []byte) ([]Chapter, error) {
	var out []Chapter
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("syllabus: parse: %w", err)
	}
	return out, nil
}

// Chapters returns the embedded chapter list in book order.
func Chapters() ([]Chapter, error) {
	once.Do(func() {
		chapters, loadErr = Parse(chaptersYAML)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return append([]Chapter(nil), chapters...), nil
}

// ByGrade returns the chapters of grade 11 or 12.
func ByGrade(grade int) ([]Chapter, error) {
	all, err := Chapters()
	if err != nil {
		return nil, err
	}
	var out []Chapter
	for _, c := range all {
		if c.Grade == grade {
			out = append(out, c)
		}
	}
	return out, nil
}

// Find looks a chapter up by id or by case-insensitive title.
func Find(key string) (Chapter, error) {
	all, err := Chapters()
	if err != nil {
		return Chapter{}, err
	}
	key = strings.TrimSpace(key)
	for _, c := range all {
		if fmt.Sprint(c.ID) == key || strings.EqualFold(c.Title, key) {
			return c, nil
		}
	}
	return Chapter{}, fmt.Errorf("%w: %s", ErrChapterNotFound, key)
}

// ForLab returns the chapters linked to the named lab.
func ForLab(name string) ([]Chapter, error) {
	all, err := Chapters()
	if err != nil {
		return nil, err
	}
	var out []Chapter
	for _, c := range all {
		if c.Lab == name {
			out = append(out, c)
		}
	}
	return out, nil
}
