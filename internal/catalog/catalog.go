// Package catalog loads the questions, solutions and features a game is played over.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aaronzipp/twenty-questions/internal/models"
)

var validate = validator.New()

// ErrInvalidCatalog wraps every validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// QuestionEntry is a question as written in the catalog file
type QuestionEntry struct {
	ID   int64  `yaml:"id" validate:"gt=0"`
	Text string `yaml:"text" validate:"required"`
}

// SolutionEntry is a solution and its features, keyed by question ID
type SolutionEntry struct {
	ID       int64             `yaml:"id" validate:"gt=0"`
	Name     string            `yaml:"name" validate:"required"`
	Features map[int64]float64 `yaml:"features"`
}

// Catalog is the whole game data set.
type Catalog struct {
	Questions []QuestionEntry `yaml:"questions" validate:"required,min=1,dive"`
	Solutions []SolutionEntry `yaml:"solutions" validate:"required,min=1,dive"`
}

// Load reads and validates a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field rules, ID uniqueness and that every feature points
// at a declared question.
func (c *Catalog) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	questions := make(map[int64]bool, len(c.Questions))
	for _, q := range c.Questions {
		if questions[q.ID] {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalidCatalog, q.ID)
		}
		questions[q.ID] = true
	}

	solutions := make(map[int64]bool, len(c.Solutions))
	for _, s := range c.Solutions {
		if solutions[s.ID] {
			return fmt.Errorf("%w: duplicate solution id %d", ErrInvalidCatalog, s.ID)
		}
		solutions[s.ID] = true
		for q := range s.Features {
			if !questions[q] {
				return fmt.Errorf("%w: solution %d has a feature for unknown question %d", ErrInvalidCatalog, s.ID, q)
			}
		}
	}
	return nil
}

// QuestionModels returns the questions in file order.
func (c *Catalog) QuestionModels() []models.Question {
	out := make([]models.Question, 0, len(c.Questions))
	for _, q := range c.Questions {
		out = append(out, models.Question{ID: models.QuestionID(q.ID), Text: q.Text})
	}
	return out
}

// SolutionModels returns the solutions in file order.
func (c *Catalog) SolutionModels() []models.Solution {
	out := make([]models.Solution, 0, len(c.Solutions))
	for _, s := range c.Solutions {
		out = append(out, models.Solution{ID: models.SolutionID(s.ID), Name: s.Name})
	}
	return out
}

// FeatureTable flattens per-solution features into a question-major table.
func (c *Catalog) FeatureTable() models.FeatureTable {
	table := models.FeatureTable{}
	for _, s := range c.Solutions {
		for q, v := range s.Features {
			table.Set(models.QuestionID(q), models.SolutionID(s.ID), v)
		}
	}
	return table
}
