// internal/quiz/content.go
//
// Content is the fixed questionnaire: the questions, the result table that
// maps exact answer patterns to programs, and the program catalog used to
// describe recommendations. It is decoded once at startup and never mutated.

package quiz

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// QuestionCount is the number of questions in every questionnaire.
	QuestionCount = 5
	// OptionCount is the number of choices offered by every question.
	OptionCount = 3
	// AlternativeCount is the number of alternative programs per result.
	AlternativeCount = 2
)

//go:embed content.yaml
var defaultContentYAML []byte

// Answer is the zero-based index of the option chosen for a question.
type Answer uint8

// Valid reports whether the answer points at one of the offered options.
func (a Answer) Valid() bool {
	return int(a) < OptionCount
}

// AnswerSet holds one answer per question, by position.
type AnswerSet [QuestionCount]Answer

func (s AnswerSet) String() string {
	parts := make([]string, len(s))
	for i, a := range s {
		parts[i] = fmt.Sprintf("%d", a)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Question is one multiple-choice prompt.
type Question struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
}

// ResultRecord maps one exact answer pattern to a program recommendation.
type ResultRecord struct {
	Title        string    `yaml:"title"`
	Pattern      AnswerSet `yaml:"pattern"`
	Recommended  string    `yaml:"recommended"`
	Alternatives []string  `yaml:"alternatives"`
	Rationale    string    `yaml:"rationale"`
}

// Program is a catalog entry.
type Program struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Content bundles everything the questionnaire needs.
type Content struct {
	Questions []Question     `yaml:"questions"`
	Results   []ResultRecord `yaml:"results"`
	Programs  []Program      `yaml:"programs"`

	catalog map[string]string
}

// LoadDefault decodes the questionnaire compiled into the binary.
func LoadDefault() (*Content, error) {
	content, err := Parse(defaultContentYAML)
	if err != nil {
		return nil, fmt.Errorf("quiz: default content: %w", err)
	}
	return content, nil
}

// LoadFile decodes and validates a questionnaire from disk.
func LoadFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quiz: read %s: %w", path, err)
	}
	content, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("quiz: %s: %w", path, err)
	}
	return content, nil
}

// Parse decodes YAML content and validates its cross references.
func Parse(data []byte) (*Content, error) {
	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	content.normalize()
	if err := content.Validate(); err != nil {
		return nil, err
	}
	return &content, nil
}

func (c *Content) normalize() {
	for i := range c.Questions {
		q := &c.Questions[i]
		q.Prompt = strings.TrimSpace(q.Prompt)
		for j := range q.Options {
			q.Options[j] = strings.TrimSpace(q.Options[j])
		}
	}
	for i := range c.Results {
		r := &c.Results[i]
		r.Title = strings.TrimSpace(r.Title)
		r.Recommended = strings.TrimSpace(r.Recommended)
		r.Rationale = strings.TrimSpace(r.Rationale)
		for j := range r.Alternatives {
			r.Alternatives[j] = strings.TrimSpace(r.Alternatives[j])
		}
	}
	c.catalog = make(map[string]string, len(c.Programs))
	for i := range c.Programs {
		p := &c.Programs[i]
		p.Name = strings.TrimSpace(p.Name)
		p.Description = strings.TrimSpace(p.Description)
		if _, dup := c.catalog[p.Name]; !dup {
			c.catalog[p.Name] = p.Description
		}
	}
}

// Validate reports every structural and cross-reference problem at once.
func (c *Content) Validate() error {
	var errs []error
	if len(c.Questions) != QuestionCount {
		errs = append(errs, fmt.Errorf("questions: want %d, got %d", QuestionCount, len(c.Questions)))
	}
	for i, q := range c.Questions {
		if q.Prompt == "" {
			errs = append(errs, fmt.Errorf("questions[%d]: prompt is required", i))
		}
		if len(q.Options) != OptionCount {
			errs = append(errs, fmt.Errorf("questions[%d]: want %d options, got %d", i, OptionCount, len(q.Options)))
		}
		for j, opt := range q.Options {
			if opt == "" {
				errs = append(errs, fmt.Errorf("questions[%d].options[%d]: text is required", i, j))
			}
		}
	}

	seenNames := map[string]struct{}{}
	for i, p := range c.Programs {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("programs[%d]: name is required", i))
			continue
		}
		if _, dup := seenNames[p.Name]; dup {
			errs = append(errs, fmt.Errorf("programs[%d]: duplicate name %q", i, p.Name))
		}
		seenNames[p.Name] = struct{}{}
		if p.Description == "" {
			errs = append(errs, fmt.Errorf("programs[%d]: description is required for %q", i, p.Name))
		}
	}

	if len(c.Results) == 0 {
		errs = append(errs, errors.New("results: at least one result is required"))
	}
	seenPatterns := map[AnswerSet]int{}
	for i, r := range c.Results {
		if r.Title == "" {
			errs = append(errs, fmt.Errorf("results[%d]: title is required", i))
		}
		for pos, a := range r.Pattern {
			if !a.Valid() {
				errs = append(errs, fmt.Errorf("results[%d].pattern[%d]: %d is out of range", i, pos, a))
			}
		}
		if prev, dup := seenPatterns[r.Pattern]; dup {
			errs = append(errs, fmt.Errorf("results[%d]: pattern %s already used by results[%d]", i, r.Pattern, prev))
		} else {
			seenPatterns[r.Pattern] = i
		}
		if r.Recommended == "" {
			errs = append(errs, fmt.Errorf("results[%d]: recommended program is required", i))
		} else if !c.hasProgram(r.Recommended) {
			errs = append(errs, fmt.Errorf("results[%d]: recommended program %q is not in the catalog", i, r.Recommended))
		}
		if len(r.Alternatives) != AlternativeCount {
			errs = append(errs, fmt.Errorf("results[%d]: want %d alternatives, got %d", i, AlternativeCount, len(r.Alternatives)))
		}
		for j, alt := range r.Alternatives {
			if !c.hasProgram(alt) {
				errs = append(errs, fmt.Errorf("results[%d].alternatives[%d]: %q is not in the catalog", i, j, alt))
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Content) hasProgram(name string) bool {
	desc, ok := c.catalog[name]
	return ok && desc != ""
}

// Describe returns the catalog description for a program name.
func (c *Content) Describe(name string) (string, bool) {
	desc, ok := c.catalog[name]
	return desc, ok
}

// Question returns the question at step, if any.
func (c *Content) Question(step int) (Question, bool) {
	if step < 0 || step >= len(c.Questions) {
		return Question{}, false
	}
	return c.Questions[step], true
}
