package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arclabs/tracewright/suite"
)

// Scenario is one YAML-described suite.
type Scenario struct {
	Suite   string `yaml:"suite"`
	BaseURL string `yaml:"base_url"`
	Cases   []Case `yaml:"cases"`
}

// Case is one test case: a name plus an ordered list of steps.
type Case struct {
	Name        string `yaml:"name"`
	ID          string `yaml:"id"`
	Tags        string `yaml:"tags"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one instrumented action. Which fields apply depends on Action.
type Step struct {
	Action    string `yaml:"action"`
	URL       string `yaml:"url"`      // navigate
	Selector  string `yaml:"selector"` // click, fill, assert_visible, assert_text, assert_count
	Value     string `yaml:"value"`    // fill
	Sensitive bool   `yaml:"sensitive"`
	Expected  string `yaml:"expected"` // assert_text
	Count     int    `yaml:"count"`    // assert_count
	Pattern   string `yaml:"pattern"`  // assert_url
}

// Load reads, env-expands and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses scenario YAML, expands ${VAR} references in string fields,
// and validates the result.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario: parse: %w", err)
	}
	if err := sc.expand(); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) expand() error {
	fields := []*string{&sc.BaseURL}
	for i := range sc.Cases {
		c := &sc.Cases[i]
		for j := range c.Steps {
			st := &c.Steps[j]
			fields = append(fields, &st.URL, &st.Selector, &st.Value, &st.Expected, &st.Pattern)
		}
	}
	for _, f := range fields {
		expanded, err := expandEnvStrict(*f)
		if err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
		*f = expanded
	}
	return nil
}

// Validate checks structural requirements before anything touches a browser.
func (sc *Scenario) Validate() error {
	if len(sc.Cases) == 0 {
		return ErrNoCases
	}
	for _, c := range sc.Cases {
		if c.Name == "" {
			return ErrMissingCaseName
		}
		for i, st := range c.Steps {
			if err := st.validate(); err != nil {
				return fmt.Errorf("case %q step %d: %w", c.Name, i+1, err)
			}
		}
	}
	return nil
}

func (st Step) validate() error {
	need := func(field, value string) error {
		if value == "" {
			return fmt.Errorf("%w: %s requires %s", ErrMissingField, st.Action, field)
		}
		return nil
	}

	switch st.Action {
	case "navigate":
		return need("url", st.URL)
	case "click", "assert_visible":
		return need("selector", st.Selector)
	case "fill":
		return need("selector", st.Selector)
	case "assert_text":
		return errors.Join(need("selector", st.Selector), need("expected", st.Expected))
	case "assert_count":
		return need("selector", st.Selector)
	case "assert_url":
		return need("pattern", st.Pattern)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, st.Action)
	}
}

// Execute runs every case through the suite, continuing past failed cases so
// one broken test does not hide the rest. The per-case errors come back
// joined.
func (sc *Scenario) Execute(ctx context.Context, s *suite.Suite) error {
	var errs []error
	for _, c := range sc.Cases {
		opts := suite.CaseOptions{
			Name:        c.Name,
			ID:          c.ID,
			Tags:        c.Tags,
			Description: c.Description,
		}
		steps := c.Steps
		err := s.Run(ctx, opts, func(ctx context.Context, tc *suite.TestCase) error {
			for _, st := range steps {
				if err := sc.runStep(ctx, tc, st); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("case %q: %w", c.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (sc *Scenario) runStep(ctx context.Context, tc *suite.TestCase, st Step) error {
	switch st.Action {
	case "navigate":
		return tc.Navigate(ctx, sc.resolveURL(st.URL))
	case "click":
		return tc.Click(ctx, st.Selector)
	case "fill":
		return tc.Fill(ctx, st.Selector, st.Value, st.Sensitive)
	case "assert_visible":
		return tc.AssertVisible(ctx, st.Selector)
	case "assert_text":
		return tc.AssertText(ctx, st.Selector, st.Expected)
	case "assert_count":
		return tc.AssertCount(ctx, st.Selector, st.Count)
	case "assert_url":
		return tc.AssertURL(ctx, st.Pattern)
	default:
		// Unreachable after Validate; kept so Execute is safe on
		// hand-built scenarios.
		return fmt.Errorf("%w: %q", ErrUnknownAction, st.Action)
	}
}

// resolveURL joins a path-only step URL onto the scenario base URL.
func (sc *Scenario) resolveURL(u string) string {
	if sc.BaseURL == "" || strings.Contains(u, "://") {
		return u
	}
	return strings.TrimSuffix(sc.BaseURL, "/") + "/" + strings.TrimPrefix(u, "/")
}
