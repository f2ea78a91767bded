package batch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
)

// Scalar is an operand exactly as it appears in the job file.
type Scalar string

// UnmarshalYAML keeps the scalar's source text regardless of its YAML tag.
func (s *Scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: operand must be a scalar", value.Line)
	}
	*s = Scalar(value.Value)
	return nil
}

// Job is one operation in a batch file. Either Expr or Op/A/B is set.
type Job struct {
	Op   string `yaml:"op,omitempty" json:"op,omitempty"`
	A    Scalar `yaml:"a,omitempty" json:"a,omitempty"`
	B    Scalar `yaml:"b,omitempty" json:"b,omitempty"`
	Expr string `yaml:"expr,omitempty" json:"expr,omitempty"`

	// Line is the job's position in the source file, zero if unknown.
	Line int `yaml:"-" json:"line,omitempty"`
}

// Expression resolves the job into an expression using mode for operands.
func (j Job) Expression(mode calculator.Mode) (calculator.Expression, error) {
	if strings.TrimSpace(j.Expr) != "" {
		if j.Op != "" || j.A != "" || j.B != "" {
			return calculator.Expression{}, errors.New("expr cannot be combined with op, a or b")
		}
		return calculator.ParseExpression(j.Expr, mode)
	}

	op, err := calculator.ParseOp(j.Op)
	if err != nil {
		return calculator.Expression{}, err
	}
	a, err := calculator.ParseOperand(string(j.A), mode)
	if err != nil {
		return calculator.Expression{}, fmt.Errorf("a: %w", err)
	}
	b, err := calculator.ParseOperand(string(j.B), mode)
	if err != nil {
		return calculator.Expression{}, fmt.Errorf("b: %w", err)
	}
	return calculator.Expression{A: a, Op: op, B: b}, nil
}

type file struct {
	Jobs yaml.Node `yaml:"jobs"`
}

// Parse decodes a job file. An empty document yields no jobs.
func Parse(data []byte) ([]Job, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse jobs: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	list := root.Content[0]
	if list.Kind == yaml.MappingNode {
		var f file
		if err := list.Decode(&f); err != nil {
			return nil, fmt.Errorf("parse jobs: %w", err)
		}
		if f.Jobs.Kind == 0 {
			return nil, errors.New("parse jobs: missing jobs key")
		}
		list = &f.Jobs
	}
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("parse jobs: line %d: expected a list of jobs", list.Line)
	}

	jobs := make([]Job, 0, len(list.Content))
	for _, item := range list.Content {
		var j Job
		if err := item.Decode(&j); err != nil {
			return nil, fmt.Errorf("parse jobs: line %d: %w", item.Line, err)
		}
		j.Line = item.Line
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// Load reads and parses a job file.
func Load(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs: %w", err)
	}
	return Parse(data)
}
