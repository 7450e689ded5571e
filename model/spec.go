package model

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/timewinder-dev/turing/interp"
	"github.com/timewinder-dev/turing/vm"
)

// Spec is a machine description: the program, the input word and what the
// run is expected to produce.
type Spec struct {
	Machine MachineDetails `toml:"machine"`
	States  []StateSpec    `toml:"states,omitempty"`
	Expect  ExpectSpec     `toml:"expect,omitempty"`
}

type MachineDetails struct {
	Word     string `toml:"word,omitempty"`
	Interval string `toml:"interval,omitempty"`
	// File points at a starlark description that supplies the states.
	File string `toml:"file,omitempty"`
}

type StateSpec struct {
	Instructions []InstructionSpec `toml:"instructions,omitempty"`
}

type InstructionSpec struct {
	Read  string `toml:"read"`
	Write string `toml:"write"`
	Move  string `toml:"move"`
	Next  int    `toml:"next"`
}

type ExpectSpec struct {
	Outcome string `toml:"outcome,omitempty"`
	Tape    string `toml:"tape,omitempty"`
}

func parseSpec(f io.Reader) (*Spec, error) {
	var out Spec
	_, err := toml.NewDecoder(f).Decode(&out)
	return &out, err
}

// LoadSpecFromFile reads a .toml or .star description. A TOML file whose
// machine.file is set takes its states from that starlark file, resolved
// relative to the TOML file.
func LoadSpecFromFile(path string) (*Spec, error) {
	if filepath.Ext(path) == ".star" {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return parseStarlark(path, src)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := parseSpec(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if s.Machine.File == "" {
		return s, nil
	}

	file := filepath.Clean(filepath.Join(filepath.Dir(path), s.Machine.File))
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	star, err := parseStarlark(file, src)
	if err != nil {
		return nil, err
	}
	if len(s.States) != 0 {
		return nil, fmt.Errorf("%s: states are defined both inline and in %s", path, s.Machine.File)
	}
	s.States = star.States
	if s.Machine.Word == "" {
		s.Machine.Word = star.Machine.Word
	}
	if s.Machine.Interval == "" {
		s.Machine.Interval = star.Machine.Interval
	}
	if s.Expect == (ExpectSpec{}) {
		s.Expect = star.Expect
	}
	s.Machine.File = file
	return s, nil
}

func (s *Spec) Program() (vm.Program, error) {
	if len(s.States) == 0 {
		return nil, ErrNoProgram
	}
	var out vm.Program
	for i, st := range s.States {
		state := &vm.State{}
		for j, in := range st.Instructions {
			inst, err := in.build()
			if err != nil {
				return nil, fmt.Errorf("state %d, instruction %d: %w", i, j, err)
			}
			state.Instructions = append(state.Instructions, inst)
		}
		out = append(out, state)
	}
	return out, nil
}

func (in InstructionSpec) build() (vm.Instruction, error) {
	pre, err := vm.ParseSymbol(in.Read)
	if err != nil {
		return vm.Instruction{}, err
	}
	post, err := vm.ParseSymbol(in.Write)
	if err != nil {
		return vm.Instruction{}, err
	}
	dir, err := vm.ParseDirection(in.Move)
	if err != nil {
		return vm.Instruction{}, err
	}
	if in.Next < 0 {
		return vm.Instruction{}, fmt.Errorf("successor %d is negative", in.Next)
	}
	return vm.Instruction{
		Precondition:  pre,
		Postcondition: post,
		Direction:     dir,
		Successor:     in.Next,
	}, nil
}

func (s *Spec) StepInterval() (time.Duration, error) {
	if s.Machine.Interval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Machine.Interval)
	if err != nil {
		return 0, fmt.Errorf("machine.interval: %w", err)
	}
	return d, nil
}

// BuildMachine creates a machine with the program and word loaded.
func (s *Spec) BuildMachine() (*Machine, error) {
	prog, err := s.Program()
	if err != nil {
		return nil, err
	}
	interval, err := s.StepInterval()
	if err != nil {
		return nil, err
	}
	m := NewMachine(interp.NewTape(), interp.NewStateManager(), interval)
	if err := m.LoadProgram(prog); err != nil {
		return nil, err
	}
	m.LoadWord(s.Machine.Word)
	return m, nil
}

// Check compares a run against the description's expectations.
func (s *Spec) Check(r *Result) error {
	if s.Expect.Outcome != "" {
		want, err := ParseOutcome(s.Expect.Outcome)
		if err != nil {
			return fmt.Errorf("expect.outcome: %w", err)
		}
		if r.Outcome != want {
			return fmt.Errorf("expected outcome %s, got %s", want, r.Outcome)
		}
	}
	if s.Expect.Tape != "" {
		if got := r.Tape.Trimmed(); got != s.Expect.Tape {
			return fmt.Errorf("expected tape %q, got %q", s.Expect.Tape, got)
		}
	}
	return nil
}
