package model

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var starlarkPredeclared = starlark.StringDict{
	"LEFT":  starlark.String("L"),
	"RIGHT": starlark.String("R"),
	"BLANK": starlark.String("_"),
}

// parseStarlark evaluates a starlark description. It must define `states`,
// a list of states where each state is a list of
// (read, write, move, next) tuples. `word`, `interval`, `expect_tape` and
// `expect_outcome` are optional strings.
func parseStarlark(filename string, src []byte) (*Spec, error) {
	thread := &starlark.Thread{Name: filename}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, filename, src, starlarkPredeclared)
	if err != nil {
		return nil, err
	}

	out := &Spec{}
	optional := []struct {
		name string
		dst  *string
	}{
		{"word", &out.Machine.Word},
		{"interval", &out.Machine.Interval},
		{"expect_tape", &out.Expect.Tape},
		{"expect_outcome", &out.Expect.Outcome},
	}
	for _, g := range optional {
		v, ok := globals[g.name]
		if !ok {
			continue
		}
		s, ok := starlark.AsString(v)
		if !ok {
			return nil, fmt.Errorf("%s: %s must be a string, got %s", filename, g.name, v.Type())
		}
		*g.dst = s
	}

	states, ok := globals["states"]
	if !ok {
		return nil, fmt.Errorf("%s: no `states` defined", filename)
	}
	iter := starlark.Iterate(states)
	if iter == nil {
		return nil, fmt.Errorf("%s: states must be a list, got %s", filename, states.Type())
	}
	defer iter.Done()

	var st starlark.Value
	for i := 0; iter.Next(&st); i++ {
		spec, err := starlarkState(st)
		if err != nil {
			return nil, fmt.Errorf("%s: state %d: %w", filename, i, err)
		}
		out.States = append(out.States, spec)
	}
	return out, nil
}

func starlarkState(v starlark.Value) (StateSpec, error) {
	var out StateSpec
	iter := starlark.Iterate(v)
	if iter == nil {
		return out, fmt.Errorf("must be a list of instructions, got %s", v.Type())
	}
	defer iter.Done()

	var x starlark.Value
	for j := 0; iter.Next(&x); j++ {
		in, err := starlarkInstruction(x)
		if err != nil {
			return out, fmt.Errorf("instruction %d: %w", j, err)
		}
		out.Instructions = append(out.Instructions, in)
	}
	return out, nil
}

func starlarkInstruction(v starlark.Value) (InstructionSpec, error) {
	tuple, ok := v.(starlark.Indexable)
	if !ok || tuple.Len() != 4 {
		return InstructionSpec{}, fmt.Errorf("must be a (read, write, move, next) tuple, got %s", v)
	}
	var fields [3]string
	for k := range fields {
		s, ok := starlark.AsString(tuple.Index(k))
		if !ok {
			return InstructionSpec{}, fmt.Errorf("field %d must be a string, got %s", k, tuple.Index(k).Type())
		}
		fields[k] = s
	}
	next, err := starlark.AsInt32(tuple.Index(3))
	if err != nil {
		return InstructionSpec{}, fmt.Errorf("next: %w", err)
	}
	return InstructionSpec{Read: fields[0], Write: fields[1], Move: fields[2], Next: next}, nil
}
