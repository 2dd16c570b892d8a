package tetris

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Input is a discrete player command delivered by the driving loop.
type Input uint8

const (
	InputNone Input = iota
	InputMoveLeft
	InputMoveRight
	InputSoftDrop
	InputRotate
	InputHardDrop
	InputReset
	InputPause
)

var inputNames = map[Input]string{
	InputNone:      "none",
	InputMoveLeft:  "left",
	InputMoveRight: "right",
	InputSoftDrop:  "down",
	InputRotate:    "rotate",
	InputHardDrop:  "drop",
	InputReset:     "reset",
	InputPause:     "pause",
}

func (i Input) String() string {
	if name, ok := inputNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Input(%d)", uint8(i))
}

// ParseInput maps the text form of an input back to its value.
func ParseInput(s string) (Input, error) {
	for in, name := range inputNames {
		if name == s {
			return in, nil
		}
	}
	return InputNone, fmt.Errorf("unknown input %q", s)
}

// UnmarshalYAML decodes inputs written by name.
func (i *Input) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	in, err := ParseInput(s)
	if err != nil {
		return err
	}
	*i = in
	return nil
}

// MarshalYAML encodes inputs by name.
func (i Input) MarshalYAML() (any, error) {
	return i.String(), nil
}
