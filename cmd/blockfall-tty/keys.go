package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/tetris"
)

type actionKind uint8

const (
	actionNone actionKind = iota
	actionInput
	actionAutoplay
	actionQuit
)

type keyAction struct {
	kind  actionKind
	input tetris.Input
}

var specialKeys = map[tcell.Key]tetris.Input{
	tcell.KeyLeft:  tetris.InputMoveLeft,
	tcell.KeyRight: tetris.InputMoveRight,
	tcell.KeyDown:  tetris.InputSoftDrop,
	tcell.KeyUp:    tetris.InputRotate,
}

var runeKeys = map[rune]tetris.Input{
	'h': tetris.InputMoveLeft,
	'l': tetris.InputMoveRight,
	'j': tetris.InputSoftDrop,
	'k': tetris.InputRotate,
	' ': tetris.InputHardDrop,
	'r': tetris.InputReset,
	'p': tetris.InputPause,
}

func translateKey(ev *tcell.EventKey) keyAction {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return keyAction{kind: actionQuit}
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q':
			return keyAction{kind: actionQuit}
		case 'a':
			return keyAction{kind: actionAutoplay}
		default:
			if in, ok := runeKeys[r]; ok {
				return keyAction{kind: actionInput, input: in}
			}
		}
	default:
		if in, ok := specialKeys[ev.Key()]; ok {
			return keyAction{kind: actionInput, input: in}
		}
	}
	return keyAction{kind: actionNone}
}
