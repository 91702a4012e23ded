package main

import "syscall"

const vkShift = 0x10

var getAsyncKeyState = syscall.NewLazyDLL("user32.dll").NewProc("GetAsyncKeyState")

// isShiftHeld reports whether either Shift key is down right now.
func isShiftHeld() bool {
	state, _, _ := getAsyncKeyState.Call(vkShift)
	return state&0x8000 != 0
}
