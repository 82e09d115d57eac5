package main

import "fmt"

// Command represents one hardware side effect requested by the mode
// controller. Commands perform no I/O themselves; the monitor loop
// executes them via runEffect.
type Command interface {
	commandMarker()
	String() string
}

// CmdSetDisplayPower turns the display on or off.
type CmdSetDisplayPower struct {
	On bool
}

func (CmdSetDisplayPower) commandMarker() {}
func (c CmdSetDisplayPower) String() string {
	return fmt.Sprintf("CmdSetDisplayPower(on=%v)", c.On)
}

// CmdSetCPUFreqBounds imposes power-saving CPU frequency bounds.
type CmdSetCPUFreqBounds struct {
	MinKHz int
	MaxKHz int
}

func (CmdSetCPUFreqBounds) commandMarker() {}
func (c CmdSetCPUFreqBounds) String() string {
	return fmt.Sprintf("CmdSetCPUFreqBounds(min_khz=%d, max_khz=%d)", c.MinKHz, c.MaxKHz)
}

// CmdRestoreCPUFreqBounds restores the governor's default frequency range.
type CmdRestoreCPUFreqBounds struct{}

func (CmdRestoreCPUFreqBounds) commandMarker() {}
func (CmdRestoreCPUFreqBounds) String() string { return "CmdRestoreCPUFreqBounds()" }

// CmdSetRadioBlocked soft-blocks or unblocks a radio via rfkill.
type CmdSetRadioBlocked struct {
	Radio   Radio
	Blocked bool
}

func (CmdSetRadioBlocked) commandMarker() {}
func (c CmdSetRadioBlocked) String() string {
	return fmt.Sprintf("CmdSetRadioBlocked(radio=%s, blocked=%v)", c.Radio, c.Blocked)
}
