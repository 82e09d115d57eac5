package main

import "time"

// Linux input event types and codes (from <linux/input.h>)
const (
	EV_KEY = 0x01

	KEY_POWER = 116

	// EVIOCGRAB grabs/releases exclusive access to an input device.
	// golang.org/x/sys/unix does not export this ioctl number.
	EVIOCGRAB = 0x40044590
)

// Input event value constants
const (
	evValueRelease = 0
	evValuePress   = 1
	evValueRepeat  = 2
)

// Device and sysfs defaults (ClockworkPi uConsole class hardware)
const (
	defaultEventByPathDir = "/dev/input/by-path"
	powerKeyIdentifier    = "axp221-pek"

	defaultCPUPolicyPath   = "/sys/devices/system/cpu/cpufreq/policy0"
	defaultBacklightPath   = "/sys/class/backlight/backlight@0"
	defaultFramebufferPath = "/sys/class/graphics/fb0"
	drmClassPath           = "/sys/class/drm"

	defaultWifiRfkillPath      = "/sys/class/rfkill/rfkill1"
	defaultBluetoothRfkillPath = "/sys/class/rfkill/rfkill0"
)

// Behavior defaults
const (
	// A press held shorter than this toggles the mode; longer is a long press.
	defaultHoldTriggerSec = 0.7

	// Transient read failures are retried with backoff before the reader
	// gives up and the monitor loop exits.
	maxConsecutiveReadErrors = 5
	readRetryDelay           = 200 * time.Millisecond
	epollRetryDelay          = 500 * time.Millisecond
)
