package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const version = "1.0.0"

func printVersion() {
	fmt.Printf("powerkeyd v%s\n", version)
	fmt.Println("Power key daemon toggling normal and power-saving mode")
}

func printUsage() {
	printVersion()
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  powerkeyd [OPTIONS]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Daemon that grabs the power key input device and toggles the machine")
	fmt.Println("  between normal and power-saving mode on a short press. Power-saving")
	fmt.Println("  mode turns the display off, imposes reduced CPU frequency bounds and")
	fmt.Println("  optionally soft-blocks radios via rfkill.")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML config file (flags override file values)")
	fmt.Println()
	fmt.Println("  -device string")
	fmt.Printf("        Power key input device (default: autodetect under %s)\n", defaultEventByPathDir)
	fmt.Println()
	fmt.Println("  -hold-trigger-sec float")
	fmt.Printf("        Presses held at least this long count as long presses (default %.1f)\n", defaultHoldTriggerSec)
	fmt.Println()
	fmt.Println("  -saving-cpu-freq string")
	fmt.Println("        Power-saving CPU bounds as \"min,max\" in MHz (e.g. \"100,600\";")
	fmt.Println("        empty disables the CPU frequency step)")
	fmt.Println()
	fmt.Println("  -policy-path string")
	fmt.Printf("        cpufreq policy directory (default %q)\n", defaultCPUPolicyPath)
	fmt.Println()
	fmt.Println("  -toggle-wifi")
	fmt.Println("        Soft-block WiFi in power-saving mode")
	fmt.Println()
	fmt.Println("  -toggle-bt")
	fmt.Println("        Soft-block Bluetooth in power-saving mode")
	fmt.Println()
	fmt.Println("  -dry-run")
	fmt.Println("        Log hardware writes instead of performing them; the tracked")
	fmt.Println("        mode still toggles")
	fmt.Println()
	fmt.Println("  -log-level string")
	fmt.Println("        Log level: error, warn, info, debug (default \"info\")")
	fmt.Println()
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println()
	fmt.Println("  -help")
	fmt.Println("        Print this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start with autodetected device and defaults")
	fmt.Println("  powerkeyd")
	fmt.Println()
	fmt.Println("  # Reduce CPU to 100-600 MHz and block WiFi while saving power")
	fmt.Println("  powerkeyd -saving-cpu-freq 100,600 -toggle-wifi")
	fmt.Println()
	fmt.Println("  # Validate classification without touching hardware")
	fmt.Println("  powerkeyd -dry-run -log-level debug")
	fmt.Println()
	fmt.Println("NOTES:")
	fmt.Println("  - Requires read access to the input device and write access to sysfs")
	fmt.Println("    (run as root or arrange udev permissions)")
	fmt.Println("  - The device is grabbed exclusively so the desktop shell never reacts")
	fmt.Println("    to the power key while the daemon runs")
	fmt.Println()
}

func main() {
	// Check for version/help flags early
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			printVersion()
			return
		}
		if arg == "-help" || arg == "--help" || arg == "-h" {
			printUsage()
			return
		}
	}

	// Parse command-line flags
	var (
		configPath     = flag.String("config", "", "Path to YAML config file")
		device         = flag.String("device", "", "Power key input device (empty: autodetect)")
		holdTriggerSec = flag.Float64("hold-trigger-sec", defaultHoldTriggerSec, "Long press threshold in seconds")
		savingCPUFreq  = flag.String("saving-cpu-freq", "", "Power-saving CPU bounds as \"min,max\" in MHz")
		policyPath     = flag.String("policy-path", defaultCPUPolicyPath, "cpufreq policy directory")
		toggleWifi     = flag.Bool("toggle-wifi", false, "Soft-block WiFi in power-saving mode")
		toggleBT       = flag.Bool("toggle-bt", false, "Soft-block Bluetooth in power-saving mode")
		dryRun         = flag.Bool("dry-run", false, "Log hardware writes instead of performing them")
		logLevelStr    = flag.String("log-level", "info", "Log level: error, warn, info, debug")
		showVersion    = flag.Bool("version", false, "Print version and exit")
		showHelp       = flag.Bool("help", false, "Print help message")
	)

	flag.Usage = printUsage
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}
	if *showVersion {
		printVersion()
		return
	}

	// Load config file (or defaults), then overlay flags that were set.
	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfigFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	var overrides FlagOverrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			overrides.Device = device
		case "hold-trigger-sec":
			overrides.HoldTriggerSec = holdTriggerSec
		case "saving-cpu-freq":
			overrides.SavingCPUFreq = savingCPUFreq
		case "policy-path":
			overrides.PolicyPath = policyPath
		case "toggle-wifi":
			overrides.ToggleWifi = toggleWifi
		case "toggle-bt":
			overrides.ToggleBluetooth = toggleBT
		case "dry-run":
			overrides.DryRun = dryRun
		case "log-level":
			overrides.LogLevel = logLevelStr
		}
	})
	if err := overrides.Apply(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging.Level)

	logger.Info("starting powerkeyd", "version", version)

	// Resolve the power key device.
	devicePath := cfg.Input.Device
	if devicePath == "" {
		detected, err := findPowerKeyDevice(defaultEventByPathDir)
		if err != nil {
			logger.Error("power key device not found", "error", err)
			os.Exit(1)
		}
		devicePath = detected
	}
	logger.Info("using power key device", "device", devicePath)

	dev, err := openPowerKeyDevice(devicePath, logger)
	if err != nil {
		logger.Error("failed to open power key device", "device", devicePath, "error", err,
			"tip", "run as root or add user to 'input' group")
		os.Exit(1)
	}
	defer dev.Close()

	// Hardware backend: real sysfs writes, or logging only in dry-run mode.
	var backend HardwareBackend
	if cfg.DryRun {
		logger.Info("dry-run mode: hardware writes are disabled")
		backend = newDryRunBackend(logger)
	} else {
		display := discoverDisplayPaths(cfg.Display)
		if display.Backlight == "" {
			logger.Warn("backlight not found; display toggling will fail until one appears",
				"probed", defaultBacklightPath)
		}
		cpu := newCPUPolicy(cfg.CPU.PolicyPath)
		if cpu.DefaultMin == "" || cpu.DefaultMax == "" {
			logger.Warn("could not capture default cpu frequency bounds", "policy_path", cpu.Path)
		}
		backend = newSysfsBackend(display, cpu, cfg.RfkillPaths(), logger)

		logger.Debug("hardware paths",
			"backlight", display.Backlight,
			"framebuffer", display.Framebuffer,
			"drm_panel", display.DRMPanel,
			"cpu_policy", cpu.Path,
			"cpu_default_min", cpu.DefaultMin,
			"cpu_default_max", cpu.DefaultMax)
	}

	ctrl := newModeController(cfg.SavingCPUFreq(), cfg.EnabledRadios(), logger)
	classifier := newPressClassifier(cfg.HoldTrigger())

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	logger.Debug("configuration",
		"device", devicePath,
		"hold_trigger_sec", cfg.Input.HoldTriggerSec,
		"policy_path", cfg.CPU.PolicyPath,
		"saving_min_mhz", cfg.CPU.SavingMinMHz,
		"saving_max_mhz", cfg.CPU.SavingMaxMHz,
		"toggle_wifi", cfg.Radios.ToggleWifi,
		"toggle_bluetooth", cfg.Radios.ToggleBluetooth,
		"dry_run", cfg.DryRun)
	logger.Info("listening", "device", devicePath, "hold_trigger_sec", cfg.Input.HoldTriggerSec)

	if err := runMonitor(dev, classifier, ctrl, backend, sigc, logger); err != nil {
		logger.Error("monitor loop failed", "error", err)
		os.Exit(1)
	}
}
