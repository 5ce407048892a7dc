package main

import (
	"fmt"
	"os"
	"strings"
)

// progressMode is the --ui setting of the build command.
type progressMode string

const (
	progressAuto progressMode = "auto"
	progressOn   progressMode = "on"
	progressOff  progressMode = "off"
)

var progressModes = map[string]progressMode{
	"":     progressAuto,
	"auto": progressAuto,
	"on":   progressOn,
	"off":  progressOff,
}

func parseProgressMode(value string) (progressMode, error) {
	if mode, ok := progressModes[strings.ToLower(strings.TrimSpace(value))]; ok {
		return mode, nil
	}
	return "", fmt.Errorf("--ui: want auto, on or off, got %q", value)
}

// wantsProgress decides whether build draws the progress TUI. --stdout and
// --quiet override --ui on: the generated C++ owns stdout in the first case,
// and only errors may be printed in the second. In auto mode a lone file
// builds without the TUI.
func wantsProgress(mode progressMode, bf buildFlags, quiet bool, files int) bool {
	switch {
	case bf.stdout, quiet, mode == progressOff:
		return false
	case mode == progressOn:
		return true
	}
	return files > 1 && isTerminal(os.Stdout)
}
