//go:build !ebiten

package app

import (
	"boatsim/internal/config"
	"boatsim/internal/scenario"
)

// Run reports that this binary was built without the viewer.
func Run(*scenario.Result, config.ViewerConfig, int) error {
	return ErrNoGUI
}
