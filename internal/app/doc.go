// Package app hosts the ebiten viewer for a finished run.
package app

import "errors"

// ErrNoGUI is returned by Run in builds without the ebiten tag.
var ErrNoGUI = errors.New("app: viewer requires building with -tags ebiten")
