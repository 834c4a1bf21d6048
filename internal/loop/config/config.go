// Package config centralizes all tunable game parameters.
package config

import "time"

// View resolution - the logical drawing area in the terminal.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Max render size in terminal cells. Larger terminals get a centered, bordered area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Canvas size for the browser and desktop front ends, in pixels.
const (
	WindowWidth  = 800
	WindowHeight = 600
)

// Leaderboard
const (
	LeaderboardSize = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
