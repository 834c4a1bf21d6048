package client

import (
	"fmt"
	"time"

	"github.com/tomz197/slalom/internal/loop"
	"github.com/tomz197/slalom/internal/loop/config"
)

// finishArt is the finish screen title (figlet "small" font).
var finishArt = []string{
	`  ___ ___ _  _ ___ ___ _  _ `,
	` | __|_ _| \| |_ _/ __| || |`,
	` | _| | || .` + "`" + ` || |\__ \ __ |`,
	` |_| |___|_|\_|___|___/_||_|`,
}

// drawFrame advances the game to now and draws the current frame.
func (c *Client) drawFrame(now time.Duration) error {
	if c.state.Mode == ModePlaying {
		c.game.Step(now)
	}

	// On run state, mode or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	if c.game.RunState != c.state.prevRunState || c.state.Mode != c.state.prevMode ||
		c.state.isInactive != c.state.wasInactive || c.state.boardChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevRunState = c.game.RunState
		c.state.prevMode = c.state.Mode
		c.state.wasInactive = c.state.isInactive
		c.state.boardChanged = false
	}

	c.game.Draw(c.canvas)

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerY := termHeight / 2

	if c.state.Mode == ModeShutdown {
		c.drawShutdownScreen(termWidth, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(termWidth, centerY)
		return
	}

	labels := c.game.Labels()
	c.drawHUD(termWidth, termHeight, labels)
	if c.game.Finished() {
		c.drawFinishScreen(termWidth, centerY)
	}
}

// drawHUD draws the time, speed and balance labels and the hint line.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(termWidth, termHeight int, labels loop.Labels) {
	cw := c.chunkWriter
	cw.WriteAt(2, 1, fmt.Sprintf("%-14s", labels.Time))
	cw.WriteAt(2, 2, fmt.Sprintf("%-14s", labels.Speed))

	balanceText := fmt.Sprintf("%-12s", labels.Balance)
	cw.WriteAt(termWidth-len(balanceText)-1, 1, balanceText)

	cw.WriteCentered(termHeight, termWidth, labels.Hint)
}

// drawFinishScreen draws the result of the run and the leaderboard.
func (c *Client) drawFinishScreen(termWidth, centerY int) {
	cw := c.chunkWriter
	row := centerY - 6
	for _, line := range finishArt {
		cw.WriteCentered(row, termWidth, line)
		row++
	}
	row++

	result := fmt.Sprintf("Your time: %.2fs", c.game.Elapsed.Seconds())
	if c.state.Rank > 0 {
		result += fmt.Sprintf("  (#%d)", c.state.Rank)
	}
	cw.WriteCentered(row, termWidth, result)
	row += 2

	if len(c.state.Top) == 0 {
		return
	}
	cw.WriteCentered(row, termWidth, "Best times")
	row++
	for i, entry := range c.state.Top {
		line := fmt.Sprintf("%d. %-12.12s %7.2fs", i+1, entry.Username, entry.Elapsed.Seconds())
		cw.WriteCentered(row, termWidth, line)
		row++
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(termWidth, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerY-2, termWidth, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteCentered(centerY, termWidth, msg)
	cw.WriteCentered(centerY+2, termWidth, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(termWidth, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerY-3, termWidth, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerY-1, termWidth, "The server is restarting for maintenance.")
	cw.WriteCentered(centerY, termWidth, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	cw.WriteCentered(centerY+2, termWidth, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	cw.WriteCentered(centerY+4, termWidth, "Press Q to disconnect now")
}
