package motion

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is the animation frame period (~60 fps)
const FrameInterval = time.Second / 60

// FrameMsg is delivered once per animation frame
type FrameMsg time.Time

// TickCmd schedules the next animation frame
func TickCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
