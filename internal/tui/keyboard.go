package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Back, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateSearching:
		return m.handleSearchKey(msg)
	}

	// Route to the detail panel if open
	if m.OverlayVisible() {
		return m.handleDetailKey(msg)
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp

	case key.Matches(msg, Keys.Search):
		cmd = m.openSearch()

	case key.Matches(msg, Keys.Category):
		cmd = m.showCategory(m.category.Next())

	case key.Matches(msg, Keys.Refresh):
		cmd = m.refresh()

	case key.Matches(msg, Keys.Advance):
		cmd = m.advance()

	case key.Matches(msg, Keys.Enter):
		// The banner advances; a box opens its detail route
		if m.focus == bannerFocus {
			cmd = m.advance()
		} else if movie, ok := m.focusedMovie(); ok {
			cmd = m.selectMovie(movie.ID)
		}

	case key.Matches(msg, Keys.Left):
		cmd = m.moveFocus(-1)

	case key.Matches(msg, Keys.Right):
		cmd = m.moveFocus(1)

	case key.Matches(msg, Keys.Up):
		m.scrollBy(-1)

	case key.Matches(msg, Keys.Down):
		m.scrollBy(1)

	case key.Matches(msg, Keys.Back):
		cmd = m.dismiss()

	case key.Matches(msg, Keys.Copy):
		if movie, ok := m.actionMovie(); ok {
			cmd = CopyLinkCmd(movie.ID)
		}

	case key.Matches(msg, Keys.Open):
		if movie, ok := m.actionMovie(); ok && m.Opener != nil {
			cmd = OpenMovieCmd(m.Opener, movie)
		}
	}
	return m, cmd
}

// handleDetailKey handles keys while the detail panel is open
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, components.DetailKeys.Close):
		cmd = m.dismiss()

	case key.Matches(msg, components.DetailKeys.Copy):
		if movie, ok := m.actionMovie(); ok {
			cmd = CopyLinkCmd(movie.ID)
		}

	case key.Matches(msg, components.DetailKeys.Open):
		if movie, ok := m.actionMovie(); ok && m.Opener != nil {
			cmd = OpenMovieCmd(m.Opener, movie)
		}

	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp

	default:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

// handleSearchKey routes keys to the search modal
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var selected bool
	m.searchBox, cmd, selected = m.searchBox.Update(msg)

	if !m.searchBox.IsVisible() {
		m.State = StateBrowsing
		return m, cmd
	}

	if selected {
		r, ok := m.searchBox.Selected()
		m.searchBox.Hide()
		m.State = StateBrowsing
		if ok {
			open := m.openResult(r)
			return m, tea.Batch(cmd, open)
		}
		return m, cmd
	}

	if m.searchBox.QueryChanged() {
		m.refreshSearch()
	}
	return m, cmd
}

// handleMouseMsg handles clicks, hover and the wheel
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.State != StateBrowsing {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if m.OverlayVisible() && m.zoneHit(zoneDetail, msg) {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		if msg.Button == tea.MouseButtonWheelUp {
			m.scrollBy(-1)
		} else {
			m.scrollBy(1)
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.OverlayVisible() || m.slide != nil {
			return m, nil
		}
		if slot, ok := m.slotAt(msg); ok {
			cmd := m.setFocus(slot)
			return m, cmd
		}
		return m, nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		var cmd tea.Cmd
		switch {
		case m.OverlayVisible():
			// Clicks outside the panel land on the backdrop
			if !m.zoneHit(zoneDetail, msg) {
				cmd = m.dismiss()
			}
		case m.zoneHit(zoneBanner, msg):
			cmd = m.advance()
		case m.slide == nil:
			if slot, ok := m.slotAt(msg); ok {
				slice := m.controller.CurrentSlice()
				cmd = m.selectMovie(slice[slot].ID)
			}
		}
		return m, cmd
	}
	return m, nil
}

// slotAt maps a mouse position to a box on the current page
func (m Model) slotAt(msg tea.MouseMsg) (int, bool) {
	if m.zones == nil {
		return 0, false
	}
	x, y := m.zones.Get(zoneCarousel).Pos(msg)
	if x < 0 || y < 0 {
		return 0, false
	}
	slot := m.carousel.SlotAt(x-MarginX, len(m.controller.CurrentSlice()))
	return slot, slot != components.NoFocus
}

// zoneHit reports whether the mouse event falls inside zone id
func (m Model) zoneHit(id string, msg tea.MouseMsg) bool {
	if m.zones == nil {
		return false
	}
	return m.zones.Get(id).InBounds(msg)
}

// mark wraps content in a hit-test zone
func (m Model) mark(id, content string) string {
	if m.zones == nil {
		return content
	}
	return m.zones.Mark(id, content)
}
