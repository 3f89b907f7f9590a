package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/eliterealty/internal/catalog"
	"github.com/jask/eliterealty/internal/dropdown"
	"github.com/jask/eliterealty/internal/filter"
	"github.com/jask/eliterealty/internal/leads"
)

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	a.dismissToast()
	if a.showHelp {
		if key.Matches(msg, a.keys.Help, a.keys.Close) {
			a.showHelp = false
		}
		return nil
	}
	if a.leadOpen {
		return a.leadKey(msg)
	}
	if a.selected != nil {
		return a.detailKey(msg)
	}

	if consumed, cmd := a.registry.Dispatch(dropdown.KeyEvent{Key: msg.String()}); consumed {
		return cmd
	}
	if dd := a.dropdownFor(a.focus); dd != nil && dd.IsOpen() {
		switch {
		case key.Matches(msg, a.keys.Next):
			return a.setFocus(a.nextFocus(1))
		case key.Matches(msg, a.keys.Prev):
			return a.setFocus(a.nextFocus(-1))
		}
		cmd := dd.Update(msg)
		a.relayout()
		return cmd
	}

	switch {
	case key.Matches(msg, a.keys.Next):
		return a.setFocus(a.nextFocus(1))
	case key.Matches(msg, a.keys.Prev):
		return a.setFocus(a.nextFocus(-1))
	case key.Matches(msg, a.keys.Reset):
		return a.resetFilters()
	}
	if in := a.inputFor(a.focus); in != nil {
		return a.inputKey(in, msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return nil
	case key.Matches(msg, a.keys.Search):
		return a.setFocus(focusQuery)
	case key.Matches(msg, a.keys.Schedule):
		return a.openLead(nil)
	case key.Matches(msg, a.keys.Explore):
		cmd := a.setFocus(focusGrid)
		return tea.Batch(cmd, a.scrollTo(a.anchors.listings.Y))
	case key.Matches(msg, a.keys.PageUp):
		return a.scrollBy(-a.viewport.Height)
	case key.Matches(msg, a.keys.PageDown):
		return a.scrollBy(a.viewport.Height)
	case key.Matches(msg, a.keys.Top):
		return a.scrollTo(0)
	case key.Matches(msg, a.keys.Bottom):
		return a.scrollTo(a.viewport.TotalLineCount())
	}

	switch a.focus {
	case focusLocation, focusBeds:
		cmd := a.dropdownFor(a.focus).Update(msg)
		a.relayout()
		return cmd
	case focusGrid:
		return a.gridKey(msg)
	case focusAgents:
		return a.agentKey(msg)
	}
	return nil
}

func (a *App) nextFocus(dir int) focusTarget {
	return focusTarget((int(a.focus) + dir + int(focusCount)) % int(focusCount))
}

func (a *App) inputKey(in *textinput.Model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Close):
		return a.setFocus(focusGrid)
	case key.Matches(msg, a.keys.Open):
		if a.focus == focusQuery && a.suggestion != "" {
			in.SetValue(a.suggestion)
			in.CursorEnd()
			return a.inputsChanged()
		}
		return a.setFocus(focusGrid)
	}
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if in.Value() == before {
		a.relayout()
		return cmd
	}
	return tea.Batch(cmd, a.inputsChanged())
}

// inputsChanged copies the three text fields into the filter. A price that
// does not parse leaves that bound open and flags the field.
func (a *App) inputsChanged() tea.Cmd {
	a.filter.MinPrice, a.priceErr[0] = parseBound(a.minPrice.Value())
	a.filter.MaxPrice, a.priceErr[1] = parseBound(a.maxPrice.Value())
	a.filter.Query = a.query.Value()
	a.cursor = 0
	return a.filterChanged()
}

func parseBound(s string) (*int64, string) {
	v, err := filter.ParsePrice(s)
	if err != nil {
		return nil, "numbers only"
	}
	return v, ""
}

func (a *App) resetFilters() tea.Cmd {
	a.filter = filter.State{Location: catalog.AllLocations}
	a.location.SetSelected(catalog.AllLocations)
	a.beds.SetSelected(filter.AnyBeds)
	a.minPrice.Reset()
	a.maxPrice.Reset()
	a.query.Reset()
	a.priceErr = [2]string{}
	a.cursor = 0
	return tea.Batch(a.closeDropdowns(), a.filterChanged())
}

func (a *App) gridKey(msg tea.KeyMsg) tea.Cmd {
	n := len(a.visible)
	if n == 0 {
		return nil
	}
	cols := max(1, a.anchors.cols)
	moved := true
	switch {
	case key.Matches(msg, a.keys.Left):
		a.cursor = max(0, a.cursor-1)
	case key.Matches(msg, a.keys.Right):
		a.cursor = min(n-1, a.cursor+1)
	case key.Matches(msg, a.keys.Up):
		if a.cursor-cols >= 0 {
			a.cursor -= cols
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor+cols < n {
			a.cursor += cols
		}
	default:
		moved = false
	}
	if moved {
		a.relayout()
		if r, ok := a.focusRect(); ok {
			return a.ensureVisible(r)
		}
		return nil
	}

	current := a.visible[a.cursor]
	switch {
	case key.Matches(msg, a.keys.Open):
		return a.openDetail(current)
	case key.Matches(msg, a.keys.Favorite):
		a.toggleFavorite(current.ID)
		a.relayout()
	case key.Matches(msg, a.keys.Enquire):
		return a.openLead(&current)
	}
	return nil
}

func (a *App) agentKey(msg tea.KeyMsg) tea.Cmd {
	if len(a.agents) == 0 {
		return nil
	}
	switch {
	case key.Matches(msg, a.keys.Up):
		a.agentCursor = max(0, a.agentCursor-1)
	case key.Matches(msg, a.keys.Down):
		a.agentCursor = min(len(a.agents)-1, a.agentCursor+1)
	case key.Matches(msg, a.keys.Open):
		cmd := a.openLead(nil)
		a.form.SetValue(leads.FieldMessage, "For the attention of "+a.agents[a.agentCursor].Name)
		return cmd
	default:
		return nil
	}
	a.relayout()
	return nil
}

func (a *App) detailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Close):
		a.closeDetail()
	case key.Matches(msg, a.keys.Left):
		a.stepGallery(-1)
	case key.Matches(msg, a.keys.Right):
		a.stepGallery(1)
	case key.Matches(msg, a.keys.Favorite):
		a.toggleFavorite(a.selected.ID)
		a.relayout()
	case key.Matches(msg, a.keys.Request), key.Matches(msg, a.keys.Enquire):
		return a.openLead(nil)
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
	}
	return nil
}

func (a *App) leadKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Close):
		a.cancelLead()
		return nil
	case a.sending:
		return nil
	case key.Matches(msg, a.keys.Submit):
		return a.submitLead()
	case key.Matches(msg, a.keys.Next):
		a.form.Next()
		return nil
	case key.Matches(msg, a.keys.Prev):
		a.form.Prev()
		return nil
	case key.Matches(msg, a.keys.Open):
		if a.form.OnLastField() {
			return a.submitLead()
		}
		a.form.Next()
		return nil
	}
	return a.form.Update(msg)
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !a.ui.Mouse {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.modalOpen() {
			return nil
		}
		return a.scrollBy(-3)
	case tea.MouseButtonWheelDown:
		if a.modalOpen() {
			return nil
		}
		return a.scrollBy(3)
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	consumed, cmd := a.registry.Dispatch(dropdown.PointerEvent{X: msg.X, Y: msg.Y})
	if consumed || a.modalOpen() {
		return cmd
	}
	return tea.Batch(cmd, a.click(msg.X, msg.Y))
}

// click hit-tests a press that no open panel claimed.
func (a *App) click(x, y int) tea.Cmd {
	if !a.anchors.laidOut || y < headerHeight || y >= a.height-footerHeight {
		return nil
	}
	dx := x - pageMargin
	dy := y - headerHeight + a.viewport.YOffset
	an := a.anchors

	switch {
	case an.location.Contains(dx, dy):
		return a.focusAndOpen(focusLocation)
	case an.beds.Contains(dx, dy):
		return a.focusAndOpen(focusBeds)
	case an.minPrice.Contains(dx, dy):
		return a.setFocus(focusMinPrice)
	case an.maxPrice.Contains(dx, dy):
		return a.setFocus(focusMaxPrice)
	case an.query.Contains(dx, dy):
		return a.setFocus(focusQuery)
	}
	for i, c := range an.cards {
		if c.rect.Contains(dx, dy) && i < len(a.visible) {
			a.cursor = i
			cmd := a.setFocus(focusGrid)
			return tea.Batch(cmd, a.openDetail(a.visible[i]))
		}
	}
	return nil
}

func (a *App) focusAndOpen(f focusTarget) tea.Cmd {
	cmd := a.setFocus(f)
	open := a.dropdownFor(f).Open()
	a.relayout()
	return tea.Batch(cmd, open)
}
