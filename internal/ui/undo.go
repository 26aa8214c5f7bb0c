package ui

import (
	"slices"

	"dashtable/internal/datasource"
)

// viewState is the part of the dashboard that undo and redo restore.
type viewState struct {
	prefs TablePrefs
}

func (s viewState) equal(o viewState) bool {
	a, b := s.prefs, o.prefs
	return a.SortKey == b.SortKey &&
		a.SortDesc == b.SortDesc &&
		a.Parity == b.Parity &&
		slices.Equal(a.Filters, b.Filters) &&
		slices.Equal(a.HiddenColumns, b.HiddenColumns)
}

type undoAction struct {
	label  string
	before viewState
	after  viewState
}

func (m *Dashboard) captureState() viewState {
	prefs := m.table.Prefs()
	prefs.Parity = m.parity
	return viewState{prefs: prefs}
}

func (m *Dashboard) restoreState(s viewState) {
	prefs := s.prefs
	prefs.ActiveColumn = m.table.Prefs().ActiveColumn
	if prefs.SortKey == "" {
		m.table.sortBy = nil
		m.table.sortDesc = false
	}
	m.parity = prefs.Parity
	m.table.parity = prefs.Parity
	m.table.ApplyPrefs(prefs)
}

// recordChange pushes an undo entry when the view moved away from before.
func (m *Dashboard) recordChange(label string, before viewState) {
	after := m.captureState()
	if before.equal(after) {
		return
	}
	m.pushUndoAction(undoAction{label: label, before: before, after: after})
}

func (m *Dashboard) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

func (m *Dashboard) undo() {
	if len(m.undoStack) == 0 {
		m.info = "Nothing to undo"
		return
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.restoreState(action.before)
	m.redoStack = append(m.redoStack, action)
	m.info = "Undid: " + action.label
	m.error = ""
}

func (m *Dashboard) redo() {
	if len(m.redoStack) == 0 {
		m.info = "Nothing to redo"
		return
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.restoreState(action.after)
	m.undoStack = append(m.undoStack, action)
	m.info = "Redid: " + action.label
	m.error = ""
}

// parityLabel names a parity the way the filter bar captions it.
func parityLabel(p datasource.RowParity) string {
	for _, b := range filterButtons {
		if b.value == p {
			return b.caption
		}
	}
	return p.String()
}
