package interaction

import "strings"

// Key names as delivered by the desktop toolkit.
const (
	KeyDelete    = "Delete"
	KeyBackspace = "BackSpace"
	KeyEscape    = "Escape"
)

// KeyEvent is a key press. Name is the key's name, a single upper-case
// letter for letter keys.
type KeyEvent struct {
	Name string
	Mods Mods
}

// Key handles keyboard shortcuts. It reports whether the key was used.
func (m *Machine) Key(ev KeyEvent) bool {
	if m.Mode() == ModeEditingRackName {
		if ev.Name == KeyEscape {
			m.CancelRackName()
			return true
		}
		return false
	}
	st := m.st
	if ev.Mods.Ctrl {
		switch strings.ToUpper(ev.Name) {
		case "C":
			st.Copy()
			return true
		case "X":
			st.Copy()
			m.requestDeleteSelection()
			return true
		case "V":
			if n, _ := st.Paste(); n > 0 {
				m.redraw()
				m.selectionChanged()
			}
			return true
		case "S":
			if m.hooks.Save != nil {
				m.hooks.Save()
			}
			return true
		}
		return false
	}
	switch ev.Name {
	case KeyDelete, KeyBackspace:
		if len(st.Selection.Items) == 0 {
			return false
		}
		m.requestDeleteSelection()
		return true
	}
	return false
}
