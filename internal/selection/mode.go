package selection

// AllModes lists every selection mode, in cycle order.
func AllModes() []Mode {
	return []Mode{ModeRow, ModeColumn, ModeCell}
}

// ParseMode maps a user-supplied mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeRow, ModeColumn, ModeCell:
		return Mode(s), true
	}
	return "", false
}
