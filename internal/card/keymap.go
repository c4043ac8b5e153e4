package card

// Key represents a key binding.
type Key struct {
	Key  string
	Help string
}

// Keymap contains all key bindings for the card.
type Keymap struct {
	Up      Key
	Down    Key
	Top     Key
	Bottom  Key

	Edit    Key
	Add     Key
	Delete  Key
	Yank    Key
	Refresh Key

	Save   Key
	Cancel Key
	Next   Key
	Prev   Key

	Quit Key
}

// DefaultKeymap returns the default Vim-style key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Up:     Key{Key: "k", Help: "up"},
		Down:   Key{Key: "j", Help: "down"},
		Top:    Key{Key: "g", Help: "top"},
		Bottom: Key{Key: "G", Help: "bottom"},

		Edit:    Key{Key: "enter", Help: "edit"},
		Add:     Key{Key: "a", Help: "add"},
		Delete:  Key{Key: "d", Help: "delete"},
		Yank:    Key{Key: "y", Help: "yank summary"},
		Refresh: Key{Key: "r", Help: "refresh"},

		Save:   Key{Key: "ctrl+s", Help: "save"},
		Cancel: Key{Key: "esc", Help: "cancel"},
		Next:   Key{Key: "tab", Help: "next field"},
		Prev:   Key{Key: "shift+tab", Help: "prev field"},

		Quit: Key{Key: "q", Help: "quit"},
	}
}
