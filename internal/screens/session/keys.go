package session

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/marusora/internal/session"
	"github.com/abhisek/marusora/internal/ui/layout"
)

// KeyMap binds keys to session commands.
type KeyMap struct {
	Advance key.Binding
	Requeue key.Binding
	Quit    key.Binding
}

// DefaultKeyMap mirrors the classic flashcard bindings: most movement keys
// flip or advance the card.
var DefaultKeyMap = KeyMap{
	Advance: key.NewBinding(
		key.WithKeys("space", "enter", "n", "l", "j", "right"),
		key.WithHelp("Space", "Next"),
	),
	Requeue: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("R", "Study again"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("Q", "Save & quit"),
	),
}

// Command maps a key press to a session command. Unbound keys map to
// sess.CommandNone.
func (k KeyMap) Command(msg tea.KeyMsg) sess.Command {
	switch {
	case key.Matches(msg, k.Quit):
		return sess.CommandQuit
	case key.Matches(msg, k.Requeue):
		return sess.CommandRequeue
	case key.Matches(msg, k.Advance):
		return sess.CommandAdvance
	}
	return sess.CommandNone
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}
