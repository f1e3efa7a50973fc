package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds the few actions the chat window supports.
type KeyMap struct {
	Submit          key.Binding
	ToggleMode      key.Binding
	NewConversation key.Binding
	ScrollUp        key.Binding
	ScrollDown      key.Binding
	Quit            key.Binding
}

var DefaultKeyMap = KeyMap{
	Submit:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	ToggleMode:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "chat/search")),
	NewConversation: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new conversation")),
	ScrollUp:        key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
	ScrollDown:      key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	Quit:            key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}
