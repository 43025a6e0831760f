package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down       key.Binding
	Up         key.Binding
	Select     key.Binding
	Descend    key.Binding
	GotoParent key.Binding

	// Views
	ToggleMailboxes key.Binding
	GotoFolder      key.Binding
	ChangeDir       key.Binding
	Recent          key.Binding

	// Filtering
	Mask   key.Binding
	Search key.Binding

	// Mailbox management
	CreateMailbox key.Binding
	DeleteMailbox key.Binding
	RenameMailbox key.Binding
	Subscribe     key.Binding
	Unsubscribe   key.Binding
	ToggleLsub    key.Binding

	// Selection
	Tag     key.Binding
	NewFile key.Binding

	// Misc
	View        key.Binding
	Tell        key.Binding
	Sort        key.Binding
	SortReverse key.Binding
	Help        key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Descend: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "enter directory"),
		),
		GotoParent: key.NewBinding(
			key.WithKeys("left", "backspace"),
			key.WithHelp("←", "parent directory"),
		),
		ToggleMailboxes: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle mailbox list"),
		),
		GotoFolder: key.NewBinding(
			key.WithKeys("="),
			key.WithHelp("=", "goto folder directory"),
		),
		ChangeDir: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "change directory"),
		),
		Recent: key.NewBinding(
			key.WithKeys("'"),
			key.WithHelp("'", "recent locations"),
		),
		Mask: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "file mask"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CreateMailbox: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "create mailbox"),
		),
		DeleteMailbox: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete mailbox"),
		),
		RenameMailbox: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename mailbox"),
		),
		Subscribe: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "subscribe"),
		),
		Unsubscribe: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unsubscribe"),
		),
		ToggleLsub: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "toggle subscribed only"),
		),
		Tag: key.NewBinding(
			key.WithKeys("t", " "),
			key.WithHelp("t", "tag entry"),
		),
		NewFile: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new file name"),
		),
		View: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view file"),
		),
		Tell: key.NewBinding(
			key.WithKeys("@"),
			key.WithHelp("@", "show full path"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort"),
		),
		SortReverse: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "sort reverse"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.ToggleMailboxes,
		k.ChangeDir, k.Mask, k.Help, k.Quit,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Descend, k.GotoParent},
		{k.ToggleMailboxes, k.GotoFolder, k.ChangeDir, k.Recent},
		{k.Mask, k.Search, k.Sort, k.SortReverse, k.Tag},
		{k.CreateMailbox, k.DeleteMailbox, k.RenameMailbox, k.Subscribe, k.Unsubscribe, k.ToggleLsub},
		{k.View, k.Tell, k.NewFile, k.Back, k.Quit},
	}
}
