package configs

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// UI holds the user-facing texts of the front-ends.
type UI struct {
	Title         string `toml:"title"`
	EmptyMessage  string `toml:"empty_message"`
	Placeholder   string `toml:"placeholder"`
	ConfirmDelete string `toml:"confirm_delete"`
	EmptyTask     string `toml:"empty_task"`
	CreateFailed  string `toml:"create_failed"`
}

func DefaultUI() UI {
	return UI{
		Title:         "Todo List",
		EmptyMessage:  "No tasks yet. Add one above!",
		Placeholder:   "What needs to be done?",
		ConfirmDelete: "Are you sure you want to delete this task?",
		EmptyTask:     "Please enter a task",
		CreateFailed:  "Error adding todo",
	}
}

// LoadUI decodes path over DefaultUI. Keys missing from the file keep their
// default value. An empty path returns the defaults.
func LoadUI(path string) (UI, error) {
	ui := DefaultUI()
	if path == "" {
		return ui, nil
	}

	if _, err := toml.DecodeFile(path, &ui); err != nil {
		return UI{}, fmt.Errorf("failed to decode ui config %s: %w", path, err)
	}

	return ui, nil
}
