package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// confirm asks before a destructive action. --yes skips the prompt; without
// a terminal the action is refused.
func confirm(app *App, yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	if app.Confirm != nil {
		return app.Confirm(title)
	}
	if app.IsInteractive == nil || !app.IsInteractive() {
		return false, fmt.Errorf("not a terminal: pass --yes to confirm")
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
