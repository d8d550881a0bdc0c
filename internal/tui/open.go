package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/floatkit/internal/ipc"
)

// openForm collects the title and kind of a new window. It lives behind a
// pointer so the form's value bindings survive model copies.
type openForm struct {
	title string
	kind  string
	form  *huh.Form
}

// KindOptions are the window kinds offered when opening a window.
var KindOptions = []string{"note", "browser", "terminal", "media"}

func newOpenForm(width int) *openForm {
	f := &openForm{kind: KindOptions[0]}
	opts := make([]huh.Option[string], 0, len(KindOptions))
	for _, k := range KindOptions {
		opts = append(opts, huh.NewOption(k, k))
	}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Description("Caption shown on the window and its dock slot").
				Value(&f.title),
			huh.NewSelect[string]().
				Key("kind").
				Title("Kind").
				Options(opts...).
				Value(&f.kind),
		),
	).WithWidth(max(width-4, 40)).WithShowHelp(true)
	return f
}

func (f *openForm) payload() ipc.OpenWindowPayload {
	return ipc.OpenWindowPayload{Title: f.title, Kind: f.kind}
}

// PromptOpen asks for a window title and kind on the terminal, outside the
// dock.
func PromptOpen() (ipc.OpenWindowPayload, error) {
	f := newOpenForm(60)
	if err := f.form.Run(); err != nil {
		return ipc.OpenWindowPayload{}, err
	}
	return f.payload(), nil
}
