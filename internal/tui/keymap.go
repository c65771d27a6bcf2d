package tui

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// KeyConfig holds user overrides for the list actions. Blank fields keep
// the default binding.
type KeyConfig struct {
	Toggle string
	Edit   string
	Delete string
	Copy   string
}

// keyMap represents key map data used by this package.
type keyMap struct {
	quit       key.Binding
	toggleHelp key.Binding
	submit     key.Binding
	focusNext  key.Binding
	back       key.Binding
	moveUp     key.Binding
	moveDown   key.Binding
	toggle     key.Binding
	edit       key.Binding
	delete     key.Binding
	copy       key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add/save")),
		focusNext:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel/back")),
		moveUp:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		moveDown:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		toggle:     key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space/x", "toggle done")),
		edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
	}
}

// applyConfig rebinds the configurable list actions. An override that
// handleListKey would match to an earlier binding keeps its default.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	taken := k.fixedKeys()
	if strings.TrimSpace(cfg.Toggle) != "" {
		keys, help := parseBindingKeys(cfg.Toggle, "x")
		if !overlaps(keys, taken) {
			// space stays bound alongside any override.
			if !slices.Contains(keys, "space") {
				keys = append([]string{" ", "space"}, keys...)
				help = "space/" + help
			}
			k.toggle.SetKeys(keys...)
			k.toggle.SetHelp(help, "toggle done")
		}
	}
	taken = append(taken, k.toggle.Keys()...)
	taken = configureBinding(&k.edit, cfg.Edit, "e", "edit", taken)
	taken = configureBinding(&k.delete, cfg.Delete, "d", "delete", taken)
	configureBinding(&k.copy, cfg.Copy, "y", "copy text", taken)
}

// fixedKeys lists every key bound to a non-configurable action.
func (k keyMap) fixedKeys() []string {
	var keys []string
	for _, b := range []key.Binding{k.quit, k.toggleHelp, k.submit, k.focusNext, k.back, k.moveUp, k.moveDown} {
		keys = append(keys, b.Keys()...)
	}
	return keys
}

func overlaps(keys, taken []string) bool {
	return slices.ContainsFunc(keys, func(s string) bool {
		return slices.Contains(taken, s)
	})
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.submit, k.focusNext, k.toggle, k.edit, k.delete, k.toggleHelp, k.quit}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.submit, k.focusNext, k.back, k.toggleHelp, k.quit},
		{k.moveUp, k.moveDown, k.toggle, k.edit, k.delete, k.copy},
	}
}

// configureBinding replaces the keys of b with raw, or fallback when raw is
// blank or already taken. It returns taken extended with the keys bound.
func configureBinding(b *key.Binding, raw, fallback, desc string, taken []string) []string {
	keys, help := parseBindingKeys(raw, fallback)
	if overlaps(keys, taken) {
		keys, help = parseBindingKeys(fallback, fallback)
	}
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
	return append(taken, keys...)
}

// parseBindingKeys turns one configured key into matcher keys and help text.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	if strings.EqualFold(raw, "space") {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(raw) == 1 {
		r, _ := utf8.DecodeRuneInString(raw)
		if unicode.IsUpper(r) {
			return []string{raw, "shift+" + string(unicode.ToLower(r))}, raw
		}
		return []string{raw}, raw
	}
	return []string{strings.ToLower(raw)}, raw
}
