package tui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// Option configures optional model behavior.
type Option func(*Model)

// defaultFrameInterval paces animation frames at roughly 60fps.
const defaultFrameInterval = time.Second / 60

// WithTitle sets the header title.
func WithTitle(title string) Option {
	return func(m *Model) {
		if title = strings.TrimSpace(title); title != "" {
			m.title = title
		}
	}
}

// WithPlaceholder sets the input placeholder text.
func WithPlaceholder(text string) Option {
	return func(m *Model) {
		m.input.Placeholder = text
	}
}

// WithKeyConfig applies key overrides.
func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}

// WithFrameInterval sets the delay between animation frames.
func WithFrameInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.frameInterval = d
		}
	}
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.copyText = write
		}
	}
}

func systemClipboard(text string) error {
	return clipboard.WriteAll(text)
}
