package log

import (
	"fmt"
	"strings"
)

// Logger is bound to one display name and the store it was created from.
// Rules are read on every call, so changes apply to existing loggers.
type Logger struct {
	name     string
	settings *Settings
}

// Name returns the display name used in the prefix and for file rules.
func (l *Logger) Name() string {
	return l.name
}

// Print emits args without a tag.
func (l *Logger) Print(args ...any) {
	l.emit("", args)
}

// Tagged emits args under tag. An empty tag is the same as Print.
func (l *Logger) Tagged(tag string, args ...any) {
	l.emit(tag, args)
}

// Log picks the call form from its arguments: a leading string followed by
// at least one more argument is the tag, anything else is all message.
//
//	l.Log("ui", "clicked")   // [file][ui] clicked
//	l.Log("ui")              // [file] ui
//	l.Log(42, "items")       // [file] 42 items
func (l *Logger) Log(args ...any) {
	if len(args) > 1 {
		if tag, ok := args[0].(string); ok {
			l.emit(tag, args[1:])
			return
		}
	}
	l.emit("", args)
}

func (l *Logger) emit(tag string, args []any) {
	s := l.settings
	if !s.Enabled() {
		return
	}
	if !s.FileEnabled(l.name) {
		return
	}
	if tag != "" {
		s.mu.Lock()
		s.knownTags.add(tag)
		s.mu.Unlock()
	}
	if !s.TagEnabled(tag) {
		return
	}
	s.write(l.format(tag, args))
}

func (l *Logger) prefix(tag string) string {
	if tag == "" {
		return "[" + l.name + "]"
	}
	return "[" + l.name + "][" + tag + "]"
}

func (l *Logger) format(tag string, args []any) string {
	var b strings.Builder
	b.WriteString(l.prefix(tag))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(fmt.Sprint(a))
	}
	return b.String()
}
