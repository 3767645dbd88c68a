package log

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Wildcard is the rule key applied when a file or tag has no exact rule.
const Wildcard = "*"

// DefaultDumpLabel is written before the snapshot when Dump gets an empty label.
const DefaultDumpLabel = "logger debug info"

// Settings holds the global switch, the per-file and per-tag rules and the
// discovery sets shared by every Logger created from it.
type Settings struct {
	mu sync.RWMutex

	enabled bool
	files   map[string]bool
	tags    map[string]bool

	knownFiles orderedSet
	knownTags  orderedSet

	out io.Writer
	// wmu serializes writes so lines from concurrent loggers do not interleave.
	wmu sync.Mutex
}

// orderedSet is an append-only set that remembers insertion order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func (o *orderedSet) add(v string) {
	if o.seen == nil {
		o.seen = make(map[string]struct{})
	}
	if _, ok := o.seen[v]; ok {
		return
	}
	o.seen[v] = struct{}{}
	o.items = append(o.items, v)
}

func (o *orderedSet) list() []string {
	out := make([]string, len(o.items))
	copy(out, o.items)
	return out
}

var std = NewSettings()

// NewSettings returns an isolated store: logging enabled, no rules, output to stderr.
func NewSettings() *Settings {
	return &Settings{
		enabled: true,
		files:   make(map[string]bool),
		tags:    make(map[string]bool),
		out:     os.Stderr,
	}
}

// Default returns the process-wide store used by the package-level functions.
func Default() *Settings {
	return std
}

// SetEnabled turns all logging from this store on or off.
func (s *Settings) SetEnabled(v bool) {
	s.mu.Lock()
	s.enabled = v
	s.mu.Unlock()
}

// Enabled reports the global switch.
func (s *Settings) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// MuteFile silences every logger bound to name. Use Wildcard to change the fallback.
func (s *Settings) MuteFile(name string) { s.setFileRule(name, false) }

// UnmuteFile explicitly enables loggers bound to name.
func (s *Settings) UnmuteFile(name string) { s.setFileRule(name, true) }

// MuteTag silences calls using tag.
func (s *Settings) MuteTag(tag string) { s.setTagRule(tag, false) }

// UnmuteTag explicitly enables calls using tag.
func (s *Settings) UnmuteTag(tag string) { s.setTagRule(tag, true) }

// The rule maps are swapped by ClearRules and ReplaceRules, so they are
// only dereferenced under the lock.
func (s *Settings) setFileRule(key string, v bool) {
	s.mu.Lock()
	s.files[key] = v
	s.mu.Unlock()
}

func (s *Settings) setTagRule(key string, v bool) {
	s.mu.Lock()
	s.tags[key] = v
	s.mu.Unlock()
}

// ClearRules drops every file and tag rule. The enabled flag and the
// discovery sets are left alone.
func (s *Settings) ClearRules() {
	s.mu.Lock()
	s.files = make(map[string]bool)
	s.tags = make(map[string]bool)
	s.mu.Unlock()
}

// ReplaceRules sets the global switch and swaps in copies of files and tags
// in one step, so concurrent loggers see either the old rules or the new
// ones. Discovery sets are kept.
func (s *Settings) ReplaceRules(enabled bool, files, tags map[string]bool) {
	files, tags = copyRules(files), copyRules(tags)
	s.mu.Lock()
	s.enabled = enabled
	s.files = files
	s.tags = tags
	s.mu.Unlock()
}

// SetOutput replaces the sink. A nil writer is ignored.
func (s *Settings) SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	s.mu.Lock()
	s.out = w
	s.mu.Unlock()
}

// FileEnabled resolves the rule for a file name: exact rule, then wildcard,
// then enabled.
func (s *Settings) FileEnabled(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return resolve(s.files, name)
}

// TagEnabled resolves the rule for a tag. An empty tag only consults the wildcard.
func (s *Settings) TagEnabled(tag string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tag == "" {
		if v, ok := s.tags[Wildcard]; ok {
			return v
		}
		return true
	}
	return resolve(s.tags, tag)
}

func resolve(rules map[string]bool, key string) bool {
	if v, ok := rules[key]; ok {
		return v
	}
	if v, ok := rules[Wildcard]; ok {
		return v
	}
	return true
}

// Snapshot is a copy of a store's state. Changing it has no effect on the store.
type Snapshot struct {
	Enabled    bool
	Files      map[string]bool
	Tags       map[string]bool
	KnownFiles []string
	KnownTags  []string
}

func (sn Snapshot) String() string {
	return fmt.Sprintf("{on: %t, files: %v, tags: %v, knownFiles: %v, knownTags: %v}",
		sn.Enabled, sn.Files, sn.Tags, sn.KnownFiles, sn.KnownTags)
}

// Snapshot copies the current state without writing anything.
func (s *Settings) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Enabled:    s.enabled,
		Files:      copyRules(s.files),
		Tags:       copyRules(s.tags),
		KnownFiles: s.knownFiles.list(),
		KnownTags:  s.knownTags.list(),
	}
}

// Dump writes label and a snapshot of the state to the sink and returns the snapshot.
func (s *Settings) Dump(label string) Snapshot {
	if label == "" {
		label = DefaultDumpLabel
	}
	snap := s.Snapshot()
	s.write(label + " " + snap.String())
	return snap
}

func copyRules(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Settings) write(line string) {
	s.mu.RLock()
	w := s.out
	s.mu.RUnlock()
	s.wmu.Lock()
	_, _ = io.WriteString(w, line+"\n")
	s.wmu.Unlock()
}

// For returns a logger bound to the last path segment of source and records
// that name as a known file.
func (s *Settings) For(source string) *Logger {
	name := displayName(source)
	s.mu.Lock()
	s.knownFiles.add(name)
	s.mu.Unlock()
	return &Logger{name: name, settings: s}
}

// Track returns a logger bound to the Go source file of its caller.
func (s *Settings) Track() *Logger {
	return s.For(callerFile(2))
}

func callerFile(skip int) string {
	_, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return file
}

func displayName(source string) string {
	if i := strings.LastIndex(source, "/"); i >= 0 && i < len(source)-1 {
		return source[i+1:]
	}
	return source
}

// SetEnabled turns all logging from the default store on or off.
func SetEnabled(v bool) { std.SetEnabled(v) }

// MuteFile silences loggers bound to name in the default store.
func MuteFile(name string) { std.MuteFile(name) }

// UnmuteFile explicitly enables loggers bound to name in the default store.
func UnmuteFile(name string) { std.UnmuteFile(name) }

// MuteTag silences calls using tag in the default store.
func MuteTag(tag string) { std.MuteTag(tag) }

// UnmuteTag explicitly enables calls using tag in the default store.
func UnmuteTag(tag string) { std.UnmuteTag(tag) }

// SetOutput replaces the sink of the default store. A nil writer is ignored.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// Dump writes and returns a snapshot of the default store.
func Dump(label string) Snapshot { return std.Dump(label) }

// For returns a logger from the default store bound to the last path segment of source.
func For(source string) *Logger { return std.For(source) }

// Track returns a logger from the default store bound to the caller's source file.
func Track() *Logger {
	return std.For(callerFile(2))
}
