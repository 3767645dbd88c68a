// Package log provides a very small logging facade for emitting file-scoped,
// optionally tagged lines that can be muted at runtime by file name or tag.
//
// Key Features
//
//   - Per file loggers via For(source) or Track()
//   - Automatic prefix in every line: `[name]` or `[name][tag]`
//     (example: `[Analyzer.go][clean] normalized length 42`)
//   - Global on/off switch (SetEnabled)
//   - Per file rules (MuteFile / UnmuteFile) and per tag rules
//     (MuteTag / UnmuteTag), with "*" as a fallback rule
//   - Discovery of every file and tag seen so far (Dump)
//
// Non‑Goals
//
//   - Log levels
//   - Structured / JSON logging
//   - Rotation, sampling or asynchronous buffering
//
// Basic Usage
//
//	import (
//		"github.com/rubiojr/tracklog/pkg/log"
//	)
//
//	var logger = log.Track() // bound to the current .go file
//
//	func parse() {
//		logger.Tagged("extract", "parsed", 42, "lines")
//		logger.Print("done")
//	}
//
// Rule Precedence
//
// A call is emitted when the global switch is on, the file rule allows it and
// the tag rule allows it, checked in that order. For both files and tags an
// exact rule wins over the "*" rule, and the "*" rule wins over the default,
// which is to emit. Untagged calls only consult the "*" tag rule.
//
//	log.MuteFile("*")           // silence everything...
//	log.UnmuteFile("parser.go") // ...except parser.go
//	log.MuteTag("trace")        // and drop its trace lines
//
// Tags are recorded as known before the tag rule is checked, so a muted tag
// still shows up in Dump. Nothing is recorded while the global switch is off
// or the file is muted.
//
// Call Forms
//
// Print and Tagged are the typed entry points. Log keeps the loose form: a
// string first argument followed by at least one more argument is the tag.
// log.Log("ui") therefore prints `[name] ui` with no tag.
//
// Isolated Stores
//
// The package-level functions operate on Default(). Tests and embedders can
// build their own store with NewSettings and route its output anywhere with
// SetOutput, for example a bytes.Buffer.
//
// Thread Safety
//
// All exported functions and methods are safe for concurrent use.
package log
