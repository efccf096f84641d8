package dwarfbin

import "log/slog"

// logWarn emits one of spec.md §7's non-fatal parse warnings. Every
// category it defines — version-unsupported, missing-abbreviation,
// unknown-form, unsupported-opcode, 64-bit-unsupported, unknown-tag,
// truncated-unit — logs and lets the parser continue rather than aborting:
// a failed unit does not poison other units, a failed DIE does not poison
// siblings.
func logWarn(log *slog.Logger, category string, offset int, args ...any) {
	if log == nil {
		return
	}
	attrs := append([]any{"component", "dwarfbin", "category", category, "offset", offset}, args...)
	log.Warn("dwarf parse warning", attrs...)
}
