// Package abbrev implements the abbreviation expander (spec.md §4.8):
// on word-break, a trigger typed verbatim expands to its configured
// replacement.
package abbrev

// Table maps raw-key triggers to their replacement text. Triggers
// match the literal keys typed, never the Vietnamese render, so an
// abbreviation still fires on a word that briefly rendered with tones
// before the trigger was recognized.
type Table struct {
	entries map[string]string
}

// New returns an empty Table.
func New() *Table {
	return &Table{entries: make(map[string]string)}
}

// Add registers or overwrites a trigger's replacement.
func (t *Table) Add(trigger, replacement string) {
	t.entries[trigger] = replacement
}

// Remove deletes a trigger, if present.
func (t *Table) Remove(trigger string) {
	delete(t.entries, trigger)
}

// Clear removes every registered trigger.
func (t *Table) Clear() {
	t.entries = make(map[string]string)
}

// Lookup returns the replacement for trigger and whether it exists. At
// most one expansion applies per word-break; callers look up once
// against the just-committed raw keys.
func (t *Table) Lookup(trigger string) (string, bool) {
	r, ok := t.entries[trigger]
	return r, ok
}

// Len reports how many triggers are registered.
func (t *Table) Len() int { return len(t.entries) }
