package serverconf

import "github.com/arma-type-things/reforger-types-sub001/pkg/ident"

// ModsFromURLs bulk-imports mods from workshop URLs or bare mod IDs.
// Entries that don't parse as a mod reference are skipped silently; the
// returned list preserves the input order of the valid entries.
func ModsFromURLs(refs []string) []Mod {
	mods := make([]Mod, 0, len(refs))
	for _, ref := range refs {
		id, ok := ident.ParseModReference(ref)
		if !ok {
			continue
		}
		mods = append(mods, Mod{ModID: id})
	}
	return mods
}
