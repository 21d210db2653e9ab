package tour

import "strings"

// NormalizeKey maps a free-text tour name to its canonical join key.
//
// The three record sources (orders, ad-spend imports, manual cost entries)
// spell the same tour inconsistently: "Corvin Castle" vs "Corvin Castle Tour",
// stray apostrophes, doubled spaces. The canonical key is what the aggregation
// engine joins on; it is never shown to users.
//
// Rules: lower-case, strip trailing "tour" words, remove apostrophes, collapse
// whitespace runs, trim. The function is total (nil-safe, empty maps to "")
// and idempotent: NormalizeKey(NormalizeKey(x)) == NormalizeKey(x).
func NormalizeKey(name string) string {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, "'", "")
	key = strings.ReplaceAll(key, "’", "")
	key = strings.Join(strings.Fields(key), " ")

	// Strip repeatedly so that "castle tour tour" and its own normalized form
	// land on the same key. A single pass would break idempotency.
	for {
		trimmed := strings.TrimSpace(strings.TrimSuffix(key, "tour"))
		if trimmed == key {
			break
		}
		key = trimmed
	}

	return key
}
