package entities

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// LocaleEntry is one translatable string in a locale tree, addressed by
// its dotted key path.
type LocaleEntry struct {
	Key  string
	Text string
}

// LoadLocaleFile reads a locale JSON tree. A missing file yields an empty
// tree, not an error: target languages start from nothing.
func LoadLocaleFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file %q: %w", path, err)
	}

	var tree map[string]any
	if unmarshalErr := json.Unmarshal(data, &tree); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse locale file %q: %w", path, unmarshalErr)
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}

// WriteLocaleFile writes a locale tree as two-space indented JSON with a
// trailing newline, matching the formatting of hand-maintained files.
func WriteLocaleFile(path string, tree map[string]any) error {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode locale tree: %w", err)
	}
	data = append(data, '\n')

	if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
		return fmt.Errorf("failed to write locale file %q: %w", path, writeErr)
	}
	return nil
}

// MissingEntries walks the source tree and returns, in deterministic key
// order, every non-empty string leaf that has no non-empty translation at
// the same path in the existing tree. Empty source strings are never
// candidates: they stay empty in every language.
func MissingEntries(source, existing map[string]any) []LocaleEntry {
	var entries []LocaleEntry
	collectMissing(source, existing, "", &entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func collectMissing(source, existing map[string]any, prefix string, out *[]LocaleEntry) {
	for key, value := range source {
		keyPath := key
		if prefix != "" {
			keyPath = prefix + "." + key
		}

		switch typed := value.(type) {
		case string:
			if typed == "" {
				continue
			}
			if current, ok := existing[key].(string); ok && current != "" {
				continue
			}
			*out = append(*out, LocaleEntry{Key: keyPath, Text: typed})
		case map[string]any:
			sub, _ := existing[key].(map[string]any)
			collectMissing(typed, sub, keyPath, out)
		}
	}
}

// MergeTranslations rebuilds a target tree with the shape of the source
// tree. Existing non-empty translations always win; freshly translated
// values fill the gaps; anything untranslated keeps the source text.
func MergeTranslations(source, existing map[string]any, translated map[string]string) map[string]any {
	return mergeLevel(source, existing, translated, "")
}

func mergeLevel(source, existing map[string]any, translated map[string]string, prefix string) map[string]any {
	merged := make(map[string]any, len(source))

	for key, value := range source {
		keyPath := key
		if prefix != "" {
			keyPath = prefix + "." + key
		}

		switch typed := value.(type) {
		case string:
			merged[key] = resolveLeaf(typed, existing[key], translated[keyPath])
		case map[string]any:
			sub, _ := existing[key].(map[string]any)
			merged[key] = mergeLevel(typed, sub, translated, keyPath)
		default:
			// Non-string leaves (numbers, arrays) are copied verbatim.
			merged[key] = value
		}
	}

	return merged
}

func resolveLeaf(sourceText string, existingValue any, translatedText string) string {
	if sourceText == "" {
		return ""
	}
	if current, ok := existingValue.(string); ok && current != "" {
		return current
	}
	if translatedText != "" {
		return translatedText
	}
	return sourceText
}
