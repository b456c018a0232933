package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

const (
	jsonMetadataFile    = "metadata.json"
	desktopMetadataFile = "metadata.desktop"
)

// Metadata is the declared identity of a theme package.
type Metadata struct {
	ID      string
	Name    string
	Comment string
}

// rawMetadata holds unlocalized and localized values keyed as they appear in
// the metadata file, e.g. "Name" and "Name[de]".
type rawMetadata map[string]string

// readMetadata loads metadata.json, falling back to the legacy
// metadata.desktop, from a package directory.
func readMetadata(dir string, langs []language.Tag) (Metadata, error) {
	if data, err := os.ReadFile(filepath.Join(dir, jsonMetadataFile)); err == nil {
		raw, err := parseJSONMetadata(data)
		if err != nil {
			return Metadata{}, fmt.Errorf("%s: %w", jsonMetadataFile, err)
		}
		return raw.resolve("Id", "Description", langs), nil
	} else if !os.IsNotExist(err) {
		return Metadata{}, err
	}

	data, err := os.ReadFile(filepath.Join(dir, desktopMetadataFile))
	if err != nil {
		return Metadata{}, err
	}
	raw, err := parseDesktopMetadata(data)
	if err != nil {
		return Metadata{}, fmt.Errorf("%s: %w", desktopMetadataFile, err)
	}
	return raw.resolve("X-KDE-PluginInfo-Name", "Comment", langs), nil
}

// parseJSONMetadata extracts the string members of the KPlugin object.
func parseJSONMetadata(data []byte) (rawMetadata, error) {
	var doc struct {
		KPlugin map[string]any `json:"KPlugin"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.KPlugin == nil {
		return nil, fmt.Errorf("missing KPlugin object")
	}

	raw := make(rawMetadata, len(doc.KPlugin))
	for k, v := range doc.KPlugin {
		if s, ok := v.(string); ok {
			raw[k] = s
		}
	}
	return raw, nil
}

// parseDesktopMetadata reads the [Desktop Entry] group of a desktop file.
func parseDesktopMetadata(data []byte) (rawMetadata, error) {
	raw := make(rawMetadata)
	inEntry := false
	sawEntry := false

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inEntry = line == "[Desktop Entry]"
			sawEntry = sawEntry || inEntry
			continue
		}
		if !inEntry {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		raw[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !sawEntry {
		return nil, fmt.Errorf("missing [Desktop Entry] group")
	}
	return raw, nil
}

func (r rawMetadata) resolve(idKey, commentKey string, langs []language.Tag) Metadata {
	return Metadata{
		ID:      r[idKey],
		Name:    r.localized("Name", langs),
		Comment: r.localized(commentKey, langs),
	}
}

// localized returns the translation of key that best matches langs, or the
// untranslated value when none matches.
func (r rawMetadata) localized(key string, langs []language.Tag) string {
	if len(langs) == 0 {
		return r[key]
	}

	supported := []language.Tag{language.Und}
	keys := []string{key}
	prefix := key + "["
	for k := range r {
		if !strings.HasPrefix(k, prefix) || !strings.HasSuffix(k, "]") {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(k[len(prefix):len(k)-1], "_", "-"))
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		keys = append(keys, k)
	}
	if len(supported) == 1 {
		return r[key]
	}

	_, idx, conf := language.NewMatcher(supported).Match(langs...)
	if conf == language.No || r[keys[idx]] == "" {
		return r[key]
	}
	return r[keys[idx]]
}

// PreferredLanguages returns the user's message languages from the
// environment, most preferred first.
func PreferredLanguages() []language.Tag {
	var values []string
	if v := os.Getenv("LANGUAGE"); v != "" {
		values = append(values, strings.Split(v, ":")...)
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			values = append(values, v)
		}
	}

	var tags []language.Tag
	for _, v := range values {
		if tag, ok := parseLocale(v); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// parseLocale converts a POSIX locale such as "de_DE.UTF-8@euro" to a tag.
func parseLocale(locale string) (language.Tag, bool) {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
