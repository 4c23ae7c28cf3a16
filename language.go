package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"gopkg.in/yaml.v3"
)

const languagesFileName = "languages.yml"

// LanguageInfo holds the details of a language used for fence tags.
type LanguageInfo struct {
	Type       string   `yaml:"type"` // e.g., programming, data, markup
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
	Aliases    []string `yaml:"aliases"`
}

// LanguageMap maps language names (e.g., "Go") to their details.
type LanguageMap map[string]LanguageInfo

// LoadedLanguageData holds the parsed language map and its lookup tables.
type LoadedLanguageData struct {
	Langs        LanguageMap
	extensionMap map[string]string // ".go" -> "Go"
	filenameMap  map[string]string // "Makefile" -> "Makefile"
}

// languageSearchPaths lists where languages.yml is looked for when no
// explicit file is configured.
func languageSearchPaths() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", appName))
	}
	return append(dirs, ".")
}

// findLanguageFile returns the first languages.yml found in dirs, or "".
func findLanguageFile(dirs []string) string {
	for _, d := range dirs {
		p := filepath.Join(d, languagesFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// loadLanguageData parses a linguist-style languages.yml.
func loadLanguageData(langFilePath string) (*LoadedLanguageData, error) {
	yamlFile, err := os.ReadFile(langFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading language file %s: %w", langFilePath, err)
	}
	return parseLanguageData(yamlFile)
}

func parseLanguageData(raw []byte) (*LoadedLanguageData, error) {
	var langs LanguageMap
	if err := yaml.Unmarshal(raw, &langs); err != nil {
		return nil, fmt.Errorf("error parsing language data: %w", err)
	}

	data := &LoadedLanguageData{
		Langs:        langs,
		extensionMap: make(map[string]string),
		filenameMap:  make(map[string]string),
	}
	for _, langName := range sortedKeys(langs) {
		info := langs[langName]
		for _, ext := range info.Extensions {
			lowerExt := strings.ToLower(ext)
			if data.extensionMap[lowerExt] == "" {
				data.extensionMap[lowerExt] = langName
			}
		}
		for _, fname := range info.Filenames {
			if data.filenameMap[fname] == "" {
				data.filenameMap[fname] = langName
			}
		}
	}
	return data, nil
}

// GetLanguageForFile determines the language for a given path.
// Exact filenames take precedence over extensions.
func (ld *LoadedLanguageData) GetLanguageForFile(filePath string) (string, bool) {
	if ld == nil {
		return "", false
	}

	baseName := path.Base(filePath)
	if lang, ok := ld.filenameMap[baseName]; ok {
		return lang, true
	}
	if ext := strings.ToLower(path.Ext(baseName)); ext != "" {
		if lang, ok := ld.extensionMap[ext]; ok {
			return lang, true
		}
	}
	return "", false
}

// FenceTag returns the info string for a language: its first alias, or its
// lowercased name.
func (ld *LoadedLanguageData) FenceTag(lang string) string {
	info := ld.Langs[lang]
	if len(info.Aliases) > 0 {
		return info.Aliases[0]
	}
	return strings.ReplaceAll(strings.ToLower(lang), " ", "-")
}

// newLanguageResolver returns the fence tag lookup for DocumentBuilder.
// User language data wins; chroma's lexer registry is the fallback.
func newLanguageResolver(ld *LoadedLanguageData) func(string) string {
	return func(filePath string) string {
		if lang, ok := ld.GetLanguageForFile(filePath); ok {
			return ld.FenceTag(lang)
		}
		return chromaFenceTag(filePath)
	}
}

func chromaFenceTag(filePath string) string {
	lexer := lexers.Match(path.Base(filePath))
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if cfg == nil || strings.EqualFold(cfg.Name, "plaintext") {
		return ""
	}
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

func sortedKeys(m LanguageMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
