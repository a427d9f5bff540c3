package main

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed filetypes.yml
var fileTypesYAML []byte

// LanguageInfo describes one known text file type.
type LanguageInfo struct {
	Type       string   `yaml:"type"`
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
}

// LanguageData provides extension and filename lookups over the embedded
// file type definitions.
type LanguageData struct {
	langs        map[string]LanguageInfo
	extensionMap map[string]string
	filenameMap  map[string]string
}

// loadLanguageData parses the embedded definitions and builds the lookup
// maps. Extensions are matched case-insensitively, filenames exactly.
func loadLanguageData() (*LanguageData, error) {
	var langs map[string]LanguageInfo
	if err := yaml.Unmarshal(fileTypesYAML, &langs); err != nil {
		return nil, fmt.Errorf("parsing file type definitions: %w", err)
	}

	data := &LanguageData{
		langs:        langs,
		extensionMap: make(map[string]string),
		filenameMap:  make(map[string]string),
	}
	for name, info := range langs {
		for _, ext := range info.Extensions {
			lowerExt := strings.ToLower(ext)
			if data.extensionMap[lowerExt] == "" {
				data.extensionMap[lowerExt] = name
			}
		}
		for _, fname := range info.Filenames {
			if data.filenameMap[fname] == "" {
				data.filenameMap[fname] = name
			}
		}
	}
	return data, nil
}

// LanguageForFile returns the language name for a path, filename matches
// taking precedence over extension matches.
func (ld *LanguageData) LanguageForFile(path string) (string, bool) {
	if ld == nil {
		return "", false
	}

	baseName := filepath.Base(path)
	if lang, ok := ld.filenameMap[baseName]; ok {
		return lang, true
	}
	if ext := strings.ToLower(filepath.Ext(baseName)); ext != "" {
		if lang, ok := ld.extensionMap[ext]; ok {
			return lang, true
		}
	}
	return "", false
}
