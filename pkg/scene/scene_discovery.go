package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by NewSceneByName
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to JSON file (file type only)
}

// builtinScenes maps scene IDs to their constructors
var builtinScenes = map[string]func() *Scene{
	"default":       NewDefaultScene,
	"single-sphere": NewSingleSphereScene,
	"empty":         NewEmptyScene,
}

// builtinInfo describes the built-in scenes, in display order
var builtinInfo = []SceneInfo{
	{ID: "default", DisplayName: "Default Scene", Description: "Ground plane with red, green and blue spheres", Type: "builtin"},
	{ID: "single-sphere", DisplayName: "Single Sphere", Description: "One diffuse sphere on the ground plane", Type: "builtin"},
	{ID: "empty", DisplayName: "Empty Scene", Description: "No surfaces or lights; renders black", Type: "builtin"},
}

// scenesDirs are the locations searched for scene files
var scenesDirs = []string{"scenes", "../scenes"}

// findScenesDir returns the first existing scenes directory, or ""
func findScenesDir() string {
	for _, path := range scenesDirs {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// NewSceneByName resolves a built-in scene ID, a path to a .json file,
// or the name of a file in the scenes directory
func NewSceneByName(name string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}

	if build, ok := builtinScenes[name]; ok {
		return build(), nil
	}

	if strings.HasSuffix(name, ".json") {
		return LoadSceneFile(name)
	}

	if dir := findScenesDir(); dir != "" {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return LoadSceneFile(path)
		}
	}

	return nil, fmt.Errorf("unknown scene: %s", name)
}

// ListSceneFiles scans dir for *.json scene files and returns their metadata sorted by display name
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Skip unreadable files but keep listing the rest
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name and description of a scene file without building it
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	id := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          id,
		DisplayName: titleCase(id),
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, err
	}

	if header.Name != "" {
		info.DisplayName = header.Name
	}
	info.Description = header.Description

	return info, nil
}

// ListAllScenes returns the built-in scenes followed by any scene files found
func ListAllScenes() ([]SceneInfo, error) {
	all := append([]SceneInfo{}, builtinInfo...)

	dir := findScenesDir()
	if dir == "" {
		return all, nil
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}

	return append(all, files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
