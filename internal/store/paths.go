package store

import (
	"os"
	"path/filepath"
)

const configDirName = ".kanbo"
const saveFileName = "kanbo.save"

// ConfigDir resolves ~/.kanbo, falling back to the working directory when
// the home directory cannot be determined.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

func DefaultSavePath() string {
	return filepath.Join(ConfigDir(), saveFileName)
}

// FallbackSavePath is used when the existing file has an unsupported (newer)
// schema: the engine starts fresh but must not overwrite the original.
func FallbackSavePath(path string) string {
	return path + ".new"
}
