// Package paths initializes vidgrab's filepaths, directories, etc.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vidgrab/internal/domain/consts"
)

const (
	vDir       = ".vidgrab"
	vDBFile    = "vidgrab.db"
	vidgrabLog = "vidgrab.log"
)

// File and directory path strings.
var (
	HomeVidgrabDir     string
	DBFilePath         string
	VidgrabLogFilePath string
)

// InitProgFilesDirs initializes necessary program directories and filepaths.
func InitProgFilesDirs() error {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return errors.New("failed to get home directory")
	}

	// Home dir ~/.vidgrab
	HomeVidgrabDir = filepath.Join(userHomeDir, vDir)
	if _, err := os.Stat(HomeVidgrabDir); os.IsNotExist(err) {
		if err := os.MkdirAll(HomeVidgrabDir, consts.PermsHomeProgDir); err != nil {
			return fmt.Errorf("failed to make directories: %w", err)
		}
	}

	// Main files
	DBFilePath = filepath.Join(HomeVidgrabDir, vDBFile)
	VidgrabLogFilePath = filepath.Join(HomeVidgrabDir, vidgrabLog)
	return nil
}
