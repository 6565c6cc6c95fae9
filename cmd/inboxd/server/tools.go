package server

import (
	"fmt"
	"os"
)

// IsDir return true if path is a directory, or an error if it does
// not exist or is a file
func IsDir(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if stat.IsDir() == false {
		return false, fmt.Errorf("'%s' is not a directory", path)
	}
	return true, nil
}

// CreateDirIfNeeded will create the directory if it does not exist
func CreateDirIfNeeded(path string) error {
	stat, err := os.Stat(path)
	if err == nil {
		if stat.IsDir() == false {
			return fmt.Errorf("'%s' exists but is not a directory", path)
		}
		return nil
	}
	return os.MkdirAll(path, 0755)
}
