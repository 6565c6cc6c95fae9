package server

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Knetic/govaluate"
)

// ignoredExact are OS artifact files, never uploaded
var ignoredExact = []string{
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",
	".localized",
	"Icon\r",
}

// ignoredPrefixes matches editor/office lock files
var ignoredPrefixes = []string{"~$", "._"}

// ignoredSuffixes matches temporary and partial-download files
var ignoredSuffixes = []string{".tmp", ".swp", ".crdownload", ".part", ".partial"}

// IgnoreFilter decides if a path is a candidate for upload
type IgnoreFilter struct {
	expr *govaluate.EvaluableExpression
	log  *Log
}

// NewIgnoreFilter creates a new IgnoreFilter, exprStr being an optional
// user expression over {name, ext, size} (empty string to disable)
func NewIgnoreFilter(exprStr string, log *Log) (*IgnoreFilter, error) {
	filter := &IgnoreFilter{
		log: log,
	}

	if exprStr != "" {
		expr, err := govaluate.NewEvaluableExpression(exprStr)
		if err != nil {
			return nil, err
		}
		filter.expr = expr
	}

	return filter, nil
}

// ShouldIgnore returns true if the file must not be uploaded: hidden files,
// OS artifacts, temp/partial files, anything inside the archive subfolder,
// and directories.
func (filter *IgnoreFilter) ShouldIgnore(path string) bool {
	fileName := filepath.Base(path)

	if fileName == "." || fileName == string(filepath.Separator) {
		return true
	}

	if strings.HasPrefix(fileName, ".") {
		return true
	}

	for _, name := range ignoredExact {
		if fileName == name {
			return true
		}
	}

	for _, prefix := range ignoredPrefixes {
		if strings.HasPrefix(fileName, prefix) {
			return true
		}
	}

	for _, suffix := range ignoredSuffixes {
		if strings.HasSuffix(fileName, suffix) {
			return true
		}
	}

	// anything inside the archive subfolder
	for _, component := range strings.Split(filepath.ToSlash(path), "/") {
		if component == ArchiveFolderName {
			return true
		}
	}

	stat, err := os.Stat(path)
	if err == nil && stat.IsDir() {
		return true
	}

	if filter.expr != nil && err == nil {
		if filter.evalExpr(fileName, stat.Size()) {
			return true
		}
	}

	return false
}

// evalExpr applies the user ignore expression, a failed evaluation
// means "don't ignore"
func (filter *IgnoreFilter) evalExpr(fileName string, size int64) bool {
	params := map[string]interface{}{
		"name": fileName,
		"ext":  strings.ToLower(filepath.Ext(fileName)),
		"size": float64(size),
	}

	res, err := filter.expr.Evaluate(params)
	if err != nil {
		if filter.log != nil {
			filter.log.Warningf(fileName, "ignore expression error: %s", err)
		}
		return false
	}

	ignore, ok := res.(bool)
	if !ok {
		if filter.log != nil {
			filter.log.Warningf(fileName, "ignore expression must return a boolean")
		}
		return false
	}
	return ignore
}
