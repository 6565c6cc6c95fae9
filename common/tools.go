package common

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
)

// TrueStr is the true truth.
const TrueStr = "true"

// PathExist returns true if a file or directory exists
func PathExist(filePath string) bool {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false
	}

	// I know Stat() may fail for a lot of reasons, but
	// os.IsNotExist is not enough, see ENOTDIR for
	// things like /etc/passwd/test
	if err != nil {
		return false
	}

	return true
}

// InterfaceValueToString converts most interface types to string
func InterfaceValueToString(iv interface{}, format string) string {

	// civ is the casted iv
	switch civ := iv.(type) {
	case int:
		return fmt.Sprintf("%d", civ)
	case int32:
		return fmt.Sprintf("%d", civ)
	case int64:
		if format == "size" {
			return (datasize.ByteSize(civ) * datasize.B).HR()
		}
		return strconv.FormatInt(civ, 10)
	case uint64:
		if format == "size" {
			return (datasize.ByteSize(civ) * datasize.B).HR()
		}
		return strconv.FormatUint(civ, 10)
	case string:
		return civ
	case []byte:
		return string(civ)
	case bool:
		return strconv.FormatBool(civ)
	case time.Time:
		return civ.String()
	case time.Duration:
		return civ.String()
	case []string:
		return strings.Join(civ, ", ")
	}
	return "INVALID_TYPE"
}

// CleanURL by parsing it
func CleanURL(urlIn string) (string, error) {
	urlObj, err := url.Parse(urlIn)
	if err != nil {
		return urlIn, err
	}
	urlObj.Path = path.Clean(urlObj.Path)
	return urlObj.String(), nil
}
