package server

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/c2h5oh/datasize"
)

// AppConfig describes the general configuration of an App
type AppConfig struct {
	InboxPath         string
	ServerURL         string
	DeleteAfterUpload bool
	DataPath          string
	MaxFileSize       datasize.ByteSize
	IgnoreExpr        string
	API               *APIConfig

	configPath string
}

// APIConfig describes API server configuration
type APIConfig struct {
	Listen string
}

type tomlAppConfig struct {
	InboxPath         string `toml:"inbox_path"`
	ServerURL         string `toml:"server_url"`
	DeleteAfterUpload bool   `toml:"delete_after_upload"`
	DataPath          string `toml:"data_path"`
	MaxFileSize       string `toml:"max_file_size"`
	IgnoreExpr        string `toml:"ignore_expr"`
	API               *tomlAPIConfig
}

type tomlAPIConfig struct {
	Listen string
}

// NewAppConfigFromTomlFile return a AppConfig using a TOML file in configPath
func NewAppConfigFromTomlFile(configPath string) (*AppConfig, error) {
	filename := path.Clean(configPath + "/inboxd.toml")

	appConfig := &AppConfig{
		configPath: configPath,
	}

	// defaults (if not in the file)
	tConfig := &tomlAppConfig{
		InboxPath:         "var/inbox",
		DeleteAfterUpload: true,
		DataPath:          "var/data",
		MaxFileSize:       DefaultMaxFileSize.String(),
		API: &tomlAPIConfig{
			Listen: ":8686",
		},
	}

	meta, err := toml.DecodeFile(filename, tConfig)
	if err != nil {
		return nil, err
	}

	undecoded := meta.Undecoded()
	for _, param := range undecoded {
		return nil, fmt.Errorf("unknown setting '%s'", param)
	}

	// Start checking settings and fill appConfig

	if tConfig.InboxPath == "" {
		return nil, errors.New("empty inbox_path")
	}
	appConfig.InboxPath = filepath.Clean(tConfig.InboxPath)

	if tConfig.DataPath == "" {
		return nil, errors.New("empty data_path")
	}
	appConfig.DataPath = filepath.Clean(tConfig.DataPath)

	// crude check that the two paths are not the same
	aPath1, err := filepath.Abs(appConfig.InboxPath)
	if err != nil {
		return nil, err
	}

	aPath2, err := filepath.Abs(appConfig.DataPath)
	if err != nil {
		return nil, err
	}

	if aPath1 == aPath2 {
		return nil, errors.New("inbox_path and data_path can't be the same")
	}

	if tConfig.ServerURL == "" {
		return nil, errors.New("empty server_url")
	}

	urlObj, err := url.Parse(tConfig.ServerURL)
	if err != nil || urlObj.Scheme == "" || urlObj.Host == "" {
		return nil, fmt.Errorf("server_url: '%s': invalid URL (ex: https://inbox.example.com)", tConfig.ServerURL)
	}
	appConfig.ServerURL = strings.TrimRight(tConfig.ServerURL, "/")

	appConfig.DeleteAfterUpload = tConfig.DeleteAfterUpload

	var maxSize datasize.ByteSize
	if err := maxSize.UnmarshalText([]byte(tConfig.MaxFileSize)); err != nil {
		return nil, fmt.Errorf("max_file_size: '%s': %s", tConfig.MaxFileSize, err)
	}
	if maxSize == 0 {
		return nil, errors.New("max_file_size can't be zero")
	}
	appConfig.MaxFileSize = maxSize

	appConfig.IgnoreExpr = tConfig.IgnoreExpr

	// API server configuration
	appConfig.API = &APIConfig{}
	partsL := strings.Split(tConfig.API.Listen, ":")

	if len(partsL) != 2 {
		return nil, fmt.Errorf("listen: '%s': wrong format (ex: ':8686')", tConfig.API.Listen)
	}
	_, err = strconv.Atoi(partsL[1])

	if err != nil {
		return nil, fmt.Errorf("listen: '%s': wrong port number", tConfig.API.Listen)
	}

	appConfig.API.Listen = tConfig.API.Listen

	return appConfig, nil
}
