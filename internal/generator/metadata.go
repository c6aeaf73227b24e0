package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"reflectdoc/internal/config"
	"reflectdoc/internal/git"
	"reflectdoc/internal/logger"
)

// Metadata describes the documented project for builtin sections.
type Metadata struct {
	Name        string
	Description string
	License     string
	LicenseText string
	Repository  string
}

type packageJSON struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	License     string          `json:"license"`
	Repository  json.RawMessage `json:"repository"`
}

// LoadMetadata takes the project values from the config, filling gaps from
// package.json and finally from the git origin remote.
func LoadMetadata(cfg *config.Config) Metadata {
	meta := Metadata{
		Name:        cfg.Project.Name,
		Description: cfg.Project.Description,
		License:     cfg.Project.License,
		Repository:  cfg.Project.Repository,
	}

	if pkg, ok := readPackageJSON(cfg.Resolve("package.json")); ok {
		meta.Name = firstNonEmpty(meta.Name, pkg.Name)
		meta.Description = firstNonEmpty(meta.Description, pkg.Description)
		meta.License = firstNonEmpty(meta.License, pkg.License)
		meta.Repository = firstNonEmpty(meta.Repository, repositoryURL(pkg.Repository))
	}
	if meta.Repository == "" {
		if url, err := git.RemoteURL(cfg.Dir); err == nil {
			meta.Repository = url
		} else {
			logger.Logger.Debugw("no git remote", logger.FieldError, err)
		}
	} else {
		meta.Repository = git.NormalizeRemote(meta.Repository)
	}
	if meta.Name == "" {
		meta.Name = filepath.Base(cfg.Dir)
	}

	licenseFile := cfg.Project.LicenseFile
	if licenseFile == "" {
		licenseFile = "LICENSE"
	}
	if data, err := os.ReadFile(cfg.Resolve(licenseFile)); err == nil {
		meta.LicenseText = strings.TrimSpace(string(data))
	}
	return meta
}

func readPackageJSON(path string) (packageJSON, bool) {
	var pkg packageJSON
	data, err := os.ReadFile(path)
	if err != nil {
		return pkg, false
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		logger.Logger.Warnw("ignoring malformed package.json", logger.FieldFile, path, logger.FieldError, err)
		return pkg, false
	}
	return pkg, true
}

// repositoryURL accepts both `"repository": "url"` and
// `"repository": {"url": "..."}`.
func repositoryURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.URL
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
