// Package pyenv enumerates the packages installed in a Python virtual
// environment by reading dist-info metadata and direct_url.json provenance
// files. It is the package-enumeration boundary: the domain only ever sees
// the PackageRecord values produced here.
package pyenv

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"log/slog"

	"github.com/licensedeny/licensedeny/domain/entities"
)

// ErrNoVirtualEnv reports that no activated virtual environment was found.
var ErrNoVirtualEnv = errors.New("no activated virtual environment (VIRTUAL_ENV is not set)")

// Collector enumerates installed distributions.
type Collector struct {
	logger *slog.Logger
}

// NewCollector builds a Collector. A nil logger defaults to slog.Default().
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{logger: logger}
}

// Collect enumerates the active virtual environment, applying the config's
// clarify rules to each record. It fails with ErrNoVirtualEnv outside an
// activated environment.
func (c *Collector) Collect(cfg entities.Config) ([]entities.PackageRecord, error) {
	root := os.Getenv("VIRTUAL_ENV")
	if root == "" {
		return nil, ErrNoVirtualEnv
	}
	return c.CollectFrom(root, cfg)
}

// CollectFrom enumerates the environment rooted at root. Records are sorted
// by package name for a deterministic pass.
func (c *Collector) CollectFrom(root string, cfg entities.Config) ([]entities.PackageRecord, error) {
	dirs, err := sitePackagesDirs(root)
	if err != nil {
		return nil, err
	}

	var records []entities.PackageRecord
	for _, dir := range dirs {
		distInfos, err := filepath.Glob(filepath.Join(dir, "*.dist-info"))
		if err != nil {
			continue
		}
		for _, distInfo := range distInfos {
			record, ok := c.readDistribution(distInfo)
			if !ok {
				continue
			}
			record.EffectiveLicense, record.Clarified = ApplyClarifyRules(
				record.Name, record.Version, record.RawLicense, cfg.Licenses.ClarifyRules)
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

func (c *Collector) readDistribution(distInfo string) (entities.PackageRecord, bool) {
	meta, err := readMetadataFile(filepath.Join(distInfo, "METADATA"))
	if err != nil {
		c.logger.Debug("skipping distribution without readable metadata", "dir", distInfo, "error", err)
		return entities.PackageRecord{}, false
	}
	name := strings.TrimSpace(meta.Get("Name"))
	if name == "" {
		return entities.PackageRecord{}, false
	}
	return entities.PackageRecord{
		Name:       strings.ToLower(name),
		Version:    strings.TrimSpace(meta.Get("Version")),
		RawLicense: ExtractLicense(meta),
		Source:     resolveSource(distInfo),
	}, true
}

// ApplyClarifyRules substitutes the raw license with the first matching
// clarify rule's expression. The boolean reports whether a substitution
// happened.
func ApplyClarifyRules(name, version, rawLicense string, rules []entities.ClarifyRule) (string, bool) {
	for _, rule := range rules {
		if rule.Matches(name, version) {
			return rule.Expression, true
		}
	}
	return rawLicense, false
}

// sitePackagesDirs locates the site-packages directories under an
// environment root, covering the posix (lib/pythonX.Y/site-packages) and
// windows (Lib/site-packages) layouts.
func sitePackagesDirs(root string) ([]string, error) {
	var dirs []string
	posix, err := filepath.Glob(filepath.Join(root, "lib", "python*", "site-packages"))
	if err == nil {
		dirs = append(dirs, posix...)
	}
	windows := filepath.Join(root, "Lib", "site-packages")
	if info, err := os.Stat(windows); err == nil && info.IsDir() {
		dirs = append(dirs, windows)
	}
	if len(dirs) == 0 {
		return nil, errors.New("no site-packages directory under " + root)
	}
	return dirs, nil
}
