package pyenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licensedeny/licensedeny/domain/entities"
)

// writeDistInfo fabricates a minimal dist-info directory under sitePackages.
func writeDistInfo(t *testing.T, sitePackages, name, version, metadata string, extra map[string]string) {
	t.Helper()
	dir := filepath.Join(sitePackages, name+"-"+version+".dist-info")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "METADATA"), []byte(metadata), 0o644))
	for file, content := range extra {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
	}
}

func fakeVenv(t *testing.T) (root, sitePackages string) {
	t.Helper()
	root = t.TempDir()
	sitePackages = filepath.Join(root, "lib", "python3.12", "site-packages")
	require.NoError(t, os.MkdirAll(sitePackages, 0o755))
	return root, sitePackages
}

func TestCollectFrom(t *testing.T) {
	root, sp := fakeVenv(t)
	writeDistInfo(t, sp, "requests", "2.31.0",
		"Name: Requests\nVersion: 2.31.0\nLicense: Apache-2.0\n\n", nil)
	writeDistInfo(t, sp, "internal_lib", "0.3.0",
		"Name: internal-lib\nVersion: 0.3.0\nLicense: UNKNOWN\n\n",
		map[string]string{
			"direct_url.json": `{"url": "https://github.com/myorg/internal-lib", "vcs_info": {"vcs": "git", "commit_id": "abc"}}`,
		})

	records, err := NewCollector(nil).CollectFrom(root, entities.Config{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Sorted by name.
	assert.Equal(t, "internal-lib", records[0].Name)
	assert.Equal(t, entities.SourceKindGit, records[0].Source.Kind)
	assert.Equal(t, "Unknown", records[0].RawLicense, "UNKNOWN placeholder maps to the sentinel")

	assert.Equal(t, "requests", records[1].Name, "names are lowercased")
	assert.Equal(t, "2.31.0", records[1].Version)
	assert.Equal(t, "Apache-2.0", records[1].RawLicense)
	assert.Equal(t, "Apache-2.0", records[1].EffectiveLicense)
	assert.False(t, records[1].Clarified)
	assert.Equal(t, entities.SourceKindPyPI, records[1].Source.Kind)
}

func TestCollectFrom_AppliesClarifyRules(t *testing.T) {
	root, sp := fakeVenv(t)
	writeDistInfo(t, sp, "chardet", "1.5.0",
		"Name: chardet\nVersion: 1.5.0\nLicense: weird prose\n\n", nil)

	cfg := entities.Config{
		Licenses: entities.LicensePolicy{
			ClarifyRules: []entities.ClarifyRule{
				{Package: "chardet", Expression: "LGPL-2.1"},
			},
		},
	}

	records, err := NewCollector(nil).CollectFrom(root, cfg)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "weird prose", records[0].RawLicense)
	assert.Equal(t, "LGPL-2.1", records[0].EffectiveLicense)
	assert.True(t, records[0].Clarified)
}

func TestCollectFrom_SkipsUnreadableDistributions(t *testing.T) {
	root, sp := fakeVenv(t)
	writeDistInfo(t, sp, "good", "1.0.0", "Name: good\nVersion: 1.0.0\n\n", nil)

	// A dist-info without METADATA is skipped, not fatal.
	require.NoError(t, os.MkdirAll(filepath.Join(sp, "broken-0.1.0.dist-info"), 0o755))

	records, err := NewCollector(nil).CollectFrom(root, entities.Config{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "good", records[0].Name)
}

func TestCollectFrom_NoSitePackages(t *testing.T) {
	_, err := NewCollector(nil).CollectFrom(t.TempDir(), entities.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no site-packages")
}

func TestCollect_RequiresVirtualEnv(t *testing.T) {
	t.Setenv("VIRTUAL_ENV", "")
	_, err := NewCollector(nil).Collect(entities.Config{})
	assert.ErrorIs(t, err, ErrNoVirtualEnv)
}

func TestCollect_UsesVirtualEnv(t *testing.T) {
	root, sp := fakeVenv(t)
	writeDistInfo(t, sp, "requests", "2.31.0",
		"Name: requests\nVersion: 2.31.0\nLicense: Apache-2.0\n\n", nil)
	t.Setenv("VIRTUAL_ENV", root)

	records, err := NewCollector(nil).Collect(entities.Config{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "requests", records[0].Name)
}

func TestApplyClarifyRules_FirstMatchWins(t *testing.T) {
	rules := []entities.ClarifyRule{
		{Package: "pkg", Expression: "MIT"},
		{Package: "pkg", Expression: "ISC"},
	}

	expr, clarified := ApplyClarifyRules("pkg", "1.0.0", "raw", rules)
	assert.True(t, clarified)
	assert.Equal(t, "MIT", expr)

	expr, clarified = ApplyClarifyRules("other", "1.0.0", "raw", rules)
	assert.False(t, clarified)
	assert.Equal(t, "raw", expr)
}
