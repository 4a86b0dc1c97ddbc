package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/licensedeny/licensedeny/application/checker"
	"github.com/licensedeny/licensedeny/domain/entities"
	"github.com/licensedeny/licensedeny/domain/policy"
)

func init() {
	// Keep assertions free of ANSI escapes.
	color.NoColor = true
}

func newTestRenderer(quiet bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRenderer(out, errOut, quiet), out, errOut
}

func classification(status entities.Status, detail entities.StatusDetail) entities.Classification {
	return entities.Classification{
		Package: "requests",
		Version: "2.31.0",
		License: "Apache-2.0",
		Status:  status,
		Detail:  detail,
	}
}

func TestRender_LicensesAllOk(t *testing.T) {
	r, out, errOut := newTestRenderer(false)

	passed := r.Render(checker.Report{
		Licenses: &checker.LicenseReport{
			Results: []entities.Classification{
				classification(entities.StatusOk, entities.DetailMetadata),
			},
		},
	})

	assert.True(t, passed)
	assert.Contains(t, out.String(), "[ok:metadata] requests==2.31.0 (Apache-2.0)")
	assert.Contains(t, out.String(), "All dependencies comply with license policy!")
	assert.Empty(t, errOut.String())
}

func TestRender_LicenseViolation(t *testing.T) {
	r, out, errOut := newTestRenderer(false)

	denied := classification(entities.StatusDeny, "")
	denied.Reason = "unapproved license: GPL-3.0"

	passed := r.Render(checker.Report{
		Licenses: &checker.LicenseReport{Results: []entities.Classification{denied}},
	})

	assert.False(t, passed)
	assert.Contains(t, errOut.String(), "License policy violation detected:")
	assert.Contains(t, errOut.String(), "requests==2.31.0 unapproved license: GPL-3.0")
	assert.NotContains(t, out.String(), "comply with license policy")
}

func TestRender_LicenseWarnings(t *testing.T) {
	r, out, errOut := newTestRenderer(false)

	warned := classification(entities.StatusWarn, entities.DetailMetadata)
	warned.Warnings = []string{"copyleft license: LGPL-2.1"}

	passed := r.Render(checker.Report{
		Licenses: &checker.LicenseReport{Results: []entities.Classification{warned}},
	})

	assert.True(t, passed, "warnings never fail the run")
	assert.Contains(t, errOut.String(), "Warning: requests==2.31.0: copyleft license: LGPL-2.1")
	assert.Contains(t, out.String(), "[ok:metadata]")
}

func TestRender_EmptyAllowListWarning(t *testing.T) {
	r, _, errOut := newTestRenderer(false)

	r.Render(checker.Report{
		Licenses: &checker.LicenseReport{EmptyAllowList: true},
	})

	assert.Contains(t, errOut.String(), "allow is empty")
}

func TestRender_ClarifiedDetailInOkLine(t *testing.T) {
	r, out, _ := newTestRenderer(false)

	r.Render(checker.Report{
		Licenses: &checker.LicenseReport{
			Results: []entities.Classification{
				classification(entities.StatusOk, entities.DetailClarified),
			},
		},
	})

	assert.Contains(t, out.String(), "[ok:clarified]")
}

func TestRender_Bans(t *testing.T) {
	r, out, errOut := newTestRenderer(false)

	pkg := entities.PackageRecord{Name: "badpkg", Version: "0.1.0"}
	skipped := entities.PackageRecord{Name: "grandfathered", Version: "1.0.0"}

	passed := r.Render(checker.Report{
		Bans: &policy.BanResult{
			Skipped:    []policy.BanHit{{Package: skipped, Reason: "tracked"}},
			Violations: []policy.BanHit{{Package: pkg, Reason: "typosquat"}},
		},
	})

	assert.False(t, passed)
	assert.Contains(t, out.String(), "[skipped] grandfathered==1.0.0 reason: tracked")
	assert.Contains(t, errOut.String(), "Banned dependencies detected:")
	assert.Contains(t, errOut.String(), "badpkg==0.1.0 reason: typosquat")
}

func TestRender_SourceViolation(t *testing.T) {
	r, _, errOut := newTestRenderer(false)

	denied := entities.Classification{
		Package: "sketchy", Version: "1.0.0",
		License: "https://mirror.unknown.test/simple",
		Status:  entities.StatusDeny,
		Reason:  "source not in allowlist",
	}

	passed := r.Render(checker.Report{
		Sources: &checker.SourceReport{Results: []entities.Classification{denied}},
	})

	assert.False(t, passed)
	assert.Contains(t, errOut.String(), "Unapproved package sources found:")
	assert.Contains(t, errOut.String(), "sketchy==1.0.0 source=https://mirror.unknown.test/simple")
}

func TestRender_QuietSuppressesSuccess(t *testing.T) {
	r, out, errOut := newTestRenderer(true)

	passed := r.Render(checker.Report{
		Licenses: &checker.LicenseReport{
			Results: []entities.Classification{
				classification(entities.StatusOk, entities.DetailMetadata),
			},
		},
		Bans:    &policy.BanResult{},
		Sources: &checker.SourceReport{},
	})

	assert.True(t, passed)
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestParseListFormat(t *testing.T) {
	for _, valid := range []string{"text", "json", "yaml"} {
		format, ok := ParseListFormat(valid)
		assert.True(t, ok)
		assert.Equal(t, ListFormat(valid), format)
	}
	_, ok := ParseListFormat("xml")
	assert.False(t, ok)
}

func listPackages() []entities.PackageRecord {
	return []entities.PackageRecord{
		{
			Name: "requests", Version: "2.31.0",
			RawLicense: "apache license 2.0", EffectiveLicense: "apache license 2.0",
			Source: entities.SourceInfo{Label: "pypi", Kind: entities.SourceKindPyPI},
		},
	}
}

func displayUpper(pkg entities.PackageRecord, showRaw bool) string {
	if showRaw {
		return "Apache-2.0 (raw: apache license 2.0)"
	}
	return "Apache-2.0"
}

func TestRenderList_Text(t *testing.T) {
	r, out, _ := newTestRenderer(false)

	require.NoError(t, r.RenderList(listPackages(), FormatText, false, displayUpper))
	assert.Equal(t, "requests==2.31.0 [Apache-2.0] source=pypi\n", out.String())
}

func TestRenderList_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(false)

	require.NoError(t, r.RenderList(listPackages(), FormatJSON, true, displayUpper))

	var items []ListItem
	require.NoError(t, json.Unmarshal(out.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "requests", items[0].Name)
	assert.Equal(t, "Apache-2.0", items[0].License)
	assert.Equal(t, "apache license 2.0", items[0].RawLicense, "raw included when it differs")
	assert.Equal(t, entities.SourceKindPyPI, items[0].Source.Kind)
}

func TestRenderList_YAML(t *testing.T) {
	r, out, _ := newTestRenderer(false)

	require.NoError(t, r.RenderList(listPackages(), FormatYAML, false, displayUpper))

	var items []ListItem
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "requests", items[0].Name)
	assert.Empty(t, items[0].RawLicense, "raw omitted without --show-raw")
}
