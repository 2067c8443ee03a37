package catalog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	cat := fixtureCatalog()
	cat.Categories[0].Questions[0].Text = `Are backups "immutable", really?`

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, cat))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "ID,Category,Subcategory,Order,Text,Weight,Tags", lines[0])
	assert.Equal(t, `1.01,Backup Architecture,,1000,"Are backups ""immutable"", really?",5,ransomware`, lines[1])
	assert.Equal(t, "1.02,Backup Architecture,,1100,Offline copy?,4,ransomware;air-gap", lines[2])
	assert.Equal(t, `2.10,Cloud,AWS,2100,"S3 versioning, MFA delete",3,aws`, lines[5])

	assert.ErrorIs(t, ExportCSV(&buf, nil), ErrCatalogNotLoaded)
}

func TestImportCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, fixtureCatalog()))

	cat, issues, err := ImportCSV(&buf, fixtureCatalog())
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, fixtureCatalog(), cat)
}

func TestImportCSV_GroupsAndSortsByOrder(t *testing.T) {
	data := "ID,Category,Subcategory,Order,Text,Weight,Tags\n" +
		"c2,Cloud,AWS,2200,Second,3,\n" +
		"b1,Backup Architecture,,1000,Only,5,ransomware; immutability\n" +
		"c1,Cloud,AWS,2100,First,4,aws\n" +
		"\n" +
		"n1,New Area,,10,Brand new,2,\n"

	cat, issues, err := ImportCSV(strings.NewReader(data), fixtureCatalog())
	require.NoError(t, err)

	// Base category order first, then new categories as they appear
	require.Len(t, cat.Categories, 3)
	assert.Equal(t, "Backup Architecture", cat.Categories[0].Name)
	assert.True(t, cat.Categories[0].AlwaysInclude)
	assert.Equal(t, "💾", cat.Categories[0].Icon)
	assert.Equal(t, []string{"ransomware", "immutability"}, cat.Categories[0].Questions[0].Tags)

	assert.Equal(t, "Cloud", cat.Categories[1].Name)
	assert.Empty(t, cat.Categories[1].Questions)
	assert.Equal(t, []string{"c1", "c2"}, questionIDs(cat.Categories[1].SubCategories[0].Questions))

	assert.Equal(t, "New Area", cat.Categories[2].Name)
	assert.Equal(t, "2.0", cat.Version)

	// New Area has no icon
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
}

func TestImportCSV_WithoutBase(t *testing.T) {
	data := "id,category,text,weight\nq1,Cloud,Replicated?,3\n"

	cat, _, err := ImportCSV(strings.NewReader(data), nil)
	require.NoError(t, err)
	require.Len(t, cat.Categories, 1)
	assert.Equal(t, 3, cat.Categories[0].Questions[0].Weight)
	assert.Zero(t, cat.Categories[0].Questions[0].Order)
}

func TestImportCSV_BOMHeader(t *testing.T) {
	data := "\ufeffID,Category,Subcategory,Order,Text,Weight,Tags\nq1,Cloud,,100,Replicated?,3,\n"

	cat, _, err := ImportCSV(strings.NewReader(data), nil)
	require.NoError(t, err)
	require.Len(t, cat.Categories, 1)
	require.Len(t, cat.Categories[0].Questions, 1)
	assert.Equal(t, "q1", cat.Categories[0].Questions[0].ID)
}

func TestImportCSV_BadWeightReportedOnce(t *testing.T) {
	data := "ID,Category,Text,Weight\nq1,Cloud,Replicated?,3.0\nq2,Cloud,Tested?,2\n"

	cat, issues, err := ImportCSV(strings.NewReader(data), nil)
	require.Error(t, err)
	assert.Nil(t, cat)

	errs := Errors(issues)
	require.Len(t, errs, 1)
	assert.Equal(t, "line 2/Weight", errs[0].Path)
	assert.Contains(t, errs[0].Message, `weight "3.0" is not an integer`)
}

func TestImportCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		catalog bool
	}{
		{"empty", "", false},
		{"missing column", "ID,Category,Text\n1,A,t\n", false},
		{"bad weight", "ID,Category,Text,Weight\n1,A,t,heavy\n", true},
		{"weight out of range", "ID,Category,Text,Weight\n1,A,t,7\n", true},
		{"duplicate id", "ID,Category,Text,Weight\n1,A,t,1\n1,B,u,2\n", true},
		{"missing category", "ID,Category,Text,Weight\n1,,t,1\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, _, err := ImportCSV(strings.NewReader(tt.data), nil)
			require.Error(t, err)
			assert.Nil(t, cat)

			var ce *CatalogError
			assert.Equal(t, tt.catalog, errors.As(err, &ce))
		})
	}
}
