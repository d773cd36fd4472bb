package migration

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanImages(t *testing.T) {
	fsys := fstest.MapFS{
		"signs/storefront.png":      {},
		"signs/nested/sale.JPG":     {},
		"banners/grand opening.svg": {},
		"banners/notes.txt":         {},
		"templates/signs.yaml":      {},
		"thumb.webp":                {},
	}

	got, err := ScanImages(fsys)

	require.NoError(t, err)
	want := []string{"banners/grand opening.svg", "signs/nested/sale.JPG", "signs/storefront.png", "thumb.webp"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ScanImages() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPlan(t *testing.T) {
	plan, err := BuildPlan("/srv/images", []string{"signs/storefront.png"},
		"https://storage.googleapis.com/old-bucket/", "https://cdn.example.com/img", ToolGsutil)

	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, Item{
		Path:   "signs/storefront.png",
		OldURL: "https://storage.googleapis.com/old-bucket/signs/storefront.png",
		NewURL: "https://cdn.example.com/img/signs/storefront.png",
	}, plan.Items[0])
}

func TestBuildPlan_Validation(t *testing.T) {
	_, err := BuildPlan(".", nil, "", "gs://new", ToolGsutil)
	assert.ErrorIs(t, err, ErrMissingPrefix)

	_, err = BuildPlan(".", nil, "gs://old", "gs://new", Tool("rsync"))
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestPlan_Commands(t *testing.T) {
	paths := []string{"signs/storefront.png", "banners/grand opening.svg", "it's.png"}

	gs, err := BuildPlan("imgs", paths, "gs://old", "gs://new-bucket", ToolGsutil)
	require.NoError(t, err)
	s3, err := BuildPlan("imgs", paths, "s3://old", "s3://new-bucket/", ToolAWS)
	require.NoError(t, err)

	want := []string{
		"gsutil cp imgs/signs/storefront.png gs://new-bucket/signs/storefront.png",
		"gsutil cp 'imgs/banners/grand opening.svg' 'gs://new-bucket/banners/grand opening.svg'",
		`gsutil cp 'imgs/it'\''s.png' 'gs://new-bucket/it'\''s.png'`,
	}
	if diff := cmp.Diff(want, gs.Commands()); diff != "" {
		t.Errorf("gsutil commands mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "aws s3 cp imgs/signs/storefront.png s3://new-bucket/signs/storefront.png", s3.Commands()[0])
}

func TestShellQuote(t *testing.T) {
	tests := map[string]string{
		"":             "''",
		"plain/path":   "plain/path",
		"with space":   "'with space'",
		"$(rm -rf /)":  "'$(rm -rf /)'",
		"semi;colon":   "'semi;colon'",
		"quote'inside": `'quote'\''inside'`,
	}
	for in, want := range tests {
		assert.Equal(t, want, shellQuote(in), in)
	}
}

func TestParseTool(t *testing.T) {
	tool, err := ParseTool("aws")
	require.NoError(t, err)
	assert.Equal(t, ToolAWS, tool)

	_, err = ParseTool("scp")
	assert.ErrorIs(t, err, ErrUnknownTool)
}
