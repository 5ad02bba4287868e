package goquery_test

import (
	"testing"

	"github.com/fwojciec/pagedigest/goquery"
	"github.com/stretchr/testify/assert"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want goquery.Platform
	}{
		{
			name: "WordPress from the generator tag",
			html: `<html><head><meta name="generator" content="WordPress 6.4.2"></head><body><p>Post</p></body></html>`,
			want: goquery.PlatformWordPress,
		},
		{
			name: "WordPress from theme asset paths",
			html: `<html><head><link rel="stylesheet" href="https://blog.example.com/wp-content/themes/twentytwentyfour/style.css"></head><body><div class="entry-content"><p>Post</p></div></body></html>`,
			want: goquery.PlatformWordPress,
		},
		{
			name: "Ghost from the generator tag",
			html: `<html><head><meta name="generator" content="Ghost 5.75"></head><body><article class="gh-article"><section class="gh-content"><p>Post</p></section></article></body></html>`,
			want: goquery.PlatformGhost,
		},
		{
			name: "Ghost from the content class",
			html: `<html><body><main><section class="gh-content"><p>Post</p></section></main></body></html>`,
			want: goquery.PlatformGhost,
		},
		{
			name: "Substack from the paywall container",
			html: `<html><body><div class="available-content"><div class="body markup"><p>Issue</p></div></div></body></html>`,
			want: goquery.PlatformSubstack,
		},
		{
			name: "Medium from the app metadata",
			html: `<html><head><meta property="al:android:package" content="com.medium.reader"></head><body><article><section><p>Story</p></section></article></body></html>`,
			want: goquery.PlatformMedium,
		},
		{
			name: "Hugo from the generator tag",
			html: `<html><head><meta name="generator" content="Hugo 0.121.1"></head><body><article><p>Post</p></article></body></html>`,
			want: goquery.PlatformHugo,
		},
		{
			name: "Jekyll from the generator tag",
			html: `<html><head><meta name="generator" content="Jekyll v4.3.2"></head><body><article class="post"><div class="post-content"><p>Post</p></div></article></body></html>`,
			want: goquery.PlatformJekyll,
		},
		{
			name: "Docusaurus from the skip-to-content element",
			html: `<html><body><div id="__docusaurus_skipToContent_fallback"><main><article><p>Docs</p></article></main></div></body></html>`,
			want: goquery.PlatformDocusaurus,
		},
		{
			name: "MkDocs from the generator tag",
			html: `<html><head><meta name="generator" content="mkdocs-1.5.3, mkdocs-material-9.4.0"></head><body><p>Docs</p></body></html>`,
			want: goquery.PlatformMkDocs,
		},
		{
			name: "MkDocs from component attributes",
			html: `<html><body data-md-color-scheme="default"><div data-md-component="content"><p>Docs</p></div></body></html>`,
			want: goquery.PlatformMkDocs,
		},
		{
			name: "Sphinx from the Read the Docs theme",
			html: `<html><body><nav class="wy-nav-side"></nav><div class="rst-content"><p>Docs</p></div></body></html>`,
			want: goquery.PlatformSphinx,
		},
		{
			name: "VitePress from the content root",
			html: `<html><body><div id="VPContent"><div class="vp-doc"><p>Docs</p></div></div></body></html>`,
			want: goquery.PlatformVitePress,
		},
		{
			name: "generator tag wins over theme markers",
			html: `<html><head><meta name="generator" content="Hugo 0.121.1"></head><body><section class="gh-content"><p>Post</p></section></body></html>`,
			want: goquery.PlatformHugo,
		},
		{
			name: "unknown for a plain page",
			html: `<html><head><title>Notes</title></head><body><main><p>Plain page</p></main></body></html>`,
			want: goquery.PlatformUnknown,
		},
		{
			name: "unknown for an unrecognized generator",
			html: `<html><head><meta name="generator" content="Handwritten"></head><body><p>Plain page</p></body></html>`,
			want: goquery.PlatformUnknown,
		},
		{
			name: "unknown for empty input",
			html: ``,
			want: goquery.PlatformUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := goquery.NewDetector().Detect(tt.html)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentSelectors(t *testing.T) {
	t.Parallel()

	t.Run("returns platform containers", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, ".entry-content", goquery.ContentSelectors(goquery.PlatformWordPress)[0])
	})

	t.Run("returns generic containers for unknown platforms", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, goquery.ContentSelectors(goquery.PlatformUnknown), "main")
	})
}
