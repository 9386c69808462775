package catalog

import (
	"net/url"
	"strings"

	"github.com/raphaelgruber/eventsync/internal/models"
)

// providerCategories maps explicit catalog resource tags to categories.
// A known tag wins over every URL-based rule.
var providerCategories = map[string]models.MaterialCategory{
	"slide":    models.CategorySlide,
	"slides":   models.CategorySlide,
	"video":    models.CategoryVideo,
	"blog":     models.CategoryDocument,
	"document": models.CategoryDocument,
}

// Host lists are checked in declaration order: slide hosts first, then video,
// then document/code hosts. Some domains could plausibly match more than one
// group; the order is the tie-break, so keep it stable.
var (
	slideHosts = []string{
		"speakerdeck.com",
		"slideshare.net",
		"docs.google.com",
		"slides.com",
		"canva.com",
	}
	videoHosts = []string{
		"youtube.com",
		"youtu.be",
		"vimeo.com",
		"nicovideo.jp",
	}
	documentHosts = []string{
		"github.com",
		"gist.github.com",
		"qiita.com",
		"zenn.dev",
		"note.com",
		"hackmd.io",
		"scrapbox.io",
	}
)

// Suffix groups, also checked in order: slide-like, document-like, video-like.
var (
	slideSuffixes    = []string{".pdf", ".pptx", ".ppt", ".key"}
	documentSuffixes = []string{".md", ".doc", ".docx", ".txt"}
	videoSuffixes    = []string{".mp4", ".mov", ".webm", ".avi"}
)

// InferCategory derives a material category from the provider-supplied tag
// and the resource URL. Rules are evaluated in a fixed order: explicit tag,
// hosting domain, file extension, then CategoryOther.
func InferCategory(providerCategory, rawURL string) models.MaterialCategory {
	if providerCategory != "" {
		if cat, ok := providerCategories[strings.ToLower(providerCategory)]; ok {
			return cat
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return models.CategoryOther
	}
	host := strings.ToLower(u.Hostname())

	for _, group := range []struct {
		hosts []string
		cat   models.MaterialCategory
	}{
		{slideHosts, models.CategorySlide},
		{videoHosts, models.CategoryVideo},
		{documentHosts, models.CategoryDocument},
	} {
		for _, h := range group.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return group.cat
			}
		}
	}

	path := strings.ToLower(u.Path)
	for _, group := range []struct {
		suffixes []string
		cat      models.MaterialCategory
	}{
		{slideSuffixes, models.CategorySlide},
		{documentSuffixes, models.CategoryDocument},
		{videoSuffixes, models.CategoryVideo},
	} {
		for _, s := range group.suffixes {
			if strings.HasSuffix(path, s) {
				return group.cat
			}
		}
	}

	return models.CategoryOther
}
