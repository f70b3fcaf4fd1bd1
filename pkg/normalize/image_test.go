package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageURL(t *testing.T) {
	const cdn = "https://cdn.example.com/image/upload"

	t.Run("explicit image_url is authoritative", func(t *testing.T) {
		url := ImageURL("https://elsewhere.example/pic.png", "abc123", cdn)
		assert.Equal(t, "https://elsewhere.example/pic.png", url)
	})

	t.Run("bare identifier gets CDN base and default version", func(t *testing.T) {
		url := ImageURL("", "abc123", cdn)
		assert.Equal(t, "https://cdn.example.com/image/upload/v1/abc123", url)
	})

	t.Run("identifier with version segment keeps it", func(t *testing.T) {
		url := ImageURL("", "v1698700000/folder/abc123", cdn)
		assert.Equal(t, "https://cdn.example.com/image/upload/v1698700000/folder/abc123", url)
	})

	t.Run("identifier with folder but no version gets v1", func(t *testing.T) {
		url := ImageURL("", "projects/abc123", cdn)
		assert.Equal(t, "https://cdn.example.com/image/upload/v1/projects/abc123", url)
	})

	t.Run("absolute image passes through", func(t *testing.T) {
		url := ImageURL("", "https://x/y.png", cdn)
		assert.Equal(t, "https://x/y.png", url)
	})

	t.Run("both absent yields empty", func(t *testing.T) {
		assert.Equal(t, "", ImageURL("", "", cdn))
	})

	t.Run("empty cdn base falls back to default", func(t *testing.T) {
		url := ImageURL("", "abc123", "")
		assert.Equal(t, DefaultCDNBaseURL+"/v1/abc123", url)
	})

	t.Run("trailing slash on cdn base is tolerated", func(t *testing.T) {
		url := ImageURL("", "abc123", cdn+"/")
		assert.Equal(t, "https://cdn.example.com/image/upload/v1/abc123", url)
	})

	t.Run("v-prefixed name that is not a version gets v1", func(t *testing.T) {
		url := ImageURL("", "vacation-photo", cdn)
		assert.Equal(t, "https://cdn.example.com/image/upload/v1/vacation-photo", url)
	})
}
