package devigo

import (
	"encoding/json"
	"time"

	"github.com/developer9560/devigo-go/pkg/normalize"
)

// Inquiry workflow statuses.
const (
	InquiryStatusNew        = "new"
	InquiryStatusRead       = "read"
	InquiryStatusInProgress = "in_progress"
	InquiryStatusResponded  = "responded"
	InquiryStatusClosed     = "closed"
)

// TechMap is the canonical in-memory form of a project's technologies: a
// map from technology name to an enabled marker.
//
// It decodes from any shape the backend returns (array of strings, array of
// {name} objects, or an existing map) via the normalizer, and encodes back
// to the sorted name list the backend accepts on writes. Submitting an
// already-canonical map therefore round-trips losslessly.
type TechMap map[string]bool

// UnmarshalJSON normalizes any accepted server shape into the canonical map.
func (t *TechMap) UnmarshalJSON(data []byte) error {
	*t = TechMap(normalize.Technologies(data))
	return nil
}

// MarshalJSON emits the denormalized, sorted name list for submission.
func (t TechMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(normalize.DenormalizeTechnologies(t))
}

// Service is a service offering shown on the public site and managed in the
// admin panel.
type Service struct {
	ID          int64      `json:"id,omitempty"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Image       string     `json:"image,omitempty"`     // Bare CDN public id as stored
	ImageURL    string     `json:"image_url,omitempty"` // Absolute URL; derived when the server omits it
	Featured    bool       `json:"featured,omitempty"`
	Order       int        `json:"order,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (s *Service) normalizeImages(cdnBase string) {
	s.ImageURL = normalize.ImageURL(s.ImageURL, s.Image, cdnBase)
}

// GalleryImage is one entry in a project's image gallery.
type GalleryImage struct {
	ID       int64  `json:"id,omitempty"`
	Image    string `json:"image,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Order    int    `json:"order,omitempty"`
}

// Project is a portfolio entry.
type Project struct {
	ID           int64          `json:"id,omitempty"`
	Title        string         `json:"title"`
	Slug         string         `json:"slug,omitempty"`
	Description  string         `json:"description,omitempty"`
	Content      string         `json:"content,omitempty"` // Rich-text body
	Category     string         `json:"category,omitempty"`
	Image        string         `json:"image,omitempty"`
	ImageURL     string         `json:"image_url,omitempty"`
	Gallery      []GalleryImage `json:"gallery,omitempty"`
	Technologies TechMap        `json:"technologies,omitempty"`
	LiveURL      string         `json:"live_url,omitempty"`
	GithubURL    string         `json:"github_url,omitempty"`
	Featured     bool           `json:"featured,omitempty"`
	CreatedAt    *time.Time     `json:"created_at,omitempty"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

func (p *Project) normalizeImages(cdnBase string) {
	p.ImageURL = normalize.ImageURL(p.ImageURL, p.Image, cdnBase)
	for i := range p.Gallery {
		entry := &p.Gallery[i]
		entry.ImageURL = normalize.ImageURL(entry.ImageURL, entry.Image, cdnBase)
	}
}

// TeamMember is an agency team member shown on the about page.
type TeamMember struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Position    string `json:"position,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Image       string `json:"image,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	LinkedinURL string `json:"linkedin_url,omitempty"`
	GithubURL   string `json:"github_url,omitempty"`
	Order       int    `json:"order,omitempty"`
	Active      bool   `json:"active,omitempty"`
}

func (m *TeamMember) normalizeImages(cdnBase string) {
	m.ImageURL = normalize.ImageURL(m.ImageURL, m.Image, cdnBase)
}

// Inquiry is a contact-form submission and its handling state.
type Inquiry struct {
	ID           int64      `json:"id,omitempty"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	Subject      string     `json:"subject,omitempty"`
	Message      string     `json:"message,omitempty"`
	Status       string     `json:"status,omitempty"`
	ResponseText string     `json:"response_text,omitempty"`
	IsResponded  bool       `json:"is_responded,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// SiteSettings holds the site-wide editable settings record.
type SiteSettings struct {
	ID              int64  `json:"id,omitempty"`
	SiteName        string `json:"site_name,omitempty"`
	Tagline         string `json:"tagline,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	Logo            string `json:"logo,omitempty"`
	LogoURL         string `json:"logo_url,omitempty"`
	FacebookURL     string `json:"facebook_url,omitempty"`
	InstagramURL    string `json:"instagram_url,omitempty"`
	LinkedinURL     string `json:"linkedin_url,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
}

func (s *SiteSettings) normalizeImages(cdnBase string) {
	s.LogoURL = normalize.ImageURL(s.LogoURL, s.Logo, cdnBase)
}

// UploadResult is the response of the image upload endpoint.
type UploadResult struct {
	ImageURL string `json:"image_url"`
	PublicID string `json:"public_id"`
}

// Page is one page of a list result: items in server order plus the total
// count for pagination. Count may exceed len(Items) when the server
// paginates.
type Page[T any] struct {
	Items []T
	Count int
}
