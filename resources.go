package devigo

import (
	"context"
	"net/http"

	"github.com/developer9560/devigo-go/transport"
)

// ServicesClient manages the service offerings shown on the public site.
type ServicesClient struct {
	resourceClient[Service]
}

// ProjectsClient manages portfolio projects.
type ProjectsClient struct {
	resourceClient[Project]
}

// TeamClient manages team member records.
type TeamClient struct {
	resourceClient[TeamMember]
}

// SettingsClient manages the site-wide settings record.
type SettingsClient struct {
	resourceClient[SiteSettings]
}

// Current returns the active settings record. The backend models settings
// as a one-row collection, so this is the first (and normally only) item of
// the list endpoint; it returns nil when none exists yet.
func (c *SettingsClient) Current(ctx context.Context) (*SiteSettings, error) {
	page, err := c.List(ctx, ListParams{})
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, nil
	}
	return &page.Items[0], nil
}

// InquiriesClient manages contact-form inquiries and their workflow state.
type InquiriesClient struct {
	resourceClient[Inquiry]
}

// MarkAsRead transitions an inquiry to the "read" status via its dedicated
// endpoint.
func (c *InquiriesClient) MarkAsRead(ctx context.Context, id string) (*Inquiry, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var inquiry Inquiry
	path := c.basePath + id + "/mark_read/"
	if err := c.transport.Do(ctx, http.MethodPatch, path, nil, &inquiry); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// MarkInProgress transitions an inquiry to the "in_progress" status.
func (c *InquiriesClient) MarkInProgress(ctx context.Context, id string) (*Inquiry, error) {
	return c.Patch(ctx, id, map[string]any{
		"status": InquiryStatusInProgress,
	})
}

// MarkAsResponded records a response: it sets the "responded" status, the
// response text, and the responded flag in one partial update.
func (c *InquiriesClient) MarkAsResponded(ctx context.Context, id, responseText string) (*Inquiry, error) {
	return c.Patch(ctx, id, map[string]any{
		"status":        InquiryStatusResponded,
		"response_text": responseText,
		"is_responded":  true,
	})
}

// MarkAsClosed transitions an inquiry to the "closed" status.
func (c *InquiriesClient) MarkAsClosed(ctx context.Context, id string) (*Inquiry, error) {
	return c.Patch(ctx, id, map[string]any{
		"status": InquiryStatusClosed,
	})
}

func newServicesClient(t *transport.Client, cdnBase string) *ServicesClient {
	return &ServicesClient{resourceClient[Service]{transport: t, basePath: "/services/", cdnBase: cdnBase}}
}

func newProjectsClient(t *transport.Client, cdnBase string) *ProjectsClient {
	return &ProjectsClient{resourceClient[Project]{transport: t, basePath: "/projects/", cdnBase: cdnBase}}
}

func newTeamClient(t *transport.Client, cdnBase string) *TeamClient {
	return &TeamClient{resourceClient[TeamMember]{transport: t, basePath: "/team/", cdnBase: cdnBase}}
}

func newSettingsClient(t *transport.Client, cdnBase string) *SettingsClient {
	return &SettingsClient{resourceClient[SiteSettings]{transport: t, basePath: "/site-settings/", cdnBase: cdnBase}}
}

func newInquiriesClient(t *transport.Client) *InquiriesClient {
	return &InquiriesClient{resourceClient[Inquiry]{transport: t, basePath: "/inquiries/"}}
}
