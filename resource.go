package devigo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/developer9560/devigo-go/pkg/normalize"
	"github.com/developer9560/devigo-go/transport"
)

// ListParams are the common query parameters accepted by list endpoints.
// Zero values are omitted from the query string.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Ordering string // e.g. "-created_at"
	Status   string
	Category string
	Featured *bool
}

// Values encodes the parameters as a URL query.
func (p ListParams) Values() url.Values {
	values := make(url.Values)
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	if p.Ordering != "" {
		values.Set("ordering", p.Ordering)
	}
	if p.Status != "" {
		values.Set("status", p.Status)
	}
	if p.Category != "" {
		values.Set("category", p.Category)
	}
	if p.Featured != nil {
		values.Set("featured", strconv.FormatBool(*p.Featured))
	}
	return values
}

// imageNormalizable is implemented by record types carrying image fields
// whose absolute URL may need deriving from a bare CDN identifier.
type imageNormalizable interface {
	normalizeImages(cdnBase string)
}

// resourceClient implements the CRUD surface shared by every resource
// family. Each exported client embeds one, pinned to its base path.
type resourceClient[T any] struct {
	transport *transport.Client
	basePath  string // e.g. "/services/"; trailing slash is significant
	cdnBase   string
}

// List fetches a page of records. Whatever envelope shape the server
// returns is normalized; an unrecognizable payload yields an empty page,
// not an error.
func (r *resourceClient[T]) List(ctx context.Context, params ListParams) (*Page[T], error) {
	var raw json.RawMessage
	err := r.transport.Do(ctx, http.MethodGet, r.basePath, nil, &raw, transport.WithQuery(params.Values()))
	if err != nil {
		return nil, err
	}

	items, count, err := normalize.ListAs[T](raw)
	if err != nil {
		return nil, err
	}
	for i := range items {
		r.finalize(&items[i])
	}
	return &Page[T]{Items: items, Count: count}, nil
}

// Get fetches one record by id.
func (r *resourceClient[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var item T
	if err := r.transport.Do(ctx, http.MethodGet, r.itemPath(id), nil, &item); err != nil {
		return nil, err
	}
	r.finalize(&item)
	return &item, nil
}

// Create submits a new record and returns the stored version.
func (r *resourceClient[T]) Create(ctx context.Context, item *T) (*T, error) {
	var created T
	if err := r.transport.Do(ctx, http.MethodPost, r.basePath, item, &created); err != nil {
		return nil, err
	}
	r.finalize(&created)
	return &created, nil
}

// Update replaces a record by id and returns the stored version.
func (r *resourceClient[T]) Update(ctx context.Context, id string, item *T) (*T, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var updated T
	if err := r.transport.Do(ctx, http.MethodPut, r.itemPath(id), item, &updated); err != nil {
		return nil, err
	}
	r.finalize(&updated)
	return &updated, nil
}

// Patch applies a partial update. fields is marshaled as-is, so callers can
// send exactly the keys they mean to change.
func (r *resourceClient[T]) Patch(ctx context.Context, id string, fields any) (*T, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var updated T
	if err := r.transport.Do(ctx, http.MethodPatch, r.itemPath(id), fields, &updated); err != nil {
		return nil, err
	}
	r.finalize(&updated)
	return &updated, nil
}

// Delete removes a record by id.
func (r *resourceClient[T]) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return r.transport.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *resourceClient[T]) itemPath(id string) string {
	return r.basePath + id + "/"
}

// finalize applies post-decode normalization to a record.
func (r *resourceClient[T]) finalize(item *T) {
	if n, ok := any(item).(imageNormalizable); ok {
		n.normalizeImages(r.cdnBase)
	}
}
