// Package upload routes multipart files to storage categories. Every file in
// a request is checked before any of them is written.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"slices"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"brightline/internal/storage"
)

const (
	DefaultMaxFileSize int64 = 5 << 20
	MaxFilesPerRequest       = 10
	sniffLen                 = 512
)

// Endpoint is the per-route upload policy. A nil Fields accepts any field.
type Endpoint struct {
	Fields   []string
	MaxCount int
}

var (
	AvatarEndpoint       = Endpoint{Fields: []string{"avatar"}, MaxCount: 1}
	BlogImageEndpoint    = Endpoint{Fields: []string{"blogImage", "featuredImage"}, MaxCount: 1}
	ServiceImageEndpoint = Endpoint{Fields: []string{"serviceImage"}, MaxCount: 1}
	AttachmentsEndpoint  = Endpoint{Fields: []string{"attachment", "attachments"}, MaxCount: 5}
	MultipleEndpoint     = Endpoint{MaxCount: MaxFilesPerRequest}
)

func (e Endpoint) limit() int {
	if e.MaxCount <= 0 || e.MaxCount > MaxFilesPerRequest {
		return MaxFilesPerRequest
	}
	return e.MaxCount
}

func (e Endpoint) accepts(field string) bool {
	return e.Fields == nil || slices.Contains(e.Fields, field)
}

// Planned is a file that passed every check and has its final name.
type Planned struct {
	Descriptor  Descriptor
	Part        Part
	ContentType string
	Filename    string
}

type StoredFile struct {
	Field        string   `json:"field"`
	Filename     string   `json:"filename"`
	OriginalName string   `json:"originalName"`
	Category     Category `json:"category"`
	URL          string   `json:"url"`
	Size         int64    `json:"size"`
	MimeType     string   `json:"mimeType"`
}

type Router struct {
	store   storage.Backend
	maxSize int64
	now     func() time.Time
}

func NewRouter(store storage.Backend, maxFileSize int64) *Router {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Router{store: store, maxSize: maxFileSize, now: time.Now}
}

func (r *Router) MaxFileSize() int64 { return r.maxSize }

// EnsureDirs prepares every category in the backing store. Call once at startup.
func (r *Router) EnsureDirs(ctx context.Context) error {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return r.store.Prepare(ctx, names)
}

// Plan validates all parts against ep without touching storage.
func (r *Router) Plan(parts []Part, ep Endpoint) ([]Planned, error) {
	if len(parts) == 0 {
		return nil, errNoFile
	}
	for _, part := range parts {
		if !ep.accepts(part.Field) {
			return nil, errUnexpectedField
		}
	}
	if len(parts) > ep.limit() {
		return nil, errTooManyFiles(ep.limit())
	}

	now := r.now()
	planned := make([]Planned, 0, len(parts))
	for _, part := range parts {
		category := CategoryFor(part.Field)
		desc := Descriptor{
			Field:    part.Field,
			Category: category,
			Allowed:  category.allowed(),
			MaxSize:  r.maxSize,
			MaxCount: ep.limit(),
		}
		if part.Size > desc.MaxSize {
			return nil, errFileTooLarge(desc.MaxSize)
		}
		contentType, err := detectType(part)
		if err != nil {
			return nil, fmt.Errorf("detect content type: %w", err)
		}
		if !desc.Allowed[contentType] {
			return nil, category.typeRejection()
		}
		name, err := GenerateFilename(part.Filename, now)
		if err != nil {
			return nil, err
		}
		planned = append(planned, Planned{Descriptor: desc, Part: part, ContentType: contentType, Filename: name})
	}
	return planned, nil
}

// Store writes planned files. When one write fails, files already written
// by this call are removed.
func (r *Router) Store(ctx context.Context, planned []Planned) ([]StoredFile, error) {
	stored := make([]StoredFile, 0, len(planned))
	rollback := func() {
		for _, f := range stored {
			key, _ := storage.Key(string(f.Category), f.Filename)
			_, _ = r.store.Delete(ctx, key)
		}
	}

	for _, p := range planned {
		key, err := storage.Key(string(p.Descriptor.Category), p.Filename)
		if err != nil {
			rollback()
			return nil, err
		}
		if err := r.put(ctx, key, p); err != nil {
			rollback()
			return nil, err
		}
		stored = append(stored, StoredFile{
			Field:        p.Descriptor.Field,
			Filename:     p.Filename,
			OriginalName: p.Part.Filename,
			Category:     p.Descriptor.Category,
			URL:          r.store.URL(key),
			Size:         p.Part.Size,
			MimeType:     p.ContentType,
		})
	}
	return stored, nil
}

func (r *Router) put(ctx context.Context, key string, p Planned) error {
	src, err := p.Part.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	return r.store.Put(ctx, key, src, p.Part.Size, p.ContentType)
}

// Handle plans and stores in one step.
func (r *Router) Handle(ctx context.Context, parts []Part, ep Endpoint) ([]StoredFile, error) {
	planned, err := r.Plan(parts, ep)
	if err != nil {
		return nil, err
	}
	return r.Store(ctx, planned)
}

// Delete removes a stored file. A missing file reports false and no error.
func (r *Router) Delete(ctx context.Context, category Category, filename string) (bool, error) {
	key, err := storage.Key(string(category), filename)
	if err != nil {
		return false, err
	}
	return r.store.Delete(ctx, key)
}

// Locate extracts the category and filename from a URL produced by this
// router, e.g. /uploads/avatars/me-1-000000001.png.
func Locate(url string) (Category, string, bool) {
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	if len(parts) < 2 {
		return "", "", false
	}
	category, ok := ParseCategory(parts[len(parts)-2])
	if !ok || parts[len(parts)-1] == "" {
		return "", "", false
	}
	return category, parts[len(parts)-1], true
}

// detectType trusts the declared part type unless it is missing or generic.
func detectType(part Part) (string, error) {
	declared := part.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
		return mediaType, nil
	}

	f, err := part.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(io.LimitReader(f, sniffLen))
	if err != nil {
		return "", err
	}
	for m := detected; m != nil; m = m.Parent() {
		if mediaType, _, err := mime.ParseMediaType(m.String()); err == nil && documentTypes[mediaType] {
			return mediaType, nil
		}
	}
	mediaType, _, _ := mime.ParseMediaType(detected.String())
	return mediaType, nil
}
