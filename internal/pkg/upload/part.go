package upload

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
)

// Part is one incoming file, held until every file of the request has been
// checked.
type Part struct {
	Field    string
	Filename string
	Header   textproto.MIMEHeader
	Size     int64
	open     func() (io.ReadCloser, error)
}

func (p Part) Open() (io.ReadCloser, error) { return p.open() }

// FromForm adapts an already parsed multipart form, ordered by field name.
func FromForm(files map[string][]*multipart.FileHeader) []Part {
	fields := make([]string, 0, len(files))
	for field := range files {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []Part
	for _, field := range fields {
		for _, h := range files[field] {
			h := h
			parts = append(parts, Part{
				Field:    field,
				Filename: h.Filename,
				Header:   h.Header,
				Size:     h.Size,
				open: func() (io.ReadCloser, error) {
					return h.Open()
				},
			})
		}
	}
	return parts
}

// ReadParts walks a multipart stream and buffers its files. Field and count
// limits are checked as each file part arrives, before its body is read, and
// no file is read past maxSize+1 bytes.
func ReadParts(mr *multipart.Reader, ep Endpoint, maxSize int64) ([]Part, error) {
	var (
		parts    []Part
		formRead int64
	)
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return parts, nil
		}
		if err != nil {
			return nil, err
		}

		if p.FileName() == "" {
			n, err := io.Copy(io.Discard, io.LimitReader(p, formOverhead-formRead+1))
			if err != nil {
				return nil, err
			}
			if formRead += n; formRead > formOverhead {
				return nil, errMalformed
			}
			continue
		}

		field := p.FormName()
		if !ep.accepts(field) {
			return nil, errUnexpectedField
		}
		if len(parts) == ep.limit() {
			return nil, errTooManyFiles(ep.limit())
		}
		data, err := io.ReadAll(io.LimitReader(p, maxSize+1))
		if err != nil {
			return nil, err
		}
		if int64(len(data)) > maxSize {
			return nil, errFileTooLarge(maxSize)
		}
		parts = append(parts, Part{
			Field:    field,
			Filename: p.FileName(),
			Header:   p.Header,
			Size:     int64(len(data)),
			open: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(data)), nil
			},
		})
	}
}
