package upload

import (
	"brightline/internal/domain"
	fileupload "brightline/internal/pkg/upload"
)

type FileInfo struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName,omitempty"`
	Size         int64  `json:"size,omitempty"`
	MimeType     string `json:"mimeType,omitempty"`
}

type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

type AvatarResult struct {
	FileInfo
	User *domain.User `json:"user"`
}

func toInfo(f fileupload.StoredFile) FileInfo {
	return FileInfo{
		URL:          f.URL,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		Size:         f.Size,
		MimeType:     f.MimeType,
	}
}

func toInfos(files []fileupload.StoredFile) []FileInfo {
	out := make([]FileInfo, len(files))
	for i, f := range files {
		out[i] = toInfo(f)
	}
	return out
}
