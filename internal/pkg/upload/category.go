package upload

type Category string

const (
	Avatars     Category = "avatars"
	Blog        Category = "blog"
	Services    Category = "services"
	Attachments Category = "attachments"
	General     Category = "general"
)

// Categories lists every storage directory, in the order EnsureDirs creates them.
var Categories = []Category{Avatars, Blog, Services, Attachments, General}

var fieldCategories = map[string]Category{
	"avatar":        Avatars,
	"blogImage":     Blog,
	"featuredImage": Blog,
	"serviceImage":  Services,
	"attachment":    Attachments,
	"attachments":   Attachments,
}

// CategoryFor maps a form field name to its storage category.
func CategoryFor(field string) Category {
	if c, ok := fieldCategories[field]; ok {
		return c
	}
	return General
}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
	mimeWebP = "image/webp"
	mimeGIF  = "image/gif"
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	imageTypes    = mimeSet(mimeJPEG, mimePNG, mimeWebP, mimeGIF)
	documentTypes = mimeSet(mimeJPEG, mimePNG, mimeWebP, mimeGIF, mimePDF, mimeDOC, mimeDOCX)
)

func mimeSet(types ...string) map[string]bool {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return set
}

// Descriptor is the resolved policy for one incoming file field.
type Descriptor struct {
	Field    string
	Category Category
	Allowed  map[string]bool
	MaxSize  int64
	MaxCount int
}

func (c Category) allowed() map[string]bool {
	switch c {
	case Attachments, General:
		return documentTypes
	default:
		return imageTypes
	}
}

func (c Category) typeRejection() *Error {
	switch c {
	case Attachments:
		return newError(CodeImageOrDocument, "Only image and document files (JPEG, PNG, WebP, GIF, PDF, DOC, DOCX) are allowed.")
	case General:
		return newError(CodeInvalidType, "Invalid file type.")
	default:
		return newError(CodeImageOnly, "Only image files (JPEG, PNG, WebP, GIF) are allowed.")
	}
}
