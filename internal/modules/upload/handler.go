package upload

import (
	"errors"

	"github.com/gin-gonic/gin"

	"brightline/internal/middleware"
	"brightline/internal/pkg/response"
	fileupload "brightline/internal/pkg/upload"
	"brightline/internal/pkg/utils"
)

type Handler struct {
	service *Service
	router  *fileupload.Router
}

func NewHandler(service *Service, router *fileupload.Router) *Handler {
	return &Handler{service: service, router: router}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards) {
	g := api.Group("/upload")
	g.POST("/avatar", guards.Required, fileupload.Middleware(h.router, fileupload.AvatarEndpoint), h.Avatar)
	g.POST("/attachments", fileupload.Middleware(h.router, fileupload.AttachmentsEndpoint), h.Many)

	admin := g.Group("", guards.Admin()...)
	{
		admin.POST("/blog-image", fileupload.Middleware(h.router, fileupload.BlogImageEndpoint), h.Single)
		admin.POST("/service-image", fileupload.Middleware(h.router, fileupload.ServiceImageEndpoint), h.Single)
		admin.POST("/multiple", fileupload.Middleware(h.router, fileupload.MultipleEndpoint), h.Many)
		admin.DELETE("/:category/:filename", h.Delete)
	}
}

func (h *Handler) Avatar(c *gin.Context) {
	files := fileupload.Files(c)
	if len(files) == 0 {
		response.BadRequest(c, "No file uploaded.", nil)
		return
	}
	u, err := h.service.SetAvatar(c.Request.Context(), middleware.UserID(c), files[0])
	if err != nil {
		h.fail(c, err, "Failed to update avatar")
		return
	}
	response.Success(c, AvatarResult{FileInfo: toInfo(files[0]), User: u}, "Avatar uploaded successfully")
}

func (h *Handler) Single(c *gin.Context) {
	files := fileupload.Files(c)
	if len(files) == 0 {
		response.BadRequest(c, "No file uploaded.", nil)
		return
	}
	response.Success(c, toInfo(files[0]), "Image uploaded successfully")
}

func (h *Handler) Many(c *gin.Context) {
	files := fileupload.Files(c)
	response.Success(c, toInfos(files), "Files uploaded successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("category"), c.Param("filename"))
	if err != nil {
		h.fail(c, err, "Failed to delete file")
		return
	}
	message := "File deleted successfully"
	if !deleted {
		message = "File not found, nothing to delete"
	}
	response.Success(c, DeleteResult{Deleted: deleted}, message)
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidCategory):
		response.BadRequest(c, "Invalid upload category", nil)
	case errors.Is(err, ErrInvalidFilename):
		response.BadRequest(c, "Invalid filename", nil)
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		utils.InternalError(c, err, fallback)
	}
}
