package handlers

import (
	"errors"
	"net/http"
	"path"

	"debtledger-backend/service"
	"debtledger-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DebtHandler handles HTTP requests for debts
type DebtHandler struct {
	debtService *service.DebtService
	storage     storage.Storage
}

// NewDebtHandler creates a new debt handler
func NewDebtHandler(debtService *service.DebtService, st storage.Storage) *DebtHandler {
	return &DebtHandler{
		debtService: debtService,
		storage:     st,
	}
}

// ListDebts handles GET /api/debts
func (h *DebtHandler) ListDebts(c *gin.Context) {
	result, err := h.debtService.ListDebts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list debts",
			},
		})
		return
	}

	c.JSON(http.StatusOK, result.Debts)
}

// CreateDebt handles POST /api/debts. The request is multipart/form-data:
// the record payload arrives as a JSON string in the "data" field, the
// optional PDF in the "attachment" file part. The media-type gate runs
// before any bytes are persisted; the validator runs after staging, so a
// rejected payload triggers compensating cleanup inside the service.
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	data := c.PostForm("data")
	if data == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_DATA",
				"message": `Form field "data" with the debt payload is required`,
			},
		})
		return
	}

	var staged *service.StagedFile
	fileHeader, err := c.FormFile("attachment")
	if err == nil {
		if err := storage.ValidateUpload(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNSUPPORTED_MEDIA_TYPE",
					"message": "Only PDF attachments are allowed",
				},
			})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_OPEN_ERROR",
					"message": "Failed to read uploaded file",
				},
			})
			return
		}
		defer file.Close()

		name, err := h.storage.Upload(c.Request.Context(), uuid.New(), fileHeader.Filename, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPLOAD_FAILED",
					"message": "Failed to store uploaded file",
				},
			})
			return
		}
		staged = &service.StagedFile{Name: name}
	} else if !errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_MULTIPART",
				"message": "Malformed multipart request",
			},
		})
		return
	}

	result, err := h.debtService.CreateDebt(c.Request.Context(), service.CreateDebtRequest{
		Payload: []byte(data),
		Staged:  staged,
	})
	if err != nil {
		// detail is logged server-side, never leaked
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Internal server error",
			},
		})
		return
	}

	if len(result.ValidationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": result.ValidationErrors,
		})
		return
	}

	c.JSON(http.StatusCreated, result.Debt)
}

// DeleteDebt handles DELETE /api/debts/:id
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	id := c.Param("id")

	_, err := h.debtService.DeleteDebt(c.Request.Context(), service.DeleteDebtRequest{ID: id})
	if err != nil {
		if errors.Is(err, service.ErrDebtNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Debt not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Internal server error",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Debt removed successfully",
		"id":      id,
	})
}

// DownloadAttachment handles GET /uploads/:filename, streaming the stored
// attachment through the storage backend so local and S3 serve the same way
func (h *DebtHandler) DownloadAttachment(c *gin.Context) {
	name := path.Base(c.Param("filename"))
	if name == "." || name == "/" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILENAME",
				"message": "Invalid attachment name",
			},
		})
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Attachment not found",
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.DataFromReader(http.StatusOK, -1, storage.ContentType(name), reader, nil)
}
