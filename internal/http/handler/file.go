package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"dms/internal/service"
)

// UploadFile accepts a multipart upload (field name: file) and stores it as
// the next version for the document.
func UploadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		df, err := svc.Upload(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			case errors.Is(err, service.ErrFilenameRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_FILENAME", "filename is empty after sanitization")
			case errors.Is(err, service.ErrFileEmpty):
				return writeError(c, fiber.StatusBadRequest, "FILE_EMPTY", "file is empty")
			case errors.Is(err, service.ErrFileTooLarge):
				return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "file exceeds the maximum upload size")
			case errors.Is(err, service.ErrFileTypeNotAllowed):
				return writeError(c, fiber.StatusBadRequest, "FILE_TYPE_NOT_ALLOWED", "file type is not allowed")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(df)
	}
}

// ListFiles returns a document's files, newest version first.
func ListFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}

		files, err := svc.List(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(files)
	}
}

// DownloadFile returns either a presigned URL or the file bytes, depending on
// the configured download mode.
func DownloadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		fileID, err := parseID(c, "fileId")
		if err != nil {
			return err
		}

		res, err := svc.Download(c.UserContext(), id, fileID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		if res.URL != "" {
			return c.JSON(fiber.Map{"url": res.URL})
		}

		c.Set(fiber.HeaderContentType, res.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.Filename))
		return c.SendStream(res.Body, int(res.Size))
	}
}

// DeleteFile removes one file version and (best effort) its blob.
func DeleteFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		fileID, err := parseID(c, "fileId")
		if err != nil {
			return err
		}

		if _, err := svc.Delete(c.UserContext(), id, fileID); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
