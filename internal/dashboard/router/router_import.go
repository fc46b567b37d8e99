package router

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/impactlab/aiboard/internal/dashboard/model"
	httpx "github.com/impactlab/aiboard/pkg/http"
	"github.com/impactlab/aiboard/pkg/id"
	"github.com/impactlab/aiboard/pkg/log"
	"github.com/impactlab/aiboard/pkg/safe"
)

func (rt *Router) importRouter(r fiber.Router, auth fiber.Handler) {
	imp := r.Group("/projects/import", auth)
	{
		imp.Post("/preview", rt.previewImport)
		imp.Post("", rt.commitImport)
	}
}

// previewImport parses the uploaded file and returns the candidate
// rows without writing anything.
func (rt *Router) previewImport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.ImportFileIsRequired.Code, httpx.ImportFileIsRequired.Msg, c.Path())
	}

	f, err := fileHeader.Open()
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.ImportFileParseFailed.Code, httpx.ImportFileParseFailed.Msg, c.Path())
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.ImportFileParseFailed.Code, httpx.ImportFileParseFailed.Msg, c.Path())
	}

	preview, err := rt.Imports.ParsePreview(fileHeader.Filename, data)
	if err != nil {
		return rt.serviceError(c, err)
	}

	rt.archiveUpload(fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"))
	return httpx.WithRepJSON(c, preview)
}

type commitImportReq struct {
	Rows []model.CreateProjectReq `json:"rows"`
}

// commitImport writes previously previewed rows.
func (rt *Router) commitImport(c *fiber.Ctx) error {
	var req commitImportReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}

	result, err := rt.Imports.CommitImport(req.Rows)
	if err != nil {
		return rt.serviceError(c, err)
	}
	return httpx.WithRepJSON(c, result)
}

// archiveUpload keeps the raw upload in object storage so a disputed
// import can be replayed. Best effort, off the request path.
func (rt *Router) archiveUpload(filename string, data []byte, contentType string) {
	if rt.Archive == nil {
		return
	}
	objectName := fmt.Sprintf("imports/%s/%s_%s", time.Now().Format("2006-01-02"), id.ShortId(), filename)
	payload := make([]byte, len(data))
	copy(payload, data)
	safe.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := rt.Archive.PutObject(ctx, objectName, bytes.NewReader(payload), int64(len(payload)), contentType); err != nil {
			log.Warnw("failed to archive import upload", "object", objectName, "error", err)
			return
		}
		log.Infow("import upload archived", "object", objectName, "bytes", len(payload))
	})
}
