package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobmate/careers-service/internal/apply"
	"jobmate/careers-service/internal/i18n"
	"jobmate/careers-service/internal/notify"
)

// multipartOverhead is allowed on top of the resume for the scalar fields.
const multipartOverhead = 1 << 20

var ruleMessages = map[error]string{
	apply.ErrRequired:      i18n.RequiredField,
	apply.ErrMustBeChecked: i18n.MustAcceptPrivacy,
	apply.ErrInvalidEmail:  i18n.InvalidEmail,
	apply.ErrFileType:      i18n.UnsupportedFileType,
	apply.ErrInvalidOption: i18n.InvalidOption,
}

type modalResponse struct {
	apply.View
	AlreadyApplied bool           `json:"alreadyApplied"`
	Toasts         []notify.Toast `json:"toasts,omitempty"`
}

func modalKey(sid string, jobID int64) string {
	return fmt.Sprintf("%s/%d", sid, jobID)
}

// modal returns the open modal for the job, opening one when there is none
// or the previous one has closed. A source in the query replaces the one the
// modal was opened with.
func (h *Handler) modal(c *gin.Context, jobID int64) *apply.Modal {
	key := modalKey(sessionID(c), jobID)
	if m, ok := h.modals.Get(key); ok && !isDone(m) {
		if src := c.Query("source"); src != "" {
			m.SetSource(src)
		}
		return m
	}
	m := apply.Open(h.modalDeps(), apply.Params{
		JobID:     jobID,
		Source:    c.Query("source"),
		SessionID: sessionID(c),
		Locale:    h.locale(c),
	})
	h.modals.Put(key, m)
	return m
}

func isDone(m *apply.Modal) bool {
	select {
	case <-m.Done():
		return true
	default:
		return false
	}
}

// openApply handles GET /jobs/:id/apply.
func (h *Handler) openApply(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}
	m := h.modal(c, jobID)
	c.JSON(http.StatusOK, modalResponse{
		View:           m.Snapshot(),
		AlreadyApplied: h.hasApplied(c, jobID),
	})
}

// submitApply handles POST /jobs/:id/apply.
func (h *Handler) submitApply(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}
	m := h.modal(c, jobID)

	limit := h.opts.MaxResumeSize + multipartOverhead
	if c.Request.ContentLength > limit {
		jsonError(c, "resume is too large", http.StatusRequestEntityTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	if err := c.Request.ParseMultipartForm(h.opts.MaxResumeSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(c, "resume is too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(c, "body must be multipart/form-data", http.StatusBadRequest)
		return
	}
	defer func() { _ = c.Request.MultipartForm.RemoveAll() }()
	vals, err := readValues(c, m.Snapshot().Fields)
	if err != nil {
		jsonError(c, err.Error(), http.StatusBadRequest)
		return
	}

	rec := &notify.Recorder{}
	ctx := notify.WithRecorder(c.Request.Context(), rec)
	err = m.Save(ctx, vals)

	var (
		ve *apply.ValidationError
		te *apply.TransitionError
	)
	switch {
	case err == nil:
		h.modals.Delete(modalKey(sessionID(c), jobID))
		c.JSON(http.StatusOK, modalResponse{View: m.Snapshot(), AlreadyApplied: true, Toasts: rec.Toasts()})
	case errors.As(err, &ve):
		fields := make(map[string]string, len(ve.Fields))
		for key, ferr := range ve.Fields {
			fields[key] = h.opts.Translator.Translate(h.locale(c), ruleMessages[ferr])
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fields})
	case errors.As(err, &te):
		jsonError(c, te.Error(), http.StatusConflict)
	case errors.Is(err, apply.ErrClosed):
		jsonError(c, err.Error(), http.StatusGone)
	case errors.Is(err, apply.ErrSubmissionFailed):
		slog.Warn("application submission failed", "jobId", jobID, "err", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
			"error":    h.opts.Translator.Translate(h.locale(c), i18n.ApplyError),
			"hasError": true,
			"state":    m.State(),
		})
	default:
		slog.Error("application submission error", "jobId", jobID, "err", err)
		jsonError(c, "internal server error", http.StatusInternalServerError)
	}
}

// closeApply handles DELETE /jobs/:id/apply.
func (h *Handler) closeApply(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}
	key := modalKey(sessionID(c), jobID)
	if m, ok := h.modals.Get(key); ok {
		m.Close()
		h.modals.Delete(key)
	}
	c.Status(http.StatusNoContent)
}

// privacyPolicy handles GET /jobs/:id/apply/privacy-policy.
func (h *Handler) privacyPolicy(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}
	url := h.modal(c, jobID).ViewPrivacyPolicy()
	if url == "" {
		jsonError(c, "no privacy policy configured", http.StatusNotFound)
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (h *Handler) hasApplied(c *gin.Context, jobID int64) bool {
	ok, err := h.opts.Applied.Has(c.Request.Context(), sessionID(c), jobID)
	if err != nil {
		slog.Warn("check applied job failed", "jobId", jobID, "err", err)
		return false
	}
	return ok
}

// readValues picks the submitted value of every field out of the parsed
// multipart form. Fields absent from the request are left out so that a
// retry keeps what was entered before, except checkboxes: an absent
// checkbox is unchecked.
func readValues(c *gin.Context, fields []*apply.Field) (apply.Values, error) {
	vals := apply.Values{}
	for _, f := range fields {
		switch f.Type {
		case apply.FieldFile:
			fh, err := c.FormFile(f.Key)
			if errors.Is(err, http.ErrMissingFile) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", f.Key, err)
			}
			file, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", f.Key, err)
			}
			data, err := io.ReadAll(file)
			_ = file.Close()
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", f.Key, err)
			}
			vals[f.Key] = apply.Value{File: &apply.File{
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			}}
		case apply.FieldPicker:
			if multi, ok := c.GetPostFormArray(f.Key); ok {
				vals[f.Key] = apply.Value{Multi: multi}
			}
		case apply.FieldCheckbox:
			// Browsers leave unchecked boxes out of the form.
			v, ok := c.GetPostForm(f.Key)
			vals[f.Key] = apply.Value{Checked: ok && truthy(v)}
		default:
			if v, ok := c.GetPostForm(f.Key); ok {
				vals[f.Key] = apply.Value{Text: v}
			}
		}
	}
	return vals, nil
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
