package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/service"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
	"github.com/noah-isme/rainbow-kids-api/pkg/response"
)

// EditorView is the payload returned by every editor endpoint.
type EditorView[T any, F any] struct {
	Items []T                  `json:"items"`
	Form  service.FormState[F] `json:"form"`
	Stale bool                 `json:"stale,omitempty"`
}

// EntityHandler exposes one Entity Editor over HTTP. Each request builds a
// fresh editor, so no list state is shared between requests.
type EntityHandler[T any, F any] struct {
	gateway   service.Gateway
	schema    service.EntitySchema[T, F]
	validator *validator.Validate
	logger    *zap.Logger
	onChange  func(ctx context.Context, table string)
}

// NewEntityHandler constructs a handler for schema. onChange may be nil.
func NewEntityHandler[T any, F any](gateway service.Gateway, schema service.EntitySchema[T, F], validate *validator.Validate, logger *zap.Logger, onChange func(ctx context.Context, table string)) *EntityHandler[T, F] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityHandler[T, F]{gateway: gateway, schema: schema, validator: validate, logger: logger, onChange: onChange}
}

// Register mounts the editor routes on group.
func (h *EntityHandler[T, F]) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/new", h.New)
	group.GET("/:id/edit", h.Edit)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	if h.schema.Active != nil {
		group.PATCH("/:id/active", h.ToggleActive)
	}
	group.DELETE("/:id", h.Delete)
}

func (h *EntityHandler[T, F]) editor() *service.Editor[T, F] {
	editor := service.NewEditor(h.gateway, h.schema, h.validator, h.logger)
	if h.onChange != nil {
		editor.OnChange(h.onChange)
	}
	return editor
}

func (h *EntityHandler[T, F]) view(editor *service.Editor[T, F]) EditorView[T, F] {
	return EditorView[T, F]{Items: editor.Items(), Form: editor.Form().State(), Stale: editor.Stale()}
}

func (h *EntityHandler[T, F]) respond(c *gin.Context, status int, editor *service.Editor[T, F], err error) {
	meta := noticeMeta(c, editor.Notices(), nil)
	if err != nil {
		response.ErrorWithData(c, err, h.view(editor), meta)
		return
	}
	response.JSON(c, status, h.view(editor), nil, meta)
}

// List returns the full list in schema order.
func (h *EntityHandler[T, F]) List(c *gin.Context) {
	editor := h.editor()
	ok, err := underShell(c, func() error { return editor.Load(c.Request.Context()) })
	if ok {
		h.respond(c, http.StatusOK, editor, err)
	}
}

// New returns the list with the form opened on fresh defaults.
func (h *EntityHandler[T, F]) New(c *gin.Context) {
	editor := h.editor()
	ok, err := underShell(c, func() error {
		if err := editor.Load(c.Request.Context()); err != nil {
			return err
		}
		if !editor.OpenCreate() {
			return appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s cannot be created here", h.schema.Labels.Plural))
		}
		return nil
	})
	if ok {
		h.respond(c, http.StatusOK, editor, err)
	}
}

// Edit returns the list with the form loaded from the record.
func (h *EntityHandler[T, F]) Edit(c *gin.Context) {
	editor := h.editor()
	ok, err := underShell(c, func() error {
		if err := editor.Load(c.Request.Context()); err != nil {
			return err
		}
		if !editor.OpenEdit(c.Param("id")) {
			return appErrors.Clone(appErrors.ErrNotFound, h.schema.Labels.Singular+" not found")
		}
		return nil
	})
	if ok {
		h.respond(c, http.StatusOK, editor, err)
	}
}

// Create inserts the submitted draft. The body is decoded over the schema
// defaults, so omitted fields keep their default values.
func (h *EntityHandler[T, F]) Create(c *gin.Context) {
	raw, ok := h.readDraft(c)
	if !ok {
		return
	}
	if h.schema.Defaults == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s cannot be created here", h.schema.Labels.Plural)))
		return
	}
	editor := h.editor()
	ok, err := underShell(c, func() error {
		if err := editor.Load(c.Request.Context()); err != nil {
			return err
		}
		editor.OpenCreate()
		if err := binding.JSON.BindBody(raw, &editor.Form().Draft); err != nil {
			return bindError(err, "invalid "+h.schema.Labels.Singular+" payload")
		}
		return editor.Save(c.Request.Context())
	})
	if ok {
		h.respond(c, http.StatusCreated, editor, err)
	}
}

// Update replaces the record with the submitted draft. The body is decoded
// over the stored record, so omitted fields keep their current values.
func (h *EntityHandler[T, F]) Update(c *gin.Context) {
	raw, ok := h.readDraft(c)
	if !ok {
		return
	}
	editor := h.editor()
	ok, err := underShell(c, func() error {
		if err := editor.Load(c.Request.Context()); err != nil {
			return err
		}
		if !editor.OpenEdit(c.Param("id")) {
			return appErrors.Clone(appErrors.ErrNotFound, h.schema.Labels.Singular+" not found")
		}
		if err := binding.JSON.BindBody(raw, &editor.Form().Draft); err != nil {
			return bindError(err, "invalid "+h.schema.Labels.Singular+" payload")
		}
		return editor.Save(c.Request.Context())
	})
	if ok {
		h.respond(c, http.StatusOK, editor, err)
	}
}

// readDraft reads the request body and rejects malformed JSON before the
// editor touches the gateway.
func (h *EntityHandler[T, F]) readDraft(c *gin.Context) ([]byte, bool) {
	raw, err := c.GetRawData()
	if err == nil {
		var draft F
		err = binding.JSON.BindBody(raw, &draft)
	}
	if err != nil {
		response.Error(c, bindError(err, "invalid "+h.schema.Labels.Singular+" payload"))
		return nil, false
	}
	return raw, true
}

// ToggleActive flips the visibility flag of the record.
func (h *EntityHandler[T, F]) ToggleActive(c *gin.Context) {
	editor := h.editor()
	ok, err := underShell(c, func() error {
		if err := editor.Load(c.Request.Context()); err != nil {
			return err
		}
		return editor.ToggleActive(c.Request.Context(), c.Param("id"))
	})
	if ok {
		h.respond(c, http.StatusOK, editor, err)
	}
}

// Delete removes the record. The caller confirms with ?confirm=true or an
// X-Confirm: true header; otherwise 428 is returned with the prompt.
func (h *EntityHandler[T, F]) Delete(c *gin.Context) {
	editor := h.editor()
	ok, err := underShell(c, func() error {
		return editor.Remove(c.Request.Context(), c.Param("id"), func(string) bool { return confirmed(c) })
	})
	if !ok {
		return
	}
	if err != nil && appErrors.FromError(err).Code == appErrors.ErrConfirmationRequired.Code {
		response.Error(c, err, noticeMeta(c, editor.Notices(), map[string]interface{}{"prompt": h.schema.Labels.ConfirmPrompt()}))
		return
	}
	h.respond(c, http.StatusOK, editor, err)
}
