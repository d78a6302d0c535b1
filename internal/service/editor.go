package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

// Gateway is the table-oriented data store every editor talks to.
type Gateway interface {
	Select(ctx context.Context, table string, q models.Query, dest interface{}) error
	Insert(ctx context.Context, table string, rows ...models.Row) error
	Update(ctx context.Context, table string, patch models.Row, match models.Match) error
	Delete(ctx context.Context, table string, match models.Match) error
}

// EntityLabels names an entity in notices, e.g. Title "Teacher",
// Singular "teacher", Plural "teachers".
type EntityLabels struct {
	Title    string
	Singular string
	Plural   string
}

func (l EntityLabels) fetchFailed() string  { return "Failed to fetch " + l.Plural }
func (l EntityLabels) added() string        { return l.Title + " added!" }
func (l EntityLabels) addFailed() string    { return "Failed to add " + l.Singular }
func (l EntityLabels) updated() string      { return l.Title + " updated!" }
func (l EntityLabels) updateFailed() string { return "Failed to update " + l.Singular }
func (l EntityLabels) deleted() string      { return l.Title + " deleted" }
func (l EntityLabels) deleteFailed() string { return "Failed to delete " + l.Singular }

// ConfirmPrompt is the question shown before deleting a row.
func (l EntityLabels) ConfirmPrompt() string {
	return fmt.Sprintf("Are you sure you want to delete this %s?", l.Singular)
}

// EntitySchema describes one editable table: how rows sort, what a fresh
// draft looks like and how drafts map to and from rows.
type EntitySchema[T any, F any] struct {
	Table  string
	Labels EntityLabels
	Order  []models.Order

	ID func(T) string
	// Active returns the visibility flag. Nil for tables without one.
	Active func(T) bool
	// Defaults builds a create draft. Nil for tables the admin cannot create.
	Defaults func(nextOrder int) F
	Draft    func(T) F
	// Prepare normalises the draft right before validation.
	Prepare func(*F)
	Row     func(F) models.Row
	// RequiredMessage is the notice raised when validation fails.
	RequiredMessage string
}

// Editor owns the list of one entity kind and mediates every mutation of it.
// Every successful write is followed by a full reload so the list always
// mirrors the gateway.
type Editor[T any, F any] struct {
	gateway   Gateway
	schema    EntitySchema[T, F]
	validator *validator.Validate
	logger    *zap.Logger

	notices  *Notices
	form     Form[F]
	items    []T
	loaded   bool
	stale    bool
	onChange func(ctx context.Context, table string)
}

// NewEditor constructs an editor for schema.
func NewEditor[T any, F any](gateway Gateway, schema EntitySchema[T, F], validate *validator.Validate, logger *zap.Logger) *Editor[T, F] {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor[T, F]{
		gateway:   gateway,
		schema:    schema,
		validator: validate,
		logger:    logger,
		notices:   &Notices{},
	}
}

// OnChange registers a hook fired after every successful write.
func (e *Editor[T, F]) OnChange(fn func(ctx context.Context, table string)) {
	e.onChange = fn
}

// Schema returns the descriptor driving the editor.
func (e *Editor[T, F]) Schema() EntitySchema[T, F] { return e.schema }

// Items returns a copy of the current list.
func (e *Editor[T, F]) Items() []T {
	out := make([]T, len(e.items))
	copy(out, e.items)
	return out
}

// Stale reports whether the last reload failed, meaning the list may lag the
// gateway.
func (e *Editor[T, F]) Stale() bool { return e.stale }

// Form exposes the form controller.
func (e *Editor[T, F]) Form() *Form[F] { return &e.form }

// Notices returns the notices raised so far.
func (e *Editor[T, F]) Notices() []Notice { return e.notices.List() }

// Load replaces the list with the gateway's rows in schema order. On failure
// the previous list is kept.
func (e *Editor[T, F]) Load(ctx context.Context) error {
	var rows []T
	if err := e.gateway.Select(ctx, e.schema.Table, models.Query{Order: e.schema.Order}, &rows); err != nil {
		e.stale = e.loaded
		e.logger.Warn("editor load failed", zap.String("table", e.schema.Table), zap.Error(err))
		e.notices.Error(e.schema.Labels.fetchFailed())
		return appErrors.Gateway(err, e.schema.Labels.fetchFailed())
	}
	if rows == nil {
		rows = []T{}
	}
	e.items = rows
	e.loaded = true
	e.stale = false
	return nil
}

// OpenCreate resets the form to the entity defaults with display_order one
// past the current list length. It returns false for read-only tables.
func (e *Editor[T, F]) OpenCreate() bool {
	if e.schema.Defaults == nil {
		return false
	}
	e.form.OpenCreate(e.schema.Defaults(len(e.items) + 1))
	return true
}

// OpenEdit loads the record with id into the form. Unknown ids leave the form
// untouched and return false.
func (e *Editor[T, F]) OpenEdit(id string) bool {
	item, ok := e.find(id)
	if !ok || e.schema.Draft == nil {
		return false
	}
	e.form.OpenEdit(id, e.schema.Draft(item))
	return true
}

// Save validates the open draft and writes it. Validation failures and
// gateway errors leave the form open; success closes it and reloads.
func (e *Editor[T, F]) Save(ctx context.Context) error {
	if !e.form.IsOpen() || e.schema.Row == nil {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "no open form to save")
	}

	if e.schema.Prepare != nil {
		e.schema.Prepare(&e.form.Draft)
	}
	if err := e.validator.Struct(e.form.Draft); err != nil {
		message := e.schema.RequiredMessage
		if message == "" {
			message = appErrors.ErrValidation.Message
		}
		e.notices.Error(message)
		return appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, message), fieldErrors(err))
	}

	row := e.schema.Row(e.form.Draft)
	labels := e.schema.Labels
	if e.form.Mode() == FormEdit {
		if err := e.gateway.Update(ctx, e.schema.Table, row, models.Match{"id": e.form.EditingID()}); err != nil {
			e.logger.Warn("editor update failed", zap.String("table", e.schema.Table), zap.String("id", e.form.EditingID()), zap.Error(err))
			e.notices.Error(labels.updateFailed())
			return appErrors.Gateway(err, labels.updateFailed())
		}
		e.notices.Success(labels.updated())
	} else {
		if err := e.gateway.Insert(ctx, e.schema.Table, row); err != nil {
			e.logger.Warn("editor insert failed", zap.String("table", e.schema.Table), zap.Error(err))
			e.notices.Error(labels.addFailed())
			return appErrors.Gateway(err, labels.addFailed())
		}
		e.notices.Success(labels.added())
	}

	e.form.Close()
	e.afterWrite(ctx)
	return nil
}

// Remove deletes the row with id once confirm approves the prompt. Without
// confirmation no gateway call is made.
func (e *Editor[T, F]) Remove(ctx context.Context, id string, confirm func(prompt string) bool) error {
	prompt := e.schema.Labels.ConfirmPrompt()
	if confirm == nil || !confirm(prompt) {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, prompt)
	}
	if err := e.gateway.Delete(ctx, e.schema.Table, models.Match{"id": id}); err != nil {
		e.logger.Warn("editor delete failed", zap.String("table", e.schema.Table), zap.String("id", id), zap.Error(err))
		e.notices.Error(e.schema.Labels.deleteFailed())
		return appErrors.Gateway(err, e.schema.Labels.deleteFailed())
	}
	e.notices.Success(e.schema.Labels.deleted())
	e.afterWrite(ctx)
	return nil
}

// ToggleActive flips is_active on the row with id and nothing else.
func (e *Editor[T, F]) ToggleActive(ctx context.Context, id string) error {
	if e.schema.Active == nil {
		return appErrors.Clone(appErrors.ErrValidation, e.schema.Table+" has no visibility flag")
	}
	item, ok := e.find(id)
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, e.schema.Labels.Singular+" not found")
	}
	return e.Patch(ctx, id, models.Row{"is_active": !e.schema.Active(item)}, e.schema.Labels.updated(), "Failed to update status")
}

// Patch issues a partial update of row on id, then reloads.
func (e *Editor[T, F]) Patch(ctx context.Context, id string, row models.Row, success, failure string) error {
	if err := e.gateway.Update(ctx, e.schema.Table, row, models.Match{"id": id}); err != nil {
		e.logger.Warn("editor patch failed", zap.String("table", e.schema.Table), zap.String("id", id), zap.Error(err))
		e.notices.Error(failure)
		return appErrors.Gateway(err, failure)
	}
	e.notices.Success(success)
	e.afterWrite(ctx)
	return nil
}

// Find returns the list record with id.
func (e *Editor[T, F]) Find(id string) (T, bool) {
	return e.find(id)
}

func (e *Editor[T, F]) find(id string) (T, bool) {
	for _, item := range e.items {
		if e.schema.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (e *Editor[T, F]) afterWrite(ctx context.Context) {
	if e.onChange != nil {
		e.onChange(ctx, e.schema.Table)
	}
	if err := e.Load(ctx); err != nil {
		e.stale = true
	}
}
