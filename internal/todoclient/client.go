package todoclient

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Alerter shows a message to the user.
type Alerter interface {
	Alert(ctx context.Context, message string)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

type confirmationKey struct{}

// WithConfirmation records the user's answer for a ContextConfirmer. Front-ends
// that collect the answer before the operation runs use this.
func WithConfirmation(ctx context.Context, accepted bool) context.Context {
	return context.WithValue(ctx, confirmationKey{}, accepted)
}

// ContextConfirmer answers with the value stored by WithConfirmation, and no
// when there is none.
type ContextConfirmer struct{}

func (ContextConfirmer) Confirm(ctx context.Context, _ string) bool {
	accepted, _ := ctx.Value(confirmationKey{}).(bool)
	return accepted
}

// Messages are the user-facing texts a TodoClient emits.
type Messages struct {
	EmptyTask     string
	CreateFailed  string
	ConfirmDelete string
}

func DefaultMessages() Messages {
	return Messages{
		EmptyTask:     "Please enter a task",
		CreateFailed:  "Error adding todo",
		ConfirmDelete: "Are you sure you want to delete this task?",
	}
}

type TodoClient struct {
	store     Store
	view      *ViewModel
	alerter   Alerter
	confirmer Confirmer
	messages  Messages
}

type Option func(*TodoClient)

func WithAlerter(alerter Alerter) Option {
	return func(c *TodoClient) { c.alerter = alerter }
}

func WithConfirmer(confirmer Confirmer) Option {
	return func(c *TodoClient) { c.confirmer = confirmer }
}

func WithMessages(messages Messages) Option {
	return func(c *TodoClient) { c.messages = messages }
}

// New returns a client that mirrors store into view. Alerts go to view and
// confirmations come from the context unless overridden.
func New(store Store, view *ViewModel, opts ...Option) *TodoClient {
	c := &TodoClient{
		store:     store,
		view:      view,
		alerter:   view,
		confirmer: ContextConfirmer{},
		messages:  DefaultMessages(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *TodoClient) View() *ViewModel {
	return c.view
}

// Load replaces the view's items with the store's collection, in the order
// received. On failure the previous items stay.
func (c *TodoClient) Load(ctx context.Context) {
	logger := log.Ctx(ctx).With().Logger()

	todos, err := c.store.List(ctx)
	if err != nil {
		logger.Error().Err(err).Caller().Msg("failed to load todos")
		return
	}

	c.view.Replace(todos)
	logger.Debug().Int("count", len(todos)).Msg("loaded todos")
}

// Create adds a todo with the trimmed text. Blank text is rejected with an
// alert before anything is sent.
func (c *TodoClient) Create(ctx context.Context, text string) {
	logger := log.Ctx(ctx).With().Logger()

	task := strings.TrimSpace(text)
	if task == "" {
		c.alerter.Alert(ctx, c.messages.EmptyTask)
		return
	}

	if err := c.store.Create(ctx, task); err != nil {
		logger.Error().Err(err).Caller().Msg("failed to create todo")
		c.alerter.Alert(ctx, c.messages.CreateFailed)
		return
	}

	c.view.ClearInput()
	c.Load(ctx)
}

// Toggle asks the store to flip the completion flag of id.
func (c *TodoClient) Toggle(ctx context.Context, id ID) {
	logger := log.Ctx(ctx).With().Str("todo_id", id.String()).Logger()

	if err := c.store.Toggle(ctx, id); err != nil {
		logger.Error().Err(err).Caller().Msg("failed to toggle todo")
		return
	}

	c.Load(ctx)
}

// Delete removes id once the user confirms. Nothing is sent otherwise.
func (c *TodoClient) Delete(ctx context.Context, id ID) {
	logger := log.Ctx(ctx).With().Str("todo_id", id.String()).Logger()

	if !c.confirmer.Confirm(ctx, c.messages.ConfirmDelete) {
		logger.Debug().Msg("delete declined")
		return
	}

	if err := c.store.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Caller().Msg("failed to delete todo")
		return
	}

	c.Load(ctx)
}
