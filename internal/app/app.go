package app

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"chatline/internal/chat"
	"chatline/internal/config"
	"chatline/internal/transport/repl"
)

// App wires the message store to the command session.
type App struct {
	session *repl.Session
	store   *chat.Store
	log     *zerolog.Logger
}

// New constructs the application over the given streams.
func New(cfg config.Config, logger *zerolog.Logger, in io.Reader, out, errw io.Writer) *App {
	store := chat.NewStore()
	session := repl.NewSession(store, in, out, errw, cfg.Prompt, logger)

	return &App{
		session: session,
		store:   store,
		log:     logger,
	}
}

// Run drives the command loop until end of input or context
// cancellation, then releases the store. A clean EOF returns nil.
func (a *App) Run(ctx context.Context) error {
	err := a.session.Run(ctx)
	a.cleanup()
	return err
}

// cleanup releases every stored message.
func (a *App) cleanup() {
	n := a.store.Len()
	a.store.Reset()
	a.log.Info().Int("messages", n).Msg("store released")
}
