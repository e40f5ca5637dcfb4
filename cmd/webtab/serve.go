package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	webtabgin "github.com/fwojciec/webtab/gin"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Run executes the serve command. It blocks until the context is cancelled
// and then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	gin.SetMode(gin.ReleaseMode)
	router := webtabgin.NewRouter(deps.Service, deps.Runs,
		webtabgin.WithLogger(deps.Logger),
		webtabgin.WithAPIKeys(c.APIKeys...),
	)

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	deps.Logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
