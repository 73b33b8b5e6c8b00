package main

import (
	"fmt"

	lchttp "github.com/fwojciec/linkctx/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if err := deps.Config.Validate(); err != nil {
		deps.Logger.Warn("analyses will fail until configured", "err", err)
	}

	s := lchttp.NewServer()
	s.Addr = c.Addr
	s.Config = deps.Config
	s.AllowedOrigins = c.Origins
	s.Contextualizer = deps.Contextualizer
	s.Logger = deps.Logger

	if err := s.Open(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()
	return s.Close()
}
