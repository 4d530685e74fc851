package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/farguessr/internal/frame"
	"github.com/robalobadob/farguessr/internal/httpserver"
	"github.com/robalobadob/farguessr/internal/render"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddr = serveAddr
		}
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runServer(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":5175", "Address to listen on (overrides HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServer(ctx context.Context) error {
	c, err := newCore(cfg)
	if err != nil {
		return err
	}
	links, err := frame.NewLinks(cfg.PublicURL, c.signer)
	if err != nil {
		return err
	}
	views, err := render.Load()
	if err != nil {
		return err
	}

	srv, err := httpserver.New(httpserver.Options{
		Addr:           cfg.HTTPAddr,
		Machine:        frame.NewMachine(c.gen),
		Links:          links,
		Verifier:       c.signer,
		Views:          views,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Str("public_url", cfg.PublicURL).
			Int("places", c.corpus.Len()).
			Msg("starting farguessr")
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
