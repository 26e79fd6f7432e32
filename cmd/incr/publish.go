package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/incr/internal/config"
	"github.com/vango-dev/incr/internal/demo"
	"github.com/vango-dev/incr/pkg/engine"
	"github.com/vango-dev/incr/pkg/snapshot"
)

func publishCmd() *cobra.Command {
	var (
		refreshes int
		name      string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "publish [demo]",
		Short: "Render a demo and publish the HTML snapshot",
		Long: `Render a demo and publish the serialized HTML as a snapshot.

Snapshots go to the S3 bucket named by snapshot.bucket in the
configuration, or to snapshot.dir on disk when no bucket is set. S3
credentials are read from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.

Examples:
  incr publish card
  incr publish tabs --refresh 2 --name tabs/latest.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			demoName := cfg.Render.Demo
			if len(args) == 1 {
				demoName = args[0]
			}
			d, err := demo.Get(demoName)
			if err != nil {
				return err
			}

			logger := newLogger()
			html, err := renderDemo(d, refreshes, cfg.Render.Pretty, engine.WithLogger(logger))
			if err != nil {
				return err
			}

			pub, err := newPublisher(cfg, snapshot.WithLogger(logger))
			if err != nil {
				return err
			}
			if name == "" {
				name = snapshot.Name(d.Name, refreshes)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			loc, err := pub.Publish(ctx, name, []byte(html))
			if err != nil {
				return err
			}
			success("Published %s", loc)
			return nil
		},
	}

	cmd.Flags().IntVarP(&refreshes, "refresh", "r", 0, "Number of scripted update passes to run")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Snapshot name (default <demo>-<refreshes>.html)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Publish timeout")

	return cmd
}

// newPublisher selects S3 when a bucket is configured and disk otherwise.
func newPublisher(cfg *config.Config, opts ...snapshot.Option) (snapshot.Publisher, error) {
	if cfg.UsesS3() {
		client := snapshot.NewS3Client(cfg.Snapshot.Region, cfg.Snapshot.Endpoint)
		return snapshot.NewS3Publisher(client, cfg.Snapshot.Bucket, cfg.Snapshot.Prefix, opts...), nil
	}
	return snapshot.NewDiskPublisher(cfg.SnapshotPath(), opts...)
}
