package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zeusync/scenekit/internal/config"
	"github.com/zeusync/scenekit/internal/core/resource"
	"github.com/zeusync/scenekit/internal/core/scene"
	"github.com/zeusync/scenekit/internal/injector"
)

type options struct {
	configPath string
	root       string
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "scenetool",
		Short:         "Inspect, rewrite and serve scene resources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (default $"+config.EnvPath+")")
	cmd.PersistentFlags().StringVar(&opts.root, "root", "", "resource root, overrides the configuration")

	cmd.AddCommand(
		newDumpCommand(opts),
		newResaveCommand(opts),
		newPackCommand(opts),
		newServeCommand(opts),
	)
	return cmd
}

func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.root != "" {
		cfg.Resources.Root = o.root
		cfg.Resources.Store = config.StoreFS
	}
	return cfg, nil
}

func newDumpCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <scene>",
		Short: "Print a scene or prefab in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			sc, cleanup, err := injector.InitializeSceneContext(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			var text []byte
			if resource.Kind(args[0]) == "prefab" {
				p, err := resource.Load[scene.Prefab](sc.Resources, args[0])
				if err != nil {
					return err
				}
				text, err = p.Encode()
				if err != nil {
					return err
				}
			} else {
				s, err := resource.Load[scene.Scene](sc.Resources, args[0])
				if err != nil {
					return err
				}
				text, err = s.Encode()
				if err != nil {
					return err
				}
			}
			_, err = cmd.OutOrStdout().Write(text)
			return err
		},
	}
}

func newResaveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resave <scene>...",
		Short: "Open scenes and save them back, dropping values equal to their defaults or prefabs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			sc, cleanup, err := injector.InitializeSceneContext(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sc.Resources.Preload(cmd.Context(), args...); err != nil {
				return err
			}
			for _, path := range args {
				if err := sc.Manager.LoadScene(path); err != nil {
					return err
				}
				if err := sc.Manager.SaveScene(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d objects\n", path, len(sc.Manager.GameObjects()))
			}
			return nil
		},
	}
}

func newPackCommand(opts *options) *cobra.Command {
	var compress bool
	cmd := &cobra.Command{
		Use:   "pack <badger-dir>",
		Short: "Copy every resource of the resource root into a badger archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			dst, err := resource.OpenBadgerStore(resource.BadgerOptions{Dir: args[0], Compress: compress})
			if err != nil {
				return err
			}
			n, err := resource.Copy(dst, resource.NewFileStore(cfg.Resources.Root))
			if cerr := dst.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "packed %d resources into %s\n", n, args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&compress, "compress", true, "zstd-compress packed values")
	return cmd
}

func newServeCommand(opts *options) *cobra.Command {
	var scenePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the engine loop with the inspector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if scenePath != "" {
				cfg.Engine.Scene = scenePath
			}
			cfg.Inspector.Enabled = true

			e, cleanup, err := injector.InitializeEngine(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return e.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&scenePath, "scene", "", "scene to open at startup")
	return cmd
}

