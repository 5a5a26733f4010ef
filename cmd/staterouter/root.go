package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/fasthttp/staterouter"
	"github.com/fasthttp/staterouter/tree"
	"github.com/spf13/cobra"
)

// cli holds what the sub-commands share once the root command has loaded
// the configuration.
type cli struct {
	out    io.Writer
	errOut io.Writer

	envFile  string
	routes   string
	basePath string

	cfg    *Config
	logger *slog.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: os.Stderr}

	rootCmd := &cobra.Command{
		Use:   "staterouter",
		Short: "Resolve, generate and serve named routes",
		Long: `staterouter loads a JSON file of named route patterns and
resolves locations against it, generates links from route names,
shows the routes a transition exits and enters, or serves the
routes over HTTP.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.envFile, "env-file", ".env", "environment file loaded before parsing the configuration")
	flags.StringVarP(&c.routes, "routes", "r", "", "routes file (overrides STATEROUTER_ROUTES)")
	flags.StringVar(&c.basePath, "base-path", "", "base path (overrides STATEROUTER_BASE_PATH)")

	rootCmd.AddCommand(
		c.matchCmd(),
		c.linkCmd(),
		c.diffCmd(),
		c.routesCmd(),
		c.serveCmd(),
	)

	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(c.envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("routes") {
		cfg.Routes = c.routes
	}

	if flags.Changed("base-path") {
		cfg.BasePath = c.basePath
	}

	logger, err := newLogger(cfg, c.errOut)
	if err != nil {
		return err
	}

	c.cfg, c.logger = cfg, logger

	return nil
}

func (c *cli) router() (*staterouter.Router, error) {
	r := staterouter.New()
	r.BasePath = c.cfg.BasePath
	r.Scheme = c.cfg.Scheme
	r.Host = c.cfg.Host
	r.Logger = c.logger

	if err := loadRoutesFile(r, c.cfg.Routes); err != nil {
		return nil, err
	}

	c.logger.Debug("routes loaded", slog.String("file", c.cfg.Routes), slog.Int("count", len(r.Routes())))

	return r, nil
}

func (c *cli) matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <location>",
		Short: "Print the route and params matching a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.router()
			if err != nil {
				return err
			}

			t, err := r.Match(r.Location(args[0]))
			if err != nil {
				return err
			}

			if t == nil {
				return fmt.Errorf("%w: %s", staterouter.ErrNotFound, args[0])
			}

			fmt.Fprintln(c.out, t.To().Name())
			printParams(c.out, t.Params())

			return nil
		},
	}
}

func (c *cli) linkCmd() *cobra.Command {
	var absolute bool

	cmd := &cobra.Command{
		Use:   "link <name> [key=value...]",
		Short: "Generate the link of a named route",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}

			r, err := c.router()
			if err != nil {
				return err
			}

			link, err := r.Link(args[0], params, &tree.LinkOptions{Absolute: absolute})
			if err != nil {
				return err
			}

			fmt.Fprintln(c.out, link)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&absolute, "absolute", "a", false, "prepend scheme and host")

	return cmd
}

func (c *cli) routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the routes depth first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.router()
			if err != nil {
				return err
			}

			for _, name := range r.Routes() {
				route, err := r.Fetch(name)
				if err != nil {
					return err
				}

				line := name + "\t/" + route.Pattern()
				if vars := route.QueryVariables(); len(vars) > 0 {
					line += "?" + strings.Join(vars, "&")
				}

				if content, _ := route.Content().(staterouter.Content); content.RedirectTo != "" {
					line += "\t-> " + content.RedirectTo
				}

				fmt.Fprintln(c.out, line)
			}

			return nil
		},
	}
}

// parseParams turns key=value arguments into params. A repeated key
// collects its values in a list.
func parseParams(args []string) (tree.Params, error) {
	params := make(tree.Params, len(args))

	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid param '%s', expected key=value", arg)
		}

		switch prev := params[k].(type) {
		case nil:
			params[k] = v
		case string:
			params[k] = []string{prev, v}
		case []string:
			params[k] = append(prev, v)
		}
	}

	return params, nil
}

func printParams(w io.Writer, params tree.Params) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "  %s=%v\n", k, params[k])
	}
}
