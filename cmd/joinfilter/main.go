package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"joinfilter"
	"joinfilter/annotate"
	nt "joinfilter/entity"
	"joinfilter/filterbar"
	"joinfilter/store/duck"
	"joinfilter/util"
)

//go:embed sample.yaml
var sample []byte

// Config is the top-level config read from --config.
type Config struct {
	Reconcile joinfilter.Config `yaml:"reconcile"`
	LogFile   string            `yaml:"log_file"`
	MaxLen    int               `yaml:"max_len"`
}

type flags struct {
	config         string
	filters        string
	candidate      string
	queries        string
	entity         string
	entityDisabled bool
	page           string
	stripMeta      bool
}

// app is what every command runs against
type app struct {
	cfg    Config
	ctx    context.Context
	logger nt.Logger
	closer func()
}

func main() {

	err := rootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {

	fl := &flags{}

	root := &cobra.Command{
		Use:          "joinfilter",
		Short:        "Reconcile dashboard filter arrays around relational join filters",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&fl.config, "config", "joinfilter.yaml", "config file, defaults apply when missing")
	root.PersistentFlags().StringVar(&fl.filters, "filters", "", "yaml or json filter array")
	root.PersistentFlags().StringVar(&fl.queries, "queries", "", "yaml list of saved queries")
	root.PersistentFlags().StringVar(&fl.entity, "entity", "", "selected entity uri")
	root.PersistentFlags().BoolVar(&fl.entityDisabled, "entity-disabled", false, "selected entity is disabled")
	root.PersistentFlags().StringVar(&fl.page, "page", "", "page class overriding config: dashboard, visualize or other")

	merge := &cobra.Command{
		Use:   "merge",
		Short: "Merge a candidate filter into a filter array and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fl.run(func(ap *app) error { return ap.merge(cmd, fl) })
		},
	}
	merge.Flags().StringVar(&fl.candidate, "candidate", "", "yaml or json candidate filter")
	merge.Flags().BoolVar(&fl.stripMeta, "strip-meta", false, "strip meta from join candidates")

	annotateCmd := &cobra.Command{
		Use:   "annotate",
		Short: "Mark filters depending on the selected entity and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fl.run(func(ap *app) error { return ap.annotate(cmd, fl) })
		},
	}

	queries := &cobra.Command{
		Use:   "queries",
		Short: "List saved queries and whether they depend on the selected entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fl.run(func(ap *app) error { return ap.listQueries(cmd, fl) })
		},
	}

	bar := &cobra.Command{
		Use:   "bar",
		Short: "Browse filters and their entity marks in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fl.run(func(ap *app) error { return ap.bar(fl) })
		},
	}

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample config unless one exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.SampleConfig(sample, fl.config, 0644)
		},
	}

	root.AddCommand(merge, annotateCmd, queries, bar, sampleCmd)
	return root
}

func (fl *flags) run(fn func(*app) error) (err error) {

	ap, err := fl.setup()
	if err != nil {
		return
	}
	defer ap.closer()

	err = fn(ap)
	if err != nil {
		ap.logger.Error(ap.ctx, "command failed", err)
	}
	return
}

func (fl *flags) setup() (ap *app, err error) {

	cfg := Config{
		LogFile: "joinfilter.log",
		MaxLen:  999,
	}

	_, statErr := os.Stat(fl.config)
	if statErr == nil {
		err = util.LoadConfig(&cfg, fl.config)
		if err != nil {
			return
		}
	}
	if fl.page != "" {
		cfg.Reconcile.Page = fl.page
	}
	if fl.stripMeta {
		cfg.Reconcile.StripMeta = true
	}

	logFile := util.OpenLog(cfg.LogFile, 0644)
	lgr := &sabot.Sabot{Writer: logFile, MaxLen: cfg.MaxLen}

	ap = &app{
		cfg:    cfg,
		ctx:    lgr.WithFields(context.Background(), "app", "joinfilter"),
		logger: lgr,
		closer: func() { util.CloseLog(logFile) },
	}
	return
}

// store opens a query store, loading --queries when given
func (ap *app) store(fl *flags) (dk *duck.Duck, err error) {

	dk, err = duck.New(ap.logger)
	if err != nil {
		return
	}

	if fl.queries == "" {
		return
	}

	err = dk.Load(ap.ctx, fl.queries)
	if err != nil {
		dk.Close()
		dk = nil
	}
	return
}

func (ap *app) merge(cmd *cobra.Command, fl *flags) (err error) {

	if fl.filters == "" || fl.candidate == "" {
		err = errors.Errorf("both --filters and --candidate are required")
		return
	}

	filters, err := util.LoadFilters(fl.filters)
	if err != nil {
		return
	}
	candidate, err := util.LoadFilter(fl.candidate)
	if err != nil {
		return
	}

	rc := ap.cfg.Reconcile.New(nil, ap.logger)
	rc.Apply(ap.ctx, &filters, candidate)

	err = util.WriteFilters(cmd.OutOrStdout(), filters)
	return
}

func (ap *app) annotate(cmd *cobra.Command, fl *flags) (err error) {

	if fl.filters == "" {
		err = errors.Errorf("--filters is required")
		return
	}

	filters, err := util.LoadFilters(fl.filters)
	if err != nil {
		return
	}

	dk, err := ap.store(fl)
	if err != nil {
		return
	}
	defer dk.Close()

	rc := ap.cfg.Reconcile.New(dk, ap.logger)
	sel := annotate.Selection{URI: fl.entity, Disabled: fl.entityDisabled}

	filters, err = rc.Annotate(ap.ctx, filters, sel)
	if err != nil {
		return
	}

	err = util.WriteFilters(cmd.OutOrStdout(), filters)
	return
}

func (ap *app) listQueries(cmd *cobra.Command, fl *flags) (err error) {

	dk, err := ap.store(fl)
	if err != nil {
		return
	}
	defer dk.Close()

	hits, err := dk.Find(ap.ctx)
	if err != nil {
		return
	}

	out := cmd.OutOrStdout()
	for _, query := range hits.Hits {
		depends := "-"
		if annotate.DependsOnEntity(query) {
			depends = "entity"
		}
		fmt.Fprintf(out, "%-20s %-7s %s\n", query.ID, depends, query.Title)

		for _, token := range annotate.UnrecognizedPlaceholders(query) {
			fmt.Fprintf(out, "%-20s warning: unrecognized placeholder %s\n", "", token)
		}
	}
	fmt.Fprintf(out, "%d queries\n", hits.Total)
	return
}

func (ap *app) bar(fl *flags) (err error) {

	var filters nt.Filters
	if fl.filters != "" {
		filters, err = util.LoadFilters(fl.filters)
		if err != nil {
			return
		}
	}

	dk, err := ap.store(fl)
	if err != nil {
		return
	}
	defer dk.Close()

	rc := ap.cfg.Reconcile.New(dk, ap.logger)
	sel := annotate.Selection{URI: fl.entity, Disabled: fl.entityDisabled}

	model := filterbar.New(ap.ctx, filters, sel, rc.Annotate, ap.logger)
	_, err = tea.NewProgram(model).Run()
	err = errors.Wrapf(err, "failed to run filter bar")
	return
}
