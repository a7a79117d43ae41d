package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-project-scheduling/internal/config"
	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-project-scheduling/internal/graphio"
	"github.com/KasumiMercury/primind-project-scheduling/internal/infra/database"
	"github.com/KasumiMercury/primind-project-scheduling/internal/infra/repository"
	"github.com/KasumiMercury/primind-project-scheduling/internal/service/cpm"
	"github.com/KasumiMercury/primind-project-scheduling/internal/service/cycle"
	"github.com/KasumiMercury/primind-project-scheduling/internal/service/schedule"
)

func loadGraph(path string) (*graphio.GraphDocument, *domain.ProjectGraph, error) {
	r, err := openGraphFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	doc, err := graphio.Decode(r)
	if err != nil {
		return nil, nil, err
	}
	graph, err := doc.ToDomain()
	if err != nil {
		return nil, nil, err
	}
	return doc, graph, nil
}

func computeCmd() *cobra.Command {
	var (
		file            string
		asJSON          bool
		projectStart    string
		defaultDuration int
		maxDepth        int
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute early/late dates, float and the critical path",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, graph, err := loadGraph(file)
			if err != nil {
				return err
			}

			start, err := doc.StartDate()
			if err != nil {
				return err
			}
			if projectStart != "" {
				if start, err = graphio.ParseDate(projectStart); err != nil {
					return err
				}
			}

			opts := cpm.DefaultOptions()
			opts.DefaultDurationDays = defaultDuration
			opts.MaxWalkDepth = maxDepth

			svc := schedule.NewService(nil, nil, nil, nil, nil, nil, opts, 0)
			computed, err := svc.DryRun(cmd.Context(), graph, start)
			if err != nil {
				var cycleErr *domain.CycleDetectedError
				if errors.As(err, &cycleErr) {
					printCycles(cmd.ErrOrStderr(), cycleErr.Cycles)
					return errCyclesFound
				}
				return err
			}

			view := graphio.NewScheduleView(computed)
			if asJSON {
				return outputJSON(cmd.OutOrStdout(), view)
			}
			printSchedule(cmd.OutOrStdout(), graph, view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Graph file (YAML or JSON, - for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Machine-readable JSON output")
	cmd.Flags().StringVar(&projectStart, "project-start", "", "Start date for tasks without predecessors (default: today)")
	cmd.Flags().IntVar(&defaultDuration, "default-duration", cpm.DefaultDurationDays, "Duration in days for tasks without one")
	cmd.Flags().IntVar(&maxDepth, "max-depth", cpm.DefaultMaxWalkDepth, "Maximum dependency chain depth")

	return cmd
}

func validateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a graph for dependency cycles and dangling references",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, graph, err := loadGraph(file)
			if err != nil {
				return err
			}

			g := cpm.BuildGraph(cmd.Context(), graph.Tasks, graph.Dependencies, graph.Constraints)
			out := cmd.OutOrStdout()
			for _, s := range g.Skipped() {
				fmt.Fprintf(out, "skipped %s %d: %s\n", s.Kind, s.ID, s.Message)
			}

			cycles := cycle.Validate(g.Tasks(), g.Dependencies())
			if len(cycles) > 0 {
				printCycles(cmd.ErrOrStderr(), cycles)
				return errCyclesFound
			}

			fmt.Fprintf(out, "ok: %d tasks, %d dependencies, no cycles\n", g.TaskCount(), g.EdgeCount())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Graph file (YAML or JSON, - for stdin)")
	return cmd
}

func importCmd() *cobra.Command {
	var (
		file   string
		driver string
		dsn    string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace a project's stored graph with the contents of a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, graph, err := loadGraph(file)
			if err != nil {
				return err
			}
			if graph.ProjectID <= 0 {
				return fmt.Errorf("graph file must set a positive project_id")
			}

			db, err := database.Open(cmd.Context(), &config.DatabaseConfig{
				Driver:      driver,
				DSN:         dsn,
				AutoMigrate: true,
			})
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := repository.NewGraphRepository(db).ReplaceGraph(cmd.Context(), graph); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported project %d: %d tasks, %d dependencies, %d constraints\n",
				graph.ProjectID, len(graph.Tasks), len(graph.Dependencies), len(graph.Constraints))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Graph file (YAML or JSON, - for stdin)")
	cmd.Flags().StringVar(&driver, "driver", config.DriverSQLite, "Database driver (sqlite or postgres)")
	cmd.Flags().StringVar(&dsn, "dsn", "file:scheduling.db?_pragma=foreign_keys(1)", "Database DSN")
	return cmd
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSchedule(w io.Writer, graph *domain.ProjectGraph, view graphio.ScheduleView) {
	names := make(map[int64]string, len(graph.Tasks))
	for _, t := range graph.Tasks {
		names[int64(t.ID)] = t.Name
	}

	fmt.Fprintf(w, "Project %d: %s -> %s\n\n", view.ProjectID, view.ProjectStart, view.ProjectFinish)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tES\tEF\tLS\tLF\tFLOAT\tCRITICAL")
	for _, r := range view.Results {
		critical := ""
		if r.IsCritical {
			critical = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.TaskID, names[r.TaskID], r.EarlyStart, r.EarlyFinish, r.LateStart, r.LateFinish, r.TotalFloatDays, critical)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nCritical path: ")
	for i, id := range view.CriticalPath {
		if i > 0 {
			fmt.Fprint(w, " -> ")
		}
		fmt.Fprint(w, id)
	}
	fmt.Fprintln(w)

	for _, s := range view.Skipped {
		fmt.Fprintf(w, "skipped %s %d: %s\n", s.Kind, s.ID, s.Message)
	}
}

func printCycles(w io.Writer, cycles []domain.CycleError) {
	fmt.Fprintf(w, "%d dependency cycle(s):\n", len(cycles))
	for _, c := range cycles {
		fmt.Fprintf(w, "  %s\n", c.Error())
	}
}
