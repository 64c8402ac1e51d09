package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mmrzaf/rowgen/internal/app"
	"github.com/mmrzaf/rowgen/internal/config"
	"github.com/mmrzaf/rowgen/internal/domain"
	"github.com/mmrzaf/rowgen/internal/generators"
	"github.com/mmrzaf/rowgen/internal/infra/repos/history"
	"github.com/mmrzaf/rowgen/internal/infra/repos/presets"
	"github.com/mmrzaf/rowgen/internal/logging"
	"github.com/mmrzaf/rowgen/internal/registry"
	"github.com/mmrzaf/rowgen/internal/schema"
	"github.com/mmrzaf/rowgen/internal/validation"
)

var (
	presetsDir string
	historyDB  string
	logLevel   string
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "rowgen",
		Short: "Synthetic record generator",
	}

	rootCmd.PersistentFlags().StringVar(&presetsDir, "presets-dir", cfg.PresetsDir, "Presets directory")
	rootCmd.PersistentFlags().StringVar(&historyDB, "history-db", cfg.HistoryDB, "History DB (sqlite path or postgres:// DSN)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level")

	rootCmd.AddCommand(generateCmd(cfg))
	rootCmd.AddCommand(presetCmd())
	rootCmd.AddCommand(typesCmd())
	rootCmd.AddCommand(capabilitiesCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openHistoryRepo() (history.Repository, error) {
	if historyDB == "" {
		return nil, nil
	}
	var repo history.Repository
	if strings.HasPrefix(historyDB, "postgres://") || strings.HasPrefix(historyDB, "postgresql://") {
		repo = history.NewPostgresRepository(historyDB)
	} else {
		repo = history.NewSQLiteRepository(historyDB)
	}
	if err := repo.Init(); err != nil {
		return nil, err
	}
	return repo, nil
}

func generateCmd(cfg *config.Config) *cobra.Command {
	var (
		fieldsJSON string
		schemaPath string
		presetName string
		count      int
		seed       int64
		hasSeed    bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate records from a field schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger(logLevel)

			var fields []domain.FieldDescriptor
			presetCount := 0
			var presetSeed *int64

			switch {
			case fieldsJSON != "":
				raw, err := schema.ResolveBodyFields(fieldsJSON)
				if err != nil {
					return err
				}
				fields = schema.Normalize(raw)
			case schemaPath != "":
				preset, err := presets.NewFileRepository(presetsDir).GetByPath(schemaPath)
				if err != nil {
					return err
				}
				fields, presetCount, presetSeed = preset.Fields, preset.Count, preset.Seed
			case presetName != "":
				preset, err := presets.NewFileRepository(presetsDir).Get(presetName)
				if err != nil {
					return err
				}
				fields, presetCount, presetSeed = preset.Fields, preset.Count, preset.Seed
			default:
				return fmt.Errorf("one of --fields, --schema or --preset is required")
			}

			var countArg any
			if count > 0 {
				countArg = count
			} else if presetCount > 0 {
				countArg = presetCount
			}
			var seedArg any
			if hasSeed {
				seedArg = seed
			} else if presetSeed != nil {
				seedArg = *presetSeed
			}

			req, err := validation.NewValidator().ValidateRequest(fields, countArg, seedArg)
			if err != nil {
				return err
			}

			historyRepo, err := openHistoryRepo()
			if err != nil {
				return err
			}
			if historyRepo != nil {
				defer historyRepo.Close()
			}

			capRegistry := registry.DefaultCapabilityRegistry()
			valueGen := generators.NewValueGenerator(capRegistry, cfg.DateWindow, logger)
			service := app.NewRecordService(valueGen, historyRepo, logger)

			rows, err := service.Generate(req, domain.HistorySourceCLI)
			if err != nil {
				return err
			}

			return printRows(rows, req.Fields, format)
		},
	}

	cmd.Flags().StringVar(&fieldsJSON, "fields", "", "Field schema as a JSON array")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to a schema file (YAML or JSON)")
	cmd.Flags().StringVar(&presetName, "preset", "", "Preset name from the presets directory")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of rows")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Seed for deterministic output")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table|json|csv)")
	cmd.Flags().Lookup("seed").NoOptDefVal = "0"
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasSeed = cmd.Flags().Changed("seed")
	}

	return cmd
}

func printRows(rows []domain.Row, fields []domain.FieldDescriptor, format string) error {
	names := make([]string, len(fields))
	for i, fd := range fields {
		names[i] = fd.Name
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil

	case "csv":
		w := csv.NewWriter(os.Stdout)
		if err := w.Write(names); err != nil {
			return err
		}
		for _, row := range rows {
			record := make([]string, len(names))
			for i, name := range names {
				if v, ok := row.Get(name); ok {
					record[i] = fmt.Sprint(v)
				}
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()

	default:
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t")))
		for _, row := range rows {
			cells := make([]string, len(names))
			for i, name := range names {
				if v, ok := row.Get(name); ok {
					cells[i] = fmt.Sprint(v)
				}
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}
		return w.Flush()
	}
}

func presetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage preset schemas",
	}

	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := presets.NewFileRepository(presetsDir).List()
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFIELDS\tDESCRIPTION")
			for _, p := range list {
				fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, len(p.Fields), p.Description)
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show preset details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := presets.NewFileRepository(presetsDir).Get(args[0])
			if err != nil {
				return err
			}

			data, _ := yaml.Marshal(preset)
			fmt.Println(string(data))
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <name|path>",
		Short: "Validate a preset schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := presets.NewFileRepository(presetsDir)

			var preset *domain.Preset
			var err error
			if strings.Contains(args[0], "/") || strings.HasSuffix(args[0], ".yaml") ||
				strings.HasSuffix(args[0], ".yml") || strings.HasSuffix(args[0], ".json") {
				preset, err = repo.GetByPath(args[0])
			} else {
				preset, err = repo.Get(args[0])
			}
			if err != nil {
				return err
			}

			var countArg any
			if preset.Count > 0 {
				countArg = preset.Count
			}
			var seedArg any
			if preset.Seed != nil {
				seedArg = *preset.Seed
			}
			if _, err := validation.NewValidator().ValidateRequest(preset.Fields, countArg, seedArg); err != nil {
				fmt.Printf("Validation failed: %v\n", err)
				return err
			}

			fmt.Printf("Preset '%s' is valid\n", preset.Name)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd, validateCmd)
	return cmd
}

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported field types",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range domain.FieldTypes() {
				fmt.Println(t)
			}
			return nil
		},
	}
}

func capabilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "List capability paths usable in a field's related attribute",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range registry.DefaultCapabilityRegistry().List() {
				fmt.Println(path)
			}
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect generation history",
	}

	var limit int
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent generation calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openHistoryRepo()
			if err != nil {
				return err
			}
			if repo == nil {
				return fmt.Errorf("--history-db is required")
			}
			defer repo.Close()

			list, err := repo.List(limit)
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSOURCE\tFIELDS\tROWS\tSTATUS\tCREATED")
			for _, rec := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
					rec.ID[:8], rec.Source, rec.FieldCount, rec.RowCount, rec.Status, rec.CreatedAt)
			}
			return w.Flush()
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Limit results")
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one generation record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openHistoryRepo()
			if err != nil {
				return err
			}
			if repo == nil {
				return fmt.Errorf("--history-db is required")
			}
			defer repo.Close()

			rec, err := repo.Get(args[0])
			if err != nil {
				return err
			}

			data, _ := yaml.Marshal(rec)
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}
