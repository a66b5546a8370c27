package main

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	v1 "github.com/helixml/criteria/infrastructure/api/v1"
	"github.com/helixml/criteria/infrastructure/codec"
	"github.com/helixml/criteria/internal/database"
	"github.com/helixml/criteria/internal/log"
)

func explainCmd() *cobra.Command {
	var (
		envFile string
		sqlOnly bool
	)

	cmd := &cobra.Command{
		Use:   "explain [file|-]",
		Short: "Render the query a criteria document describes",
		Long: `Read a YAML or JSON criteria document from a file, or from stdin when the
argument is "-" or missing, and print its normalized form with the SQL it
renders to. Nothing is executed against the database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runExplain(cmd, envFile, path, sqlOnly)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().BoolVar(&sqlOnly, "sql", false, "Print only the rendered SQL")

	return cmd
}

func runExplain(cmd *cobra.Command, envFile, path string, sqlOnly bool) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	logger := log.NewLoggerWithWriter(cmd.ErrOrStderr(), cfg.LogFormat(), cfg.LogLevel())

	a, err := newApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	in, closeInput, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer closeInput()

	c, err := a.decoder.Read(in)
	if err != nil {
		return err
	}

	sql, err := database.Explain(cmd.Context(), a.db, c)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sqlOnly {
		_, err = fmt.Fprintln(out, sql)
		return err
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v1.ExplainResponse{
		Criteria: codec.NewView(c),
		SQL:      sql,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open document: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
