package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/vecprep/internal/qdrantconv"
	prepareuc "github.com/kailas-cloud/vecprep/internal/usecase/prepare"
)

type buildOptions struct {
	argsFile  string
	target    string
	dateField string
}

func newBuildCmd() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build <operation>",
		Short: "Build one request from a YAML or JSON argument file and print it as JSON",
		Long: "Operations: " + strings.Join(opNames(), ", ") + ".\n" +
			"The argument file holds the builder arguments (table_name, vectors, ranges, ...).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.argsFile, "file", "f", "", "Argument file (YAML or JSON), - for stdin")
	cmd.Flags().StringVar(&opts.target, "target", "wire", "Output form: wire or qdrant")
	cmd.Flags().StringVar(&opts.dateField, "date-field", qdrantconv.DefaultDateField, "Qdrant payload key for dates")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runBuild(ctx context.Context, out io.Writer, opName string, opts buildOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	op, err := prepareuc.ParseOp(opName)
	if err != nil {
		return err
	}

	data, err := readArgs(opts.argsFile)
	if err != nil {
		return err
	}

	var args prepareuc.Args
	if err := yaml.Unmarshal(data, &args); err != nil {
		return fmt.Errorf("parse %s: %w", opts.argsFile, err)
	}

	svc := prepareuc.New(qdrantconv.New(qdrantconv.WithDateField(opts.dateField)))

	switch opts.target {
	case "wire":
		req, err := svc.Build(ctx, op, args)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(req) //nolint:wrapcheck // output is the whole point of the command
	case "qdrant":
		msg, err := svc.BuildQdrant(ctx, op, args)
		if err != nil {
			return err
		}
		body, err := protojson.MarshalOptions{Multiline: true, UseProtoNames: true}.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal qdrant request: %w", err)
		}
		_, err = fmt.Fprintln(out, string(body))
		return err //nolint:wrapcheck // output is the whole point of the command
	default:
		return fmt.Errorf("--target must be wire or qdrant, got %q", opts.target)
	}
}

func readArgs(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func opNames() []string {
	names := make([]string, len(prepareuc.Ops))
	for i, op := range prepareuc.Ops {
		names[i] = string(op)
	}
	return names
}
