package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formengine/pkg/form"
	"github.com/goliatone/go-formengine/pkg/openapi"
	"github.com/goliatone/go-formengine/pkg/schema"
	"github.com/goliatone/go-formengine/pkg/tui"
)

func main() {
	schemaPath := flag.String("schema", "", "form schema document (JSON or YAML)")
	openapiPath := flag.String("openapi", "", "OpenAPI document to derive the form from")
	opID := flag.String("operation", "", "operation ID whose request body defines the form (with -openapi)")
	valuesPath := flag.String("values", "", "JSON file with values to prefill")
	format := flag.String("format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	output := flag.String("output", "", "output file (stdout if empty)")
	verbose := flag.Bool("verbose", false, "log diagnostics to stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outputFormat, ok := tui.ParseOutputFormat(*format)
	if !ok {
		log.Fatalf("invalid format: %q", *format)
	}

	spec, err := loadSchema(ctx, *schemaPath, *openapiPath, *opID)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}

	options := []form.Option{form.WithLogger(newLogger(*verbose))}
	if *valuesPath != "" {
		values, err := readValues(*valuesPath)
		if err != nil {
			log.Fatalf("Failed to read values: %v", err)
		}
		options = append(options, form.WithValues(values))
	}

	fc, err := form.Bind(spec, options...)
	if err != nil {
		log.Fatalf("Failed to bind schema: %v", err)
	}

	out, err := tui.New(tui.WithOutputFormat(outputFormat)).Fill(ctx, fc)
	if err != nil {
		log.Fatalf("Failed to fill form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Submission written to %s\n", *output)
		return
	}
	fmt.Println(strings.TrimRight(string(out), "\n"))
}

func loadSchema(ctx context.Context, schemaPath, openapiPath, opID string) (schema.FormSchema, error) {
	switch {
	case schemaPath != "" && openapiPath != "":
		return schema.FormSchema{}, errors.New("use either -schema or -openapi, not both")
	case schemaPath != "":
		return schema.LoadFile(schemaPath)
	case openapiPath != "":
		if opID == "" {
			return schema.FormSchema{}, errors.New("-operation is required with -openapi")
		}
		doc, err := openapi.LoadFile(ctx, openapiPath)
		if err != nil {
			return schema.FormSchema{}, err
		}
		return openapi.FormSchema(ctx, doc, opID)
	default:
		return schema.FormSchema{}, errors.New("one of -schema or -openapi is required")
	}
}

func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return values, nil
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
