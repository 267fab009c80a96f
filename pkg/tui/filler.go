package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formengine/internal/coerce"
	"github.com/goliatone/go-formengine/pkg/form"
	"github.com/goliatone/go-formengine/pkg/schema"
)

// Filler walks a bound form on the terminal: it prompts for every active
// field, reports check failures and re-prompts, then submits and serializes
// the result.
type Filler struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

// New constructs a Filler with defaults (survey driver, JSON output).
func New(options ...Option) *Filler {
	f := &Filler{outputFormat: OutputFormatJSON}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// ContentType reports the media type produced by Fill.
func (f *Filler) ContentType() string {
	switch f.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Fill prompts for each visible, enabled and writable field in schema order.
// Conditions are re-evaluated after every answer, so fields revealed by a
// later answer are asked for in a follow-up pass. Readonly, hidden and
// disabled fields keep their current values.
func (f *Filler) Fill(ctx context.Context, fc *form.Context) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if fc == nil {
		return nil, errors.New("tui: form context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := fc.Schema().Fields
	if title := fc.Schema().Title; title != "" {
		if err := f.info(ctx, title); err != nil {
			return nil, err
		}
	}

	prompted := make(map[string]bool, len(fields))
	for pass := 0; pass <= len(fields); pass++ {
		asked := false
		for _, spec := range fields {
			state, err := fc.RuntimeState(spec.Name)
			if err != nil {
				return nil, err
			}
			if !promptable(state) || (prompted[spec.Name] && state.Valid()) {
				continue
			}
			if err := f.promptField(ctx, fc, spec); err != nil {
				return nil, err
			}
			prompted[spec.Name] = true
			asked = true
		}

		values, err := fc.Submit()
		if err == nil {
			return f.finish(values)
		}
		var submitErr *form.SubmitError
		if !errors.As(err, &submitErr) {
			return nil, err
		}
		if !asked {
			return nil, err
		}
	}
	return nil, ErrUnsettled
}

func promptable(state form.FieldRuntimeState) bool {
	return state.Visible && state.Enabled && !state.Readonly
}

func (f *Filler) finish(values map[string]any) ([]byte, error) {
	if f.submitTransformer != nil {
		var err error
		values, err = f.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return f.serialize(values)
}

// promptField asks for spec until its checks pass or it stops being active.
func (f *Filler) promptField(ctx context.Context, fc *form.Context, spec schema.FieldSpec) error {
	label := f.theme.PromptPrefix + displayLabel(spec)
	for {
		current, err := fc.Value(spec.Name)
		if err != nil {
			return err
		}
		value, ok, err := f.ask(ctx, spec, label, current)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if err := fc.SetValue(spec.Name, value); err != nil {
			return err
		}
		if err := fc.Touch(spec.Name); err != nil {
			return err
		}
		state, err := fc.RuntimeState(spec.Name)
		if err != nil {
			return err
		}
		if state.Valid() || !promptable(state) {
			return nil
		}
		for _, failure := range state.VisibleErrors() {
			if err := f.fail(ctx, spec, failure.Message); err != nil {
				return err
			}
		}
	}
}

// ask runs one prompt for spec. ok is false when the answer could not be
// interpreted and the prompt should be repeated.
func (f *Filler) ask(ctx context.Context, spec schema.FieldSpec, label string, current any) (any, bool, error) {
	help := displayHelp(spec)

	switch spec.Type {
	case schema.FieldTypeCheckbox:
		def, _ := current.(bool)
		answer, err := f.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def, Help: help})
		return answer, err == nil, err

	case schema.FieldTypeDropdown:
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      spec.Options,
			DefaultIndex: indexOf(spec.Options, coerce.String(current)),
			Help:         help,
		})
		if err != nil {
			return nil, false, err
		}
		if idx < 0 || idx >= len(spec.Options) {
			return nil, false, f.fail(ctx, spec, "invalid selection")
		}
		return spec.Options[idx], true, nil

	case schema.FieldTypeMultiselect:
		indices, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  spec.Options,
			Defaults: selectedIndices(spec.Options, current),
			Help:     help,
		})
		if err != nil {
			return nil, false, err
		}
		selected := valuesFromIndices(spec.Options, indices)
		out := make([]any, len(selected))
		for i, option := range selected {
			out[i] = option
		}
		return out, true, nil

	case schema.FieldTypeNumber:
		raw, err := f.driver.Input(ctx, InputConfig{Message: label, Default: coerce.String(current), Help: help})
		if err != nil {
			return nil, false, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, true, nil
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false, f.fail(ctx, spec, "enter a number")
		}
		return n, true, nil

	case schema.FieldTypeTextarea:
		answer, err := f.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: coerce.String(current), Help: help})
		return answer, err == nil, err

	default:
		answer, err := f.driver.Input(ctx, InputConfig{Message: label, Default: coerce.String(current), Help: help})
		return answer, err == nil, err
	}
}

func (f *Filler) fail(ctx context.Context, spec schema.FieldSpec, message string) error {
	return f.driver.Info(ctx, fmt.Sprintf("%s%s: %s", f.theme.ErrorPrefix, displayLabel(spec), message))
}

func (f *Filler) info(ctx context.Context, message string) error {
	return f.driver.Info(ctx, f.theme.InfoPrefix+message)
}

func (f *Filler) serialize(values map[string]any) ([]byte, error) {
	switch f.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(spec schema.FieldSpec) string {
	if spec.Label != "" {
		return spec.Label
	}
	return spec.Name
}

func displayHelp(spec schema.FieldSpec) string {
	if spec.Tooltip != "" {
		return spec.Tooltip
	}
	return spec.Placeholder
}

func selectedIndices(options []string, current any) []int {
	items, ok := coerce.Sequence(current)
	if !ok {
		return nil
	}
	values := make([]string, len(items))
	for i, item := range items {
		values[i] = coerce.String(item)
	}
	return indicesOf(options, values)
}

func encodeForm(values map[string]any) string {
	out := url.Values{}
	for key, value := range values {
		if items, ok := coerce.Sequence(value); ok {
			for _, item := range items {
				out.Add(key+"[]", coerce.String(item))
			}
			continue
		}
		out.Set(key, coerce.String(value))
	}
	return out.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, coerce.String(values[key]))
	}
	return b.String()
}
