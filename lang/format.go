package lang

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Output formats understood by [Format].
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Formats returns the names of the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatYAML, FormatJSON}
}

// Result is the printable form of an evaluated [Value].
type Result struct {
	Expr  string `json:"expr"  yaml:"expr"`
	Type  string `json:"type"  yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// NewResult describes v as the result of expr.
func NewResult(expr string, v Value) Result {
	r := Result{Expr: expr, Type: typeName(v.Type())}

	switch x := v.V.(type) {
	case *MethodGroup:
		r.Value = x.String()
	case TypeRef:
		r.Value = x.String()
	default:
		if !v.IsNull() {
			r.Value = x
		}
	}

	return r
}

// Format writes results to w in the named format.
func Format(ctx context.Context, w io.Writer, format string, indent int, results ...Result) error {
	switch strings.ToLower(format) {
	case FormatYAML:
		return formatYAML(ctx, w, indent, results)
	case FormatJSON:
		return formatJSON(w, indent, results)
	default:
		return formatText(w, results)
	}
}

func formatText(w io.Writer, results []Result) error {
	for _, r := range results {
		v := r.Value
		if v == nil {
			v = "null"
		}

		if _, err := fmt.Fprintf(w, "%s = %v (%s)\n", r.Expr, v, r.Type); err != nil {
			return err
		}
	}

	return nil
}

// formatYAML writes results as a YAML sequence.
func formatYAML(ctx context.Context, w io.Writer, indent int, results []Result) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, results, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

func formatJSON(w io.Writer, indent int, results []Result) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(results, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(results)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// Bindings decodes YAML variable bindings from r into env. Each top-level
// key becomes a variable holding the decoded value.
func Bindings(ctx context.Context, r io.Reader, env *Env) error {
	var vars map[string]any

	if err := yaml.NewDecoder(r).DecodeContext(ctx, &vars); err != nil && !errors.Is(err, io.EOF) {
		return ErrParse.Wrap(err)
	}

	for _, name := range slices.Sorted(maps.Keys(vars)) {
		env.Set(name, vars[name])
	}

	return nil
}

// DecodeValue decodes a YAML scalar or document into a Go value, for use as
// the right-hand side of an assignment.
func DecodeValue(text string) (any, error) {
	var v any

	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, ErrParse.Wrap(err)
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Uint64 && rv.Uint() <= 1<<63-1 {
		return int64(rv.Uint()), nil
	}

	return v, nil
}
