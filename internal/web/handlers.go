package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/flatfiles/internal/column"
	"github.com/JonMunkholm/flatfiles/internal/logging"
)

var (
	stringType  = reflect.TypeFor[string]()
	numericType = reflect.TypeFor[pgtype.Numeric]()
)

type parseRequest struct {
	Value  *string `json:"value"`
	Record int     `json:"record,omitempty"`
	Line   int     `json:"line,omitempty"`
	Column int     `json:"column,omitempty"`
}

type parseResponse struct {
	Null  bool   `json:"null"`
	Value any    `json:"value"`
	Text  string `json:"text"`
}

type formatRequest struct {
	Value json.RawMessage `json:"value"`
}

type formatResponse struct {
	Text string `json:"text"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Columns int    `json:"columns"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Columns: s.catalog.Len()})
}

// handleListColumns returns every catalog column in file order.
func (s *Server) handleListColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Describe())
}

func (s *Server) handleGetColumn(w http.ResponseWriter, r *http.Request) {
	def, ok := s.column(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, column.Describe(def))
}

// handleParse runs one raw field through a column's parse pipeline and
// echoes the canonical text for the result.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	def, ok := s.column(w, r)
	if !ok {
		return
	}

	var req parseRequest
	if err := s.decode(w, r, &req); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if req.Value == nil {
		respondError(w, r, fmt.Errorf("%w: value is required", errBadRequest), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if req.Record > 0 {
		ctx = column.WithPosition(ctx, column.Position{Record: req.Record, Line: req.Line, Column: req.Column})
	}

	v, err := def.Parse(ctx, *req.Value)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	text, err := def.Format(ctx, v)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(ctx).Debug("field parsed", "column", def.Name(), "null", v == nil)
	writeJSON(w, http.StatusOK, parseResponse{Null: v == nil, Value: jsonValue(v, text), Text: text})
}

// handleFormat renders a JSON value through a column's format pipeline.
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	def, ok := s.column(w, r)
	if !ok {
		return
	}

	var req formatRequest
	if err := s.decode(w, r, &req); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	v, err := coerce(ctx, def, req.Value)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	text, err := def.Format(ctx, v)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(ctx).Debug("field formatted", "column", def.Name())
	writeJSON(w, http.StatusOK, formatResponse{Text: text})
}

// column resolves the {name} URL parameter, writing a 404 when it is unknown.
func (s *Server) column(w http.ResponseWriter, r *http.Request) (column.Definition, bool) {
	name := chi.URLParam(r, "name")
	def, ok := s.catalog.Get(name)
	if !ok {
		respondError(w, r, fmt.Errorf("%w: %q", errColumnNotFound, name), http.StatusNotFound)
		return nil, false
	}
	return def, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// coerce turns a JSON value into the column's value type. Strings go
// through the column's own parser; numbers convert to the numeric type.
// Anything else is passed on as decoded and left for Format to reject.
func coerce(ctx context.Context, def column.Definition, raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		if def.Type() == stringType {
			return x, nil
		}
		return def.Parse(ctx, x)
	case json.Number:
		return numberAs(def, x)
	default:
		return v, nil
	}
}

func numberAs(def column.Definition, n json.Number) (any, error) {
	t := def.Type()
	fail := func(err error) error {
		return &column.FormatError{Column: def.Name(), Value: n.String(), Type: t, Err: err}
	}

	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(n.String(), t.Bits())
		if err != nil {
			return nil, fail(err)
		}
		return reflect.ValueOf(f).Convert(t).Interface(), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(n.String(), 10, t.Bits())
		if err != nil {
			return nil, fail(err)
		}
		return reflect.ValueOf(i).Convert(t).Interface(), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(n.String(), 10, t.Bits())
		if err != nil {
			return nil, fail(err)
		}
		return reflect.ValueOf(u).Convert(t).Interface(), nil
	}

	if t == numericType {
		var d pgtype.Numeric
		if err := d.Scan(n.String()); err != nil {
			return nil, fail(err)
		}
		return d, nil
	}

	f, err := n.Float64()
	if err != nil {
		return nil, fail(err)
	}
	return f, nil
}

// jsonValue returns v in a form encoding/json can write. Values JSON has
// no literal for fall back to their formatted text.
func jsonValue(v any, text string) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return text
		}
	case float32:
		if f := float64(x); math.IsNaN(f) || math.IsInf(f, 0) {
			return text
		}
	case pgtype.Numeric:
		if x.NaN || x.InfinityModifier != pgtype.Finite {
			return text
		}
	}
	return v
}
