package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"recipebox/internal/apperr"
	"recipebox/internal/models"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Validation messages returned to the client.
const (
	msgBadID         = "bad id"
	msgBadJSON       = "invalid JSON body"
	msgBadRating     = "rating must be 1-5"
	msgBadCategoryID = "bad category_id"
)

// body is a decoded JSON object with numbers kept as json.Number.
type body map[string]any

// categoryInput is a validated category request.
type categoryInput struct {
	Name string
}

// decodeBody reads the request body as a JSON object. An empty body is an
// empty object.
func decodeBody(w http.ResponseWriter, r *http.Request) (body, error) {
	if r.Body == nil {
		return body{}, nil
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, msgBadJSON, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return body{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, msgBadJSON, err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, apperr.Invalid(msgBadJSON)
	}
	return body(obj), nil
}

// parseID validates an id path parameter. Zero, non-numeric and
// fractional values are rejected.
func parseID(raw string) (int64, error) {
	f, ok := toNumber(raw)
	if !ok || f == 0 {
		return 0, apperr.Invalid(msgBadID)
	}
	id, ok := toInt64(f)
	if !ok {
		return 0, apperr.Invalid(msgBadID)
	}
	return id, nil
}

// parseCategoryInput validates a category create or rename body.
func parseCategoryInput(b body) (categoryInput, error) {
	name, err := requiredText(b, "name")
	if err != nil {
		return categoryInput{}, err
	}
	return categoryInput{Name: name}, nil
}

// parseRecipeInput validates a recipe create or update body. Checks run in
// field order and the first failure is returned.
func parseRecipeInput(b body) (models.RecipeInput, error) {
	var in models.RecipeInput
	var err error

	if in.Title, err = requiredText(b, "title"); err != nil {
		return in, err
	}
	if in.Ingredients, err = requiredText(b, "ingredients"); err != nil {
		return in, err
	}
	if in.Instructions, err = requiredText(b, "instructions"); err != nil {
		return in, err
	}
	if in.Rating, err = parseRating(b["rating"]); err != nil {
		return in, err
	}
	if in.CategoryID, err = parseCategoryID(b["category_id"]); err != nil {
		return in, err
	}
	return in, nil
}

// requiredText coerces field to trimmed text and rejects empty results.
func requiredText(b body, field string) (string, error) {
	s := strings.TrimSpace(toText(b[field]))
	if s == "" {
		return "", apperr.Invalid(field + " required")
	}
	return s, nil
}

// parseRating defaults a missing or null rating and enforces the bounds.
func parseRating(v any) (int, error) {
	if v == nil {
		return models.DefaultRating, nil
	}
	f, ok := toNumber(v)
	if !ok || f < models.MinRating || f > models.MaxRating || f != math.Trunc(f) {
		return 0, apperr.Invalid(msgBadRating)
	}
	return int(f), nil
}

// parseCategoryID maps missing or null to no category. Existence is
// checked by the store's foreign key on write.
func parseCategoryID(v any) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	f, ok := toNumber(v)
	if !ok {
		return nil, apperr.Invalid(msgBadCategoryID)
	}
	id, ok := toInt64(f)
	if !ok {
		return nil, apperr.Invalid(msgBadCategoryID)
	}
	return &id, nil
}

// toText converts a scalar JSON value to text. Falsy values (null, false,
// zero, "") become "". Objects and arrays are not text.
func toText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return ""
	case json.Number:
		if f, err := x.Float64(); err == nil && f == 0 {
			return ""
		}
		return x.String()
	default:
		return ""
	}
}

// toNumber converts a scalar JSON value or path segment to a number.
// Strings are trimmed and the empty string is zero; booleans are 0 or 1.
func toNumber(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toInt64 accepts whole numbers representable as int64.
func toInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
