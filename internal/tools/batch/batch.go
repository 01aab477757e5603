package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Entry statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MaxEntries bounds the size of a single batch.
const MaxEntries = 25

// DefaultWorkers is the number of entries processed concurrently.
const DefaultWorkers = 4

// Result is the outcome of one entry of a batch
type Result struct {
	Key    string `json:"key"`
	Status string `json:"status"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchResult represents the aggregated results of a batch operation
type BatchResult struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// ParseStringOrArray parses a parameter that can be a single string, an
// array of strings, or a string holding a JSON array of strings. Some
// clients send arrays in the last form.
func ParseStringOrArray(param any, paramName string) ([]string, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	var result []string

	switch v := param.(type) {
	case string:
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		var decoded []string
		if strings.HasPrefix(strings.TrimSpace(v), "[") && json.Unmarshal([]byte(v), &decoded) == nil {
			if len(decoded) == 0 {
				return nil, fmt.Errorf("%s cannot be empty", paramName)
			}
			return checkEntries(decoded, paramName)
		}
		result = []string{v}
	case []string:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		result = v
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", paramName, i)
			}
			result = append(result, str)
		}
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
	}

	return checkEntries(result, paramName)
}

func checkEntries(entries []string, paramName string) ([]string, error) {
	if len(entries) > MaxEntries {
		return nil, fmt.Errorf("%s has %d entries, at most %d are allowed", paramName, len(entries), MaxEntries)
	}
	for i, e := range entries {
		if strings.TrimSpace(e) == "" {
			return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
		}
	}
	return entries, nil
}

// Summarize counts the outcomes of results
func Summarize(results []Result) BatchResult {
	br := BatchResult{
		Total:   len(results),
		Results: results,
	}

	for _, r := range results {
		if r.Status == StatusSuccess {
			br.Successful++
		} else {
			br.Failed++
		}
	}
	return br
}

// FormatResults creates an indented JSON document from batch results
func FormatResults(results []Result) (string, error) {
	data, err := json.MarshalIndent(Summarize(results), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Process runs fn for every key with at most workers calls in flight.
// Results are in key order. A failing key does not stop the others; keys
// not yet started when ctx is done fail with the context error.
func Process(ctx context.Context, keys []string, workers int, fn func(ctx context.Context, key string) (any, error)) []Result {
	if workers < 1 {
		workers = DefaultWorkers
	}

	results := make([]Result, len(keys))

	// Entry errors go into results; the group itself never fails.
	var g errgroup.Group
	g.SetLimit(workers)

	for i, key := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = NewErrorResult(key, err)
				return nil
			}

			res, err := fn(ctx, key)
			if err != nil {
				results[i] = NewErrorResult(key, err)
				return nil
			}
			results[i] = NewSuccessResult(key, res)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// NewSuccessResult creates a success result
func NewSuccessResult(key string, result any) Result {
	return Result{
		Key:    key,
		Status: StatusSuccess,
		Result: result,
	}
}

// NewErrorResult creates an error result
func NewErrorResult(key string, err error) Result {
	return Result{
		Key:    key,
		Status: StatusError,
		Error:  err.Error(),
	}
}
