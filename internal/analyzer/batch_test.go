package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/garyellow/strcheck/internal/errors"
)

func TestService_UniqueBatch(t *testing.T) {
	svc, m := newTestService(t)

	results, err := svc.UniqueBatch(context.Background(), BatchRequest{
		Inputs:   []string{"abc", "aab", "café", strings.Repeat("z", 17)},
		Strategy: "set",
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "abc", results[0].Input)
	assert.True(t, results[0].Unique)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, "aab", results[1].Input)
	assert.False(t, results[1].Unique)

	assert.Equal(t, "café", results[2].Input)
	assert.Contains(t, results[2].Error, "outside alphabet")

	assert.Contains(t, results[3].Error, "input too long")

	for _, r := range results {
		assert.Equal(t, "set", r.Strategy)
		assert.Equal(t, "ascii", r.Alphabet)
	}
	assert.Equal(t, 1, testutil.CollectAndCount(m.BatchSize))
}

func TestService_UniqueBatchValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   BatchRequest
		check func(error) bool
	}{
		{"empty", BatchRequest{}, domerrors.IsInvalidInput},
		{"too many", BatchRequest{Inputs: []string{"a", "b", "c", "d", "e"}}, domerrors.IsInvalidInput},
		{"unknown strategy", BatchRequest{Inputs: []string{"a"}, Strategy: "array"}, domerrors.IsUnknownStrategy},
		{"unknown alphabet", BatchRequest{Inputs: []string{"a"}, Alphabet: "morse"}, domerrors.IsUnknownAlphabet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := svc.UniqueBatch(ctx, tt.req)
			assert.Nil(t, results)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestService_UniqueBatchCanceled(t *testing.T) {
	svc, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.UniqueBatch(ctx, BatchRequest{Inputs: []string{"a", "b"}})
	assert.ErrorIs(t, err, context.Canceled)
}
