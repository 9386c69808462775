package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		items []ItemOutcome
		want  StageOutcome
	}{
		{
			"empty",
			nil,
			StageOutcome{},
		},
		{
			"all success",
			[]ItemOutcome{success(), success()},
			StageOutcome{Processed: 2, Succeeded: 2},
		},
		{
			"all failure",
			[]ItemOutcome{failure("a"), failure("b")},
			StageOutcome{Processed: 2, Failed: 2, Errors: []string{"a", "b"}},
		},
		{
			"mixed keeps error order",
			[]ItemOutcome{failure("first"), success(), failure("second")},
			StageOutcome{Processed: 3, Succeeded: 1, Failed: 2, Errors: []string{"first", "second"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fold(tt.items)
			assert.Equal(t, tt.want, got)
			// Invariant: processed always equals successes plus failures.
			assert.Equal(t, got.Processed, got.Succeeded+got.Failed)
		})
	}
}

func TestBatchResultFailed(t *testing.T) {
	tests := []struct {
		name   string
		result BatchResult
		want   bool
	}{
		{"fatal", fatalResult("no credential"), true},
		{"nothing processed", BatchResult{}, false},
		{"all items failed", BatchResult{Sync: StageOutcome{Processed: 3, Failed: 3}}, true},
		{"partial failure", BatchResult{Sync: StageOutcome{Processed: 3, Succeeded: 1, Failed: 2}}, false},
		{
			"discovery errors alone do not fail the run",
			BatchResult{
				Sync:      StageOutcome{Processed: 1, Succeeded: 1},
				Discovery: &DiscoveryResult{TotalFound: 2, Errors: []string{"notify x: boom"}},
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Failed())
		})
	}
}
