package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/pricebook/internal/domain"
)

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := domain.NewNormalizer(domain.DefaultOptions().FamilyRules)

	tests := []struct {
		name  string
		rawID string
		want  string
	}{
		{name: "dated snapshot", rawID: "gpt-4o-2024-11-20", want: "gpt-4o"},
		{name: "older dated snapshot", rawID: "gpt-4o-2024-08-06", want: "gpt-4o"},
		{name: "canonical family unchanged", rawID: "gpt-4o", want: "gpt-4o"},
		{name: "mini keeps its own family", rawID: "gpt-4o-mini-2024-07-18", want: "gpt-4o-mini"},
		{name: "bare version suffix", rawID: "gpt-3.5-turbo-0125", want: "gpt-3.5-turbo"},
		{name: "four digit version", rawID: "gpt-4-0613", want: "gpt-4"},
		{name: "turbo with date", rawID: "gpt-4-turbo-2024-04-09", want: "gpt-4-turbo"},
		{name: "turbo preview", rawID: "gpt-4-turbo-preview", want: "gpt-4-turbo"},
		{name: "unrecognized id stripped only", rawID: "some-new-model-2025-01-01", want: "some-new-model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, normalizer.Normalize(tt.rawID))
		})
	}
}

func TestNormalizer_NormalizeIsIdempotent(t *testing.T) {
	normalizer := domain.NewNormalizer(domain.DefaultOptions().FamilyRules)

	for _, rawID := range []string{
		"gpt-4o-2024-11-20",
		"gpt-4o-mini-2024-07-18",
		"gpt-3.5-turbo-0125",
		"some-new-model-2025-01-01",
	} {
		once := normalizer.Normalize(rawID)
		require.Equal(t, once, normalizer.Normalize(once))
	}
}

func TestNormalizer_IsFineTuned(t *testing.T) {
	normalizer := domain.NewNormalizer(domain.DefaultOptions().FamilyRules)

	require.True(t, normalizer.IsFineTuned("ft-gpt-4o-mini-custom"))
	require.True(t, normalizer.IsFineTuned("gpt-4o-mini:my-org:suffix:abc123"))
	require.False(t, normalizer.IsFineTuned("gpt-4o-mini"))
	require.False(t, normalizer.IsFineTuned("gpt-4o-2024-11-20"))
}

func TestNormalizer_IsChatFamily(t *testing.T) {
	normalizer := domain.NewNormalizer(domain.DefaultOptions().FamilyRules)

	require.True(t, normalizer.IsChatFamily("gpt-4o-2024-11-20"))
	require.True(t, normalizer.IsChatFamily("GPT-4O"))
	require.False(t, normalizer.IsChatFamily("text-embedding-3-small"))
	require.False(t, normalizer.IsChatFamily("whisper-1"))
	require.False(t, normalizer.IsChatFamily("dall-e-3"))
}

func TestNormalizer_DisplayName(t *testing.T) {
	normalizer := domain.NewNormalizer(domain.DefaultOptions().FamilyRules)

	require.Equal(t, "GPT-4o Mini", normalizer.DisplayName("gpt-4o-mini"))
	require.Equal(t, "GPT-4o", normalizer.DisplayName("gpt-4o"))
	require.Equal(t, "GPT-3.5 Turbo", normalizer.DisplayName("gpt-3.5-turbo"))
	require.Equal(t, "Some New Model", normalizer.DisplayName("some-new-model"))
}

func TestNormalizer_Priority(t *testing.T) {
	normalizer := domain.NewNormalizer(domain.DefaultOptions().FamilyRules)

	require.Equal(t, 1, normalizer.Priority("gpt-4o"))
	require.Equal(t, 2, normalizer.Priority("gpt-4o-mini"))
	require.Equal(t, 5, normalizer.Priority("gpt-3.5-turbo"))
	require.Greater(t, normalizer.Priority("some-new-model"), normalizer.Priority("gpt-3.5-turbo"))
}
