package static_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/pricebook/internal/provider/static"
)

func TestClient_DefaultList(t *testing.T) {
	ctx := context.Background()
	client := static.NewClient(nil)

	ids, err := client.ListModelIDs(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, ids)
	require.Contains(t, ids, "gpt-4o")
	require.Contains(t, ids, "gpt-4o-mini")
}

func TestClient_CustomList(t *testing.T) {
	ctx := context.Background()
	client := static.NewClient([]string{"gpt-4o", "gpt-4"})

	ids, err := client.ListModelIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"gpt-4o", "gpt-4"}, ids)
}

func TestClient_ReturnsACopy(t *testing.T) {
	ctx := context.Background()
	client := static.NewClient([]string{"gpt-4o", "gpt-4"})

	first, err := client.ListModelIDs(ctx)
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := client.ListModelIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", second[0])
}

func TestClient_InputSliceNotAliased(t *testing.T) {
	ctx := context.Background()
	input := []string{"gpt-4o"}
	client := static.NewClient(input)

	input[0] = "mutated"

	ids, err := client.ListModelIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", ids[0])
}
