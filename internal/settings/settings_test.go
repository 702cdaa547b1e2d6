package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	values map[string]string
}

func (r *memoryRepo) Load(ctx context.Context) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

func (r *memoryRepo) Save(ctx context.Context, values map[string]string) error {
	if r.values == nil {
		r.values = map[string]string{}
	}
	for k, v := range values {
		r.values[k] = v
	}
	return nil
}

func TestProfileRoundTrip(t *testing.T) {
	svc := NewService(&memoryRepo{})
	ctx := context.Background()

	profile, err := svc.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, Profile{}, profile)

	want := Profile{
		CompanyName:    "Corner Store",
		CompanyAddress: "12 Main St",
		CompanyPhone:   "555-0101",
	}
	require.NoError(t, svc.SaveProfile(ctx, want))

	got, err := svc.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
