package orderedjson_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigcraft/pkg/orderedjson"
)

func TestMarshal(t *testing.T) {
	t.Parallel()

	keys := []string{"zeta", "alpha", "<b>"}
	vals := []any{1, []string{"x"}, nil}

	out, err := orderedjson.Marshal(len(keys), func(i int) (string, any) {
		return keys[i], vals[i]
	})
	require.NoError(t, err)
	require.Equal(t, `{"zeta":1,"alpha":["x"],"<b>":null}`, string(out))

	out, err = orderedjson.Marshal(0, nil)
	require.NoError(t, err)
	require.Equal(t, `{}`, string(out))
}
