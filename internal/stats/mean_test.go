package stats

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanOf(t *testing.T) {
	assert.False(t, MeanOf(0, 0).Valid)
	m := MeanOf(10, 3)
	assert.True(t, m.Valid)
	assert.Equal(t, 3.33, m.Rounded())
	assert.Equal(t, "3.33", m.String())
	assert.Equal(t, "N/A", Mean{}.String())
}

func TestMean_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Mean `json:"a"`
		B Mean `json:"b"`
	}{A: MeanOf(7, 2)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3.5,"b":null}`, string(data))

	var m Mean
	require.NoError(t, json.Unmarshal([]byte("null"), &m))
	assert.False(t, m.Valid)
	require.NoError(t, json.Unmarshal([]byte("4.25"), &m))
	assert.Equal(t, Mean{Value: 4.25, Valid: true}, m)
}
