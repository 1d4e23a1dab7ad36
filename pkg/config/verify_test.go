package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, VerifyAgainstEmbeddedSchema(Default()))
	})

	t.Run("minimum violated", func(t *testing.T) {
		cfg := Default()
		cfg.Fetch.MaxWorkers = 0
		cfg.Schedule.DispatchBatch = -1
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch.max_workers must be >= 1")
		assert.Contains(t, err.Error(), "schedule.dispatch_batch must be >= 1")
	})

	t.Run("enum violated", func(t *testing.T) {
		cfg := Default()
		cfg.Queue.Type = "nats"
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `queue.type must be one of`)
	})
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	generated, err := json.Marshal(GenerateSchema())
	require.NoError(t, err)

	var gen, embedded map[string]any
	require.NoError(t, json.Unmarshal(generated, &gen))
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))

	genDefs := gen["$defs"].(map[string]any)
	embDefs := embedded["$defs"].(map[string]any)
	for name, def := range genDefs {
		embDef, ok := embDefs[name].(map[string]any)
		require.True(t, ok, "definition %s missing in embedded schema, run go generate", name)
		genProps := def.(map[string]any)["properties"].(map[string]any)
		embProps := embDef["properties"].(map[string]any)
		for prop := range genProps {
			assert.Contains(t, embProps, prop, "%s.%s missing in embedded schema", name, prop)
		}
	}
}
