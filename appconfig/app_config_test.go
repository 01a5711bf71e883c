package appconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.ini"))

	assert.Equal(t, "gpt-4o-mini", cfg.ClassifierModel)
	assert.Equal(t, "gpt-4o", cfg.SynthesisModel)
	assert.Equal(t, 768, cfg.EmbeddingDimension)
	assert.Equal(t, 5, cfg.SubQuestionTopK)
	assert.Equal(t, 15, cfg.BroadProbeTopK)
	assert.Equal(t, 15, cfg.BroadMatchLimit)
	assert.Nil(t, cfg.BroadProbes())
}

func TestLoadFrom_IniOverridesDefaults(t *testing.T) {
	iniContent := `
classifier_model = gpt-4.1-mini
sub_question_top_k = 8
broad_probes = lease terms;financial summary
`
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(iniContent), 0644))
	t.Setenv("ENV", "")

	cfg := LoadFrom(path)

	assert.Equal(t, "gpt-4.1-mini", cfg.ClassifierModel)
	assert.Equal(t, 8, cfg.SubQuestionTopK)
	assert.Equal(t, []string{"lease terms", "financial summary"}, cfg.BroadProbes())
	// keys absent from the file keep their defaults
	assert.Equal(t, "gpt-4o", cfg.SynthesisModel)
	assert.Equal(t, 15, cfg.BroadMatchLimit)
}

func TestLoadFrom_EnvironmentWins(t *testing.T) {
	iniContent := `
classifier_model = from-ini
broad_probe_top_k = 10
`
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(iniContent), 0644))

	t.Setenv("ENV", "")
	t.Setenv("CLASSIFIER_MODEL", "from-env")
	t.Setenv("BROAD_PROBE_TOP_K", "20")
	t.Setenv("EMBEDDING_DIMENSION", "not-a-number") // ignored, default kept

	cfg := LoadFrom(path)

	assert.Equal(t, "from-env", cfg.ClassifierModel)
	assert.Equal(t, 20, cfg.BroadProbeTopK)
	assert.Equal(t, 768, cfg.EmbeddingDimension)
}
