package preprocess_test

import (
	"testing"

	"github.com/kegliz/qivm/preprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLanguageFromExtension(t *testing.T) {
	for ext, want := range map[string]preprocess.HostLanguage{
		"c": preprocess.C, "cpp": preprocess.Cpp, "java": preprocess.Java,
		"rs": preprocess.Rust, "py": preprocess.Python,
	} {
		lang, ok := preprocess.HostLanguageFromExtension(ext)
		require.True(t, ok, ext)
		assert.Equal(t, want, lang)
		assert.Equal(t, ext, lang.Extension())
	}

	_, ok := preprocess.HostLanguageFromExtension("go")
	assert.False(t, ok)
}

func TestNewExtractsBalancedBlock(t *testing.T) {
	src := "int main() {\n  @stateq {\n    qalloc 2 { h 0 }\n  }\n  return 0;\n}\n"
	emb, err := preprocess.New(preprocess.C, src)
	require.NoError(t, err)
	assert.Equal(t, "\n    qalloc 2 { h 0 }\n  ", emb.EmbeddedSource())
}

func TestReplaceEmbeddedSourceSplicesInPlace(t *testing.T) {
	src := "before @stateq { inner } after"
	emb, err := preprocess.New(preprocess.C, src)
	require.NoError(t, err)

	full := emb.ReplaceEmbeddedSource("COMPILED")
	assert.Equal(t, "before COMPILED after", full)
}

func TestNewErrorsWhenLabelMissing(t *testing.T) {
	_, err := preprocess.New(preprocess.C, "int main() { return 0; }")
	assert.Error(t, err)
}

func TestNewErrorsWhenBracesUnbalanced(t *testing.T) {
	_, err := preprocess.New(preprocess.C, "@stateq { h 0 ")
	assert.Error(t, err)
}
