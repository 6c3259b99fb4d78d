package l10n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_English(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	tbl := c.Lookup("en")
	assert.Equal(t, "en", tbl.Tag.String())
	assert.Equal(t, "Hello,", tbl.Get(Hello))
	assert.Equal(t, "Show more", tbl.Get(ShowMore))
	assert.Equal(t, "Show less", tbl.Get(ShowLess))
	assert.Equal(t, "Welcome to the Basics Codelab!", tbl.Get(OnboardingMessage))
	assert.Equal(t, "Continue", tbl.Get(ContinueButton))
}

func TestCatalog_Matching(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	tests := []struct {
		locale string
		want   string
	}{
		{"es", "Continuar"},
		{"es-MX", "Continuar"},
		{"en-GB", "Continue"},
		{"fr", "Continue"},
		{"not a locale", "Continue"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Lookup(tt.locale).Get(ContinueButton))
		})
	}
}

func TestCatalog_EmptyLocaleReadsEnvironment(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "es_ES.UTF-8")
	assert.Equal(t, "Hola,", c.Lookup("").Get(Hello))

	t.Setenv("LANG", "C")
	assert.Equal(t, "Hello,", c.Lookup("").Get(Hello))
}

func TestTable_FallsBack(t *testing.T) {
	c, err := ParseCatalog([]byte("en:\n  hello: Hello,\n  continue_button: Continue\nde:\n  hello: Hallo,\n"))
	require.NoError(t, err)

	tbl := c.Lookup("de")
	assert.Equal(t, "Hallo,", tbl.Get(Hello))
	assert.Equal(t, "Continue", tbl.Get(ContinueButton), "missing key falls back to English")
	assert.Equal(t, "no_such_key", tbl.Get("no_such_key"))
}

func TestParseCatalog_Errors(t *testing.T) {
	_, err := ParseCatalog([]byte("de:\n  hello: Hallo,\n"))
	assert.ErrorContains(t, err, "no \"en\" entries")

	_, err = ParseCatalog([]byte("en: [not, a, map]"))
	assert.ErrorContains(t, err, "parse string table")
}

func TestEnvLocale(t *testing.T) {
	t.Setenv("LC_ALL", "pt_BR.UTF-8@latin")
	assert.Equal(t, "pt-BR", EnvLocale())

	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
	assert.Equal(t, "", EnvLocale())
}

func TestMustTable(t *testing.T) {
	assert.Equal(t, "Continuar", MustTable("es-MX").Get(ContinueButton))
	assert.Equal(t, "Show more", MustTable("en").Get(ShowMore))
}
