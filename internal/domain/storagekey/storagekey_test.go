package storagekey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/storagekey"
)

func TestFor_LooseAndFolder(t *testing.T) {
	key, err := storagekey.For(7, "", "invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, "project_7/invoice.pdf", key)

	key, err = storagekey.For(7, "Tekeningen", "plan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "project_7/Tekeningen/plan.pdf", key)
}

func TestFor_NormalizesToNFC(t *testing.T) {
	decomposed := "offerte_e\u0301.pdf"
	key, err := storagekey.For(1, "", decomposed)
	require.NoError(t, err)
	assert.Equal(t, "project_1/offerte_\u00e9.pdf", key)
}

func TestFor_RejectsTraversal(t *testing.T) {
	for _, name := range []string{"", "..", "../etc/passwd", `a\b`, "dir/file"} {
		_, err := storagekey.For(1, "", name)
		assert.ErrorIs(t, err, domain.ErrInvalidFormat, name)
	}
	_, err := storagekey.For(1, "..", "ok.pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestWithin_AcceptsProjectKeys(t *testing.T) {
	key, err := storagekey.Within("pad", 3, "project_3/offerte.pdf")
	require.NoError(t, err)
	assert.Equal(t, "project_3/offerte.pdf", key)

	key, err = storagekey.Within("pad", 3, "project_3/Tekeningen/plan_é.pdf")
	require.NoError(t, err)
	assert.Equal(t, "project_3/Tekeningen/plan_é.pdf", key)
}

func TestWithin_RejectsKeysOutsideProject(t *testing.T) {
	for _, key := range []string{
		"",
		"project_3",
		"/etc/passwd",
		"../../etc/passwd",
		"project_3/../project_4/a.pdf",
		"project_3/../../secret.txt",
		"project_3/./a.pdf",
		"project_4/a.pdf",
		`project_3\a.pdf`,
		"project_3/a/b/c.pdf",
		"project_3//a.pdf",
	} {
		_, err := storagekey.Within("pad", 3, key)
		require.ErrorIs(t, err, domain.ErrInvalidFormat, key)
		assert.Equal(t, "pad", domain.FieldErrors(err)[0].Field, key)
	}
}
