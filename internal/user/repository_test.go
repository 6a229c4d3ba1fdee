// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/opsboard/internal/authz"
	"github.com/opsboard/opsboard/internal/core"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewRepository(db), mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "username_canonical", "email", "name",
		"password_hash", "role", "organization_id", "is_active",
		"created_at", "updated_at",
	})
}

func TestRepositoryGetByUsernameCanonical(t *testing.T) {
	repo, mock := newMockRepository(t)

	orgID := "org-1"
	now := time.Now()

	mock.ExpectQuery(
		regexp.QuoteMeta("WHERE username_canonical = $1"),
	).WithArgs("alice").WillReturnRows(userRows().AddRow(
		"u-1", "Alice", "alice", "alice@example.com", "Alice",
		"$argon2id$...", "admin", orgID, true, now, now,
	))

	u, err := repo.GetByUsernameCanonical(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "Alice", u.Username)
	assert.Equal(t, authz.RoleAdmin, u.Role)
	require.NotNil(t, u.OrganizationID)
	assert.Equal(t, orgID, *u.OrganizationID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByUsernameCanonicalNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(
		regexp.QuoteMeta("WHERE username_canonical = $1"),
	).WithArgs("ghost").WillReturnRows(userRows())

	_, err := repo.GetByUsernameCanonical(context.Background(), "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySetActive(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(
		regexp.QuoteMeta("UPDATE users"),
	).WithArgs("u-1", false).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetActive(context.Background(), "u-1", false)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
