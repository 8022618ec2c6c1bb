// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/migrations"
	"github.com/MKhiriev/go-feedback/models"
)

var (
	dollar   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	question = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func Test_buildInsertUserQuery_SQLContainsParts(t *testing.T) {
	query, args, err := buildInsertUserQuery(dollar, testUser)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into users")
	for _, col := range userColumns {
		require.Contains(t, q, col)
	}
	require.Contains(t, query, "$5")
	require.Equal(t, []any{"alice", "$2a$10$hash", "alice@example.com", "Alice", "Liddell"}, args)
}

func Test_buildSelectFeedbackByUsernameQuery_OrdersByID(t *testing.T) {
	query, args, err := buildSelectFeedbackByUsernameQuery(dollar, "alice")
	require.NoError(t, err)

	require.Contains(t, strings.ToLower(query), "order by id asc")
	require.Equal(t, []any{"alice"}, args)
}

func Test_buildQueries_SQLitePlaceholders(t *testing.T) {
	query, _, err := buildSelectUserQuery(question, "alice")
	require.NoError(t, err)
	require.Contains(t, query, "username = ?")
	require.NotContains(t, query, "$1")

	query, _, err = buildInsertFeedbackQuery(question, models.Feedback{Title: "t", Content: "c", Username: "alice"})
	require.NoError(t, err)
	require.Contains(t, query, "VALUES (?,?,?)")
	require.True(t, strings.HasSuffix(query, "RETURNING id"))
}

func Test_buildUpdateFeedbackQuery(t *testing.T) {
	title := "new"
	content := "body"

	tests := []struct {
		name       string
		update     models.FeedbackUpdate
		wantErr    bool
		checkQuery func(t *testing.T, query string, args []any)
	}{
		{
			name:   "title only",
			update: models.FeedbackUpdate{ID: 1, Title: &title},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.Contains(t, query, "SET title = $1")
				require.NotContains(t, query, "content =")
				require.Equal(t, []any{"new", int64(1)}, args)
			},
		},
		{
			name:   "content only",
			update: models.FeedbackUpdate{ID: 2, Content: &content},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.Contains(t, query, "SET content = $1")
				require.NotContains(t, query, "title =")
				require.Equal(t, []any{"body", int64(2)}, args)
			},
		},
		{
			name:   "both fields",
			update: models.FeedbackUpdate{ID: 3, Title: &title, Content: &content},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.Contains(t, query, "title = $1")
				require.Contains(t, query, "content = $2")
				require.Contains(t, query, "WHERE id = $3")
				require.Contains(t, query, "RETURNING id, title, content, username")
				require.Len(t, args, 3)
			},
		},
		{
			name:    "empty update",
			update:  models.FeedbackUpdate{ID: 4},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpdateFeedbackQuery(dollar, tt.update)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.checkQuery(t, query, args)
		})
	}
}

func Test_newDB_PlaceholderPerDialect(t *testing.T) {
	tests := []struct {
		dialect migrations.Dialect
		want    string
	}{
		{migrations.Postgres, "username = $1"},
		{migrations.SQLite, "username = ?"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			db := newDB(nil, tt.dialect, nil, logger.Nop())

			query, _, err := buildSelectUserQuery(db.builder, "alice")
			require.NoError(t, err)
			require.Contains(t, query, tt.want)
		})
	}
}
