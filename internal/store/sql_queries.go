package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-feedback/models"
)

var (
	userColumns     = []string{"username", "password", "email", "first_name", "last_name"}
	feedbackColumns = []string{"id", "title", "content", "username"}
)

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns(userColumns...).
		Values(user.Username, user.Password, user.Email, user.FirstName, user.LastName).
		ToSql()
}

func buildSelectUserQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
}

// buildCountUsersQuery counts users whose column equals value. Used for the
// username and email existence checks.
func buildCountUsersQuery(b sq.StatementBuilderType, column, value string) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(models.User{}.TableName()).
		Where(sq.Eq{column: value}).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Delete(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildInsertFeedbackQuery(b sq.StatementBuilderType, feedback models.Feedback) (string, []any, error) {
	return b.Insert(feedback.TableName()).
		Columns("title", "content", "username").
		Values(feedback.Title, feedback.Content, feedback.Username).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectFeedbackByIDQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select(feedbackColumns...).
		From(models.Feedback{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildSelectFeedbackByUsernameQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(feedbackColumns...).
		From(models.Feedback{}.TableName()).
		Where(sq.Eq{"username": username}).
		OrderBy("id ASC").
		ToSql()
}

func buildCountFeedbackQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(models.Feedback{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
}

// buildUpdateFeedbackQuery sets only the non-nil fields of update and returns
// the resulting row. The update must not be empty.
func buildUpdateFeedbackQuery(b sq.StatementBuilderType, update models.FeedbackUpdate) (string, []any, error) {
	query := b.Update(models.Feedback{}.TableName())

	if update.Title != nil {
		query = query.Set("title", *update.Title)
	}
	if update.Content != nil {
		query = query.Set("content", *update.Content)
	}

	return query.
		Where(sq.Eq{"id": update.ID}).
		Suffix("RETURNING id, title, content, username").
		ToSql()
}

func buildDeleteFeedbackQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Delete(models.Feedback{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
}
