package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/esantostaype/task-automation-sub001/internal/models"
)

func newMockRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

func TestFindByExternalID(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "name", "external_id", "status"}).
		AddRow(7, "Landing banner", "ext-42", "TO_DO")
	mock.ExpectQuery("SELECT \\* FROM .tasks. WHERE external_id = \\?").
		WillReturnRows(rows)

	task, err := repo.FindByExternalID("ext-42")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), task.ID)
	assert.Equal(t, models.TaskStatusToDo, task.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE .tasks. SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(7, models.TaskStatusInProgress)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRescheduleCommitsWholeChain(t *testing.T) {
	repo, mock := newMockRepo(t)

	windows := []TaskWindow{
		{TaskID: 1, StartDate: time.Now(), Deadline: time.Now().Add(time.Hour)},
		{TaskID: 2, StartDate: time.Now(), Deadline: time.Now().Add(2 * time.Hour)},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE .tasks. SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE .tasks. SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Reschedule(windows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRescheduleRollsBackOnMidChainFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	windows := []TaskWindow{
		{TaskID: 1, StartDate: time.Now(), Deadline: time.Now().Add(time.Hour)},
		{TaskID: 2, StartDate: time.Now(), Deadline: time.Now().Add(2 * time.Hour)},
	}

	boom := errors.New("connection reset")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE .tasks. SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE .tasks. SET").WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.Reschedule(windows)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSerializableScopesReadsAndWrites(t *testing.T) {
	repo, mock := newMockRepo(t)

	queueRows := sqlmock.NewRows([]string{"id", "name", "status", "priority"})
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM .tasks. WHERE tasks.status <>").
		WillReturnRows(queueRows)
	mock.ExpectExec("UPDATE .tasks. SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Serializable(func(tx TaskRepository) error {
		queue, err := tx.ActiveQueue(3, QueueFilter{})
		if err != nil {
			return err
		}
		require.Empty(t, queue)
		return tx.UpdateStatus(9, models.TaskStatusInProgress)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSerializableRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	boom := errors.New("queue moved")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.Serializable(func(TaskRepository) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRescheduleNoWindowsIsNoop(t *testing.T) {
	repo, mock := newMockRepo(t)

	require.NoError(t, repo.Reschedule(nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
