package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/repository"
)

var fixedNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newMockBase(t *testing.T) (BaseRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	base := NewBaseRepository(sqlx.NewDb(db, "postgres"))
	base.now = func() time.Time { return fixedNow }
	return base, mock
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

func TestClientRepository_List(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewClientRepository(base)
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "phone", "email", "notes", "created_at", "updated_at"}).
		AddRow(uuid.New().String(), userID.String(), "Ann Lee", "555-0100", nil, nil, fixedNow, fixedNow).
		AddRow(uuid.New().String(), userID.String(), "Jane Doe", "555-0101", "jane@example.com", "gel", fixedNow, fixedNow)
	mock.ExpectQuery(q("FROM clients")).
		WithArgs(userID).
		WillReturnRows(rows)

	clients, err := repo.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Ann Lee", clients[0].Name)
	assert.Nil(t, clients[0].Email)
	require.NotNil(t, clients[1].Email)
	assert.Equal(t, "jane@example.com", *clients[1].Email)
}

func TestClientRepository_GetOtherUserIsNotFound(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewClientRepository(base)
	userID, id := uuid.New(), uuid.New()

	mock.ExpectQuery(q("WHERE id = $1 AND user_id = $2")).
		WithArgs(id, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), userID, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientRepository_Create(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewClientRepository(base)

	client := &model.Client{UserID: uuid.New(), Name: "Jane Doe", Phone: "555-0101"}
	mock.ExpectExec(q("INSERT INTO clients")).
		WithArgs(sqlmock.AnyArg(), client.UserID, "Jane Doe", "555-0101", nil, nil, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), client))
	assert.NotEqual(t, uuid.Nil, client.ID)
	assert.Equal(t, fixedNow, client.CreatedAt)
}

func TestClientRepository_UpdateMissing(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewClientRepository(base)

	client := &model.Client{Base: model.Base{ID: uuid.New()}, UserID: uuid.New(), Name: "Jane", Phone: "1"}
	mock.ExpectQuery(q("UPDATE clients")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}))

	assert.ErrorIs(t, repo.Update(context.Background(), client), repository.ErrNotFound)
}

func TestClientRepository_Delete(t *testing.T) {
	userID, id := uuid.New(), uuid.New()

	t.Run("deleted", func(t *testing.T) {
		base, mock := newMockBase(t)
		mock.ExpectExec(q("DELETE FROM clients")).
			WithArgs(id, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, NewClientRepository(base).Delete(context.Background(), userID, id))
	})

	t.Run("no rows", func(t *testing.T) {
		base, mock := newMockBase(t)
		mock.ExpectExec(q("DELETE FROM clients")).
			WithArgs(id, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, NewClientRepository(base).Delete(context.Background(), userID, id), repository.ErrNotFound)
	})
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewUserRepository(base)

	mock.ExpectExec(q("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	err := repo.Create(context.Background(), &model.User{Name: "Brooke", Email: "brooke@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestRepositories_MapOversizedValues(t *testing.T) {
	for _, code := range []pq.ErrorCode{pqStringTooLong, pqNumericOutOfRange} {
		t.Run(string(code), func(t *testing.T) {
			base, mock := newMockBase(t)

			mock.ExpectExec(q("INSERT INTO clients")).
				WillReturnError(&pq.Error{Code: code})
			err := NewClientRepository(base).Create(context.Background(),
				&model.Client{UserID: uuid.New(), Name: "Jane", Phone: "555"})
			assert.ErrorIs(t, err, repository.ErrInvalidValue)

			mock.ExpectBegin()
			mock.ExpectQuery(q("SELECT name FROM clients")).
				WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Jane"))
			mock.ExpectExec(q("INSERT INTO appointments")).
				WillReturnError(&pq.Error{Code: code})
			mock.ExpectRollback()
			err = NewAppointmentRepository(base).Create(context.Background(), &model.Appointment{
				UserID:   uuid.New(),
				ClientID: uuid.New(),
				Service:  "Gel",
				Price:    model.MustMoney("1.00"),
			})
			assert.ErrorIs(t, err, repository.ErrInvalidValue)
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewUserRepository(base)
	id := uuid.New()

	mock.ExpectQuery(q("FROM users WHERE email = $1")).
		WithArgs("brooke@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(id.String(), "Brooke", "brooke@example.com", "hash", fixedNow, fixedNow))

	user, err := repo.GetByEmail(context.Background(), "brooke@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestAppointmentRepository_ListFilters(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewAppointmentRepository(base)
	userID, clientID := uuid.New(), uuid.New()
	paid := true
	start := model.NewDate(2025, 1, 1)

	mock.ExpectQuery(q("WHERE a.user_id = $1 AND a.paid = $2 AND a.appointment_date >= $3 AND a.client_id = $4")).
		WithArgs(userID, true, sqlmock.AnyArg(), clientID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "client_id", "client_name", "appointment_date", "service",
			"price", "tip", "paid", "notes", "created_at", "updated_at",
		}).AddRow(
			uuid.New().String(), userID.String(), clientID.String(), "Jane Doe",
			time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), "Gel Manicure",
			"40.00", "10.00", true, nil, fixedNow, fixedNow,
		))

	list, err := repo.List(context.Background(), userID, model.AppointmentFilter{
		Paid:     &paid,
		Dates:    model.DateRange{Start: &start},
		ClientID: &clientID,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-03-15", list[0].AppointmentDate.String())
	assert.True(t, list[0].Total().Equal(model.MustMoney("50.00")))
}

func TestAppointmentRepository_ListInclusiveDateRange(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewAppointmentRepository(base)
	userID := uuid.New()
	paid := false
	start, end := model.NewDate(2025, 1, 1), model.NewDate(2025, 1, 31)

	mock.ExpectQuery(q("WHERE a.user_id = $1 AND a.paid = $2 AND a.appointment_date >= $3 AND a.appointment_date <= $4 " +
		"ORDER BY a.appointment_date DESC, a.created_at DESC")).
		WithArgs(userID, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "client_id", "client_name", "appointment_date", "service",
			"price", "tip", "paid", "notes", "created_at", "updated_at",
		}).AddRow(
			uuid.New().String(), userID.String(), uuid.New().String(), "Jane Doe",
			time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), "Pedicure",
			"35.00", "0.00", false, nil, fixedNow, fixedNow,
		))

	list, err := repo.List(context.Background(), userID, model.AppointmentFilter{
		Paid:  &paid,
		Dates: model.DateRange{Start: &start, End: &end},
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-01-31", list[0].AppointmentDate.String())
	assert.False(t, list[0].Paid)
}

func TestAppointmentRepository_CreateForeignClient(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewAppointmentRepository(base)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT name FROM clients WHERE id = $1 AND user_id = $2 FOR SHARE")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.Appointment{
		UserID:   uuid.New(),
		ClientID: uuid.New(),
		Service:  "Pedicure",
		Price:    model.MustMoney("35.00"),
	})
	assert.ErrorIs(t, err, repository.ErrClientNotFound)
}

func TestAppointmentRepository_Create(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewAppointmentRepository(base)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT name FROM clients")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Jane Doe"))
	mock.ExpectExec(q("INSERT INTO appointments")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	appt := &model.Appointment{
		UserID:          uuid.New(),
		ClientID:        uuid.New(),
		AppointmentDate: model.NewDate(2025, 3, 15),
		Service:         "Gel Manicure",
		Price:           model.MustMoney("40.00"),
		Tip:             model.MustMoney("10.00"),
	}
	require.NoError(t, repo.Create(context.Background(), appt))
	assert.Equal(t, "Jane Doe", appt.ClientName)
	assert.NotEqual(t, uuid.Nil, appt.ID)
}

func TestAppointmentRepository_UpdateMissingBeforeClient(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewAppointmentRepository(base)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT created_at FROM appointments")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &model.Appointment{
		Base:     model.Base{ID: uuid.New()},
		UserID:   uuid.New(),
		ClientID: uuid.New(),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAppointmentRepository_UpdatePayment(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewAppointmentRepository(base)
	userID, id := uuid.New(), uuid.New()

	mock.ExpectQuery(q("SET paid = $1")).
		WithArgs(true, fixedNow, id, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "paid"}).AddRow(id.String(), true))

	status, err := repo.UpdatePayment(context.Background(), userID, id, true)
	require.NoError(t, err)
	assert.Equal(t, id, status.ID)
	assert.True(t, status.Paid)
}

func TestReportRepository_MonthlyTotalsClientFilter(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewReportRepository(base)
	userID, clientID := uuid.New(), uuid.New()

	mock.ExpectQuery(q("AND a.client_id = $4")).
		WithArgs(userID, sqlmock.AnyArg(), sqlmock.AnyArg(), clientID).
		WillReturnRows(sqlmock.NewRows([]string{"month", "service_total", "tip_total", "grand_total"}).
			AddRow(3, "40.00", "10.00", "50.00"))

	months, err := repo.MonthlyTotals(context.Background(), userID, model.ReportQuery{Year: 2025, ClientID: &clientID})
	require.NoError(t, err)
	require.Len(t, months, 1)
	assert.Equal(t, "Mar 2025", months[0].Label(2025))
	assert.True(t, months[0].GrandTotal.Equal(model.MustMoney("50.00")))
}

func TestReportRepository_AnnualTotalsEmpty(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewReportRepository(base)

	mock.ExpectQuery(q("ORDER BY 1 DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"year", "service_total", "tip_total", "grand_total"}))

	years, err := repo.AnnualTotals(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.NotNil(t, years)
	assert.Empty(t, years)
}

func TestDashboardRepository_Recent(t *testing.T) {
	base, mock := newMockBase(t)
	repo := NewDashboardRepository(base)
	userID := uuid.New()

	mock.ExpectQuery(q("LIMIT $2")).
		WithArgs(userID, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_name", "appointment_date", "service", "price", "tip", "paid"}).
			AddRow(uuid.New().String(), "Jane Doe", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), "Gel Manicure", "40.00", "0.00", false))

	recent, err := repo.Recent(context.Background(), userID, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.False(t, recent[0].Paid)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	base, mock := newMockBase(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := base.WithTx(context.Background(), func(tx *sqlx.Tx) error {
		return repository.ErrNotFound
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
