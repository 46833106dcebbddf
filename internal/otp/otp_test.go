package otp_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"go-shop-backend/internal/otp"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

type recordingSender struct {
	phone   string
	message string
}

func (s *recordingSender) Send(phone, message string) error {
	s.phone = phone
	s.message = message
	return nil
}

func otpRows(expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "phone", "code", "expires_at", "is_used", "created_at",
	}).AddRow(1, "9800000001", "123456", expiresAt, false, time.Now())
}

func TestSend_InvalidatesOldCodesAndDelivers(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	sender := &recordingSender{}
	svc := otp.NewService(gormDB, sender)

	// Outstanding codes are burned before the new one is stored
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `otps` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `otps`").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Send("9800000001"))

	assert.Equal(t, "9800000001", sender.phone)
	assert.Regexp(t, regexp.MustCompile(`Your OTP is \d{6}`), sender.message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerify_ConsumesCodeOnce(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := otp.NewService(gormDB, &recordingSender{})

	mock.ExpectQuery("SELECT(.+)FROM `otps`").
		WillReturnRows(otpRows(time.Now().Add(time.Minute)))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `otps` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Verify("9800000001", "123456"))

	// The second attempt no longer matches an unused row
	mock.ExpectQuery("SELECT(.+)FROM `otps`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	assert.ErrorIs(t, svc.Verify("9800000001", "123456"), otp.ErrInvalidCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerify_ExpiredCodeStaysUnconsumed(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := otp.NewService(gormDB, &recordingSender{})

	mock.ExpectQuery("SELECT(.+)FROM `otps`").
		WillReturnRows(otpRows(time.Now().Add(-time.Minute)))

	assert.ErrorIs(t, svc.Verify("9800000001", "123456"), otp.ErrExpiredCode)
	// No UPDATE may be issued for an expired code.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerify_WrongCode(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := otp.NewService(gormDB, &recordingSender{})

	mock.ExpectQuery("SELECT(.+)FROM `otps`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	assert.ErrorIs(t, svc.Verify("9800000001", "000000"), otp.ErrInvalidCode)
}
