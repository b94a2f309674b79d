//go:build integration

package database_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/cashflow/card-gateway/internal/adapter/secondary/database"
	"github.com/cashflow/card-gateway/internal/constant/model/db"
	"github.com/cashflow/card-gateway/internal/core"
	"github.com/cashflow/card-gateway/internal/port/output"
)

type GormRepositorySuite struct {
	suite.Suite
	conn *db.DB
	repo output.PaymentRepository
}

func TestGormRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, new(GormRepositorySuite))
}

func (s *GormRepositorySuite) SetupSuite() {
	conn, err := db.NewDB(context.Background(), os.Getenv("TEST_DATABASE_URL"))
	s.Require().NoError(err)
	s.conn = conn
	s.repo = database.NewGormPaymentRepository(conn.DB)
}

func (s *GormRepositorySuite) SetupTest() {
	s.Require().NoError(s.conn.Exec("TRUNCATE TABLE payments").Error)
}

func (s *GormRepositorySuite) TearDownSuite() {
	s.Require().NoError(s.conn.Close())
}

func (s *GormRepositorySuite) newPayment() *core.Payment {
	return &core.Payment{
		ID:                 uuid.New(),
		Status:             core.PaymentStatusAuthorized,
		CardNumberLastFour: "8877",
		ExpiryMonth:        4,
		ExpiryYear:         2030,
		Currency:           core.CurrencyGBP,
		Amount:             100,
		CreatedAt:          time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *GormRepositorySuite) TestAddAndGet() {
	ctx := context.Background()
	payment := s.newPayment()

	s.Require().NoError(s.repo.Add(ctx, payment))

	got, err := s.repo.GetByID(ctx, payment.ID)
	s.Require().NoError(err)
	s.Equal(payment, got)
}

func (s *GormRepositorySuite) TestAddIsIdempotentOnID() {
	ctx := context.Background()
	payment := s.newPayment()
	s.Require().NoError(s.repo.Add(ctx, payment))

	replay := *payment
	replay.Amount = 999
	s.Require().NoError(s.repo.Add(ctx, &replay))

	got, err := s.repo.GetByID(ctx, payment.ID)
	s.Require().NoError(err)
	s.Equal(100, got.Amount)
}

func (s *GormRepositorySuite) TestAddRejectsMissingID() {
	payment := s.newPayment()
	payment.ID = uuid.Nil

	s.ErrorIs(s.repo.Add(context.Background(), payment), db.ErrMissingID)
}

func (s *GormRepositorySuite) TestUnknownID() {
	_, err := s.repo.GetByID(context.Background(), uuid.New())
	s.ErrorIs(err, core.ErrPaymentNotFound)
}
