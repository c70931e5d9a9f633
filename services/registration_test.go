package services

import (
	"testing"

	"kef/database"
	"kef/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	// One shared in-memory DB per test, isolated by name
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func validBootcampRequest() *models.BootcampRequest {
	return &models.BootcampRequest{
		FullName:     "Asha K",
		Email:        "asha@example.com",
		Phone:        "9876543210",
		Age:          "22",
		Organization: "XYZ College",
		District:     "Kozhikode",
		Experience:   "beginner",
	}
}

func TestFinalizeBootcamp(t *testing.T) {
	db := newTestDB(t)

	record, err := FinalizeBootcamp(db, validBootcampRequest(), "PhonePe Transaction ID: TXN456")
	assert.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, models.StatusPending, record.Status)
	assert.Equal(t, "PhonePe Transaction ID: TXN456", record.PaymentProof)

	var stored models.BootcampRegistration
	assert.NoError(t, db.First(&stored, "id = ?", record.ID).Error)
	assert.Equal(t, "Asha K", stored.FullName)
}

func TestFinalizeBootcampPaymentRefOverridesClientProof(t *testing.T) {
	db := newTestDB(t)

	req := validBootcampRequest()
	req.PaymentProof = "client-supplied screenshot"
	record, err := FinalizeBootcamp(db, req, "PhonePe Transaction ID: TXN789")
	assert.NoError(t, err)
	assert.Equal(t, "PhonePe Transaction ID: TXN789", record.PaymentProof)
}

func TestFinalizeBootcampValidation(t *testing.T) {
	db := newTestDB(t)

	req := &models.BootcampRequest{Email: "not-an-email"}
	_, err := FinalizeBootcamp(db, req, "")
	assert.Error(t, err)

	verr, ok := err.(*ValidationError)
	if assert.True(t, ok, "expected a ValidationError") {
		assert.Contains(t, verr.Fields, "fullName")
		assert.Contains(t, verr.Fields, "email")
		assert.Contains(t, verr.Fields, "phone")
		assert.Contains(t, verr.Fields, "district")
	}

	var count int64
	db.Model(&models.BootcampRegistration{}).Count(&count)
	assert.Equal(t, int64(0), count, "invalid payloads must not be persisted")
}

func TestMemoryPendingStore(t *testing.T) {
	store := NewMemoryPendingStore()

	loaded, err := store.Load("T1")
	assert.NoError(t, err)
	assert.Nil(t, loaded, "unknown key loads as nil, not an error")

	assert.NoError(t, store.Save("T1", validBootcampRequest()))
	loaded, err = store.Load("T1")
	assert.NoError(t, err)
	if assert.NotNil(t, loaded) {
		assert.Equal(t, "Asha K", loaded.FullName)
	}

	assert.NoError(t, store.Delete("T1"))
	loaded, _ = store.Load("T1")
	assert.Nil(t, loaded)
}
