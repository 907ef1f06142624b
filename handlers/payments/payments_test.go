package payments

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"donation-platform-server/migrations"
	"donation-platform-server/models"
	"donation-platform-server/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:payments_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	utils.DB = db
	migrations.Migrate()
	return db
}

func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	}
}

type fixture struct {
	donor    models.User
	orgUser  models.User
	org      models.Organization
	campaign models.Campaign
	donation models.Donation
	payment  models.Payment
}

func seedLifecycle(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	donor := models.User{Phone: "+996700000001", FullName: "Test Donor", Role: models.RoleDonor, IsActive: true}
	if err := db.Create(&donor).Error; err != nil {
		t.Fatalf("failed to create donor: %v", err)
	}

	orgUser := models.User{Phone: "+996700000002", FullName: "Org Owner", Role: models.RoleOrg, IsActive: true}
	if err := db.Create(&orgUser).Error; err != nil {
		t.Fatalf("failed to create org user: %v", err)
	}

	org := models.Organization{UserID: orgUser.ID, Name: "Helping Hands"}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("failed to create organization: %v", err)
	}

	campaign := models.Campaign{OrganizationID: org.ID, Title: "Winter Aid", GoalAmount: 10000, Status: models.CampaignActive}
	if err := db.Create(&campaign).Error; err != nil {
		t.Fatalf("failed to create campaign: %v", err)
	}

	donation := models.Donation{
		DonorID:        donor.ID,
		OrganizationID: org.ID,
		CampaignID:     &campaign.ID,
		Amount:         500,
		Status:         models.DonationPending,
	}
	if err := db.Create(&donation).Error; err != nil {
		t.Fatalf("failed to create donation: %v", err)
	}

	payment := models.Payment{
		DonorID:    donor.ID,
		DonationID: donation.ID,
		Amount:     500,
		Provider:   models.PaymentProviderStub,
		Reference:  fmt.Sprintf("ref-%d", donation.ID),
		Status:     models.PaymentPending,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}

	return fixture{donor: donor, orgUser: orgUser, org: org, campaign: campaign, donation: donation, payment: payment}
}

func completeAs(t *testing.T, user models.User, paymentID uint) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payments/:id/complete", asUser(user), CompletePayment)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/payments/%d/complete", paymentID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCompletePaymentTransitionsBothRecords(t *testing.T) {
	db := setupTestDB(t)
	fx := seedLifecycle(t, db)

	w := completeAs(t, fx.donor, fx.payment.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("expected ok status, got %s", w.Body.String())
	}

	var payment models.Payment
	if err := db.First(&payment, fx.payment.ID).Error; err != nil {
		t.Fatalf("failed to reload payment: %v", err)
	}
	if payment.Status != models.PaymentCompleted {
		t.Fatalf("payment status = %s, want completed", payment.Status)
	}

	var donation models.Donation
	if err := db.First(&donation, fx.donation.ID).Error; err != nil {
		t.Fatalf("failed to reload donation: %v", err)
	}
	if donation.Status != models.DonationCompleted {
		t.Fatalf("donation status = %s, want completed", donation.Status)
	}

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 2 {
		t.Fatalf("notification count = %d, want 2", count)
	}

	var donorNote models.Notification
	if err := db.Where("user_id = ?", fx.donor.ID).First(&donorNote).Error; err != nil {
		t.Fatalf("no notification for donor: %v", err)
	}
	var orgNote models.Notification
	if err := db.Where("user_id = ?", fx.orgUser.ID).First(&orgNote).Error; err != nil {
		t.Fatalf("no notification for organization owner: %v", err)
	}

	var org models.Organization
	db.First(&org, fx.org.ID)
	if org.TotalRaised != 500 {
		t.Fatalf("organization total_raised = %v, want 500", org.TotalRaised)
	}

	var campaign models.Campaign
	db.First(&campaign, fx.campaign.ID)
	if campaign.RaisedAmount != 500 {
		t.Fatalf("campaign raised_amount = %v, want 500", campaign.RaisedAmount)
	}
	if campaign.DonorsCount != 1 {
		t.Fatalf("campaign donors_count = %d, want 1", campaign.DonorsCount)
	}
}

func TestCompletePaymentIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	fx := seedLifecycle(t, db)

	if w := completeAs(t, fx.donor, fx.payment.ID); w.Code != http.StatusOK {
		t.Fatalf("first completion: got status %d", w.Code)
	}

	w := completeAs(t, fx.donor, fx.payment.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("second completion: got status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"already_completed"`) {
		t.Fatalf("expected already_completed, got %s", w.Body.String())
	}

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 2 {
		t.Fatalf("notification count after repeat = %d, want 2", count)
	}

	var org models.Organization
	db.First(&org, fx.org.ID)
	if org.TotalRaised != 500 {
		t.Fatalf("organization total_raised after repeat = %v, want 500", org.TotalRaised)
	}
}

func TestCompletePaymentRejectsForeignPayment(t *testing.T) {
	db := setupTestDB(t)
	fx := seedLifecycle(t, db)

	other := models.User{Phone: "+996700000099", FullName: "Other Donor", Role: models.RoleDonor, IsActive: true}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("failed to create second donor: %v", err)
	}

	w := completeAs(t, other, fx.payment.ID)
	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusNotFound)
	}

	var payment models.Payment
	db.First(&payment, fx.payment.ID)
	if payment.Status != models.PaymentPending {
		t.Fatalf("payment status = %s, want pending (no mutation)", payment.Status)
	}

	var donation models.Donation
	db.First(&donation, fx.donation.ID)
	if donation.Status != models.DonationPending {
		t.Fatalf("donation status = %s, want pending (no mutation)", donation.Status)
	}

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 0 {
		t.Fatalf("notification count = %d, want 0", count)
	}
}
