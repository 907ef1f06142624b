package stats

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

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
	dsn := fmt.Sprintf("file:stats_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
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

func createDonationAt(t *testing.T, db *gorm.DB, donorID, orgID uint, amount float64, at time.Time) {
	t.Helper()
	donation := models.Donation{
		DonorID:        donorID,
		OrganizationID: orgID,
		Amount:         amount,
		Status:         models.DonationCompleted,
	}
	donation.CreatedAt = at
	if err := db.Create(&donation).Error; err != nil {
		t.Fatalf("failed to create donation: %v", err)
	}
}

type monthlyResponse struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

func TestDonorStatsMonthlyBreakdown(t *testing.T) {
	db := setupTestDB(t)

	donor := models.User{Phone: "+996700000001", Role: models.RoleDonor, IsActive: true}
	if err := db.Create(&donor).Error; err != nil {
		t.Fatalf("failed to create donor: %v", err)
	}
	orgUser := models.User{Phone: "+996700000002", Role: models.RoleOrg, IsActive: true}
	if err := db.Create(&orgUser).Error; err != nil {
		t.Fatalf("failed to create org user: %v", err)
	}
	org := models.Organization{UserID: orgUser.ID, Name: "Helping Hands"}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("failed to create organization: %v", err)
	}

	march := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	may := time.Date(2025, time.May, 2, 9, 0, 0, 0, time.UTC)
	createDonationAt(t, db, donor.ID, org.ID, 500, march)
	createDonationAt(t, db, donor.ID, org.ID, 1000, march.AddDate(0, 0, 5))
	createDonationAt(t, db, donor.ID, org.ID, 2000, may)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/stats/donor/", asUser(donor), DonorStats)

	req := httptest.NewRequest(http.MethodGet, "/stats/donor/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}

	var resp struct {
		TotalAmount    float64           `json:"total_amount"`
		TotalDonations int               `json:"total_donations"`
		Monthly        []monthlyResponse `json:"monthly"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.TotalAmount != 3500 {
		t.Fatalf("total_amount = %v, want 3500", resp.TotalAmount)
	}
	if resp.TotalDonations != 3 {
		t.Fatalf("total_donations = %d, want 3", resp.TotalDonations)
	}
	if len(resp.Monthly) != 2 {
		t.Fatalf("monthly has %d entries, want 2", len(resp.Monthly))
	}
	if resp.Monthly[0].Month != "2025-03" || resp.Monthly[0].Total != 1500 {
		t.Fatalf("monthly[0] = %+v, want {2025-03 1500}", resp.Monthly[0])
	}
	if resp.Monthly[1].Month != "2025-05" || resp.Monthly[1].Total != 2000 {
		t.Fatalf("monthly[1] = %+v, want {2025-05 2000}", resp.Monthly[1])
	}
}

func TestOrganizationStatsCountsDistinctDonors(t *testing.T) {
	db := setupTestDB(t)

	orgUser := models.User{Phone: "+996700000010", Role: models.RoleOrg, IsActive: true}
	if err := db.Create(&orgUser).Error; err != nil {
		t.Fatalf("failed to create org user: %v", err)
	}
	org := models.Organization{UserID: orgUser.ID, Name: "Helping Hands"}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("failed to create organization: %v", err)
	}

	var donors []models.User
	for i := 0; i < 2; i++ {
		donor := models.User{Phone: fmt.Sprintf("+99670000002%d", i), Role: models.RoleDonor, IsActive: true}
		if err := db.Create(&donor).Error; err != nil {
			t.Fatalf("failed to create donor: %v", err)
		}
		donors = append(donors, donor)
	}

	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	createDonationAt(t, db, donors[0].ID, org.ID, 100, now)
	createDonationAt(t, db, donors[0].ID, org.ID, 150, now.AddDate(0, 1, 0))
	createDonationAt(t, db, donors[1].ID, org.ID, 250, now)

	for i := 0; i < 3; i++ {
		campaign := models.Campaign{OrganizationID: org.ID, Title: fmt.Sprintf("Campaign %d", i), GoalAmount: 1000}
		if err := db.Create(&campaign).Error; err != nil {
			t.Fatalf("failed to create campaign: %v", err)
		}
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/stats/organization/", asUser(orgUser), OrganizationStats)

	req := httptest.NewRequest(http.MethodGet, "/stats/organization/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		TotalRaised    float64           `json:"total_raised"`
		DonorsCount    int               `json:"donors_count"`
		CampaignsCount int               `json:"campaigns_count"`
		Monthly        []monthlyResponse `json:"monthly"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.TotalRaised != 500 {
		t.Fatalf("total_raised = %v, want 500", resp.TotalRaised)
	}
	if resp.DonorsCount != 2 {
		t.Fatalf("donors_count = %d, want 2", resp.DonorsCount)
	}
	if resp.CampaignsCount != 3 {
		t.Fatalf("campaigns_count = %d, want 3", resp.CampaignsCount)
	}
	if len(resp.Monthly) != 2 {
		t.Fatalf("monthly has %d entries, want 2", len(resp.Monthly))
	}
}
