package main

import (
	"log"
	"os"
	"time"

	"donation-platform-server/handlers/auth"
	"donation-platform-server/handlers/campaigns"
	"donation-platform-server/handlers/donations"
	"donation-platform-server/handlers/donors"
	"donation-platform-server/handlers/notifications"
	"donation-platform-server/handlers/organizations"
	"donation-platform-server/handlers/payments"
	"donation-platform-server/handlers/reports"
	"donation-platform-server/handlers/stats"
	"donation-platform-server/middleware"
	"donation-platform-server/migrations"
	"donation-platform-server/seed"
	"donation-platform-server/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("FRONTEND_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.ConnectDatabase()
	migrations.Migrate()

	if err := seed.SeedCategories(); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	r.Static("/media", utils.MediaRoot())

	// Auth
	otpLimit := middleware.RateLimit("otp", 5, time.Minute)
	loginLimit := middleware.RateLimit("login", 10, time.Minute)

	r.POST("/auth/donor/register", otpLimit, auth.RegisterDonor)
	r.POST("/auth/donor/verify", otpLimit, auth.VerifyDonorRegistration)
	r.POST("/auth/donor/login", otpLimit, auth.RequestDonorLogin)
	r.POST("/auth/donor/login/verify", otpLimit, auth.VerifyDonorLogin)
	r.POST("/auth/org/login", loginLimit, auth.OrgLogin)
	r.POST("/auth/org/register", loginLimit, auth.RegisterOrg)
	r.POST("/auth/refresh", auth.RefreshToken)

	// Public catalog
	r.GET("/organizations/", organizations.ListOrganizations)
	r.GET("/organizations/:id", organizations.GetOrganization)
	r.GET("/organizations/:id/reports", organizations.OrganizationReports)
	r.GET("/campaigns/", campaigns.ListCampaigns)
	r.GET("/categories/", campaigns.ListCategories)

	authed := r.Group("/", auth.AuthMiddleware())

	// Donor
	donor := authed.Group("/", auth.RequireDonor())
	donor.POST("/donations/", middleware.RateLimit("donation", 20, time.Minute), donations.CreateDonation)
	donor.GET("/donations/my", donations.MyDonations)
	donor.POST("/payments/:id/complete", payments.CompletePayment)
	donor.GET("/stats/donor/", stats.DonorStats)
	donor.GET("/me/donor-profile", donors.DonorProfile)
	donor.GET("/me/bank-details", donors.BankDetails)
	donor.PUT("/me/bank-details", donors.UpdateBankDetails)
	donor.GET("/recurring-donations/", donors.ListRecurringDonations)
	donor.POST("/recurring-donations/", donors.CreateRecurringDonation)
	donor.PATCH("/recurring-donations/:id", donors.UpdateRecurringDonation)

	// Organization
	org := authed.Group("/", auth.RequireOrganization())
	org.POST("/campaigns/", campaigns.CreateCampaign)
	org.GET("/campaigns/my", campaigns.MyCampaigns)
	org.PATCH("/campaigns/:id", campaigns.UpdateCampaign)
	org.GET("/stats/organization/", stats.OrganizationStats)
	org.POST("/reports/", reports.CreateReport)
	org.GET("/reports/my", reports.MyReports)

	// Any authenticated user
	authed.GET("/notifications/", notifications.MyNotifications)
	authed.POST("/notifications/:id/read", notifications.MarkRead)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
