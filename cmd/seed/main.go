package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"brightline/internal/config"
	"brightline/internal/database"
	"brightline/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	db, err := database.Open(cfg.Database.URL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	// Child tables first to keep foreign keys happy.
	log.Println("Cleaning old data...")
	for _, table := range []string{"contact_notes", "contacts", "quotes", "bookings", "blog_comments", "blog_likes", "blogs", "services", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	admin := createUser(db, "Site", "Admin", cfg.App.AdminEmail, "Admin123!", domain.RoleAdmin)
	log.Printf("Admin created: %s / Admin123!", admin.Email)
	createUser(db, "Marcus", "Hale", "marcus@brightline-electric.com", "Tech1234!", domain.RoleTechnician)
	createUser(db, "Priya", "Nair", "priya@brightline-electric.com", "Tech1234!", domain.RoleTechnician)
	customer := createUser(db, "Jordan", "Miles", "jordan@example.com", "User1234!", domain.RoleUser)

	// ================== SERVICES ==================
	log.Println("Creating services...")
	offerings := []domain.ServiceOffering{
		{
			Name:              "Electrical Panel Upgrade",
			ShortDescription:  "Replace outdated panels with modern breaker boxes.",
			Description:       "We upgrade fuse boxes and undersized panels to 200A service with code-compliant breakers.",
			Category:          "residential",
			Icon:              "zap",
			Features:          []string{"200A service", "Permit handling", "Same-day power restoration"},
			PriceType:         "quote",
			EstimatedDuration: "1 day",
			IsFeatured:        true,
			SortOrder:         1,
		},
		{
			Name:              "EV Charger Installation",
			ShortDescription:  "Level 2 home charging for any electric vehicle.",
			Description:       "Dedicated 240V circuit, wall-mounted charger installation and load calculation.",
			Category:          "installation",
			Icon:              "battery-charging",
			Features:          []string{"Level 2 chargers", "Load calculation", "Rebate paperwork"},
			PriceType:         "fixed",
			BasePrice:         899,
			EstimatedDuration: "4-6 hours",
			IsFeatured:        true,
			SortOrder:         2,
		},
		{
			Name:              "Commercial Lighting Retrofit",
			ShortDescription:  "LED conversions for offices, retail and warehouses.",
			Description:       "Energy audits and LED retrofits that cut lighting costs for commercial properties.",
			Category:          "commercial",
			Icon:              "lightbulb",
			Features:          []string{"Energy audit", "LED fixtures", "Occupancy sensors"},
			PriceType:         "quote",
			EstimatedDuration: "Varies",
			SortOrder:         3,
		},
		{
			Name:             "24/7 Emergency Repair",
			ShortDescription: "Licensed electricians on call around the clock.",
			Description:      "Power outages, burning smells, sparking outlets: we respond within the hour.",
			Category:         "emergency",
			Icon:             "alert-triangle",
			Features:         []string{"1-hour response", "Licensed technicians", "Upfront pricing"},
			PriceType:        "hourly",
			BasePrice:        145,
			IsFeatured:       true,
			SortOrder:        4,
		},
	}
	for i := range offerings {
		offerings[i].IsActive = true
		if err := db.Create(&offerings[i]).Error; err != nil {
			log.Fatalf("create service %q: %v", offerings[i].Name, err)
		}
	}

	// ================== BLOG ==================
	log.Println("Creating blog posts...")
	now := time.Now().UTC()
	for i, category := range domain.BlogCategories {
		published := now.AddDate(0, 0, -i*3)
		post := domain.Blog{
			Title:       fmt.Sprintf("%s: what every homeowner should know", titleFor(category)),
			Excerpt:     "Practical advice from our licensed electricians.",
			Content:     "<p>Our team shares the checks we run on every job and the warning signs worth a call.</p>",
			Category:    category,
			Tags:        []string{category, "tips"},
			AuthorID:    admin.ID,
			Status:      domain.BlogPublished,
			IsFeatured:  i < 3,
			PublishedAt: &published,
		}
		if err := db.Create(&post).Error; err != nil {
			log.Fatalf("create blog post: %v", err)
		}
	}

	// ================== BOOKINGS / QUOTES ==================
	log.Println("Creating sample booking and quote...")
	contact := domain.Customer{FirstName: customer.FirstName, LastName: customer.LastName, Email: customer.Email, Phone: "512-555-0142"}
	address := domain.Address{Street: "1200 Barton Springs Rd", City: "Austin", State: "TX", ZipCode: "78704"}
	booking := domain.Booking{
		UserID:        &customer.ID,
		Customer:      contact,
		ServiceID:     offerings[1].ID,
		Address:       address,
		PreferredDate: now.AddDate(0, 0, 7).Truncate(24 * time.Hour),
		PreferredTime: "morning",
		Description:   "Install a Level 2 charger in the garage.",
	}
	if err := db.Omit("Service", "Technician").Create(&booking).Error; err != nil {
		log.Fatalf("create booking: %v", err)
	}
	quote := domain.Quote{
		UserID:       &customer.ID,
		Customer:     contact,
		Address:      address,
		ServiceID:    &offerings[0].ID,
		PropertyType: "residential",
		Description:  "Upgrade a 100A fuse box to a 200A breaker panel.",
		Timeline:     "within-month",
		BudgetRange:  "1000-5000",
	}
	if err := db.Omit("Service").Create(&quote).Error; err != nil {
		log.Fatalf("create quote: %v", err)
	}

	log.Printf("Seed completed: %d services, %d posts, booking %s, quote %s",
		len(offerings), len(domain.BlogCategories), booking.BookingNumber, quote.QuoteNumber)
}

func createUser(db *gorm.DB, first, last, email, password string, role domain.UserRole) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password:", err)
	}
	u := &domain.User{
		FirstName:       first,
		LastName:        last,
		Email:           domain.NormalizeEmail(email),
		PasswordHash:    string(hash),
		Role:            role,
		IsActive:        true,
		IsEmailVerified: true,
	}
	if err := db.Create(u).Error; err != nil {
		log.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func titleFor(category string) string {
	switch category {
	case "electrical-safety":
		return "Electrical safety"
	case "home-improvement":
		return "Home improvement"
	case "energy-efficiency":
		return "Energy efficiency"
	case "smart-home":
		return "Smart home wiring"
	case "industry-news":
		return "Industry news"
	case "commercial":
		return "Commercial wiring"
	default:
		return "Maintenance"
	}
}
