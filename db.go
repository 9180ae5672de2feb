package main

import (
	"log"
	"os"
	"strings"

	"claimflow/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.ClaimType{}); err != nil {
			log.Printf("migration warning (claim_types): %v", err)
		}
		if err := db.AutoMigrate(&models.Claim{}); err != nil {
			log.Printf("migration warning (claims): %v", err)
		}
		if err := db.AutoMigrate(&models.ClaimDocument{}); err != nil {
			log.Printf("migration warning (claim_documents): %v", err)
		}
		if err := db.AutoMigrate(&models.DocumentRequirement{}); err != nil {
			log.Printf("migration warning (document_requirements): %v", err)
		}
		if err := db.AutoMigrate(&models.EvidenceValidationResult{}); err != nil {
			log.Printf("migration warning (evidence_validation_results): %v", err)
		}
		if err := db.AutoMigrate(&models.FraudResult{}); err != nil {
			log.Printf("migration warning (fraud_results): %v", err)
		}
		if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
			log.Printf("migration warning (audit_logs): %v", err)
		}
	}
	seedDB()
}

func seedDB() {
	seedClaimTypes()
	seedDocumentRequirements()
	seedUsers()
	ensureUploadBase()
}

func seedClaimTypes() {
	var count int64
	db.Model(&models.ClaimType{}).Count(&count)
	if count > 0 {
		return
	}
	names := []string{
		"Auto Insurance",
		"Home Insurance",
		"Health Insurance",
		"Travel Insurance",
		"Life Insurance",
		"Property Insurance",
	}
	for _, n := range names {
		if err := db.Create(&models.ClaimType{Name: n}).Error; err != nil {
			log.Printf("failed to seed claim type %q: %v", n, err)
		}
	}
	log.Printf("Seeded %d claim types", len(names))
}

// req is a seeding shorthand for one document requirement row.
type req struct {
	category    string
	displayName string
	mandatory   bool
	description string
}

// seedDocumentRequirements fills the requirement catalog per claim type,
// keyed on name keywords. Runs only when the table is empty.
func seedDocumentRequirements() {
	var count int64
	db.Model(&models.DocumentRequirement{}).Count(&count)
	if count > 0 {
		return
	}

	auto := []req{
		{"DAMAGE_PHOTO", "Vehicle Damage Photos", true, "Clear photographs showing vehicle damage from multiple angles"},
		{"VEHICLE_RC", "Vehicle Registration Certificate", true, "Valid RC document proving vehicle ownership"},
		{"REPAIR_ESTIMATE", "Repair Estimate/Invoice", true, "Garage estimate or repair invoice with itemized costs"},
		{"POLICE_REPORT", "Police Report (FIR)", false, "Police report for major accidents or theft"},
	}
	health := []req{
		{"HOSPITAL_BILL", "Hospital Bill/Invoice", true, "Detailed hospital bill with breakdown of charges"},
		{"DISCHARGE_SUMMARY", "Discharge Summary", true, "Medical discharge summary from hospital"},
		{"ID_DOCUMENT", "Identity Proof", true, "Valid government-issued ID (Aadhaar, PAN, etc.)"},
	}
	home := []req{
		{"DAMAGE_PHOTO", "Property Damage Photos", true, "Clear photographs of damaged property"},
		{"PROPERTY_DOCUMENT", "Property Ownership Proof", true, "Property deed or ownership documents"},
		{"REPAIR_ESTIMATE", "Repair Estimate", true, "Contractor estimate for repairs"},
		{"POLICE_REPORT", "Police Report", false, "Police report for theft or vandalism claims"},
	}
	life := []req{
		{"ID_DOCUMENT", "Identity Proof", true, "Valid government-issued ID of beneficiary"},
		{"HOSPITAL_BILL", "Medical Bills", false, "Hospital bills and medical reports if applicable"},
		{"DISCHARGE_SUMMARY", "Medical Reports", false, "Detailed medical reports if applicable"},
	}
	travel := []req{
		{"ID_DOCUMENT", "Identity Proof and Passport", true, "Valid passport and ID documents"},
		{"HOSPITAL_BILL", "Medical Bills (if applicable)", false, "Medical bills for health-related claims"},
		{"DAMAGE_PHOTO", "Incident Photos", false, "Photos of damaged luggage or incident scene"},
	}

	var types []models.ClaimType
	if err := db.Find(&types).Error; err != nil {
		log.Printf("failed to load claim types for requirement seeding: %v", err)
		return
	}
	seeded := 0
	for _, ct := range types {
		name := strings.ToUpper(ct.Name)
		var rows []req
		switch {
		case strings.Contains(name, "AUTO") || strings.Contains(name, "VEHICLE"):
			rows = auto
		case strings.Contains(name, "HEALTH") || strings.Contains(name, "MEDICAL"):
			rows = health
		case strings.Contains(name, "HOME") || strings.Contains(name, "PROPERTY"):
			rows = home
		case strings.Contains(name, "LIFE"):
			rows = life
		case strings.Contains(name, "TRAVEL"):
			rows = travel
		}
		for _, r := range rows {
			dr := models.DocumentRequirement{
				ClaimTypeID: ct.ID,
				Category:    r.category,
				DisplayName: r.displayName,
				Mandatory:   r.mandatory,
				Description: r.description,
			}
			if err := db.Create(&dr).Error; err != nil {
				log.Printf("failed to seed requirement %q for %q: %v", r.displayName, ct.Name, err)
				continue
			}
			seeded++
		}
	}
	log.Printf("Seeded %d document requirements", seeded)
}

func seedUsers() {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}
	type demo struct {
		name, email, password, role, phone, policy string
	}
	users := []demo{
		{"Admin User", "admin@example.com", "admin123", models.RoleAdmin, "", ""},
		{"Agent User", "agent@example.com", "agent123", models.RoleAgent, "", ""},
		{"John Doe", "john@example.com", "customer123", models.RoleCustomer, "+1 (555) 123-4567", "POL-20250109001"},
		{"Jane Smith", "jane@example.com", "customer123", models.RoleCustomer, "+1 (555) 234-5678", "POL-20250109002"},
		{"Bob Johnson", "bob@example.com", "customer123", models.RoleCustomer, "+1 (555) 345-6789", "POL-20250109003"},
	}
	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("failed to hash seed password for %s: %v", u.email, err)
			continue
		}
		user := models.User{
			Name:           u.name,
			Email:          u.email,
			HashedPassword: hashed,
			Role:           u.role,
			PhoneNumber:    u.phone,
			PolicyNumber:   u.policy,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("failed to seed user %s: %v", u.email, err)
		}
	}
	log.Println("Seeded default users: admin@example.com/admin123, agent@example.com/agent123, 3 customers")
}

// ensureUploadBase creates the base uploads directory.
func ensureUploadBase() {
	base := uploadBaseDir()
	if err := os.MkdirAll(base, 0755); err != nil {
		log.Printf("failed to create upload base dir %s: %v", base, err)
	}
}

// uploadBaseDir returns the base directory for local uploads (configurable via UPLOAD_BASE env)
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}
