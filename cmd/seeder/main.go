package main

import (
	"fmt"
	"log"

	"github.com/egyakin/egyakin-api/internal/config"
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var specialties = []string{
	"Nephrology", "Cardiology", "Internal Medicine", "Urology", "Endocrinology",
}

func main() {
	// Load config
	cfg := config.Load()

	// Force DB logging off to avoid noise
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to Database")

	// Common password for all seeded accounts
	password := "password123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// Admin account
	seedDoctor(db, model.Doctor{
		Name:                "EGYAKIN Admin",
		Email:               "admin@egyakin.local",
		Password:            string(hashedPassword),
		Specialty:           "Nephrology",
		Workplace:           "EGYAKIN HQ",
		SyndicateCardStatus: model.SyndicateCardApproved,
		IsVerified:          true,
		IsAdmin:             true,
	}, password)

	// Verified doctors
	log.Println("🌱 Seeding 10 doctors...")
	for i := 1; i <= 10; i++ {
		seedDoctor(db, model.Doctor{
			Name:                fmt.Sprintf("Doctor %d", i),
			Email:               fmt.Sprintf("doctor%d@egyakin.local", i),
			Password:            string(hashedPassword),
			Specialty:           specialties[i%len(specialties)],
			Workplace:           fmt.Sprintf("Cairo University Hospital, Ward %d", i),
			SyndicateCardStatus: model.SyndicateCardApproved,
			IsVerified:          true,
		}, password)
	}

	// One unverified doctor so the syndicate-card review flow has a target
	seedDoctor(db, model.Doctor{
		Name:                "Doctor Pending",
		Email:               "pending@egyakin.local",
		Password:            string(hashedPassword),
		Specialty:           "Nephrology",
		Workplace:           "Alexandria General Hospital",
		SyndicateCardStatus: model.SyndicateCardPending,
	}, password)

	// Demo discussion group
	seedGroup(db)

	log.Println("🎉 Seeding completed!")
}

func seedDoctor(db *gorm.DB, doctor model.Doctor, plainPassword string) {
	var existing model.Doctor
	if err := db.Where("email = ?", doctor.Email).First(&existing).Error; err == nil {
		return
	}

	doctor.ID = uuid.New()
	if err := db.Create(&doctor).Error; err != nil {
		log.Printf("❌ Failed to create doctor %s: %v", doctor.Email, err)
	} else {
		log.Printf("✅ Created doctor: %s | Email: %s | Pass: %s", doctor.Name, doctor.Email, plainPassword)
	}
}

func seedGroup(db *gorm.DB) {
	// Find first 3 verified doctors
	var doctors []model.Doctor
	if err := db.Where("is_verified = ? AND is_admin = ?", true, false).Limit(3).Find(&doctors).Error; err != nil || len(doctors) < 3 {
		return
	}

	owner := doctors[0]
	members := doctors[1:]

	// Check if group exists
	var count int64
	db.Model(&model.Group{}).Where("name = ?", "Nephrology Case Reviews").Count(&count)
	if count > 0 {
		return
	}

	group := model.Group{
		ID:          uuid.New(),
		Name:        "Nephrology Case Reviews",
		Description: "Weekly discussion of complicated AKI cases",
		OwnerID:     owner.ID,
	}

	if err := db.Create(&group).Error; err != nil {
		log.Printf("❌ Failed to create group: %v", err)
		return
	}

	db.Create(&model.GroupMember{
		GroupID:  group.ID,
		DoctorID: owner.ID,
		Role:     model.MemberRoleOwner,
	})

	for _, m := range members {
		db.Create(&model.GroupMember{
			GroupID:  group.ID,
			DoctorID: m.ID,
			Role:     model.MemberRoleMember,
		})
	}

	log.Println("✅ Created demo group: 'Nephrology Case Reviews' with 3 members")
}
