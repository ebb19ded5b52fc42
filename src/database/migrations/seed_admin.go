package migrations

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/zjurelinac/East/src/model"
)

// seedAdminUser creates the initial admin account when the users table is
// empty, so a fresh deployment has a working login. The password comes
// from ADMIN_PASSWORD; when unset a random one is generated and logged
// once.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	password := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))
	generated := false
	if password == "" {
		password = uuid.NewString()
		generated = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := model.User{
		Username: "admin",
		Email:    "admin@localhost",
		Password: string(hash),
		Active:   true,
		APIToken: uuid.NewString(),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	fields := map[string]interface{}{"username": admin.Username}
	if generated {
		fields["password"] = password
	}
	logrus.WithFields(fields).Warn("Seeded initial admin user")

	return nil
}
