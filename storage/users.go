package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// UpsertUser creates the user on first sighting and refreshes the name
// fields on later ones. Nothing is written when no field changed.
func (s *Storage) UpsertUser(userID int64, firstName, lastName, username string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	var user User
	result := s.db.First(&user, "id = ?", userID)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			slog.Error("storage: Failed to look up user", "error", result.Error, "user_id", userID)
			return fmt.Errorf("failed to look up user: %w", result.Error)
		}

		user = User{ID: userID, FirstName: firstName, LastName: lastName, Username: username}
		if result := s.db.Create(&user); result.Error != nil {
			slog.Error("storage: Failed to create user", "error", result.Error, "user_id", userID)
			return fmt.Errorf("failed to create user: %w", result.Error)
		}
		return nil
	}

	if user.FirstName == firstName && user.LastName == lastName && user.Username == username {
		return nil
	}

	result = s.db.Model(&User{ID: userID}).Updates(map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
		"username":   username,
	})
	if result.Error != nil {
		slog.Error("storage: Failed to update user", "error", result.Error, "user_id", userID)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	return nil
}

// FullName renders a display name for the user: "First Last (username)"
// with whatever parts are known. Unknown users render as their decimal id.
func (s *Storage) FullName(userID int64) string {
	var user User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("storage: Failed to get user for full name", "error", err, "user_id", userID)
		}
		return strconv.FormatInt(userID, 10)
	}

	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	switch {
	case name != "" && user.Username != "":
		return fmt.Sprintf("%s (%s)", name, user.Username)
	case user.Username != "":
		return user.Username
	case name != "":
		return name
	}
	return strconv.FormatInt(userID, 10)
}
